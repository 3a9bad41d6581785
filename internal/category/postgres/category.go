package postgres

import (
	"errors"
	"strings"

	"github.com/frahmantamala/personal-finance/internal/category"
	"gorm.io/gorm"
)

// CategoryRepository implements the category.RepositoryAPI interface using GORM
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.RepositoryAPI {
	return &CategoryRepository{db: db}
}

// Create inserts a personal category. The partial unique index on
// (user_id, name, type) for non-system rows is the arbiter of uniqueness.
func (r *CategoryRepository) Create(c *category.Category) error {
	if err := r.db.Create(c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return category.ErrCategoryExists
		}
		return err
	}
	return nil
}

// CreateBatch inserts a set of categories in a single statement.
func (r *CategoryRepository) CreateBatch(cs []*category.Category) error {
	if len(cs) == 0 {
		return nil
	}
	return r.db.Create(cs).Error
}

func (r *CategoryRepository) ListSystem() ([]*category.Category, error) {
	var categories []*category.Category
	err := r.db.Where("is_system = ?", true).Find(&categories).Error
	return categories, err
}

// ListOwned returns the owner's non-system categories, newest first. The name
// search is lowered on both sides so it stays portable across backends.
func (r *CategoryRepository) ListOwned(ownerID int64, categoryType, search string) ([]*category.Category, error) {
	query := r.db.Where("user_id = ? AND is_system = ?", ownerID, false)

	if categoryType != "" {
		query = query.Where("type = ?", categoryType)
	}
	if search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var categories []*category.Category
	err := query.Order("created_at DESC").Find(&categories).Error
	return categories, err
}

// GetOwned returns nil when the id is missing, a system template, or owned by
// someone else.
func (r *CategoryRepository) GetOwned(id, ownerID int64) (*category.Category, error) {
	var c category.Category
	err := r.db.Where("id = ? AND user_id = ? AND is_system = ?", id, ownerID, false).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) Update(c *category.Category) error {
	if err := r.db.Save(c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return category.ErrCategoryExists
		}
		return err
	}
	return nil
}

func (r *CategoryRepository) Delete(id, ownerID int64) error {
	return r.db.Where("id = ? AND user_id = ? AND is_system = ?", id, ownerID, false).
		Delete(&category.Category{}).Error
}
