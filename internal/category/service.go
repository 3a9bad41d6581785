package category

import (
	"log/slog"
	"strconv"
)

type RepositoryAPI interface {
	Create(c *Category) error
	CreateBatch(cs []*Category) error
	ListSystem() ([]*Category, error)
	ListOwned(ownerID int64, categoryType, search string) ([]*Category, error)
	GetOwned(id, ownerID int64) (*Category, error)
	Update(c *Category) error
	Delete(id, ownerID int64) error
}

// TransactionCounter reports how many of the owner's transactions reference a
// category. Used by the delete guard.
type TransactionCounter interface {
	CountByCategoryRef(ownerID int64, categoryRef string) (int64, error)
}

type Service struct {
	repo         RepositoryAPI
	transactions TransactionCounter
	logger       *slog.Logger
}

func NewService(repo RepositoryAPI, transactions TransactionCounter, logger *slog.Logger) *Service {
	return &Service{
		repo:         repo,
		transactions: transactions,
		logger:       logger,
	}
}

// Create persists a personal category for the owner. Uniqueness of
// (owner, name, type) is enforced by the store's partial unique index and
// surfaces as ErrCategoryExists.
func (s *Service) Create(ownerID int64, dto CreateCategoryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	icon := dto.Icon
	if icon == "" {
		icon = DefaultIcon
	}
	color := dto.Color
	if color == "" {
		color = DefaultColor
	}

	c := &Category{
		UserID:   &ownerID,
		IsSystem: false,
		Name:     dto.Name,
		Type:     dto.Type,
		Icon:     icon,
		Color:    color,
	}

	if err := s.repo.Create(c); err != nil {
		s.logger.Error("failed to create category", "error", err, "user_id", ownerID, "name", dto.Name)
		return nil, err
	}

	s.logger.Info("category created", "category_id", c.ID, "user_id", ownerID, "name", c.Name, "type", c.Type)
	return c, nil
}

// List returns the owner's non-system categories, newest first, optionally
// filtered by exact type and case-insensitive substring match on name.
func (s *Service) List(ownerID int64, categoryType, search string) ([]*Category, error) {
	categories, err := s.repo.ListOwned(ownerID, categoryType, search)
	if err != nil {
		s.logger.Error("failed to list categories", "error", err, "user_id", ownerID)
		return nil, err
	}

	if categories == nil {
		categories = []*Category{}
	}
	return categories, nil
}

// GetByID fetches a category owned by the caller. Missing, system, and
// foreign-owned categories are indistinguishable: all are not found.
func (s *Service) GetByID(ownerID, id int64) (*Category, error) {
	c, err := s.repo.GetOwned(id, ownerID)
	if err != nil {
		s.logger.Error("failed to get category", "error", err, "category_id", id, "user_id", ownerID)
		return nil, err
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

// Update overwrites only the fields supplied in the DTO.
func (s *Service) Update(ownerID, id int64, dto UpdateCategoryDTO) (*Category, error) {
	c, err := s.GetByID(ownerID, id)
	if err != nil {
		return nil, err
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	dto.ApplyTo(c)

	if err := s.repo.Update(c); err != nil {
		s.logger.Error("failed to update category", "error", err, "category_id", id, "user_id", ownerID)
		return nil, err
	}

	s.logger.Info("category updated", "category_id", id, "user_id", ownerID)
	return c, nil
}

// Delete removes the category unless any of the owner's transactions still
// reference it. The guard matches the transaction category string against the
// category's identifier rendered as a string.
func (s *Service) Delete(ownerID, id int64) error {
	if _, err := s.GetByID(ownerID, id); err != nil {
		return err
	}

	count, err := s.transactions.CountByCategoryRef(ownerID, strconv.FormatInt(id, 10))
	if err != nil {
		s.logger.Error("failed to count referencing transactions", "error", err, "category_id", id)
		return err
	}
	if count > 0 {
		s.logger.Warn("delete blocked: category has associated transactions",
			"category_id", id, "user_id", ownerID, "transactions", count)
		return ErrCategoryInUse
	}

	if err := s.repo.Delete(id, ownerID); err != nil {
		s.logger.Error("failed to delete category", "error", err, "category_id", id, "user_id", ownerID)
		return err
	}

	s.logger.Info("category deleted", "category_id", id, "user_id", ownerID)
	return nil
}

// CloneSystemSet copies every system template into the owner's personal set
// as a single batch. Called once per registration.
func (s *Service) CloneSystemSet(ownerID int64) error {
	templates, err := s.repo.ListSystem()
	if err != nil {
		return err
	}
	if len(templates) == 0 {
		return nil
	}

	clones := make([]*Category, 0, len(templates))
	for _, t := range templates {
		clones = append(clones, t.CloneFor(ownerID))
	}

	if err := s.repo.CreateBatch(clones); err != nil {
		return err
	}

	s.logger.Info("system categories cloned", "user_id", ownerID, "count", len(clones))
	return nil
}
