package postgres

import (
	"errors"

	"github.com/frahmantamala/personal-finance/internal/transaction"
	"gorm.io/gorm"
)

// TransactionRepository implements the transaction.RepositoryAPI interface
// using GORM.
type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(t *transaction.Transaction) error {
	return r.db.Create(t).Error
}

func (r *TransactionRepository) ListByOwner(ownerID int64) ([]*transaction.Transaction, error) {
	var transactions []*transaction.Transaction
	err := r.db.Where("user_id = ?", ownerID).
		Order("date DESC").
		Find(&transactions).Error
	return transactions, err
}

func (r *TransactionRepository) GetByID(id int64) (*transaction.Transaction, error) {
	var t transaction.Transaction
	err := r.db.Where("id = ?", id).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepository) Update(t *transaction.Transaction) error {
	return r.db.Save(t).Error
}

func (r *TransactionRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&transaction.Transaction{}).Error
}

// CountByCategoryRef counts the owner's transactions whose stored category
// string equals the given reference. Category deletion uses this as its
// in-use check, matching on the category id rendered as a string.
func (r *TransactionRepository) CountByCategoryRef(ownerID int64, categoryRef string) (int64, error) {
	var count int64
	err := r.db.Model(&transaction.Transaction{}).
		Where("user_id = ? AND category = ?", ownerID, categoryRef).
		Count(&count).Error
	return count, err
}
