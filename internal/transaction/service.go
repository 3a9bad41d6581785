package transaction

import (
	"fmt"
	"log/slog"
	"time"
)

// RepositoryAPI defines data access for transactions.
type RepositoryAPI interface {
	Create(t *Transaction) error
	ListByOwner(ownerID int64) ([]*Transaction, error)
	GetByID(id int64) (*Transaction, error)
	Update(t *Transaction) error
	Delete(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(logger *slog.Logger, repo RepositoryAPI) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Create persists a transaction for the owner. The date defaults to now when
// omitted. Field validation is left to the storage schema: a payload the
// schema rejects surfaces as an internal error, not a 400.
func (s *Service) Create(ownerID int64, dto CreateTransactionDTO) (*Transaction, error) {
	t := &Transaction{
		UserID:   ownerID,
		Type:     dto.Type,
		Amount:   dto.Amount,
		Category: dto.Category,
		Note:     dto.Note,
		Date:     time.Now(),
	}
	if dto.Date != nil {
		t.Date = *dto.Date
	}

	if err := s.repo.Create(t); err != nil {
		s.logger.Error("create transaction", "error", err, "user_id", ownerID)
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	return t, nil
}

// List returns the owner's transactions, most recent date first.
func (s *Service) List(ownerID int64) ([]*Transaction, error) {
	transactions, err := s.repo.ListByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	if transactions == nil {
		transactions = []*Transaction{}
	}
	return transactions, nil
}

// GetByID fetches a transaction by primary key. Lookups after the access
// guard are by id only, not by owner.
func (s *Service) GetByID(id int64) (*Transaction, error) {
	t, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTransactionNotFound
	}
	return t, nil
}

func (s *Service) Update(id int64, dto UpdateTransactionDTO) (*Transaction, error) {
	t, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	dto.ApplyTo(t)
	if err := s.repo.Update(t); err != nil {
		s.logger.Error("update transaction", "error", err, "transaction_id", id)
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	return t, nil
}

func (s *Service) Delete(id int64) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("delete transaction", "error", err, "transaction_id", id)
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}
