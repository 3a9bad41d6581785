package user

import (
	"errors"

	"github.com/frahmantamala/personal-finance/internal"
)

type Repository interface {
	GetByID(userID int64) (*User, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
	}
}

// GetByID returns the user or a typed application error the transport layer
// maps to a status code.
func (s *Service) GetByID(userID int64) (*User, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, internal.NewNotFoundError("user not found", internal.ErrCodeUserNotFound)
		}
		return nil, internal.NewInternalError("failed to get user", err)
	}

	return u, nil
}
