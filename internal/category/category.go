package category

import (
	"errors"
	"time"
)

// Category is either owned by exactly one user or a system template. System
// templates carry no owner and are never reachable through the user-facing
// API; they exist only to be cloned into new accounts.
type Category struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    *int64    `json:"user_id,omitempty" gorm:"column:user_id"`
	IsSystem  bool      `json:"is_system" gorm:"column:is_system;default:false"`
	Name      string    `json:"name" gorm:"not null"`
	Type      string    `json:"type" gorm:"not null"`
	Icon      string    `json:"icon" gorm:"default:default"`
	Color     string    `json:"color" gorm:"default:#000000"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

const (
	DefaultIcon  = "default-icon"
	DefaultColor = "#000000"
)

func IsValidType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}

// CloneFor copies a system template into a personal category for owner.
func (c *Category) CloneFor(ownerID int64) *Category {
	return &Category{
		UserID:   &ownerID,
		IsSystem: false,
		Name:     c.Name,
		Type:     c.Type,
		Icon:     c.Icon,
		Color:    c.Color,
	}
}

// Domain errors
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryInUse    = errors.New("cannot delete category with associated transactions")
	ErrInvalidType      = errors.New("type must be either income or expense")
	ErrMissingFields    = errors.New("name and type are required")
)
