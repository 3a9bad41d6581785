package transaction

import (
	"errors"
	"time"
)

// Transaction is a financial entry owned by exactly one user. The category is
// stored as a free string rather than a foreign key: nothing keeps it in sync
// with the owner's category set.
type Transaction struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"column:user_id;not null"`
	Type      string    `json:"type" gorm:"not null"`
	Amount    float64   `json:"amount" gorm:"not null"`
	Category  string    `json:"category" gorm:"not null"`
	Note      string    `json:"note,omitempty"`
	Date      time.Time `json:"date" gorm:"default:now()"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

// TableName returns the table name for GORM
func (Transaction) TableName() string {
	return "transactions"
}

var ErrTransactionNotFound = errors.New("transaction not found")
