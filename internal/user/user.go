package user

import (
	"errors"
	"time"
)

// User is the account entity. The password hash never leaves the API: the
// JSON tag hides it from every response that serializes a User.
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	Currency     string    `json:"currency" gorm:"default:INR"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// DefaultCurrency is assigned at registration; the API performs no conversion.
const DefaultCurrency = "INR"

// PublicUser is the projection returned alongside tokens.
type PublicUser struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Currency string `json:"currency"`
}

func (u *User) ToPublic() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Currency: u.Currency,
	}
}

var ErrNotFound = errors.New("user not found")
