package auth

import (
	"context"
	"errors"
	"time"

	"github.com/frahmantamala/personal-finance/internal/transport"
	"github.com/frahmantamala/personal-finance/internal/user"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type ServiceAPI interface {
	Register(dto RegisterDTO) (*user.User, error)
	Authenticate(dto LoginDTO) (*LoginResult, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
}

// UserRepository is the credential store surface the auth service needs.
type UserRepository interface {
	Create(u *user.User) error
	GetByEmail(email string) (*user.User, error)
}

// CategoryProvisioner clones the system template set into a new user's
// personal categories. Registration fans out to it after user creation.
type CategoryProvisioner interface {
	CloneSystemSet(ownerID int64) error
}

// TokenGeneratorAPI creates and verifies signed identity tokens.
type TokenGeneratorAPI interface {
	GenerateToken(userID int64) (token string, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Claims carries the authenticated user's identifier inside the JWT.
type Claims struct {
	UserID int64 `json:"id"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	Secret   []byte
	TokenTTL time.Duration
}

// Identity is what the access guard attaches to the request context after a
// token verifies. It lives in internal/transport to avoid an import cycle
// with internal/user; this alias keeps the auth-facing name.
type Identity = transport.Identity

// LoginResult is the payload returned on successful authentication.
type LoginResult struct {
	Token string          `json:"token"`
	User  user.PublicUser `json:"user"`
}

var (
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
)

func ContextWithUser(ctx context.Context, identity *Identity) context.Context {
	return transport.ContextWithUser(ctx, identity)
}

func UserFromContext(ctx context.Context) (*Identity, bool) {
	return transport.UserFromContext(ctx)
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
