package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/frahmantamala/personal-finance/internal/user"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Service is the main auth service with dependencies
type Service struct {
	users          UserRepository
	categories     CategoryProvisioner
	tokenGenerator TokenGeneratorAPI
	bcryptCost     int
	logger         *slog.Logger
}

// NewService creates a new auth service
func NewService(users UserRepository, categories CategoryProvisioner, tokenGen TokenGeneratorAPI, logger *slog.Logger) *Service {
	return &Service{
		users:          users,
		categories:     categories,
		tokenGenerator: tokenGen,
		bcryptCost:     bcrypt.DefaultCost,
		logger:         logger,
	}
}

// NewJWTTokenGenerator creates a token generator signing with a single shared
// secret. Tokens are week-long sessions.
func NewJWTTokenGenerator(secret string, ttl time.Duration) *JWTTokenGenerator {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &JWTTokenGenerator{
		Secret:   []byte(secret),
		TokenTTL: ttl,
	}
}

// Register creates the user, then clones every system template category into
// the new account. The two steps are not atomic: a clone failure leaves the
// user in place with no personal categories and surfaces as an error.
func (s *Service) Register(dto RegisterDTO) (*user.User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.users.GetByEmail(dto.Email)
	if err != nil && !errors.Is(err, user.ErrNotFound) {
		s.logger.Error("register: email lookup failed", "error", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		s.logger.Error("register: password hashing failed", "error", err)
		return nil, err
	}

	u := &user.User{
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: hash,
		Currency:     user.DefaultCurrency,
	}

	if err := s.users.Create(u); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		s.logger.Error("register: user creation failed", "error", err, "email", dto.Email)
		return nil, err
	}

	if err := s.categories.CloneSystemSet(u.ID); err != nil {
		s.logger.Error("register: category provisioning failed, user left without personal categories",
			"error", err, "user_id", u.ID)
		return nil, fmt.Errorf("provision default categories: %w", err)
	}

	s.logger.Info("user registered", "user_id", u.ID, "email", u.Email)
	return u, nil
}

// Authenticate validates credentials and returns a token plus public user
// projection. Unknown email and wrong password are indistinguishable.
func (s *Service) Authenticate(dto LoginDTO) (*LoginResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.users.GetByEmail(dto.Email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}

	if err := VerifyPassword(u.PasswordHash, dto.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokenGenerator.GenerateToken(u.ID)
	if err != nil {
		s.logger.Error("authenticate: token generation failed", "error", err, "user_id", u.ID)
		return nil, err
	}

	return &LoginResult{
		Token: token,
		User:  u.ToPublic(),
	}, nil
}

// ValidateAccessToken validates access token and returns claims
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

// GenerateToken creates a signed token carrying the user identifier.
func (j *JWTTokenGenerator) GenerateToken(userID int64) (string, error) {
	expiresAt := time.Now().Add(j.TokenTTL)

	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   strconv.FormatInt(userID, 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.Secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken validates a JWT token and returns claims
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
