package auth

import (
	"errors"
	"fmt"
	"time"

	"makeitall-backend/internal/database/models"
	apperrors "makeitall-backend/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserRepository defines the user lookup operations needed by the auth service
type UserRepository interface {
	GetByEmail(email string) (*models.User, error)
	GetByID(id uuid.UUID) (*models.User, error)
}

// AuthClaims represents JWT token claims carrying the session identity
type AuthClaims struct {
	UserID string          `json:"user_id"`
	Email  string          `json:"email"`
	Name   string          `json:"name"`
	Role   models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// AuthService issues and validates session tokens for local credential login
type AuthService struct {
	config   *AuthConfig
	userRepo UserRepository
}

// NewAuthService creates a new authentication service
func NewAuthService(config *AuthConfig, userRepo UserRepository) (*AuthService, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid auth config: %w", err)
	}
	return &AuthService{
		config:   config,
		userRepo: userRepo,
	}, nil
}

// Login verifies credentials and issues a signed session token
func (s *AuthService) Login(email, password string) (string, *Identity, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.IsActive {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	identity := &Identity{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}

	token, err := s.IssueToken(identity)
	if err != nil {
		return "", nil, err
	}
	return token, identity, nil
}

// IssueToken signs a JWT for the given identity
func (s *AuthService) IssueToken(identity *Identity) (string, error) {
	now := time.Now()
	claims := &AuthClaims{
		UserID: identity.ID.String(),
		Email:  identity.Email,
		Name:   identity.Name,
		Role:   identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   identity.ID.String(),
			Audience:  jwt.ClaimStrings{s.config.Audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenTTL())),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateJWT parses and validates a session token, returning its claims
func (s *AuthService) ValidateJWT(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// IdentityFromClaims converts validated claims back into an Identity
func (s *AuthService) IdentityFromClaims(claims *AuthClaims) (*Identity, error) {
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id in token: %w", err)
	}
	return &Identity{
		ID:    id,
		Email: claims.Email,
		Name:  claims.Name,
		Role:  claims.Role,
	}, nil
}

// HashPassword hashes a plaintext password for storage
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
