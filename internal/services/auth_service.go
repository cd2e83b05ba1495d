package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"teahouse/internal/apperrors"
	"teahouse/internal/config"
	"teahouse/internal/models"

	"github.com/dgrijalva/jwt-go"
)

// Claims is the identity carried by an access token.
type Claims struct {
	ID       string
	Email    string
	Role     string
	FullName string
}

// IsAdmin reports whether the token holder has the admin role.
func (c Claims) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token string
	User  models.UserResponse
}

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	users      *collection[models.User]
	hasher     PasswordHasher
	jwtSecret  []byte
	tokenDurat time.Duration
}

// errEmptySecret guards against signing or verifying HS256 with an empty key,
// which would let anyone mint tokens.
var errEmptySecret = errors.New("JWT secret is empty")

// NewAuthService creates a new AuthService.
func NewAuthService(d Deps, hasher PasswordHasher, cfg config.AuthConfig) *AuthService {
	return &AuthService{
		users:      newCollection[models.User](d, models.CollectionUsers, "user", "user"),
		hasher:     hasher,
		jwtSecret:  []byte(cfg.JWTSecret),
		tokenDurat: cfg.TokenExpires,
	}
}

// Login authenticates a user by email and password and issues a JWT token.
// Unknown emails and wrong passwords get the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := findUserByEmail(ctx, s.users, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !s.hasher.Verify(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.AccountEnabled {
		return nil, apperrors.ErrAccountDisabled
	}

	token, err := s.IssueToken(Claims{ID: user.ID, Email: user.Email, Role: user.Role, FullName: user.FullName})
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user.Response()}, nil
}

// IssueToken signs claims with HS256.
func (s *AuthService) IssueToken(c Claims) (string, error) {
	if len(s.jwtSecret) == 0 {
		return "", apperrors.ErrInternal.Wrap(errEmptySecret)
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       c.ID,
		"email":    c.Email,
		"role":     c.Role,
		"fullName": c.FullName,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenDurat).Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", apperrors.ErrInternal.Wrap(fmt.Errorf("failed to generate token: %w", err))
	}
	return signed, nil
}

// ValidateToken parses and validates a JWT token, returning its claims.
// Tampered, expired or malformed tokens fail with apperrors.ErrInvalidToken.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	if len(s.jwtSecret) == 0 {
		return nil, apperrors.ErrInvalidToken.Wrap(errEmptySecret)
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, apperrors.ErrInvalidToken.Wrap(err)
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}
	c := Claims{}
	c.ID, _ = mc["id"].(string)
	c.Email, _ = mc["email"].(string)
	c.Role, _ = mc["role"].(string)
	c.FullName, _ = mc["fullName"].(string)
	if c.ID == "" {
		return nil, apperrors.ErrInvalidToken.WithDetails("token has no subject id")
	}
	return &c, nil
}
