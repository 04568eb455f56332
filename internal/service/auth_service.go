package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"riskwatch/internal/model"
	"riskwatch/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrEmailTaken         = errors.New("email already registered")
)

const minPasswordLen = 8

// AuthService handles account registration and JWT authentication
type AuthService struct {
	users     repository.UserRepo
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(users repository.UserRepo, secret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		jwtSecret: []byte(secret),
		tokenTTL:  tokenTTL,
	}
}

// Register creates a self-service account. Public sign-ups are always students.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	req.Role = model.RoleStudent
	return s.CreateAccount(ctx, req)
}

// CreateAccount creates an account with any valid role. Role defaults to
// student. Callers must already be trusted (seeding, admin endpoints).
func (s *AuthService) CreateAccount(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	email := strings.TrimSpace(req.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if len(req.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLen)
	}
	role := req.Role
	if role == "" {
		role = model.RoleStudent
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(req.Name),
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// Login validates credentials and returns a signed token
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &model.LoginResponse{Token: token, User: user}, nil
}

// IssueToken signs an HS256 token for user
func (s *AuthService) IssueToken(user *model.User) (string, error) {
	now := time.Now()
	claims := &model.UserClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken validates a JWT and returns its claims
func (s *AuthService) ValidateToken(tokenString string) (*model.UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.UserClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
