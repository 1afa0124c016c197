// Package services contains the store's business logic on top of the
// repositories and object storage.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/billed/internal/common"
	"github.com/dmitrijs2005/billed/internal/server/auth"
	"github.com/dmitrijs2005/billed/internal/server/config"
	"github.com/dmitrijs2005/billed/internal/server/models"
	"github.com/dmitrijs2005/billed/internal/server/repositories/repomanager"
)

// LoginResult is what a successful login hands back to the caller.
type LoginResult struct {
	Token string
	Email string
	Type  string
}

// UserService registers accounts and exchanges credentials for tokens.
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	bcryptCost            int
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// normalizeEmail lowercases and trims an address, rejecting anything that is
// not a bare addr-spec.
func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: invalid email %q", common.ErrValidation, email)
	}
	return email, nil
}

// Register creates an account. An empty userType registers an employee.
func (s *UserService) Register(ctx context.Context, email string, password []byte, userType string) (*models.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if len(password) == 0 {
		return nil, fmt.Errorf("%w: empty password", common.ErrValidation)
	}
	switch userType {
	case "":
		userType = models.UserTypeEmployee
	case models.UserTypeEmployee, models.UserTypeAdmin:
	default:
		return nil, fmt.Errorf("%w: unknown account type %q", common.ErrValidation, userType)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, &models.User{Email: email, PasswordHash: hash, Type: userType})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies the credentials and issues a token. Unknown accounts and
// wrong passwords both yield common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email string, password []byte) (*LoginResult, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, common.ErrInvalidCredentials
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.Email, user.Type, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("%w: signing token: %w", common.ErrorInternal, err)
	}
	return &LoginResult{Token: token, Email: user.Email, Type: user.Type}, nil
}

// Authenticate resolves a bearer token to its claims.
func (s *UserService) Authenticate(token string) (*auth.Claims, error) {
	return auth.ParseToken(token, s.jwtSecret)
}
