// Package services contains server-side business logic. This file implements
// AuthService: credential verification against the user store and issuing
// access tokens on successful login.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mvaldesc/conecta-api/internal/common"
	"github.com/mvaldesc/conecta-api/internal/logging"
	"github.com/mvaldesc/conecta-api/internal/server/auth"
	"github.com/mvaldesc/conecta-api/internal/server/config"
	"github.com/mvaldesc/conecta-api/internal/server/repositories/repomanager"
)

// AuthResult is the minimal identity summary returned on successful login.
// It never carries the password hash.
type AuthResult struct {
	ID          string
	AccessToken string
	Username    string
	Email       string
}

// AuthService verifies login credentials and mints access tokens.
type AuthService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	logger                      logging.Logger
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *AuthService {
	return &AuthService{
		db:                          db,
		repomanager:                 m,
		logger:                      logger.With("module", "auth_service"),
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Login resolves usernameOrEmail, verifies the password, and returns a signed
// access token plus the identity summary. Unknown user and wrong password
// both yield common.ErrInvalidCredentials so responses cannot be used to
// enumerate accounts.
func (s *AuthService) Login(ctx context.Context, usernameOrEmail, password string) (*AuthResult, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUsernameOrEmail(ctx, usernameOrEmail)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		s.logger.Error(ctx, "login lookup failed", "error", err.Error())
		return nil, common.ErrorInternal
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.Username, user.ID, user.Email,
		s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		s.logger.Error(ctx, "token generation failed", "error", err.Error())
		return nil, common.ErrorInternal
	}

	return &AuthResult{
		ID:          user.ID,
		AccessToken: token,
		Username:    user.Username,
		Email:       user.Email,
	}, nil
}
