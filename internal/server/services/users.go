// This file implements UserService: registration (user plus default profile
// in one transaction), superuser provisioning, lookups, partial updates,
// password changes, and deletion.
package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"encoding/hex"
	"errors"

	"github.com/google/uuid"
	"github.com/mvaldesc/conecta-api/internal/common"
	"github.com/mvaldesc/conecta-api/internal/dbx"
	"github.com/mvaldesc/conecta-api/internal/logging"
	"github.com/mvaldesc/conecta-api/internal/server/auth"
	"github.com/mvaldesc/conecta-api/internal/server/config"
	"github.com/mvaldesc/conecta-api/internal/server/models"
	"github.com/mvaldesc/conecta-api/internal/server/repositories/repomanager"
)

// UserUpdate is a partial update: nil fields are left untouched.
type UserUpdate struct {
	Username *string
	Email    *string
}

// UserService manages user accounts. The authentication core only reads
// through it; every write here belongs to user management.
type UserService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	logger       logging.Logger
	superuserKey string
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		db:           db,
		repomanager:  m,
		logger:       logger.With("module", "user_service"),
		superuserKey: cfg.SuperuserKey,
	}
}

// newID returns a fresh 32-char hex id, the format shared by users and
// profiles.
func newID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

// Register creates a regular user together with its default profile. Both
// rows share the same id and are created in one transaction.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	return s.createUser(ctx, username, email, password, false)
}

// CreateSuperuser creates a superuser account. The caller-supplied key must
// match the server-held superuser key; the comparison is constant-time.
func (s *UserService) CreateSuperuser(ctx context.Context, username, email, password, superuserKey string) (*models.User, error) {
	if subtle.ConstantTimeCompare([]byte(superuserKey), []byte(s.superuserKey)) != 1 {
		return nil, common.ErrInvalidSuperuserKey
	}
	return s.createUser(ctx, username, email, password, true)
}

func (s *UserService) createUser(ctx context.Context, username, email, password string, superuser bool) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	if err := s.checkFree(ctx, repo.GetByUsername, username); err != nil {
		return nil, err
	}
	if err := s.checkFree(ctx, repo.GetByEmail, email); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		s.logger.Error(ctx, "password hashing failed", "error", err.Error())
		return nil, common.ErrorInternal
	}

	user := &models.User{
		ID:           newID(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsSuperuser:  superuser,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Users(tx).Create(ctx, user); err != nil {
			return err
		}
		// The default profile shares the user's id.
		profile := &models.Profile{ID: user.ID, Name: username, UserID: user.ID}
		_, err := s.repomanager.Profiles(tx).Create(ctx, profile)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		s.logger.Error(ctx, "user creation failed", "username", username, "error", err.Error())
		return nil, common.ErrorInternal
	}

	return user, nil
}

// checkFree fails with ErrorAlreadyExists when lookup finds an existing row.
func (s *UserService) checkFree(ctx context.Context, lookup func(context.Context, string) (*models.User, error), value string) error {
	_, err := lookup(ctx, value)
	if err == nil {
		return common.ErrorAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		s.logger.Error(ctx, "uniqueness check failed", "error", err.Error())
		return common.ErrorInternal
	}
	return nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}

func (s *UserService) GetAll(ctx context.Context) ([]*models.User, error) {
	return s.repomanager.Users(s.db).GetAll(ctx)
}

// Update applies a partial update. Changed usernames and emails are checked
// for uniqueness before the write.
func (s *UserService) Update(ctx context.Context, id string, upd UserUpdate) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Username != nil && *upd.Username != "" && *upd.Username != user.Username {
		if err := s.checkFree(ctx, repo.GetByUsername, *upd.Username); err != nil {
			return nil, err
		}
		user.Username = *upd.Username
	}
	if upd.Email != nil && *upd.Email != "" && *upd.Email != user.Email {
		if err := s.checkFree(ctx, repo.GetByEmail, *upd.Email); err != nil {
			return nil, err
		}
		user.Email = *upd.Email
	}

	return repo.Update(ctx, user)
}

// ChangePassword verifies the current password before storing the hash of
// the new one. Tokens issued before the change stay valid until expiry.
func (s *UserService) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !auth.VerifyPassword(oldPassword, user.PasswordHash) {
		return common.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		s.logger.Error(ctx, "password hashing failed", "error", err.Error())
		return common.ErrorInternal
	}

	return repo.UpdatePassword(ctx, id, hash)
}

// Delete removes a user; the profile row goes with it (ON DELETE CASCADE).
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Users(s.db).Delete(ctx, id)
}
