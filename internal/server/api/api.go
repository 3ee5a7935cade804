// Package api exposes the service layer over HTTP using gin. Handlers stay
// thin: bind the request, call a service, map the result or sentinel error
// to a response.
package api

import (
	"context"

	"github.com/mvaldesc/conecta-api/internal/logging"
	"github.com/mvaldesc/conecta-api/internal/server/models"
	"github.com/mvaldesc/conecta-api/internal/server/services"
)

// TokenAuthenticator resolves a bearer token to the account it was issued
// for.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, bearerToken string) (*models.User, error)
}

type AuthService interface {
	Login(ctx context.Context, usernameOrEmail, password string) (*services.AuthResult, error)
}

type UserService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	CreateSuperuser(ctx context.Context, username, email, password, superuserKey string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetAll(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, id string, upd services.UserUpdate) (*models.User, error)
	ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error
	Delete(ctx context.Context, id string) error
}

type ProfileService interface {
	GetAll(ctx context.Context) ([]*models.Profile, error)
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	Update(ctx context.Context, profileID string, upd services.ProfileUpdate) (*models.Profile, error)
}

type ImageService interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
	GetPresignedGetURL(ctx context.Context, key string) (string, error)
}

// API bundles the dependencies the handlers need.
type API struct {
	authenticator TokenAuthenticator
	auth          AuthService
	users         UserService
	profiles      ProfileService
	images        ImageService
	logger        logging.Logger
}

func New(authenticator TokenAuthenticator, auth AuthService, users UserService,
	profiles ProfileService, images ImageService, logger logging.Logger) *API {
	return &API{
		authenticator: authenticator,
		auth:          auth,
		users:         users,
		profiles:      profiles,
		images:        images,
		logger:        logger.With("module", "api"),
	}
}
