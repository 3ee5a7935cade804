package auth

import (
	"context"
	"errors"

	"github.com/mvaldesc/conecta-api/internal/common"
	"github.com/mvaldesc/conecta-api/internal/logging"
	"github.com/mvaldesc/conecta-api/internal/server/models"
)

// CredentialStore is the read-only view of the user store the authenticator
// needs to resolve token claims back to an account.
type CredentialStore interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// Authenticator resolves a bearer token to the user record it was issued for.
// It is the request-time gate in front of every protected handler.
type Authenticator struct {
	store  CredentialStore
	secret []byte
	logger logging.Logger
}

func NewAuthenticator(store CredentialStore, secretKey string, logger logging.Logger) *Authenticator {
	return &Authenticator{
		store:  store,
		secret: []byte(secretKey),
		logger: logger.With("module", "authenticator"),
	}
}

// Authenticate verifies the token and looks up the account it refers to.
// The id claim is authoritative; the subject (username) claim is the
// fallback. Every failure mode collapses into common.ErrorUnauthorized so
// the response does not reveal which check rejected the request.
func (a *Authenticator) Authenticate(ctx context.Context, bearerToken string) (*models.User, error) {
	claims, err := ParseToken(bearerToken, a.secret)
	if err != nil {
		a.logger.Debug(ctx, "token rejected", "token", truncateToken(bearerToken), "reason", err.Error())
		return nil, common.ErrorUnauthorized
	}

	var user *models.User
	switch {
	case claims.UserID != "":
		user, err = a.store.GetByID(ctx, claims.UserID)
	case claims.Subject != "":
		user, err = a.store.GetByUsername(ctx, claims.Subject)
	default:
		a.logger.Debug(ctx, "token carries neither id nor subject claim")
		return nil, common.ErrorUnauthorized
	}

	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			a.logger.Error(ctx, "credential store lookup failed", "error", err.Error())
		}
		return nil, common.ErrorUnauthorized
	}

	return user, nil
}

// truncateToken keeps only a short prefix for diagnostics; full tokens are
// bearer credentials and must not reach the logs.
func truncateToken(token string) string {
	const keep = 20
	if len(token) <= keep {
		return token
	}
	return token[:keep] + "..."
}
