package profiles

import (
	"context"

	"github.com/mvaldesc/conecta-api/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	GetAll(ctx context.Context) ([]*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) (*models.Profile, error)
}
