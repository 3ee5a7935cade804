// This file implements ProfileService: public profile reads and the
// field-by-field merge used for profile updates.
package services

import (
	"context"
	"database/sql"

	"github.com/mvaldesc/conecta-api/internal/logging"
	"github.com/mvaldesc/conecta-api/internal/server/models"
	"github.com/mvaldesc/conecta-api/internal/server/repositories/repomanager"
)

// ProfileUpdate is a partial update against a profile: nil fields are left
// untouched, non-nil fields overwrite. Image fields carry object-storage
// keys produced by ImageService.
type ProfileUpdate struct {
	Name         *string
	Description  *string
	WhatsappLink *string
	FacebookLink *string
	CoverImage   *string
	Image1       *string
	Image2       *string
	Image3       *string
}

type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewProfileService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *ProfileService {
	return &ProfileService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "profile_service"),
	}
}

func (s *ProfileService) GetAll(ctx context.Context) ([]*models.Profile, error) {
	return s.repomanager.Profiles(s.db).GetAll(ctx)
}

func (s *ProfileService) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	return s.repomanager.Profiles(s.db).GetByID(ctx, id)
}

func (s *ProfileService) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	return s.repomanager.Profiles(s.db).GetByUserID(ctx, userID)
}

// Update loads the profile, merges the update field by field, and persists
// the result. An explicit merge keeps untouched columns exactly as they are.
func (s *ProfileService) Update(ctx context.Context, profileID string, upd ProfileUpdate) (*models.Profile, error) {
	repo := s.repomanager.Profiles(s.db)

	profile, err := repo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil && *upd.Name != "" {
		profile.Name = *upd.Name
	}
	applyNullable(&profile.Description, upd.Description)
	applyNullable(&profile.WhatsappLink, upd.WhatsappLink)
	applyNullable(&profile.FacebookLink, upd.FacebookLink)
	applyNullable(&profile.CoverImage, upd.CoverImage)
	applyNullable(&profile.Image1, upd.Image1)
	applyNullable(&profile.Image2, upd.Image2)
	applyNullable(&profile.Image3, upd.Image3)

	return repo.Update(ctx, profile)
}

// applyNullable overwrites dst when src is set; an empty string clears the
// column back to NULL.
func applyNullable(dst *sql.NullString, src *string) {
	if src == nil {
		return
	}
	*dst = sql.NullString{String: *src, Valid: *src != ""}
}
