// Package profiles provides a PostgreSQL-backed repository for the 1:1
// public profiles attached to user accounts.
package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mvaldesc/conecta-api/internal/common"
	"github.com/mvaldesc/conecta-api/internal/dbx"
	"github.com/mvaldesc/conecta-api/internal/server/models"
)

const profileColumns = `id, name, cover_image, image_1, image_2, image_3,
	description, whatsapp_link, facebook_link, user_id, created_at, updated_at`

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanProfile(row *sql.Row) (*models.Profile, error) {
	p := &models.Profile{}
	err := row.Scan(&p.ID, &p.Name, &p.CoverImage, &p.Image1, &p.Image2, &p.Image3,
		&p.Description, &p.WhatsappLink, &p.FacebookLink, &p.UserID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	query := `
		INSERT INTO profiles (id, name, user_id)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, profile.ID, profile.Name, profile.UserID).
		Scan(&profile.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return profile, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return scanProfile(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	return scanProfile(r.db.QueryRowContext(ctx, query, userID))
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Profile
	for rows.Next() {
		p := &models.Profile{}
		if err := rows.Scan(&p.ID, &p.Name, &p.CoverImage, &p.Image1, &p.Image2, &p.Image3,
			&p.Description, &p.WhatsappLink, &p.FacebookLink, &p.UserID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	query := `
		UPDATE profiles SET name = $2, cover_image = $3, image_1 = $4, image_2 = $5,
			image_3 = $6, description = $7, whatsapp_link = $8, facebook_link = $9,
			updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query, profile.ID, profile.Name,
		profile.CoverImage, profile.Image1, profile.Image2, profile.Image3,
		profile.Description, profile.WhatsappLink, profile.FacebookLink).
		Scan(&profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return profile, nil
}
