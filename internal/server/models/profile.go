package models

import (
	"database/sql"
	"time"
)

// Profile is the 1:1 public profile attached to a user. Image fields hold
// object-storage keys, not URLs; optional fields stay NULL until set.
type Profile struct {
	ID           string
	Name         string
	CoverImage   sql.NullString
	Image1       sql.NullString
	Image2       sql.NullString
	Image3       sql.NullString
	Description  sql.NullString
	WhatsappLink sql.NullString
	FacebookLink sql.NullString
	UserID       string
	CreatedAt    time.Time
	UpdatedAt    sql.NullTime
}
