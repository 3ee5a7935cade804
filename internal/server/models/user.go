package models

import (
	"database/sql"
	"time"
)

// User is a registered account. PasswordHash is the bcrypt hash of the
// password; the plaintext is never stored. UpdatedAt stays NULL until the
// first mutation.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	IsSuperuser  bool
	CreatedAt    time.Time
	UpdatedAt    sql.NullTime
}
