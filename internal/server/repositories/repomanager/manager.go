// Package repomanager hands out repositories bound to a DBTX, so services
// can run the same repository code against *sql.DB or an open transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/mvaldesc/conecta-api/internal/dbx"
	"github.com/mvaldesc/conecta-api/internal/server/repositories/profiles"
	"github.com/mvaldesc/conecta-api/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Profiles(db dbx.DBTX) profiles.Repository
}
