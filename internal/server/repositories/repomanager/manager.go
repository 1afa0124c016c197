package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/billed/internal/dbx"
	"github.com/dmitrijs2005/billed/internal/server/repositories/bills"
	"github.com/dmitrijs2005/billed/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Bills(db dbx.DBTX) bills.Repository
}
