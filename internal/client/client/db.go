package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophershop/internal/client/migrations"
	"github.com/dmitrijs2005/gophershop/internal/client/repositories/cart"
	"github.com/dmitrijs2005/gophershop/internal/client/repositories/catalog"
	"github.com/dmitrijs2005/gophershop/internal/client/repositories/metadata"

	_ "modernc.org/sqlite"
)

type Repositories struct {
	Metadata metadata.Repository
	Cart     cart.Repository
	Catalog  catalog.Repository
}

func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Metadata: metadata.NewSQLiteRepository(db),
		Cart:     cart.NewSQLiteRepository(db),
		Catalog:  catalog.NewSQLiteRepository(db),
	}
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrations.Apply(ctx, db)
}

// InitDatabase opens the local store at dsn and migrates it.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}
	// a single connection serialises access to the store
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
