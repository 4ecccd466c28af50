package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/RomRom16/dossierfortil/internal/config"
	"github.com/RomRom16/dossierfortil/internal/database"
	"github.com/RomRom16/dossierfortil/internal/database/migration"
	dbpostgres "github.com/RomRom16/dossierfortil/internal/database/postgres"
	dbsqlite "github.com/RomRom16/dossierfortil/internal/database/sqlite"
)

type Container struct {
	Config config.Config
	DB     database.DB
}

// NewContainer connects the configured backend and applies pending
// migrations before the server starts accepting requests.
func NewContainer(cfg config.Config) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var (
		db  database.DB
		err error
	)
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err = dbpostgres.Connect(ctx, cfg.Database)
	case config.DriverSQLite:
		db, err = dbsqlite.Connect(ctx, cfg.Database)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
	if err != nil {
		return nil, err
	}

	runner := migration.Runner{
		Dir:     filepath.Join(cfg.Database.MigrationsDir, cfg.Database.Driver),
		Dialect: cfg.Database.Driver,
	}
	if err := runner.Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &Container{Config: cfg, DB: db}, nil
}

func (c *Container) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
