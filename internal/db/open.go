package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/udisondev/quincy/internal/config"
	"github.com/udisondev/quincy/internal/data"
)

// CatalogCloser is a catalog holding a database connection.
type CatalogCloser interface {
	data.Catalog
	Close() error
}

type staticCloser struct {
	*data.StaticCatalog
}

func (staticCloser) Close() error { return nil }

// OpenCatalog opens the content catalog selected by cfg.Driver.
// SQL backends get their migrations applied before the first query.
func OpenCatalog(ctx context.Context, cfg config.DatabaseConfig) (CatalogCloser, error) {
	switch cfg.Driver {
	case config.DriverStatic:
		var (
			c   *data.StaticCatalog
			err error
		)
		if cfg.ContentFile != "" {
			c, err = data.LoadCatalogFile(cfg.ContentFile)
		} else {
			c, err = data.DefaultCatalog()
		}
		if err != nil {
			return nil, err
		}
		slog.Info("static catalog opened", "file", cfg.ContentFile)
		return staticCloser{c}, nil

	case config.DriverSQLite:
		c, err := OpenSQLite(ctx, cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite catalog %s: %w", cfg.Path, err)
		}
		slog.Info("sqlite catalog opened", "path", cfg.Path)
		return c, nil

	case config.DriverPostgres:
		dsn := cfg.DSN()
		if err := RunPostgresMigrations(ctx, dsn); err != nil {
			return nil, fmt.Errorf("running migrations: %w", err)
		}
		c, err := NewPostgresCatalog(ctx, dsn)
		if err != nil {
			return nil, err
		}
		slog.Info("postgres catalog opened", "host", cfg.Host, "dbname", cfg.DBName)
		return c, nil

	default:
		return nil, fmt.Errorf("unknown catalog driver %q", cfg.Driver)
	}
}
