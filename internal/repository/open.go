package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/portfolio-api/internal/config"
	"github.com/portfolio-api/internal/database"
)

// CloseFunc releases the store connection
type CloseFunc func(ctx context.Context) error

// Open connects to the backend selected by cfg.Store.Driver, brings its
// schema up to date and returns the repositories for it
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Repositories, CloseFunc, error) {
	switch cfg.Store.Driver {
	case config.DriverMongo:
		m, err := database.NewMongo(&cfg.Mongo, log)
		if err != nil {
			return nil, nil, err
		}
		if err := m.EnsureIndexes(ctx); err != nil {
			_ = m.Close(context.Background())
			return nil, nil, err
		}
		return NewMongo(m), m.Close, nil

	case config.DriverPostgres:
		db, err := database.New(&cfg.Database, log)
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(cfg.Store.MigrationsPath); err != nil {
			_ = db.Close(context.Background())
			return nil, nil, err
		}
		return New(db), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
