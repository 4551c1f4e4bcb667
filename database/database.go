package database

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/mager/tracklens/config"
)

// ProvideDatabase provides a postgres client when DATABASE_URL is set and
// nil otherwise.
func ProvideDatabase(lc fx.Lifecycle, logger *zap.SugaredLogger, cfg config.Config) (*sql.DB, error) {
	if cfg.DatabaseURL == "" {
		logger.Info("no database configured, table mirror disabled")
		return nil, nil
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Errorw("Failed to open database connection", "error", err)
		return nil, err
	}

	err = db.Ping()
	if err != nil {
		logger.Errorw("Failed to ping database", "error", err)
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return db.Close()
		},
	})
	return db, nil
}

var Options = ProvideDatabase
