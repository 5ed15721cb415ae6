package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

func init() {
	Register("postgres", newPostgres)
}

// newPostgres reads dataset.table over pgx. ${VAR} references in the DSN
// are expanded from the environment.
func newPostgres(cfg Config, logger *slog.Logger) (Source, error) {
	if cfg.DSN == "" {
		return nil, errNoDSN
	}
	connCfg, err := pgx.ParseConfig(os.ExpandEnv(cfg.DSN))
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	table := tableOrDefault(cfg.Table)

	return &sqlSource{
		dialect: postgresDialect,
		label:   connCfg.Database + "." + table,
		from:    postgresDialect.quoteIdent(table),
		logger:  logger,
		now:     time.Now,
		open: func(ctx context.Context) (*sql.DB, error) {
			logger.Debug("connecting to postgres",
				slog.String("host", connCfg.Host),
				slog.String("database", connCfg.Database))
			db := stdlib.OpenDB(*connCfg)
			if err := db.PingContext(ctx); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("ping postgres: %w", err)
			}
			return db, nil
		},
	}, nil
}
