package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "modernc.org/sqlite" // sqlite driver
)

func init() {
	Register("sqlite", newSQLite)
}

// newSQLite reads dataset.table from the database file at dataset.path,
// opened read-only.
func newSQLite(cfg Config, logger *slog.Logger) (Source, error) {
	table := tableOrDefault(cfg.Table)
	return &sqlSource{
		dialect: sqliteDialect,
		label:   cfg.Path + ":" + table,
		from:    sqliteDialect.quoteIdent(table),
		logger:  logger,
		now:     time.Now,
		open: func(ctx context.Context) (*sql.DB, error) {
			if _, err := os.Stat(cfg.Path); err != nil {
				return nil, err
			}
			db, err := sql.Open("sqlite", cfg.Path+"?mode=ro")
			if err != nil {
				return nil, fmt.Errorf("open sqlite: %w", err)
			}
			if err := db.PingContext(ctx); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("ping sqlite: %w", err)
			}
			return db, nil
		},
	}, nil
}
