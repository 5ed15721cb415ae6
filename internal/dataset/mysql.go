package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-sql-driver/mysql"
)

func init() {
	Register("mysql", newMySQL)
}

// newMySQL reads dataset.table from MySQL. The DSN uses the driver's
// user:pass@tcp(host:port)/db form; ${VAR} references are expanded.
func newMySQL(cfg Config, logger *slog.Logger) (Source, error) {
	if cfg.DSN == "" {
		return nil, errNoDSN
	}
	mc, err := mysql.ParseDSN(os.ExpandEnv(cfg.DSN))
	if err != nil {
		return nil, fmt.Errorf("parse mysql dsn: %w", err)
	}
	table := tableOrDefault(cfg.Table)

	return &sqlSource{
		dialect: mysqlDialect,
		label:   mc.DBName + "." + table,
		from:    mysqlDialect.quoteIdent(table),
		logger:  logger,
		now:     time.Now,
		open: func(ctx context.Context) (*sql.DB, error) {
			connector, err := mysql.NewConnector(mc)
			if err != nil {
				return nil, err
			}
			db := sql.OpenDB(connector)
			db.SetConnMaxLifetime(5 * time.Minute)
			if err := db.PingContext(ctx); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("ping mysql: %w", err)
			}
			logger.Debug("connected to mysql", slog.String("addr", mc.Addr), slog.String("database", mc.DBName))
			return db, nil
		},
	}, nil
}
