package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/go-viper/mapstructure/v2"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

func init() {
	Register("duckdb", newDuckDB)
}

// DuckDBParams holds DuckDB-specific configuration, decoded from
// dataset.params.
type DuckDBParams struct {
	// Extensions to install and load before reading (e.g. "httpfs").
	Extensions []string `mapstructure:"extensions"`

	// Settings applied with SET (e.g. memory_limit, threads).
	Settings map[string]string `mapstructure:"settings"`
}

// ParseDuckDBParams decodes params. Scalar values are coerced to strings.
func ParseDuckDBParams(params map[string]any) (*DuckDBParams, error) {
	p := &DuckDBParams{}
	if len(params) == 0 {
		return p, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           p,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(params); err != nil {
		return nil, fmt.Errorf("duckdb params: %w", err)
	}
	return p, nil
}

var settingName = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// statements returns the session setup SQL for p.
func (p *DuckDBParams) statements() ([]string, error) {
	var stmts []string
	for _, ext := range p.Extensions {
		if !settingName.MatchString(ext) {
			return nil, fmt.Errorf("invalid extension name %q", ext)
		}
		stmts = append(stmts, "INSTALL "+ext, "LOAD "+ext)
	}
	keys := make([]string, 0, len(p.Settings))
	for k := range p.Settings {
		if !settingName.MatchString(k) {
			return nil, fmt.Errorf("invalid setting name %q", k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		stmts = append(stmts, fmt.Sprintf("SET %s = %s", k, quoteLiteral(p.Settings[k])))
	}
	return stmts, nil
}

// newDuckDB reads a CSV file through read_csv_auto, or a table when
// dataset.table is set (dataset.path is then the database file).
func newDuckDB(cfg Config, logger *slog.Logger) (Source, error) {
	params, err := ParseDuckDBParams(cfg.Params)
	if err != nil {
		return nil, err
	}
	setup, err := params.statements()
	if err != nil {
		return nil, err
	}

	dsn := ":memory:"
	src := &sqlSource{dialect: duckdbDialect, logger: logger, now: time.Now}
	if cfg.Table != "" {
		if cfg.Path != "" {
			dsn = cfg.Path + "?access_mode=READ_ONLY"
		}
		src.label = cfg.Table
		src.from = duckdbDialect.quoteIdent(cfg.Table)
	} else {
		abs, err := filepath.Abs(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", cfg.Path, err)
		}
		src.label = cfg.Path
		src.from = fmt.Sprintf("read_csv_auto(%s, header=true, all_varchar=true)", quoteLiteral(abs))
	}

	src.open = func(ctx context.Context) (*sql.DB, error) {
		db, err := sql.Open("duckdb", dsn)
		if err != nil {
			return nil, fmt.Errorf("open duckdb: %w", err)
		}
		// SET is per connection.
		db.SetMaxOpenConns(1)
		for _, stmt := range setup {
			logger.Debug("duckdb setup", slog.String("sql", stmt))
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("%s: %w", stmt, err)
			}
		}
		return db, nil
	}
	return src, nil
}
