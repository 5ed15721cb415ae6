package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/leapstack-labs/hrdash/pkg/core"
)

// defaultTable is read when a database source names no table.
const defaultTable = "employees"

// dialect captures the SQL differences between database sources.
type dialect struct {
	name     string
	quote    byte   // identifier quote character
	textType string // CAST target for text
}

var (
	duckdbDialect   = dialect{name: "duckdb", quote: '"', textType: "VARCHAR"}
	postgresDialect = dialect{name: "postgres", quote: '"', textType: "TEXT"}
	sqliteDialect   = dialect{name: "sqlite", quote: '"', textType: "TEXT"}
	mysqlDialect    = dialect{name: "mysql", quote: '`', textType: "CHAR"}
)

// quoteIdent quotes a possibly schema-qualified identifier.
func (d dialect) quoteIdent(name string) string {
	parts := strings.Split(name, ".")
	q := string(d.quote)
	for i, p := range parts {
		parts[i] = q + strings.ReplaceAll(p, q, q+q) + q
	}
	return strings.Join(parts, ".")
}

// quoteLiteral quotes a string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// sqlSource reads the dataset from a relation through database/sql. The
// header is probed with LIMIT 0, then every required column is selected as
// text so all sources share the row parser.
type sqlSource struct {
	dialect dialect
	label   string
	from    string
	open    func(ctx context.Context) (*sql.DB, error)
	logger  *slog.Logger
	now     func() time.Time
}

func (s *sqlSource) Describe() string { return s.label }

func (s *sqlSource) Load(ctx context.Context) (*core.Table, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, &core.LoadError{Source: s.label, Err: err}
	}
	defer func() { _ = db.Close() }()

	start := time.Now()
	tbl, err := s.query(ctx, db)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("dataset loaded",
		slog.String("relation", s.label),
		slog.Int("rows", tbl.Len()),
		slog.Duration("duration", time.Since(start)))
	return tbl, nil
}

func (s *sqlSource) probe(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s LIMIT 0", s.from)) //nolint:gosec // relation is quoted
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return rows.Columns()
}

func (s *sqlSource) selectList(header []string, l *layout) string {
	cols := make([]string, len(requiredColumns))
	for _, c := range requiredColumns {
		cols[c] = fmt.Sprintf("CAST(%s AS %s)", s.dialect.quoteIdent(header[l.pos[c]]), s.dialect.textType)
	}
	return strings.Join(cols, ", ")
}

func (s *sqlSource) query(ctx context.Context, db *sql.DB) (*core.Table, error) {
	header, err := s.probe(ctx, db)
	if err != nil {
		return nil, &core.LoadError{Source: s.label, Err: fmt.Errorf("probe columns: %w", err)}
	}
	l, err := resolveHeader(s.label, header)
	if err != nil {
		return nil, err
	}

	q := fmt.Sprintf("SELECT %s FROM %s", s.selectList(header, l), s.from) //nolint:gosec // identifiers are quoted
	s.logger.Debug("querying dataset", slog.String("sql", q))
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, &core.LoadError{Source: s.label, Err: err}
	}
	defer func() { _ = rows.Close() }()

	// The select list is in column order, so records are positional.
	parser := newRowParser(identityLayout(s.label), s.now())
	values := make([]sql.NullString, len(requiredColumns))
	dest := make([]any, len(values))
	for i := range values {
		dest[i] = &values[i]
	}
	record := make([]string, len(values))

	var out []core.Employee
	row := 0
	for rows.Next() {
		row++
		if err := rows.Scan(dest...); err != nil {
			return nil, &core.LoadError{Source: s.label, Row: row, Err: err}
		}
		for i, v := range values {
			record[i] = v.String
		}
		e, err := parser.parse(row, record)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &core.LoadError{Source: s.label, Err: err}
	}
	return core.NewTable(out), nil
}

func identityLayout(source string) *layout {
	l := &layout{source: source, pos: make([]int, len(requiredColumns))}
	for i := range l.pos {
		l.pos[i] = i
	}
	return l
}

func tableOrDefault(table string) string {
	if table == "" {
		return defaultTable
	}
	return table
}

var errNoDSN = errors.New("no dsn configured")
