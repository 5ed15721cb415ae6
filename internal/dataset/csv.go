package dataset

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/leapstack-labs/hrdash/pkg/core"
)

func init() {
	Register("csv", func(cfg Config, logger *slog.Logger) (Source, error) {
		return NewCSV(cfg.Path, logger), nil
	})
}

// CSV reads the dataset from a comma-separated file with a header row.
type CSV struct {
	path   string
	logger *slog.Logger
	now    func() time.Time
}

// NewCSV returns a CSV source for path. A nil logger discards.
func NewCSV(path string, logger *slog.Logger) *CSV {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CSV{path: path, logger: logger, now: time.Now}
}

// Describe returns the file path.
func (c *CSV) Describe() string { return c.path }

// Load reads and parses the whole file.
func (c *CSV) Load(ctx context.Context) (*core.Table, error) {
	if c.path == "" {
		return nil, &core.LoadError{Source: "csv", Err: errors.New("no path configured")}
	}

	f, err := os.Open(c.path)
	if err != nil {
		return nil, &core.LoadError{Source: c.path, Err: err}
	}
	defer func() { _ = f.Close() }()

	start := time.Now()
	tbl, err := c.read(ctx, bufio.NewReader(f))
	if err != nil {
		return nil, err
	}
	c.logger.Debug("dataset loaded",
		slog.String("path", c.path),
		slog.Int("rows", tbl.Len()),
		slog.Duration("duration", time.Since(start)))
	return tbl, nil
}

func (c *CSV) read(ctx context.Context, r io.Reader) (*core.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &core.LoadError{Source: c.path, Err: errors.New("empty file")}
	}
	if err != nil {
		return nil, &core.LoadError{Source: c.path, Err: fmt.Errorf("read header: %w", err)}
	}

	l, err := resolveHeader(c.path, header)
	if err != nil {
		return nil, err
	}
	parser := newRowParser(l, c.now())

	var rows []core.Employee
	for row := 1; ; row++ {
		if row%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &core.LoadError{Source: c.path, Row: row, Err: err}
		}
		if blank(record) {
			continue
		}
		e, err := parser.parse(row, record)
		if err != nil {
			return nil, err
		}
		rows = append(rows, e)
	}
	return core.NewTable(rows), nil
}

func blank(record []string) bool {
	for _, v := range record {
		if v != "" {
			return false
		}
	}
	return true
}
