package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"regexp"

	// Pure-Go driver registered as "sqlite".
	_ "modernc.org/sqlite"

	"github.com/medlux/wardgrid/internal/grid"
)

var tableIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteSource reads every row of one table from a SQLite database file.
type SQLiteSource struct {
	name  string
	path  string
	table string
}

// NewSQLiteSource validates table and returns a source for it. The database
// is opened on each Load.
func NewSQLiteSource(name, path, table string) (*SQLiteSource, error) {
	if !tableIdent.MatchString(table) {
		return nil, fmt.Errorf("open source %q: %w: %q", name, ErrBadTable, table)
	}
	return &SQLiteSource{name: name, path: path, table: table}, nil
}

func (s *SQLiteSource) Name() string { return s.name }

// Path is the database file, so edits to it trigger a reload.
func (s *SQLiteSource) Path() string { return s.path }

// Table returns the queried table name.
func (s *SQLiteSource) Table() string { return s.table }

// Load runs SELECT * against the table and maps each row to a record keyed by
// column name, in the order SQLite returns them.
func (s *SQLiteSource) Load(ctx context.Context) (grid.Dataset, error) {
	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("open %s: %w", s.path, ErrNotFound)
		}
		return nil, fmt.Errorf("stat %s: %w", s.path, err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+s.table)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.table, err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns %s: %w", s.table, err)
	}

	out := grid.Dataset{}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.table, err)
		}
		rec := make(grid.Record, len(cols))
		for i, col := range cols {
			rec[col] = normalizeValue(values[i])
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", s.table, err)
	}
	return out, nil
}
