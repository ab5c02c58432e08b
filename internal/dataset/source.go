package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/medlux/wardgrid/internal/grid"
)

var (
	// ErrUnknownScheme is returned by Open for specs it cannot route.
	ErrUnknownScheme = errors.New("unknown source scheme")
	// ErrBadTable is returned when a sqlite table name is missing or unsafe.
	ErrBadTable = errors.New("invalid table name")
	// ErrNotFound is returned when a source's backing data does not exist.
	ErrNotFound = errors.New("source not found")
)

// Source loads one dataset.
type Source interface {
	Name() string
	Load(ctx context.Context) (grid.Dataset, error)
}

// FileBacked is implemented by sources whose data lives in a local file, so
// a Watcher can reload them on change.
type FileBacked interface {
	Source
	Path() string
}

// Open resolves a source spec into a Source named name. Accepted specs are
// sqlite://path?table=t, http(s):// URLs and file paths ending in .json,
// .yaml, .yml or .toml.
func Open(name, spec string) (Source, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, fmt.Errorf("open source %q: empty spec", name)
	}

	switch {
	case strings.HasPrefix(spec, "sqlite://"):
		return openSQLite(name, spec)
	case strings.HasPrefix(spec, "http://"), strings.HasPrefix(spec, "https://"):
		return NewHTTPSource(name, spec)
	case strings.Contains(spec, "://"):
		return nil, fmt.Errorf("open source %q: %w: %s", name, ErrUnknownScheme, spec)
	}

	if _, ok := formatFor(spec); !ok {
		return nil, fmt.Errorf("open source %q: %w: unsupported extension %q", name, ErrUnknownScheme, filepath.Ext(spec))
	}
	return &FileSource{name: name, path: spec}, nil
}

func openSQLite(name, spec string) (Source, error) {
	u, err := url.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("parse sqlite spec %q: %w", spec, err)
	}
	path := u.Host + u.Path
	if path == "" {
		return nil, fmt.Errorf("open source %q: %w: sqlite path is empty", name, ErrNotFound)
	}
	table := u.Query().Get("table")
	if table == "" {
		table = name
	}
	return NewSQLiteSource(name, path, table)
}

// decodeRecords accepts either a top-level array of objects or an object
// holding one under "records".
func decodeRecords(doc any) (grid.Dataset, error) {
	var items []any
	switch v := doc.(type) {
	case nil:
		return grid.Dataset{}, nil
	case []any:
		items = v
	case map[string]any:
		recs, ok := v["records"]
		if !ok {
			return nil, fmt.Errorf("document has no records array")
		}
		list, ok := recs.([]any)
		if !ok {
			return nil, fmt.Errorf("records is %T, want array", recs)
		}
		items = list
	default:
		return nil, fmt.Errorf("document is %T, want array or object", doc)
	}

	out := make(grid.Dataset, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("record %d is %T, want object", i, item)
		}
		out = append(out, normalizeRecord(obj))
	}
	return out, nil
}

func normalizeRecord(obj map[string]any) grid.Record {
	rec := make(grid.Record, len(obj))
	for k, v := range obj {
		rec[k] = normalizeValue(v)
	}
	return rec
}

// normalizeValue folds decoder-specific types into the primitives the engine
// stringifies directly.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case nil, string, bool, json.Number,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return val
	case []byte:
		return string(val)
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format(time.DateOnly)
		}
		return val.Format(time.RFC3339)
	default:
		return grid.Stringify(val)
	}
}
