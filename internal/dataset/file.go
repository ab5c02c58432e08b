package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/medlux/wardgrid/internal/grid"
)

type fileFormat int

const (
	formatJSON fileFormat = iota
	formatYAML
	formatTOML
)

func formatFor(path string) (fileFormat, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON, true
	case ".yaml", ".yml":
		return formatYAML, true
	case ".toml":
		return formatTOML, true
	default:
		return 0, false
	}
}

// FileSource reads records from a JSON, YAML or TOML file.
type FileSource struct {
	name string
	path string
}

// NewFileSource returns a FileSource for path.
func NewFileSource(name, path string) (*FileSource, error) {
	if _, ok := formatFor(path); !ok {
		return nil, fmt.Errorf("open source %q: %w: unsupported extension %q", name, ErrUnknownScheme, filepath.Ext(path))
	}
	return &FileSource{name: name, path: path}, nil
}

func (s *FileSource) Name() string { return s.name }

func (s *FileSource) Path() string { return s.path }

// Load reads and decodes the whole file.
func (s *FileSource) Load(ctx context.Context) (grid.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", s.path, ErrNotFound)
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	format, _ := formatFor(s.path)
	records, err := decodeFile(format, data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return records, nil
}

// DecodeJSON decodes a JSON document of records. Numbers are kept as
// json.Number so large integers survive.
func DecodeJSON(data []byte) (grid.Dataset, error) {
	return decodeFile(formatJSON, data)
}

func decodeFile(format fileFormat, data []byte) (grid.Dataset, error) {
	var doc any
	switch format {
	case formatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, err
		}
	case formatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	case formatTOML:
		var table map[string]any
		if err := toml.Unmarshal(data, &table); err != nil {
			return nil, err
		}
		doc = table
	}
	return decodeRecords(doc)
}
