package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures wardgrid's startup settings.
type Config struct {
	RowsPerPage   int
	DefaultScreen string
	LogFile       string
	PollSeconds   int
	Debug         bool
	Sources       map[string]string // screen name -> source spec
}

const (
	defaultConfigPath  = "~/.config/wardgrid/config.toml"
	defaultLogFile     = "~/.local/state/wardgrid/wardgrid.log"
	defaultRowsPerPage = 5
	defaultScreen      = "patients"
	defaultPollSeconds = 5
	maxRowsPerPage     = 100
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		RowsPerPage:   defaultRowsPerPage,
		DefaultScreen: defaultScreen,
		LogFile:       mustExpand(defaultLogFile),
		PollSeconds:   defaultPollSeconds,
		Sources:       map[string]string{},
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		RowsPerPage   *int              `toml:"rows_per_page"`
		DefaultScreen string            `toml:"default_screen"`
		LogFile       *string           `toml:"log_file"`
		PollSeconds   *int              `toml:"poll_seconds"`
		Debug         bool              `toml:"debug"`
		Sources       map[string]string `toml:"sources"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if raw.RowsPerPage != nil {
		cfg.RowsPerPage = *raw.RowsPerPage
	}
	if screen := strings.TrimSpace(raw.DefaultScreen); screen != "" {
		cfg.DefaultScreen = strings.ToLower(screen)
	}
	if raw.LogFile != nil {
		// An explicit empty log_file disables logging.
		cfg.LogFile = strings.TrimSpace(*raw.LogFile)
		if cfg.LogFile != "" {
			cfg.LogFile = mustExpand(cfg.LogFile)
		}
	}
	if raw.PollSeconds != nil {
		cfg.PollSeconds = *raw.PollSeconds
	}
	cfg.Debug = raw.Debug

	for name, spec := range raw.Sources {
		name = strings.ToLower(strings.TrimSpace(name))
		spec = strings.TrimSpace(spec)
		if name == "" || spec == "" {
			continue
		}
		cfg.Sources[name] = ExpandSource(spec)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.RowsPerPage < 1 || c.RowsPerPage > maxRowsPerPage {
		return fmt.Errorf("invalid config: rows_per_page %d outside 1..%d", c.RowsPerPage, maxRowsPerPage)
	}
	if c.PollSeconds < 0 {
		return fmt.Errorf("invalid config: poll_seconds %d is negative", c.PollSeconds)
	}
	return nil
}

// SourceNames returns configured source names in sorted order.
func (c Config) SourceNames() []string {
	names := make([]string, 0, len(c.Sources))
	for name := range c.Sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExpandSource expands a leading tilde in a file path or a sqlite:// path.
// URLs are returned unchanged.
func ExpandSource(spec string) string {
	const sqlitePrefix = "sqlite://"
	switch {
	case strings.HasPrefix(spec, sqlitePrefix):
		rest := strings.TrimPrefix(spec, sqlitePrefix)
		path, query, _ := strings.Cut(rest, "?")
		if strings.HasPrefix(path, "~") {
			path = mustExpand(path)
		}
		if query != "" {
			return sqlitePrefix + path + "?" + query
		}
		return sqlitePrefix + path
	case strings.Contains(spec, "://"):
		return spec
	case strings.HasPrefix(spec, "~"):
		return mustExpand(spec)
	default:
		return spec
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
