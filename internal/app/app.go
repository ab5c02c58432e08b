package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/medlux/wardgrid/internal/catalog"
	"github.com/medlux/wardgrid/internal/config"
	"github.com/medlux/wardgrid/internal/dataset"
	"github.com/medlux/wardgrid/internal/logging"
	"github.com/medlux/wardgrid/internal/prefs"
	"github.com/medlux/wardgrid/internal/ui"
)

// Options configure the wardgrid application. Zero values defer to the
// config file and saved preferences.
type Options struct {
	ConfigPath  string
	PrefsPath   string            // empty uses default ~/.config/wardgrid/prefs.toml
	Screen      string            // initial screen
	Sources     map[string]string // screen name to source spec, overrides config
	RowsPerPage int
	PollSeconds int // negative disables polling
}

// LoadConfig reads the config file and applies command-line overrides.
func LoadConfig(path string, sources map[string]string, rows, pollSeconds int) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	for name, spec := range sources {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || strings.TrimSpace(spec) == "" {
			return config.Config{}, fmt.Errorf("invalid source override %q=%q", name, spec)
		}
		cfg.Sources[name] = config.ExpandSource(strings.TrimSpace(spec))
	}
	if rows != 0 {
		cfg.RowsPerPage = rows
	}
	switch {
	case pollSeconds > 0:
		cfg.PollSeconds = pollSeconds
	case pollSeconds < 0:
		cfg.PollSeconds = 0
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// Run boots the wardgrid TUI until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := LoadConfig(opts.ConfigPath, opts.Sources, opts.RowsPerPage, opts.PollSeconds)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogFile, cfg.Debug)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	ws, err := OpenWorkspace(cfg.Sources)
	if err != nil {
		return err
	}

	start, err := startScreen(opts.Screen, userPrefs.Screen, cfg.DefaultScreen)
	if err != nil {
		return err
	}

	// Do initial refresh to populate store before UI starts
	if err := dataset.LoadAll(ctx, ws.Store, ws.Sources, logger); err != nil {
		logger.Warn("initial load incomplete", zap.Error(err))
	}

	rows := cfg.RowsPerPage
	if opts.RowsPerPage == 0 && userPrefs.RowsPerPage > 0 {
		rows = userPrefs.RowsPerPage
	}

	logger.Info("starting",
		zap.Int("screens", len(ws.Screens)),
		zap.Int("sources", len(ws.Sources)),
		zap.String("screen", start),
		zap.Int("rows_per_page", rows))

	g, gctx := errgroup.WithContext(ctx)
	runCtx, cancel := context.WithCancel(gctx)
	defer cancel()

	interval := time.Duration(cfg.PollSeconds) * time.Second
	for _, task := range startRefreshers(ws, interval, logger) {
		g.Go(func() error { return task(runCtx) })
	}

	g.Go(func() error {
		// Leaving the UI stops the background refreshers.
		defer cancel()
		return ui.Run(ui.Options{
			Context:     runCtx,
			Store:       ws.Store,
			Screens:     ws.Screens,
			Sources:     ws.Labels,
			StartScreen: start,
			RowsPerPage: rows,
			ThemeName:   userPrefs.Theme,
			PrefsPath:   prefsPath(opts.PrefsPath),
			Logger:      logger,
		})
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// startScreen picks the first screen named by the flag, the saved
// preference or the config. Only an unknown flag value is an error; stale
// preferences are ignored.
func startScreen(flag, saved, configured string) (string, error) {
	if strings.TrimSpace(flag) != "" {
		screen, err := lookupScreen(flag)
		if err != nil {
			return "", err
		}
		return screen.Name, nil
	}
	for _, name := range []string{saved, configured} {
		if screen, ok := catalog.Lookup(name); ok {
			return screen.Name, nil
		}
	}
	if names := catalog.Names(); len(names) > 0 {
		return names[0], nil
	}
	return "", nil
}

func prefsPath(path string) string {
	if strings.TrimSpace(path) == "" {
		return prefs.DefaultPath()
	}
	return path
}
