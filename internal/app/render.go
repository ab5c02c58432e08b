package app

import (
	"context"
	"fmt"
	"io"

	"github.com/medlux/wardgrid/internal/dataset"
	"github.com/medlux/wardgrid/internal/export"
	"github.com/medlux/wardgrid/internal/grid"
)

// RenderOptions select one screen page to write non-interactively.
type RenderOptions struct {
	ConfigPath  string
	Sources     map[string]string
	Screen      string
	Query       string
	Page        int
	RowsPerPage int
	All         bool // the entire filtered view on one page
	Format      export.Format
}

// Render loads one screen's records and writes the selected page to w.
// Unlike the TUI, a failing source is an error here.
func Render(ctx context.Context, w io.Writer, opts RenderOptions) error {
	view, err := ComputeView(ctx, opts)
	if err != nil {
		return err
	}
	if err := export.Write(ctx, w, opts.Format, view); err != nil {
		return fmt.Errorf("write %s: %w", opts.Format, err)
	}
	return nil
}

// ComputeView runs the grid pipeline for the options' screen, query and page.
func ComputeView(ctx context.Context, opts RenderOptions) (grid.View, error) {
	cfg, err := LoadConfig(opts.ConfigPath, opts.Sources, opts.RowsPerPage, 0)
	if err != nil {
		return grid.View{}, err
	}
	screen, err := lookupScreen(opts.Screen)
	if err != nil {
		return grid.View{}, err
	}

	var data grid.Dataset
	if spec, ok := cfg.Sources[screen.Name]; ok {
		src, err := dataset.Open(screen.Name, spec)
		if err != nil {
			return grid.View{}, err
		}
		if data, err = src.Load(ctx); err != nil {
			return grid.View{}, fmt.Errorf("load %s: %w", screen.Name, err)
		}
	} else if data, err = screen.Seed(); err != nil {
		return grid.View{}, err
	}

	model := grid.NewModel(screen.Table, data)
	model.SetPageSize(cfg.RowsPerPage)
	model.SetQuery(opts.Query)
	if opts.All {
		model.SetPageSize(max(len(model.Filtered()), 1))
	}
	model.GoTo(opts.Page)
	return model.View(), nil
}
