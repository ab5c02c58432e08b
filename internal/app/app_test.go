package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/medlux/wardgrid/internal/catalog"
	"github.com/medlux/wardgrid/internal/dataset"
	"github.com/medlux/wardgrid/internal/export"
)

func missingConfig(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.toml")
}

func writeTickets(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tickets.json")
	body := `[
  {"id": "T-1", "subject": "Oxygen line pressure alarm", "priority": "High", "status": "Open"},
  {"id": "T-2", "subject": "Replace ward 2 curtains", "priority": "Low", "status": "Open"}
]`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write tickets: %v", err)
	}
	return path
}

func TestOpenWorkspace_SeedsUnconfiguredScreens(t *testing.T) {
	ws, err := OpenWorkspace(nil)
	if err != nil {
		t.Fatalf("OpenWorkspace returned error: %v", err)
	}
	if len(ws.Sources) != 0 {
		t.Fatalf("Sources = %d, want 0", len(ws.Sources))
	}
	want := catalog.Names()
	sort.Strings(want)
	if diff := cmp.Diff(want, ws.Store.Names()); diff != "" {
		t.Fatalf("store names mismatch (-want +got):\n%s", diff)
	}
	for _, name := range catalog.Names() {
		snap, ok := ws.Store.Snapshot(name)
		if !ok || !snap.HasData || len(snap.Data) == 0 {
			t.Fatalf("screen %s not seeded: %+v", name, snap)
		}
		if ws.Labels[name] != embeddedLabel {
			t.Fatalf("label for %s = %q, want %q", name, ws.Labels[name], embeddedLabel)
		}
	}
}

func TestOpenWorkspace_ConfiguredSource(t *testing.T) {
	path := writeTickets(t)
	ws, err := OpenWorkspace(map[string]string{"tickets": path})
	if err != nil {
		t.Fatalf("OpenWorkspace returned error: %v", err)
	}
	if len(ws.Sources) != 1 || ws.Sources[0].Name() != "tickets" {
		t.Fatalf("Sources = %v, want tickets", ws.Sources)
	}
	if ws.Labels["tickets"] != path {
		t.Fatalf("label = %q, want %q", ws.Labels["tickets"], path)
	}
	if _, ok := ws.Store.Snapshot("tickets"); ok {
		t.Fatal("configured screen should not be seeded")
	}

	if err := dataset.LoadAll(context.Background(), ws.Store, ws.Sources, zap.NewNop()); err != nil {
		t.Fatalf("LoadAll returned error: %v", err)
	}
	snap, _ := ws.Store.Snapshot("tickets")
	if len(snap.Data) != 2 {
		t.Fatalf("loaded %d records, want 2", len(snap.Data))
	}
}

func TestOpenWorkspace_Errors(t *testing.T) {
	_, err := OpenWorkspace(map[string]string{"ticket": "tickets.json"})
	if !errors.Is(err, catalog.ErrUnknownScreen) {
		t.Fatalf("err = %v, want ErrUnknownScreen", err)
	}
	if !strings.Contains(err.Error(), "did you mean tickets") {
		t.Fatalf("err = %q, want a suggestion", err)
	}

	_, err = OpenWorkspace(map[string]string{"tickets": "ftp://host/tickets.json"})
	if !errors.Is(err, dataset.ErrUnknownScheme) {
		t.Fatalf("err = %v, want ErrUnknownScheme", err)
	}
}

func TestSplitSources(t *testing.T) {
	file, _ := dataset.NewFileSource("patients", "patients.yaml")
	remote, _ := dataset.NewHTTPSource("tickets", "http://127.0.0.1:1/tickets")

	local, rest := splitSources([]dataset.Source{file, remote})
	if len(local) != 1 || local[0] != file {
		t.Fatalf("local = %v, want the file source", local)
	}
	if len(rest) != 1 || rest[0] != remote {
		t.Fatalf("remote = %v, want the http source", rest)
	}
}

func TestStartRefreshers(t *testing.T) {
	path := writeTickets(t)
	ws, err := OpenWorkspace(map[string]string{
		"tickets":  path,
		"patients": "http://127.0.0.1:1/patients",
	})
	if err != nil {
		t.Fatalf("OpenWorkspace returned error: %v", err)
	}

	tests := []struct {
		name     string
		interval time.Duration
		want     int
	}{
		{"watch and poll", time.Second, 2},
		{"polling disabled", 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := startRefreshers(ws, tt.interval, zap.NewNop())
			if len(tasks) != tt.want {
				t.Fatalf("len(tasks) = %d, want %d", len(tasks), tt.want)
			}
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			for _, task := range tasks {
				if err := task(ctx); err != nil {
					t.Fatalf("task returned %v after cancel", err)
				}
			}
		})
	}
}

func TestStartScreen(t *testing.T) {
	tests := []struct {
		name                    string
		flag, saved, configured string
		want                    string
		wantErr                 bool
	}{
		{"flag wins", "Support Tickets", "roster", "patients", "tickets", false},
		{"saved preference", "", "roster", "patients", "roster", false},
		{"stale preference ignored", "", "billing", "care", "care", false},
		{"first screen fallback", "", "", "", catalog.Names()[0], false},
		{"unknown flag", "billing", "", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := startScreen(tt.flag, tt.saved, tt.configured)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("startScreen = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	path := missingConfig(t)

	cfg, err := LoadConfig(path, map[string]string{" Tickets ": " ~/ward/tickets.json "}, 8, -1)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.RowsPerPage != 8 || cfg.PollSeconds != 0 {
		t.Fatalf("rows %d poll %d, want 8 and 0", cfg.RowsPerPage, cfg.PollSeconds)
	}
	spec := cfg.Sources["tickets"]
	if strings.HasPrefix(spec, "~") || !strings.HasSuffix(spec, filepath.Join("ward", "tickets.json")) {
		t.Fatalf("tickets source = %q, want an expanded path", spec)
	}

	if _, err := LoadConfig(path, nil, 500, 0); err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Fatalf("err = %v, want invalid config", err)
	}
	if _, err := LoadConfig(path, map[string]string{"tickets": " "}, 0, 0); err == nil {
		t.Fatal("blank source override accepted")
	}
}

func TestComputeView(t *testing.T) {
	path := missingConfig(t)

	view, err := ComputeView(context.Background(), RenderOptions{ConfigPath: path, Screen: "tickets", Page: 9})
	if err != nil {
		t.Fatalf("ComputeView returned error: %v", err)
	}
	if view.Total != 6 || view.Page != 2 || view.Shown != 1 {
		t.Fatalf("view total %d page %d shown %d, want 6/2/1", view.Total, view.Page, view.Shown)
	}

	view, err = ComputeView(context.Background(), RenderOptions{ConfigPath: path, Screen: "tickets", All: true})
	if err != nil {
		t.Fatalf("ComputeView --all returned error: %v", err)
	}
	if view.Shown != 6 || view.TotalPages != 1 {
		t.Fatalf("--all shown %d pages %d, want 6/1", view.Shown, view.TotalPages)
	}

	view, err = ComputeView(context.Background(), RenderOptions{
		ConfigPath: path,
		Screen:     "tickets",
		Sources:    map[string]string{"tickets": writeTickets(t)},
		Query:      "oxygen",
	})
	if err != nil {
		t.Fatalf("ComputeView with source returned error: %v", err)
	}
	if view.Matched != 1 || view.Rows[0].Key != "T-1" || !view.Rows[0].Class.Urgent {
		t.Fatalf("rows = %v, want urgent T-1", view.Keys())
	}

	_, err = ComputeView(context.Background(), RenderOptions{
		ConfigPath: path,
		Screen:     "tickets",
		Sources:    map[string]string{"tickets": filepath.Join(t.TempDir(), "gone.json")},
	})
	if !errors.Is(err, dataset.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRender_WritesFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Render(context.Background(), &buf, RenderOptions{
		ConfigPath: missingConfig(t),
		Screen:     "tickets",
		Query:      "printer",
		Format:     export.FormatCSV,
	})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "Subject,") || !strings.Contains(out, "Printer offline in admin office") {
		t.Fatalf("csv output = %q", out)
	}
}
