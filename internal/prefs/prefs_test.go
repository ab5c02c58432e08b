package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p != Default() {
		t.Fatalf("Load = %+v, want %+v", p, Default())
	}
}

func TestLoad_ReadsDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	prefsDir := filepath.Join(home, ".config", "wardgrid")
	if err := os.MkdirAll(prefsDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	body := "theme = \"Slate\"\nrows_per_page = 10\nscreen = \"Tickets\"\n"
	if err := os.WriteFile(filepath.Join(prefsDir, "prefs.toml"), []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := Prefs{Theme: "Slate", RowsPerPage: 10, Screen: "tickets"}
	if p != want {
		t.Fatalf("Load = %+v, want %+v", p, want)
	}
}

func TestSave_RoundTripCreatesDirs(t *testing.T) {
	prefsFile := filepath.Join(t.TempDir(), "subdir", "prefs.toml")

	p := Prefs{Theme: "Kanagawa", RowsPerPage: 7, Screen: "laboratory"}
	if err := Save(prefsFile, p); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded != p {
		t.Fatalf("Load = %+v, want %+v", loaded, p)
	}
}

func TestLoad_NormalizesValues(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Prefs
	}{
		{"empty theme", "theme = \"\"\n", Default()},
		{"negative rows", "theme = \"Slate\"\nrows_per_page = -3\n", Prefs{Theme: "Slate"}},
		{"huge rows", "rows_per_page = 5000\n", Default()},
		{"invalid toml", "not valid toml {{{\n", Default()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefsFile := filepath.Join(t.TempDir(), "prefs.toml")
			if err := os.WriteFile(prefsFile, []byte(tt.body), 0o644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			p, err := Load(prefsFile)
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}
			if p != tt.want {
				t.Fatalf("Load = %+v, want %+v", p, tt.want)
			}
		})
	}
}
