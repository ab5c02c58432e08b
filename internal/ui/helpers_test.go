package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/medlux/wardgrid/internal/grid"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"Printer offline", 20, "Printer offline"},
		{"Printer offline", 8, "Printer…"},
		{"Printer offline", 1, "…"},
		{"Printer offline", 0, ""},
		{"Émile Dubois", 6, "Émile…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestTruncateMiddle(t *testing.T) {
	got := truncateMiddle("/home/ward/data/patients.yaml", 16)
	if lipgloss.Width(got) != 16 {
		t.Fatalf("truncateMiddle width = %d, want 16 (%q)", lipgloss.Width(got), got)
	}
	if got[len(got)-5:] != ".yaml" {
		t.Fatalf("truncateMiddle(%q) lost the file extension", got)
	}
	if got := truncateMiddle("short", 16); got != "short" {
		t.Fatalf("truncateMiddle(short) = %q", got)
	}
}

func TestBgStylePad(t *testing.T) {
	bg := NewBgStyle("#000000")
	plain := lipgloss.NewStyle()
	for _, align := range []alignment{alignLeft, alignRight, alignCenter} {
		got := bg.Pad("ICU", 9, align, plain)
		if w := lipgloss.Width(got); w != 9 {
			t.Fatalf("Pad align %d width = %d, want 9", align, w)
		}
	}
	if w := lipgloss.Width(bg.Pad("Cardiology ward", 6, alignLeft, plain)); w != 6 {
		t.Fatalf("Pad truncating width = %d, want 6", w)
	}
}

func TestFitColumns(t *testing.T) {
	table := grid.Table{Columns: []grid.Column{
		{ID: "name", Label: "Name"},
		{ID: "notes", Label: "Notes"},
		{ID: "status", Label: "Status", Cell: grid.Badge(nil, grid.ToneNeutral)},
	}}
	data := grid.Dataset{
		{"name": "Carlos Mendez", "notes": "Post-operative observation, low sodium diet", "status": "Stable"},
		{"name": "Li", "notes": "", "status": "Critical"},
	}
	m := grid.NewModel(table, data)
	view := m.View()

	wide := fitColumns(view, 200)
	if wide[0] != len("Carlos Mendez") {
		t.Fatalf("name width = %d, want %d", wide[0], len("Carlos Mendez"))
	}
	// Badges reserve one cell of padding on each side.
	if wide[2] != len("Critical")+2 {
		t.Fatalf("status width = %d, want %d", wide[2], len("Critical")+2)
	}

	narrow := fitColumns(view, 40)
	if got := total(narrow) + 4; got > 40 {
		t.Fatalf("narrow layout uses %d cells, want <= 40 (%v)", got, narrow)
	}
	if narrow[1] >= wide[1] {
		t.Fatalf("widest column was not shrunk: %v", narrow)
	}
}

func TestClassifySourceError(t *testing.T) {
	tests := []struct {
		msg  string
		want string
	}{
		{"dial tcp 127.0.0.1:80: connect: connection refused", "OFFLINE"},
		{"context deadline exceeded", "TIMEOUT"},
		{"decode response: invalid character", "UNREADABLE"},
		{"something else", "ERROR"},
	}
	for _, tt := range tests {
		if got := classifySourceError(errString(tt.msg)); got != tt.want {
			t.Fatalf("classifySourceError(%q) = %q, want %q", tt.msg, got, tt.want)
		}
	}
}

type errString string

func (e errString) Error() string { return string(e) }
