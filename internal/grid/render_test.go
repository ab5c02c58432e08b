package grid

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRender_CellsFollowColumnOrder(t *testing.T) {
	cols := []Column{
		{ID: "name", Label: "Name"},
		{ID: "beds", Label: "Beds", Align: AlignRight},
	}
	rows := Dataset{{"id": 7, "name": "ICU", "beds": 12}}.Rows()

	got := Render(rows, cols, nil, nil)
	if len(got) != 1 {
		t.Fatalf("Render returned %d rows, want 1", len(got))
	}
	want := []Cell{
		{Column: "name", Text: "ICU"},
		{Column: "beds", Text: "12", Align: AlignRight},
	}
	if diff := cmp.Diff(want, got[0].Cells); diff != "" {
		t.Fatalf("cells mismatch (-want +got):\n%s", diff)
	}
	if got[0].Key != "7" || got[0].Index != 0 {
		t.Fatalf("key/index = %q/%d, want 7/0", got[0].Key, got[0].Index)
	}
}

func TestRender_MissingFieldsAndMalformedColumns(t *testing.T) {
	cols := []Column{
		{ID: "", Label: "Broken"},
		{ID: "absent", Label: "Absent"},
		{ID: "name"},
	}
	got := Render(Dataset{{"name": "x"}}.Rows(), cols, nil, nil)
	cells := got[0].Cells
	if cells[0].Text != "" || cells[1].Text != "" {
		t.Fatalf("malformed/missing cells = %q/%q, want empty", cells[0].Text, cells[1].Text)
	}
	if cells[2].Text != "x" {
		t.Fatalf("name cell = %q, want x", cells[2].Text)
	}
}

func TestRender_CriticalMarkerOnlyOnFirstColumn(t *testing.T) {
	cols := []Column{{ID: "name"}, {ID: "status"}}
	data := Dataset{
		{"name": "a", "status": "Critical"},
		{"name": "b", "status": "Urgent"},
	}
	got := Render(data.Rows(), cols, nil, nil)

	if !got[0].Cells[0].Marker || got[0].Cells[1].Marker {
		t.Fatalf("critical row markers = %v/%v, want true/false", got[0].Cells[0].Marker, got[0].Cells[1].Marker)
	}
	if got[1].Cells[0].Marker {
		t.Fatalf("urgent (non-critical) row should not carry the marker")
	}
	if !got[1].Class.Urgent {
		t.Fatalf("urgent row not classified urgent")
	}
}

func TestRender_BuiltInCellKinds(t *testing.T) {
	cols := []Column{
		{ID: "status", Cell: Badge(map[string]Tone{"Open": ToneInfo, "Resolved": ToneSuccess}, ToneWarning)},
		{ID: "route", Cell: IconTextBy(map[string]string{"IV": "💉"}, "💊")},
		{ID: "occupancy", Cell: Progress(40)},
		{ID: "first", Cell: Custom(func(v any, rec Record) string {
			return Stringify(v) + " " + rec.Field("last")
		})},
	}
	data := Dataset{
		{"status": "open", "route": "iv", "occupancy": 30, "first": "Alice", "last": "Johnson"},
		{"status": "Escalated", "route": "Oral", "occupancy": "n/a", "first": "Bob", "last": "Smith"},
		{"status": "Resolved", "route": "Oral", "occupancy": 90},
	}
	got := Render(data.Rows(), cols, nil, nil)

	r0 := got[0].Cells
	if r0[0].Tone != ToneInfo || r0[0].Kind != CellBadge {
		t.Fatalf("badge tone = %v kind = %v, want info badge", r0[0].Tone, r0[0].Kind)
	}
	if r0[1].Icon != "💉" || r0[1].Text != "iv" {
		t.Fatalf("icon cell = %q %q, want 💉 iv", r0[1].Icon, r0[1].Text)
	}
	if r0[2].Percent != 75 || r0[2].Text != "75%" {
		t.Fatalf("progress = %v %q, want 75 75%%", r0[2].Percent, r0[2].Text)
	}
	if r0[3].Text != "Alice Johnson" {
		t.Fatalf("custom = %q, want Alice Johnson", r0[3].Text)
	}

	r1 := got[1].Cells
	if r1[0].Tone != ToneWarning {
		t.Fatalf("fallback tone = %v, want warning", r1[0].Tone)
	}
	if r1[1].Icon != "💊" {
		t.Fatalf("fallback icon = %q, want 💊", r1[1].Icon)
	}
	if r1[2].Text != "" || r1[2].Percent != 0 {
		t.Fatalf("non-numeric progress = %q %v, want empty", r1[2].Text, r1[2].Percent)
	}

	if p := got[2].Cells[2].Percent; p != 100 {
		t.Fatalf("progress over scale = %v, want clamped 100", p)
	}
}

func TestRender_PanickingCallbacksDegrade(t *testing.T) {
	cols := []Column{
		{ID: "name", Cell: Custom(func(any, Record) string { panic("bad formatter") })},
		{ID: "other"},
	}
	classify := func(Record) Classification { panic("bad classifier") }
	actions := func(Record) []Action { panic("bad actions") }

	got := Render(Dataset{{"name": "x", "other": "y"}}.Rows(), cols, classify, actions)
	if got[0].Cells[0].Text != "" {
		t.Fatalf("panicking formatter cell = %q, want empty", got[0].Cells[0].Text)
	}
	if got[0].Cells[1].Text != "y" {
		t.Fatalf("sibling cell = %q, want y", got[0].Cells[1].Text)
	}
	if got[0].Class != (Classification{}) || got[0].Actions != nil {
		t.Fatalf("row should degrade to unclassified without actions, got %+v", got[0])
	}
}

func TestRender_ActionsPassThrough(t *testing.T) {
	actions := func(rec Record) []Action {
		if rec.Field("status") == "Resolved" {
			return nil
		}
		return []Action{{ID: "resolve", Label: "Resolve", Tone: ToneSuccess}}
	}
	data := Dataset{{"id": 1, "status": "Open"}, {"id": 2, "status": "Resolved"}}
	got := Render(data.Rows(), []Column{{ID: "status"}}, nil, actions)

	if diff := cmp.Diff([]Action{{ID: "resolve", Label: "Resolve", Tone: ToneSuccess}}, got[0].Actions); diff != "" {
		t.Fatalf("actions mismatch (-want +got):\n%s", diff)
	}
	if got[1].Actions != nil {
		t.Fatalf("resolved row actions = %v, want nil", got[1].Actions)
	}
}

func TestRender_NoColumns(t *testing.T) {
	got := Render(Dataset{{"status": "critical"}}.Rows(), nil, nil, nil)
	if len(got) != 1 || len(got[0].Cells) != 0 {
		t.Fatalf("Render without columns = %+v, want one row with no cells", got)
	}
}

func TestParseAlign(t *testing.T) {
	cases := map[string]Align{"right": AlignRight, " Center ": AlignCenter, "": AlignLeft, "justify": AlignLeft}
	for in, want := range cases {
		if got := ParseAlign(in); got != want {
			t.Errorf("ParseAlign(%q) = %v, want %v", in, got, want)
		}
	}
}
