package catalog

import (
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/medlux/wardgrid/internal/dataset"
	"github.com/medlux/wardgrid/internal/grid"
)

//go:embed seed/*.json
var seedFS embed.FS

var (
	// ErrUnknownScreen reports a screen name that is not in the catalog.
	ErrUnknownScreen = errors.New("unknown screen")
	// ErrNoRecord is returned by Act when no row has the given key.
	ErrNoRecord = errors.New("no record with key")
	// ErrNoAction is returned by Act when the action is not offered for the
	// record in its current state.
	ErrNoAction = errors.New("action not available")
)

// Screen is one table of the ward front end: its columns, classifier, row
// actions and embedded seed records.
type Screen struct {
	Name     string
	Title    string
	Subtitle string
	Table    grid.Table
	seed     string
	actions  []rowAction
}

// rowAction is a state transition offered on records that satisfy when.
type rowAction struct {
	grid.Action
	when  func(grid.Record) bool
	apply func(grid.Record)
}

// Seed decodes the screen's embedded records.
func (s Screen) Seed() (grid.Dataset, error) {
	data, err := seedFS.ReadFile("seed/" + s.seed)
	if err != nil {
		return nil, fmt.Errorf("read seed %s: %w", s.seed, err)
	}
	records, err := dataset.DecodeJSON(data)
	if err != nil {
		return nil, fmt.Errorf("decode seed %s: %w", s.seed, err)
	}
	return records, nil
}

// ActionsFor lists the actions offered for rec.
func (s Screen) ActionsFor(rec grid.Record) []grid.Action {
	var out []grid.Action
	for _, a := range s.actions {
		if a.when == nil || a.when(rec) {
			out = append(out, a.Action)
		}
	}
	return out
}

// Act applies actionID to the record identified by key and returns a new
// dataset. data itself is never modified.
func (s Screen) Act(data grid.Dataset, key, actionID string) (grid.Dataset, error) {
	var action *rowAction
	for i := range s.actions {
		if s.actions[i].ID == actionID {
			action = &s.actions[i]
			break
		}
	}
	if action == nil {
		return nil, fmt.Errorf("%s: %w: %q", s.Name, ErrNoAction, actionID)
	}

	for _, row := range data.Rows() {
		if row.Key() != key {
			continue
		}
		if action.when != nil && !action.when(row.Record) {
			return nil, fmt.Errorf("%s %s: %w: %q", s.Name, key, ErrNoAction, actionID)
		}
		out := make(grid.Dataset, len(data))
		copy(out, data)
		updated := row.Record.Clone()
		action.apply(updated)
		out[row.Index] = updated
		return out, nil
	}
	return nil, fmt.Errorf("%s: %w %q", s.Name, ErrNoRecord, key)
}

// Names returns every screen name in catalog order.
func Names() []string {
	names := make([]string, len(screens))
	for i, s := range screens {
		names[i] = s.Name
	}
	return names
}

// All returns every screen in catalog order.
func All() []Screen {
	out := make([]Screen, len(screens))
	copy(out, screens)
	return out
}

// Lookup finds a screen by name, case-insensitively. Aliases from the
// original page titles are accepted.
func Lookup(name string) (Screen, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}
	for _, s := range screens {
		if s.Name == name {
			return s, true
		}
	}
	return Screen{}, false
}

// Index returns the position of name in Names, or -1.
func Index(name string) int {
	for i, s := range screens {
		if s.Name == name {
			return i
		}
	}
	return -1
}

// Suggest returns screen names sharing a prefix with name, for error hints.
func Suggest(name string) []string {
	name = strings.ToLower(strings.TrimSpace(name))
	var out []string
	for _, s := range screens {
		if name != "" && (strings.HasPrefix(s.Name, name) || strings.HasPrefix(name, s.Name)) {
			out = append(out, s.Name)
		}
	}
	sort.Strings(out)
	return out
}

func setField(field, value string) func(grid.Record) {
	return func(rec grid.Record) { rec[field] = value }
}

func fieldIs(field string, values ...string) func(grid.Record) bool {
	return func(rec grid.Record) bool {
		got := rec.Field(field)
		for _, v := range values {
			if strings.EqualFold(got, v) {
				return true
			}
		}
		return false
	}
}

func fieldIsNot(field string, values ...string) func(grid.Record) bool {
	is := fieldIs(field, values...)
	return func(rec grid.Record) bool { return !is(rec) }
}

func withActions(s Screen) Screen {
	if len(s.actions) > 0 {
		s.Table.Actions = s.ActionsFor
	}
	return s
}
