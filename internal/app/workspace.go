package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/medlux/wardgrid/internal/catalog"
	"github.com/medlux/wardgrid/internal/dataset"
)

// embeddedLabel describes screens served from their built-in seed records.
const embeddedLabel = "embedded"

// Workspace is the catalog screens together with the sources feeding them.
// Screens without a configured source are seeded into the store from their
// embedded records.
type Workspace struct {
	Store   *dataset.Store
	Screens []catalog.Screen
	Sources []dataset.Source
	Labels  map[string]string // screen name to source description
}

// OpenWorkspace resolves every source spec against the catalog. specs maps
// screen names to source specs as accepted by dataset.Open.
func OpenWorkspace(specs map[string]string) (*Workspace, error) {
	ws := &Workspace{
		Store:   &dataset.Store{},
		Screens: catalog.All(),
		Labels:  make(map[string]string),
	}

	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		screen, err := lookupScreen(name)
		if err != nil {
			return nil, fmt.Errorf("source %q: %w", name, err)
		}
		src, err := dataset.Open(screen.Name, specs[name])
		if err != nil {
			return nil, err
		}
		ws.Sources = append(ws.Sources, src)
		ws.Labels[screen.Name] = specs[name]
	}

	for _, screen := range ws.Screens {
		if _, ok := ws.Labels[screen.Name]; ok {
			continue
		}
		data, err := screen.Seed()
		ws.Store.Update(screen.Name, data, err)
		if err != nil {
			return nil, err
		}
		ws.Labels[screen.Name] = embeddedLabel
	}
	return ws, nil
}

// lookupScreen finds a catalog screen, suggesting close names on failure.
func lookupScreen(name string) (catalog.Screen, error) {
	screen, ok := catalog.Lookup(name)
	if ok {
		return screen, nil
	}
	if hints := catalog.Suggest(name); len(hints) > 0 {
		return catalog.Screen{}, fmt.Errorf("%w %q (did you mean %s?)", catalog.ErrUnknownScreen, name, strings.Join(hints, ", "))
	}
	return catalog.Screen{}, fmt.Errorf("%w %q", catalog.ErrUnknownScreen, name)
}
