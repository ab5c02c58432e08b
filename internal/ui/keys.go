package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Reload     key.Binding

	// Screen switching
	NextScreen key.Binding
	PrevScreen key.Binding

	// Search
	Search key.Binding
	Clear  key.Binding
	Accept key.Binding

	// Paging
	NextPage  key.Binding
	PrevPage  key.Binding
	FirstPage key.Binding
	LastPage  key.Binding
	MoreRows  key.Binding
	FewerRows key.Binding

	// Rows
	Up   key.Binding
	Down key.Binding
	Act  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload from store"),
		),

		// Screen switching
		NextScreen: key.NewBinding(
			key.WithKeys("tab", "]"),
			key.WithHelp("tab/]", "Next screen"),
		),
		PrevScreen: key.NewBinding(
			key.WithKeys("shift+tab", "["),
			key.WithHelp("shift+tab/[", "Previous screen"),
		),

		// Search
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Clear search"),
		),
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Keep search"),
		),

		// Paging
		NextPage: key.NewBinding(
			key.WithKeys("right", "l", "pgdown"),
			key.WithHelp("→/l", "Next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h", "pgup"),
			key.WithHelp("←/h", "Previous page"),
		),
		FirstPage: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "First page"),
		),
		LastPage: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Last page"),
		),
		MoreRows: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "More rows per page"),
		),
		FewerRows: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "Fewer rows per page"),
		),

		// Rows
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Act: key.NewBinding(
			key.WithKeys("enter", "a"),
			key.WithHelp("enter/a", "Run row action"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.NextPage, k.PrevPage, k.Act, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Screens
		{k.NextScreen, k.PrevScreen, k.Reload},
		// Search
		{k.Search, k.Accept, k.Clear},
		// Paging
		{k.NextPage, k.PrevPage, k.FirstPage, k.LastPage, k.MoreRows, k.FewerRows},
		// Rows
		{k.Up, k.Down, k.Act},
		// General
		{k.CycleTheme, k.Help, k.Quit},
	}
}
