package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/medlux/wardgrid/internal/catalog"
	"github.com/medlux/wardgrid/internal/dataset"
	"github.com/medlux/wardgrid/internal/grid"
	"github.com/medlux/wardgrid/internal/prefs"
)

// Options configures the UI.
type Options struct {
	Context     context.Context
	Store       *dataset.Store
	Screens     []catalog.Screen
	Sources     map[string]string // screen name to source description
	StartScreen string
	RowsPerPage int
	PollTick    time.Duration
	ThemeName   string
	PrefsPath   string
	Logger      *zap.Logger
}

// screenState is the per-screen grid model and its link to the store.
type screenState struct {
	screen catalog.Screen
	grid   grid.Model
	gen    uint64 // store generation last applied
	status dataset.Snapshot
	source string
	cursor int
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *dataset.Store
	logger    *zap.Logger
	prefsPath string
	pollTick  time.Duration
	keys      keyMap

	// UI state
	theme       Theme
	help        help.Model
	width       int
	height      int
	ready       bool
	showHelp    bool
	rowsPerPage int

	// Screens
	screens []*screenState
	current int

	// Search
	search    textinput.Model
	searching bool

	// Last action outcome shown in the header
	flash    string
	flashErr bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = DefaultUIInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	rows := opts.RowsPerPage
	if rows <= 0 || rows > MaxRowsPerPage {
		rows = grid.DefaultPageSize
	}

	theme := GetTheme(themeName)
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search all fields"
	search.CharLimit = 128

	m := Model{
		ctx:         ctx,
		store:       opts.Store,
		logger:      logger,
		prefsPath:   opts.PrefsPath,
		pollTick:    pollTick,
		keys:        DefaultKeyMap(),
		theme:       theme,
		help:        newHelp(theme),
		rowsPerPage: rows,
		search:      search,
	}

	for _, sc := range opts.Screens {
		sc.Table.RowsPerPage = rows
		s := &screenState{
			screen: sc,
			grid:   grid.NewModel(sc.Table, nil),
			source: opts.Sources[sc.Name],
		}
		m.screens = append(m.screens, s)
		if strings.EqualFold(sc.Name, opts.StartScreen) {
			m.current = len(m.screens) - 1
		}
	}
	m.syncFromStore()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, tickCmd(m.pollTick))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.search.Width = max(msg.Width/3, 20)
		m.ready = true
		return m, nil

	case tickMsg:
		if m.ctx.Err() != nil {
			return m, tea.Quit
		}
		m.syncFromStore()
		return m, tickCmd(m.pollTick)
	}

	if m.searching {
		return m.updateSearch(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderGrid())
	return b.String()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	s := m.active()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.help = newHelp(m.theme)
		m.help.Width = m.width
		m.savePrefs()
	case key.Matches(msg, m.keys.NextScreen):
		m.switchScreen(1)
	case key.Matches(msg, m.keys.PrevScreen):
		m.switchScreen(-1)
	case key.Matches(msg, m.keys.Reload):
		if s != nil {
			s.gen = 0
			m.syncFromStore()
		}
	case key.Matches(msg, m.keys.Search):
		if s != nil {
			m.searching = true
			m.search.SetValue(s.grid.State().Query)
			m.search.CursorEnd()
			return m, m.search.Focus()
		}
	case key.Matches(msg, m.keys.Clear):
		if s != nil {
			s.grid.SetQuery("")
			s.cursor = 0
		}
		m.flash = ""
	case key.Matches(msg, m.keys.NextPage):
		if s != nil {
			s.grid.NextPage()
			s.cursor = 0
		}
	case key.Matches(msg, m.keys.PrevPage):
		if s != nil {
			s.grid.PrevPage()
			s.cursor = 0
		}
	case key.Matches(msg, m.keys.FirstPage):
		if s != nil {
			s.grid.GoTo(1)
			s.cursor = 0
		}
	case key.Matches(msg, m.keys.LastPage):
		if s != nil {
			s.grid.GoTo(s.grid.TotalPages())
			s.cursor = 0
		}
	case key.Matches(msg, m.keys.MoreRows):
		m.setRowsPerPage(m.rowsPerPage + 1)
	case key.Matches(msg, m.keys.FewerRows):
		m.setRowsPerPage(m.rowsPerPage - 1)
	case key.Matches(msg, m.keys.Down):
		if s != nil && s.cursor < s.grid.View().Shown-1 {
			s.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if s != nil && s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(msg, m.keys.Act):
		m.runSelectedAction()
	}
	return m, nil
}

// handleSearchKey routes keys to the search input. Every keystroke
// re-filters the active screen.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Accept):
		m.searching = false
		m.search.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Clear):
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.applyQuery()
		return m, nil
	}
	return m.updateSearch(msg)
}

func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applyQuery()
	return m, cmd
}

func (m *Model) applyQuery() {
	s := m.active()
	if s == nil {
		return
	}
	before := s.grid.State().Query
	s.grid.SetQuery(m.search.Value())
	if s.grid.State().Query != before {
		s.cursor = 0
	}
}

// active returns the current screen, or nil when there are none.
func (m Model) active() *screenState {
	if len(m.screens) == 0 {
		return nil
	}
	return m.screens[m.current]
}

func (m *Model) switchScreen(delta int) {
	if len(m.screens) == 0 {
		return
	}
	m.current = (m.current + delta + len(m.screens)) % len(m.screens)
	m.flash = ""
	m.savePrefs()
}

func (m *Model) setRowsPerPage(n int) {
	n = min(max(n, 1), MaxRowsPerPage)
	if n == m.rowsPerPage {
		return
	}
	m.rowsPerPage = n
	for _, s := range m.screens {
		s.grid.SetPageSize(n)
		s.cursor = 0
	}
	m.savePrefs()
}

// selectedRow returns the row under the cursor on the current page.
func (m Model) selectedRow() (grid.RenderedRow, bool) {
	s := m.active()
	if s == nil {
		return grid.RenderedRow{}, false
	}
	view := s.grid.View()
	if s.cursor < 0 || s.cursor >= len(view.Rows) {
		return grid.RenderedRow{}, false
	}
	return view.Rows[s.cursor], true
}

// selectedAction returns the first action offered for the selected row.
func (m Model) selectedAction() (grid.Action, bool) {
	row, ok := m.selectedRow()
	if !ok || len(row.Actions) == 0 {
		return grid.Action{}, false
	}
	return row.Actions[0], true
}

// runSelectedAction applies the selected row's first action and publishes
// the new dataset to the store and the grid.
func (m *Model) runSelectedAction() {
	s := m.active()
	row, ok := m.selectedRow()
	action, hasAction := m.selectedAction()
	if !ok || !hasAction {
		return
	}

	updated, err := s.screen.Act(s.grid.Data(), row.Key, action.ID)
	if err != nil {
		m.flash, m.flashErr = actionError(err), true
		m.logger.Warn("row action failed",
			zap.String("screen", s.screen.Name),
			zap.String("key", row.Key),
			zap.String("action", action.ID),
			zap.Error(err))
		return
	}

	if m.store != nil {
		m.store.Update(s.screen.Name, updated, nil)
		s.gen = m.store.Generation(s.screen.Name)
		s.status, _ = m.store.Status(s.screen.Name)
	}
	s.grid.SetData(updated)
	s.cursor = 0
	m.flash, m.flashErr = fmt.Sprintf("%s %s", action.Label, row.Key), false
	m.logger.Info("row action applied",
		zap.String("screen", s.screen.Name),
		zap.String("key", row.Key),
		zap.String("action", action.ID))
}

func actionError(err error) string {
	switch {
	case errors.Is(err, catalog.ErrNoAction):
		return "Action no longer available"
	case errors.Is(err, catalog.ErrNoRecord):
		return "Record not found"
	default:
		return "Action failed"
	}
}

// syncFromStore pulls every screen whose store generation moved and feeds
// the new records to its grid.
func (m *Model) syncFromStore() {
	if m.store == nil {
		return
	}
	for _, s := range m.screens {
		name := s.screen.Name
		status, ok := m.store.Status(name)
		if !ok {
			continue
		}
		s.status = status
		if !status.HasData || status.Generation == s.gen {
			continue
		}
		snap, _ := m.store.Snapshot(name)
		s.grid.SetData(snap.Data)
		s.gen = snap.Generation
		s.cursor = 0
	}
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, RowsPerPage: m.rowsPerPage}
	if s := m.active(); s != nil {
		p.Screen = s.screen.Name
	}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save prefs failed", zap.Error(err))
	}
}

// Messages

type tickMsg time.Time

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// cancelled.
func Run(opts Options) error {
	m := New(opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
		return nil
	}
	return err
}
