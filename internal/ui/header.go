package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/medlux/wardgrid/internal/dataset"
	"github.com/medlux/wardgrid/internal/export"
)

// renderHeader renders the status bar: screen, counts, query and source health.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth
	sep := bg.Spaces(2)

	s := m.active()
	if s == nil {
		return styles.Header.Width(m.width).Render(
			bg.Render("wardgrid", styles.Logo) + sep +
				bg.Render("No screens", styles.WarningText.Bold(true)),
		)
	}
	view := s.grid.View()

	parts := []string{
		bg.Render("wardgrid", styles.Logo),
		bg.Render(s.screen.Title, styles.Text.Bold(true)),
	}
	if !compact {
		parts = append(parts, bg.Render(fmt.Sprintf("%d/%d", m.current+1, len(m.screens)), styles.FaintText))
	}
	parts = append(parts, bg.Render(export.Headline(view), styles.MutedText))

	if q := s.grid.State().Query; q != "" {
		parts = append(parts, bg.Render("/"+truncate(q, 18), styles.AccentText))
	}
	if health := m.formatSourceHealth(s.status, compact, styles, bg); health != "" {
		parts = append(parts, health)
	}
	if m.flash != "" {
		style := styles.SuccessText
		if m.flashErr {
			style = styles.DangerText
		}
		parts = append(parts, bg.Render(truncate(m.flash, 40), style))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// formatSourceHealth summarizes the store snapshot behind the active screen.
func (m Model) formatSourceHealth(snap dataset.Snapshot, compact bool, styles Styles, bg BgStyle) string {
	if snap.LastError != nil {
		label := "SOURCE " + classifySourceError(snap.LastError)
		if snap.IsStale() {
			label += " (stale)"
		}
		return bg.Render(label, styles.DangerText)
	}
	if snap.LastUpdated.IsZero() || compact {
		return ""
	}
	return bg.Render("updated", styles.FaintText) + bg.Space() +
		bg.Render(humanize.Time(snap.LastUpdated), styles.MutedText)
}

// classifySourceError returns a short label for a refresh failure.
func classifySourceError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, dataset.ErrNotFound):
		return "MISSING"
	case errors.Is(err, dataset.ErrBadTable), errors.Is(err, dataset.ErrUnknownScheme):
		return "MISCONFIGURED"
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	case strings.Contains(msg, "decode"), strings.Contains(msg, "parse"):
		return "UNREADABLE"
	default:
		return "ERROR"
	}
}

// renderCommandBar renders the command hints bar, or the search input while
// a search is being typed.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	if m.searching {
		hints := bg.Render("enter", styles.AccentText) + colon + bg.Render("Keep", styles.MutedText) + sep +
			bg.Render("esc", styles.AccentText) + colon + bg.Render("Clear", styles.MutedText)
		return styles.Header.Width(m.width).Render(m.search.View() + sep + hints)
	}

	type cmd struct{ key, desc string }
	commands := []cmd{
		{"/", "Search"},
		{"←/→", "Page"},
		{"+/-", fmt.Sprintf("Rows %d", m.rowsPerPage)},
		{"j/k", "Select"},
	}
	if a, ok := m.selectedAction(); ok {
		commands = append(commands, cmd{"enter", a.Label})
	}
	commands = append(commands, cmd{"tab", "Screens"}, cmd{"?", "More"})

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}

// truncateMiddle truncates a string in the middle, preserving start and end.
func truncateMiddle(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= max {
		return s
	}
	runes := []rune(s)
	if max <= 5 || len(runes) <= max {
		return truncate(s, max)
	}
	// Keep more of the end than the start
	endLen := (max - 1) * 2 / 3
	startLen := max - 1 - endLen
	return string(runes[:startLen]) + "…" + string(runes[len(runes)-endLen:])
}
