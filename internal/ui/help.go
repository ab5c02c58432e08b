package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

var helpSectionTitles = []string{"Screens", "Search", "Paging", "Rows", "General"}

// newHelp returns a help model styled for the theme.
func newHelp(t Theme) help.Model {
	h := help.New()
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning))
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text))
	sepStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint))
	h.Styles.ShortKey = keyStyle
	h.Styles.ShortDesc = descStyle.Foreground(lipgloss.Color(t.Muted))
	h.Styles.ShortSeparator = sepStyle
	h.Styles.FullKey = keyStyle
	h.Styles.FullDesc = descStyle
	h.Styles.FullSeparator = sepStyle
	h.ShortSeparator = "  "
	return h
}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	groups := m.keys.FullHelp()
	for i, group := range groups {
		if i < len(helpSectionTitles) {
			b.WriteString(styles.AccentText.Bold(true).Render(helpSectionTitles[i]))
			b.WriteString("\n")
		}
		// One column per group keeps the modal narrow.
		b.WriteString(m.help.FullHelpView([][]key.Binding{group}))
		if i < len(groups)-1 {
			b.WriteString("\n\n")
		}
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(helpModalWidth)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
