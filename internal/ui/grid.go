package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/medlux/wardgrid/internal/export"
	"github.com/medlux/wardgrid/internal/grid"
)

// renderGrid renders the active screen's page inside a titled box.
func (m Model) renderGrid() string {
	styles := m.theme.Styles()
	contentHeight := max(m.height-chromeLines, boxChromeLines)

	s := m.active()
	if s == nil {
		msg := styles.MutedText.Render("No screens configured")
		return lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, msg)
	}

	title := s.screen.Title
	if s.source != "" && m.width >= LayoutCompactWidth {
		title += " · " + truncateMiddle(s.source, 40)
	}
	content := m.renderGridContent(s, m.width-2, m.theme.SurfaceAlt)
	return m.renderTitledBox(title, content, m.width, contentHeight, !m.searching)
}

// renderGridContent lays out the column header, page rows and footer.
func (m Model) renderGridContent(s *screenState, width int, bgColor string) string {
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)
	view := s.grid.View()

	var lines []string
	if s.screen.Subtitle != "" {
		lines = append(lines, bg.FillLine(bg.Space()+bg.Render(s.screen.Subtitle, styles.FaintText), width))
	}

	if view.Empty() {
		lines = append(lines, m.renderEmptyState(view, width, bgColor)...)
		return strings.Join(lines, "\n")
	}

	widths := fitColumns(view, width-3)
	lines = append(lines,
		bg.FillLine(bg.Spaces(3)+m.renderColumnHeader(view.Columns, widths, bg, styles), width),
		bg.FillLine(bg.Render(strings.Repeat("─", width), styles.FaintText), width),
	)
	for i, row := range view.Rows {
		lines = append(lines, m.renderRow(row, widths, width, bgColor, i == s.cursor))
	}

	lines = append(lines,
		bg.FillLine("", width),
		bg.FillLine(bg.Space()+bg.Render(export.Footer(view), styles.MutedText), width),
	)
	return strings.Join(lines, "\n")
}

func (m Model) renderColumnHeader(cols []grid.Column, widths []int, bg BgStyle, styles Styles) string {
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = bg.Pad(strings.ToUpper(col.Label), widths[i], alignFor(col.Align), styles.ColumnHeader)
	}
	return bg.Join(parts, "  ")
}

// renderRow renders one page row. Urgent rows get a left bar and a tinted
// background; the selected row uses the selection colors.
func (m Model) renderRow(row grid.RenderedRow, widths []int, width int, paneBg string, selected bool) string {
	rowBg := paneBg
	switch {
	case selected:
		rowBg = m.theme.SelectionBg
	case row.Class.Urgent:
		rowBg = m.theme.UrgentBg
	}
	bg := NewBgStyle(rowBg)
	styles := m.theme.Styles().WithBackground(rowBg)

	bar := bg.Space()
	if row.Class.Urgent {
		bar = bg.Render("▌", styles.DangerText)
	}

	parts := make([]string, len(row.Cells))
	for i, cell := range row.Cells {
		parts[i] = m.renderCell(cell, widths[i], bg, styles, selected)
	}
	return bg.FillLine(bar+bg.Spaces(2)+bg.Join(parts, "  "), width)
}

// renderCell renders a cell padded to width.
func (m Model) renderCell(c grid.Cell, width int, bg BgStyle, styles Styles, selected bool) string {
	textStyle := styles.Text
	if selected {
		textStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
	}
	align := alignFor(c.Align)

	var marker string
	if c.Marker {
		marker = bg.Render("!", styles.DangerText) + bg.Space()
		width -= 2
	}

	switch c.Kind {
	case grid.CellBadge:
		if c.Text == "" {
			return marker + bg.Spaces(width)
		}
		chip := styles.BadgeStyle(c.Tone).Render(" " + truncate(c.Text, width-2) + " ")
		return marker + padRendered(chip, width, align, bg)
	case grid.CellProgress:
		if c.Text == "" {
			return marker + bg.Spaces(width)
		}
		filled := int(c.Percent/100*progressBarWidth + 0.5)
		meter := bg.Render(strings.Repeat("█", filled), styles.ToneText(progressTone(c.Percent))) +
			bg.Render(strings.Repeat("░", progressBarWidth-filled), styles.FaintText)
		return marker + padRendered(meter+bg.Space()+bg.Render(c.Text, textStyle), width, align, bg)
	case grid.CellIconText:
		text := c.Text
		if c.Icon != "" && text != "" {
			text = c.Icon + " " + text
		}
		return marker + bg.Pad(text, width, align, textStyle)
	default:
		return marker + bg.Pad(c.Text, width, align, textStyle)
	}
}

// renderEmptyState renders the explicit "no matching records" block.
func (m Model) renderEmptyState(v grid.View, width int, bgColor string) []string {
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)
	center := func(text string, style lipgloss.Style) string {
		gap := max(width-lipgloss.Width(text), 0)
		return bg.FillLine(bg.Spaces(gap/2)+bg.Render(text, style), width)
	}

	lines := []string{
		bg.FillLine("", width),
		center("∅", styles.FaintText),
		center(export.EmptyMessage(v), styles.Text.Bold(true)),
	}
	if !v.NoData() {
		lines = append(lines, center(export.EmptyHint, styles.MutedText))
	}
	lines = append(lines,
		bg.FillLine("", width),
		bg.FillLine(bg.Space()+bg.Render(export.Footer(v), styles.MutedText), width),
	)
	return lines
}

// fitColumns sizes each column to its widest value on the page, then
// shrinks the widest columns until the row fits avail cells.
func fitColumns(v grid.View, avail int) []int {
	widths := make([]int, len(v.Columns))
	for i, col := range v.Columns {
		widths[i] = lipgloss.Width(col.Label)
	}
	for _, row := range v.Rows {
		for i, cell := range row.Cells {
			widths[i] = max(widths[i], cellWidth(cell))
		}
	}

	gaps := 2 * max(len(widths)-1, 0)
	for total(widths)+gaps > avail {
		widest := 0
		for i, w := range widths {
			if w > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= MinColumnWidth {
			break
		}
		widths[widest]--
	}
	return widths
}

// cellWidth is the display width a cell needs, including chrome.
func cellWidth(c grid.Cell) int {
	w := lipgloss.Width(export.CellText(c))
	switch c.Kind {
	case grid.CellBadge:
		if c.Text != "" {
			w += 2
		}
	case grid.CellProgress:
		if c.Text != "" {
			w += progressBarWidth + 1
		}
	}
	return w
}

func total(ws []int) int {
	n := 0
	for _, w := range ws {
		n += w
	}
	return n
}

func padRendered(rendered string, width int, align alignment, bg BgStyle) string {
	gap := max(width-lipgloss.Width(rendered), 0)
	switch align {
	case alignRight:
		return bg.Spaces(gap) + rendered
	case alignCenter:
		return bg.Spaces(gap/2) + rendered + bg.Spaces(gap-gap/2)
	default:
		return rendered + bg.Spaces(gap)
	}
}

func alignFor(a grid.Align) alignment {
	switch a {
	case grid.AlignRight:
		return alignRight
	case grid.AlignCenter:
		return alignCenter
	default:
		return alignLeft
	}
}

func progressTone(pct float64) grid.Tone {
	switch {
	case pct < 90:
		return grid.ToneDanger
	case pct < 95:
		return grid.ToneWarning
	default:
		return grid.ToneSuccess
	}
}

// renderTitledBox renders content in a box with the title embedded in the top border.
// Format: ┌─── Title ───┐
// When focused is true, uses BorderFocus color.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColorStr := m.theme.Border
	if focused {
		borderColorStr = m.theme.BorderFocus
	}
	bgColorStr := m.theme.SurfaceAlt
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := width - 2
	title = truncate(title, max(innerWidth-4, 0))
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).MaxWidth(innerWidth).
		Background(lipgloss.Color(bgColorStr))

	contentLines := strings.Split(content, "\n")
	boxHeight := height - 2

	paddedLines := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		paddedLines = append(paddedLines,
			bg.Render("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(paddedLines, "\n") + "\n" + bottomBorder
}
