package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/medlux/wardgrid/internal/grid"
)

const columnGap = "  "

var upper = cases.Upper(language.Und)

// WriteText writes a plain aligned table suitable for pipes.
func WriteText(w io.Writer, v grid.View) error {
	bw := bufio.NewWriter(w)

	if v.Title != "" {
		fmt.Fprintln(bw, v.Title)
	}
	fmt.Fprintln(bw, Headline(v))
	if v.Query != "" {
		fmt.Fprintf(bw, "Search: %q\n", v.Query)
	}
	fmt.Fprintln(bw)

	if v.Empty() {
		fmt.Fprintln(bw, EmptyMessage(v))
		fmt.Fprintln(bw, EmptyHint)
		return bw.Flush()
	}

	header := make([]string, len(v.Columns))
	for i, c := range v.Columns {
		header[i] = upper.String(c.Label)
	}
	body := make([][]string, len(v.Rows))
	for i, r := range v.Rows {
		line := make([]string, len(r.Cells))
		for j, c := range r.Cells {
			line[j] = CellText(c)
		}
		body[i] = line
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, line := range body {
		for i, cell := range line {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	writeLine(bw, header, widths, v.Columns)
	for _, line := range body {
		writeLine(bw, line, widths, v.Columns)
	}
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, Footer(v))
	return bw.Flush()
}

func writeLine(w io.Writer, cells []string, widths []int, cols []grid.Column) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		align := grid.AlignLeft
		if i < len(cols) {
			align = cols[i].Align
		}
		parts[i] = pad(cell, widths[i], align)
	}
	fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, columnGap), " "))
}

func pad(s string, width int, align grid.Align) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	switch align {
	case grid.AlignRight:
		return strings.Repeat(" ", gap) + s
	case grid.AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
	default:
		return s + strings.Repeat(" ", gap)
	}
}
