// Package export writes a computed grid view as text, JSON, CSV or HTML.
package export

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/medlux/wardgrid/internal/grid"
)

// Format selects an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatHTML Format = "html"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatJSON, FormatCSV, FormatHTML}

const (
	EmptyTitle  = "No matching records"
	EmptyHint   = "Try adjusting your filters or search terms"
	NoDataTitle = "No records yet"
)

// ParseFormat accepts a format name, ignoring case. Empty selects text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatCSV, FormatHTML:
		return f, nil
	case "htm":
		return FormatHTML, nil
	case "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, json, csv or html)", s)
	}
}

// Write encodes view to w.
func Write(ctx context.Context, w io.Writer, format Format, view grid.View) error {
	switch format {
	case FormatText, "":
		return WriteText(w, view)
	case FormatJSON:
		return WriteJSON(w, view)
	case FormatCSV:
		return WriteCSV(w, view)
	case FormatHTML:
		return Page(view).Render(ctx, w)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// Headline is the count shown above the table.
func Headline(v grid.View) string {
	return humanize.Comma(int64(v.Matched)) + " active records in view"
}

// Footer summarizes the current window.
func Footer(v grid.View) string {
	if v.Empty() {
		return fmt.Sprintf("Showing 0 of %s records", humanize.Comma(int64(v.Matched)))
	}
	return fmt.Sprintf("Showing %d–%d of %s records · Page %d/%d",
		v.Start, v.End, humanize.Comma(int64(v.Matched)), v.Page, v.TotalPages)
}

// EmptyMessage returns the title for an empty view, distinguishing an empty
// dataset from a query that matched nothing.
func EmptyMessage(v grid.View) string {
	if v.NoData() {
		return NoDataTitle
	}
	return EmptyTitle
}

// CellText returns the display text of a cell, including its icon.
func CellText(c grid.Cell) string {
	text := c.Text
	if c.Icon != "" && text != "" {
		text = c.Icon + " " + text
	}
	if c.Marker {
		text = "! " + text
	}
	return text
}
