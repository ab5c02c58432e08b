package export

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/medlux/wardgrid/internal/grid"
)

const pageStyle = `body{font-family:system-ui,sans-serif;margin:2rem;color:#1f2937}
table{border-collapse:collapse;width:100%}
th,td{padding:.5rem .75rem;border-bottom:1px solid #e5e7eb;text-align:left}
th.right,td.right{text-align:right}th.center,td.center{text-align:center}
tr.urgent{background:#fef2f2;box-shadow:inset 4px 0 0 #ef4444}
.marker{color:#ef4444;font-weight:800;margin-right:.25rem}
.badge{border-radius:10px;padding:.1rem .5rem;font-size:.75rem;font-weight:700}
.tone-neutral{background:#f3f4f6}.tone-info{background:#dbeafe}.tone-success{background:#d1fae5}
.tone-warning{background:#fef3c7}.tone-danger{background:#fee2e2}.tone-accent{background:#ede9fe}
.bar{display:inline-block;width:50px;height:4px;background:#e5e7eb;margin-left:.5rem;vertical-align:middle}
.bar span{display:block;height:4px;background:#10b981}
.empty{padding:3rem;text-align:center;color:#6b7280}`

// Page renders a standalone HTML document for the view.
func Page(v grid.View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := templ.EscapeString(v.Title)
		if _, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>%s</title><style>%s</style></head><body>\n", title, pageStyle); err != nil {
			return err
		}
		if err := Grid(v).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</body></html>\n")
		return err
	})
}

// Grid renders the view's heading, table (or empty state) and footer as an
// HTML fragment.
func Grid(v grid.View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<section class="grid">`)
		fmt.Fprintf(&b, `<h1>%s</h1><p class="headline">%s</p>`,
			templ.EscapeString(v.Title), templ.EscapeString(Headline(v)))
		if v.Query != "" {
			fmt.Fprintf(&b, `<p class="query">Search: <mark>%s</mark></p>`, templ.EscapeString(v.Query))
		}
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}

		if v.Empty() {
			if err := emptyState(v).Render(ctx, w); err != nil {
				return err
			}
		} else if err := table(v).Render(ctx, w); err != nil {
			return err
		}

		_, err := fmt.Fprintf(w, `<footer>%s</footer></section>`, templ.EscapeString(Footer(v)))
		return err
	})
}

func emptyState(v grid.View) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="empty"><h2>%s</h2><p>%s</p></div>`,
			templ.EscapeString(EmptyMessage(v)), templ.EscapeString(EmptyHint))
		return err
	})
}

func table(v grid.View) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<table><thead><tr>")
		for _, c := range v.Columns {
			fmt.Fprintf(&b, `<th class="%s">%s</th>`, c.Align, templ.EscapeString(c.Label))
		}
		b.WriteString("</tr></thead><tbody>")
		for _, r := range v.Rows {
			var classes []string
			if r.Class.Urgent {
				classes = append(classes, "urgent")
			}
			if r.Class.Critical {
				classes = append(classes, "critical")
			}
			fmt.Fprintf(&b, `<tr data-key="%s"`, templ.EscapeString(r.Key))
			if len(classes) > 0 {
				fmt.Fprintf(&b, ` class="%s"`, strings.Join(classes, " "))
			}
			b.WriteString(">")
			for _, c := range r.Cells {
				fmt.Fprintf(&b, `<td class="%s">`, c.Align)
				writeCell(&b, c)
				b.WriteString("</td>")
			}
			b.WriteString("</tr>")
		}
		b.WriteString("</tbody></table>")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeCell(b *strings.Builder, c grid.Cell) {
	if c.Marker {
		b.WriteString(`<span class="marker" title="critical">!</span>`)
	}
	switch c.Kind {
	case grid.CellBadge:
		if c.Text != "" {
			fmt.Fprintf(b, `<span class="badge tone-%s">%s</span>`, c.Tone, templ.EscapeString(c.Text))
		}
	case grid.CellIconText:
		if c.Icon != "" && c.Text != "" {
			fmt.Fprintf(b, `<span class="icon">%s</span> `, templ.EscapeString(c.Icon))
		}
		b.WriteString(templ.EscapeString(c.Text))
	case grid.CellProgress:
		if c.Text == "" {
			return
		}
		pct := strconv.FormatFloat(c.Percent, 'f', 0, 64)
		fmt.Fprintf(b, `%s<span class="bar"><span style="width:%s%%"></span></span>`, templ.EscapeString(c.Text), pct)
	default:
		b.WriteString(templ.EscapeString(c.Text))
	}
}
