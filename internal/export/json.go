package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/medlux/wardgrid/internal/grid"
)

type jsonColumn struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Align string `json:"align"`
}

type jsonCell struct {
	Column  string   `json:"column"`
	Text    string   `json:"text"`
	Kind    string   `json:"kind"`
	Tone    string   `json:"tone,omitempty"`
	Icon    string   `json:"icon,omitempty"`
	Percent *float64 `json:"percent,omitempty"`
}

type jsonRow struct {
	Key      string     `json:"key"`
	Index    int        `json:"index"`
	Urgent   bool       `json:"urgent"`
	Critical bool       `json:"critical"`
	Cells    []jsonCell `json:"cells"`
	Actions  []string   `json:"actions,omitempty"`
}

type jsonView struct {
	Title      string       `json:"title"`
	Query      string       `json:"query"`
	Total      int          `json:"total"`
	Matched    int          `json:"matched"`
	Shown      int          `json:"shown"`
	Page       int          `json:"page"`
	TotalPages int          `json:"total_pages"`
	PageSize   int          `json:"page_size"`
	Start      int          `json:"start"`
	End        int          `json:"end"`
	Columns    []jsonColumn `json:"columns"`
	Rows       []jsonRow    `json:"rows"`
}

// WriteJSON writes the view with its summary values as indented JSON. Each
// row's cells follow the order of columns, so columns sharing a field ID
// keep their own rendering.
func WriteJSON(w io.Writer, v grid.View) error {
	out := jsonView{
		Title:      v.Title,
		Query:      v.Query,
		Total:      v.Total,
		Matched:    v.Matched,
		Shown:      v.Shown,
		Page:       v.Page,
		TotalPages: v.TotalPages,
		PageSize:   v.PageSize,
		Start:      v.Start,
		End:        v.End,
		Columns:    make([]jsonColumn, len(v.Columns)),
		Rows:       make([]jsonRow, len(v.Rows)),
	}
	for i, c := range v.Columns {
		out.Columns[i] = jsonColumn{ID: c.ID, Label: c.Label, Align: c.Align.String()}
	}
	for i, r := range v.Rows {
		row := jsonRow{
			Key:      r.Key,
			Index:    r.Index,
			Urgent:   r.Class.Urgent,
			Critical: r.Class.Critical,
			Cells:    make([]jsonCell, len(r.Cells)),
		}
		for j, c := range r.Cells {
			cell := jsonCell{Column: c.Column, Text: c.Text, Kind: c.Kind.String(), Icon: c.Icon}
			switch c.Kind {
			case grid.CellBadge:
				cell.Tone = c.Tone.String()
			case grid.CellProgress:
				pct := c.Percent
				cell.Percent = &pct
			}
			row.Cells[j] = cell
		}
		for _, a := range r.Actions {
			row.Actions = append(row.Actions, a.ID)
		}
		out.Rows[i] = row
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
