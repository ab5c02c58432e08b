package grid

// Column describes how one field is labelled and rendered.
type Column struct {
	ID    string
	Label string
	Align Align
	Cell  CellRenderer
}

// Action is an opaque per-row operation supplied by the caller. The engine
// only positions actions; it never interprets them.
type Action struct {
	ID    string
	Label string
	Tone  Tone
}

// ActionFunc returns the actions available for a record.
type ActionFunc func(Record) []Action

// RenderedRow is one display-ready row.
type RenderedRow struct {
	Key     string
	Index   int
	Record  Record
	Cells   []Cell
	Class   Classification
	Actions []Action
}

// Render produces one RenderedRow per row in window, with cells in column
// order. It is pure: the same inputs always yield the same output.
func Render(window []Row, columns []Column, classify Classifier, actions ActionFunc) []RenderedRow {
	if classify == nil {
		classify = DefaultClassifier
	}
	out := make([]RenderedRow, 0, len(window))
	for _, row := range window {
		class := safeClassify(classify, row.Record)
		cells := make([]Cell, len(columns))
		for i, col := range columns {
			cells[i] = renderCell(col, row.Record)
		}
		if len(cells) > 0 && class.Critical {
			cells[0].Marker = true
		}
		rendered := RenderedRow{
			Key:    row.Key(),
			Index:  row.Index,
			Record: row.Record,
			Cells:  cells,
			Class:  class,
		}
		if actions != nil {
			rendered.Actions = safeActions(actions, row.Record)
		}
		out = append(out, rendered)
	}
	return out
}

func safeActions(fn ActionFunc, rec Record) (out []Action) {
	defer func() {
		if recover() != nil {
			out = nil
		}
	}()
	return fn(rec)
}
