package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/medlux/wardgrid/internal/grid"
)

// WriteCSV writes a header of column labels followed by one line of cell
// texts per row. Icons and markers are omitted.
func WriteCSV(w io.Writer, v grid.View) error {
	cw := csv.NewWriter(w)
	header := make([]string, len(v.Columns))
	for i, c := range v.Columns {
		header[i] = c.Label
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range v.Rows {
		line := make([]string, len(r.Cells))
		for i, c := range r.Cells {
			line[i] = c.Text
		}
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("write csv row %s: %w", r.Key, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
