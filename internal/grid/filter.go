package grid

import "strings"

// Filter returns the rows where at least one field value contains query,
// compared case-insensitively. A blank query returns rows unchanged. Order is
// preserved and rows are never copied or modified.
func Filter(rows []Row, query string) []Row {
	if strings.TrimSpace(query) == "" {
		return rows
	}
	needle := strings.ToLower(query)
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if row.Record.matches(needle) {
			out = append(out, row)
		}
	}
	return out
}
