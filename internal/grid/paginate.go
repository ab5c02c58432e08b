package grid

// DefaultPageSize is used when a table or state does not specify one.
const DefaultPageSize = 5

// Page is one window over a filtered view.
type Page struct {
	Rows       []Row
	Number     int // clamped, 1-indexed
	TotalPages int
	Size       int
	Total      int // length of the filtered view
	Start      int // 1-based index of the first row, 0 when empty
	End        int // 1-based index of the last row, 0 when empty
}

// TotalPages returns max(1, ceil(n/size)).
func TotalPages(n, size int) int {
	size = normalizePageSize(size)
	if n <= 0 {
		return 1
	}
	return (n + size - 1) / size
}

// ClampPage bounds page into [1, totalPages].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Paginate slices rows into the window for page. Out-of-range pages are
// clamped rather than reported.
func Paginate(rows []Row, pageSize, page int) Page {
	size := normalizePageSize(pageSize)
	total := TotalPages(len(rows), size)
	number := ClampPage(page, total)

	start := (number - 1) * size
	end := min(start+size, len(rows))
	if start > end {
		start = end
	}

	p := Page{
		Rows:       rows[start:end:end],
		Number:     number,
		TotalPages: total,
		Size:       size,
		Total:      len(rows),
	}
	if end > start {
		p.Start = start + 1
		p.End = end
	}
	return p
}

func normalizePageSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	return size
}
