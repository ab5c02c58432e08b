package grid

// Table is the construction contract a screen hands to the engine.
type Table struct {
	Title       string
	Columns     []Column
	Actions     ActionFunc
	Classifier  Classifier // nil uses DefaultClassifier
	RowsPerPage int        // non-positive uses DefaultPageSize
}

// PageSize returns the configured rows per page.
func (t Table) PageSize() int {
	return normalizePageSize(t.RowsPerPage)
}

// State is the caller-owned input of one recomputation.
type State struct {
	Query    string
	PageSize int
	Page     int
}

// WithQuery returns the state with a new query. A changed query resets the
// page to 1.
func (s State) WithQuery(q string) State {
	if q != s.Query {
		s.Query = q
		s.Page = 1
	}
	return s
}

// WithPageSize returns the state with a new page size and the page reset.
func (s State) WithPageSize(n int) State {
	n = normalizePageSize(n)
	if n != s.PageSize {
		s.PageSize = n
		s.Page = 1
	}
	return s
}

// WithPage returns the state pointing at page. Filtering inputs are untouched.
func (s State) WithPage(p int) State {
	s.Page = p
	return s
}

// View is the result of one full pipeline pass.
type View struct {
	Title      string
	Query      string
	Columns    []Column
	Rows       []RenderedRow
	Total      int // records in the dataset
	Matched    int // records in the filtered view
	Shown      int // records on this page
	Page       int
	TotalPages int
	PageSize   int
	Start      int
	End        int
}

// Empty reports the explicit "no matching records" state.
func (v View) Empty() bool { return v.Matched == 0 }

// NoData reports that the dataset itself is empty, as opposed to a query that
// matched nothing.
func (v View) NoData() bool { return v.Total == 0 }

// Keys returns the row identities in display order.
func (v View) Keys() []string {
	keys := make([]string, len(v.Rows))
	for i, r := range v.Rows {
		keys[i] = r.Key
	}
	return keys
}

// Compute runs filter, paginate, classify and render over data in one pass.
func Compute(t Table, data Dataset, st State) View {
	rows := data.Rows()
	return t.build(Filter(rows, st.Query), len(rows), st)
}

func (t Table) build(filtered []Row, total int, st State) View {
	size := st.PageSize
	if size <= 0 {
		size = t.PageSize()
	}
	page := Paginate(filtered, size, st.Page)
	return View{
		Title:      t.Title,
		Query:      st.Query,
		Columns:    t.Columns,
		Rows:       Render(page.Rows, t.Columns, t.Classifier, t.Actions),
		Total:      total,
		Matched:    page.Total,
		Shown:      len(page.Rows),
		Page:       page.Number,
		TotalPages: page.TotalPages,
		PageSize:   page.Size,
		Start:      page.Start,
		End:        page.End,
	}
}
