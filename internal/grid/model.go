package grid

// Model holds the caller-owned inputs of a table and the memoized filtered
// view. Every mutator leaves the model fully recomputed, so View always sees
// a consistent state.
type Model struct {
	table    Table
	data     Dataset
	rows     []Row
	filtered []Row
	state    State
	gen      uint64
}

// NewModel builds a model positioned on the first page.
func NewModel(t Table, data Dataset) Model {
	m := Model{
		table: t,
		state: State{PageSize: t.PageSize(), Page: 1},
	}
	m.SetData(data)
	return m
}

// Table returns the table definition.
func (m *Model) Table() Table { return m.table }

// State returns the current inputs.
func (m *Model) State() State { return m.state }

// Data returns the model's private copy of the dataset.
func (m *Model) Data() Dataset { return m.data }

// Generation increments on every dataset replacement.
func (m *Model) Generation() uint64 { return m.gen }

// SetData replaces the dataset. The records are copied so later mutation by
// the caller cannot leak into a recomputation. The page resets to 1.
func (m *Model) SetData(data Dataset) {
	m.data = data.Clone()
	m.rows = m.data.Rows()
	m.gen++
	m.state.Page = 1
	m.refilter()
}

// SetQuery changes the search query; a changed query resets the page.
func (m *Model) SetQuery(q string) {
	if q == m.state.Query {
		return
	}
	m.state = m.state.WithQuery(q)
	m.refilter()
}

// SetPageSize changes the page size and resets the page.
func (m *Model) SetPageSize(n int) {
	m.state = m.state.WithPageSize(n)
}

// GoTo moves to page, clamped to the available pages. It does not refilter.
func (m *Model) GoTo(page int) {
	m.state.Page = ClampPage(page, m.TotalPages())
}

// NextPage advances one page, stopping at the last.
func (m *Model) NextPage() { m.GoTo(m.state.Page + 1) }

// PrevPage goes back one page, stopping at the first.
func (m *Model) PrevPage() { m.GoTo(m.state.Page - 1) }

// TotalPages returns the page count of the current filtered view.
func (m *Model) TotalPages() int {
	return TotalPages(len(m.filtered), m.pageSize())
}

// Filtered returns every row of the current filtered view.
func (m *Model) Filtered() []Row { return m.filtered }

// View renders the current page.
func (m *Model) View() View {
	return m.table.build(m.filtered, len(m.rows), m.state)
}

func (m *Model) refilter() {
	m.filtered = Filter(m.rows, m.state.Query)
}

func (m *Model) pageSize() int {
	if m.state.PageSize > 0 {
		return m.state.PageSize
	}
	return m.table.PageSize()
}
