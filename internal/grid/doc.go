// Package grid implements the tabular data-presentation engine shared by
// every wardgrid screen.
//
// # Pipeline
//
// A recomputation is a single synchronous pass over four inputs (dataset,
// query, page size, current page):
//
//	Dataset ──Filter(query)──> filtered rows ──Paginate(size, page)──> window
//	window ──Render(columns, classifier, actions)──> []RenderedRow
//
// Filter, Paginate, Render and the classifiers are pure functions. Model is a
// thin caller-owned holder for the inputs; each mutator recomputes what it
// invalidates, so a View never observes a half-applied change.
//
// # Identity
//
// Rows keep the index of their record in the source dataset. Row.Key uses the
// record's "id" field when present and falls back to that index, so keys are
// stable across filtering and paging.
//
// # Failure model
//
// Nothing here returns an error. A column without an ID renders an empty cell,
// a panicking custom formatter or classifier degrades the affected cell or
// row, and out-of-range pages are clamped.
package grid
