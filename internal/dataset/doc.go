// Package dataset loads the record sets wardgrid displays and keeps them
// fresh.
//
// # Sources
//
// Open routes a spec string to a Source:
//
//	~/ward/patients.yaml                    FileSource (.json, .yaml, .yml, .toml)
//	sqlite://~/ward/ops.db?table=tickets     SQLiteSource
//	https://records.example/api/staff        HTTPSource
//
// JSON and YAML documents are either an array of objects or an object with a
// "records" array. TOML files use [[records]] tables. Values are folded into
// the primitives the grid engine stringifies: JSON numbers stay json.Number
// (printed in canonical decimal form),
// timestamps become RFC 3339 text (date-only when midnight) and nested
// structures are flattened through grid.Stringify.
//
// # Store
//
// Store keeps one Snapshot per source name. Reads return deep copies; a
// failed refresh keeps the previous data and records the error. Generation
// increases on every successful update so consumers can detect new data
// without comparing records.
//
// # Refresh
//
// Watcher reloads file and SQLite sources on fsnotify events, debounced.
// Poller reloads every source on a ticker with exponential backoff for
// sources that keep failing. Both block in Run until the context ends.
package dataset
