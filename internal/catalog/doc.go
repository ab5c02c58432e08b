// Package catalog defines wardgrid's screens: the column layouts, row
// classifiers and row actions of every hospital table, plus embedded seed
// records so each screen works without a configured source.
//
// Actions are state transitions. Act never edits the dataset it is given; it
// returns a copy with one record replaced, which callers hand back to
// grid.Model.SetData.
package catalog
