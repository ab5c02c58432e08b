package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100

	// MinColumnWidth is the narrowest a grid column is squeezed to.
	MinColumnWidth = 4
)

// Chrome sizes.
const (
	// chromeLines counts the header and command bar.
	chromeLines = 2

	// boxChromeLines counts the grid box borders, column header, rule and
	// the footer lines below the rows.
	boxChromeLines = 2 + 2 + 3

	helpModalWidth = 48

	progressBarWidth = 6
)

// Timing constants.
const (
	// DefaultUIInterval is the default UI refresh interval.
	DefaultUIInterval = time.Second

	// MaxRowsPerPage bounds the +/- page size keys.
	MaxRowsPerPage = 100
)
