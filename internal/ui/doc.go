// Package ui provides the Bubble Tea terminal interface for wardgrid.
//
// # Architecture Overview
//
// Model is the root tea.Model. It owns one grid.Model per catalog screen and
// renders only the active one. Records come from dataset.Store: on every
// tick the model compares each screen's store generation with the one it
// last applied and feeds changed datasets to grid.Model.SetData, which
// resets that screen to page 1.
//
// # Package Structure
//
//   - app.go: Model, Update loop, key handling, store sync and Run
//   - grid.go: Titled box, column fitting, row and cell rendering, empty state
//   - header.go: Status header and command bar
//   - help.go: Help overlay built from the key map with bubbles/help
//   - keys.go: bubbles/key bindings
//   - theme.go: Nightfox, Kanagawa and Slate palettes and tone colors
//   - style_helpers.go: BgStyle for gap-free backgrounds
//
// # Interaction
//
//   - "/" opens the search input; each keystroke re-filters the screen
//   - Arrow keys or h/l change page, +/- change rows per page
//   - j/k select a row, enter runs its first action through catalog.Screen.Act
//   - tab and shift+tab switch screens, T cycles the theme
//
// Theme, rows per page and the current screen are saved to the prefs file
// whenever they change.
//
// # Row Emphasis
//
// Urgent rows get a left bar and the theme's UrgentBg tint. Critical rows
// also carry a "!" marker in the first column. Badge cells take their color
// from the theme's tone palette.
package ui
