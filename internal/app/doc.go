// Package app provides the orchestration layer for the wardgrid application.
//
// # Overview
//
// This package wires together configuration, preferences, logging, the screen
// catalog, dataset sources and the UI. It is the composition root where all
// dependencies are initialized and connected.
//
// # Architecture
//
//  1. Load ~/.config/wardgrid/config.toml and apply command-line overrides
//  2. Open the zap logger (file only; the TUI owns the terminal)
//  3. Build the Workspace: one dataset.Source per configured screen, embedded
//     seed records for every other screen
//  4. Load every source once so the first frame has data
//  5. Start a file watcher for local sources and a poller for remote ones
//  6. Start the TUI and block until the user exits or the context cancels
//
// Steps 5 and 6 run under one errgroup. Leaving the UI cancels the group,
// which stops the watcher and poller.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> LoadConfig()        Config file + flags
//	       ├─────> OpenWorkspace()     Sources and seeded store
//	       ├─────> dataset.LoadAll()   Initial refresh
//	       ├─────> startRefreshers()   Watcher + poller
//	       └─────> ui.Run()            Start TUI (blocks)
//
//	Background refresh:
//	┌─────────────────────────────────────────┐
//	│ Watcher: file changed -> Refresh        │
//	│ Poller:  tick (with backoff) -> Refresh │
//	│      └─> store.Update()                 │
//	│          └─> UI pulls on its own tick   │
//	└─────────────────────────────────────────┘
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Invalid config file or flag values
//   - A source naming an unknown screen or using an unknown scheme
//   - An unknown --screen value
//
// Recoverable errors (logged and shown in the header):
//   - Missing files, unreachable URLs and broken records during refresh
//
// Render is the non-interactive path used by `wardgrid render`. It loads a
// single screen and, unlike Run, treats a failing source as an error.
package app
