// Package config loads wardgrid's TOML configuration.
//
// # Configuration Discovery
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/wardgrid/config.toml
//  3. If the file doesn't exist, fall back to Default()
//  4. Fields that are missing keep their defaults
//
// # TOML Format
//
//	rows_per_page = 5
//	default_screen = "patients"
//	log_file = "~/.local/state/wardgrid/wardgrid.log"
//	poll_seconds = 5
//	debug = false
//
//	[sources]
//	patients = "~/ward/patients.yaml"
//	tickets = "sqlite://~/ward/ops.db?table=tickets"
//	staff = "https://records.example/api/staff"
//
// Source names are case-insensitive and match catalog screen names. A screen
// without a configured source shows its embedded seed data.
//
// Setting log_file to an empty string disables logging.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML parse errors, and out-of-range values. A missing file
// is not an error.
package config
