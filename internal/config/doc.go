// Package config handles loading axedeck's TOML configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/axedeck/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/axedeck/config.toml
//   - Poll interval: 5 seconds
//   - Log level: info
//   - Log file: ~/.local/state/axedeck/axedeck.log
//   - Saved miners: ~/.config/axedeck/miners.toml
//   - User agent: empty, meaning the client default (axedeck/1.0)
//   - Temperature warning: 70 °C (0 turns warnings off)
//
// # TOML Format
//
//	poll_seconds = 5
//	log_level = "debug"
//	log_file = "~/.local/state/axedeck/axedeck.log"
//	miners_file = "~/.config/axedeck/miners.toml"
//	user_agent = "axedeck/1.0"
//	temp_warning = 70
//
// Every field is optional. Tilde expansion is performed on paths.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, and TOML parse errors. A missing file is not an error.
package config
