// Package config handles loading and parsing Satchel configuration files.
//
// # Overview
//
// This package reads Satchel's TOML configuration to discover the portal API
// endpoint and the local data directory. The file is intentionally tiny: the
// application works out of the box against the default backend with no
// configuration present at all.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/satchel/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/satchel/config.toml
//   - API base URL: the portal package's DefaultBaseURL
//   - Data directory: ~/.local/share/satchel
//   - Request timeout: the portal client's built-in default
//
// # TOML Format
//
// Example config.toml:
//
//	api_base_url = "https://portal.example.com/api"
//	data_dir = "~/.local/share/satchel"
//	request_timeout_seconds = 30
//
// All fields are optional. Tilde expansion is performed automatically on
// paths.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//
// Missing config files are NOT an error - defaults are used instead. A
// present-but-malformed file IS an error: silently ignoring a config the
// user wrote hides typos.
//
// # Design Philosophy
//
// The config package is read-only and stateless - it loads configuration
// once at startup and returns an immutable Config struct. No global state
// or singleton patterns are used.
package config
