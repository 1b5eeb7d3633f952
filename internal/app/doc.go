// Package app provides the orchestration layer for the Satchel application.
//
// # Overview
//
// This package wires together configuration, persistence, the portal client,
// the state stores, and the UI to create the complete Satchel TUI experience.
// It serves as the composition root where all dependencies are initialized
// and connected.
//
// # Architecture
//
// The app package follows a simple initialization pattern:
//
//  1. Load configuration from ~/.config/satchel/config.toml
//  2. Load user preferences (theme) from ~/.config/satchel/prefs.toml
//  3. Open file-backed storage under the configured data directory
//  4. Create the auth, student, and records stores
//  5. Restore persisted session and student selection
//  6. Initialize the portal HTTP client with the auth store as token source
//  7. Start the TUI and block until the user exits or the context cancels
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()          Read app config
//	       ├─────> prefs.Load()           Read theme preference
//	       ├─────> state.NewFileStorage() Open persisted state
//	       ├─────> state stores           Auth / students / records
//	       ├─────> Restore()              Resume persisted session
//	       ├─────> portal.NewClient()     HTTP client, token from auth store
//	       └─────> ui.Run()               Start TUI (blocks)
//
// The circular-looking dependency between the client and the auth store is
// intentional: the store implements portal.TokenSource, so the client reads
// the current bearer token on each request and clears it on session expiry,
// and the store in turn calls the client for login and logout.
//
// # Error Handling
//
// Startup errors (unreadable config, unusable data directory, invalid base
// URL) are fatal and returned from Run. Everything after the UI starts is
// recoverable: request failures surface as store error messages and session
// expiry drops the user back to the login screen.
//
// # Configuration
//
// The Options struct allows callers to customize:
//
//   - ConfigPath: path to config.toml (default: ~/.config/satchel/config.toml)
//   - PrefsPath: path to prefs.toml (default: ~/.config/satchel/prefs.toml)
//   - BaseURL: overrides the configured api_base_url, mainly for testing
//     against a local backend
//
// # Design Rationale
//
// This package intentionally keeps orchestration logic minimal and focused.
// Business logic lives in domain packages (portal, state, retry, ui). The
// app package simply connects these pieces with sensible defaults.
package app
