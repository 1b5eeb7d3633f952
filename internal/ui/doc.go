// Package ui implements the Satchel terminal interface with Bubble Tea.
//
// # Overview
//
// The interface is a single Bubble Tea program built around one root Model.
// A View enum selects the active screen: the login form, the student picker,
// and the four dashboard views (schedule, homework, attendance records, and
// the course catalog). Every screen shares the header tab bar and footer
// help line.
//
// # Architecture
//
// The model never performs I/O inside Update. Every network operation runs
// as a tea.Cmd in its own goroutine and reports back with a message:
//
//	key press ──> Update ──> tea.Cmd (store call / facade read)
//	                            │
//	                            ▼
//	                     completion message
//	                            │
//	                            ▼
//	                  Update reads store snapshot
//	                            │
//	                            ▼
//	                          View
//
// Operations that live in a state store (login, the student list, the
// attendance records pager) signal completion only; the view then renders
// from the store's snapshot, which carries loading, error, and data fields.
// Reads with no store behind them (schedule, homework, courses) carry their
// payload in the message and are cached on the model directly.
//
// # Session expiry
//
// Any protected request can come back with an invalidated session, which
// clears the bearer token before the message reaches Update. Each
// completion handler checks for that and drops the user back to the login
// screen with the cached view data cleared.
//
// # Retry
//
// All list and detail reads run through the retry policy, so transient
// network failures are retried with backoff before the user sees an error.
// Mutations (login, logout) go through their stores unretried.
//
// # Themes
//
// Styling is derived from a Theme palette; the t key cycles themes and
// persists the choice through the prefs package. Attendance statuses map to
// per-status colors so the records list reads at a glance.
package ui
