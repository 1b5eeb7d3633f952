// Package state provides the client-side state stores for Satchel.
//
// # Overview
//
// Three independent stores hold everything the UI renders between fetches:
//
//   - AuthStore:    the login session (token + user), persisted
//   - StudentStore: the linked students and the single "current" selection,
//     persisted
//   - RecordsStore: the class-hours summary plus the incrementally paged
//     attendance records, ephemeral
//
// Every entity held here is a client-local cache of backend state with no
// lifecycle guarantee beyond "overwritten on the next successful fetch". The
// only local mutations are appending freshly fetched record pages and the
// current-student pointer.
//
// # Store Shape
//
// All three stores share one shape:
//
//	Idle → Loading → (Success | Failed)
//
// re-entrant: a finished store accepts the next fetch and returns to
// Loading. Each store is a mutex-guarded container, safe for the UI's
// command goroutines, with Snapshot() returning defensive copies:
//
//	Fetch goroutine:                Render loop:
//	┌──────────────────┐           ┌──────────────────┐
//	│ client call       │           │                  │
//	│      ↓            │           │                  │
//	│ store commit      │──────────→│ store.Snapshot() │
//	│      ↓            │  (mutex)  │      ↓           │
//	│  done             │           │  render view     │
//	└──────────────────┘           └──────────────────┘
//
// # Overlap Handling
//
// Each fetch bumps a per-store generation counter; a response that completes
// after a newer fetch began is discarded instead of overwriting fresher
// data. Completion order therefore cannot roll the store backwards. The UI
// additionally disables triggers while Loading is true, so overlap is rare
// in practice.
//
// # Error Handling
//
// Stores catch exactly at the boundary of their fetch methods: the
// classified user message lands in Err, Loading goes false, and nothing is
// retried automatically. The raw error is also returned so callers can
// inspect its kind. Rendering errors and offering retry affordances is the
// view layer's job; there is no silent failure path.
//
// # Partial Success
//
// RecordsStore.FetchClassHoursSummary performs two sequential fetches. A
// summary failure aborts and reports; a records failure after a successful
// summary still commits the summary with an empty record set. The summary
// must never be held hostage by a records failure.
//
// # Persistence
//
// AuthStore and StudentStore persist through the SessionStorage and
// SelectionStorage adapters. FileStorage implements both with two
// independent TOML files under ~/.local/share/satchel (session.toml,
// students.toml); clearing one never touches the other. Every file carries
// a version field and is discarded wholesale on mismatch: stale persisted
// state degrades to a fresh start, never to an error.
//
// # Testing Considerations
//
// Stores take the portal client and context per call, so tests drive them
// against httptest-backed clients and in-memory storage fakes. Zero-value
// RecordsStore is ready to use; the persisted stores want NewAuthStore /
// NewStudentStore (nil storage is fine).
package state
