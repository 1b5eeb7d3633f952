// Package portal provides the typed HTTP client for the parent-portal API.
//
// # Overview
//
// This package is the only place in Satchel that speaks HTTP. It wraps one
// configured http.Client with the request and response handling every call
// needs, and exposes the backend as grouped, strongly-typed methods: auth,
// student, homework, and course. Callers (the state stores and the UI) never
// see raw requests or raw JSON.
//
// # Architecture
//
// The package is split by concern:
//
//   - client.go:   transport, request construction, middleware behavior,
//     and error classification
//   - errors.go:   the error taxonomy (Kind) and user-displayable messages
//   - types.go:    data structures mirroring the backend schema, plus the
//     response envelope
//   - auth.go, student.go, homework.go, course.go: one file per endpoint
//     group
//
// # Envelope
//
// Every backend endpoint wraps its payload:
//
//	{ "success": bool, "message": string, "data": T }
//
// List endpoints add a sibling pagination object:
//
//	{ ..., "pagination": { current_page, last_page, per_page, total, has_more } }
//
// Facade methods decode and return the envelope as Response[T] or
// Paginated[T]. Checking Success is the caller's job; a false Success with a
// 200 status is a business-level refusal, not a transport error.
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation and timeout control
//   - Set Accept: application/json and a fixed User-Agent
//   - Attach Authorization: Bearer <token> when the TokenSource yields one;
//     anonymous requests (login) go out without the header
//   - Have a 10-second timeout via the shared http.Client
//
// Homework submission is the one non-JSON call: it encodes
// multipart/form-data with scalar fields flattened and one form field per
// attachment (attachments[0], attachments[1], ...), overriding the
// Content-Type for that call only.
//
// # Error Classification
//
// Every failed call is classified into exactly one Kind with a
// user-displayable message, by fixed precedence:
//
//  1. No response at all → KindNetwork ("check your connection"); the only
//     retryable kind
//  2. 401 on the login endpoint → KindAuthInvalid, backend message verbatim;
//     401 anywhere else → KindSessionExpired, the stored token is cleared
//     and a re-login message is forced regardless of backend text
//  3. 403 → KindForbidden; 4. 404 → KindNotFound; 5. 500 → KindServer;
//  6. anything else → KindRequestFailed
//
// The backend message, when present, beats the generic fallback in every
// case except session expiry. Methods never catch or suppress errors;
// propagation to the caller is mandatory.
//
// # Token Handling
//
// The client does not persist tokens. It reads them through the TokenSource
// interface and clears them through the same interface on session expiry.
// The auth store implements TokenSource, which keeps persistence concerns
// out of this package and makes the 401 side effect testable with a fake.
//
// # Testing Considerations
//
// When testing code that uses this package:
//   - Use httptest.Server and point NewClient at server.URL
//   - Exercise both envelope decoding and error classification
//   - Use a fake TokenSource to observe bearer injection and 401 clearing
//
// # Design Rationale
//
// The package is intentionally minimal:
//   - No caching (stores decide freshness)
//   - No retries (the retry package wraps reads that want them)
//   - No business logic (request shaping and response typing only)
//
// This keeps the client predictable: one call, one request, one classified
// outcome.
package portal
