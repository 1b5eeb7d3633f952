package portal

import "errors"

// Kind categorizes a failed API call.
type Kind int

const (
	// KindNetwork means no response was received at all. This is the only
	// kind callers should consider retryable.
	KindNetwork Kind = iota
	// KindAuthInvalid is a 401 from the login endpoint: bad credentials.
	KindAuthInvalid
	// KindSessionExpired is a 401 from any other endpoint. The stored token
	// has already been cleared by the time the caller sees this.
	KindSessionExpired
	// KindForbidden is a 403.
	KindForbidden
	// KindNotFound is a 404.
	KindNotFound
	// KindServer is a 500.
	KindServer
	// KindRequestFailed covers every other error status.
	KindRequestFailed
)

// User-displayable fallback messages. A backend-provided message takes
// precedence except for session expiry, where the forced re-login text is
// more actionable than whatever the backend sent.
const (
	msgNetwork        = "Network connection failed. Check your connection settings."
	msgLoginFailed    = "Login failed."
	msgSessionExpired = "Please sign in again."
	msgForbidden      = "You do not have permission to access this resource."
	msgNotFound       = "The requested resource does not exist."
	msgServer         = "Internal server error."
	msgRequestFailed  = "Request failed."
)

// Error is the classified form of every failed API call.
type Error struct {
	Kind    Kind
	Message string // user-displayable
	Status  int    // HTTP status, zero when no response was received
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.err }

// Retryable reports whether a retry could plausibly succeed. Only network
// failures qualify; everything else reflects server-side state.
func (e *Error) Retryable() bool { return e.Kind == KindNetwork }

// KindOf extracts the classification from err, or KindRequestFailed when err
// is not a portal error.
func KindOf(err error) Kind {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return KindRequestFailed
}

// UserMessage extracts the user-displayable message from err, falling back
// to the generic failure text for unclassified errors.
func UserMessage(err error) string {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Message
	}
	return msgRequestFailed
}
