package state

import (
	"context"
	"sync"

	"github.com/satchelapp/satchel/internal/portal"
)

// AuthStore holds the login session. It implements portal.TokenSource so the
// client can read the bearer token and drop it on session expiry.
type AuthStore struct {
	mu      sync.RWMutex
	storage SessionStorage // may be nil for ephemeral sessions

	session portal.Session
	authed  bool
	loading bool
	err     string
	gen     uint64
}

// AuthSnapshot is a copy of the store's state for rendering.
type AuthSnapshot struct {
	Session       portal.Session
	Authenticated bool
	Loading       bool
	Err           string
}

// NewAuthStore builds an AuthStore backed by storage.
func NewAuthStore(storage SessionStorage) *AuthStore {
	return &AuthStore{storage: storage}
}

// Restore loads a persisted session, if any. Called once at startup.
func (s *AuthStore) Restore() {
	if s.storage == nil {
		return
	}
	session, ok := s.storage.LoadSession()
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
	s.authed = session.Token != ""
}

// Token returns the current bearer token, empty when anonymous.
func (s *AuthStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Token
}

// ClearToken drops the token locally and from disk. The portal client calls
// this when a non-login request comes back 401; the next request goes out
// anonymous.
func (s *AuthStore) ClearToken() {
	s.mu.Lock()
	s.session.Token = ""
	s.authed = false
	s.mu.Unlock()
	if s.storage != nil {
		s.storage.ClearSessionToken()
	}
}

// Login exchanges credentials for a session and persists it. On failure the
// store stays anonymous and Err carries the classified message; a 401 from
// the backend surfaces its literal message.
func (s *AuthStore) Login(ctx context.Context, client *portal.Client, email, password string) error {
	gen := s.begin()

	env, err := client.Login(ctx, email, password)
	if err != nil {
		s.fail(gen, portal.UserMessage(err))
		return err
	}
	if !env.Success {
		s.fail(gen, orLoginFallback(env.Message))
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return nil // superseded by a newer call
	}
	s.session = env.Data
	s.authed = env.Data.Token != ""
	s.loading = false
	s.err = ""
	if s.storage != nil {
		s.storage.SaveSession(env.Data)
	}
	return nil
}

// Logout tells the backend, then clears local state regardless of whether
// the backend call succeeded.
func (s *AuthStore) Logout(ctx context.Context, client *portal.Client) {
	_, _ = client.Logout(ctx)

	s.mu.Lock()
	s.session = portal.Session{}
	s.authed = false
	s.loading = false
	s.err = ""
	s.gen++
	s.mu.Unlock()
	if s.storage != nil {
		s.storage.ClearSession()
	}
}

// ClearError drops the error message.
func (s *AuthStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

// Snapshot returns a copy of the current state.
func (s *AuthStore) Snapshot() AuthSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return AuthSnapshot{
		Session:       s.session,
		Authenticated: s.authed,
		Loading:       s.loading,
		Err:           s.err,
	}
}

func (s *AuthStore) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.loading = true
	s.err = ""
	return s.gen
}

func (s *AuthStore) fail(gen uint64, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return
	}
	s.loading = false
	s.err = msg
}

func orLoginFallback(msg string) string {
	if msg == "" {
		return "Login failed."
	}
	return msg
}
