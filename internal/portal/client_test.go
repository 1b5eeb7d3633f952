package portal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

type fakeTokens struct {
	mu      sync.Mutex
	token   string
	cleared int
}

func (f *fakeTokens) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeTokens) ClearToken() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	f.cleared++
}

func TestParseBaseURL_DefaultsAndKeepsPath(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != DefaultBaseURL {
		t.Fatalf("base = %q, want %q", u.String(), DefaultBaseURL)
	}

	u, err = parseBaseURL("api.example.com/api/")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Path != "/api" {
		t.Fatalf("path = %q, want /api (trailing slash trimmed)", u.Path)
	}

	u, err = parseBaseURL("https://example.com/api?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_AttachesIdentificationAndBearer(t *testing.T) {
	t.Parallel()

	var gotAuth, gotUserAgent, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotUserAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Response[[]Student]{Success: true})
	}))
	t.Cleanup(server.Close)

	tokens := &fakeTokens{token: "tok-123"}
	c, err := NewClient(server.URL, tokens)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	if _, err := c.MyStudents(context.Background()); err != nil {
		t.Fatalf("MyStudents returned error: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("Authorization = %q, want Bearer tok-123", gotAuth)
	}
	if gotUserAgent != defaultUserAgent {
		t.Fatalf("User-Agent = %q, want %q", gotUserAgent, defaultUserAgent)
	}
	if gotAccept != "application/json" {
		t.Fatalf("Accept = %q, want application/json", gotAccept)
	}

	// Anonymous once the token is gone.
	tokens.ClearToken()
	if _, err := c.MyStudents(context.Background()); err != nil {
		t.Fatalf("MyStudents returned error: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("Authorization = %q, want empty for anonymous request", gotAuth)
	}
}

func TestClient_ClassifiesStatuses(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		path        string
		status      int
		body        string
		wantKind    Kind
		wantMessage string
	}{
		{
			name:        "login 401 keeps backend message",
			path:        "/auth/login",
			status:      http.StatusUnauthorized,
			body:        `{"success":false,"message":"Invalid email or password"}`,
			wantKind:    KindAuthInvalid,
			wantMessage: "Invalid email or password",
		},
		{
			name:        "login 401 without message falls back",
			path:        "/auth/login",
			status:      http.StatusUnauthorized,
			body:        `{}`,
			wantKind:    KindAuthInvalid,
			wantMessage: msgLoginFailed,
		},
		{
			name:        "non-login 401 forces re-login message",
			path:        "/h5/my-students",
			status:      http.StatusUnauthorized,
			body:        `{"success":false,"message":"token blacklisted"}`,
			wantKind:    KindSessionExpired,
			wantMessage: msgSessionExpired,
		},
		{
			name:        "403 prefers backend message",
			path:        "/h5/my-students",
			status:      http.StatusForbidden,
			body:        `{"message":"parents only"}`,
			wantKind:    KindForbidden,
			wantMessage: "parents only",
		},
		{
			name:        "404 falls back without message",
			path:        "/h5/my-students",
			status:      http.StatusNotFound,
			body:        `{}`,
			wantKind:    KindNotFound,
			wantMessage: msgNotFound,
		},
		{
			name:        "500 prefers backend message",
			path:        "/h5/my-students",
			status:      http.StatusInternalServerError,
			body:        `{"message":"db down"}`,
			wantKind:    KindServer,
			wantMessage: "db down",
		},
		{
			name:        "other statuses fall through",
			path:        "/h5/my-students",
			status:      http.StatusTeapot,
			body:        `not json at all`,
			wantKind:    KindRequestFailed,
			wantMessage: msgRequestFailed,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			t.Cleanup(server.Close)

			c, err := NewClient(server.URL, &fakeTokens{token: "tok"})
			if err != nil {
				t.Fatalf("NewClient returned error: %v", err)
			}

			var callErr error
			if tc.path == loginPath {
				_, callErr = c.Login(context.Background(), "a@b.c", "pw")
			} else {
				_, callErr = c.MyStudents(context.Background())
			}
			if callErr == nil {
				t.Fatalf("call returned nil error, want classified error")
			}

			var perr *Error
			if !errors.As(callErr, &perr) {
				t.Fatalf("error type = %T, want *Error", callErr)
			}
			if perr.Kind != tc.wantKind {
				t.Fatalf("kind = %d, want %d", perr.Kind, tc.wantKind)
			}
			if perr.Message != tc.wantMessage {
				t.Fatalf("message = %q, want %q", perr.Message, tc.wantMessage)
			}
			if perr.Status != tc.status {
				t.Fatalf("status = %d, want %d", perr.Status, tc.status)
			}
		})
	}
}

func TestClient_SessionExpiryClearsTokenAndGoesAnonymous(t *testing.T) {
	t.Parallel()

	var gotAuth []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"expired"}`))
	}))
	t.Cleanup(server.Close)

	tokens := &fakeTokens{token: "stale"}
	c, err := NewClient(server.URL, tokens)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	if _, err := c.MyStudents(context.Background()); err == nil {
		t.Fatalf("MyStudents returned nil error, want session expiry")
	}
	if tokens.cleared != 1 {
		t.Fatalf("ClearToken calls = %d, want 1", tokens.cleared)
	}

	// Next protected call must go out without an Authorization header.
	_, _ = c.MyStudents(context.Background())
	if len(gotAuth) != 2 {
		t.Fatalf("requests = %d, want 2", len(gotAuth))
	}
	if gotAuth[0] != "Bearer stale" {
		t.Fatalf("first Authorization = %q, want Bearer stale", gotAuth[0])
	}
	if gotAuth[1] != "" {
		t.Fatalf("second Authorization = %q, want empty", gotAuth[1])
	}
}

func TestClient_NetworkAndDecodeErrors(t *testing.T) {
	t.Parallel()

	// Port 1 is never listening.
	c, err := NewClient("127.0.0.1:1", nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.MyStudents(context.Background())
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if perr.Kind != KindNetwork {
		t.Fatalf("kind = %d, want KindNetwork", perr.Kind)
	}
	if !perr.Retryable() {
		t.Fatal("Retryable() = false, want true for network errors")
	}
	if perr.Message != msgNetwork {
		t.Fatalf("message = %q, want %q", perr.Message, msgNetwork)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{not-json"))
	}))
	t.Cleanup(server.Close)

	c, err = NewClient(server.URL, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.MyStudents(context.Background())
	if err == nil || errors.As(err, &perr) {
		t.Fatalf("decode failure should not be classified, got %v", err)
	}
}

func TestClient_QueryEncoding(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Paginated[AttendanceRecord]{Success: true})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/api", nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.AttendanceRecords(context.Background(), 7, RecordQuery{
		DateFrom: "2026-01-01",
		DateTo:   "2026-02-01",
		Page:     3,
		PerPage:  10,
	})
	if err != nil {
		t.Fatalf("AttendanceRecords returned error: %v", err)
	}
	if gotPath != "/api/h5/students/7/attendance-records" {
		t.Fatalf("path = %q, want base path preserved", gotPath)
	}
	q := gotQuery
	if q["date_from"][0] != "2026-01-01" || q["date_to"][0] != "2026-02-01" ||
		q["page"][0] != "3" || q["per_page"][0] != "10" {
		t.Fatalf("query = %v, want params encoded", q)
	}
}
