package retry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/satchelapp/satchel/internal/portal"
)

func networkError(t *testing.T) error {
	t.Helper()
	c, err := portal.NewClient("127.0.0.1:1", nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.MyStudents(context.Background())
	if err == nil {
		t.Fatal("expected network error from closed port")
	}
	return err
}

func serverError(t *testing.T) error {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)
	c, err := portal.NewClient(server.URL, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.MyStudents(context.Background())
	if err == nil {
		t.Fatal("expected server error")
	}
	return err
}

func TestPolicy_TableSelectsNetworkReadsOnly(t *testing.T) {
	var p Policy
	netErr := networkError(t)
	srvErr := serverError(t)

	if !p.ShouldRetry(netErr, Read, 0) {
		t.Fatal("network read not retried, want retry")
	}
	if p.ShouldRetry(netErr, Write, 0) {
		t.Fatal("network write retried, want no retry for writes")
	}
	if p.ShouldRetry(srvErr, Read, 0) {
		t.Fatal("server-error read retried, want retry for network only")
	}
	if p.ShouldRetry(errors.New("plain"), Read, 0) {
		t.Fatal("unclassified error retried, want no retry")
	}
	if p.ShouldRetry(netErr, Read, 2) {
		t.Fatal("third retry allowed, want cap at 2")
	}
	if p.ShouldRetry(nil, Read, 0) {
		t.Fatal("nil error retried")
	}
}

func TestPolicy_DelayDoublesAndCaps(t *testing.T) {
	var p Policy
	want := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}
	for attempt, expected := range want {
		if got := p.Delay(attempt); got != expected {
			t.Fatalf("Delay(%d) = %v, want %v", attempt, got, expected)
		}
	}
	if got := p.Delay(10); got != 30*time.Second {
		t.Fatalf("Delay(10) = %v, want 30s cap", got)
	}
}

func TestPolicy_DoRetriesThenSucceeds(t *testing.T) {
	netErr := networkError(t)

	var slept []time.Duration
	p := Policy{sleep: func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}}

	calls := 0
	err := p.Do(context.Background(), Read, func(context.Context) error {
		calls++
		if calls < 3 {
			return netErr
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3 (two retries)", calls)
	}
	if len(slept) != 2 || slept[0] != time.Second || slept[1] != 2*time.Second {
		t.Fatalf("backoffs = %v, want [1s 2s]", slept)
	}
}

func TestPolicy_DoGivesUpAfterCap(t *testing.T) {
	netErr := networkError(t)

	p := Policy{sleep: func(context.Context, time.Duration) error { return nil }}
	calls := 0
	err := p.Do(context.Background(), Read, func(context.Context) error {
		calls++
		return netErr
	})
	if !errors.Is(err, netErr) {
		t.Fatalf("Do error = %v, want last attempt error", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 1 + 2 retries", calls)
	}
}

func TestPolicy_DoNeverRetriesWrites(t *testing.T) {
	netErr := networkError(t)

	p := Policy{sleep: func(context.Context, time.Duration) error {
		t.Fatal("write path slept, want immediate return")
		return nil
	}}
	calls := 0
	err := p.Do(context.Background(), Write, func(context.Context) error {
		calls++
		return netErr
	})
	if !errors.Is(err, netErr) || calls != 1 {
		t.Fatalf("calls = %d err = %v, want single failing attempt", calls, err)
	}
}
