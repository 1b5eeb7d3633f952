package state

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/satchelapp/satchel/internal/portal"
)

func newStudentServer(t *testing.T, students []portal.Student) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/h5/my-students" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(portal.Response[[]portal.Student]{Success: true, Data: students})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestStudentStore_AutoSelectsSingleStudent(t *testing.T) {
	t.Parallel()

	only := portal.Student{ID: 11, Name: "Mia", StudentID: "S-11", CurrentLevel: "A"}
	server := newStudentServer(t, []portal.Student{only})

	storage := &memStorage{}
	store := NewStudentStore(storage)
	client, err := portal.NewClient(server.URL, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	if err := store.FetchMyStudents(context.Background(), client); err != nil {
		t.Fatalf("FetchMyStudents returned error: %v", err)
	}

	current, ok := store.Current()
	if !ok || current.ID != 11 {
		t.Fatalf("current = (%#v, %v), want auto-selected Mia", current, ok)
	}
	if !storage.hasSelection || storage.currentID != 11 {
		t.Fatalf("storage = %#v, want persisted selection", storage)
	}

	// Fetching again with the selection in place is observably a no-op.
	if err := store.FetchMyStudents(context.Background(), client); err != nil {
		t.Fatalf("FetchMyStudents returned error: %v", err)
	}
	current, ok = store.Current()
	if !ok || current.ID != 11 {
		t.Fatalf("current = (%#v, %v) after refetch, want unchanged", current, ok)
	}
}

func TestStudentStore_KeepsExistingSelection(t *testing.T) {
	t.Parallel()

	server := newStudentServer(t, []portal.Student{{ID: 5, Name: "Leo"}})

	store := NewStudentStore(&memStorage{})
	chosen := portal.Student{ID: 3, Name: "Ana"}
	store.SetCurrent(&chosen)

	client, err := portal.NewClient(server.URL, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if err := store.FetchMyStudents(context.Background(), client); err != nil {
		t.Fatalf("FetchMyStudents returned error: %v", err)
	}

	current, ok := store.Current()
	if !ok || current.ID != 3 {
		t.Fatalf("current = (%#v, %v), want Ana kept over auto-select", current, ok)
	}
}

func TestStudentStore_NoAutoSelectForMultipleStudents(t *testing.T) {
	t.Parallel()

	server := newStudentServer(t, []portal.Student{{ID: 1}, {ID: 2}})

	store := NewStudentStore(&memStorage{})
	client, err := portal.NewClient(server.URL, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if err := store.FetchMyStudents(context.Background(), client); err != nil {
		t.Fatalf("FetchMyStudents returned error: %v", err)
	}

	if _, ok := store.Current(); ok {
		t.Fatal("current set, want no auto-select with two students")
	}
	if snap := store.Snapshot(); len(snap.Students) != 2 {
		t.Fatalf("students = %d, want 2", len(snap.Students))
	}
}

func TestStudentStore_RestoresPersistedSelection(t *testing.T) {
	storage := &memStorage{
		students:     []portal.Student{{ID: 1, Name: "Leo"}, {ID: 2, Name: "Mia"}},
		currentID:    2,
		hasSelection: true,
	}
	store := NewStudentStore(storage)
	store.Restore()

	current, ok := store.Current()
	if !ok || current.Name != "Mia" {
		t.Fatalf("current = (%#v, %v), want restored Mia", current, ok)
	}
}

func TestStudentStore_FetchFailureSetsError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"maintenance window"}`))
	}))
	t.Cleanup(server.Close)

	store := NewStudentStore(&memStorage{})
	client, err := portal.NewClient(server.URL, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if err := store.FetchMyStudents(context.Background(), client); err == nil {
		t.Fatal("FetchMyStudents returned nil error, want server error")
	}

	snap := store.Snapshot()
	if snap.Loading {
		t.Fatal("still loading after failure")
	}
	if snap.Err != "maintenance window" {
		t.Fatalf("err = %q, want backend message", snap.Err)
	}
}

func TestStudentStore_ResetClearsSelection(t *testing.T) {
	storage := &memStorage{}
	store := NewStudentStore(storage)
	chosen := portal.Student{ID: 3}
	store.SetCurrent(&chosen)

	store.Reset()
	if _, ok := store.Current(); ok {
		t.Fatal("current survived Reset")
	}
	if storage.selectionGone != 1 {
		t.Fatalf("ClearSelection calls = %d, want 1", storage.selectionGone)
	}
}
