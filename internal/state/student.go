package state

import (
	"context"
	"sync"

	"github.com/satchelapp/satchel/internal/portal"
)

// StudentStore holds the students linked to the parent and the single
// "current" selection the rest of the app reads.
type StudentStore struct {
	mu      sync.RWMutex
	storage SelectionStorage // may be nil

	students []portal.Student
	current  *portal.Student
	loading  bool
	err      string
	gen      uint64
}

// StudentSnapshot is a copy of the store's state for rendering.
type StudentSnapshot struct {
	Students []portal.Student
	Current  *portal.Student
	Loading  bool
	Err      string
}

// NewStudentStore builds a StudentStore backed by storage.
func NewStudentStore(storage SelectionStorage) *StudentStore {
	return &StudentStore{storage: storage}
}

// Restore loads the persisted list and selection. Called once at startup.
func (s *StudentStore) Restore() {
	if s.storage == nil {
		return
	}
	students, currentID, ok := s.storage.LoadSelection()
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students = students
	for i := range students {
		if students[i].ID == currentID {
			st := students[i]
			s.current = &st
			break
		}
	}
}

// FetchMyStudents replaces the list. When exactly one student comes back and
// nothing is selected yet, it becomes the current student automatically.
func (s *StudentStore) FetchMyStudents(ctx context.Context, client *portal.Client) error {
	gen := s.begin()

	env, err := client.MyStudents(ctx)
	if err != nil {
		s.fail(gen, portal.UserMessage(err))
		return err
	}
	if !env.Success {
		s.fail(gen, orFetchFallback(env.Message))
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return nil
	}
	s.students = env.Data
	if len(env.Data) == 1 && s.current == nil {
		st := env.Data[0]
		s.current = &st
	}
	s.loading = false
	s.err = ""
	s.persistLocked()
	return nil
}

// SetCurrent records an explicit selection and persists it. nil clears the
// selection.
func (s *StudentStore) SetCurrent(student *portal.Student) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if student == nil {
		s.current = nil
	} else {
		st := *student
		s.current = &st
	}
	s.persistLocked()
}

// Current returns the selected student, ok=false when none is selected.
func (s *StudentStore) Current() (portal.Student, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return portal.Student{}, false
	}
	return *s.current, true
}

// ClearError drops the error message.
func (s *StudentStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

// Reset clears everything, including the persisted selection.
func (s *StudentStore) Reset() {
	s.mu.Lock()
	s.students = nil
	s.current = nil
	s.loading = false
	s.err = ""
	s.gen++
	s.mu.Unlock()
	if s.storage != nil {
		s.storage.ClearSelection()
	}
}

// Snapshot returns a copy of the current state.
func (s *StudentStore) Snapshot() StudentSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := StudentSnapshot{
		Loading: s.loading,
		Err:     s.err,
	}
	if len(s.students) > 0 {
		snap.Students = make([]portal.Student, len(s.students))
		copy(snap.Students, s.students)
	}
	if s.current != nil {
		st := *s.current
		snap.Current = &st
	}
	return snap
}

func (s *StudentStore) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.loading = true
	s.err = ""
	return s.gen
}

func (s *StudentStore) fail(gen uint64, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return
	}
	s.loading = false
	s.err = msg
}

func (s *StudentStore) persistLocked() {
	if s.storage == nil {
		return
	}
	var currentID int64
	if s.current != nil {
		currentID = s.current.ID
	}
	students := make([]portal.Student, len(s.students))
	copy(students, s.students)
	s.storage.SaveSelection(students, currentID)
}

func orFetchFallback(msg string) string {
	if msg == "" {
		return "Failed to load student information."
	}
	return msg
}
