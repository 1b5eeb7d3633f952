package state

import (
	"context"
	"sync"

	"github.com/satchelapp/satchel/internal/portal"
)

// firstPageSize is the page size used for the initial records fetch and kept
// for every subsequent page.
const firstPageSize = 10

// RecordsStore accumulates attendance records page by page alongside the
// class-hours summary for the current student.
type RecordsStore struct {
	mu sync.RWMutex

	summary    *portal.StudentClassHoursSummary
	records    []portal.AttendanceRecord
	pagination *portal.PaginationInfo
	loading    bool
	err        string
	gen        uint64
}

// RecordsSnapshot is a copy of the store's state for rendering.
type RecordsSnapshot struct {
	Summary    *portal.StudentClassHoursSummary
	Records    []portal.AttendanceRecord
	Pagination *portal.PaginationInfo
	Loading    bool
	Err        string
}

// HasMore reports whether another page can be requested.
func (s RecordsSnapshot) HasMore() bool {
	return s.Pagination != nil && s.Pagination.HasMore
}

// FetchClassHoursSummary loads the summary and then the first page of
// records. A summary failure aborts before the records request. A records
// failure after a successful summary still commits the summary with an empty
// record set: summary availability is never blocked by a records failure.
func (s *RecordsStore) FetchClassHoursSummary(ctx context.Context, client *portal.Client, studentID int64) error {
	gen := s.begin()

	summaryEnv, err := client.ClassHoursSummary(ctx, studentID)
	if err != nil {
		s.fail(gen, portal.UserMessage(err))
		return err
	}
	if !summaryEnv.Success {
		s.fail(gen, orSummaryFallback(summaryEnv.Message))
		return nil
	}

	recordsEnv, err := client.AttendanceRecords(ctx, studentID, portal.RecordQuery{Page: 1, PerPage: firstPageSize})

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return nil
	}
	summary := summaryEnv.Data
	s.summary = &summary
	s.loading = false
	s.err = ""
	if err != nil || !recordsEnv.Success {
		// Partial success: keep the summary, show no records.
		s.records = nil
		s.pagination = nil
		return nil
	}
	s.records = recordsEnv.Data
	pagination := recordsEnv.Pagination
	s.pagination = &pagination
	return nil
}

// FetchAttendanceRecords replaces the record list with one freshly fetched
// page, dropping anything accumulated so far.
func (s *RecordsStore) FetchAttendanceRecords(ctx context.Context, client *portal.Client, studentID int64, query portal.RecordQuery) error {
	gen := s.begin()

	env, err := client.AttendanceRecords(ctx, studentID, query)
	if err != nil {
		s.fail(gen, portal.UserMessage(err))
		return err
	}
	if !env.Success {
		s.fail(gen, orRecordsFallback(env.Message))
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return nil
	}
	s.records = env.Data
	pagination := env.Pagination
	s.pagination = &pagination
	s.loading = false
	s.err = ""
	return nil
}

// LoadMoreRecords appends the next page, preserving the order of everything
// already loaded. It is a no-op while a fetch is in flight or when the
// backend reported no further pages.
func (s *RecordsStore) LoadMoreRecords(ctx context.Context, client *portal.Client, studentID int64) error {
	s.mu.Lock()
	if s.loading || s.pagination == nil || !s.pagination.HasMore {
		s.mu.Unlock()
		return nil
	}
	s.gen++
	gen := s.gen
	s.loading = true
	s.err = ""
	query := portal.RecordQuery{
		Page:    s.pagination.CurrentPage + 1,
		PerPage: s.pagination.PerPage,
	}
	s.mu.Unlock()

	env, err := client.AttendanceRecords(ctx, studentID, query)
	if err != nil {
		s.fail(gen, portal.UserMessage(err))
		return err
	}
	if !env.Success {
		s.fail(gen, orRecordsFallback(env.Message))
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return nil
	}
	s.records = append(s.records, env.Data...)
	pagination := env.Pagination
	s.pagination = &pagination
	s.loading = false
	s.err = ""
	return nil
}

// ClearError drops the error message.
func (s *RecordsStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

// Reset clears all fields back to empty, used before a full refresh or when
// switching students.
func (s *RecordsStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = nil
	s.records = nil
	s.pagination = nil
	s.loading = false
	s.err = ""
	s.gen++
}

// Snapshot returns a copy of the current state.
func (s *RecordsStore) Snapshot() RecordsSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := RecordsSnapshot{
		Loading: s.loading,
		Err:     s.err,
	}
	if s.summary != nil {
		summary := *s.summary
		snap.Summary = &summary
	}
	if len(s.records) > 0 {
		snap.Records = make([]portal.AttendanceRecord, len(s.records))
		copy(snap.Records, s.records)
	}
	if s.pagination != nil {
		pagination := *s.pagination
		snap.Pagination = &pagination
	}
	return snap
}

func (s *RecordsStore) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.loading = true
	s.err = ""
	return s.gen
}

func (s *RecordsStore) fail(gen uint64, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return
	}
	s.loading = false
	s.err = msg
}

func orRecordsFallback(msg string) string {
	if msg == "" {
		return "Failed to load attendance records."
	}
	return msg
}

func orSummaryFallback(msg string) string {
	if msg == "" {
		return "Failed to load class-hours summary."
	}
	return msg
}
