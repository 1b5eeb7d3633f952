package portal

import (
	"encoding/json"
	"testing"
	"time"
)

func TestPaginatedEnvelope_PaginationRidesAlongsideData(t *testing.T) {
	payload := `{
		"success": true,
		"message": "ok",
		"data": [{"id": 1, "course_name": "Phonics A"}],
		"pagination": {"current_page": 1, "last_page": 3, "per_page": 10, "total": 25, "has_more": true}
	}`

	var env Paginated[AttendanceRecord]
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !env.Success || len(env.Data) != 1 || env.Data[0].CourseName != "Phonics A" {
		t.Fatalf("envelope = %#v, want one record", env)
	}
	p := env.Pagination
	if p.CurrentPage != 1 || p.LastPage != 3 || p.PerPage != 10 || p.Total != 25 || !p.HasMore {
		t.Fatalf("pagination = %#v, want sibling object decoded", p)
	}
}

func TestScheduleStartAtAndUpcoming(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

	sched := StudentSchedule{
		Schedules: []Schedule{
			{ID: 1, Date: "2026-03-09", TimeSlot: TimeSlot{StartTime: "16:00"}},
			{ID: 2, Date: "2026-03-10", TimeSlot: TimeSlot{StartTime: "09:30"}},
			{ID: 3, Date: "2026-03-10", TimeSlot: TimeSlot{StartTime: "15:00"}},
			{ID: 4, Date: "2026-03-12", TimeSlot: TimeSlot{StartTime: "10:00:00"}},
			{ID: 5, Date: "", TimeSlot: TimeSlot{StartTime: "10:00"}}, // unparseable, skipped
		},
	}

	upcoming := sched.Upcoming(now)
	if len(upcoming) != 2 {
		t.Fatalf("upcoming = %d entries, want 2", len(upcoming))
	}
	if upcoming[0].ID != 3 || upcoming[1].ID != 4 {
		t.Fatalf("upcoming ids = [%d %d], want [3 4]", upcoming[0].ID, upcoming[1].ID)
	}

	start := sched.Schedules[3].StartAt()
	want := time.Date(2026, 3, 12, 10, 0, 0, 0, time.Local)
	if !start.Equal(want) {
		t.Fatalf("StartAt = %v, want %v", start, want)
	}

	// Date-only entries fall back to midnight.
	dateOnly := Schedule{Date: "2026-03-11"}
	if got := dateOnly.StartAt(); got.Hour() != 0 || got.Day() != 11 {
		t.Fatalf("StartAt date-only = %v, want midnight on the 11th", got)
	}
}

func TestClassHoursSummaryUsageRate(t *testing.T) {
	s := StudentClassHoursSummary{TotalLessons: 80, UsedLessons: 20, RemainingLessons: 60}
	if got := s.UsageRate(); got != 25 {
		t.Fatalf("UsageRate = %v, want 25", got)
	}
	if got := (StudentClassHoursSummary{}).UsageRate(); got != 0 {
		t.Fatalf("UsageRate zero total = %v, want 0", got)
	}
}
