package portal

import (
	"strings"
	"time"
)

// Response is the envelope every backend endpoint wraps its payload in.
type Response[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// Paginated is the envelope for list endpoints: pagination rides alongside
// data, not nested inside it.
type Paginated[T any] struct {
	Success    bool           `json:"success"`
	Message    string         `json:"message"`
	Data       []T            `json:"data"`
	Pagination PaginationInfo `json:"pagination"`
}

// PaginationInfo drives incremental loading. HasMore is the sole gate for
// requesting additional pages.
type PaginationInfo struct {
	CurrentPage int  `json:"current_page"`
	LastPage    int  `json:"last_page"`
	PerPage     int  `json:"per_page"`
	Total       int  `json:"total"`
	HasMore     bool `json:"has_more"`
}

// User is the authenticated parent account.
type User struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Role         string       `json:"role"`
	SystemAccess SystemAccess `json:"system_access"`
}

// SystemAccess flags which parts of the service the account may use.
type SystemAccess struct {
	Offline bool `json:"offline"`
	Online  bool `json:"online"`
}

// Session is returned by a successful login.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Student is one child linked to the authenticated parent.
type Student struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	StudentID    string `json:"student_id"`
	CurrentLevel string `json:"current_level"`
}

// Course describes one level of the course catalog.
type Course struct {
	ID           int64  `json:"id"`
	Level        string `json:"level"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	TotalStories int    `json:"total_stories,omitempty"`
	TargetWords  int    `json:"target_words,omitempty"`
	Duration     string `json:"duration,omitempty"`
}

// Story is a single reading unit within a course level.
type Story struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Level       string `json:"level"`
}

// StudentProgress summarizes how far a student has advanced.
type StudentProgress struct {
	CurrentLevel     string `json:"current_level"`
	CompletedStories int    `json:"completed_stories"`
	TotalStories     int    `json:"total_stories"`
	CurrentStory     string `json:"current_story"`
}

// ClassHours is the coarse class-hour balance for a student.
type ClassHours struct {
	RemainingHours float64 `json:"remaining_hours"`
	TotalHours     float64 `json:"total_hours"`
	UsedHours      float64 `json:"used_hours"`
}

// Attendance record types.
const (
	RecordTypeScheduled = "scheduled"
	RecordTypeManual    = "manual"
)

// AttendanceRecord is one class-hour deduction entry. Records are immutable
// from the client's perspective and fetched page by page.
type AttendanceRecord struct {
	ID               int64   `json:"id"`
	RecordType       string  `json:"record_type"`
	ScheduleDate     string  `json:"schedule_date"`
	TimeRange        string  `json:"time_range"`
	CourseName       string  `json:"course_name"`
	TeacherName      string  `json:"teacher_name"`
	StudentName      string  `json:"student_name"`
	AttendanceStatus string  `json:"attendance_status"`
	StatusName       string  `json:"status_name"`
	DeductedLessons  float64 `json:"deducted_lessons"`
	TeacherNotes     string  `json:"teacher_notes"`
	RecordedAt       string  `json:"recorded_at"`
}

// ParsedRecordedAt returns the recording timestamp as time.Time when possible.
func (r AttendanceRecord) ParsedRecordedAt() time.Time {
	return parseTime(r.RecordedAt)
}

// StudentClassHoursSummary is the lessons accounting for one student. The
// backend guarantees used + remaining == total; the client only displays it.
type StudentClassHoursSummary struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	TotalLessons     float64 `json:"total_lessons"`
	UsedLessons      float64 `json:"used_lessons"`
	RemainingLessons float64 `json:"remaining_lessons"`
}

// UsageRate returns used lessons as a percentage of the total.
func (s StudentClassHoursSummary) UsageRate() float64 {
	if s.TotalLessons <= 0 {
		return 0
	}
	return s.UsedLessons / s.TotalLessons * 100
}

// TimeSlot is a named teaching period within a day.
type TimeSlot struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	TimeRange string `json:"time_range"`
}

// ClassInfo identifies the class a schedule entry belongs to.
type ClassInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CourseInfo identifies the course taught in a schedule entry.
type CourseInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TeacherInfo identifies the teacher of a schedule entry.
type TeacherInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// LessonInfo names the unit and lesson covered by a schedule entry.
type LessonInfo struct {
	UnitName   string `json:"unit_name"`
	LessonName string `json:"lesson_name"`
}

// Schedule is one timetable entry, a read-only projection of the backend's
// timetable.
type Schedule struct {
	ID            int64       `json:"id"`
	Date          string      `json:"date"`
	FormattedDate string      `json:"formatted_date"`
	Weekday       int         `json:"weekday"`
	WeekdayName   string      `json:"weekday_name"`
	TimeSlot      TimeSlot    `json:"time_slot"`
	Class         ClassInfo   `json:"class"`
	Course        CourseInfo  `json:"course"`
	Teacher       TeacherInfo `json:"teacher"`
	LessonContent string      `json:"lesson_content"`
	TeachingFocus string      `json:"teaching_focus"`
	Classroom     string      `json:"classroom"`
	Status        string      `json:"status"`
	StatusName    string      `json:"status_name"`
	LessonInfo    *LessonInfo `json:"lesson_info"`
}

// StartAt combines the entry date with the slot start time. The zero time is
// returned when either part fails to parse.
func (s Schedule) StartAt() time.Time {
	date := strings.TrimSpace(s.Date)
	start := strings.TrimSpace(s.TimeSlot.StartTime)
	if date == "" {
		return time.Time{}
	}
	if start == "" {
		if t, err := time.ParseInLocation("2006-01-02", date, time.Local); err == nil {
			return t
		}
		return time.Time{}
	}
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, date+" "+start, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}

// StudentSchedule is the timetable payload for one student.
type StudentSchedule struct {
	StudentName     string     `json:"student_name"`
	Schedules       []Schedule `json:"schedules"`
	UpcomingClasses []Schedule `json:"upcoming_classes"`
	DateRange       DateRange  `json:"date_range"`
}

// DateRange bounds a schedule query.
type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Upcoming partitions the full schedule locally, keeping entries that start
// at or after now. This is a display convenience, not authoritative; the
// backend's own upcoming_classes list wins when present.
func (s StudentSchedule) Upcoming(now time.Time) []Schedule {
	var out []Schedule
	for _, entry := range s.Schedules {
		start := entry.StartAt()
		if start.IsZero() {
			continue
		}
		if !start.Before(now) {
			out = append(out, entry)
		}
	}
	return out
}

// Homework submission statuses as reported by the backend. Grading is
// backend-initiated; the client never produces a graded status.
const (
	SubmissionSubmitted = "submitted"
	SubmissionLate      = "late"
	SubmissionGraded    = "graded"
)

// HomeworkAttachment is a file attached to an assignment or submission.
type HomeworkAttachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// HomeworkSubmission is the student's answer to an assignment. Score,
// feedback, and the graded status are owned by the backend and read-only
// here.
type HomeworkSubmission struct {
	Content         string               `json:"content"`
	Attachments     []HomeworkAttachment `json:"attachments"`
	Status          string               `json:"status"`
	SubmittedAt     string               `json:"submitted_at"`
	Score           float64              `json:"score"`
	MaxScore        float64              `json:"max_score"`
	GradedAt        string               `json:"graded_at"`
	TeacherFeedback string               `json:"teacher_feedback"`
}

// KnowledgePoint is one teaching point covered by an assignment.
type KnowledgePoint struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UnitInfo names the course unit an assignment belongs to.
type UnitInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// HomeworkAssignment is one assignment, optionally carrying the student's
// submission.
type HomeworkAssignment struct {
	ID               int64                `json:"id"`
	Title            string               `json:"title"`
	Requirements     string               `json:"requirements"`
	DueDate          string               `json:"due_date"`
	DueDateFormatted string               `json:"due_date_formatted"`
	CreatedAt        string               `json:"created_at"`
	Class            ClassInfo            `json:"class"`
	Creator          TeacherInfo          `json:"creator"`
	Unit             *UnitInfo            `json:"unit"`
	KnowledgePoints  []KnowledgePoint     `json:"knowledge_points"`
	Attachments      []HomeworkAttachment `json:"attachments"`
	IsExpired        bool                 `json:"is_expired"`
	Submission       *HomeworkSubmission  `json:"submission"`
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04:05", value, time.Local); err == nil {
		return t
	}
	return time.Time{}
}
