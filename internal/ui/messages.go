package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/satchelapp/satchel/internal/portal"
	"github.com/satchelapp/satchel/internal/retry"
)

// Store-backed operations signal completion only; the stores hold the
// result and any error message.
type (
	authDoneMsg     struct{}
	studentsDoneMsg struct{}
	recordsDoneMsg  struct{}
	loadMoreDoneMsg struct{}
)

// Facade reads that the model caches directly carry their payload. expired
// means the session was invalidated mid-flight and the UI must return to
// the login screen.
type scheduleMsg struct {
	data    *portal.StudentSchedule
	errMsg  string
	expired bool
}

type homeworkMsg struct {
	list    []portal.HomeworkAssignment
	errMsg  string
	expired bool
}

type homeworkDetailMsg struct {
	detail  *portal.HomeworkAssignment
	errMsg  string
	expired bool
}

type homeworkSubmitMsg struct {
	detail  *portal.HomeworkAssignment
	errMsg  string
	expired bool
}

type coursesMsg struct {
	levels  []portal.Course
	errMsg  string
	expired bool
}

type storiesMsg struct {
	level   string
	stories []portal.Story
	errMsg  string
	expired bool
}

// fetchOutcome folds an error into the message fields shared by every
// facade-read message.
func fetchOutcome(err error) (errMsg string, expired bool) {
	if err == nil {
		return "", false
	}
	return portal.UserMessage(err), portal.KindOf(err) == portal.KindSessionExpired
}

func (m Model) loginCmd() tea.Cmd {
	auth, client, ctx := m.opts.Auth, m.opts.Client, m.opts.Context
	email := m.emailInput.Value()
	password := m.passwordInput.Value()
	return func() tea.Msg {
		_ = auth.Login(ctx, client, email, password)
		return authDoneMsg{}
	}
}

func (m Model) fetchStudentsCmd() tea.Cmd {
	students, client, ctx, reads := m.opts.Students, m.opts.Client, m.opts.Context, m.opts.Reads
	return func() tea.Msg {
		_ = reads.Do(ctx, retry.Read, func(ctx context.Context) error {
			return students.FetchMyStudents(ctx, client)
		})
		return studentsDoneMsg{}
	}
}

func (m Model) fetchRecordsCmd(studentID int64) tea.Cmd {
	records, client, ctx, reads := m.opts.Records, m.opts.Client, m.opts.Context, m.opts.Reads
	return func() tea.Msg {
		_ = reads.Do(ctx, retry.Read, func(ctx context.Context) error {
			return records.FetchClassHoursSummary(ctx, client, studentID)
		})
		return recordsDoneMsg{}
	}
}

func (m Model) loadMoreRecordsCmd(studentID int64) tea.Cmd {
	records, client, ctx := m.opts.Records, m.opts.Client, m.opts.Context
	return func() tea.Msg {
		_ = records.LoadMoreRecords(ctx, client, studentID)
		return loadMoreDoneMsg{}
	}
}

func (m Model) fetchScheduleCmd(studentID int64) tea.Cmd {
	client, ctx, reads := m.opts.Client, m.opts.Context, m.opts.Reads
	return func() tea.Msg {
		var env *portal.Response[portal.StudentSchedule]
		err := reads.Do(ctx, retry.Read, func(ctx context.Context) error {
			var callErr error
			env, callErr = client.Schedule(ctx, studentID, portal.ScheduleQuery{})
			return callErr
		})
		if err != nil {
			errMsg, expired := fetchOutcome(err)
			return scheduleMsg{errMsg: errMsg, expired: expired}
		}
		if !env.Success {
			return scheduleMsg{errMsg: failedMessage(env.Message, "Failed to load schedule.")}
		}
		data := env.Data
		return scheduleMsg{data: &data}
	}
}

func (m Model) fetchHomeworkCmd(studentID int64, filter string) tea.Cmd {
	client, ctx, reads := m.opts.Client, m.opts.Context, m.opts.Reads
	return func() tea.Msg {
		var env *portal.Paginated[portal.HomeworkAssignment]
		err := reads.Do(ctx, retry.Read, func(ctx context.Context) error {
			var callErr error
			env, callErr = client.StudentHomework(ctx, studentID, portal.HomeworkQuery{Status: filter})
			return callErr
		})
		if err != nil {
			errMsg, expired := fetchOutcome(err)
			return homeworkMsg{errMsg: errMsg, expired: expired}
		}
		if !env.Success {
			return homeworkMsg{errMsg: failedMessage(env.Message, "Failed to load homework.")}
		}
		return homeworkMsg{list: env.Data}
	}
}

func (m Model) fetchHomeworkDetailCmd(homeworkID, studentID int64) tea.Cmd {
	client, ctx, reads := m.opts.Client, m.opts.Context, m.opts.Reads
	return func() tea.Msg {
		var env *portal.Response[portal.HomeworkAssignment]
		err := reads.Do(ctx, retry.Read, func(ctx context.Context) error {
			var callErr error
			env, callErr = client.HomeworkDetail(ctx, homeworkID, studentID)
			return callErr
		})
		if err != nil {
			errMsg, expired := fetchOutcome(err)
			return homeworkDetailMsg{errMsg: errMsg, expired: expired}
		}
		if !env.Success {
			return homeworkDetailMsg{errMsg: failedMessage(env.Message, "Failed to load homework details.")}
		}
		detail := env.Data
		return homeworkDetailMsg{detail: &detail}
	}
}

// submitHomeworkCmd sends the submission and then re-fetches the detail so
// the view shows what the backend actually recorded. Submission is a write
// and is never retried.
func (m Model) submitHomeworkCmd(homeworkID, studentID int64, content string, paths []string) tea.Cmd {
	client, ctx := m.opts.Client, m.opts.Context
	return func() tea.Msg {
		req := portal.SubmitHomeworkRequest{StudentID: studentID, Content: content}

		var files []*os.File
		defer func() {
			for _, f := range files {
				_ = f.Close()
			}
		}()
		for _, path := range paths {
			f, err := os.Open(path)
			if err != nil {
				return homeworkSubmitMsg{errMsg: fmt.Sprintf("Cannot read attachment %s.", path)}
			}
			files = append(files, f)
			info, err := f.Stat()
			if err != nil {
				return homeworkSubmitMsg{errMsg: fmt.Sprintf("Cannot read attachment %s.", path)}
			}
			req.Attachments = append(req.Attachments, portal.AttachmentUpload{
				Filename: filepath.Base(path),
				Size:     info.Size(),
				Content:  f,
			})
		}

		if _, err := client.SubmitHomework(ctx, homeworkID, req); err != nil {
			errMsg, expired := fetchOutcome(err)
			return homeworkSubmitMsg{errMsg: errMsg, expired: expired}
		}

		env, err := client.HomeworkDetail(ctx, homeworkID, studentID)
		if err != nil {
			errMsg, expired := fetchOutcome(err)
			return homeworkSubmitMsg{errMsg: errMsg, expired: expired}
		}
		if !env.Success {
			return homeworkSubmitMsg{errMsg: failedMessage(env.Message, "Failed to load homework details.")}
		}
		detail := env.Data
		return homeworkSubmitMsg{detail: &detail}
	}
}

func (m Model) fetchCoursesCmd() tea.Cmd {
	client, ctx, reads := m.opts.Client, m.opts.Context, m.opts.Reads
	return func() tea.Msg {
		var env *portal.Response[[]portal.Course]
		err := reads.Do(ctx, retry.Read, func(ctx context.Context) error {
			var callErr error
			env, callErr = client.Levels(ctx)
			return callErr
		})
		if err != nil {
			errMsg, expired := fetchOutcome(err)
			return coursesMsg{errMsg: errMsg, expired: expired}
		}
		if !env.Success {
			return coursesMsg{errMsg: failedMessage(env.Message, "Failed to load course levels.")}
		}
		return coursesMsg{levels: env.Data}
	}
}

func (m Model) fetchStoriesCmd(level portal.Course) tea.Cmd {
	client, ctx, reads := m.opts.Client, m.opts.Context, m.opts.Reads
	return func() tea.Msg {
		var env *portal.Response[[]portal.Story]
		err := reads.Do(ctx, retry.Read, func(ctx context.Context) error {
			var callErr error
			env, callErr = client.Stories(ctx, level.ID)
			return callErr
		})
		if err != nil {
			errMsg, expired := fetchOutcome(err)
			return storiesMsg{errMsg: errMsg, expired: expired}
		}
		if !env.Success {
			return storiesMsg{errMsg: failedMessage(env.Message, fmt.Sprintf("Failed to load stories for %s.", level.Level))}
		}
		return storiesMsg{level: level.Level, stories: env.Data}
	}
}

// failedMessage prefers the backend message when the envelope reports
// failure with success=false but HTTP 200.
func failedMessage(backend, fallback string) string {
	if backend != "" {
		return backend
	}
	return fallback
}
