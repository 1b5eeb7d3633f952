package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/satchelapp/satchel/internal/portal"
)

func (m Model) updateRecords(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if next, cmd, handled := m.handleGlobalKey(msg); handled {
		return next, cmd
	}

	switch {
	case key.Matches(msg, keys.LoadMore):
		current, ok := m.opts.Students.Current()
		if !ok {
			return m, nil
		}
		// The store itself refuses duplicate or past-the-end loads, so
		// firing the command unconditionally is safe.
		return m, m.loadMoreRecordsCmd(current.ID)

	case key.Matches(msg, keys.Refresh):
		return m.openRecords()
	}
	return m, nil
}

func (m Model) renderRecords() string {
	snap := m.opts.Records.Snapshot()

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Attendance & class hours"))
	b.WriteString("\n\n")

	if status := m.renderStatus(snap.Loading, snap.Err); status != "" {
		b.WriteString(status)
		b.WriteString("\n")
	}

	if snap.Summary != nil {
		b.WriteString(m.renderSummary(*snap.Summary))
		b.WriteString("\n")
	}

	if len(snap.Records) == 0 {
		if !snap.Loading && snap.Err == "" {
			b.WriteString(m.styles.Muted.Render("No attendance records."))
		}
		return b.String()
	}

	for _, record := range snap.Records {
		b.WriteString(m.renderRecord(record))
		b.WriteString("\n")
	}

	if snap.Pagination != nil {
		shown := len(snap.Records)
		if snap.HasMore() {
			b.WriteString(m.styles.Faint.Render(fmt.Sprintf("%d of %d · m: load more", shown, snap.Pagination.Total)))
		} else {
			b.WriteString(m.styles.Faint.Render(fmt.Sprintf("all %d records shown", shown)))
		}
	}
	return b.String()
}

func (m Model) renderSummary(summary portal.StudentClassHoursSummary) string {
	var b strings.Builder
	b.WriteString(m.styles.Text.Render(fmt.Sprintf("Lessons: %.1f used / %.1f total, %.1f remaining",
		summary.UsedLessons, summary.TotalLessons, summary.RemainingLessons)))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("Usage %.0f%%", summary.UsageRate())))
	b.WriteString("\n")
	return m.styles.Card.Render(b.String())
}

func (m Model) renderRecord(record portal.AttendanceRecord) string {
	status := lipgloss.NewStyle().
		Foreground(m.theme.StatusColor(record.AttendanceStatus)).
		Render(record.StatusName)

	line := fmt.Sprintf("%s %s  %s  %s", record.ScheduleDate, record.TimeRange, record.CourseName, status)
	if record.DeductedLessons > 0 {
		line += m.styles.Faint.Render(fmt.Sprintf("  -%.1f", record.DeductedLessons))
	}
	if record.RecordType == portal.RecordTypeManual {
		line += m.styles.Faint.Render("  (manual)")
	}

	out := m.styles.Text.Render(line)
	if record.TeacherNotes != "" {
		out += "\n" + m.styles.Muted.Render("  "+record.TeacherNotes)
	}
	return out
}
