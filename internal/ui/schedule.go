package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/satchelapp/satchel/internal/portal"
)

func (m Model) updateSchedule(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if next, cmd, handled := m.handleGlobalKey(msg); handled {
		return next, cmd
	}

	switch {
	case key.Matches(msg, keys.Toggle):
		m.showAll = !m.showAll
		return m, nil
	case key.Matches(msg, keys.Refresh):
		return m.openSchedule()
	}
	return m, nil
}

func (m Model) renderSchedule() string {
	var b strings.Builder
	heading := "Upcoming classes"
	if m.showAll {
		heading = "Full schedule"
	}
	b.WriteString(m.styles.Title.Render(heading))
	b.WriteString("\n\n")

	if status := m.renderStatus(m.scheduleBusy, m.scheduleErr); status != "" {
		b.WriteString(status)
		b.WriteString("\n")
	}
	if m.schedule == nil {
		if !m.scheduleBusy && m.scheduleErr == "" {
			b.WriteString(m.styles.Muted.Render("No schedule loaded."))
		}
		return b.String()
	}

	entries := m.scheduleEntries()
	if len(entries) == 0 {
		b.WriteString(m.styles.Muted.Render("No classes to show."))
		return b.String()
	}

	for _, entry := range entries {
		b.WriteString(m.renderScheduleEntry(entry))
		b.WriteString("\n")
	}

	if dr := m.schedule.DateRange; dr.From != "" || dr.To != "" {
		b.WriteString(m.styles.Faint.Render(fmt.Sprintf("%s – %s", dr.From, dr.To)))
	}
	return b.String()
}

// scheduleEntries picks the list for the active toggle. The backend's own
// upcoming_classes list wins when present; the local partition is the
// fallback for older responses that omit it.
func (m Model) scheduleEntries() []portal.Schedule {
	if m.showAll {
		return m.schedule.Schedules
	}
	if len(m.schedule.UpcomingClasses) > 0 {
		return m.schedule.UpcomingClasses
	}
	return m.schedule.Upcoming(time.Now())
}

func (m Model) renderScheduleEntry(entry portal.Schedule) string {
	var b strings.Builder

	when := entry.FormattedDate
	if when == "" {
		when = entry.Date
	}
	if entry.WeekdayName != "" {
		when += " " + entry.WeekdayName
	}
	b.WriteString(m.styles.Accent.Render(when))
	if entry.TimeSlot.TimeRange != "" {
		b.WriteString("  " + m.styles.Text.Render(entry.TimeSlot.TimeRange))
	}
	b.WriteString("\n")

	line := entry.Course.Name
	if entry.Class.Name != "" {
		line += " · " + entry.Class.Name
	}
	if entry.Teacher.Name != "" {
		line += " · " + entry.Teacher.Name
	}
	b.WriteString(m.styles.Text.Render(line))
	b.WriteString("\n")

	if entry.LessonInfo != nil && entry.LessonInfo.LessonName != "" {
		b.WriteString(m.styles.Muted.Render(entry.LessonInfo.UnitName + " / " + entry.LessonInfo.LessonName))
		b.WriteString("\n")
	}
	if entry.StatusName != "" {
		b.WriteString(m.styles.Info.Render(entry.StatusName))
		b.WriteString("\n")
	}
	return b.String()
}
