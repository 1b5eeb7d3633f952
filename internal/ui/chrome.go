package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type tab struct {
	view  View
	label string
}

var tabs = []tab{
	{viewSchedule, "Schedule"},
	{viewHomework, "Homework"},
	{viewRecords, "Records"},
	{viewCourses, "Courses"},
	{viewStudents, "Students"},
}

func (m Model) renderHeader() string {
	parts := make([]string, 0, len(tabs)+2)
	parts = append(parts, m.styles.Title.Render("Satchel"))

	for _, t := range tabs {
		style := m.styles.Tab
		if t.view == m.view {
			style = m.styles.TabFocus
		}
		parts = append(parts, style.Render(t.label))
	}

	if current, ok := m.opts.Students.Current(); ok {
		parts = append(parts, m.styles.Muted.Render("["+current.Name+"]"))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if m.width > 0 {
		return m.styles.Header.Width(m.width).Render(row)
	}
	return m.styles.Header.Render(row)
}

func (m Model) renderFooter() string {
	hints := []string{
		"s/h/r/c: views", "w: students", "R: refresh", "t: theme", "L: log out", "q: quit",
	}
	switch m.view {
	case viewHomework:
		if m.composing || m.hwDetail != nil || m.hwDetailBusy {
			hints = append([]string{"esc: back"}, hints...)
		} else {
			hints = append([]string{"f: filter", "/: search", "enter: details"}, hints...)
		}
	case viewRecords:
		hints = append([]string{"m: load more"}, hints...)
	case viewSchedule:
		hints = append([]string{"u: upcoming/all"}, hints...)
	case viewCourses:
		hints = append([]string{"enter: stories", "esc: levels"}, hints...)
	case viewStudents:
		hints = append([]string{"enter: select"}, hints...)
	}
	return m.styles.Help.Render(strings.Join(hints, " · "))
}

// renderStatus draws the busy/error line shared by list views. Returns an
// empty string when there is nothing to report.
func (m Model) renderStatus(busy bool, errMsg string) string {
	switch {
	case busy:
		return m.spin.View() + m.styles.Muted.Render(" Loading...")
	case errMsg != "":
		return m.styles.Danger.Render(errMsg)
	}
	return ""
}
