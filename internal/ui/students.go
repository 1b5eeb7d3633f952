package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) updateStudents(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if next, cmd, handled := m.handleGlobalKey(msg); handled {
		return next, cmd
	}

	snap := m.opts.Students.Snapshot()
	switch {
	case key.Matches(msg, keys.Up):
		if m.studentCursor > 0 {
			m.studentCursor--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.studentCursor < len(snap.Students)-1 {
			m.studentCursor++
		}
		return m, nil

	case key.Matches(msg, keys.Select):
		if m.studentCursor >= len(snap.Students) {
			return m, nil
		}
		chosen := snap.Students[m.studentCursor]
		m.opts.Students.SetCurrent(&chosen)
		m.opts.Records.Reset()
		m.schedule = nil
		m.homework = nil
		return m.openSchedule()

	case key.Matches(msg, keys.Refresh):
		return m, m.fetchStudentsCmd()
	}
	return m, nil
}

func (m Model) renderStudents() string {
	snap := m.opts.Students.Snapshot()

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Students"))
	b.WriteString("\n\n")

	if status := m.renderStatus(snap.Loading, snap.Err); status != "" {
		b.WriteString(status)
		b.WriteString("\n")
	}

	if len(snap.Students) == 0 && !snap.Loading {
		b.WriteString(m.styles.Muted.Render("No students linked to this account."))
		return b.String()
	}

	for i, student := range snap.Students {
		line := fmt.Sprintf("%s  %s", student.Name, m.styles.Faint.Render(student.StudentID))
		if student.CurrentLevel != "" {
			line += "  " + m.styles.Info.Render(student.CurrentLevel)
		}
		if snap.Current != nil && snap.Current.ID == student.ID {
			line += m.styles.Success.Render("  ✓")
		}
		if i == m.studentCursor {
			b.WriteString(m.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(m.styles.Text.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
