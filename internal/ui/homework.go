package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/satchelapp/satchel/internal/portal"
)

// homeworkFilters is the cycle order for the f key.
var homeworkFilters = []string{
	portal.HomeworkFilterAll,
	portal.HomeworkFilterPending,
	portal.HomeworkFilterSubmitted,
	portal.HomeworkFilterOverdue,
}

func (m Model) updateHomework(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.composing {
		return m.updateHomeworkCompose(msg)
	}
	if m.hwDetail != nil || m.hwDetailBusy || m.hwDetailErr != "" {
		return m.updateHomeworkDetail(msg)
	}

	// While the search input is open it swallows everything except esc
	// and enter.
	if m.searching {
		switch {
		case key.Matches(msg, keys.Back):
			m.searching = false
			m.searchInput.Blur()
			m.searchInput.SetValue("")
			return m, nil
		case key.Matches(msg, keys.Select):
			m.searching = false
			m.searchInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	if next, cmd, handled := m.handleGlobalKey(msg); handled {
		return next, cmd
	}

	visible := m.visibleHomework()
	switch {
	case key.Matches(msg, keys.Filter):
		for i, f := range homeworkFilters {
			if f == m.homeworkFilter {
				m.homeworkFilter = homeworkFilters[(i+1)%len(homeworkFilters)]
				break
			}
		}
		return m.openHomework()

	case key.Matches(msg, keys.Search):
		m.searching = true
		m.searchInput.Focus()
		return m, nil

	case key.Matches(msg, keys.Up):
		if m.homeworkCursor > 0 {
			m.homeworkCursor--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.homeworkCursor < len(visible)-1 {
			m.homeworkCursor++
		}
		return m, nil

	case key.Matches(msg, keys.Select):
		if m.homeworkCursor >= len(visible) {
			return m, nil
		}
		current, ok := m.opts.Students.Current()
		if !ok {
			return m, nil
		}
		m.hwDetailBusy = true
		m.hwDetailErr = ""
		return m, m.fetchHomeworkDetailCmd(visible[m.homeworkCursor].ID, current.ID)

	case key.Matches(msg, keys.Refresh):
		return m.openHomework()
	}
	return m, nil
}

func (m Model) visibleHomework() []portal.HomeworkAssignment {
	return portal.FilterHomework(m.homework, m.searchInput.Value())
}

func (m Model) renderHomework() string {
	if m.composing {
		return m.renderHomeworkCompose()
	}
	if m.hwDetail != nil || m.hwDetailBusy || m.hwDetailErr != "" {
		return m.renderHomeworkDetail()
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Homework"))
	b.WriteString("  " + m.styles.Info.Render("["+m.homeworkFilter+"]"))
	b.WriteString("\n")

	if m.searching || m.searchInput.Value() != "" {
		b.WriteString(m.styles.Muted.Render("search: "))
		b.WriteString(m.searchInput.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if status := m.renderStatus(m.homeworkBusy, m.homeworkErr); status != "" {
		b.WriteString(status)
		b.WriteString("\n")
	}

	visible := m.visibleHomework()
	if len(visible) == 0 && !m.homeworkBusy && m.homeworkErr == "" {
		b.WriteString(m.styles.Muted.Render("No homework to show."))
		return b.String()
	}

	counts := portal.CountHomeworkByStatus(m.homework)
	b.WriteString(m.styles.Faint.Render(fmt.Sprintf("pending %d · submitted %d · overdue %d",
		counts[portal.HomeworkFilterPending], counts[portal.HomeworkFilterSubmitted], counts[portal.HomeworkFilterOverdue])))
	b.WriteString("\n\n")

	for i, hw := range visible {
		b.WriteString(m.renderHomeworkRow(hw, i == m.homeworkCursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderHomeworkRow(hw portal.HomeworkAssignment, selected bool) string {
	var badge string
	switch hw.LocalStatus() {
	case portal.HomeworkFilterSubmitted:
		badge = m.styles.Success.Render("[submitted]")
	case portal.HomeworkFilterOverdue:
		badge = m.styles.Danger.Render("[overdue]")
	default:
		badge = m.styles.Warning.Render("[pending]")
	}

	due := hw.DueDateFormatted
	if due == "" {
		due = hw.DueDate
	}

	line := fmt.Sprintf("%s %s  %s", badge, hw.Title, m.styles.Faint.Render("due "+due))
	if hw.Class.Name != "" {
		line += "  " + m.styles.Muted.Render(hw.Class.Name)
	}
	if hw.Submission != nil && hw.Submission.Status == portal.SubmissionGraded {
		line += "  " + m.styles.Info.Render(fmt.Sprintf("%.0f/%.0f", hw.Submission.Score, hw.Submission.MaxScore))
	}

	if selected {
		return m.styles.Selected.Render("> " + line)
	}
	return "  " + line
}
