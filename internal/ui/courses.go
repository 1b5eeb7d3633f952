package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) updateCourses(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if next, cmd, handled := m.handleGlobalKey(msg); handled {
		return next, cmd
	}

	switch {
	case key.Matches(msg, keys.Back):
		m.stories = nil
		m.storiesErr = ""
		m.storyLevel = ""
		return m, nil

	case key.Matches(msg, keys.Up):
		if m.courseCursor > 0 {
			m.courseCursor--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.courseCursor < len(m.courses)-1 {
			m.courseCursor++
		}
		return m, nil

	case key.Matches(msg, keys.Select):
		if m.courseCursor >= len(m.courses) {
			return m, nil
		}
		return m, m.fetchStoriesCmd(m.courses[m.courseCursor])

	case key.Matches(msg, keys.Refresh):
		return m.openCourses()
	}
	return m, nil
}

func (m Model) renderCourses() string {
	if m.storyLevel != "" || m.storiesErr != "" {
		return m.renderStories()
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Course levels"))
	b.WriteString("\n\n")

	if status := m.renderStatus(m.coursesBusy, m.coursesErr); status != "" {
		b.WriteString(status)
		b.WriteString("\n")
	}
	if len(m.courses) == 0 {
		if !m.coursesBusy && m.coursesErr == "" {
			b.WriteString(m.styles.Muted.Render("No course levels available."))
		}
		return b.String()
	}

	for i, course := range m.courses {
		line := m.styles.Accent.Render(course.Level)
		if course.Name != "" {
			line += "  " + course.Name
		}
		if course.TotalStories > 0 {
			line += "  " + m.styles.Faint.Render(fmt.Sprintf("%d stories", course.TotalStories))
		}
		if course.TargetWords > 0 {
			line += "  " + m.styles.Faint.Render(fmt.Sprintf("%d words", course.TargetWords))
		}
		if i == m.courseCursor {
			b.WriteString(m.styles.Selected.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
		if course.Description != "" && i == m.courseCursor {
			b.WriteString(m.styles.Muted.Render("    " + course.Description))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderStories() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Stories · " + m.storyLevel))
	b.WriteString("\n\n")

	if m.storiesErr != "" {
		b.WriteString(m.styles.Danger.Render(m.storiesErr))
		b.WriteString("\n")
		return b.String()
	}
	if len(m.stories) == 0 {
		b.WriteString(m.styles.Muted.Render("No stories in this level."))
		return b.String()
	}

	for _, story := range m.stories {
		b.WriteString(m.styles.Text.Render(story.Title))
		if story.Description != "" {
			b.WriteString("  " + m.styles.Muted.Render(story.Description))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Faint.Render("esc: back to levels"))
	return b.String()
}
