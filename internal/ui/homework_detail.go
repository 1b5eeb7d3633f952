package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/satchelapp/satchel/internal/portal"
)

func (m Model) updateHomeworkDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		return m.closeHomeworkDetail(), nil

	case key.Matches(msg, keys.Select):
		if m.hwDetail == nil || !canSubmit(*m.hwDetail) || m.submitBusy {
			return m, nil
		}
		m.composing = true
		m.composeFocus = 0
		m.submitErr = ""
		m.contentInput.Focus()
		m.filesInput.Blur()
		return m, nil

	case key.Matches(msg, keys.Refresh):
		if m.hwDetail == nil {
			return m, nil
		}
		current, ok := m.opts.Students.Current()
		if !ok {
			return m, nil
		}
		m.hwDetailBusy = true
		m.hwDetailErr = ""
		return m, m.fetchHomeworkDetailCmd(m.hwDetail.ID, current.ID)
	}

	if next, cmd, handled := m.handleGlobalKey(msg); handled {
		return next, cmd
	}
	return m, nil
}

func (m Model) updateHomeworkCompose(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		m.composing = false
		m.contentInput.Blur()
		m.filesInput.Blur()
		return m, nil

	case key.Matches(msg, keys.NextField):
		m.composeFocus = (m.composeFocus + 1) % 2
		if m.composeFocus == 0 {
			m.contentInput.Focus()
			m.filesInput.Blur()
		} else {
			m.contentInput.Blur()
			m.filesInput.Focus()
		}
		return m, nil

	case key.Matches(msg, keys.SubmitForm):
		if m.submitBusy || m.hwDetail == nil {
			return m, nil
		}
		content := strings.TrimSpace(m.contentInput.Value())
		paths := splitPaths(m.filesInput.Value())
		if content == "" && len(paths) == 0 {
			m.submitErr = "Write something or attach a file first."
			return m, nil
		}
		current, ok := m.opts.Students.Current()
		if !ok {
			return m, nil
		}
		m.submitBusy = true
		m.submitErr = ""
		return m, m.submitHomeworkCmd(m.hwDetail.ID, current.ID, content, paths)
	}

	var cmd tea.Cmd
	if m.composeFocus == 0 {
		m.contentInput, cmd = m.contentInput.Update(msg)
	} else {
		m.filesInput, cmd = m.filesInput.Update(msg)
	}
	return m, cmd
}

// canSubmit reports whether the assignment still accepts a submission. An
// expired assignment can still be submitted; the backend marks it late.
func canSubmit(hw portal.HomeworkAssignment) bool {
	return hw.Submission == nil
}

// splitPaths parses the comma-separated attachment field.
func splitPaths(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (m Model) renderHomeworkDetail() string {
	var b strings.Builder

	if status := m.renderStatus(m.hwDetailBusy, m.hwDetailErr); status != "" {
		b.WriteString(status)
		b.WriteString("\n")
	}
	if m.hwDetail == nil {
		return b.String()
	}
	hw := *m.hwDetail

	b.WriteString(m.styles.Title.Render(hw.Title))
	b.WriteString("\n")

	due := hw.DueDateFormatted
	if due == "" {
		due = hw.DueDate
	}
	meta := "due " + due
	if hw.Class.Name != "" {
		meta += " · " + hw.Class.Name
	}
	if hw.Creator.Name != "" {
		meta += " · " + hw.Creator.Name
	}
	b.WriteString(m.styles.Muted.Render(meta))
	b.WriteString("\n\n")

	if hw.Requirements != "" {
		b.WriteString(m.styles.Text.Render(hw.Requirements))
		b.WriteString("\n\n")
	}

	if hw.Unit != nil && hw.Unit.Name != "" {
		b.WriteString(m.styles.Faint.Render("Unit: " + hw.Unit.Name))
		b.WriteString("\n")
	}
	if len(hw.KnowledgePoints) > 0 {
		names := make([]string, len(hw.KnowledgePoints))
		for i, kp := range hw.KnowledgePoints {
			names[i] = kp.Name
		}
		b.WriteString(m.styles.Faint.Render("Covers: " + strings.Join(names, ", ")))
		b.WriteString("\n")
	}
	if len(hw.Attachments) > 0 {
		b.WriteString(m.styles.Text.Render("Attachments:"))
		b.WriteString("\n")
		for _, att := range hw.Attachments {
			b.WriteString(m.styles.Muted.Render(fmt.Sprintf("  %s (%d bytes)", att.Name, att.Size)))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	b.WriteString(m.renderSubmissionState(hw))
	b.WriteString("\n")

	if m.submitErr != "" {
		b.WriteString(m.styles.Danger.Render(m.submitErr))
		b.WriteString("\n")
	}
	if canSubmit(hw) {
		hint := "enter: submit homework · esc: back"
		if hw.IsExpired {
			hint = "enter: submit (will be marked late) · esc: back"
		}
		b.WriteString(m.styles.Help.Render(hint))
	} else {
		b.WriteString(m.styles.Help.Render("esc: back"))
	}
	return b.String()
}

func (m Model) renderSubmissionState(hw portal.HomeworkAssignment) string {
	if hw.Submission == nil {
		if hw.IsExpired {
			return m.styles.Danger.Render("Not submitted, past due.")
		}
		return m.styles.Warning.Render("Not submitted yet.")
	}
	sub := *hw.Submission

	var b strings.Builder
	switch sub.Status {
	case portal.SubmissionGraded:
		b.WriteString(m.styles.Success.Render(fmt.Sprintf("Graded: %.0f/%.0f", sub.Score, sub.MaxScore)))
	case portal.SubmissionLate:
		b.WriteString(m.styles.Warning.Render("Submitted late"))
	default:
		b.WriteString(m.styles.Success.Render("Submitted"))
	}
	if sub.SubmittedAt != "" {
		b.WriteString(m.styles.Faint.Render("  " + sub.SubmittedAt))
	}
	b.WriteString("\n")

	if sub.Content != "" {
		b.WriteString(m.styles.Text.Render(sub.Content))
		b.WriteString("\n")
	}
	for _, att := range sub.Attachments {
		b.WriteString(m.styles.Muted.Render("  " + att.Name))
		b.WriteString("\n")
	}
	if sub.TeacherFeedback != "" {
		b.WriteString(m.styles.Info.Render("Feedback: " + sub.TeacherFeedback))
		b.WriteString("\n")
	}
	return m.styles.Card.Render(b.String())
}

func (m Model) renderHomeworkCompose() string {
	var b strings.Builder
	title := "Submit homework"
	if m.hwDetail != nil {
		title += " · " + m.hwDetail.Title
	}
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Text.Render("Content"))
	b.WriteString("\n")
	b.WriteString(m.contentInput.View())
	b.WriteString("\n\n")
	b.WriteString(m.styles.Text.Render("Attachments"))
	b.WriteString("\n")
	b.WriteString(m.filesInput.View())
	b.WriteString("\n\n")

	switch {
	case m.submitBusy:
		b.WriteString(m.spin.View() + m.styles.Muted.Render(" Submitting..."))
	case m.submitErr != "":
		b.WriteString(m.styles.Danger.Render(m.submitErr))
	default:
		b.WriteString(m.styles.Help.Render("tab: next field · enter: submit · esc: cancel"))
	}
	return b.String()
}
