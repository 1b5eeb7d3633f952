package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.NextField):
		m.loginFocus = (m.loginFocus + 1) % 2
		if m.loginFocus == 0 {
			m.emailInput.Focus()
			m.passwordInput.Blur()
		} else {
			m.emailInput.Blur()
			m.passwordInput.Focus()
		}
		return m, nil

	case key.Matches(msg, keys.SubmitForm):
		snap := m.opts.Auth.Snapshot()
		if snap.Loading {
			return m, nil
		}
		if strings.TrimSpace(m.emailInput.Value()) == "" || m.passwordInput.Value() == "" {
			return m, nil
		}
		return m, m.loginCmd()
	}

	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.emailInput, cmd = m.emailInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

func (m Model) renderLogin() string {
	snap := m.opts.Auth.Snapshot()

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Satchel"))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("Parent portal sign in"))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Text.Render("Email"))
	b.WriteString("\n")
	b.WriteString(m.emailInput.View())
	b.WriteString("\n\n")
	b.WriteString(m.styles.Text.Render("Password"))
	b.WriteString("\n")
	b.WriteString(m.passwordInput.View())
	b.WriteString("\n\n")

	switch {
	case snap.Loading:
		b.WriteString(m.spin.View() + m.styles.Muted.Render(" Signing in..."))
	case snap.Err != "":
		b.WriteString(m.styles.Danger.Render(snap.Err))
	default:
		b.WriteString(m.styles.Faint.Render("tab: next field · enter: sign in · ctrl+c: quit"))
	}

	card := m.styles.Card.Render(b.String())
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
	}
	return card
}
