package ui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyShiftTab:
		if m.focus == fieldName {
			m.focus = fieldCode
			m.nameInput.Blur()
			m.codeInput.Focus()
		} else {
			m.focus = fieldName
			m.codeInput.Blur()
			m.nameInput.Focus()
		}
		return m, nil

	case tea.KeyEnter:
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			m.errText = "enter your name first"
			return m, nil
		}
		code := strings.ToUpper(strings.TrimSpace(m.codeInput.Value()))
		if code != "" {
			// A code means join, an empty one means host a new room.
			return m, m.joinCmd(func(ctx context.Context) error {
				return m.session.JoinRoom(ctx, code, name)
			})
		}
		return m, m.joinCmd(func(ctx context.Context) error {
			return m.session.CreateRoom(ctx, name)
		})
	}

	var cmd tea.Cmd
	if m.focus == fieldName {
		m.nameInput, cmd = m.nameInput.Update(msg)
	} else {
		m.codeInput, cmd = m.codeInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) viewHome() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("⏱  Thirty Seconds"))
	b.WriteString("\n\n")
	b.WriteString("Name: " + m.nameInput.View() + "\n")
	b.WriteString("Code: " + m.codeInput.View() + "\n\n")
	b.WriteString(mutedStyle.Render("enter with empty code: host a new room\n"))
	b.WriteString(mutedStyle.Render("enter with a code: join that room\n"))
	b.WriteString(mutedStyle.Render("tab: switch field · ctrl+c: quit\n"))
	if m.errText != "" {
		b.WriteString("\n" + errStyle.Render(m.errText))
	}
	return screenStyle.Render(b.String())
}
