package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) updateWinner(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.leaveRoom()
	case "p":
		if !m.session.IsHost {
			return m, nil
		}
		return m, m.opCmd(func(ctx context.Context) error {
			return m.session.PlayAgain(ctx)
		})
	}
	return m, nil
}

func (m *Model) viewWinner() string {
	r := m.snapshot
	if r == nil {
		return ""
	}

	winner := string(r.Winner())

	var b strings.Builder
	b.WriteString(titleStyle.Render("Game over"))
	b.WriteString("\n")
	b.WriteString(teamStyle(winner).Render(fmt.Sprintf("🏆 Team %s wins!", winner)) + "\n\n")
	b.WriteString(fmt.Sprintf("Final score — red %d, blue %d\n\n", r.Teams.Red.Score, r.Teams.Blue.Score))

	if m.session.IsHost {
		b.WriteString(mutedStyle.Render("p: play again · q: close room\n"))
	} else {
		b.WriteString(mutedStyle.Render("waiting for the host · q: leave\n"))
	}
	if m.errText != "" {
		b.WriteString("\n" + errStyle.Render(m.errText))
	}
	return screenStyle.Render(b.String())
}
