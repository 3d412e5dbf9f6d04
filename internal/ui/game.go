package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) updateGame(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.leaveRoom()
	case "enter", " ":
		if m.snapshot == nil || !m.snapshot.IsExplainer(m.session.PlayerID) {
			return m, nil
		}
		return m, m.opCmd(func(ctx context.Context) error {
			return m.session.StartRound(ctx)
		})
	}
	return m, nil
}

// scoreBar renders the running score line shared by several screens.
func (m *Model) scoreBar() string {
	r := m.snapshot
	return fmt.Sprintf("%s %d  ·  %s %d",
		redStyle.Render("Red"), r.Teams.Red.Score,
		blueStyle.Render("Blue"), r.Teams.Blue.Score)
}

func (m *Model) viewGame() string {
	r := m.snapshot
	if r == nil {
		return ""
	}

	explainer := r.Players[r.CurrentRound.ExplainerID]
	team := string(r.CurrentRound.Team)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Thirty Seconds"))
	b.WriteString("\n")
	b.WriteString(m.scoreBar() + "\n\n")
	b.WriteString("Up next: " + teamStyle(team).Render("team "+team) + "\n")
	b.WriteString("Explainer: " + explainer.Name + "\n\n")

	if r.IsExplainer(m.session.PlayerID) {
		b.WriteString("You explain this round!\n")
		b.WriteString(mutedStyle.Render("enter: draw a card and start the timer\n"))
	} else {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("waiting for %s to start the round...\n", explainer.Name)))
	}
	b.WriteString(mutedStyle.Render("q: leave room\n"))
	if m.errText != "" {
		b.WriteString("\n" + errStyle.Render(m.errText))
	}
	return screenStyle.Render(b.String())
}
