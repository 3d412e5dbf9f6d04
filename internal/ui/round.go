package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) updateRound(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "q" {
		return m.leaveRoom()
	}
	return m, nil
}

func (m *Model) viewRound() string {
	r := m.snapshot
	if r == nil {
		return ""
	}

	style := timerStyle
	if m.remainingSec <= 10 {
		style = urgentStyle
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Round in progress"))
	b.WriteString("\n")
	b.WriteString(m.scoreBar() + "\n\n")
	b.WriteString(style.Render(fmt.Sprintf("⏱  %d", m.remainingSec)) + "\n\n")

	if r.IsExplainer(m.session.PlayerID) {
		b.WriteString("Your words — describe them without saying them:\n\n")
		for i, w := range r.CurrentRound.Words {
			b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, w))
		}
	} else {
		explainer := r.Players[r.CurrentRound.ExplainerID]
		me, inRoom := r.Players[m.session.PlayerID]
		if inRoom && me.Team == r.CurrentRound.Team {
			b.WriteString("🎯 Your team is guessing!\n")
			b.WriteString(fmt.Sprintf("%s is describing words to you — shout your guesses!\n", explainer.Name))
		} else {
			b.WriteString("👀 Watch the other team.\n")
			b.WriteString(fmt.Sprintf("%s is describing words to team %s.\n", explainer.Name, r.CurrentRound.Team))
		}
	}

	if m.errText != "" {
		b.WriteString("\n" + errStyle.Render(m.errText))
	}
	return screenStyle.Render(b.String())
}
