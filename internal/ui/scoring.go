package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) updateScoring(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	r := m.snapshot
	if r == nil {
		return m, nil
	}

	switch key := msg.String(); key {
	case "q":
		return m.leaveRoom()

	case "1", "2", "3", "4", "5":
		if !r.IsExplainer(m.session.PlayerID) {
			return m, nil
		}
		idx := int(key[0]-'0') - 1
		if idx < len(r.CurrentRound.Words) {
			m.marked[idx] = !m.marked[idx]
		}
		return m, nil

	case "enter":
		if !r.IsExplainer(m.session.PlayerID) {
			return m, nil
		}
		var correct []int
		for idx, ok := range m.marked {
			if ok {
				correct = append(correct, idx)
			}
		}
		return m, m.opCmd(func(ctx context.Context) error {
			_, err := m.session.SubmitScore(ctx, correct)
			return err
		})
	}
	return m, nil
}

func (m *Model) viewScoring() string {
	r := m.snapshot
	if r == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Scoring"))
	b.WriteString("\n")
	b.WriteString(m.scoreBar() + "\n\n")

	if r.IsExplainer(m.session.PlayerID) {
		b.WriteString("Which words did your team guess?\n\n")
		var cells []string
		for i, w := range r.CurrentRound.Words {
			label := fmt.Sprintf("%d %s", i+1, w)
			if m.marked[i] {
				cells = append(cells, markedStyle.Render("✓ "+label))
			} else {
				cells = append(cells, wordStyle.Render("  "+label))
			}
		}
		b.WriteString(strings.Join(cells, " ") + "\n\n")
		b.WriteString(fmt.Sprintf("%d marked correct\n", len(markedIndices(m.marked))))
		b.WriteString(mutedStyle.Render("1-5: toggle a word · enter: submit\n"))
	} else {
		explainer := r.Players[r.CurrentRound.ExplainerID]
		b.WriteString(mutedStyle.Render(fmt.Sprintf("waiting for %s to mark the correct answers...\n", explainer.Name)))
	}

	if m.errText != "" {
		b.WriteString("\n" + errStyle.Render(m.errText))
	}
	return screenStyle.Render(b.String())
}

func markedIndices(marked map[int]bool) []int {
	var out []int
	for idx, ok := range marked {
		if ok {
			out = append(out, idx)
		}
	}
	return out
}
