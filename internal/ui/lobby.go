package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/thirty-seconds/internal/game/room"
)

// lobbyRoster is the flat navigation order of the lobby player list:
// unassigned first, then red, then blue, each in join order.
func (m *Model) lobbyRoster() []string {
	r := m.snapshot
	ids := append([]string{}, r.Unassigned()...)
	ids = append(ids, r.Roster(room.TeamRed)...)
	ids = append(ids, r.Roster(room.TeamBlue)...)
	return ids
}

func (m *Model) updateLobby(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.snapshot == nil {
		return m, nil
	}
	roster := m.lobbyRoster()

	switch msg.String() {
	case "q":
		return m.leaveRoom()

	case "up", "k":
		if m.selectedPlayer > 0 {
			m.selectedPlayer--
		}
		return m, nil

	case "down", "j":
		if m.selectedPlayer < len(roster)-1 {
			m.selectedPlayer++
		}
		return m, nil

	case "r", "b", "x":
		if !m.session.IsHost || m.selectedPlayer >= len(roster) {
			return m, nil
		}
		target := roster[m.selectedPlayer]
		team := room.TeamNone
		switch msg.String() {
		case "r":
			team = room.TeamRed
		case "b":
			team = room.TeamBlue
		}
		return m, m.opCmd(func(ctx context.Context) error {
			return m.session.AssignTeam(ctx, target, team)
		})

	case "+", "=":
		return m.adjustWinningScore(5)

	case "-", "_":
		return m.adjustWinningScore(-5)

	case "s", "enter":
		if !m.session.IsHost {
			return m, nil
		}
		return m, m.opCmd(func(ctx context.Context) error {
			return m.session.StartGame(ctx)
		})
	}
	return m, nil
}

func (m *Model) adjustWinningScore(delta int) (tea.Model, tea.Cmd) {
	if !m.session.IsHost {
		return m, nil
	}
	target := m.snapshot.Settings.WinningScore + delta
	if target < 5 {
		target = 5
	}
	return m, m.opCmd(func(ctx context.Context) error {
		return m.session.UpdateWinningScore(ctx, target)
	})
}

func (m *Model) viewLobby() string {
	r := m.snapshot
	if r == nil {
		return screenStyle.Render("joining...")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Lobby"))
	b.WriteString("\n")
	b.WriteString("Room code: " + codeStyle.Render(m.session.Code) + "\n\n")
	b.WriteString(fmt.Sprintf("Playing to %d points\n\n", r.Settings.WinningScore))

	roster := m.lobbyRoster()
	for i, id := range roster {
		p := r.Players[id]
		label := p.Name
		if p.IsHost {
			label += " ♔"
		}
		switch p.Team {
		case room.TeamRed:
			label = redStyle.Render("[red]  ") + label
		case room.TeamBlue:
			label = blueStyle.Render("[blue] ") + label
		default:
			label = mutedStyle.Render("[–]    ") + label
		}
		if m.session.IsHost && i == m.selectedPlayer {
			label = selectedStyle.Render("> " + label)
		} else {
			label = "  " + label
		}
		b.WriteString(label + "\n")
	}

	b.WriteString("\n")
	if m.session.IsHost {
		b.WriteString(mutedStyle.Render("↑/↓ select · r/b assign team · x unassign\n"))
		b.WriteString(mutedStyle.Render("+/- winning score · s start game · q leave\n"))
	} else {
		b.WriteString(mutedStyle.Render("waiting for the host to start · q leave\n"))
	}
	if m.errText != "" {
		b.WriteString("\n" + errStyle.Render(m.errText))
	}
	return screenStyle.Render(b.String())
}
