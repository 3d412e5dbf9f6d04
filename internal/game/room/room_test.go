package room

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_CanTransition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		from Status
		to   Status
		ok   bool
	}{
		{"lobby to playing", StatusLobby, StatusPlaying, true},
		{"playing to round", StatusPlaying, StatusRound, true},
		{"round to scoring", StatusRound, StatusScoring, true},
		{"scoring to playing", StatusScoring, StatusPlaying, true},
		{"scoring to finished", StatusScoring, StatusFinished, true},
		{"finished to lobby restart", StatusFinished, StatusLobby, true},
		{"lobby to round skips playing", StatusLobby, StatusRound, false},
		{"round to playing skips scoring", StatusRound, StatusPlaying, false},
		{"playing back to lobby", StatusPlaying, StatusLobby, false},
		{"finished to playing", StatusFinished, StatusPlaying, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.ok, tt.from.CanTransition(tt.to))
		})
	}
}

func TestNew_InitialDocument(t *testing.T) {
	t.Parallel()

	r := New("player_1", "Alice", 30, 12, 1000)

	assert.Equal(t, "player_1", r.Host)
	assert.Equal(t, StatusLobby, r.Status)
	assert.Equal(t, 30, r.Settings.WinningScore)
	assert.Equal(t, 0, r.Teams.Red.Score)
	assert.Equal(t, 0, r.Teams.Blue.Score)
	assert.Equal(t, 12, r.Cards.Total)
	assert.Empty(t, r.Cards.Used)

	host, ok := r.Players["player_1"]
	require.True(t, ok)
	assert.True(t, host.IsHost)
	assert.Equal(t, TeamNone, host.Team)
	assert.Equal(t, int64(1000), host.JoinedAt)
}

func TestRoster_JoinOrder(t *testing.T) {
	t.Parallel()

	r := New("h", "Host", 30, 10, 1)
	r.Players["b"] = Player{Name: "B", Team: TeamRed, JoinedAt: 30}
	r.Players["a"] = Player{Name: "A", Team: TeamRed, JoinedAt: 10}
	r.Players["c"] = Player{Name: "C", Team: TeamRed, JoinedAt: 20}
	r.Players["d"] = Player{Name: "D", Team: TeamBlue, JoinedAt: 5}

	assert.Equal(t, []string{"a", "c", "b"}, r.Roster(TeamRed))
	assert.Equal(t, []string{"d"}, r.Roster(TeamBlue))
	assert.Equal(t, []string{"h"}, r.Unassigned())
}

func TestRoster_TieBreakByID(t *testing.T) {
	t.Parallel()

	r := &Room{Players: map[string]Player{
		"z": {Team: TeamBlue, JoinedAt: 7},
		"a": {Team: TeamBlue, JoinedAt: 7},
		"m": {Team: TeamBlue, JoinedAt: 7},
	}}

	assert.Equal(t, []string{"a", "m", "z"}, r.Roster(TeamBlue))
}

func TestCursor(t *testing.T) {
	t.Parallel()

	c := Cursor{Red: 2, Blue: 5}
	assert.Equal(t, 2, c.Index(TeamRed))
	assert.Equal(t, 5, c.Index(TeamBlue))

	c2 := c.WithIndex(TeamRed, 3)
	assert.Equal(t, 3, c2.Red)
	assert.Equal(t, 5, c2.Blue)
	// Original is untouched.
	assert.Equal(t, 2, c.Red)
}

func TestWinner(t *testing.T) {
	t.Parallel()

	r := &Room{
		Settings: Settings{WinningScore: 30},
		Teams:    Teams{Red: TeamState{Score: 30}, Blue: TeamState{Score: 12}},
	}
	assert.Equal(t, TeamRed, r.Winner())

	r.Teams = Teams{Red: TeamState{Score: 20}, Blue: TeamState{Score: 31}}
	assert.Equal(t, TeamBlue, r.Winner())
}

func TestTeamOpposite(t *testing.T) {
	t.Parallel()

	assert.Equal(t, TeamBlue, TeamRed.Opposite())
	assert.Equal(t, TeamRed, TeamBlue.Opposite())
}

// Projection is pure: decoding the same snapshot twice yields identical
// derived views.
func TestProjection_Idempotent(t *testing.T) {
	t.Parallel()

	r := New("h", "Host", 30, 10, 1)
	r.Players["a"] = Player{Name: "A", Team: TeamRed, JoinedAt: 2}
	r.Players["b"] = Player{Name: "B", Team: TeamBlue, JoinedAt: 3}
	r.Status = StatusPlaying
	r.CurrentRound = Round{Team: TeamRed, ExplainerID: "a", CorrectWords: []int{}}

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var first, second Room
	require.NoError(t, json.Unmarshal(data, &first))
	require.NoError(t, json.Unmarshal(data, &second))

	assert.Equal(t, first.Roster(TeamRed), second.Roster(TeamRed))
	assert.Equal(t, first.Roster(TeamBlue), second.Roster(TeamBlue))
	assert.Equal(t, first.Unassigned(), second.Unassigned())
	assert.Equal(t, first.IsExplainer("a"), second.IsExplainer("a"))
	assert.Equal(t, &first, &second)
}
