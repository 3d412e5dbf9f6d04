package score

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/thirty-seconds/internal/game/room"
)

func scoringRoom(teamScore, winningScore int) *room.Room {
	return &room.Room{
		Status:   room.StatusScoring,
		Settings: room.Settings{WinningScore: winningScore},
		Teams:    room.Teams{Red: room.TeamState{Score: teamScore}},
		CurrentRound: room.Round{
			Team:  room.TeamRed,
			Words: []string{"a", "b", "c", "d", "e"},
		},
	}
}

func TestEvaluate_WinExactlyAtThreshold(t *testing.T) {
	t.Parallel()

	res := Evaluate(scoringRoom(27, 30), []int{0, 1, 2})
	assert.Equal(t, room.TeamRed, res.Team)
	assert.Equal(t, 30, res.NewScore)
	assert.True(t, res.Finished)
}

func TestEvaluate_OneShortOfWinning(t *testing.T) {
	t.Parallel()

	res := Evaluate(scoringRoom(27, 30), []int{0, 1})
	assert.Equal(t, 29, res.NewScore)
	assert.False(t, res.Finished)
}

func TestEvaluate_ZeroCorrect(t *testing.T) {
	t.Parallel()

	res := Evaluate(scoringRoom(10, 30), nil)
	assert.Equal(t, 10, res.NewScore)
	assert.False(t, res.Finished)
}

func TestEvaluate_IgnoresInvalidAndDuplicateIndices(t *testing.T) {
	t.Parallel()

	res := Evaluate(scoringRoom(0, 30), []int{0, 0, 2, -1, 5, 99})
	assert.Equal(t, 2, res.NewScore)
}

func TestDraw_NeverRepeatsWithinCycle(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	var used []int
	for i := 0; i < 10; i++ {
		idx, reset := Draw(used, 10, rng)
		assert.False(t, reset)
		assert.NotContains(t, used, idx)
		used = append(used, idx)
	}
	assert.Len(t, used, 10)
}

func TestDraw_LastAvailableIndexDoesNotReset(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	used := []int{0, 1, 2, 3, 4, 5, 6, 8, 9}

	idx, reset := Draw(used, 10, rng)
	assert.Equal(t, 7, idx)
	assert.False(t, reset)
}

func TestDraw_ExhaustedCycleResets(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	used := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	idx, reset := Draw(used, 10, rng)
	assert.True(t, reset)
	assert.GreaterOrEqual(t, idx, 0)
	assert.Less(t, idx, 10)
}

func TestAvailableIndices(t *testing.T) {
	t.Parallel()

	require.Equal(t, []int{0, 2, 4}, availableIndices([]int{1, 3}, 5))
	require.Equal(t, []int{0, 1, 2}, availableIndices(nil, 3))
	require.Empty(t, availableIndices([]int{0, 1, 2}, 3))
}
