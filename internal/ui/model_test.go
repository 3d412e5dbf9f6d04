package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/thirty-seconds/internal/config"
	"github.com/palemoky/thirty-seconds/internal/game/room"
	"github.com/palemoky/thirty-seconds/internal/game/session"
	"github.com/palemoky/thirty-seconds/internal/sound"
	"github.com/palemoky/thirty-seconds/internal/testutil"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	s := session.New(new(testutil.MockRoomStore), &config.GameConfig{
		RoundSeconds: 30,
		TimerBuffer:  2,
		WinningScore: 30,
		PresenceTTL:  30,
		SweepEvery:   10,
	}, nil)
	s.PlayerID = "me"
	s.Code = "ABCDE"
	return New(s, sound.NewSoundManager())
}

func snapshotWithStatus(status room.Status) *room.Room {
	r := room.New("me", "Alice", 30, 10, 1)
	r.Status = status
	r.CurrentRound = room.Round{
		Team:        room.TeamRed,
		ExplainerID: "me",
		Words:       []string{"a", "b", "c", "d", "e"},
	}
	return r
}

func TestPhaseForStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status room.Status
		phase  Phase
	}{
		{room.StatusLobby, PhaseLobby},
		{room.StatusPlaying, PhaseGame},
		{room.StatusRound, PhaseRound},
		{room.StatusScoring, PhaseScoring},
		{room.StatusFinished, PhaseWinner},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.phase, phaseForStatus(tt.status))
	}
}

func TestHandleSnapshot_DerivesScreenFromStatus(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m.phase = PhaseLobby

	_, _ = m.handleSnapshot(snapshotWithStatus(room.StatusPlaying))
	assert.Equal(t, PhaseGame, m.phase)

	_, _ = m.handleSnapshot(snapshotWithStatus(room.StatusScoring))
	assert.Equal(t, PhaseScoring, m.phase)
}

func TestHandleSnapshot_SameSnapshotSameView(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m.phase = PhaseLobby

	snap := snapshotWithStatus(room.StatusPlaying)
	_, _ = m.handleSnapshot(snap)
	first := m.View()
	_, _ = m.handleSnapshot(snap)
	second := m.View()

	assert.Equal(t, first, second)
}

func TestHandleSnapshot_NilMeansRoomClosed(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m.phase = PhaseLobby
	m.snapshot = snapshotWithStatus(room.StatusLobby)

	_, _ = m.handleSnapshot(nil)
	assert.Equal(t, PhaseHome, m.phase)
	assert.Nil(t, m.snapshot)
	assert.NotEmpty(t, m.errText)
}

func TestPhaseChangeInvalidatesCountdown(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m.phase = PhaseGame
	_, _ = m.handleSnapshot(snapshotWithStatus(room.StatusRound))
	require.Equal(t, PhaseRound, m.phase)
	staleGen := m.timerGen

	// Phase moves on; the old generation's ticks are dropped.
	_, _ = m.handleSnapshot(snapshotWithStatus(room.StatusScoring))
	assert.NotEqual(t, staleGen, m.timerGen)

	m.remainingSec = 17
	_, cmd := m.handleTick(tickMsg{gen: staleGen})
	assert.Nil(t, cmd)
	assert.Equal(t, 17, m.remainingSec)
}

func TestHandleTick_CountsDown(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m.phase = PhaseRound
	snap := snapshotWithStatus(room.StatusRound)
	snap.CurrentRound.TimerEnd = time.Now().Add(10 * time.Second).UnixMilli()
	m.snapshot = snap

	_, cmd := m.handleTick(tickMsg{gen: m.timerGen})
	assert.NotNil(t, cmd)
	assert.InDelta(t, 10, m.remainingSec, 1)
}

func TestHandleTick_ExplainerFiresRoundEndOnce(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m.phase = PhaseRound
	snap := snapshotWithStatus(room.StatusRound)
	snap.CurrentRound.TimerEnd = time.Now().Add(-time.Second).UnixMilli()
	m.snapshot = snap

	_, cmd := m.handleTick(tickMsg{gen: m.timerGen})
	assert.NotNil(t, cmd, "expired deadline should trigger the transition")
	assert.True(t, m.endFired)

	_, cmd = m.handleTick(tickMsg{gen: m.timerGen})
	assert.Nil(t, cmd, "the transition must not fire twice")
}

func TestHandleTick_NonExplainerNeverTransitions(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m.phase = PhaseRound
	snap := snapshotWithStatus(room.StatusRound)
	snap.CurrentRound.ExplainerID = "someone_else"
	snap.CurrentRound.TimerEnd = time.Now().Add(-time.Second).UnixMilli()
	m.snapshot = snap

	_, cmd := m.handleTick(tickMsg{gen: m.timerGen})
	assert.Nil(t, cmd)
	assert.False(t, m.endFired)
}

func TestScoringToggles(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m.phase = PhaseScoring
	m.snapshot = snapshotWithStatus(room.StatusScoring)

	key := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}}
	_, _ = m.updateScoring(key)
	assert.True(t, m.marked[1])

	_, _ = m.updateScoring(key)
	assert.False(t, m.marked[1])
}

func TestScoringToggles_IgnoredForNonExplainer(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m.phase = PhaseScoring
	snap := snapshotWithStatus(room.StatusScoring)
	snap.CurrentRound.ExplainerID = "someone_else"
	m.snapshot = snap

	_, _ = m.updateScoring(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	assert.Empty(t, m.marked)
}
