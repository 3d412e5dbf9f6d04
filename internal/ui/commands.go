package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/thirty-seconds/internal/game/room"
)

// --- Tea messages ---

// snapshotMsg carries one full room snapshot; nil means room closed.
type snapshotMsg struct {
	room *room.Room
}

// joinedMsg indicates a create/join operation succeeded and the room
// subscription should start.
type joinedMsg struct{}

// opDoneMsg indicates a fire-and-forget operation completed.
type opDoneMsg struct{}

// errMsg carries an operation failure for display.
type errMsg struct {
	err error
}

// tickMsg drives the local round countdown. Gen identifies the phase
// the tick was scheduled in; stale generations are dropped.
type tickMsg struct {
	gen int
}

// --- Commands ---

// opCmd runs a session operation off the event loop.
func (m *Model) opCmd(f func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		if err := f(ctx); err != nil {
			return errMsg{err}
		}
		return opDoneMsg{}
	}
}

// joinCmd runs a create/join operation and signals success.
func (m *Model) joinCmd(f func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		if err := f(ctx); err != nil {
			return errMsg{err}
		}
		return joinedMsg{}
	}
}

// startSubscription opens the snapshot stream and the background
// presence sweeper for the joined room.
func (m *Model) startSubscription() tea.Cmd {
	ctx := context.Background()
	snapshots, cancel, err := m.session.Subscribe(ctx)
	if err != nil {
		return func() tea.Msg { return errMsg{err} }
	}
	m.snapshots = snapshots
	m.cancelSub = cancel

	sweepCtx, stop := context.WithCancel(ctx)
	m.stopSweep = stop
	go m.session.RunSweeper(sweepCtx)

	return m.waitForSnapshot()
}

// waitForSnapshot blocks on the snapshot channel as a command.
func (m *Model) waitForSnapshot() tea.Cmd {
	ch := m.snapshots
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return snapshotMsg{nil}
		}
		return snapshotMsg{r}
	}
}

// scheduleTick queues the next countdown tick for the current phase.
func (m *Model) scheduleTick() tea.Cmd {
	gen := m.timerGen
	return tea.Tick(countdownTick, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// handleTick updates the countdown and, on the explainer's client only,
// drives the round into scoring when the deadline passes.
func (m *Model) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.timerGen || m.phase != PhaseRound || m.snapshot == nil {
		// Tick from a cancelled countdown.
		return m, nil
	}

	remainingMs := m.snapshot.CurrentRound.TimerEnd - time.Now().UnixMilli()
	m.remainingSec = int((remainingMs + 999) / 1000)
	if m.remainingSec < 0 {
		m.remainingSec = 0
	}

	if remainingMs <= 0 {
		if m.snapshot.IsExplainer(m.session.PlayerID) && !m.endFired {
			m.endFired = true
			return m, m.opCmd(func(ctx context.Context) error {
				return m.session.EndRound(ctx)
			})
		}
		// Everyone else just waits for the scoring snapshot.
		return m, nil
	}
	return m, m.scheduleTick()
}
