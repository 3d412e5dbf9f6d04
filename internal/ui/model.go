// Package ui renders room snapshots to the terminal. It is a pure
// projection of the shared document: every screen derives from the
// latest snapshot plus this client's identity, and all mutations go
// through the session operations.
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/thirty-seconds/internal/game/room"
	"github.com/palemoky/thirty-seconds/internal/game/session"
	"github.com/palemoky/thirty-seconds/internal/logger"
	"github.com/palemoky/thirty-seconds/internal/sound"
)

// Phase is the screen currently shown.
type Phase int

const (
	PhaseHome Phase = iota
	PhaseLobby
	PhaseGame
	PhaseRound
	PhaseScoring
	PhaseWinner
)

const (
	// opTimeout bounds a single store operation.
	opTimeout = 5 * time.Second
	// countdownTick is the local timer redraw interval.
	countdownTick = 100 * time.Millisecond
)

// homeField selects the focused input on the home screen.
type homeField int

const (
	fieldName homeField = iota
	fieldCode
)

// Model is the root bubbletea model.
type Model struct {
	session *session.Session
	sounds  *sound.SoundManager

	phase  Phase
	width  int
	height int

	// Home inputs
	nameInput textinput.Model
	codeInput textinput.Model
	focus     homeField

	// Live room state
	snapshot  *room.Room
	snapshots <-chan *room.Room
	cancelSub func()
	stopSweep context.CancelFunc

	// Lobby navigation
	selectedPlayer int

	// Round countdown. timerGen invalidates ticks scheduled for an
	// earlier phase so a stale expiry can never fire twice.
	remainingSec int
	timerGen     int
	endFired     bool

	// Scoring toggles, index -> marked correct
	marked map[int]bool

	errText string
}

// New creates the root model around a session.
func New(s *session.Session, sounds *sound.SoundManager) *Model {
	nameInput := textinput.New()
	nameInput.Placeholder = "your name"
	nameInput.CharLimit = 20
	nameInput.Focus()

	codeInput := textinput.New()
	codeInput.Placeholder = "room code"
	codeInput.CharLimit = 5

	return &Model{
		session:   s,
		sounds:    sounds,
		nameInput: nameInput,
		codeInput: codeInput,
		marked:    make(map[int]bool),
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.teardown()
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case joinedMsg:
		return m, m.startSubscription()

	case snapshotMsg:
		return m.handleSnapshot(msg.room)

	case tickMsg:
		return m.handleTick(msg)

	case errMsg:
		logger.LogError("operation failed: %v", msg.err)
		m.errText = msg.err.Error()
		return m, nil

	case opDoneMsg:
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.phase {
	case PhaseHome:
		return m.updateHome(msg)
	case PhaseLobby:
		return m.updateLobby(msg)
	case PhaseGame:
		return m.updateGame(msg)
	case PhaseRound:
		return m.updateRound(msg)
	case PhaseScoring:
		return m.updateScoring(msg)
	case PhaseWinner:
		return m.updateWinner(msg)
	}
	return m, nil
}

func (m *Model) View() string {
	switch m.phase {
	case PhaseHome:
		return m.viewHome()
	case PhaseLobby:
		return m.viewLobby()
	case PhaseGame:
		return m.viewGame()
	case PhaseRound:
		return m.viewRound()
	case PhaseScoring:
		return m.viewScoring()
	case PhaseWinner:
		return m.viewWinner()
	}
	return ""
}

// handleSnapshot routes a fresh document snapshot to a screen. A nil
// snapshot means the room was closed.
func (m *Model) handleSnapshot(r *room.Room) (tea.Model, tea.Cmd) {
	if r == nil {
		m.teardown()
		m.goHome()
		m.errText = "room was closed"
		return m, nil
	}

	m.snapshot = r
	prev := m.phase
	m.phase = phaseForStatus(r.Status)

	var cmd tea.Cmd
	if m.phase != prev {
		m.enterPhase(prev)
		if m.phase == PhaseRound {
			cmd = m.scheduleTick()
		}
	}
	return m, tea.Batch(m.waitForSnapshot(), cmd)
}

// enterPhase resets per-phase local state; any countdown scheduled for
// the previous phase is invalidated here.
func (m *Model) enterPhase(prev Phase) {
	m.timerGen++
	m.endFired = false
	m.errText = ""

	switch m.phase {
	case PhaseRound:
		m.sounds.Play(sound.CueRoundStart)
	case PhaseScoring:
		m.marked = make(map[int]bool)
		m.sounds.Play(sound.CueRoundEnd)
	case PhaseWinner:
		if prev != PhaseWinner {
			m.sounds.Play(sound.CueWin)
		}
	case PhaseLobby:
		m.selectedPlayer = 0
	}
}

func phaseForStatus(s room.Status) Phase {
	switch s {
	case room.StatusPlaying:
		return PhaseGame
	case room.StatusRound:
		return PhaseRound
	case room.StatusScoring:
		return PhaseScoring
	case room.StatusFinished:
		return PhaseWinner
	default:
		return PhaseLobby
	}
}

// goHome resets to the idle home screen.
func (m *Model) goHome() {
	m.phase = PhaseHome
	m.snapshot = nil
	m.timerGen++
	m.nameInput.Focus()
	m.codeInput.Blur()
	m.focus = fieldName
}

// teardown releases the subscription and background sweeper.
func (m *Model) teardown() {
	if m.cancelSub != nil {
		m.cancelSub()
		m.cancelSub = nil
	}
	if m.stopSweep != nil {
		m.stopSweep()
		m.stopSweep = nil
	}
}

// leaveRoom leaves via the session and falls back to the home screen.
func (m *Model) leaveRoom() (tea.Model, tea.Cmd) {
	m.teardown()
	cmd := m.opCmd(func(ctx context.Context) error {
		return m.session.LeaveRoom(ctx)
	})
	m.goHome()
	return m, cmd
}
