// Package session implements the room operations every client performs
// against the shared store. Each operation reads the authoritative
// document, validates the status transition, and applies one atomic
// multi-path update; there is no server-side arbiter beyond that.
//
// Coordination is convention-based and unenforced: only the host is
// expected to assign teams, only the explainer to start rounds and
// submit scores. If the explainer disconnects during a round nobody
// else drives the round to scoring; the room stalls until the explainer
// returns or the host restarts.
package session

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/palemoky/thirty-seconds/internal/apperrors"
	"github.com/palemoky/thirty-seconds/internal/card"
	"github.com/palemoky/thirty-seconds/internal/config"
	"github.com/palemoky/thirty-seconds/internal/game/presence"
	"github.com/palemoky/thirty-seconds/internal/game/room"
	"github.com/palemoky/thirty-seconds/internal/game/score"
	"github.com/palemoky/thirty-seconds/internal/game/turn"
	"github.com/palemoky/thirty-seconds/internal/store"
)

const (
	// roomCodeLength is the room code length.
	roomCodeLength = 5
	// roomCodeChars excludes I, O, 0 and 1 to avoid visual ambiguity.
	roomCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	// codeAttempts bounds the best-effort search for an unused code.
	// There is no atomic reservation; a concurrent creator picking the
	// same code in the same instant would win the last write.
	codeAttempts = 5
	// minCards is the smallest supply a game can be created from.
	minCards = 5
)

// RoomStore is everything the session needs from the shared store: the
// document operations plus the presence primitives the Manager uses.
type RoomStore interface {
	RoomExists(ctx context.Context, code string) (bool, error)
	CreateRoom(ctx context.Context, code string, r *room.Room) error
	GetRoom(ctx context.Context, code string) (*room.Room, error)
	Update(ctx context.Context, code string, paths map[string]any) error
	DeleteRoom(ctx context.Context, code string) error
	Subscribe(ctx context.Context, code string) (<-chan *room.Room, func(), error)
	RegisterDisconnect(ctx context.Context, code, playerID string, op store.DisconnectOp) error
	CancelDisconnect(ctx context.Context, code, playerID string) error
	KeepPresence(ctx context.Context, code, playerID string) (func(), error)
	SweepExpired(ctx context.Context, code string) error
}

// Session is one client's handle on one room: its identity within the
// room plus the cached card supply. It is never shared across rooms.
type Session struct {
	Code     string
	PlayerID string
	Name     string
	IsHost   bool
	Cards    card.Supply

	store    RoomStore
	presence *presence.Manager
	game     *config.GameConfig
	rng      *rand.Rand
	now      func() time.Time
}

// New creates a session backed by the given store and card supply.
func New(st RoomStore, game *config.GameConfig, cards card.Supply) *Session {
	return &Session{
		Cards:    cards,
		store:    st,
		presence: presence.NewManager(st),
		game:     game,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      time.Now,
	}
}

// CreateRoom creates a fresh room with this client as host and joins it.
func (s *Session) CreateRoom(ctx context.Context, name string) error {
	if len(s.Cards) < minCards {
		return apperrors.ErrInsufficientCards
	}

	code, err := s.pickRoomCode(ctx)
	if err != nil {
		return err
	}

	playerID := generatePlayerID()
	doc := room.New(playerID, name, s.game.WinningScore, len(s.Cards), s.now().UnixMilli())
	if err := s.store.CreateRoom(ctx, code, doc); err != nil {
		return err
	}
	if err := s.presence.Register(ctx, code, playerID, true); err != nil {
		return err
	}

	s.Code = code
	s.PlayerID = playerID
	s.Name = name
	s.IsHost = true
	return nil
}

// JoinRoom adds this client to an existing room still in its lobby.
func (s *Session) JoinRoom(ctx context.Context, code, name string) error {
	r, err := s.store.GetRoom(ctx, code)
	if err != nil {
		return err
	}
	if r.Status != room.StatusLobby {
		return apperrors.ErrGameStarted
	}

	playerID := generatePlayerID()
	err = s.store.Update(ctx, code, map[string]any{
		"players/" + playerID: room.Player{
			Name:     name,
			JoinedAt: s.now().UnixMilli(),
		},
	})
	if err != nil {
		return err
	}
	if err := s.presence.Register(ctx, code, playerID, false); err != nil {
		return err
	}

	s.Code = code
	s.PlayerID = playerID
	s.Name = name
	s.IsHost = false
	return nil
}

// AssignTeam puts a player on a team, or clears the assignment when
// team is TeamNone. Host-only by convention; nothing enforces it.
func (s *Session) AssignTeam(ctx context.Context, playerID string, team room.Team) error {
	if s.Code == "" {
		return apperrors.ErrNotInRoom
	}
	var value any
	if team != room.TeamNone {
		value = team
	}
	return s.store.Update(ctx, s.Code, map[string]any{
		"players/" + playerID + "/team": value,
	})
}

// UpdateWinningScore changes the target score. Only legal in the lobby.
func (s *Session) UpdateWinningScore(ctx context.Context, winningScore int) error {
	r, err := s.currentRoom(ctx)
	if err != nil {
		return err
	}
	if r.Status != room.StatusLobby {
		return apperrors.ErrGameStarted
	}
	return s.store.Update(ctx, s.Code, map[string]any{
		"settings/winningScore": winningScore,
	})
}

// StartGame moves the lobby into play. Both teams need at least one
// player; the first red roster player opens as explainer.
func (s *Session) StartGame(ctx context.Context) error {
	r, err := s.currentRoom(ctx)
	if err != nil {
		return err
	}
	first, err := turn.First(r)
	if err != nil {
		return err
	}
	return s.transition(ctx, r, room.StatusPlaying, map[string]any{
		"currentRound": first,
	})
}

// StartRound draws a card and opens the timed round. The draw never
// repeats an index within a fill cycle; an exhausted cycle resets the
// used-set before drawing. The timer deadline carries a small buffer to
// absorb clock skew between the explainer and the other clients.
func (s *Session) StartRound(ctx context.Context) error {
	r, err := s.currentRoom(ctx)
	if err != nil {
		return err
	}

	idx, reset := score.Draw(r.Cards.Used, r.Cards.Total, s.rng)
	if idx >= len(s.Cards) {
		return apperrors.ErrInsufficientCards
	}

	used := []int{idx}
	if !reset {
		used = append(append([]int{}, r.Cards.Used...), idx)
	}

	timerEnd := s.now().Add(s.game.RoundDuration() + s.game.TimerBufferDuration()).UnixMilli()

	return s.transition(ctx, r, room.StatusRound, map[string]any{
		"currentRound/words":        []string(s.Cards[idx]),
		"currentRound/timerEnd":     timerEnd,
		"currentRound/correctWords": []int{},
		"cards/used":                used,
	})
}

// EndRound moves the round into scoring. Only the explainer's client
// calls this, when its local countdown expires.
func (s *Session) EndRound(ctx context.Context) error {
	r, err := s.currentRoom(ctx)
	if err != nil {
		return err
	}
	return s.transition(ctx, r, room.StatusScoring, nil)
}

// SubmitScore applies the explainer's correctness report. The room is
// re-read here so the score builds on the authoritative state, not a
// stale local snapshot. Concurrent submissions are not locked out and
// would double-count; the explainer-only convention keeps them rare.
func (s *Session) SubmitScore(ctx context.Context, correctIndices []int) (score.Result, error) {
	r, err := s.currentRoom(ctx)
	if err != nil {
		return score.Result{}, err
	}

	res := score.Evaluate(r, correctIndices)
	scorePath := "teams/" + string(res.Team) + "/score"

	if res.Finished {
		// Freeze the score; no new round after the win.
		err = s.transition(ctx, r, room.StatusFinished, map[string]any{
			scorePath: res.NewScore,
		})
		return res, err
	}

	next, err := turn.Next(r)
	if err != nil {
		return score.Result{}, err
	}
	err = s.transition(ctx, r, room.StatusPlaying, map[string]any{
		scorePath:      res.NewScore,
		"currentRound": next,
	})
	return res, err
}

// PlayAgain resets a finished game back to the lobby with zeroed
// scores, cursors and card cycle. Host-only by convention.
func (s *Session) PlayAgain(ctx context.Context) error {
	r, err := s.currentRoom(ctx)
	if err != nil {
		return err
	}

	explainer := ""
	if red := r.Roster(room.TeamRed); len(red) > 0 {
		explainer = red[0]
	}

	return s.transition(ctx, r, room.StatusLobby, map[string]any{
		"teams/red/score":  0,
		"teams/blue/score": 0,
		"currentRound": room.Round{
			Team:         room.TeamRed,
			ExplainerID:  explainer,
			CorrectWords: []int{},
		},
		"cards/used": []int{},
	})
}

// LeaveRoom removes this client from the room. A departing host closes
// the room for everyone.
func (s *Session) LeaveRoom(ctx context.Context) error {
	if s.Code == "" {
		return apperrors.ErrNotInRoom
	}
	if err := s.presence.Leave(ctx, s.Code, s.PlayerID, s.IsHost); err != nil {
		return err
	}

	s.Code = ""
	s.PlayerID = ""
	s.IsHost = false
	return nil
}

// Subscribe streams full room snapshots to this client.
func (s *Session) Subscribe(ctx context.Context) (<-chan *room.Room, func(), error) {
	if s.Code == "" {
		return nil, nil, apperrors.ErrNotInRoom
	}
	return s.store.Subscribe(ctx, s.Code)
}

// RunSweeper applies deferred removals of departed players until ctx is
// done. Any client may run one.
func (s *Session) RunSweeper(ctx context.Context) {
	s.presence.RunSweeper(ctx, s.Code, s.game.SweepInterval())
}

// Transition validates and applies an explicit status change together
// with an optional patch. Writing status directly without this check is
// how a buggy client corrupts the phase ordering.
func (s *Session) Transition(ctx context.Context, next room.Status, patch map[string]any) error {
	r, err := s.currentRoom(ctx)
	if err != nil {
		return err
	}
	return s.transition(ctx, r, next, patch)
}

// transition applies a validated status change on an already-read room.
func (s *Session) transition(ctx context.Context, r *room.Room, next room.Status, patch map[string]any) error {
	if !r.Status.CanTransition(next) {
		return apperrors.ErrInvalidTransition
	}

	paths := map[string]any{"status": next}
	for k, v := range patch {
		paths[k] = v
	}
	return s.store.Update(ctx, s.Code, paths)
}

// currentRoom reads the authoritative document for this session's room.
func (s *Session) currentRoom(ctx context.Context) (*room.Room, error) {
	if s.Code == "" {
		return nil, apperrors.ErrNotInRoom
	}
	return s.store.GetRoom(ctx, s.Code)
}

// pickRoomCode generates a code and checks, best-effort, that it is not
// in use. No atomic reservation against concurrent creators exists.
func (s *Session) pickRoomCode(ctx context.Context) (string, error) {
	var code string
	for i := 0; i < codeAttempts; i++ {
		code = s.generateRoomCode()
		exists, err := s.store.RoomExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			break
		}
	}
	return code, nil
}

// generateRoomCode returns a random 5-character code.
func (s *Session) generateRoomCode() string {
	b := make([]byte, roomCodeLength)
	for i := range b {
		b[i] = roomCodeChars[s.rng.Intn(len(roomCodeChars))]
	}
	return string(b)
}

// generatePlayerID builds an id unique enough for a room's lifetime:
// a timestamp plus a random suffix.
func generatePlayerID() string {
	suffix := uuid.NewString()[:8]
	return "player_" + time.Now().Format("20060102150405") + "_" + suffix
}
