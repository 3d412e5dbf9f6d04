// Package presence keeps the room's player list consistent with the
// clients that are actually connected. There is no game-level heartbeat:
// each client registers a deferred removal with the store on join, and
// any connected client may apply removals whose owner has gone away.
package presence

import (
	"context"
	"time"

	"github.com/palemoky/thirty-seconds/internal/logger"
	"github.com/palemoky/thirty-seconds/internal/store"
)

// Store is the slice of the room store presence relies on.
type Store interface {
	RegisterDisconnect(ctx context.Context, code, playerID string, op store.DisconnectOp) error
	CancelDisconnect(ctx context.Context, code, playerID string) error
	KeepPresence(ctx context.Context, code, playerID string) (func(), error)
	SweepExpired(ctx context.Context, code string) error
	DeleteRoom(ctx context.Context, code string) error
	Update(ctx context.Context, code string, paths map[string]any) error
}

// Manager tracks one client's membership in one room.
type Manager struct {
	store    Store
	stopKeep func()
}

// NewManager creates a presence manager bound to the store.
func NewManager(st Store) *Manager {
	return &Manager{store: st}
}

// Register establishes the disconnect-cleanup registration after a
// successful join: if this client vanishes without leaving, its player
// entry is removed, or the whole room is closed when it was the host.
func (m *Manager) Register(ctx context.Context, code, playerID string, isHost bool) error {
	op := store.DisconnectOp{Path: "players/" + playerID}
	if isHost {
		op.Path = "" // host loss closes the room
	}
	if err := m.store.RegisterDisconnect(ctx, code, playerID, op); err != nil {
		return err
	}

	stop, err := m.store.KeepPresence(ctx, code, playerID)
	if err != nil {
		return err
	}
	m.stopKeep = stop
	return nil
}

// Leave performs the removal immediately and cancels the deferred one.
// The host leaving deletes the entire room document; subscribers observe
// the tombstone and return to their home screen.
func (m *Manager) Leave(ctx context.Context, code, playerID string, isHost bool) error {
	if m.stopKeep != nil {
		m.stopKeep()
		m.stopKeep = nil
	}

	if err := m.store.CancelDisconnect(ctx, code, playerID); err != nil {
		return err
	}

	if isHost {
		return m.store.DeleteRoom(ctx, code)
	}
	return m.store.Update(ctx, code, map[string]any{
		"players/" + playerID: nil,
	})
}

// RunSweeper periodically applies deferred removals for players whose
// presence marker has expired. Every client may run one; the removals
// are idempotent so concurrent sweeps converge. Blocks until ctx is done.
func (m *Manager) RunSweeper(ctx context.Context, code string, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := m.store.SweepExpired(ctx, code); err != nil {
				logger.LogError("presence sweep for room %s: %v", code, err)
			}
		}
	}
}
