package presence

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/thirty-seconds/internal/apperrors"
	"github.com/palemoky/thirty-seconds/internal/game/room"
	"github.com/palemoky/thirty-seconds/internal/store"
)

func newTestManager(t *testing.T) (*Manager, *store.Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	st := store.New(client, 30*time.Second)
	return NewManager(st), st, mr
}

func seedRoom(t *testing.T, st *store.Store) {
	t.Helper()
	r := room.New("host_1", "Alice", 30, 10, 1)
	r.Players["guest_1"] = room.Player{Name: "Bob", Team: room.TeamBlue, JoinedAt: 2}
	require.NoError(t, st.CreateRoom(context.Background(), "ABCDE", r))
}

func TestRegisterThenLeave_Guest(t *testing.T) {
	t.Parallel()

	m, st, mr := newTestManager(t)
	ctx := context.Background()
	seedRoom(t, st)

	require.NoError(t, m.Register(ctx, "ABCDE", "guest_1", false))
	assert.True(t, mr.Exists("presence:ABCDE:guest_1"))
	assert.True(t, mr.Exists("gone:ABCDE:guest_1"))

	require.NoError(t, m.Leave(ctx, "ABCDE", "guest_1", false))

	// Player removed now, deferred removal cancelled.
	loaded, err := st.GetRoom(ctx, "ABCDE")
	require.NoError(t, err)
	assert.NotContains(t, loaded.Players, "guest_1")
	assert.False(t, mr.Exists("gone:ABCDE:guest_1"))
	assert.False(t, mr.Exists("presence:ABCDE:guest_1"))
}

func TestLeave_HostClosesRoom(t *testing.T) {
	t.Parallel()

	m, st, _ := newTestManager(t)
	ctx := context.Background()
	seedRoom(t, st)

	require.NoError(t, m.Register(ctx, "ABCDE", "host_1", true))
	require.NoError(t, m.Leave(ctx, "ABCDE", "host_1", true))

	_, err := st.GetRoom(ctx, "ABCDE")
	assert.ErrorIs(t, err, apperrors.ErrRoomNotFound)
}

func TestUncleanDisconnect_SweptByAnotherClient(t *testing.T) {
	t.Parallel()

	m, st, mr := newTestManager(t)
	ctx := context.Background()
	seedRoom(t, st)

	// The guest registers but never leaves cleanly; its presence TTL
	// lapses and a surviving client's sweep applies the removal.
	require.NoError(t, m.Register(ctx, "ABCDE", "guest_1", false))
	mr.FastForward(time.Minute)

	require.NoError(t, st.SweepExpired(ctx, "ABCDE"))

	loaded, err := st.GetRoom(ctx, "ABCDE")
	require.NoError(t, err)
	assert.NotContains(t, loaded.Players, "guest_1")
}

func TestRunSweeper_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	m, st, _ := newTestManager(t)
	seedRoom(t, st)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.RunSweeper(ctx, "ABCDE", 10*time.Millisecond)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}
