//go:build !production

package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/thirty-seconds/internal/game/room"
	"github.com/palemoky/thirty-seconds/internal/store"
)

// MockRoomStore is a testify mock of the shared room store, for tests
// that need to script store failures without a Redis instance.
type MockRoomStore struct {
	mock.Mock
}

func (m *MockRoomStore) RoomExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockRoomStore) CreateRoom(ctx context.Context, code string, r *room.Room) error {
	args := m.Called(ctx, code, r)
	return args.Error(0)
}

func (m *MockRoomStore) GetRoom(ctx context.Context, code string) (*room.Room, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*room.Room), args.Error(1)
}

func (m *MockRoomStore) Update(ctx context.Context, code string, paths map[string]any) error {
	args := m.Called(ctx, code, paths)
	return args.Error(0)
}

func (m *MockRoomStore) DeleteRoom(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockRoomStore) Subscribe(ctx context.Context, code string) (<-chan *room.Room, func(), error) {
	args := m.Called(ctx, code)
	var ch <-chan *room.Room
	if args.Get(0) != nil {
		ch = args.Get(0).(<-chan *room.Room)
	}
	var cancel func()
	if args.Get(1) != nil {
		cancel = args.Get(1).(func())
	}
	return ch, cancel, args.Error(2)
}

func (m *MockRoomStore) RegisterDisconnect(ctx context.Context, code, playerID string, op store.DisconnectOp) error {
	args := m.Called(ctx, code, playerID, op)
	return args.Error(0)
}

func (m *MockRoomStore) CancelDisconnect(ctx context.Context, code, playerID string) error {
	args := m.Called(ctx, code, playerID)
	return args.Error(0)
}

func (m *MockRoomStore) KeepPresence(ctx context.Context, code, playerID string) (func(), error) {
	args := m.Called(ctx, code, playerID)
	var stop func()
	if args.Get(0) != nil {
		stop = args.Get(0).(func())
	}
	return stop, args.Error(1)
}

func (m *MockRoomStore) SweepExpired(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}
