// Package store adapts Redis into the shared room document store the
// game coordinates through: one JSON document per room, multi-path
// updates published to every subscriber, and presence bookkeeping that
// stands in for a "run this write when my connection drops" primitive.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/thirty-seconds/internal/apperrors"
	"github.com/palemoky/thirty-seconds/internal/game/room"
)

const (
	// Redis key 前缀
	roomKeyPrefix     = "room:"
	presenceKeyPrefix = "presence:"
	goneKeyPrefix     = "gone:"
	eventChanPrefix   = "room:events:"

	// 房间数据过期时间
	roomExpiration = 2 * time.Hour

	// roomClosed 房间删除时发布的墓碑消息
	roomClosed = "null"
)

// Store 共享房间文档存储
type Store struct {
	client      *redis.Client
	presenceTTL time.Duration
}

// New 创建存储适配器
func New(client *redis.Client, presenceTTL time.Duration) *Store {
	return &Store{client: client, presenceTTL: presenceTTL}
}

// wrapErr 将网络/权限错误规整为存储不可用
func wrapErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", apperrors.ErrStoreUnavailable, op, err)
}

// RoomExists 检查房间号是否已被占用（尽力而为，无原子保留）
func (s *Store) RoomExists(ctx context.Context, code string) (bool, error) {
	n, err := s.client.Exists(ctx, roomKeyPrefix+code).Result()
	if err != nil {
		return false, wrapErr("exists", err)
	}
	return n > 0, nil
}

// CreateRoom 写入完整的初始房间文档并广播
func (s *Store) CreateRoom(ctx context.Context, code string, r *room.Room) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal room document: %w", err)
	}
	return s.writeAndPublish(ctx, code, data)
}

// GetRoom 读取房间文档，不存在时返回 ErrRoomNotFound
func (s *Store) GetRoom(ctx context.Context, code string) (*room.Room, error) {
	data, err := s.client.Get(ctx, roomKeyPrefix+code).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.ErrRoomNotFound
		}
		return nil, wrapErr("get", err)
	}

	var r room.Room
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room document: %w", err)
	}
	return &r, nil
}

// Update 对房间文档应用一组路径写入并广播结果快照。
// 路径形如 "players/xyz/team"，值为 nil 时删除该路径。
// 所有路径在同一次 SET 中落盘，订阅者不会看到部分生效的中间态；
// 但读-改-写本身不加锁，并发写入以后到者为准。
func (s *Store) Update(ctx context.Context, code string, paths map[string]any) error {
	data, err := s.client.Get(ctx, roomKeyPrefix+code).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return apperrors.ErrRoomNotFound
		}
		return wrapErr("get", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to unmarshal room document: %w", err)
	}

	for path, value := range paths {
		if err := applyPath(doc, path, value); err != nil {
			return err
		}
	}

	updated, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal room document: %w", err)
	}
	return s.writeAndPublish(ctx, code, updated)
}

// DeleteRoom 删除房间并广播关闭墓碑
func (s *Store) DeleteRoom(ctx context.Context, code string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, roomKeyPrefix+code)
	pipe.Publish(ctx, eventChanPrefix+code, roomClosed)
	if _, err := pipe.Exec(ctx); err != nil {
		return wrapErr("delete", err)
	}
	return nil
}

// writeAndPublish 原子写入文档并向订阅者推送快照
func (s *Store) writeAndPublish(ctx context.Context, code string, data []byte) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, roomKeyPrefix+code, data, roomExpiration)
	pipe.Publish(ctx, eventChanPrefix+code, data)
	if _, err := pipe.Exec(ctx); err != nil {
		return wrapErr("set", err)
	}
	return nil
}

// Subscribe 订阅房间快照流。返回的通道先收到当前快照，之后每次写入
// 推送一次完整文档；房间被删除时收到 nil 并关闭通道。
func (s *Store) Subscribe(ctx context.Context, code string) (<-chan *room.Room, func(), error) {
	initial, err := s.GetRoom(ctx, code)
	if err != nil {
		return nil, nil, err
	}

	pubsub := s.client.Subscribe(ctx, eventChanPrefix+code)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, wrapErr("subscribe", err)
	}

	out := make(chan *room.Room, 8)
	go func() {
		defer close(out)
		out <- initial
		for msg := range pubsub.Channel() {
			if msg.Payload == roomClosed {
				out <- nil
				return
			}
			var r room.Room
			if err := json.Unmarshal([]byte(msg.Payload), &r); err != nil {
				continue
			}
			out <- &r
		}
	}()

	cancel := func() { _ = pubsub.Close() }
	return out, cancel, nil
}

// applyPath 在解码后的文档上设置或删除一个斜杠分隔的路径
func applyPath(doc map[string]any, path string, value any) error {
	segments := strings.Split(path, "/")
	node := doc
	for _, seg := range segments[:len(segments)-1] {
		child, ok := node[seg].(map[string]any)
		if !ok {
			child = make(map[string]any)
			node[seg] = child
		}
		node = child
	}

	leaf := segments[len(segments)-1]
	if value == nil {
		delete(node, leaf)
		return nil
	}

	normalized, err := normalize(value)
	if err != nil {
		return err
	}
	node[leaf] = normalized
	return nil
}

// normalize 通过 JSON 往返把任意值规整为文档类型
func normalize(value any) (any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal path value: %w", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal path value: %w", err)
	}
	return out, nil
}
