package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/thirty-seconds/internal/apperrors"
)

// DisconnectOp 掉线时要执行的延迟写入。Path 为空表示删除整个房间
// （宿主掉线），否则删除文档中的该路径。
type DisconnectOp struct {
	Path string `json:"path"`
}

// KeepPresence 建立在线标记并后台续期，返回停止函数。标记过期即视为
// 连接断开，其他客户端据此执行已登记的延迟写入。
func (s *Store) KeepPresence(ctx context.Context, code, playerID string) (func(), error) {
	key := presenceKeyPrefix + code + ":" + playerID
	if err := s.client.Set(ctx, key, "1", s.presenceTTL).Err(); err != nil {
		return nil, wrapErr("presence set", err)
	}

	refreshCtx, cancel := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(s.presenceTTL / 3)
		defer ticker.Stop()
		for {
			select {
			case <-refreshCtx.Done():
				return
			case <-ticker.C:
				_ = s.client.Expire(refreshCtx, key, s.presenceTTL).Err()
			}
		}
	}()

	stop := func() {
		cancel()
		// 主动离开时立即移除标记，不等 TTL
		_ = s.client.Del(context.Background(), key).Err()
	}
	return stop, nil
}

// RegisterDisconnect 登记掉线时要执行的删除操作
func (s *Store) RegisterDisconnect(ctx context.Context, code, playerID string, op DisconnectOp) error {
	data, err := json.Marshal(op)
	if err != nil {
		return fmt.Errorf("failed to marshal disconnect op: %w", err)
	}
	key := goneKeyPrefix + code + ":" + playerID
	if err := s.client.Set(ctx, key, data, roomExpiration).Err(); err != nil {
		return wrapErr("disconnect register", err)
	}
	return nil
}

// CancelDisconnect 取消已登记的掉线操作（主动离开时调用）
func (s *Store) CancelDisconnect(ctx context.Context, code, playerID string) error {
	key := goneKeyPrefix + code + ":" + playerID
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return wrapErr("disconnect cancel", err)
	}
	return nil
}

// SweepExpired 扫描房间内在线标记已过期的玩家并执行其延迟写入。
// 任何订阅者都可以执行清理：操作是幂等的删除，并发清理收敛到同一结果。
func (s *Store) SweepExpired(ctx context.Context, code string) error {
	r, err := s.GetRoom(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrRoomNotFound) {
			return nil // 房间已关闭，无需清理
		}
		return err
	}

	for playerID := range r.Players {
		alive, err := s.client.Exists(ctx, presenceKeyPrefix+code+":"+playerID).Result()
		if err != nil {
			return wrapErr("presence check", err)
		}
		if alive > 0 {
			continue
		}

		goneKey := goneKeyPrefix + code + ":" + playerID
		data, err := s.client.Get(ctx, goneKey).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue // 未登记掉线操作
			}
			return wrapErr("disconnect load", err)
		}

		var op DisconnectOp
		if err := json.Unmarshal(data, &op); err != nil {
			return fmt.Errorf("failed to unmarshal disconnect op: %w", err)
		}

		if op.Path == "" {
			// 宿主掉线：整个房间关闭
			if err := s.DeleteRoom(ctx, code); err != nil {
				return err
			}
			_ = s.client.Del(ctx, goneKey).Err()
			return nil
		}

		if err := s.Update(ctx, code, map[string]any{op.Path: nil}); err != nil {
			return err
		}
		_ = s.client.Del(ctx, goneKey).Err()
	}
	return nil
}
