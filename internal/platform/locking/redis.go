// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package locking

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trandinhkhoi/filmsync/internal/platform/constants"
)

// RedisLocker is the opt-in distributed [Locker] backend for deployments
// that schedule the same entity class's cycle across multiple hosts, where
// a host-local pidfile cannot see a sibling process on another host.
type RedisLocker struct {
	client *redis.Client
	key    string
	owner  string
	logger *slog.Logger

	cancelHeartbeat context.CancelFunc
	wg              sync.WaitGroup
}

// NewRedisLocker returns a locker that leases key in client, identifying
// itself as owner (typically hostname:pid) so a stale lease can be told
// apart from a live one by an operator inspecting Redis directly.
func NewRedisLocker(client *redis.Client, key, owner string, logger *slog.Logger) *RedisLocker {
	return &RedisLocker{client: client, key: key, owner: owner, logger: logger}
}

// Acquire sets key with [constants.RedisLockTTL] using SET NX, then starts a
// background heartbeat that renews the TTL every [constants.RedisLockHeartbeat]
// for as long as the lock is held, so a cycle that legitimately runs longer
// than the TTL is never evicted out from under itself.
func (l *RedisLocker) Acquire(ctx context.Context) error {
	ok, err := l.client.SetNX(ctx, l.key, l.owner, constants.RedisLockTTL).Result()
	if err != nil {
		return fmt.Errorf("locking: redis setnx %s: %w", l.key, err)
	}
	if !ok {
		return fmt.Errorf("locking: %s: %w", l.key, ErrAlreadyRunning)
	}

	heartbeatCtx, cancel := context.WithCancel(context.Background())
	l.cancelHeartbeat = cancel

	l.wg.Add(1)
	go l.heartbeat(heartbeatCtx)

	return nil
}

// heartbeat periodically renews the lease until Release stops it.
func (l *RedisLocker) heartbeat(ctx context.Context) {
	defer l.wg.Done()

	ticker := time.NewTicker(constants.RedisLockHeartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := l.client.Expire(ctx, l.key, constants.RedisLockTTL).Err(); err != nil {
				l.logger.Error("redis lock heartbeat failed", slog.String("key", l.key), slog.Any("error", err))
			}
		}
	}
}

// Release stops the heartbeat and deletes the lease key, but only if this
// locker still owns it, so a heartbeat that lost the race to a TTL eviction
// never deletes a newer owner's lease out from under them.
func (l *RedisLocker) Release(ctx context.Context) error {
	if l.cancelHeartbeat != nil {
		l.cancelHeartbeat()
		l.wg.Wait()
	}

	current, err := l.client.Get(ctx, l.key).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("locking: redis get %s: %w", l.key, err)
	}
	if current != l.owner {
		return nil
	}

	if err := l.client.Del(ctx, l.key).Err(); err != nil {
		return fmt.Errorf("locking: redis del %s: %w", l.key, err)
	}
	return nil
}
