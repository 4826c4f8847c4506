// Package dedup remembers which webhook update ids have already been
// processed, so the sender's redelivery never triggers a second completion
// or calendar call.
package dedup

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	keyPrefix = "tgcal:update:"
	seenTTL   = 24 * time.Hour
)

// Store marks an update id as processed and reports whether it had been
// seen before, in one call.
type Store interface {
	Seen(ctx context.Context, updateID int) bool
}

// NewStore returns a Redis-backed store when a reachable client is given,
// otherwise an in-memory store. The in-memory fallback only protects a
// single process; redeliveries after a restart will be reprocessed.
func NewStore(client *redis.Client) Store {
	if client != nil {
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Warn().Err(err).Msg("Redis unreachable, update dedup falling back to memory")
		} else {
			log.Info().Msg("Update dedup using Redis store")
			return &RedisStore{client: client}
		}
	}
	return newMemoryStore()
}

type RedisStore struct {
	client *redis.Client
}

func (rs *RedisStore) Seen(ctx context.Context, updateID int) bool {
	key := fmt.Sprintf("%s%d", keyPrefix, updateID)

	set, err := rs.client.SetNX(ctx, key, 1, seenTTL).Result()
	if err != nil {
		// Better to reprocess one update than to drop it
		log.Error().Err(err).Int("update_id", updateID).Msg("Dedup check failed, treating as unseen")
		return false
	}
	return !set
}

type MemoryStore struct {
	mu   sync.Mutex
	seen map[int]time.Time
	now  func() time.Time
}

func newMemoryStore() *MemoryStore {
	return &MemoryStore{
		seen: make(map[int]time.Time),
		now:  time.Now,
	}
}

func (ms *MemoryStore) Seen(_ context.Context, updateID int) bool {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	for id, at := range ms.seen {
		if now.Sub(at) > seenTTL {
			delete(ms.seen, id)
		}
	}

	if _, exists := ms.seen[updateID]; exists {
		return true
	}
	ms.seen[updateID] = now
	return false
}
