// Package redisstore keeps per-conversation history in Redis lists so replicas
// share context.
package redisstore

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/careermitra/mentor-engine/internal/domain"
)

const keyPrefix = "chat:history:"

// Store implements domain.HistoryStore on a Redis list per conversation. Each
// turn is one JSON-encoded list element; the list is trimmed to maxTurns and
// expires after ttl of inactivity.
type Store struct {
	rdb      *redis.Client
	maxTurns int
	ttl      time.Duration
}

// New constructs a Store. maxTurns must be positive.
func New(rdb *redis.Client, maxTurns int, ttl time.Duration) *Store {
	return &Store{rdb: rdb, maxTurns: maxTurns, ttl: ttl}
}

// Recent implements domain.HistoryStore. Turns come back oldest first.
func (s *Store) Recent(ctx domain.Context, conversationID string, n int) ([]domain.ConversationTurn, error) {
	if n <= 0 {
		return nil, nil
	}
	raw, err := s.rdb.LRange(ctx, keyPrefix+conversationID, int64(-n), -1).Result()
	if err != nil {
		return nil, fmt.Errorf("op=redisstore.Recent: %w", err)
	}
	turns := make([]domain.ConversationTurn, 0, len(raw))
	for _, item := range raw {
		var t domain.ConversationTurn
		if err := json.Unmarshal([]byte(item), &t); err != nil {
			// Skip entries written by an incompatible version.
			continue
		}
		turns = append(turns, t)
	}
	return turns, nil
}

// Append implements domain.HistoryStore.
func (s *Store) Append(ctx domain.Context, conversationID string, turns ...domain.ConversationTurn) error {
	if len(turns) == 0 {
		return nil
	}
	key := keyPrefix + conversationID
	values := make([]interface{}, 0, len(turns))
	for _, t := range turns {
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("op=redisstore.Append: marshal turn: %w", err)
		}
		values = append(values, b)
	}
	pipe := s.rdb.TxPipeline()
	pipe.RPush(ctx, key, values...)
	pipe.LTrim(ctx, key, int64(-s.maxTurns), -1)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("op=redisstore.Append: %w", err)
	}
	return nil
}
