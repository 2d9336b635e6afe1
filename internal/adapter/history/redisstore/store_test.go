package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careermitra/mentor-engine/internal/domain"
)

func newTestStore(t *testing.T, maxTurns int, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return New(rdb, maxTurns, ttl), mr
}

func TestAppendAndRecent(t *testing.T) {
	s, _ := newTestStore(t, 30, time.Hour)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, "c1",
		domain.ConversationTurn{Role: domain.RoleUser, Text: "i am in 12th"},
		domain.ConversationTurn{Role: domain.RoleBot, Text: "Great, which subjects do you enjoy?"},
	))

	turns, err := s.Recent(ctx, "c1", 10)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, domain.RoleUser, turns[0].Role)
	assert.Equal(t, "i am in 12th", turns[0].Text)
	assert.Equal(t, domain.RoleBot, turns[1].Role)
}

func TestRecent_WindowAndEmpty(t *testing.T) {
	s, _ := newTestStore(t, 30, time.Hour)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Append(ctx, "c1", domain.ConversationTurn{Role: domain.RoleUser, Text: string(rune('a' + i))}))
	}

	turns, err := s.Recent(ctx, "c1", 2)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "d", turns[0].Text)
	assert.Equal(t, "e", turns[1].Text)

	turns, err = s.Recent(ctx, "nope", 10)
	require.NoError(t, err)
	assert.Empty(t, turns)

	turns, err = s.Recent(ctx, "c1", 0)
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestAppend_TrimsToMaxTurns(t *testing.T) {
	s, mr := newTestStore(t, 3, time.Hour)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		require.NoError(t, s.Append(ctx, "c1", domain.ConversationTurn{Role: domain.RoleUser, Text: string(rune('a' + i))}))
	}

	list, err := mr.List("chat:history:c1")
	require.NoError(t, err)
	assert.Len(t, list, 3)

	turns, err := s.Recent(ctx, "c1", 10)
	require.NoError(t, err)
	require.Len(t, turns, 3)
	assert.Equal(t, "d", turns[0].Text)
	assert.Equal(t, "f", turns[2].Text)
}

func TestAppend_SetsTTL(t *testing.T) {
	s, mr := newTestStore(t, 30, time.Hour)
	require.NoError(t, s.Append(context.Background(), "c1", domain.ConversationTurn{Role: domain.RoleUser, Text: "hi"}))
	assert.Equal(t, time.Hour, mr.TTL("chat:history:c1"))
}

func TestRecent_SkipsCorruptEntries(t *testing.T) {
	s, mr := newTestStore(t, 30, time.Hour)
	ctx := context.Background()
	require.NoError(t, s.Append(ctx, "c1", domain.ConversationTurn{Role: domain.RoleUser, Text: "hi"}))
	mr.Lpush("chat:history:c1", "not json")

	turns, err := s.Recent(ctx, "c1", 10)
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "hi", turns[0].Text)
}
