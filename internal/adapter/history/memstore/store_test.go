package memstore

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careermitra/mentor-engine/internal/domain"
)

func TestAppendAndRecent(t *testing.T) {
	s := New(30)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, "c1",
		domain.ConversationTurn{Role: domain.RoleUser, Text: "hello"},
		domain.ConversationTurn{Role: domain.RoleBot, Text: "hi"},
	))

	turns, err := s.Recent(ctx, "c1", 10)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "hello", turns[0].Text)

	turns, err = s.Recent(ctx, "unknown", 10)
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestAppend_CapsAtMaxTurns(t *testing.T) {
	s := New(3)
	ctx := context.Background()
	for i := 0; i < 6; i++ {
		require.NoError(t, s.Append(ctx, "c1", domain.ConversationTurn{Role: domain.RoleUser, Text: fmt.Sprintf("m%d", i)}))
	}
	turns, err := s.Recent(ctx, "c1", 10)
	require.NoError(t, err)
	require.Len(t, turns, 3)
	assert.Equal(t, "m3", turns[0].Text)
	assert.Equal(t, "m5", turns[2].Text)
}

func TestRecent_ReturnsCopy(t *testing.T) {
	s := New(30)
	ctx := context.Background()
	require.NoError(t, s.Append(ctx, "c1", domain.ConversationTurn{Role: domain.RoleUser, Text: "original"}))

	turns, err := s.Recent(ctx, "c1", 10)
	require.NoError(t, err)
	turns[0].Text = "mutated"

	again, err := s.Recent(ctx, "c1", 10)
	require.NoError(t, err)
	assert.Equal(t, "original", again[0].Text)
}

func TestConcurrentAppend(t *testing.T) {
	s := New(100)
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Append(ctx, "c1", domain.ConversationTurn{Role: domain.RoleUser, Text: fmt.Sprintf("m%d", i)})
		}(i)
	}
	wg.Wait()
	turns, err := s.Recent(ctx, "c1", 100)
	require.NoError(t, err)
	assert.Len(t, turns, 20)
}
