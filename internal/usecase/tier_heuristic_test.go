package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careermitra/mentor-engine/internal/domain"
)

func pinnedHeuristic(ds domain.DatasetProvider) *HeuristicTier {
	t := NewHeuristicTier(ds)
	t.pick = func(int) int { return 0 }
	return t
}

func TestHeuristicTier_InterestTagJumpsQueueWithinStage(t *testing.T) {
	tier := pinnedHeuristic(careerDataset())

	// Stage 12th has Software Engineer (coding) and Doctor (medical); a
	// medical interest must move Doctor ahead of dataset order.
	res, err := tier.Resolve(context.Background(), "I passed 12th and want to study medicine", nil)
	require.NoError(t, err)
	assert.Equal(t, "Doctor", res.Career)
	assert.Equal(t, domain.Stage12th, res.Stage)
	assert.Equal(t, []string{"medical"}, res.Interests)
	assert.True(t, res.Fallback)
	assert.Equal(t, 0.0, res.Confidence)
	assert.Contains(t, res.Reply, "Since you're at 12th and interested in medical")
}

func TestHeuristicTier_StageOnlyPicksFirstInOrder(t *testing.T) {
	tier := pinnedHeuristic(careerDataset())
	res, err := tier.Resolve(context.Background(), "I just finished 12th", nil)
	require.NoError(t, err)
	assert.Equal(t, "Software Engineer", res.Career)
	assert.Contains(t, res.Reply, "interested in this area")
}

func TestHeuristicTier_InterestOnlyScansAllStages(t *testing.T) {
	tier := pinnedHeuristic(careerDataset())
	res, err := tier.Resolve(context.Background(), "I like coding a lot", nil)
	require.NoError(t, err)
	assert.Equal(t, "Software Engineer", res.Career)
	assert.Contains(t, res.Reply, "at your current stage")
}

func TestHeuristicTier_DefersWhenNothingFits(t *testing.T) {
	tier := pinnedHeuristic(careerDataset())
	_, err := tier.Resolve(context.Background(), "hello there", nil)
	assert.True(t, errors.Is(err, domain.ErrNoMatch))
}

func TestHeuristicTier_ProbeWhenEmpty(t *testing.T) {
	tier := pinnedHeuristic(careerDataset())
	tier.ProbeWhenEmpty = true

	res, err := tier.Resolve(context.Background(), "hello there", nil)
	require.NoError(t, err)
	assert.Contains(t, res.Reply, "tell me your stage (10th/12th/UG/PG)")
	assert.True(t, res.Fallback)

	res, err = tier.Resolve(context.Background(), "I am in class 10, not sure what I like", nil)
	require.NoError(t, err)
	assert.Contains(t, res.Reply, "You're at 10th.")
	assert.Equal(t, domain.Stage10th, res.Stage)
}
