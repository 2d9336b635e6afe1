package usecase

import (
	"github.com/careermitra/mentor-engine/internal/domain"
	"github.com/careermitra/mentor-engine/internal/match"
)

// StrongMatchTier wraps the match engine: it answers only when a dataset
// entry clears the engine's acceptance bar, otherwise it defers.
type StrongMatchTier struct {
	engine *match.Engine
}

// NewStrongMatchTier builds the strong-match tier over a dataset and scorer.
func NewStrongMatchTier(ds domain.DatasetProvider, sc match.Scorer) *StrongMatchTier {
	return &StrongMatchTier{engine: match.NewEngine(ds, sc)}
}

// Name implements Tier.
func (t *StrongMatchTier) Name() string { return TierStrong }

// Resolve implements Tier. History is not consulted: the strong match is a
// single-shot decision on the current utterance.
func (t *StrongMatchTier) Resolve(_ domain.Context, utterance string, _ []domain.ConversationTurn) (domain.MatchResult, error) {
	return t.engine.Match(utterance)
}
