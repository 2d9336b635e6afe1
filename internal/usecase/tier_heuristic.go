package usecase

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/careermitra/mentor-engine/internal/domain"
	"github.com/careermitra/mentor-engine/internal/intent"
)

var heuristicCheers = []string{"Great step!", "Nice choice!", "Keep exploring!"}

// HeuristicTier picks a dataset entry from the detected stage and interest
// alone, without scoring. Same-stage entries are preferred; within those, an
// interest-tag match jumps the queue. When nothing fits it either asks a
// gentle probing question (ProbeWhenEmpty) or defers to the next tier.
type HeuristicTier struct {
	dataset domain.DatasetProvider

	// ProbeWhenEmpty makes the tier terminal: instead of deferring it answers
	// with a probe question. Leave false when a delegate tier follows.
	ProbeWhenEmpty bool

	pick func(n int) int
}

// NewHeuristicTier builds the heuristic tier over a dataset.
func NewHeuristicTier(ds domain.DatasetProvider) *HeuristicTier {
	return &HeuristicTier{dataset: ds, pick: rand.Intn}
}

// Name implements Tier.
func (t *HeuristicTier) Name() string { return TierHeuristic }

// Resolve implements Tier.
func (t *HeuristicTier) Resolve(_ domain.Context, utterance string, _ []domain.ConversationTurn) (domain.MatchResult, error) {
	msg := strings.TrimSpace(utterance)
	stage := intent.DetectStage(msg)
	interest := ""
	if interests := intent.ExtractInterests(msg); len(interests) > 0 {
		interest = interests[0]
	}

	if chosen, ok := t.choose(stage, interest); ok {
		skills := joinCapped(chosen.Skills, 6)
		future := joinCapped(chosen.FuturePaths, 5)
		stageWord := "your current stage"
		if stage != domain.StageUnknown {
			stageWord = string(stage)
		}
		interestWord := "this area"
		if interest != "" {
			interestWord = interest
		}
		reply := fmt.Sprintf(
			"Since you're at %s and interested in %s, %s is a practical option. It builds %s. Paths include: %s. %s",
			stageWord, interestWord, chosen.Name, skills, future,
			heuristicCheers[t.pick(len(heuristicCheers))],
		)
		res := domain.MatchResult{
			Reply:      reply,
			Career:     chosen.Name,
			Stage:      stage,
			Confidence: 0,
			Fallback:   true,
		}
		if interest != "" {
			res.Interests = []string{interest}
		}
		return res, nil
	}

	if !t.ProbeWhenEmpty {
		return domain.MatchResult{}, domain.ErrNoMatch
	}

	var reply string
	if stage != domain.StageUnknown {
		reply = fmt.Sprintf("You're at %s. Are you more into coding, science, commerce or arts? Tell me one word so I can suggest a path.", stage)
	} else {
		reply = "I didn't get that — tell me your stage (10th/12th/UG/PG) and whether you like coding, science, commerce or arts."
	}
	return domain.MatchResult{Reply: reply, Stage: stage, Confidence: 0, Fallback: true}, nil
}

// choose prefers same-stage entries, moving interest-tag matches to the
// front; failing that, it scans for the interest tag alone. Dataset order
// decides within each preference class.
func (t *HeuristicTier) choose(stage domain.Stage, interest string) (domain.CareerEntry, bool) {
	var candidates []domain.CareerEntry
	if stage != domain.StageUnknown {
		for _, c := range t.dataset.Entries() {
			if !strings.EqualFold(string(c.Stage), string(stage)) {
				continue
			}
			if interest != "" && hasTag(c, interest) {
				candidates = append([]domain.CareerEntry{c}, candidates...)
			} else {
				candidates = append(candidates, c)
			}
		}
	}
	if len(candidates) == 0 && interest != "" {
		for _, c := range t.dataset.Entries() {
			if hasTag(c, interest) {
				candidates = append(candidates, c)
			}
		}
	}
	if len(candidates) == 0 {
		return domain.CareerEntry{}, false
	}
	return candidates[0], true
}

func hasTag(c domain.CareerEntry, tag string) bool {
	for _, t := range c.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

func joinCapped(items []string, n int) string {
	if len(items) > n {
		items = items[:n]
	}
	return strings.Join(items, ", ")
}
