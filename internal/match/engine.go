package match

import (
	"sort"
	"strings"

	"github.com/careermitra/mentor-engine/internal/domain"
	"github.com/careermitra/mentor-engine/internal/intent"
)

const (
	// tagExactConfidence is the fixed score for an exact interest-tag hit.
	tagExactConfidence = 90.0
	// fuzzyAcceptThreshold must be strictly exceeded for a fuzzy match.
	fuzzyAcceptThreshold = 45.0
	// topCandidates caps the fuzzy shortlist.
	topCandidates = 5
)

// Engine is the single-shot strong-match decision: classify the utterance,
// try the tag-exact path, then the fuzzy path, and format a reply when a
// candidate clears the bar. It holds no state between calls.
type Engine struct {
	dataset   domain.DatasetProvider
	scorer    Scorer
	formatter *ResponseFormatter
}

// NewEngine wires a match engine over a dataset and scorer.
func NewEngine(ds domain.DatasetProvider, sc Scorer) *Engine {
	return &Engine{dataset: ds, scorer: sc, formatter: NewResponseFormatter()}
}

type candidate struct {
	entry domain.CareerEntry
	score float64
}

// Match resolves the utterance against the dataset. It returns
// domain.ErrNoMatch when no entry clears the acceptance bar; that is a
// defined outcome, not a failure.
func (e *Engine) Match(utterance string) (domain.MatchResult, error) {
	msg := strings.TrimSpace(utterance)
	if msg == "" {
		return domain.MatchResult{}, domain.ErrNoMatch
	}

	stage := intent.DetectStage(msg)
	interests := intent.ExtractInterests(msg)

	picked, ok := e.tagExact(interests)
	if !ok {
		picked, ok = e.fuzzy(msg, stage)
	}
	if !ok {
		return domain.MatchResult{}, domain.ErrNoMatch
	}

	confidence := picked.score
	if confidence > 100 {
		confidence = 100
	}
	reply := e.formatter.Format(picked.entry, stage, confidence, msg)
	return domain.MatchResult{
		Reply:      reply,
		Career:     picked.entry.Name,
		Stage:      stage,
		Interests:  interests,
		Confidence: confidence,
		Fallback:   false,
	}, nil
}

// tagExact returns the first dataset entry carrying a tag equal to any
// extracted interest. Dataset iteration order breaks ties.
func (e *Engine) tagExact(interests []string) (candidate, bool) {
	if len(interests) == 0 {
		return candidate{}, false
	}
	wanted := make(map[string]struct{}, len(interests))
	for _, i := range interests {
		wanted[strings.ToLower(i)] = struct{}{}
	}
	for _, entry := range e.dataset.Entries() {
		for _, tag := range entry.Tags {
			if _, ok := wanted[strings.ToLower(tag)]; ok {
				return candidate{entry: entry, score: tagExactConfidence}, true
			}
		}
	}
	return candidate{}, false
}

// fuzzy scores every entry, keeps the top shortlist, and accepts the leader
// only when it strictly exceeds the threshold. The sort is stable so the
// first entry in dataset order wins ties.
func (e *Engine) fuzzy(msg string, stage domain.Stage) (candidate, bool) {
	entries := e.dataset.Entries()
	scored := make([]candidate, 0, len(entries))
	for _, entry := range entries {
		scored = append(scored, candidate{entry: entry, score: e.scorer.Score(msg, entry, stage)})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
	if len(scored) > topCandidates {
		scored = scored[:topCandidates]
	}
	if len(scored) == 0 || scored[0].score <= fuzzyAcceptThreshold {
		return candidate{}, false
	}
	return scored[0], true
}
