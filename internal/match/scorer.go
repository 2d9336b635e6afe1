// Package match implements the fuzzy knowledge-base matcher: the career
// scorer, the match engine, and the response formatter.
package match

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/careermitra/mentor-engine/internal/domain"
)

// Field weights for the fuzzy blend.
const (
	weightName        = 0.35
	weightSkills      = 0.35
	weightDescription = 0.2
	weightTags        = 0.1

	// stageAffinityBoost is a soft bias toward entries at the user's detected
	// stage, not a hard filter.
	stageAffinityBoost = 1.15
)

// Scorer scores one candidate entry against a user utterance, optionally
// biased by the detected stage. Scores are on a 0-100-ish scale; the two
// implementations are not behaviorally equivalent, only monotonic in term
// overlap.
type Scorer interface {
	Score(utterance string, entry domain.CareerEntry, stageBias domain.Stage) float64
}

// Scorer modes, fixed at construction so tests can pin one variant.
const (
	ScorerModeFuzzy   = "fuzzy"
	ScorerModeLexical = "lexical"
)

// NewScorer selects a scorer variant by mode. Unknown modes fall back to the
// fuzzy variant.
func NewScorer(mode string) Scorer {
	if strings.EqualFold(mode, ScorerModeLexical) {
		return NewLexicalScorer()
	}
	return NewFuzzyScorer()
}

// FuzzyScorer blends partial-ratio similarity against name, skills,
// description, and tags.
type FuzzyScorer struct {
	lev *metrics.Levenshtein
}

// NewFuzzyScorer constructs the similarity-backed scorer.
func NewFuzzyScorer() *FuzzyScorer {
	return &FuzzyScorer{lev: metrics.NewLevenshtein()}
}

// Score implements Scorer.
func (s *FuzzyScorer) Score(utterance string, entry domain.CareerEntry, stageBias domain.Stage) float64 {
	m := strings.ToLower(utterance)
	score := weightName * s.partialRatio(m, strings.ToLower(entry.Name))
	score += weightSkills * s.partialRatio(m, strings.ToLower(strings.Join(entry.Skills, " ")))
	score += weightDescription * s.partialRatio(m, strings.ToLower(entry.Description))
	score += weightTags * s.partialRatio(m, strings.ToLower(strings.Join(entry.Tags, " ")))
	return applyStageBoost(score, entry.Stage, stageBias)
}

// partialRatio returns the best normalized similarity (0-100) between the
// shorter string and any equally sized window of the longer one.
func (s *FuzzyScorer) partialRatio(a, b string) float64 {
	ar, br := []rune(a), []rune(b)
	if len(ar) == 0 || len(br) == 0 {
		return 0
	}
	shorter, longer := ar, br
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	needle := string(shorter)
	best := 0.0
	for i := 0; i+len(shorter) <= len(longer); i++ {
		window := string(longer[i : i+len(shorter)])
		if sim := strutil.Similarity(needle, window, s.lev); sim > best {
			best = sim
			if best >= 1 {
				break
			}
		}
	}
	return best * 100
}

// LexicalScorer is the coarser substring/count variant used when similarity
// scoring is not wanted: exact name substring scores 40, each skill keyword
// present adds 10, each tag keyword adds 5.
type LexicalScorer struct{}

// NewLexicalScorer constructs the substring-count scorer.
func NewLexicalScorer() *LexicalScorer { return &LexicalScorer{} }

// Score implements Scorer.
func (s *LexicalScorer) Score(utterance string, entry domain.CareerEntry, stageBias domain.Stage) float64 {
	m := strings.ToLower(utterance)
	var score float64
	if name := strings.ToLower(entry.Name); name != "" && strings.Contains(m, name) {
		score += 40
	}
	for _, w := range entry.Skills {
		if w != "" && strings.Contains(m, strings.ToLower(w)) {
			score += 10
		}
	}
	for _, w := range entry.Tags {
		if w != "" && strings.Contains(m, strings.ToLower(w)) {
			score += 5
		}
	}
	return applyStageBoost(score, entry.Stage, stageBias)
}

func applyStageBoost(score float64, entryStage, bias domain.Stage) float64 {
	if bias != domain.StageUnknown && strings.EqualFold(string(entryStage), string(bias)) {
		return score * stageAffinityBoost
	}
	return score
}
