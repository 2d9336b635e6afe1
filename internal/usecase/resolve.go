// Package usecase contains the fallback-chain orchestrator and its tiers.
package usecase

import (
	"errors"
	"log/slog"
	"time"

	"github.com/careermitra/mentor-engine/internal/config"
	"github.com/careermitra/mentor-engine/internal/domain"
	"github.com/careermitra/mentor-engine/internal/match"
	"github.com/careermitra/mentor-engine/internal/observability"
)

// Canned replies for the degraded branches of the chain.
const (
	// defaultFailureReply answers when the delegate is unavailable for any
	// non-timeout reason, and is the hard-coded final default of the chain.
	defaultFailureReply = "I'm having trouble connecting to my AI assistant right now. Please try again in a moment."

	// degradedAdviceReply answers delegate timeouts: recoverable-but-degraded,
	// so the user gets general advice instead of a bare apology.
	degradedAdviceReply = "I'm experiencing some connectivity issues with my AI assistant. Here's some general career advice: Since you love coding, consider pursuing Software Engineering, Data Science, or Web Development. For a roadmap, focus on learning programming languages like Python or JavaScript, building projects, and gaining practical experience through internships or freelancing."
)

// Tier is one stage of the fallback chain. A tier either produces a final
// MatchResult, returns domain.ErrNoMatch to defer to the next tier, or
// returns a delegate failure sentinel which the chain maps to a canned reply.
type Tier interface {
	Name() string
	Resolve(ctx domain.Context, utterance string, history []domain.ConversationTurn) (domain.MatchResult, error)
}

// Tier names accepted in config.ResolveTiers.
const (
	TierStrong    = "strong"
	TierHeuristic = "heuristic"
	TierDelegate  = "delegate"
)

// ResolveService runs the ordered tiers and guarantees a usable MatchResult
// for every input: it never returns an error to the caller.
type ResolveService struct {
	tiers []Tier
}

// NewResolveService constructs the orchestrator over the given tiers.
func NewResolveService(tiers ...Tier) ResolveService {
	return ResolveService{tiers: tiers}
}

// BuildTiers assembles the tiers named in cfg.ResolveTiers, in order. Unknown
// names are skipped with a warning. The default policy runs the delegate tier
// alone; the strong-match and heuristic tiers stay importable and re-enable
// without any interface change.
func BuildTiers(cfg config.Config, ds domain.DatasetProvider, gen domain.TextGenerator, sc match.Scorer, parse ReplyParser) []Tier {
	var tiers []Tier
	for _, name := range cfg.ResolveTiers {
		switch name {
		case TierStrong:
			tiers = append(tiers, NewStrongMatchTier(ds, sc))
		case TierHeuristic:
			tiers = append(tiers, NewHeuristicTier(ds))
		case TierDelegate:
			tiers = append(tiers, NewDelegateTier(gen, parse, cfg.ReplyMaxChars))
		default:
			slog.Warn("unknown resolve tier; skipping", slog.String("tier", name))
		}
	}
	return tiers
}

// Resolve runs the utterance through the chain and returns the first tier's
// answer. Delegate failures are absorbed into canned replies; the caller's
// request never fails.
func (s ResolveService) Resolve(ctx domain.Context, utterance string, history []domain.ConversationTurn) domain.MatchResult {
	start := time.Now()
	defer func() { observability.ResolveDuration.Observe(time.Since(start).Seconds()) }()
	lg := observability.LoggerFromContext(ctx)

	for _, tier := range s.tiers {
		res, err := tier.Resolve(ctx, utterance, history)
		switch {
		case err == nil:
			observability.ResolveTotal.WithLabelValues(tier.Name(), "matched").Inc()
			lg.Debug("tier answered", slog.String("tier", tier.Name()), slog.Float64("confidence", res.Confidence))
			return res
		case errors.Is(err, domain.ErrNoMatch):
			lg.Debug("tier deferred", slog.String("tier", tier.Name()))
			continue
		case errors.Is(err, domain.ErrDelegateTimeout):
			observability.ResolveTotal.WithLabelValues(tier.Name(), "degraded").Inc()
			lg.Warn("delegate timed out; serving degraded advice", slog.String("tier", tier.Name()))
			return domain.MatchResult{Reply: degradedAdviceReply, Fallback: true}
		default:
			// Unavailable or malformed: generic apology.
			observability.ResolveTotal.WithLabelValues(tier.Name(), "failed").Inc()
			lg.Warn("tier failed; serving default reply", slog.String("tier", tier.Name()), slog.Any("error", err))
			return domain.MatchResult{Reply: defaultFailureReply, Fallback: true}
		}
	}

	observability.ResolveTotal.WithLabelValues("none", "failed").Inc()
	return domain.MatchResult{Reply: defaultFailureReply, Fallback: true}
}
