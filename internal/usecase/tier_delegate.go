package usecase

import (
	"fmt"
	"strings"

	"github.com/careermitra/mentor-engine/internal/domain"
	"github.com/careermitra/mentor-engine/pkg/textx"
)

// History handling limits for the delegate prompt.
const (
	historyWindow  = 6
	historyLineMax = 400

	defaultReplyMaxChars = 1200
)

// delegateSystemPrompt enforces the mentoring contract on the remote model:
// one question at a time, and no assumptions about unstated education level.
const delegateSystemPrompt = "You are a professional career mentor from India. Be warm but professional. " +
	"CRITICAL RULES: " +
	"1. Ask ONLY ONE question at a time. Don't overwhelm the student. " +
	"2. NEVER assume the student's education level, age, grade, or background unless they explicitly mention it. " +
	"3. ALWAYS read the conversation history carefully and respond based on what the student has actually said. " +
	"4. If the student mentions an interest, ask about their current education level first. " +
	"5. Based on their education level, adapt your style: friendly for 10th/12th, more technical for UG/PG. " +
	"6. ALWAYS remember what the student has told you in the conversation. Don't contradict their previous answers. " +
	"Only suggest career paths after understanding their interests and education level. " +
	"Keep responses professional and concise - like a real career counselor would talk."

// Bot turns carrying any of these phrases are rule-based stage assumptions;
// they are filtered out so the remote model does not anchor on stale guesses.
var botAssumptionPhrases = []string{"10th", "12th", "ug", "pg", "i think", "could suit you", "key skills", "jobs:"}

// User turns restating an education level in this canned phrasing are dropped
// to stop earlier guesses from compounding.
var userStagePhrases = []string{"i am 10th", "i am 12th", "i am in 10th", "i am in 12th"}

// ReplyParser extracts a structured reply from raw delegate text; it returns
// the raw text unchanged when nothing structured is embedded.
type ReplyParser func(raw string) (reply, career string)

// DelegateTier hands the utterance and filtered recent history to the
// external text-generation delegate.
type DelegateTier struct {
	gen           domain.TextGenerator
	parse         ReplyParser
	replyMaxChars int
}

// NewDelegateTier builds the delegate tier. parse may be nil, in which case
// the raw delegate text is used as-is.
func NewDelegateTier(gen domain.TextGenerator, parse ReplyParser, replyMaxChars int) *DelegateTier {
	if replyMaxChars <= 0 {
		replyMaxChars = defaultReplyMaxChars
	}
	return &DelegateTier{gen: gen, parse: parse, replyMaxChars: replyMaxChars}
}

// Name implements Tier.
func (t *DelegateTier) Name() string { return TierDelegate }

// Resolve implements Tier. Delegate failures propagate as the classified
// sentinels; the orchestrator maps them to canned replies.
func (t *DelegateTier) Resolve(ctx domain.Context, utterance string, history []domain.ConversationTurn) (domain.MatchResult, error) {
	raw, err := t.gen.Generate(ctx, delegateSystemPrompt, buildUserPrompt(utterance, history))
	if err != nil {
		return domain.MatchResult{}, fmt.Errorf("op=delegate.Resolve: %w", err)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.MatchResult{}, fmt.Errorf("op=delegate.Resolve: empty reply: %w", domain.ErrDelegateMalformed)
	}

	reply, career := raw, ""
	if t.parse != nil {
		reply, career = t.parse(raw)
	}
	return domain.MatchResult{
		Reply:      textx.TruncateRunes(reply, t.replyMaxChars),
		Career:     career,
		Confidence: 0,
		Fallback:   true,
	}, nil
}

// buildUserPrompt renders the filtered history window and the current
// utterance into the delegate's user prompt.
func buildUserPrompt(utterance string, history []domain.ConversationTurn) string {
	lines := FilterHistory(history)
	var b strings.Builder
	b.WriteString("Previous conversation:\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\nStudent says: ")
	b.WriteString(utterance)
	b.WriteString("\n\nRespond as a professional career mentor. Follow these rules: " +
		"1. Ask ONLY ONE question at a time. " +
		"2. NEVER assume their education level, age, or grade unless they explicitly mention it in THIS message. " +
		"3. If the student mentions an interest, ask about their current education level first. " +
		"4. IGNORE any education level mentioned in previous conversation history. " +
		"5. Build conversation naturally. Be professional, warm, and concise.")
	return b.String()
}

// FilterHistory keeps the last 6 turns, trims each to 400 characters, and
// drops turns that would anchor the remote model on earlier stage guesses.
func FilterHistory(history []domain.ConversationTurn) []string {
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	var lines []string
	for _, turn := range history {
		text := textx.TruncateRunes(turn.Text, historyLineMax)
		lower := strings.ToLower(text)
		if turn.Role == domain.RoleBot && containsAny(lower, botAssumptionPhrases) {
			continue
		}
		if turn.Role == domain.RoleUser && containsAny(lower, userStagePhrases) {
			continue
		}
		lines = append(lines, turn.Role+": "+text)
	}
	return lines
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
