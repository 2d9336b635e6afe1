// Package domain defines the core records, ports, and error taxonomy for the
// intent-resolution engine.
package domain

import (
	"context"
	"errors"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	// ErrNoMatch is a defined outcome, not a failure: a tier produced nothing
	// usable and the chain should consult the next tier.
	ErrNoMatch             = errors.New("no match")
	ErrDelegateTimeout     = errors.New("delegate timeout")
	ErrDelegateUnavailable = errors.New("delegate unavailable")
	ErrDelegateMalformed   = errors.New("delegate malformed response")
	ErrInternal            = errors.New("internal error")
)

// Stage is the user's educational level. The empty string means unknown.
type Stage string

const (
	Stage10th    Stage = "10th"
	Stage12th    Stage = "12th"
	StageUG      Stage = "UG"
	StagePG      Stage = "PG"
	StageUnknown Stage = ""
)

// Conversation roles.
const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// ConversationTurn is one prior exchange line. Turns are consumed read-only.
type ConversationTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Intelligence holds the stage-keyed and interest response snippets attached
// to a career entry.
type Intelligence struct {
	StageResponse    map[Stage]string `json:"stage_response" yaml:"stage_response"`
	InterestResponse string           `json:"interest_response" yaml:"interest_response"`
}

// CareerEntry is one curated knowledge-base record. Entries are immutable for
// the duration of a resolution call; missing fields stay at their zero values.
type CareerEntry struct {
	Name            string            `json:"name" yaml:"name"`
	Stage           Stage             `json:"stage" yaml:"stage"`
	Description     string            `json:"description" yaml:"description"`
	Skills          []string          `json:"skills" yaml:"skills"`
	Tags            []string          `json:"tags" yaml:"tags"`
	FuturePaths     []string          `json:"future_paths" yaml:"future_paths"`
	Jobs            []string          `json:"jobs" yaml:"jobs"`
	MentorTemplates map[string]string `json:"mentor_templates" yaml:"mentor_templates"`
	Intelligence    Intelligence      `json:"intelligence_layer" yaml:"intelligence_layer"`
}

// MatchResult is the single output contract shared by every resolution tier.
// Confidence is tier-local: the strong-match tier reports the accepted score
// (90 for a tag hit), fallback tiers always report 0. Confidence values are
// not comparable across tiers.
type MatchResult struct {
	Reply      string   `json:"reply"`
	Career     string   `json:"career,omitempty"`
	Stage      Stage    `json:"stage,omitempty"`
	Interests  []string `json:"interests,omitempty"`
	Confidence float64  `json:"confidence"`
	Fallback   bool     `json:"fallback"`
}

// DatasetProvider exposes the career knowledge base as an ordered, read-only
// sequence. Iteration order must be stable across calls so that tie-breaks in
// the match engine stay deterministic.
type DatasetProvider interface {
	Entries() []CareerEntry
	Version() int64
}

// HistoryStore supplies recent conversation turns in chronological order. The
// core only reads; the serving adapter appends after each exchange.
type HistoryStore interface {
	Recent(ctx Context, conversationID string, n int) ([]ConversationTurn, error)
	Append(ctx Context, conversationID string, turns ...ConversationTurn) error
}

// TextGenerator is the external text-generation delegate. Implementations
// classify failures into ErrDelegateTimeout, ErrDelegateUnavailable, or
// ErrDelegateMalformed so the fallback chain can pick its degraded branch.
type TextGenerator interface {
	Generate(ctx Context, systemPrompt, userPrompt string) (string, error)
}

// Context aliases context.Context so domain signatures stay stable if the
// project ever decouples from the standard context package.
type Context = context.Context
