// Package httpserver contains HTTP handlers and middleware.
//
// It exposes the chat endpoint plus dataset administration, keeping HTTP
// concerns separate from the resolution chain.
package httpserver

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/careermitra/mentor-engine/internal/config"
	"github.com/careermitra/mentor-engine/internal/domain"
	"github.com/careermitra/mentor-engine/pkg/textx"
)

// ChatResolver runs an utterance through the fallback chain. It always yields
// a usable result.
type ChatResolver interface {
	Resolve(ctx domain.Context, utterance string, history []domain.ConversationTurn) domain.MatchResult
}

// DatasetAdmin exposes the catalog for the info and reload endpoints.
type DatasetAdmin interface {
	Entries() []domain.CareerEntry
	Version() int64
	Reload() error
}

// Server wires config and collaborators into HTTP handlers.
type Server struct {
	Cfg      config.Config
	Resolver ChatResolver
	History  domain.HistoryStore
	Dataset  DatasetAdmin
}

// NewServer constructs an HTTP server with all handlers wired.
func NewServer(cfg config.Config, resolver ChatResolver, history domain.HistoryStore, dataset DatasetAdmin) *Server {
	return &Server{Cfg: cfg, Resolver: resolver, History: history, Dataset: dataset}
}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New() })
	return vld
}

type chatRequest struct {
	ConversationID string `json:"conversation_id" validate:"omitempty,max=100"`
	Message        string `json:"message" validate:"required,max=4000"`
}

type chatResponse struct {
	ConversationID string `json:"conversation_id"`
	domain.MatchResult
}

// ChatHandler resolves one user message into a mentor reply.
func (s *Server) ChatHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Accept negotiation: only JSON responses supported
		if a := r.Header.Get("Accept"); a != "" && a != "*/*" && !strings.Contains(a, "application/json") {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusNotAcceptable)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"code": "INVALID_ARGUMENT", "message": "not acceptable", "details": map[string]any{"accept": a}}})
			return
		}
		// Cap body size to prevent abuse
		r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, fmt.Errorf("%w: invalid json", domain.ErrInvalidArgument), nil)
			return
		}
		if err := getValidator().Struct(req); err != nil {
			verrs := map[string]string{}
			if ve, ok := err.(validator.ValidationErrors); ok {
				for _, fe := range ve {
					verrs[strings.ToLower(fe.Field())] = fe.Tag()
				}
			}
			writeError(w, r, fmt.Errorf("%w: validation failed", domain.ErrInvalidArgument), verrs)
			return
		}

		message := textx.SanitizeText(req.Message)
		if message == "" {
			writeError(w, r, fmt.Errorf("%w: message is empty after sanitization", domain.ErrInvalidArgument), map[string]string{"field": "message"})
			return
		}

		convID := req.ConversationID
		if convID == "" {
			convID = uuid.NewString()
		} else {
			convID = SanitizeConversationID(convID)
			if res := ValidateConversationID(convID); !res.Valid {
				writeError(w, r, fmt.Errorf("%w: invalid conversation_id", domain.ErrInvalidArgument), res.Errors)
				return
			}
		}

		ctx := r.Context()
		lg := LoggerFrom(r)

		history, err := s.History.Recent(ctx, convID, s.Cfg.HistoryMaxTurns)
		if err != nil {
			// The chain works without context; a history outage degrades, not fails.
			lg.Warn("history read failed", slog.String("conversation_id", convID), slog.Any("error", err))
			history = nil
		}

		res := s.Resolver.Resolve(ctx, message, history)

		if err := s.History.Append(ctx, convID,
			domain.ConversationTurn{Role: domain.RoleUser, Text: message},
			domain.ConversationTurn{Role: domain.RoleBot, Text: res.Reply},
		); err != nil {
			lg.Warn("history append failed", slog.String("conversation_id", convID), slog.Any("error", err))
		}

		writeJSON(w, http.StatusOK, chatResponse{ConversationID: convID, MatchResult: res})
	}
}

// DatasetInfoHandler reports the catalog version and size.
func (s *Server) DatasetInfoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		entries := s.Dataset.Entries()
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name)
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"version": s.Dataset.Version(),
			"entries": len(entries),
			"careers": names,
		})
	}
}

// DatasetReloadHandler re-reads the catalog from disk.
func (s *Server) DatasetReloadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Dataset.Reload(); err != nil {
			LoggerFrom(r).Error("dataset reload failed", slog.Any("error", err))
			writeError(w, r, fmt.Errorf("%w: dataset reload", domain.ErrInternal), nil)
			return
		}
		LoggerFrom(r).Info("dataset reloaded", slog.Int64("version", s.Dataset.Version()))
		writeJSON(w, http.StatusOK, map[string]any{"version": s.Dataset.Version()})
	}
}
