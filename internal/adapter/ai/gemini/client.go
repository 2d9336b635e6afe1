// Package gemini implements the text-generation delegate against the Gemini
// generateContent REST API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/careermitra/mentor-engine/internal/adapter/ai/tokencount"
	"github.com/careermitra/mentor-engine/internal/config"
	"github.com/careermitra/mentor-engine/internal/domain"
	"github.com/careermitra/mentor-engine/internal/observability"
)

// Client implements domain.TextGenerator. Failures are classified into the
// domain delegate sentinels: timeouts are never retried (the chain serves its
// degraded branch instead), 5xx/429 retry with backoff, 4xx and decode
// failures are permanent.
type Client struct {
	cfg     config.Config
	hc      *http.Client
	counter *tokencount.Counter
}

// New constructs a Gemini client with the configured request timeout. The
// transport is traced so delegate calls show up under the request span.
func New(cfg config.Config) *Client {
	return &Client{
		cfg: cfg,
		hc: &http.Client{
			Timeout:   cfg.AITimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		counter: tokencount.NewCounter(),
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate implements domain.TextGenerator.
func (c *Client) Generate(ctx domain.Context, systemPrompt, userPrompt string) (string, error) {
	if c.cfg.GeminiAPIKey == "" {
		slog.Warn("gemini api key missing", slog.String("provider", "gemini"))
		return "", fmt.Errorf("op=gemini.Generate: GEMINI_API_KEY missing: %w", domain.ErrDelegateUnavailable)
	}

	prompt := systemPrompt + "\n\n" + userPrompt
	slog.Debug("calling gemini",
		slog.String("provider", "gemini"),
		slog.String("model", c.cfg.GeminiModel),
		slog.Int("prompt_tokens_est", c.counter.Count(prompt)))

	b, err := json.Marshal(generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}})
	if err != nil {
		return "", fmt.Errorf("op=gemini.Generate: marshal request: %w", domain.ErrInternal)
	}
	endpoint := strings.TrimSuffix(c.cfg.GeminiBaseURL, "/") + "/models/" + c.cfg.GeminiModel + ":generateContent"

	var out generateResponse
	op := func() error {
		start := time.Now()
		// Recreate the request each attempt to avoid reusing consumed bodies.
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
		if reqErr != nil {
			return backoff.Permanent(reqErr)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-goog-api-key", c.cfg.GeminiAPIKey)

		resp, doErr := c.hc.Do(req)
		observability.AIRequestsTotal.WithLabelValues("gemini", "generate").Inc()
		observability.AIRequestDuration.WithLabelValues("gemini", "generate").Observe(time.Since(start).Seconds())
		if doErr != nil {
			if isTimeout(doErr) {
				// Timeouts go straight to the degraded branch, no retries.
				slog.Warn("gemini request timed out", slog.String("provider", "gemini"))
				return backoff.Permanent(fmt.Errorf("%w: %v", domain.ErrDelegateTimeout, doErr))
			}
			return doErr
		}
		defer func() { _ = resp.Body.Close() }()

		bodyBytes, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return readErr
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			slog.Warn("gemini rate limited", slog.Int("status", resp.StatusCode))
			return errors.New("rate limited: 429")
		}
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			slog.Warn("gemini 4xx",
				slog.Int("status", resp.StatusCode),
				slog.String("body", snippet(bodyBytes, 512)))
			return backoff.Permanent(fmt.Errorf("%w: generate status %d", domain.ErrDelegateUnavailable, resp.StatusCode))
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			slog.Error("gemini non-2xx",
				slog.Int("status", resp.StatusCode),
				slog.String("body", snippet(bodyBytes, 512)))
			return fmt.Errorf("generate status %d", resp.StatusCode)
		}
		if jsonErr := json.Unmarshal(bodyBytes, &out); jsonErr != nil {
			slog.Error("gemini decode error", slog.Any("error", jsonErr))
			return backoff.Permanent(fmt.Errorf("%w: %v", domain.ErrDelegateMalformed, jsonErr))
		}
		return nil
	}

	expo := backoff.NewExponentialBackOff()
	maxElapsed, initial, maxIv, mult := c.cfg.GetAIBackoffConfig()
	expo.MaxElapsedTime = maxElapsed
	expo.InitialInterval = initial
	expo.MaxInterval = maxIv
	expo.Multiplier = mult

	if err := backoff.Retry(op, backoff.WithContext(expo, ctx)); err != nil {
		switch {
		case errors.Is(err, domain.ErrDelegateTimeout),
			errors.Is(err, domain.ErrDelegateUnavailable),
			errors.Is(err, domain.ErrDelegateMalformed):
			return "", fmt.Errorf("op=gemini.Generate: %w", err)
		case errors.Is(err, context.DeadlineExceeded):
			return "", fmt.Errorf("op=gemini.Generate: %w", domain.ErrDelegateTimeout)
		default:
			return "", fmt.Errorf("op=gemini.Generate: %w: %v", domain.ErrDelegateUnavailable, err)
		}
	}

	reply := firstText(out)
	if reply == "" {
		return "", fmt.Errorf("op=gemini.Generate: empty candidates: %w", domain.ErrDelegateMalformed)
	}
	return reply, nil
}

func firstText(out generateResponse) string {
	if len(out.Candidates) == 0 {
		return ""
	}
	parts := out.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return ""
	}
	return strings.TrimSpace(parts[0].Text)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func snippet(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}
