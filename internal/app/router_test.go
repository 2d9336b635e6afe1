package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careermitra/mentor-engine/internal/adapter/history/memstore"
	httpserver "github.com/careermitra/mentor-engine/internal/adapter/httpserver"
	"github.com/careermitra/mentor-engine/internal/config"
	"github.com/careermitra/mentor-engine/internal/domain"
)

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"*"}},
		{"*", []string{"*"}},
		{"https://a.example", []string{"https://a.example"}},
		{"https://a.example, https://b.example", []string{"https://a.example", "https://b.example"}},
		{" , ", []string{"*"}},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ParseOrigins(tc.in), "input %q", tc.in)
	}
}

type routerResolver struct{}

func (routerResolver) Resolve(_ domain.Context, _ string, _ []domain.ConversationTurn) domain.MatchResult {
	return domain.MatchResult{Reply: "hello"}
}

type routerDataset struct{ entries []domain.CareerEntry }

func (d routerDataset) Entries() []domain.CareerEntry { return d.entries }
func (d routerDataset) Version() int64                { return 1 }
func (d routerDataset) Reload() error                 { return nil }

func newRouter(t *testing.T, ds httpserver.DatasetAdmin) http.Handler {
	t.Helper()
	cfg := config.Config{
		AppEnv:           "test",
		HistoryMaxTurns:  30,
		RateLimitPerMin:  100,
		CORSAllowOrigins: "*",
		HTTPWriteTimeout: 5 * time.Second,
	}
	srv := httpserver.NewServer(cfg, routerResolver{}, memstore.New(30), ds)
	_, dsCheck := BuildReadinessChecks(nil, ds)
	ready := ReadyzHandler(map[string]func(ctx context.Context) error{"dataset": dsCheck})
	return BuildRouter(cfg, srv, ready)
}

func TestRouter_ChatRoute(t *testing.T) {
	h := newRouter(t, routerDataset{entries: []domain.CareerEntry{{Name: "Doctor"}}})
	req := httptest.NewRequest(http.MethodPost, "/v1/chat", bytes.NewBufferString(`{"message":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	h := newRouter(t, routerDataset{entries: []domain.CareerEntry{{Name: "Doctor"}}})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Readyz(t *testing.T) {
	h := newRouter(t, routerDataset{entries: []domain.CareerEntry{{Name: "Doctor"}}})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	h = newRouter(t, routerDataset{})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unavailable", body.Status)
	assert.Contains(t, body.Checks, "dataset")
}

func TestRouter_DatasetInfo(t *testing.T) {
	h := newRouter(t, routerDataset{entries: []domain.CareerEntry{{Name: "Doctor"}}})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/dataset", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Doctor")
}
