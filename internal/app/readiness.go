package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	httpserver "github.com/careermitra/mentor-engine/internal/adapter/httpserver"
)

// RedisPingResult is the minimal return type of a Redis client's Ping.
type RedisPingResult interface{ Err() error }

// RedisClient is the minimal interface for a Redis client needed for readiness.
type RedisClient interface {
	Ping(ctx context.Context) RedisPingResult
}

// BuildReadinessChecks returns the readiness checks: history store and catalog.
// A nil rdb means history runs in-process and is always ready.
func BuildReadinessChecks(rdb RedisClient, ds httpserver.DatasetAdmin) (
	func(ctx context.Context) error,
	func(ctx context.Context) error,
) {
	redisCheck := func(ctx context.Context) error {
		if rdb == nil {
			return nil
		}
		return rdb.Ping(ctx).Err()
	}
	datasetCheck := func(_ context.Context) error {
		if ds == nil {
			return fmt.Errorf("dataset not configured")
		}
		if len(ds.Entries()) == 0 {
			return fmt.Errorf("dataset is empty")
		}
		return nil
	}
	return redisCheck, datasetCheck
}

// ReadyzHandler runs the named checks and reports 503 with per-check detail
// when any fail.
func ReadyzHandler(checks map[string]func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		failures := map[string]string{}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				failures[name] = err.Error()
			}
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if len(failures) > 0 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]any{"status": "unavailable", "checks": failures})
			return
		}
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok"})
	}
}
