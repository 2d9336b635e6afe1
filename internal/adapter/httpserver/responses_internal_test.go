package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careermitra/mentor-engine/internal/domain"
)

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("%w: bad", domain.ErrInvalidArgument), http.StatusBadRequest, "INVALID_ARGUMENT"},
		{fmt.Errorf("%w: nope", domain.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{fmt.Errorf("%w", domain.ErrDelegateTimeout), http.StatusServiceUnavailable, "DELEGATE_TIMEOUT"},
		{fmt.Errorf("%w", domain.ErrDelegateUnavailable), http.StatusServiceUnavailable, "DELEGATE_UNAVAILABLE"},
		{fmt.Errorf("%w", domain.ErrDelegateMalformed), http.StatusServiceUnavailable, "DELEGATE_MALFORMED"},
		{errors.New("anything else"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tc.err, nil)
			assert.Equal(t, tc.status, rec.Code)
			var env errorEnvelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
			assert.Equal(t, tc.code, env.Error.Code)
		})
	}
}
