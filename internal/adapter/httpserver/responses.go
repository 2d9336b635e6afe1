package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/careermitra/mentor-engine/internal/domain"
)

type errorEnvelope struct {
	Error apiError `json:"error"`
}

type apiError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain sentinels to HTTP statuses. Delegate failures rarely
// surface here because the chain absorbs them into canned replies, but the
// dataset and history endpoints can still report them.
func writeError(w http.ResponseWriter, _ *http.Request, err error, details interface{}) {
	code := http.StatusInternalServerError
	codeStr := "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		code = http.StatusBadRequest
		codeStr = "INVALID_ARGUMENT"
	case errors.Is(err, domain.ErrNotFound):
		code = http.StatusNotFound
		codeStr = "NOT_FOUND"
	case errors.Is(err, domain.ErrDelegateTimeout):
		code = http.StatusServiceUnavailable
		codeStr = "DELEGATE_TIMEOUT"
	case errors.Is(err, domain.ErrDelegateUnavailable):
		code = http.StatusServiceUnavailable
		codeStr = "DELEGATE_UNAVAILABLE"
	case errors.Is(err, domain.ErrDelegateMalformed):
		code = http.StatusServiceUnavailable
		codeStr = "DELEGATE_MALFORMED"
	}
	writeJSON(w, code, errorEnvelope{Error: apiError{Code: codeStr, Message: err.Error(), Details: details}})
}
