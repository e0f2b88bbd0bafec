// Package httpx writes JSON responses and holds the single mapping
// from the apperr taxonomy to HTTP statuses. Handlers call Fail instead
// of choosing statuses ad hoc per route.
package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nmalet/blog-backend/internal/apperr"
)

type APIError struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, code, msg string, details interface{}) {
	WriteJSON(w, status, APIError{Error: msg, Code: code, Details: details})
}

var statusByErr = []struct {
	err    error
	status int
	code   string
}{
	{apperr.ErrDuplicateIdentity, http.StatusConflict, "duplicate_identity"},
	{apperr.ErrInvalidEmail, http.StatusBadRequest, "invalid_email"},
	{apperr.ErrInvalidInput, http.StatusBadRequest, "invalid_input"},
	{apperr.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
	{apperr.ErrTokenMissing, http.StatusUnauthorized, "token_missing"},
	{apperr.ErrTokenInvalid, http.StatusUnauthorized, "token_invalid"},
	{apperr.ErrTokenExpired, http.StatusUnauthorized, "token_expired"},
	{apperr.ErrForbidden, http.StatusForbidden, "forbidden"},
	{apperr.ErrNotFound, http.StatusNotFound, "not_found"},
}

// Fail translates err to a status and JSON body. Anything outside the
// taxonomy is an upstream failure: logged, answered with a bare 500,
// never retried.
func Fail(w http.ResponseWriter, err error) {
	for _, m := range statusByErr {
		if errors.Is(err, m.err) {
			WriteError(w, m.status, m.code, m.err.Error(), nil)
			return
		}
	}
	slog.Error("request failed", "err", err)
	WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
}
