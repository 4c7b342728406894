package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// decodeBody parses a JSON request body into v. Unknown fields are
// rejected so typos surface instead of silently dropping data.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeLedgerError maps errors from record-store mutations onto HTTP
// statuses: missing session is 401, everything else is a validation
// problem (storage failures never surface as errors from the ledger).
func writeLedgerError(w http.ResponseWriter, err error) {
	if errors.Is(err, ledger.ErrNoSession) {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}
	writeError(w, http.StatusUnprocessableEntity, err.Error())
}

// requireUser resolves the session or answers 401. The bool reports
// whether the handler may proceed.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (core.Profile, bool) {
	profile, ok := s.sessions.Current(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return core.Profile{}, false
	}
	return profile, true
}
