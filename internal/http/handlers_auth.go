package http

import (
	"errors"
	"net/http"

	"fintrack/internal/session"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := s.sessions.Register(r.Context(), req.Email, req.Password, req.Name)
	switch {
	case errors.Is(err, session.ErrEmailTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, session.ErrMissingField):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case err != nil:
		writeError(w, http.StatusInternalServerError, "could not create account")
	default:
		writeJSON(w, http.StatusCreated, profile)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := s.sessions.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, session.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case err != nil:
		writeError(w, http.StatusInternalServerError, "could not log in")
	default:
		writeJSON(w, http.StatusOK, profile)
	}
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if profile, ok := s.sessions.Current(r.Context()); ok {
		s.invalidateDashboard(profile.ID)
	}
	if err := s.sessions.Logout(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "could not log out")
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	profile, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
