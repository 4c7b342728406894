package http

import (
	"net/http"

	"fintrack/internal/core"
)

func (s *Server) handleListRevenues(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireUser(w, r); !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.records.Document(r.Context()).Revenues)
}

func (s *Server) handleCreateRevenue(w http.ResponseWriter, r *http.Request) {
	profile, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var rev core.Revenue
	if err := decodeBody(r, &rev); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	stored, err := s.records.AddRevenue(r.Context(), rev)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	s.invalidateDashboard(profile.ID)
	writeJSON(w, http.StatusCreated, stored)
}

func (s *Server) handleUpdateRevenue(w http.ResponseWriter, r *http.Request) {
	profile, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var patch core.RevenuePatch
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	patch.ID = r.PathValue("id")

	found, err := s.records.UpdateRevenue(r.Context(), patch)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "revenue not found")
		return
	}
	s.invalidateDashboard(profile.ID)
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleDeleteRevenue(w http.ResponseWriter, r *http.Request) {
	profile, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	// Deleting an unknown id is a benign no-op, same as the store.
	if err := s.records.DeleteRevenue(r.Context(), r.PathValue("id")); err != nil {
		writeLedgerError(w, err)
		return
	}
	s.invalidateDashboard(profile.ID)
	writeJSON(w, http.StatusNoContent, nil)
}
