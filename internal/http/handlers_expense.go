package http

import (
	"context"
	"net/http"

	"fintrack/internal/core"
)

// The normal and future expense endpoints share shape and differ only
// in which document list the store operation targets.

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireUser(w, r); !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.records.NormalExpenses(r.Context()))
}

func (s *Server) handleListFutureExpenses(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireUser(w, r); !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.records.FutureExpenses(r.Context()))
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	s.createExpense(w, r, s.records.AddExpense)
}

func (s *Server) handleCreateFutureExpense(w http.ResponseWriter, r *http.Request) {
	s.createExpense(w, r, s.records.AddFutureExpense)
}

func (s *Server) createExpense(w http.ResponseWriter, r *http.Request, add func(context.Context, core.Expense) (core.Expense, error)) {
	profile, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var exp core.Expense
	if err := decodeBody(r, &exp); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	stored, err := add(r.Context(), exp)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	s.invalidateDashboard(profile.ID)
	writeJSON(w, http.StatusCreated, stored)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	s.updateExpense(w, r, s.records.UpdateExpense)
}

func (s *Server) handleUpdateFutureExpense(w http.ResponseWriter, r *http.Request) {
	s.updateExpense(w, r, s.records.UpdateFutureExpense)
}

func (s *Server) updateExpense(w http.ResponseWriter, r *http.Request, update func(context.Context, core.ExpensePatch) (bool, error)) {
	profile, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var patch core.ExpensePatch
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	patch.ID = r.PathValue("id")

	found, err := update(r.Context(), patch)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}
	s.invalidateDashboard(profile.ID)
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	s.deleteExpense(w, r, s.records.DeleteExpense)
}

func (s *Server) handleDeleteFutureExpense(w http.ResponseWriter, r *http.Request) {
	s.deleteExpense(w, r, s.records.DeleteFutureExpense)
}

func (s *Server) deleteExpense(w http.ResponseWriter, r *http.Request, del func(context.Context, string) error) {
	profile, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	if err := del(r.Context(), r.PathValue("id")); err != nil {
		writeLedgerError(w, err)
		return
	}
	s.invalidateDashboard(profile.ID)
	writeJSON(w, http.StatusNoContent, nil)
}
