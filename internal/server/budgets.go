package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/maple-budget/maple/internal/model"
)

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	budgets, err := s.deps.Budgets.List(r.Context(), u.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, budgets, "")
}

func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	b, err := s.deps.Budgets.Get(r.Context(), u.ID, chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, b, "")
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	var b model.Budget
	if err := decode(w, r, &b); err != nil {
		s.fail(w, r, err)
		return
	}
	created, err := s.deps.Budgets.Create(r.Context(), u.Email, u.ID, b)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusCreated, created, "Budget created")
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	var b model.Budget
	if err := decode(w, r, &b); err != nil {
		s.fail(w, r, err)
		return
	}
	updated, err := s.deps.Budgets.Update(r.Context(), u.Email, u.ID, chi.URLParam(r, "id"), b)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, updated, "Budget updated")
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	if err := s.deps.Budgets.Delete(r.Context(), u.Email, u.ID, chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, nil, "Budget deleted")
}

func (s *Server) handleBudgetSummary(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	sum, err := s.deps.Budgets.Summary(r.Context(), u.ID, chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, sum, "")
}
