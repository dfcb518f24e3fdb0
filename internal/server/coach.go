package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListAudits(w http.ResponseWriter, r *http.Request) {
	if s.deps.Coach == nil {
		s.fail(w, r, errCoachDisabled)
		return
	}
	u := userFrom(r.Context())
	audits, err := s.deps.Coach.Audits(r.Context(), u.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, audits, "")
}

func (s *Server) handleCreateAudit(w http.ResponseWriter, r *http.Request) {
	if s.deps.Coach == nil {
		s.fail(w, r, errCoachDisabled)
		return
	}
	u := userFrom(r.Context())
	a, err := s.deps.Coach.Audit(r.Context(), u.Email, u)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusCreated, a, "Audit completed")
}

func (s *Server) handleCompleteAudit(w http.ResponseWriter, r *http.Request) {
	if s.deps.Coach == nil {
		s.fail(w, r, errCoachDisabled)
		return
	}
	u := userFrom(r.Context())
	if err := s.deps.Coach.Complete(r.Context(), u.Email, u.ID, chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, nil, "Audit follow-up completed")
}

type chatRequest struct {
	Message string `json:"message"`
	// IncludeFinancialData defaults to true when absent.
	IncludeFinancialData *bool `json:"includeFinancialData"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.deps.Coach == nil {
		s.fail(w, r, errCoachDisabled)
		return
	}
	u := userFrom(r.Context())
	var req chatRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	include := req.IncludeFinancialData == nil || *req.IncludeFinancialData
	reply, err := s.deps.Coach.Ask(r.Context(), u, req.Message, include)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, chatResponse{Reply: reply}, "")
}
