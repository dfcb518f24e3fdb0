package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/maple-budget/maple/internal/model"
)

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	assets, err := s.deps.NetWorth.Assets(r.Context(), u.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, assets, "")
}

func (s *Server) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	a, err := s.deps.NetWorth.Asset(r.Context(), u.ID, chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, a, "")
}

func (s *Server) handleCreateAsset(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	var a model.Asset
	if err := decode(w, r, &a); err != nil {
		s.fail(w, r, err)
		return
	}
	created, err := s.deps.NetWorth.CreateAsset(r.Context(), u.Email, u.ID, a)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusCreated, created, "Asset created")
}

func (s *Server) handleUpdateAsset(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	var a model.Asset
	if err := decode(w, r, &a); err != nil {
		s.fail(w, r, err)
		return
	}
	updated, err := s.deps.NetWorth.UpdateAsset(r.Context(), u.Email, u.ID, chi.URLParam(r, "id"), a)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, updated, "Asset updated")
}

func (s *Server) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	if err := s.deps.NetWorth.DeleteAsset(r.Context(), u.Email, u.ID, chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, nil, "Asset deleted")
}

func (s *Server) handleListLiabilities(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	ls, err := s.deps.NetWorth.Liabilities(r.Context(), u.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, ls, "")
}

func (s *Server) handleGetLiability(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	l, err := s.deps.NetWorth.Liability(r.Context(), u.ID, chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, l, "")
}

func (s *Server) handleCreateLiability(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	var l model.Liability
	if err := decode(w, r, &l); err != nil {
		s.fail(w, r, err)
		return
	}
	created, err := s.deps.NetWorth.CreateLiability(r.Context(), u.Email, u.ID, l)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusCreated, created, "Liability created")
}

func (s *Server) handleUpdateLiability(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	var l model.Liability
	if err := decode(w, r, &l); err != nil {
		s.fail(w, r, err)
		return
	}
	updated, err := s.deps.NetWorth.UpdateLiability(r.Context(), u.Email, u.ID, chi.URLParam(r, "id"), l)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, updated, "Liability updated")
}

func (s *Server) handleDeleteLiability(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	if err := s.deps.NetWorth.DeleteLiability(r.Context(), u.Email, u.ID, chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, nil, "Liability deleted")
}

// handleNetWorth summarizes the balance sheet against the latest budget's
// monthly income and expenses.
func (s *Server) handleNetWorth(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	income, expenses := decimal.Zero, decimal.Zero
	b, ok, err := s.deps.Budgets.Latest(r.Context(), u.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if ok {
		income, expenses = b.NetIncome, b.TotalExpenses
	}
	sum, err := s.deps.NetWorth.Summary(r.Context(), u.ID, income, expenses)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, sum, "")
}
