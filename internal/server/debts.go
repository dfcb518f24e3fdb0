package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/maple-budget/maple/internal/debt"
	"github.com/maple-budget/maple/internal/model"
)

type debtList struct {
	Debts              []model.Debt    `json:"debts"`
	TotalBalance       decimal.Decimal `json:"totalBalance"`
	TotalMinPayment    decimal.Decimal `json:"totalMinPayment"`
	TotalActualPayment decimal.Decimal `json:"totalActualPayment"`
}

func (s *Server) handleListDebts(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	debts, err := s.deps.Debts.List(r.Context(), u.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out := debtList{Debts: debts}
	out.TotalMinPayment, out.TotalActualPayment = debt.Totals(debts)
	for _, d := range debts {
		out.TotalBalance = out.TotalBalance.Add(d.Balance)
	}
	s.respond(w, http.StatusOK, out, "")
}

func (s *Server) handleCreateDebt(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	var d model.Debt
	if err := decode(w, r, &d); err != nil {
		s.fail(w, r, err)
		return
	}
	created, err := s.deps.Debts.Create(r.Context(), u.Email, u.ID, d)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusCreated, created, "Debt created")
}

func (s *Server) handleGetDebt(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	d, err := s.deps.Debts.Get(r.Context(), u.ID, chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, d, "")
}

func (s *Server) handleUpdateDebt(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	var d model.Debt
	if err := decode(w, r, &d); err != nil {
		s.fail(w, r, err)
		return
	}
	updated, err := s.deps.Debts.Update(r.Context(), u.Email, u.ID, chi.URLParam(r, "id"), d)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, updated, "Debt updated")
}

func (s *Server) handleDeleteDebt(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	if err := s.deps.Debts.Delete(r.Context(), u.Email, u.ID, chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, nil, "Debt deleted")
}

// handleDebtPayoff plans the user's stored debts. Query: strategy, extra.
func (s *Server) handleDebtPayoff(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	extra := decimal.Zero
	if raw := r.URL.Query().Get("extra"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			s.fail(w, r, model.ValidationErrors{{Field: "extra", Message: "Extra payment must be a number"}})
			return
		}
		extra = v
	}

	debts, err := s.deps.Debts.List(r.Context(), u.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	plan, err := planPayoff(debts, r.URL.Query().Get("strategy"), extra)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, plan, "")
}
