package server

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/maple-budget/maple/internal/calculator"
	"github.com/maple-budget/maple/internal/debt"
	"github.com/maple-budget/maple/internal/model"
	"github.com/maple-budget/maple/internal/money"
	"github.com/maple-budget/maple/internal/tax"
)

// calc decodes a request of type In, runs fn and responds with its result.
func calc[In, Out any](s *Server, w http.ResponseWriter, r *http.Request, fn func(In) (Out, error)) {
	var in In
	if err := decode(w, r, &in); err != nil {
		s.fail(w, r, err)
		return
	}
	out, err := fn(in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, out, "")
}

func (s *Server) province(p model.Province) model.Province {
	if p == "" {
		return s.opts.Province
	}
	return p
}

type taxRequest struct {
	Income   decimal.Decimal `json:"income"`
	Province model.Province  `json:"province"`
}

func (s *Server) handleTax(w http.ResponseWriter, r *http.Request) {
	calc(s, w, r, func(in taxRequest) (tax.Result, error) {
		p := s.province(in.Province)
		if !p.Valid() {
			return tax.Result{}, model.ValidationErrors{{Field: "province", Message: "Province is not supported"}}
		}
		switch {
		case !money.InRange(in.Income):
			return tax.Result{}, model.ValidationErrors{{Field: "income", Message: "Income is out of range"}}
		case in.Income.IsNegative():
			return tax.Result{}, model.ValidationErrors{{Field: "income", Message: "Income cannot be negative"}}
		}
		return tax.Calculate(in.Income, p)
	})
}

type minPaymentResult struct {
	Kind        model.DebtKind  `json:"kind"`
	DisplayName string          `json:"displayName"`
	MinPayment  decimal.Decimal `json:"minPayment"`
	Months      int             `json:"monthsToPayoff,omitempty"`
	Interest    decimal.Decimal `json:"totalInterest"`
}

func (s *Server) handleMinPayment(w http.ResponseWriter, r *http.Request) {
	calc(s, w, r, func(d model.Debt) (minPaymentResult, error) {
		if err := debt.Validate(d).Err(); err != nil {
			return minPaymentResult{}, err
		}
		d.MinPayment = debt.MinimumPayment(d)
		res := minPaymentResult{Kind: d.Kind, DisplayName: debt.DisplayName(d.Kind), MinPayment: d.MinPayment}
		// Interest-only minimums never retire the balance; the months are left out.
		if months, interest, err := debt.MonthsToPayoff(d); err == nil {
			res.Months, res.Interest = months, interest
		}
		return res, nil
	})
}

type loanPayoffRequest struct {
	Debts        []model.Debt    `json:"debts"`
	Strategy     string          `json:"strategy"`
	ExtraPayment decimal.Decimal `json:"extraPayment"`
}

func (s *Server) handleLoanPayoff(w http.ResponseWriter, r *http.Request) {
	calc(s, w, r, func(in loanPayoffRequest) (debt.Plan, error) {
		if len(in.Debts) == 0 {
			return debt.Plan{}, model.ValidationErrors{{Field: "debts", Message: "At least one debt is required"}}
		}
		var errs model.ValidationErrors
		for i, d := range in.Debts {
			field := func(name string) string { return fmt.Sprintf("debts[%d].%s", i, name) }
			verrs := debt.Validate(d)
			for _, fe := range verrs {
				fe.Field = field(fe.Field)
				errs = append(errs, fe)
			}
			if len(verrs) > 0 {
				continue
			}
			minimum := debt.MinimumPayment(d)
			if !d.MinPayment.IsPositive() {
				in.Debts[i].MinPayment = minimum
			}
			if d.UserPayment.IsPositive() && d.UserPayment.LessThan(minimum) {
				errs = append(errs, model.FieldError{Field: field("userPayment"), Message: "Custom payment cannot be less than minimum payment"})
			}
		}
		if err := errs.Err(); err != nil {
			return debt.Plan{}, err
		}
		return planPayoff(in.Debts, in.Strategy, in.ExtraPayment)
	})
}

func planPayoff(debts []model.Debt, strategy string, extra decimal.Decimal) (debt.Plan, error) {
	st, err := debt.ParseStrategy(strategy)
	if err != nil {
		return debt.Plan{}, model.ValidationErrors{{Field: "strategy", Message: "Strategy must be avalanche or snowball"}}
	}
	switch {
	case !money.InRange(extra):
		return debt.Plan{}, model.ValidationErrors{{Field: "extraPayment", Message: "Extra payment is out of range"}}
	case extra.IsNegative():
		return debt.Plan{}, model.ValidationErrors{{Field: "extraPayment", Message: "Extra payment cannot be negative"}}
	}
	return debt.PlanPayoff(debts, st, extra)
}

func (s *Server) handleLoan(w http.ResponseWriter, r *http.Request) {
	calc(s, w, r, calculator.CalculateLoan)
}

func (s *Server) handleMortgage(w http.ResponseWriter, r *http.Request) {
	calc(s, w, r, calculator.CalculateMortgage)
}

func (s *Server) handleAffordability(w http.ResponseWriter, r *http.Request) {
	calc(s, w, r, func(in calculator.AffordabilityInputs) (calculator.AffordabilityResult, error) {
		in.Province = s.province(in.Province)
		return calculator.CalculateAffordability(in)
	})
}

func (s *Server) handleRRSPTFSA(w http.ResponseWriter, r *http.Request) {
	calc(s, w, r, func(in calculator.RRSPTFSAInputs) (calculator.RRSPTFSAResult, error) {
		in.Province = s.province(in.Province)
		return calculator.CalculateRRSPvsTFSA(in)
	})
}

func (s *Server) handleBuyVsRent(w http.ResponseWriter, r *http.Request) {
	calc(s, w, r, func(in calculator.BuyRentInputs) (calculator.BuyRentResult, error) {
		in.Province = s.province(in.Province)
		return calculator.CalculateBuyVsRent(in)
	})
}
