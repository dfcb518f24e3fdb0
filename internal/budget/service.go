package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/maple-budget/maple/internal/activity"
	"github.com/maple-budget/maple/internal/id"
	"github.com/maple-budget/maple/internal/model"
)

// Store persists budgets with their items.
type Store interface {
	ListBudgets(ctx context.Context, userID string) ([]model.Budget, error)
	GetBudget(ctx context.Context, userID, id string) (model.Budget, error)
	CreateBudget(ctx context.Context, b model.Budget) error
	UpdateBudget(ctx context.Context, b model.Budget) error
	DeleteBudget(ctx context.Context, userID, id string) error
}

// Service manages a user's budgets.
type Service struct {
	store   Store
	taxable TaxabilityChecker
	log     activity.Recorder
	now     func() time.Time
}

// NewService creates a Service. A nil recorder discards activity.
func NewService(store Store, taxable TaxabilityChecker, rec activity.Recorder) *Service {
	if rec == nil {
		rec = activity.Nop{}
	}
	return &Service{store: store, taxable: taxable, log: rec, now: time.Now}
}

// List returns the user's budgets, most recently updated first.
func (s *Service) List(ctx context.Context, userID string) ([]model.Budget, error) {
	bs, err := s.store.ListBudgets(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}
	return bs, nil
}

// Get returns one budget with its items.
func (s *Service) Get(ctx context.Context, userID, budgetID string) (model.Budget, error) {
	b, err := s.store.GetBudget(ctx, userID, budgetID)
	if err != nil {
		return model.Budget{}, fmt.Errorf("getting budget %s: %w", budgetID, err)
	}
	return b, nil
}

// Latest returns the most recently updated budget, reporting false when the user has none.
func (s *Service) Latest(ctx context.Context, userID string) (model.Budget, bool, error) {
	bs, err := s.List(ctx, userID)
	if err != nil {
		return model.Budget{}, false, err
	}
	if len(bs) == 0 {
		return model.Budget{}, false, nil
	}
	return bs[0], true, nil
}

// Create validates b, computes its totals and stores it.
func (s *Service) Create(ctx context.Context, actor, userID string, b model.Budget) (model.Budget, error) {
	b.ID = id.New()
	b.UserID = userID
	b.CreatedAt = s.now().UTC()
	b.UpdatedAt = b.CreatedAt
	b, err := s.prepare(b)
	if err != nil {
		return model.Budget{}, err
	}
	if err := s.store.CreateBudget(ctx, b); err != nil {
		return model.Budget{}, fmt.Errorf("creating budget: %w", err)
	}
	s.record(actor, "budget.create", fmt.Sprintf("Created budget %q with %d items", b.Name, len(b.Items)), b.ID)
	return b, nil
}

// Update replaces a budget and all of its items.
func (s *Service) Update(ctx context.Context, actor, userID, budgetID string, b model.Budget) (model.Budget, error) {
	existing, err := s.store.GetBudget(ctx, userID, budgetID)
	if err != nil {
		return model.Budget{}, fmt.Errorf("updating budget %s: %w", budgetID, err)
	}
	b.ID = budgetID
	b.UserID = userID
	b.CreatedAt = existing.CreatedAt
	b.UpdatedAt = s.now().UTC()
	b, err = s.prepare(b)
	if err != nil {
		return model.Budget{}, err
	}
	if err := s.store.UpdateBudget(ctx, b); err != nil {
		return model.Budget{}, fmt.Errorf("updating budget %s: %w", budgetID, err)
	}
	s.record(actor, "budget.update", fmt.Sprintf("Updated budget %q", b.Name), b.ID)
	return b, nil
}

// Delete removes a budget and its items.
func (s *Service) Delete(ctx context.Context, actor, userID, budgetID string) error {
	if err := s.store.DeleteBudget(ctx, userID, budgetID); err != nil {
		return fmt.Errorf("deleting budget %s: %w", budgetID, err)
	}
	s.record(actor, "budget.delete", "Deleted budget", budgetID)
	return nil
}

// Summary loads a budget and summarizes it.
func (s *Service) Summary(ctx context.Context, userID, budgetID string) (Summary, error) {
	b, err := s.Get(ctx, userID, budgetID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(b, s.taxable)
}

// prepare fills defaults, validates, and stores the monthly totals on b.
func (s *Service) prepare(b model.Budget) (model.Budget, error) {
	if b.LifeSituation == "" {
		b.LifeSituation = model.LifeSingle
	}
	if errs := Validate(b); len(errs) > 0 {
		return model.Budget{}, errs
	}

	items := make([]model.BudgetItem, len(b.Items))
	for i, it := range b.Items {
		it.ID = id.New()
		it.BudgetID = b.ID
		it.MonthlyAmount = it.Frequency.ToMonthly(it.Amount)
		if !b.LifeSituation.Partnered() {
			it.Owner = ""
		}
		items[i] = it
	}
	b.Items = items

	sum, err := Summarize(b, s.taxable)
	if err != nil {
		return model.Budget{}, err
	}
	b.NetIncome = sum.MonthlyNetIncome
	b.TotalExpenses = sum.MonthlyExpenses
	return b, nil
}

func (s *Service) record(actor, action, details, recordID string) {
	_ = s.log.Record(activity.Entry{Actor: actor, Action: action, Details: details, RecordID: recordID})
}
