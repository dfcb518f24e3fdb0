package debt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/maple-budget/maple/internal/activity"
	"github.com/maple-budget/maple/internal/id"
	"github.com/maple-budget/maple/internal/model"
)

var (
	// ErrPaymentBelowMinimum is returned when a custom payment is under the computed minimum.
	ErrPaymentBelowMinimum = errors.New("custom payment cannot be less than minimum payment")
	// ErrNotADebt is returned when a liability exists but was not created as a debt.
	ErrNotADebt = errors.New("not a valid debt record")
)

// LiabilityStore persists liabilities scoped to a user.
type LiabilityStore interface {
	ListLiabilities(ctx context.Context, userID string) ([]model.Liability, error)
	GetLiability(ctx context.Context, userID, id string) (model.Liability, error)
	CreateLiability(ctx context.Context, l model.Liability) error
	UpdateLiability(ctx context.Context, l model.Liability) error
	DeleteLiability(ctx context.Context, userID, id string) error
}

// Service manages a user's debts on top of their liabilities.
type Service struct {
	store LiabilityStore
	log   activity.Recorder
	now   func() time.Time
}

// NewService creates a Service. A nil recorder discards activity.
func NewService(store LiabilityStore, rec activity.Recorder) *Service {
	if rec == nil {
		rec = activity.Nop{}
	}
	return &Service{store: store, log: rec, now: time.Now}
}

// List returns the user's debts, newest first. Liabilities that are not debts are skipped.
func (s *Service) List(ctx context.Context, userID string) ([]model.Debt, error) {
	ls, err := s.store.ListLiabilities(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing debts: %w", err)
	}
	debts := make([]model.Debt, 0, len(ls))
	for _, l := range ls {
		if d, ok := FromLiability(l); ok {
			debts = append(debts, d)
		}
	}
	return debts, nil
}

// Get returns one debt.
func (s *Service) Get(ctx context.Context, userID, debtID string) (model.Debt, error) {
	l, err := s.store.GetLiability(ctx, userID, debtID)
	if err != nil {
		return model.Debt{}, fmt.Errorf("getting debt %s: %w", debtID, err)
	}
	d, ok := FromLiability(l)
	if !ok {
		return model.Debt{}, fmt.Errorf("getting debt %s: %w", debtID, ErrNotADebt)
	}
	return d, nil
}

// Create validates d, computes its minimum payment and stores it.
func (s *Service) Create(ctx context.Context, actor, userID string, d model.Debt) (model.Debt, error) {
	d, err := prepare(d)
	if err != nil {
		return model.Debt{}, err
	}
	d.ID = id.New()

	l := ToLiability(d)
	l.UserID = userID
	l.CreatedAt = s.now().UTC()
	l.UpdatedAt = l.CreatedAt
	if err := s.store.CreateLiability(ctx, l); err != nil {
		return model.Debt{}, fmt.Errorf("creating debt: %w", err)
	}

	s.record(actor, "debt.create", fmt.Sprintf("Created %s %q", DisplayName(d.Kind), d.Name), d.ID)
	return d, nil
}

// Update replaces an existing debt.
func (s *Service) Update(ctx context.Context, actor, userID, debtID string, d model.Debt) (model.Debt, error) {
	existing, err := s.store.GetLiability(ctx, userID, debtID)
	if err != nil {
		return model.Debt{}, fmt.Errorf("updating debt %s: %w", debtID, err)
	}

	d, err = prepare(d)
	if err != nil {
		return model.Debt{}, err
	}
	d.ID = debtID

	l := ToLiability(d)
	l.UserID = userID
	l.CreatedAt = existing.CreatedAt
	l.UpdatedAt = s.now().UTC()
	if err := s.store.UpdateLiability(ctx, l); err != nil {
		return model.Debt{}, fmt.Errorf("updating debt %s: %w", debtID, err)
	}

	s.record(actor, "debt.update", fmt.Sprintf("Updated %s %q", DisplayName(d.Kind), d.Name), d.ID)
	return d, nil
}

// Delete removes a debt.
func (s *Service) Delete(ctx context.Context, actor, userID, debtID string) error {
	d, err := s.Get(ctx, userID, debtID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteLiability(ctx, userID, debtID); err != nil {
		return fmt.Errorf("deleting debt %s: %w", debtID, err)
	}
	s.record(actor, "debt.delete", fmt.Sprintf("Deleted %s %q", DisplayName(d.Kind), d.Name), debtID)
	return nil
}

func (s *Service) record(actor, action, details, recordID string) {
	// Activity is best effort; a failed write must not undo a committed change.
	_ = s.log.Record(activity.Entry{Actor: actor, Action: action, Details: details, RecordID: recordID})
}

// prepare validates d and fills in its minimum payment.
func prepare(d model.Debt) (model.Debt, error) {
	if errs := Validate(d); len(errs) > 0 {
		return model.Debt{}, errs
	}
	d.MinPayment = MinimumPayment(d)
	if d.UserPayment.IsPositive() && d.UserPayment.LessThan(d.MinPayment) {
		return model.Debt{}, ErrPaymentBelowMinimum
	}
	return d, nil
}
