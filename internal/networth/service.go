package networth

import (
	"context"
	"fmt"
	"time"

	"github.com/maple-budget/maple/internal/activity"
	"github.com/maple-budget/maple/internal/id"
	"github.com/maple-budget/maple/internal/model"
	"github.com/shopspring/decimal"
)

// Store persists assets and liabilities scoped to a user.
type Store interface {
	ListAssets(ctx context.Context, userID string) ([]model.Asset, error)
	GetAsset(ctx context.Context, userID, id string) (model.Asset, error)
	CreateAsset(ctx context.Context, a model.Asset) error
	UpdateAsset(ctx context.Context, a model.Asset) error
	DeleteAsset(ctx context.Context, userID, id string) error

	ListLiabilities(ctx context.Context, userID string) ([]model.Liability, error)
	GetLiability(ctx context.Context, userID, id string) (model.Liability, error)
	CreateLiability(ctx context.Context, l model.Liability) error
	UpdateLiability(ctx context.Context, l model.Liability) error
	DeleteLiability(ctx context.Context, userID, id string) error
}

// Service manages a user's balance sheet.
type Service struct {
	store Store
	log   activity.Recorder
	now   func() time.Time
}

// NewService creates a Service. A nil recorder discards activity.
func NewService(store Store, rec activity.Recorder) *Service {
	if rec == nil {
		rec = activity.Nop{}
	}
	return &Service{store: store, log: rec, now: time.Now}
}

// Assets lists the user's assets.
func (s *Service) Assets(ctx context.Context, userID string) ([]model.Asset, error) {
	as, err := s.store.ListAssets(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}
	return as, nil
}

// Asset returns one asset.
func (s *Service) Asset(ctx context.Context, userID, assetID string) (model.Asset, error) {
	a, err := s.store.GetAsset(ctx, userID, assetID)
	if err != nil {
		return model.Asset{}, fmt.Errorf("getting asset %s: %w", assetID, err)
	}
	return a, nil
}

// CreateAsset validates and stores a new asset.
func (s *Service) CreateAsset(ctx context.Context, actor, userID string, a model.Asset) (model.Asset, error) {
	if errs := ValidateAsset(a); len(errs) > 0 {
		return model.Asset{}, errs
	}
	a.ID = id.New()
	a.UserID = userID
	a.CreatedAt = s.now().UTC()
	a.UpdatedAt = a.CreatedAt
	if err := s.store.CreateAsset(ctx, a); err != nil {
		return model.Asset{}, fmt.Errorf("creating asset: %w", err)
	}
	s.record(actor, "asset.create", fmt.Sprintf("Added %s asset %q", a.Type, a.Name), a.ID)
	return a, nil
}

// UpdateAsset replaces an existing asset.
func (s *Service) UpdateAsset(ctx context.Context, actor, userID, assetID string, a model.Asset) (model.Asset, error) {
	existing, err := s.store.GetAsset(ctx, userID, assetID)
	if err != nil {
		return model.Asset{}, fmt.Errorf("updating asset %s: %w", assetID, err)
	}
	if errs := ValidateAsset(a); len(errs) > 0 {
		return model.Asset{}, errs
	}
	a.ID = assetID
	a.UserID = userID
	a.CreatedAt = existing.CreatedAt
	a.UpdatedAt = s.now().UTC()
	if err := s.store.UpdateAsset(ctx, a); err != nil {
		return model.Asset{}, fmt.Errorf("updating asset %s: %w", assetID, err)
	}
	s.record(actor, "asset.update", fmt.Sprintf("Updated %s asset %q", a.Type, a.Name), a.ID)
	return a, nil
}

// DeleteAsset removes an asset.
func (s *Service) DeleteAsset(ctx context.Context, actor, userID, assetID string) error {
	if err := s.store.DeleteAsset(ctx, userID, assetID); err != nil {
		return fmt.Errorf("deleting asset %s: %w", assetID, err)
	}
	s.record(actor, "asset.delete", "Deleted asset", assetID)
	return nil
}

// Liabilities lists every liability, including debts.
func (s *Service) Liabilities(ctx context.Context, userID string) ([]model.Liability, error) {
	ls, err := s.store.ListLiabilities(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing liabilities: %w", err)
	}
	return ls, nil
}

// Liability returns one liability.
func (s *Service) Liability(ctx context.Context, userID, liabilityID string) (model.Liability, error) {
	l, err := s.store.GetLiability(ctx, userID, liabilityID)
	if err != nil {
		return model.Liability{}, fmt.Errorf("getting liability %s: %w", liabilityID, err)
	}
	return l, nil
}

// CreateLiability validates and stores a new liability.
func (s *Service) CreateLiability(ctx context.Context, actor, userID string, l model.Liability) (model.Liability, error) {
	if errs := ValidateLiability(l); len(errs) > 0 {
		return model.Liability{}, errs
	}
	l.ID = id.New()
	l.UserID = userID
	l.CreatedAt = s.now().UTC()
	l.UpdatedAt = l.CreatedAt
	if err := s.store.CreateLiability(ctx, l); err != nil {
		return model.Liability{}, fmt.Errorf("creating liability: %w", err)
	}
	s.record(actor, "liability.create", fmt.Sprintf("Added %s liability %q", l.Type, l.Name), l.ID)
	return l, nil
}

// UpdateLiability replaces an existing liability, keeping any debt details it carries.
func (s *Service) UpdateLiability(ctx context.Context, actor, userID, liabilityID string, l model.Liability) (model.Liability, error) {
	existing, err := s.store.GetLiability(ctx, userID, liabilityID)
	if err != nil {
		return model.Liability{}, fmt.Errorf("updating liability %s: %w", liabilityID, err)
	}
	if errs := ValidateLiability(l); len(errs) > 0 {
		return model.Liability{}, errs
	}
	l.ID = liabilityID
	l.UserID = userID
	l.CreatedAt = existing.CreatedAt
	l.UpdatedAt = s.now().UTC()
	if l.Details.DebtKind == "" {
		l.Details = existing.Details
	}
	if err := s.store.UpdateLiability(ctx, l); err != nil {
		return model.Liability{}, fmt.Errorf("updating liability %s: %w", liabilityID, err)
	}
	s.record(actor, "liability.update", fmt.Sprintf("Updated %s liability %q", l.Type, l.Name), l.ID)
	return l, nil
}

// DeleteLiability removes a liability.
func (s *Service) DeleteLiability(ctx context.Context, actor, userID, liabilityID string) error {
	if err := s.store.DeleteLiability(ctx, userID, liabilityID); err != nil {
		return fmt.Errorf("deleting liability %s: %w", liabilityID, err)
	}
	s.record(actor, "liability.delete", "Deleted liability", liabilityID)
	return nil
}

// Summary loads the balance sheet and summarizes it against monthly income and expenses.
func (s *Service) Summary(ctx context.Context, userID string, monthlyIncome, monthlyExpenses decimal.Decimal) (Summary, error) {
	assets, err := s.Assets(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	liabilities, err := s.Liabilities(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(assets, liabilities, monthlyIncome, monthlyExpenses), nil
}

func (s *Service) record(actor, action, details, recordID string) {
	_ = s.log.Record(activity.Entry{Actor: actor, Action: action, Details: details, RecordID: recordID})
}
