package networth

import (
	"context"
	"errors"
	"testing"

	"github.com/maple-budget/maple/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sheet() ([]model.Asset, []model.Liability) {
	assets := []model.Asset{
		{Type: model.AssetHome, Name: "Condo", Value: dec("450000")},
		{Type: model.AssetSavings, Name: "EQ", Value: dec("12000")},
		{Type: model.AssetChecking, Name: "Chequing", Value: dec("3000")},
		{Type: model.AssetRetirement, Name: "RRSP", Value: dec("40000")},
		{Type: model.AssetSavings, Name: "TFSA cash", Value: dec("5000")},
	}
	liabilities := []model.Liability{
		{Type: model.LiabilityMortgage, Name: "Mortgage", Balance: dec("350000"), MinimumPayment: dec("2000")},
		{Type: model.LiabilityCreditCard, Name: "Visa", Balance: dec("2000"), MinimumPayment: dec("60")},
	}
	return assets, liabilities
}

func TestSummarize(t *testing.T) {
	assets, liabilities := sheet()
	s := Summarize(assets, liabilities, dec("6000"), dec("4000"))

	assert.True(t, dec("510000").Equal(s.TotalAssets))
	assert.True(t, dec("352000").Equal(s.TotalLiabilities))
	assert.True(t, dec("158000").Equal(s.NetWorth))
	assert.True(t, dec("20000").Equal(s.LiquidAssets))
	assert.True(t, dec("17000").Equal(s.AssetsByType[model.AssetSavings]))
	assert.True(t, dec("2000").Equal(s.LiabilitiesByType[model.LiabilityCreditCard]))
	assert.True(t, dec("2060").Equal(s.MonthlyDebtPayments))
	assert.True(t, dec("0.3433").Equal(s.DebtToIncomeRatio), s.DebtToIncomeRatio.String())
	assert.True(t, dec("5").Equal(s.LiquidityRatio))
	assert.Equal(t, StatusHealthy, s.Status)
}

func TestSummarizeStatus(t *testing.T) {
	assets, liabilities := sheet()

	tests := []struct {
		name     string
		assets   []model.Asset
		income   string
		expenses string
		want     string
	}{
		{"negative net worth", assets[1:2], "6000", "4000", StatusCritical},
		{"debt heavy", assets, "5000", "4000", StatusConcerning},
		{"thin cushion", assets, "6000", "8000", StatusImproving},
		{"healthy", assets, "6000", "4000", StatusHealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(tt.assets, liabilities, dec(tt.income), dec(tt.expenses))
			assert.Equal(t, tt.want, s.Status)
		})
	}
}

func TestSummarizeZeroIncome(t *testing.T) {
	s := Summarize(nil, nil, decimal.Zero, decimal.Zero)
	assert.True(t, s.DebtToIncomeRatio.IsZero())
	assert.True(t, s.LiquidityRatio.IsZero())
	// no savings at all is not yet healthy
	assert.Equal(t, StatusImproving, s.Status)
}

func TestValidateAsset(t *testing.T) {
	errs := ValidateAsset(model.Asset{Type: "boat", Value: dec("-1")})
	require.Len(t, errs, 3)
	assert.Equal(t, "type", errs[0].Field)
	assert.Equal(t, "name", errs[1].Field)
	assert.Equal(t, "value", errs[2].Field)

	assert.Empty(t, ValidateAsset(model.Asset{Type: model.AssetVehicle, Name: "Civic", Value: dec("18000")}))
}

func TestValidateLiability(t *testing.T) {
	errs := ValidateLiability(model.Liability{Type: model.LiabilityMortgage, Name: "House", Balance: dec("-5"), AmortizationYears: 45})
	require.Len(t, errs, 2)
	assert.Equal(t, "balance", errs[0].Field)
	assert.Equal(t, "amortizationYears", errs[1].Field)

	errs = ValidateLiability(model.Liability{Type: model.LiabilityCreditCard, Name: "Visa", Balance: dec("1e50000"), CreditLimit: dec("1e-20")})
	require.Len(t, errs, 2)
	assert.Equal(t, "Balance is out of range", errs[0].Message)
	assert.Equal(t, "creditLimit", errs[1].Field)
}

func TestValidateAssetOutOfRange(t *testing.T) {
	errs := ValidateAsset(model.Asset{Type: model.AssetVehicle, Name: "Civic", Value: dec("1e200000")})
	require.Len(t, errs, 1)
	assert.Equal(t, "Value is out of range", errs[0].Message)
}

type fakeStore struct {
	assets      map[string]model.Asset
	liabilities map[string]model.Liability
}

var errMissing = errors.New("not found")

func newFakeStore() *fakeStore {
	return &fakeStore{assets: map[string]model.Asset{}, liabilities: map[string]model.Liability{}}
}

func (f *fakeStore) ListAssets(_ context.Context, userID string) ([]model.Asset, error) {
	var out []model.Asset
	for _, a := range f.assets {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) GetAsset(_ context.Context, userID, id string) (model.Asset, error) {
	a, ok := f.assets[id]
	if !ok || a.UserID != userID {
		return model.Asset{}, errMissing
	}
	return a, nil
}

func (f *fakeStore) CreateAsset(_ context.Context, a model.Asset) error {
	f.assets[a.ID] = a
	return nil
}

func (f *fakeStore) UpdateAsset(_ context.Context, a model.Asset) error {
	f.assets[a.ID] = a
	return nil
}

func (f *fakeStore) DeleteAsset(_ context.Context, userID, id string) error {
	if a, ok := f.assets[id]; !ok || a.UserID != userID {
		return errMissing
	}
	delete(f.assets, id)
	return nil
}

func (f *fakeStore) ListLiabilities(_ context.Context, userID string) ([]model.Liability, error) {
	var out []model.Liability
	for _, l := range f.liabilities {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeStore) GetLiability(_ context.Context, userID, id string) (model.Liability, error) {
	l, ok := f.liabilities[id]
	if !ok || l.UserID != userID {
		return model.Liability{}, errMissing
	}
	return l, nil
}

func (f *fakeStore) CreateLiability(_ context.Context, l model.Liability) error {
	f.liabilities[l.ID] = l
	return nil
}

func (f *fakeStore) UpdateLiability(_ context.Context, l model.Liability) error {
	f.liabilities[l.ID] = l
	return nil
}

func (f *fakeStore) DeleteLiability(_ context.Context, userID, id string) error {
	if l, ok := f.liabilities[id]; !ok || l.UserID != userID {
		return errMissing
	}
	delete(f.liabilities, id)
	return nil
}

func TestServiceAssets(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore(), nil)

	a, err := svc.CreateAsset(ctx, "cli", "u1", model.Asset{Type: model.AssetSavings, Name: "EQ", Value: dec("1000")})
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)

	a.Value = dec("1500")
	updated, err := svc.UpdateAsset(ctx, "cli", "u1", a.ID, a)
	require.NoError(t, err)
	assert.True(t, dec("1500").Equal(updated.Value))
	assert.Equal(t, a.CreatedAt, updated.CreatedAt)

	_, err = svc.Asset(ctx, "u2", a.ID)
	assert.ErrorIs(t, err, errMissing)

	s, err := svc.Summary(ctx, "u1", dec("3000"), dec("500"))
	require.NoError(t, err)
	assert.True(t, dec("3").Equal(s.LiquidityRatio))

	require.NoError(t, svc.DeleteAsset(ctx, "cli", "u1", a.ID))
	as, err := svc.Assets(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, as)
}

func TestServiceUpdateLiabilityKeepsDebtDetails(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.liabilities["l1"] = model.Liability{
		ID: "l1", UserID: "u1", Type: model.LiabilityCreditCard, Name: "Visa", Balance: dec("900"),
		Details: model.LiabilityDetails{DebtKind: model.DebtCreditCard, CalculatedMinPayment: dec("27")},
	}
	svc := NewService(store, nil)

	l, err := svc.UpdateLiability(ctx, "cli", "u1", "l1", model.Liability{Type: model.LiabilityCreditCard, Name: "Visa", Balance: dec("800")})
	require.NoError(t, err)
	assert.Equal(t, model.DebtCreditCard, l.Details.DebtKind)

	_, err = svc.CreateLiability(ctx, "cli", "u1", model.Liability{Type: "loan-shark"})
	var verrs model.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}
