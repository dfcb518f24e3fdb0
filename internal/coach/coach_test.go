package coach

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maple-budget/maple/internal/activity"
	"github.com/maple-budget/maple/internal/model"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func budgetOf(income, expenses string) *model.Budget {
	return &model.Budget{Name: "Home", Province: model.ProvinceON, NetIncome: dec(income), TotalExpenses: dec(expenses)}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name        string
		assets      []model.Asset
		liabilities []model.Liability
		budget      *model.Budget
		want        int
		severity    model.Severity
	}{
		{
			name:     "nothing recorded",
			want:     7,
			severity: model.SeverityGood,
		},
		{
			name: "healthy saver",
			assets: []model.Asset{
				{Type: model.AssetSavings, Value: dec("20000")},
				{Type: model.AssetInvestment, Value: dec("80000")},
			},
			budget:   budgetOf("6000", "3000"),
			want:     9,
			severity: model.SeverityExcellent,
		},
		{
			name: "carrying a card",
			assets: []model.Asset{
				{Type: model.AssetChecking, Value: dec("15000")},
			},
			liabilities: []model.Liability{
				{Type: model.LiabilityCreditCard, Balance: dec("1000"), InterestRate: dec("19.99")},
			},
			budget:   budgetOf("5000", "4000"),
			want:     4,
			severity: model.SeverityConcerning,
		},
		{
			name: "underwater",
			liabilities: []model.Liability{
				{Type: model.LiabilityCreditCard, Balance: dec("12000"), InterestRate: dec("21.99")},
			},
			budget:   budgetOf("3000", "3500"),
			want:     0,
			severity: model.SeverityDisaster,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := NewSnapshot(model.User{ID: "u1"}, tt.assets, tt.liabilities, tt.budget)
			got := Score(snap)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.severity, SeverityFor(got))
		})
	}
}

func TestSeverityFor(t *testing.T) {
	want := map[int]model.Severity{
		10: model.SeverityExcellent, 8: model.SeverityExcellent,
		7: model.SeverityGood, 6: model.SeverityGood,
		5: model.SeverityConcerning, 4: model.SeverityConcerning,
		3: model.SeverityCritical, 2: model.SeverityCritical,
		1: model.SeverityDisaster, 0: model.SeverityDisaster,
	}
	for score, sev := range want {
		assert.Equal(t, sev, SeverityFor(score), "score %d", score)
	}
}

func TestNewSnapshot_Totals(t *testing.T) {
	snap := NewSnapshot(model.User{ID: "u1"},
		[]model.Asset{
			{Type: model.AssetHome, Value: dec("500000")},
			{Type: model.AssetSavings, Value: dec("8000")},
		},
		[]model.Liability{
			{Type: model.LiabilityMortgage, Balance: dec("400000"), InterestRate: dec("5.1")},
			{Type: model.LiabilityLineOfCredit, Balance: dec("5000"), InterestRate: dec("15")},
			{Type: model.LiabilityCreditCard, Balance: dec("2500"), InterestRate: dec("20.99")},
		},
		budgetOf("7000", "7200"))

	tot := snap.Totals
	assert.True(t, dec("508000").Equal(tot.TotalAssets))
	assert.True(t, dec("407500").Equal(tot.TotalLiabilities))
	assert.True(t, dec("100500").Equal(tot.NetWorth))
	assert.True(t, dec("8000").Equal(tot.EmergencyFund))
	assert.True(t, dec("2500").Equal(tot.CreditCardDebt))
	// 15% exactly is not high interest
	assert.True(t, dec("2500").Equal(tot.HighInterestDebt))
	assert.True(t, dec("-200").Equal(tot.MonthlySurplus))
}

func TestContextText(t *testing.T) {
	snap := NewSnapshot(model.User{ID: "u1", Email: "sam@example.com", Name: "Sam"},
		[]model.Asset{{Type: model.AssetSavings, Name: "EQ Bank", Value: dec("12500")}},
		[]model.Liability{{
			Type: model.LiabilityCreditCard, Name: "Visa", Balance: dec("2000"),
			InterestRate: dec("19.99"), MinimumPayment: dec("60"), CreditLimit: dec("5000"),
		}},
		budgetOf("6000", "4500.5"))

	text := ContextText(snap)
	for _, want := range []string{
		"User: Sam",
		"- Monthly Net Income: $6,000.00",
		"- Monthly Surplus/Deficit: $1,499.50",
		"- Province: Ontario",
		"ASSETS (Total: $12,500.00):",
		"- EQ Bank (savings): $12,500.00",
		"- Visa (credit_card): $2,000.00 at 19.99% APR, Min Payment: $60.00",
		"NET WORTH: $10,500.00",
		"- Visa: $2,000.00 at 19.99%",
		"- Visa: $2,000.00 (40.0% utilization)",
	} {
		assert.Contains(t, text, want)
	}
}

func TestContextText_Empty(t *testing.T) {
	text := ContextText(NewSnapshot(model.User{Email: "sam@example.com"}, nil, nil, nil))
	assert.Contains(t, text, "User: sam@example.com")
	assert.Contains(t, text, "- Province: Unknown")
	assert.Contains(t, text, "- No assets recorded")
	assert.Contains(t, text, "- No liabilities recorded")
	assert.Contains(t, text, "- None detected")
	assert.Contains(t, text, "- No credit card debt")
}

func TestParseRecommendations(t *testing.T) {
	fenced := "```json\n{\"overallAssessment\":\"Fine\",\"actionPlan\":[\"Save\"],\"coachQuotes\":[\"Budget.\"]}\n```"
	r, err := ParseRecommendations(fenced)
	require.NoError(t, err)
	assert.Equal(t, "Fine", r.OverallAssessment)
	assert.Equal(t, []string{"Save"}, r.ActionPlan)
	assert.Equal(t, []string{"Budget."}, r.Quotes)

	_, err = ParseRecommendations("I think you are doing great!")
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = ParseRecommendations(`{"actionPlan":[]}`)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

type fakeStore struct {
	mu          sync.Mutex
	assets      []model.Asset
	liabilities []model.Liability
	budgets     []model.Budget
	audits      []model.Audit
	err         error
}

func (f *fakeStore) ListAssets(context.Context, string) ([]model.Asset, error) {
	return f.assets, f.err
}

func (f *fakeStore) ListLiabilities(context.Context, string) ([]model.Liability, error) {
	return f.liabilities, nil
}

func (f *fakeStore) ListBudgets(context.Context, string) ([]model.Budget, error) {
	return f.budgets, nil
}

func (f *fakeStore) CreateAudit(_ context.Context, a model.Audit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.audits = append(f.audits, a)
	return nil
}

func (f *fakeStore) ListAudits(context.Context, string) ([]model.Audit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.audits, nil
}

func (f *fakeStore) CompleteAudit(_ context.Context, _, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.audits {
		if f.audits[i].ID == id {
			f.audits[i].Completed = true
			return nil
		}
	}
	return errors.New("no such audit")
}

type fakeGenerator struct {
	answer string
	err    error
	got    []Request
}

func (g *fakeGenerator) Generate(_ context.Context, req Request) (string, error) {
	g.got = append(g.got, req)
	return g.answer, g.err
}

type recorder struct{ actions []string }

func (r *recorder) Record(e activity.Entry) error {
	r.actions = append(r.actions, e.Action)
	return nil
}

const goodAnswer = `{
  "overallAssessment": "You earn well and spend less. Keep going.",
  "immediateReaction": "Not bad.",
  "debtAnalysis": "No debt.",
  "actionPlan": ["Max the TFSA by December"],
  "coachQuotes": ["Pay yourself first."]
}`

func TestService_Audit(t *testing.T) {
	store := &fakeStore{
		assets:  []model.Asset{{Type: model.AssetSavings, Name: "HISA", Value: dec("20000")}},
		budgets: []model.Budget{*budgetOf("6000", "3000"), *budgetOf("1000", "5000")},
	}
	gen := &fakeGenerator{answer: goodAnswer}
	rec := &recorder{}
	svc := NewService(store, gen, rec, nil, 0)
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	a, err := svc.Audit(context.Background(), "sam@example.com", model.User{ID: "u1", Email: "sam@example.com"})
	require.NoError(t, err)

	// latest budget is the first one listed
	assert.Equal(t, 8, a.Score)
	assert.Equal(t, model.SeverityExcellent, a.Severity)
	assert.Equal(t, "Not bad.", a.Recommendations.ImmediateReaction)
	assert.Equal(t, now.AddDate(0, 0, 30), a.FollowUpDate)
	assert.False(t, a.Completed)
	assert.NotEmpty(t, a.ID)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(a.Snapshot, &snap))
	assert.True(t, dec("20000").Equal(snap.Totals.EmergencyFund))

	require.Len(t, gen.got, 1)
	assert.True(t, gen.got[0].JSON)
	assert.Equal(t, Persona, gen.got[0].System)
	assert.Contains(t, gen.got[0].Prompt, "CURRENT SCORE: 8/10 (EXCELLENT)")

	audits, err := svc.Audits(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, audits, 1)

	require.NoError(t, svc.Complete(context.Background(), "sam@example.com", "u1", a.ID))
	assert.True(t, store.audits[0].Completed)
	assert.Error(t, svc.Complete(context.Background(), "sam@example.com", "u1", "missing"))
	assert.Equal(t, []string{"coach.audit", "coach.complete"}, rec.actions)
}

func TestService_AuditInvalidAnswer(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, &fakeGenerator{answer: "Sure! Here is your audit."}, nil, nil, 0)
	_, err := svc.Audit(context.Background(), "cli", model.User{ID: "u1"})
	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.Empty(t, store.audits)
}

func TestService_AuditLoadError(t *testing.T) {
	boom := errors.New("disk on fire")
	svc := NewService(&fakeStore{err: boom}, &fakeGenerator{answer: goodAnswer}, nil, nil, 0)
	_, err := svc.Audit(context.Background(), "cli", model.User{ID: "u1"})
	assert.ErrorIs(t, err, boom)
}

func TestService_Ask(t *testing.T) {
	store := &fakeStore{budgets: []model.Budget{*budgetOf("6000", "3000")}}
	gen := &fakeGenerator{answer: "Pay off the card."}
	svc := NewService(store, gen, nil, nil, 0)
	user := model.User{ID: "u1", Email: "sam@example.com"}

	_, err := svc.Ask(context.Background(), user, "   ", true)
	assert.ErrorIs(t, err, ErrEmptyMessage)

	answer, err := svc.Ask(context.Background(), user, "Should I buy a boat?", true)
	require.NoError(t, err)
	assert.Equal(t, "Pay off the card.", answer)
	require.Len(t, gen.got, 1)
	assert.Equal(t, "Should I buy a boat?", gen.got[0].Prompt)
	assert.Contains(t, gen.got[0].System, "FINANCIAL CONTEXT FOR ANALYSIS")
	assert.False(t, gen.got[0].JSON)

	_, err = svc.Ask(context.Background(), user, "Hi", false)
	require.NoError(t, err)
	assert.Equal(t, Persona, gen.got[1].System)
}
