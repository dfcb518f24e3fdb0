package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func f64(d decimal.Decimal) float64 {
	v, _ := d.Float64()
	return v
}

func TestPeriodicRate(t *testing.T) {
	assert.True(t, PeriodicRate(dec("12"), 12, CompoundPeriodic).Equal(dec("0.01")))
	assert.True(t, PeriodicRate(dec("0"), 12, CompoundSemiAnnual).IsZero())
	assert.True(t, PeriodicRate(dec("5"), 0, CompoundPeriodic).IsZero())

	semi := PeriodicRate(dec("5"), 12, CompoundSemiAnnual)
	assert.InDelta(t, 0.0041239154651442345, f64(semi), 1e-12)
	// semi-annual compounding is cheaper than monthly nominal
	assert.True(t, semi.LessThan(PeriodicRate(dec("5"), 12, CompoundPeriodic)))
}

func TestPow(t *testing.T) {
	assert.True(t, Pow(dec("2"), 10).Equal(dec("1024")))
	assert.True(t, Pow(dec("1.5"), 0).Equal(dec("1")))
	assert.InDelta(t, 1.628894626777442, f64(Pow(dec("1.05"), 10)), 1e-12)
}

func TestPayment(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		annual    string
		periods   int
		comp      Compounding
		want      string
	}{
		{"car loan", "10000", "8", 36, CompoundPeriodic, "313.36"},
		{"student loan", "25000", "6", 120, CompoundPeriodic, "277.55"},
		{"mortgage", "400000", "5", 300, CompoundSemiAnnual, "2326.42"},
		{"interest free", "1200", "0", 12, CompoundPeriodic, "100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := PeriodicRate(dec(tt.annual), 12, tt.comp)
			got := Payment(dec(tt.principal), r, tt.periods)
			assert.True(t, dec(tt.want).Equal(got), "got %s", got)
		})
	}
	assert.True(t, Payment(dec("0"), dec("0.01"), 12).IsZero())
}

func TestBalance(t *testing.T) {
	r := PeriodicRate(dec("8"), 12, CompoundPeriodic)
	got := Balance(dec("10000"), r, dec("313.36"), 12)
	assert.InDelta(t, 6928.69, f64(got), 0.01)
	assert.True(t, Balance(dec("1000"), decimal.Zero, dec("100"), 20).IsZero())
}

func TestFutureValueAndGrow(t *testing.T) {
	assert.InDelta(t, 12577.89, f64(FutureValueAnnuity(dec("1000"), dec("0.05"), 10)), 0.01)
	assert.True(t, FutureValueAnnuity(dec("1000"), decimal.Zero, 10).Equal(dec("10000")))
	assert.InDelta(t, 1628.89, f64(Grow(dec("1000"), dec("0.05"), 10)), 0.01)
}

func TestScheduleEndsAtZero(t *testing.T) {
	r := PeriodicRate(dec("8"), 12, CompoundPeriodic)
	rows := Schedule(dec("10000"), r, dec("313.36"), 36)
	require.Len(t, rows, 36)

	last := rows[len(rows)-1]
	assert.True(t, last.Balance.IsZero())

	principal := decimal.Zero
	for _, row := range rows {
		principal = principal.Add(row.Principal)
	}
	assert.True(t, principal.Equal(dec("10000")))

	paid, interest := Totals(rows)
	assert.True(t, paid.Sub(interest).Equal(dec("10000")))
	assert.InDelta(t, 1280.96, f64(interest), 1.0)
}

func TestScheduleTrimsFinalPayment(t *testing.T) {
	rows := Schedule(dec("1000"), decimal.Zero, dec("83.33"), 12)
	require.Len(t, rows, 12)
	assert.True(t, rows[11].Payment.Equal(dec("83.37")))
	assert.True(t, rows[11].Balance.IsZero())
}

func TestScheduleStopsWhenPaymentTooSmall(t *testing.T) {
	rows := Schedule(dec("10000"), dec("0.02"), dec("100"), 12)
	assert.Empty(t, rows)
}

func TestAnnuity(t *testing.T) {
	assert.InDelta(t, 0.0313363655, f64(Annuity(PeriodicRate(dec("8"), 12, CompoundPeriodic), 36)), 1e-9)
	assert.True(t, Annuity(decimal.Zero, 4).Equal(dec("0.25")))
	assert.True(t, Annuity(dec("0.01"), 0).IsZero())
}
