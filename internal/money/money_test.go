package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1234.56", "$1,234.56"},
		{"0", "$0.00"},
		{"1000000", "$1,000,000.00"},
		{"12.345", "$12.35"},
		{"-50", "-$50.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(decimal.RequireFromString(tt.in)), tt.in)
	}
}

func TestCents(t *testing.T) {
	assert.Equal(t, int64(1235), Cents(decimal.RequireFromString("12.345")))
	assert.Equal(t, "12.5%", Percent(decimal.RequireFromString("12.46")))
}

func TestInRange(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"0", true},
		{"1234.56", true},
		{"-1000000000", true},
		{"1e9", true},
		{"1000000000.01", false},
		{"1e10", false},
		{"1e200000", false},
		{"-1e50000", false},
		{"0.0000000001", true},
		{"1e-11", false},
		{"1e-200000", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, InRange(decimal.RequireFromString(tt.in)), tt.in)
	}
}
