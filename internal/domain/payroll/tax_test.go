package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRateBrackets(t *testing.T) {
	rules := DefaultTaxRules()

	tests := []struct {
		name  string
		gross string
		want  string
	}{
		{"below minimal salary", "969.99", "0"},
		{"zero gross", "0", "0"},
		{"exactly minimal salary", "970", "0.2"},
		{"mid lower bracket", "3000", "0.2"},
		{"exactly at threshold", "5000", "0.2"},
		{"just above threshold", "5000.01", "0.3"},
		{"far above threshold", "25000", "0.3"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gross := decimal.RequireFromString(tc.gross)
			want := decimal.RequireFromString(tc.want)
			if got := rules.Rate(gross); !got.Equal(want) {
				t.Fatalf("Rate(%s) = %s, want %s", tc.gross, got, want)
			}
		})
	}
}

func TestTaxAppliesRateToWholeGross(t *testing.T) {
	gross := decimal.NewFromInt(6000)
	rate := DefaultTaxRules().Rate(gross)

	got := Tax(gross, rate)
	want := decimal.NewFromInt(1800)
	if !got.Equal(want) {
		t.Fatalf("Tax(%s, %s) = %s, want %s", gross, rate, got, want)
	}
}

func TestSetTaxRules(t *testing.T) {
	defer SetTaxRules(DefaultTaxRules())

	custom := TaxRules{
		MinimalSalary: decimal.NewFromInt(500),
		TaxThreshold:  decimal.NewFromInt(2000),
		LowerRate:     decimal.NewFromFloat(0.10),
		HigherRate:    decimal.NewFromFloat(0.40),
	}
	SetTaxRules(custom)

	if got := CurrentTaxRules().Rate(decimal.NewFromInt(3000)); !got.Equal(custom.HigherRate) {
		t.Fatalf("Rate(3000) under custom rules = %s, want %s", got, custom.HigherRate)
	}
}
