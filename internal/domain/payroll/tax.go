package payroll

import "github.com/shopspring/decimal"

// TaxRules holds the bracket parameters used for every salary calculation.
// The whole gross amount is taxed at the single rate of the bracket it falls
// into; there are no marginal bands.
type TaxRules struct {
	MinimalSalary decimal.Decimal
	TaxThreshold  decimal.Decimal
	LowerRate     decimal.Decimal
	HigherRate    decimal.Decimal
}

func DefaultTaxRules() TaxRules {
	return TaxRules{
		MinimalSalary: decimal.NewFromInt(970),
		TaxThreshold:  decimal.NewFromInt(5000),
		LowerRate:     decimal.NewFromFloat(0.20),
		HigherRate:    decimal.NewFromFloat(0.30),
	}
}

// taxRules is set once at startup, before any contract is evaluated.
var taxRules = DefaultTaxRules()

// SetTaxRules replaces the bracket parameters. Call during wiring only;
// contracts read the rules on every calculation.
func SetTaxRules(rules TaxRules) {
	taxRules = rules
}

func CurrentTaxRules() TaxRules {
	return taxRules
}

// Rate returns the tax rate applicable to the given gross salary. Salaries
// below the minimal salary are untaxed.
func (r TaxRules) Rate(grossSalary decimal.Decimal) decimal.Decimal {
	if grossSalary.LessThan(r.MinimalSalary) {
		return decimal.Zero
	}
	if grossSalary.LessThanOrEqual(r.TaxThreshold) {
		return r.LowerRate
	}
	return r.HigherRate
}

// Tax returns the tax amount for a gross salary at the given rate.
func Tax(grossSalary, rate decimal.Decimal) decimal.Decimal {
	return grossSalary.Mul(rate)
}
