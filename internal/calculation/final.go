package calculation

import (
	"github.com/rgehrsitz/bdtax/internal/domain"
	"github.com/shopspring/decimal"
)

// ResolveFinalTax applies the minimum tax floor, then subtracts tax deducted
// at source and the investment rebate. Payable never goes below zero.
func ResolveFinalTax(calculatedTax, minimumTax, deductedAtSource, investmentRebate decimal.Decimal) domain.FinalTaxResult {
	calculatedTax = NonNegative(calculatedTax)
	minimumTax = NonNegative(minimumTax)
	deductedAtSource = NonNegative(deductedAtSource)
	investmentRebate = NonNegative(investmentRebate)

	totalTax := decimal.Max(calculatedTax, minimumTax)
	payable := NonNegative(totalTax.Sub(deductedAtSource).Sub(investmentRebate))

	return domain.FinalTaxResult{
		TotalTax:              totalTax,
		IsMinimumTaxApplied:   calculatedTax.LessThan(minimumTax),
		MinimumTaxAmount:      minimumTax,
		Payable:               payable,
		TotalDeductedAtSource: deductedAtSource,
		InvestmentRebate:      investmentRebate,
	}
}
