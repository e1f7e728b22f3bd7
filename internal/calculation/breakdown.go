package calculation

import (
	"github.com/rgehrsitz/bdtax/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculateBreakdown splits taxable income across slabs and taxes each share.
// Negative income is treated as zero. Tax is rounded per bracket, so the
// total can differ by a Taka or two from rounding the aggregate.
func CalculateBreakdown(taxableIncome decimal.Decimal, slabs []domain.TaxBracket) []domain.BracketResult {
	income := NonNegative(taxableIncome)

	results := make([]domain.BracketResult, 0, len(slabs))
	for _, slab := range slabs {
		amount := decimal.Zero
		if income.GreaterThan(slab.LowerBound) {
			if slab.Unbounded || income.LessThan(slab.UpperBound) {
				amount = income.Sub(slab.LowerBound)
			} else {
				amount = slab.UpperBound.Sub(slab.LowerBound)
			}
		}
		results = append(results, domain.BracketResult{
			Bracket:       slab,
			TaxableAmount: amount,
			TaxOwed:       RoundTaka(percentOf(amount, slab.RatePercent)),
		})
	}
	return results
}

// TotalTax sums the per-bracket tax of a breakdown
func TotalTax(breakdown []domain.BracketResult) decimal.Decimal {
	return SumBy(breakdown, func(r domain.BracketResult) decimal.Decimal { return r.TaxOwed })
}

// TotalTaxable sums the per-bracket taxable amounts of a breakdown
func TotalTaxable(breakdown []domain.BracketResult) decimal.Decimal {
	return SumBy(breakdown, func(r domain.BracketResult) decimal.Decimal { return r.TaxableAmount })
}
