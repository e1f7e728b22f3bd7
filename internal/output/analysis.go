package output

import (
	"fmt"

	"github.com/rgehrsitz/bdtax/internal/domain"
	"github.com/shopspring/decimal"
)

// Summary is the headline of a fiscal-year comparison.
type Summary struct {
	CheaperYear       domain.FiscalYear // empty when both years cost the same
	PayableDifference decimal.Decimal
	PercentageChange  decimal.Decimal
}

// Summarize compares payable tax between the two years
func Summarize(cmp *domain.TaxComparison) Summary {
	if cmp == nil || cmp.Previous == nil || cmp.Current == nil {
		return Summary{}
	}
	s := Summary{PayableDifference: cmp.PayableDifference}
	switch {
	case cmp.PayableDifference.IsNegative():
		s.CheaperYear = cmp.Current.FiscalYear
	case cmp.PayableDifference.IsPositive():
		s.CheaperYear = cmp.Previous.FiscalYear
	}
	base := cmp.Previous.Final.Payable
	if !base.IsZero() {
		s.PercentageChange = cmp.PayableDifference.Div(base).Mul(decimal.NewFromInt(100)).Round(1)
	}
	return s
}

// Sentence renders the summary as one line of plain text
func (s Summary) Sentence(cmp *domain.TaxComparison) string {
	if cmp == nil || cmp.Previous == nil || cmp.Current == nil {
		return ""
	}
	prev, curr := cmp.Previous.FiscalYear.Label(), cmp.Current.FiscalYear.Label()
	switch {
	case s.CheaperYear == "":
		return fmt.Sprintf("Payable tax is the same in %s and %s.", prev, curr)
	case s.PayableDifference.IsPositive():
		return fmt.Sprintf("You pay %s more in %s than in %s.", FormatTaka(s.PayableDifference), curr, prev)
	default:
		return fmt.Sprintf("You pay %s less in %s than in %s.", FormatTaka(s.PayableDifference.Neg()), curr, prev)
	}
}
