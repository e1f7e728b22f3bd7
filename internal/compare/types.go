package compare

import (
	"fmt"

	"github.com/rgehrsitz/bdtax/internal/domain"
	"github.com/rgehrsitz/bdtax/internal/output"
	"github.com/shopspring/decimal"
)

// MetricRow is one line of the side-by-side summary
type MetricRow struct {
	Metric   string          `json:"metric"`
	Previous decimal.Decimal `json:"previous"`
	Current  decimal.Decimal `json:"current"`
	Change   decimal.Decimal `json:"change"`
}

// BracketRow pairs the n-th slab of each year. Either side is nil when one
// schedule has more slabs than the other.
type BracketRow struct {
	Index    int                   `json:"index"`
	Previous *domain.BracketResult `json:"previous,omitempty"`
	Current  *domain.BracketResult `json:"current,omitempty"`
}

// AlternativeResult is a what-if variant of the base input
type AlternativeResult struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Comparison  *domain.TaxComparison `json:"-"`

	PreviousPayable decimal.Decimal `json:"previousPayable"`
	CurrentPayable  decimal.Decimal `json:"currentPayable"`

	// Current-year payable minus the base's current-year payable
	PayableDiffFromBase decimal.Decimal `json:"payableDiffFromBase"`
}

// ComparisonSet is everything needed to present FY2024-25 against FY2025-26
type ComparisonSet struct {
	PreviousYear    domain.FiscalYear     `json:"previousYear"`
	CurrentYear     domain.FiscalYear     `json:"currentYear"`
	InputPath       string                `json:"inputPath,omitempty"`
	Base            *domain.TaxComparison `json:"base"`
	Metrics         []MetricRow           `json:"metrics"`
	Brackets        []BracketRow          `json:"brackets"`
	Alternatives    []AlternativeResult   `json:"alternatives"`
	Recommendations []string              `json:"recommendations"`
}

// BuildMetrics extracts the summary rows of a comparison
func BuildMetrics(cmp *domain.TaxComparison) []MetricRow {
	if cmp == nil || cmp.Previous == nil || cmp.Current == nil {
		return nil
	}
	metrics := []struct {
		name string
		get  func(*domain.YearResult) decimal.Decimal
	}{
		{"Taxable income", func(r *domain.YearResult) decimal.Decimal { return r.Income.TaxableIncome }},
		{"Tax-free threshold", func(r *domain.YearResult) decimal.Decimal { return r.Threshold }},
		{"Calculated tax", func(r *domain.YearResult) decimal.Decimal { return r.CalculatedTax }},
		{"Minimum tax", func(r *domain.YearResult) decimal.Decimal { return r.MinimumTax }},
		{"Total tax", func(r *domain.YearResult) decimal.Decimal { return r.Final.TotalTax }},
		{"Investment rebate", func(r *domain.YearResult) decimal.Decimal { return r.Final.InvestmentRebate }},
		{"Tax deducted at source", func(r *domain.YearResult) decimal.Decimal { return r.Final.TotalDeductedAtSource }},
		{"Payable", func(r *domain.YearResult) decimal.Decimal { return r.Final.Payable }},
	}

	rows := make([]MetricRow, 0, len(metrics))
	for _, m := range metrics {
		prev, curr := m.get(cmp.Previous), m.get(cmp.Current)
		rows = append(rows, MetricRow{Metric: m.name, Previous: prev, Current: curr, Change: curr.Sub(prev)})
	}
	return rows
}

// BuildBracketRows lines up the slabs of both years by position
func BuildBracketRows(cmp *domain.TaxComparison) []BracketRow {
	if cmp == nil || cmp.Previous == nil || cmp.Current == nil {
		return nil
	}
	n := max(len(cmp.Previous.Breakdown), len(cmp.Current.Breakdown))
	rows := make([]BracketRow, n)
	for i := 0; i < n; i++ {
		rows[i].Index = i
		if i < len(cmp.Previous.Breakdown) {
			rows[i].Previous = &cmp.Previous.Breakdown[i]
		}
		if i < len(cmp.Current.Breakdown) {
			rows[i].Current = &cmp.Current.Breakdown[i]
		}
	}
	return rows
}

// GenerateRecommendations creates plain-language notes about the comparison
func GenerateRecommendations(set *ComparisonSet) []string {
	recommendations := []string{}
	if set == nil || set.Base == nil || set.Base.Previous == nil || set.Base.Current == nil {
		return recommendations
	}
	prev, curr := set.Base.Previous, set.Base.Current

	if s := output.Summarize(set.Base); s.CheaperYear != "" {
		recommendations = append(recommendations, s.Sentence(set.Base))
	}

	if diff := curr.Threshold.Sub(prev.Threshold); !diff.IsZero() {
		direction := "higher"
		if diff.IsNegative() {
			direction = "lower"
		}
		recommendations = append(recommendations, fmt.Sprintf("The %s tax-free threshold is %s %s (%s).",
			curr.FiscalYear.Label(), output.FormatTaka(diff.Abs()), direction, output.FormatTaka(curr.Threshold)))
	}

	for _, r := range []*domain.YearResult{prev, curr} {
		if r.Final.IsMinimumTaxApplied {
			recommendations = append(recommendations, fmt.Sprintf("Minimum tax of %s applies in %s (calculated tax %s).",
				output.FormatTaka(r.MinimumTax), r.FiscalYear.Label(), output.FormatTaka(r.CalculatedTax)))
		}
	}

	if headroom := curr.Rebate.Ceiling.Sub(curr.Rebate.QualifyingInvestment); headroom.IsPositive() && curr.Final.Payable.IsPositive() {
		extra := headroom.Mul(curr.Rebate.RatePercent).Div(decimal.NewFromInt(100)).Round(0)
		extra = decimal.Min(extra, curr.Final.Payable)
		if extra.IsPositive() {
			recommendations = append(recommendations, fmt.Sprintf("Investing up to %s more could cut %s payable tax by up to %s.",
				output.FormatTaka(headroom), curr.FiscalYear.Label(), output.FormatTaka(extra)))
		}
	}

	var best *AlternativeResult
	for i := range set.Alternatives {
		alt := &set.Alternatives[i]
		if alt.PayableDiffFromBase.IsNegative() && (best == nil || alt.PayableDiffFromBase.LessThan(best.PayableDiffFromBase)) {
			best = alt
		}
	}
	if best != nil {
		recommendations = append(recommendations, fmt.Sprintf("Lowest payable: %s saves %s in %s.",
			best.Name, output.FormatTaka(best.PayableDiffFromBase.Neg()), curr.FiscalYear.Label()))
	}

	return recommendations
}
