package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/bdtax/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleFormatter renders the comparison as a plain-text report.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(cmp *domain.TaxComparison) ([]byte, error) {
	if cmp == nil || cmp.Previous == nil || cmp.Current == nil {
		return nil, fmt.Errorf("comparison is incomplete")
	}
	prev, curr := cmp.Previous, cmp.Current

	var buf bytes.Buffer
	fmt.Fprintln(&buf, "BANGLADESH INCOME TAX COMPARISON")
	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	fmt.Fprintf(&buf, "%-26s %14s %14s %14s\n", "", prev.FiscalYear.Label(), curr.FiscalYear.Label(), "Difference")

	row := func(label string, get func(*domain.YearResult) decimal.Decimal) {
		a, b := get(prev), get(curr)
		fmt.Fprintf(&buf, "%-26s %14s %14s %14s\n", label, FormatTaka(a), FormatTaka(b), FormatSignedTaka(b.Sub(a)))
	}
	row("Gross income", func(r *domain.YearResult) decimal.Decimal { return r.Income.GrossIncome })
	row("Exempt allowances", func(r *domain.YearResult) decimal.Decimal { return r.Income.Exemptions.Total })
	row("Taxable income", func(r *domain.YearResult) decimal.Decimal { return r.Income.TaxableIncome })
	row("Tax-free threshold", func(r *domain.YearResult) decimal.Decimal { return r.Threshold })
	row("Calculated tax", func(r *domain.YearResult) decimal.Decimal { return r.CalculatedTax })
	row("Minimum tax", func(r *domain.YearResult) decimal.Decimal { return r.MinimumTax })
	row("Total tax", func(r *domain.YearResult) decimal.Decimal { return r.Final.TotalTax })
	row("Investment rebate", func(r *domain.YearResult) decimal.Decimal { return r.Final.InvestmentRebate })
	row("Tax deducted at source", func(r *domain.YearResult) decimal.Decimal { return r.Final.TotalDeductedAtSource })
	fmt.Fprintln(&buf, strings.Repeat("-", 72))
	row("Payable", func(r *domain.YearResult) decimal.Decimal { return r.Final.Payable })
	fmt.Fprintln(&buf)

	for _, r := range []*domain.YearResult{prev, curr} {
		writeBreakdown(&buf, r)
	}

	fmt.Fprintln(&buf, Summarize(cmp).Sentence(cmp))
	return buf.Bytes(), nil
}

func writeBreakdown(buf *bytes.Buffer, r *domain.YearResult) {
	fmt.Fprintf(buf, "%s SLABS (%s, threshold %s)\n", r.FiscalYear.Label(), r.EffectiveCategory.Label(), FormatLakh(r.Threshold))
	fmt.Fprintln(buf, strings.Repeat("-", 72))
	for _, b := range r.Breakdown {
		fmt.Fprintf(buf, "%-34s %6s %14s %14s\n", b.Bracket.Label, FormatPercentage(b.Bracket.RatePercent), FormatTaka(b.TaxableAmount), FormatTaka(b.TaxOwed))
	}
	if r.Final.IsMinimumTaxApplied {
		fmt.Fprintf(buf, "Minimum tax of %s applies.\n", FormatTaka(r.Final.MinimumTaxAmount))
	}
	if r.Rebate.Rebate.IsPositive() {
		fmt.Fprintf(buf, "Rebate: %s of %s qualifying investment (ceiling %s).\n",
			FormatPercentage(r.Rebate.RatePercent), FormatTaka(r.Rebate.QualifyingInvestment), FormatTaka(r.Rebate.Ceiling))
	}
	fmt.Fprintln(buf)
}
