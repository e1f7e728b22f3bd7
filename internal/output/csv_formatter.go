package output

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/rgehrsitz/bdtax/internal/domain"
)

// CSVFormatter writes one row per slab per fiscal year followed by the
// summary lines of each year.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(cmp *domain.TaxComparison) ([]byte, error) {
	if cmp == nil || cmp.Previous == nil || cmp.Current == nil {
		return nil, fmt.Errorf("comparison is incomplete")
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"FiscalYear", "Section", "Label", "RatePercent", "Amount", "Tax"}); err != nil {
		return nil, err
	}
	for _, r := range []*domain.YearResult{cmp.Previous, cmp.Current} {
		fy := string(r.FiscalYear)
		for _, b := range r.Breakdown {
			row := []string{fy, "slab", b.Bracket.Label, b.Bracket.RatePercent.String(), b.TaxableAmount.StringFixed(0), b.TaxOwed.StringFixed(0)}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
		summary := [][]string{
			{fy, "summary", "TaxableIncome", "", r.Income.TaxableIncome.StringFixed(0), ""},
			{fy, "summary", "CalculatedTax", "", "", r.CalculatedTax.StringFixed(0)},
			{fy, "summary", "MinimumTax", "", "", r.MinimumTax.StringFixed(0)},
			{fy, "summary", "TotalTax", "", "", r.Final.TotalTax.StringFixed(0)},
			{fy, "summary", "InvestmentRebate", r.Rebate.RatePercent.String(), r.Rebate.QualifyingInvestment.StringFixed(0), r.Final.InvestmentRebate.StringFixed(0)},
			{fy, "summary", "DeductedAtSource", "", "", r.Final.TotalDeductedAtSource.StringFixed(0)},
			{fy, "summary", "Payable", "", "", r.Final.Payable.StringFixed(0)},
		}
		if err := w.WriteAll(summary); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
