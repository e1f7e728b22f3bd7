package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/bdtax/internal/domain"
	"github.com/rgehrsitz/bdtax/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing the two fiscal years
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("FISCAL YEAR COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	if compSet.InputPath != "" {
		sb.WriteString(fmt.Sprintf("Input: %s\n", compSet.InputPath))
	}
	if compSet.Base != nil && compSet.Base.Current != nil {
		sb.WriteString(fmt.Sprintf("Category: %s\n", compSet.Base.Current.EffectiveCategory.Label()))
	}
	sb.WriteString("\n")

	nameWidth := 26
	numWidth := 16

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s\n",
		nameWidth, "",
		numWidth, compSet.PreviousYear.Label(),
		numWidth, compSet.CurrentYear.Label(),
		numWidth, "Change"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for _, m := range compSet.Metrics {
		sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s\n",
			nameWidth, m.Metric,
			numWidth, output.FormatTaka(m.Previous),
			numWidth, output.FormatTaka(m.Current),
			numWidth, output.FormatSignedTaka(m.Change)))
	}
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.Brackets) > 0 {
		sb.WriteString("\nSLABS SIDE BY SIDE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, row := range compSet.Brackets {
			sb.WriteString(fmt.Sprintf("%-38s | %-38s\n", tf.bracketCell(row.Previous), tf.bracketCell(row.Current)))
		}
	}

	if len(compSet.Alternatives) > 0 {
		sb.WriteString("\nWHAT-IF ALTERNATIVES\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.Alternatives {
			sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s\n",
				nameWidth, tf.truncate(alt.Name, nameWidth),
				numWidth, output.FormatTaka(alt.PreviousPayable),
				numWidth, output.FormatTaka(alt.CurrentPayable),
				numWidth, output.FormatSignedTaka(alt.PayableDiffFromBase)))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}
		}
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nNOTES\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("* %s\n", rec))
		}
	}
	return sb.String()
}

func (tf *TableFormatter) bracketCell(b *domain.BracketResult) string {
	if b == nil {
		return ""
	}
	return fmt.Sprintf("%-22s %5s %9s", tf.truncate(b.Bracket.Label, 22), output.FormatPercentage(b.Bracket.RatePercent), tf.compact(b.TaxOwed))
}

// compact shortens large amounts: 115000 -> "1.15L", 25000 -> "25,000"
func (tf *TableFormatter) compact(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(100000)) {
		return d.Div(decimal.NewFromInt(100000)).StringFixed(2) + "L"
	}
	return strings.TrimPrefix(output.FormatTaka(d), "Tk ")
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a single-line summary
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	if compSet.Base == nil {
		return ""
	}
	parts := []string{fmt.Sprintf("Payable %s: %s | %s: %s | change %s",
		compSet.PreviousYear.Label(), output.FormatTaka(compSet.Base.Previous.Final.Payable),
		compSet.CurrentYear.Label(), output.FormatTaka(compSet.Base.Current.Final.Payable),
		output.FormatSignedTaka(compSet.Base.PayableDifference))}
	for _, alt := range compSet.Alternatives {
		parts = append(parts, fmt.Sprintf("%s: %s", alt.Name, output.FormatSignedTaka(alt.PayableDiffFromBase)))
	}
	return strings.Join(parts, " | ")
}
