package breakeven

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/bdtax/internal/output"
)

// TableFormatter formats optimization results as a console table
type TableFormatter struct{}

// Format generates a formatted table for an optimization result
func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN RESULTS\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Fiscal Year:  %s\n", result.FiscalYear.Label()))
	sb.WriteString(fmt.Sprintf("Target:       %s\n", tf.targetLabel(result)))
	sb.WriteString(fmt.Sprintf("Goal:         %s\n", result.Goal))
	sb.WriteString(fmt.Sprintf("Status:       %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:   %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:  %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("AMOUNTS\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Current:      %s\n", output.FormatTaka(result.BaseAmount)))
	sb.WriteString(fmt.Sprintf("Break-even:   %s\n", output.FormatTaka(result.OptimalAmount)))
	sb.WriteString("\n")

	sb.WriteString("PAYABLE TAX\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Current:      %s\n", output.FormatTaka(result.BasePayable)))
	sb.WriteString(fmt.Sprintf("At break-even: %s\n", output.FormatTaka(result.Payable)))
	if !result.PayableDiffFromBase.IsZero() {
		sb.WriteString(fmt.Sprintf("Change:       %s\n", output.FormatSignedTaka(result.PayableDiffFromBase)))
	}
	if result.TargetPayable != nil {
		sb.WriteString(fmt.Sprintf("Target:       %s\n", output.FormatTaka(*result.TargetPayable)))
	}
	return sb.String()
}

// FormatMulti formats the results of OptimizeAllTargets
func (tf *TableFormatter) FormatMulti(result *MultiTargetResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN SUMMARY\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("%-10s %-32s %14s %14s\n", "Year", "Target", "Break-even", "Payable"))
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	for i := range result.Results {
		r := &result.Results[i]
		sb.WriteString(fmt.Sprintf("%-10s %-32s %14s %14s\n",
			r.FiscalYear.Label(),
			tf.truncate(tf.targetLabel(r), 32),
			output.FormatTaka(r.OptimalAmount),
			output.FormatTaka(r.Payable)))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
	}
	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *OptimizationResult) (string, error) {
	return jf.marshal(result)
}

// FormatMulti formats multi-target results as JSON
func (jf *JSONFormatter) FormatMulti(result *MultiTargetResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (tf *TableFormatter) targetLabel(r *OptimizationResult) string {
	if r.Target == TargetInvestment {
		return "investment: " + r.InvestmentLine
	}
	return "monthly basic salary"
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Not met"
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
