package breakeven

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgehrsitz/bdtax/internal/domain"
	"github.com/rgehrsitz/bdtax/internal/output"
)

// OptimizeAllTargets runs the investment (maximize_rebate) and salary
// (tax_free) searches for every configured fiscal year. Failed runs are
// skipped unless the context was cancelled.
func (s *Solver) OptimizeAllTargets(ctx context.Context, input *domain.TaxInput, constraints Constraints) (*MultiTargetResult, error) {
	runs := []struct {
		target OptimizationTarget
		goal   OptimizationGoal
	}{
		{TargetInvestment, GoalMaximizeRebate},
		{TargetSalary, GoalTaxFree},
	}

	var results []OptimizationResult
	for _, fy := range s.CalcEngine.FiscalYears() {
		for _, run := range runs {
			c := constraints
			c.FiscalYear = fy
			if run.target == TargetSalary {
				// investment bounds do not apply to salary
				c.MinAmount, c.MaxAmount = nil, nil
			}
			result, err := s.Optimize(ctx, OptimizationRequest{
				BaseInput:   input,
				Target:      run.target,
				Goal:        run.goal,
				Constraints: c,
			})
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return nil, err
				}
				continue
			}
			results = append(results, *result)
		}
	}

	if len(results) == 0 {
		return nil, &BreakEvenError{
			Operation: "optimize_all_targets",
			Message:   "no successful optimizations found",
		}
	}

	return &MultiTargetResult{
		Results:         results,
		Recommendations: generateRecommendations(results),
	}, nil
}

func generateRecommendations(results []OptimizationResult) []string {
	recommendations := []string{}
	for _, r := range results {
		if !r.Success {
			continue
		}
		switch r.Target {
		case TargetInvestment:
			if r.PayableDiffFromBase.IsNegative() {
				recommendations = append(recommendations, fmt.Sprintf("%s: raising %s to %s cuts payable tax by %s (to %s).",
					r.FiscalYear.Label(), r.InvestmentLine, output.FormatTaka(r.OptimalAmount),
					output.FormatTaka(r.PayableDiffFromBase.Neg()), output.FormatTaka(r.Payable)))
			} else {
				recommendations = append(recommendations, fmt.Sprintf("%s: more investment in %s does not lower payable tax.",
					r.FiscalYear.Label(), r.InvestmentLine))
			}
		case TargetSalary:
			recommendations = append(recommendations, fmt.Sprintf("%s: a monthly basic salary up to %s keeps calculated tax at zero.",
				r.FiscalYear.Label(), output.FormatTaka(r.OptimalAmount)))
		}
	}
	return recommendations
}
