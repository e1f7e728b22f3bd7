package breakeven

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/bdtax/internal/calculation"
	"github.com/rgehrsitz/bdtax/internal/domain"
	"github.com/rgehrsitz/bdtax/internal/output"
	"github.com/rgehrsitz/bdtax/internal/transform"
	"github.com/shopspring/decimal"
)

// Solver finds the investment or salary amount at which a tax goal is met.
// Payable tax falls as investment rises and rises with salary, so every
// search is a bisection over whole Taka.
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Optimize performs optimization based on the request
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.CalcEngine.RulesFor(req.Constraints.FiscalYear); err != nil {
		return nil, &BreakEvenError{Operation: "optimize", Message: "invalid fiscal year", Cause: err}
	}

	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.BaseInput == nil {
		req.BaseInput = domain.DefaultTaxInput()
	} else {
		req.BaseInput = req.BaseInput.Clone()
		req.BaseInput.ApplyDefaults()
	}
	if req.Goal == GoalTargetPayable && req.Constraints.TargetPayable == nil {
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   "target_payable goal requires a target payable amount",
		}
	}

	switch {
	case req.Target == TargetInvestment && (req.Goal == GoalMaximizeRebate || req.Goal == GoalTargetPayable):
		return s.optimizeInvestment(ctx, req)
	case req.Target == TargetSalary && (req.Goal == GoalTaxFree || req.Goal == GoalTargetPayable):
		return s.optimizeSalary(ctx, req)
	default:
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported combination of target %q and goal %q", req.Target, req.Goal),
		}
	}
}

// optimizeInvestment finds the smallest amount on one investment line that
// meets the goal
func (s *Solver) optimizeInvestment(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	line := strings.TrimSpace(req.Constraints.InvestmentLine)
	if line == "" {
		line = DefaultInvestmentLine
	}

	baseAmount := decimal.Zero
	upper := s.Options.MaxInvestment
	if inv := findInvestment(req.BaseInput, line); inv != nil {
		baseAmount = inv.Amount
		if inv.Maximum != nil {
			upper = *inv.Maximum
		}
	}
	lower := decimal.Zero
	if req.Constraints.MinAmount != nil {
		lower = *req.Constraints.MinAmount
	}
	if req.Constraints.MaxAmount != nil {
		upper = *req.Constraints.MaxAmount
	}
	lo, hi := lower.Ceil().IntPart(), upper.Floor().IntPart()
	if hi < lo {
		hi = lo
	}

	at := func(amount int64) (*domain.YearResult, error) {
		return s.evaluate(ctx, req, &transform.SetInvestment{InvestmentName: line, Amount: decimal.NewFromInt(amount)})
	}

	base, err := s.evaluate(ctx, req)
	if err != nil {
		return nil, err
	}
	best, err := at(hi)
	if err != nil {
		return nil, err
	}

	goal := best.Final.Payable
	if req.Goal == GoalTargetPayable {
		goal = *req.Constraints.TargetPayable
		if best.Final.Payable.GreaterThan(goal) {
			result := s.newResult(req, base, best, hi, baseAmount, 1)
			result.InvestmentLine = line
			result.ConvergenceInfo = fmt.Sprintf("Target payable %s not reachable; lowest payable is %s",
				output.FormatTaka(goal), output.FormatTaka(best.Final.Payable))
			return result, nil
		}
	}

	amount, iterations, converged, err := bisectSmallest(lo, hi, req.MaxIterations, func(x int64) (bool, error) {
		r, err := at(x)
		if err != nil {
			return false, err
		}
		return r.Final.Payable.LessThanOrEqual(goal), nil
	})
	if err != nil {
		return nil, &BreakEvenError{Operation: "optimize_investment", Message: "failed to evaluate investment", Cause: err}
	}

	optimal, err := at(amount)
	if err != nil {
		return nil, err
	}
	result := s.newResult(req, base, optimal, amount, baseAmount, iterations)
	result.InvestmentLine = line
	result.Success = converged
	result.ConvergenceInfo = convergence(converged, iterations, req.MaxIterations)
	return result, nil
}

// optimizeSalary finds the highest monthly basic salary that meets the goal
func (s *Solver) optimizeSalary(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	baseAmount := decimal.Zero
	if len(req.BaseInput.Months) > 0 {
		baseAmount = req.BaseInput.Months[0].Basic
	}
	lower, upper := decimal.Zero, s.Options.MaxBasic
	if req.Constraints.MinAmount != nil {
		lower = *req.Constraints.MinAmount
	}
	if req.Constraints.MaxAmount != nil {
		upper = *req.Constraints.MaxAmount
	}
	lo, hi := lower.Ceil().IntPart(), upper.Floor().IntPart()
	if hi < lo {
		hi = lo
	}

	at := func(amount int64) (*domain.YearResult, error) {
		return s.evaluate(ctx, req, &transform.SetBasic{Amount: decimal.NewFromInt(amount)})
	}
	meets := func(r *domain.YearResult) bool {
		if req.Goal == GoalTaxFree {
			return r.CalculatedTax.IsZero()
		}
		return r.Final.Payable.LessThanOrEqual(*req.Constraints.TargetPayable)
	}

	base, err := s.evaluate(ctx, req)
	if err != nil {
		return nil, err
	}
	floor, err := at(lo)
	if err != nil {
		return nil, err
	}
	if !meets(floor) {
		result := s.newResult(req, base, floor, lo, baseAmount, 1)
		result.ConvergenceInfo = fmt.Sprintf("Goal not met even at a monthly basic of %s", output.FormatTaka(decimal.NewFromInt(lo)))
		return result, nil
	}

	ok := func(x int64) (bool, error) {
		r, err := at(x)
		if err != nil {
			return false, err
		}
		return meets(r), nil
	}
	amount, iterations, converged, err := bisectLargest(lo, hi, req.MaxIterations, ok)
	if err == nil && converged && req.Goal == GoalTargetPayable {
		var steps int
		amount, steps, err = s.scanRebateEdges(req, amount, hi, at, ok)
		iterations += steps
	}
	if err != nil {
		return nil, &BreakEvenError{Operation: "optimize_salary", Message: "failed to evaluate salary", Cause: err}
	}

	optimal, err := at(amount)
	if err != nil {
		return nil, err
	}
	result := s.newResult(req, base, optimal, amount, baseAmount, iterations)
	result.Success = converged
	result.ConvergenceInfo = convergence(converged, iterations, req.MaxIterations)
	return result, nil
}

// scanRebateEdges continues the salary search past each rebate band edge
// above amount. Crossing an edge raises the rebate rate, which can bring
// payable back under the target, so payable only rises with salary inside
// one band.
func (s *Solver) scanRebateEdges(req OptimizationRequest, amount, hi int64,
	at func(int64) (*domain.YearResult, error), ok func(int64) (bool, error)) (int64, int, error) {
	rules, err := s.CalcEngine.RulesFor(req.Constraints.FiscalYear)
	if err != nil {
		return 0, 0, err
	}
	if rules.Rebate.Method != domain.RebateIncomeBanded || amount >= hi {
		return amount, 0, nil
	}
	top, err := at(hi)
	if err != nil {
		return 0, 0, err
	}

	steps := 0
	for _, band := range rules.Rebate.Bands {
		if amount >= hi || top.Income.TaxableIncome.LessThanOrEqual(band.UpTo) {
			break
		}
		current, err := at(amount)
		if err != nil {
			return 0, steps, err
		}
		if current.Income.TaxableIncome.GreaterThan(band.UpTo) {
			continue
		}

		// first basic whose taxable income is past the edge
		edge, n, _, err := bisectSmallest(amount+1, hi, req.MaxIterations, func(x int64) (bool, error) {
			r, err := at(x)
			if err != nil {
				return false, err
			}
			return r.Income.TaxableIncome.GreaterThan(band.UpTo), nil
		})
		steps += n
		if err != nil {
			return 0, steps, err
		}
		good, err := ok(edge)
		if err != nil {
			return 0, steps, err
		}
		if !good {
			continue
		}
		next, n, _, err := bisectLargest(edge, hi, req.MaxIterations, ok)
		steps += n
		if err != nil {
			return 0, steps, err
		}
		amount = next
	}
	return amount, steps, nil
}

// evaluate applies transforms to the base input and calculates the target year
func (s *Solver) evaluate(ctx context.Context, req OptimizationRequest, transforms ...transform.InputTransform) (*domain.YearResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	modified, err := transform.ApplyTransforms(req.BaseInput, transforms)
	if err != nil {
		return nil, &BreakEvenError{Operation: "evaluate", Message: "failed to apply transform", Cause: err}
	}
	result, err := s.CalcEngine.Calculate(modified, req.Constraints.FiscalYear)
	if err != nil {
		return nil, &BreakEvenError{Operation: "evaluate", Message: "failed to calculate", Cause: err}
	}
	return result, nil
}

func (s *Solver) newResult(req OptimizationRequest, base, optimal *domain.YearResult, amount int64, baseAmount decimal.Decimal, iterations int) *OptimizationResult {
	return &OptimizationResult{
		Target:              req.Target,
		Goal:                req.Goal,
		FiscalYear:          req.Constraints.FiscalYear,
		Iterations:          iterations,
		OptimalAmount:       decimal.NewFromInt(amount),
		BaseAmount:          baseAmount,
		BasePayable:         base.Final.Payable,
		Payable:             optimal.Final.Payable,
		PayableDiffFromBase: optimal.Final.Payable.Sub(base.Final.Payable),
		TargetPayable:       req.Constraints.TargetPayable,
		Result:              optimal,
	}
}

// bisectSmallest returns the smallest x in [lo, hi] for which ok holds,
// assuming ok(hi) holds and ok is monotone
func bisectSmallest(lo, hi int64, maxIterations int, ok func(int64) (bool, error)) (int64, int, bool, error) {
	iterations := 0
	for lo < hi {
		if iterations >= maxIterations {
			return hi, iterations, false, nil
		}
		iterations++
		mid := lo + (hi-lo)/2
		good, err := ok(mid)
		if err != nil {
			return 0, iterations, false, err
		}
		if good {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo, iterations, true, nil
}

// bisectLargest returns the largest x in [lo, hi] for which ok holds,
// assuming ok(lo) holds and ok is monotone
func bisectLargest(lo, hi int64, maxIterations int, ok func(int64) (bool, error)) (int64, int, bool, error) {
	iterations := 0
	for lo < hi {
		if iterations >= maxIterations {
			return lo, iterations, false, nil
		}
		iterations++
		mid := lo + (hi-lo+1)/2
		good, err := ok(mid)
		if err != nil {
			return 0, iterations, false, err
		}
		if good {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo, iterations, true, nil
}

func convergence(converged bool, iterations, maxIterations int) string {
	if converged {
		return fmt.Sprintf("Bisection converged after %d steps", iterations)
	}
	return fmt.Sprintf("Max iterations (%d) reached", maxIterations)
}

// findInvestment matches an investment line the way SetInvestment does:
// case-insensitive prefix of the line name
func findInvestment(in *domain.TaxInput, name string) *domain.Investment {
	want := strings.ToLower(strings.TrimSpace(name))
	for i := range in.Investments {
		if strings.HasPrefix(strings.ToLower(in.Investments[i].Name), want) {
			return &in.Investments[i]
		}
	}
	return nil
}
