package breakeven

import (
	"github.com/rgehrsitz/bdtax/internal/domain"
	"github.com/shopspring/decimal"
)

// OptimizationTarget defines which input the solver varies
type OptimizationTarget string

const (
	TargetInvestment OptimizationTarget = "investment" // amount on one investment line
	TargetSalary     OptimizationTarget = "salary"     // monthly basic salary, all twelve months
)

// OptimizationGoal defines what outcome to achieve
type OptimizationGoal string

const (
	GoalMaximizeRebate OptimizationGoal = "maximize_rebate" // smallest investment reaching the lowest payable
	GoalTargetPayable  OptimizationGoal = "target_payable"  // payable at or below Constraints.TargetPayable
	GoalTaxFree        OptimizationGoal = "tax_free"        // highest basic with no calculated tax
)

// DefaultInvestmentLine is the investment line varied when none is named
const DefaultInvestmentLine = "Savings certificates"

// Constraints define bounds for the varied amount. Nil bounds fall back to
// the solver defaults.
type Constraints struct {
	FiscalYear     domain.FiscalYear `json:"fiscal_year"`
	InvestmentLine string            `json:"investment_line,omitempty"`

	MinAmount *decimal.Decimal `json:"min_amount,omitempty"`
	MaxAmount *decimal.Decimal `json:"max_amount,omitempty"`

	// Payable to reach for the target_payable goal
	TargetPayable *decimal.Decimal `json:"target_payable,omitempty"`
}

// DefaultConstraints returns constraints for the current fiscal year
func DefaultConstraints() Constraints {
	return Constraints{
		FiscalYear:     domain.FY2025_26,
		InvestmentLine: DefaultInvestmentLine,
	}
}

// OptimizationRequest defines the parameters for an optimization run
type OptimizationRequest struct {
	BaseInput     *domain.TaxInput
	Target        OptimizationTarget
	Goal          OptimizationGoal
	Constraints   Constraints
	MaxIterations int
}

// OptimizationResult contains the results of an optimization run
type OptimizationResult struct {
	Target          OptimizationTarget `json:"target"`
	Goal            OptimizationGoal   `json:"goal"`
	FiscalYear      domain.FiscalYear  `json:"fiscal_year"`
	InvestmentLine  string             `json:"investment_line,omitempty"`
	Success         bool               `json:"success"`
	Iterations      int                `json:"iterations"`
	ConvergenceInfo string             `json:"convergence_info"`

	// Investment line amount or monthly basic salary, in whole Taka
	OptimalAmount decimal.Decimal `json:"optimal_amount"`
	BaseAmount    decimal.Decimal `json:"base_amount"`

	BasePayable         decimal.Decimal  `json:"base_payable"`
	Payable             decimal.Decimal  `json:"payable"`
	PayableDiffFromBase decimal.Decimal  `json:"payable_diff_from_base"`
	TargetPayable       *decimal.Decimal `json:"target_payable,omitempty"`

	Result *domain.YearResult `json:"-"`
}

// MultiTargetResult collects one result per fiscal year and target
type MultiTargetResult struct {
	Results         []OptimizationResult `json:"results"`
	Recommendations []string             `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	MaxIterations int             // Maximum bisection steps
	MaxInvestment decimal.Decimal // Upper bound for uncapped investment lines
	MaxBasic      decimal.Decimal // Upper bound for monthly basic salary
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		MaxIterations: 64,
		MaxInvestment: decimal.NewFromInt(10000000), // rebate cap at the lowest rate
		MaxBasic:      decimal.NewFromInt(2000000),
	}
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	if c.FiscalYear == "" {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "fiscal year is required",
		}
	}
	if c.MinAmount != nil && c.MinAmount.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_amount cannot be negative",
		}
	}
	if c.MinAmount != nil && c.MaxAmount != nil && c.MinAmount.GreaterThan(*c.MaxAmount) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_amount cannot be greater than max_amount",
		}
	}
	if c.TargetPayable != nil && c.TargetPayable.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "target_payable cannot be negative",
		}
	}
	return nil
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
