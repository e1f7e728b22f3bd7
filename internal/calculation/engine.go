package calculation

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/bdtax/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// ErrUnknownFiscalYear is returned when no rule set exists for a fiscal year
var ErrUnknownFiscalYear = errors.New("unknown fiscal year")

// CalculationEngine runs the per-year tax pipeline:
// profile -> slabs -> breakdown -> rebate -> final tax.
type CalculationEngine struct {
	Rules   domain.TaxRules
	Logger  Logger
	Debug   bool // Log every intermediate value
	rebates map[domain.FiscalYear]RebateStrategy
	byYear  map[domain.FiscalYear]domain.FiscalYearRules
}

// NewCalculationEngine creates an engine over the built-in rules
func NewCalculationEngine() *CalculationEngine {
	engine, err := NewCalculationEngineWithRules(DefaultRules())
	if err != nil {
		// built-in rules are validated by tests
		panic(fmt.Sprintf("invalid built-in tax rules: %v", err))
	}
	return engine
}

// NewCalculationEngineWithRules creates an engine over rules, validating every fiscal year
func NewCalculationEngineWithRules(rules domain.TaxRules) (*CalculationEngine, error) {
	if len(rules.FiscalYears) == 0 {
		return nil, fmt.Errorf("no fiscal year rules configured")
	}
	engine := &CalculationEngine{
		Rules:   rules,
		Logger:  NopLogger{},
		rebates: make(map[domain.FiscalYear]RebateStrategy, len(rules.FiscalYears)),
		byYear:  make(map[domain.FiscalYear]domain.FiscalYearRules, len(rules.FiscalYears)),
	}
	for _, fy := range rules.FiscalYears {
		if err := ValidateFiscalYearRules(fy); err != nil {
			return nil, fmt.Errorf("fiscal year %s: %w", fy.FiscalYear, err)
		}
		strategy, err := NewRebateStrategy(fy.Rebate)
		if err != nil {
			return nil, fmt.Errorf("fiscal year %s: %w", fy.FiscalYear, err)
		}
		engine.rebates[fy.FiscalYear] = strategy
		engine.byYear[fy.FiscalYear] = fy
	}
	return engine, nil
}

// SetLogger sets the engine logger; nil installs a no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// FiscalYears returns the configured fiscal years, oldest first
func (ce *CalculationEngine) FiscalYears() []domain.FiscalYear {
	return lo.Map(ce.Rules.FiscalYears, func(r domain.FiscalYearRules, _ int) domain.FiscalYear {
		return r.FiscalYear
	})
}

// RulesFor returns the rule set for a fiscal year
func (ce *CalculationEngine) RulesFor(fy domain.FiscalYear) (domain.FiscalYearRules, error) {
	rules, ok := ce.byYear[fy]
	if !ok {
		return domain.FiscalYearRules{}, fmt.Errorf("%w: %q", ErrUnknownFiscalYear, fy)
	}
	return rules, nil
}

// Calculate runs the full pipeline, from monthly salary through payable tax,
// for one fiscal year. A nil input is calculated as the empty default state.
// The input is not modified.
func (ce *CalculationEngine) Calculate(input *domain.TaxInput, fy domain.FiscalYear) (*domain.YearResult, error) {
	rules, err := ce.RulesFor(fy)
	if err != nil {
		return nil, err
	}

	in := domain.DefaultTaxInput()
	if input != nil {
		in = input.Clone()
		in.ApplyDefaults()
	}

	income := CalculateIncome(in, rules.Exemptions)
	if ce.Debug {
		ce.Logger.Debugf("%s gross=%s exempt=%s taxable=%s tds=%s", fy.Label(),
			income.GrossIncome, income.Exemptions.Total, income.TaxableIncome, income.DeductedAtSource)
	}

	result := ce.run(rules, in.Profile, income.TaxableIncome, in.Investments, income.DeductedAtSource)
	result.Income = income
	return result, nil
}

// CalculateTaxable runs the pipeline from an already-derived taxable income,
// skipping the salary and exemption step.
func (ce *CalculationEngine) CalculateTaxable(profile domain.TaxpayerProfile, taxableIncome decimal.Decimal, investments []domain.Investment, deductedAtSource decimal.Decimal, fy domain.FiscalYear) (*domain.YearResult, error) {
	rules, err := ce.RulesFor(fy)
	if err != nil {
		return nil, err
	}
	taxable := NonNegative(taxableIncome)
	tds := NonNegative(deductedAtSource)

	result := ce.run(rules, profile.Normalized(), taxable, investments, tds)
	result.Income = domain.IncomeSummary{
		GrossIncome:      taxable,
		TaxableIncome:    taxable,
		DeductedAtSource: tds,
	}
	return result, nil
}

func (ce *CalculationEngine) run(rules domain.FiscalYearRules, profile domain.TaxpayerProfile, taxable decimal.Decimal, investments []domain.Investment, tds decimal.Decimal) *domain.YearResult {
	threshold := ResolveThreshold(profile, rules)
	minimumTax := ResolveMinimumTax(profile, rules)

	slabs := GenerateSlabs(threshold, rules.Schedule)
	breakdown := CalculateBreakdown(taxable, slabs)
	calculated := TotalTax(breakdown)

	rebate := ce.rebates[rules.FiscalYear].Calculate(taxable, QualifyingInvestment(investments))
	final := ResolveFinalTax(calculated, minimumTax, tds, rebate.Rebate)

	if ce.Debug {
		ce.Logger.Debugf("%s category=%s threshold=%s minimum=%s calculated=%s rebate=%s payable=%s",
			rules.FiscalYear.Label(), EffectiveCategory(profile, rules), threshold, minimumTax,
			calculated, rebate.Rebate, final.Payable)
		for _, b := range breakdown {
			ce.Logger.Debugf("  %-32s %6s%% taxable=%s tax=%s",
				b.Bracket.Label, b.Bracket.RatePercent, b.TaxableAmount, b.TaxOwed)
		}
	}

	return &domain.YearResult{
		FiscalYear:        rules.FiscalYear,
		EffectiveCategory: EffectiveCategory(profile, rules),
		Threshold:         threshold,
		MinimumTax:        minimumTax,
		Slabs:             slabs,
		Breakdown:         breakdown,
		CalculatedTax:     calculated,
		Rebate:            rebate,
		Final:             final,
	}
}

// Compare calculates the same input under two fiscal years. Differences are
// current minus previous.
func (ce *CalculationEngine) Compare(input *domain.TaxInput, previous, current domain.FiscalYear) (*domain.TaxComparison, error) {
	prev, err := ce.Calculate(input, previous)
	if err != nil {
		return nil, err
	}
	curr, err := ce.Calculate(input, current)
	if err != nil {
		return nil, err
	}
	return &domain.TaxComparison{
		Previous:           prev,
		Current:            curr,
		TotalTaxDifference: curr.Final.TotalTax.Sub(prev.Final.TotalTax),
		PayableDifference:  curr.Final.Payable.Sub(prev.Final.Payable),
	}, nil
}

// CalculateAll compares FY2024-25 against FY2025-26
func (ce *CalculationEngine) CalculateAll(input *domain.TaxInput) (*domain.TaxComparison, error) {
	return ce.Compare(input, domain.FY2024_25, domain.FY2025_26)
}
