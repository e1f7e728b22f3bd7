package calculation

import (
	"fmt"

	"github.com/rgehrsitz/bdtax/internal/domain"
	"github.com/shopspring/decimal"
)

// QualifyingInvestment sums each investment line capped at its own maximum
func QualifyingInvestment(investments []domain.Investment) decimal.Decimal {
	return SumBy(investments, func(inv domain.Investment) decimal.Decimal {
		amount := NonNegative(inv.Amount)
		if inv.Maximum != nil {
			amount = decimal.Min(amount, NonNegative(*inv.Maximum))
		}
		return amount
	})
}

// CalculateInvestmentRebate returns round(min(qualifying, ceiling) * rate / 100)
func CalculateInvestmentRebate(qualifyingInvestment, ratePercent, ceiling decimal.Decimal) decimal.Decimal {
	effective := decimal.Min(NonNegative(qualifyingInvestment), NonNegative(ceiling))
	return RoundTaka(percentOf(effective, NonNegative(ratePercent)))
}

// RebateStrategy computes the investment rebate for one fiscal year
type RebateStrategy interface {
	Method() domain.RebateMethod
	Calculate(taxableIncome, qualifyingInvestment decimal.Decimal) domain.RebateResult
}

// NewRebateStrategy selects the formula named by rules.Method
func NewRebateStrategy(rules domain.RebateRules) (RebateStrategy, error) {
	switch rules.Method {
	case domain.RebateIncomeShare:
		if rules.Cap.IsNegative() || rules.IncomeSharePercent.IsNegative() || rules.InvestmentSharePercent.IsNegative() {
			return nil, fmt.Errorf("income_share parameters cannot be negative")
		}
		return IncomeShareRebate{
			IncomeSharePercent:     rules.IncomeSharePercent,
			InvestmentSharePercent: rules.InvestmentSharePercent,
			Cap:                    rules.Cap,
		}, nil
	case domain.RebateIncomeBanded:
		if !rules.IncomeCeilingDivisor.IsPositive() {
			return nil, fmt.Errorf("income_banded requires a positive income_ceiling_divisor")
		}
		if rules.Cap.IsNegative() {
			return nil, fmt.Errorf("cap cannot be negative")
		}
		for i := 1; i < len(rules.Bands); i++ {
			if !rules.Bands[i].UpTo.GreaterThan(rules.Bands[i-1].UpTo) {
				return nil, fmt.Errorf("band %d: up_to must be increasing", i)
			}
		}
		return BandedRebate{
			Bands:                rules.Bands,
			TopRatePercent:       rules.TopRatePercent,
			IncomeCeilingDivisor: rules.IncomeCeilingDivisor,
			Cap:                  rules.Cap,
		}, nil
	default:
		return nil, fmt.Errorf("unknown rebate method %q", rules.Method)
	}
}

// IncomeShareRebate is min(income% of taxable income, investment% of
// qualifying investment, cap), rounded to whole Taka.
type IncomeShareRebate struct {
	IncomeSharePercent     decimal.Decimal
	InvestmentSharePercent decimal.Decimal
	Cap                    decimal.Decimal
}

func (r IncomeShareRebate) Method() domain.RebateMethod { return domain.RebateIncomeShare }

func (r IncomeShareRebate) Calculate(taxableIncome, qualifyingInvestment decimal.Decimal) domain.RebateResult {
	income := NonNegative(taxableIncome)
	qualifying := NonNegative(qualifyingInvestment)

	incomeShare := percentOf(income, r.IncomeSharePercent)
	limit := decimal.Min(incomeShare, r.Cap)
	rebate := RoundTaka(decimal.Min(limit, percentOf(qualifying, r.InvestmentSharePercent)))

	// Investment beyond the ceiling no longer increases the rebate.
	ceiling := decimal.Zero
	if r.InvestmentSharePercent.IsPositive() {
		ceiling = limit.Mul(hundred).Div(r.InvestmentSharePercent).Ceil()
	}

	return domain.RebateResult{
		Method:               domain.RebateIncomeShare,
		QualifyingInvestment: qualifying,
		Ceiling:              ceiling,
		RatePercent:          r.InvestmentSharePercent,
		Rebate:               rebate,
	}
}

// BandedRebate applies an income-banded rate to qualifying investment capped
// at min(round(income / divisor), cap).
type BandedRebate struct {
	Bands                []domain.RebateBand
	TopRatePercent       decimal.Decimal
	IncomeCeilingDivisor decimal.Decimal
	Cap                  decimal.Decimal
}

func (r BandedRebate) Method() domain.RebateMethod { return domain.RebateIncomeBanded }

// RateFor returns the rebate rate for a taxable income
func (r BandedRebate) RateFor(taxableIncome decimal.Decimal) decimal.Decimal {
	for _, band := range r.Bands {
		if taxableIncome.LessThanOrEqual(band.UpTo) {
			return band.RatePercent
		}
	}
	return r.TopRatePercent
}

// MaxRate is the highest rate any income can reach
func (r BandedRebate) MaxRate() decimal.Decimal {
	highest := r.TopRatePercent
	for _, band := range r.Bands {
		highest = decimal.Max(highest, band.RatePercent)
	}
	return highest
}

func (r BandedRebate) Calculate(taxableIncome, qualifyingInvestment decimal.Decimal) domain.RebateResult {
	income := NonNegative(taxableIncome)
	qualifying := NonNegative(qualifyingInvestment)

	rate := r.RateFor(income)
	ceiling := decimal.Min(RoundTaka(income.Div(r.IncomeCeilingDivisor)), r.Cap)

	return domain.RebateResult{
		Method:               domain.RebateIncomeBanded,
		QualifyingInvestment: qualifying,
		Ceiling:              ceiling,
		RatePercent:          rate,
		Rebate:               CalculateInvestmentRebate(qualifying, rate, ceiling),
	}
}
