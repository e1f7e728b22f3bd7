package calculation

import (
	"github.com/rgehrsitz/bdtax/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculateIncome annualises salary and bonuses, applies the allowance
// exemptions and derives taxable income and total tax deducted at source.
//
//	house rent  <= min(actual, x% of basic, cap)
//	medical     <= min(actual, y% of basic, cap)
//	conveyance  <= min(actual, cap)
//
// Leave fare assistance, other allowances and bonuses are fully taxable.
func CalculateIncome(input *domain.TaxInput, rules domain.ExemptionRules) domain.IncomeSummary {
	if input == nil {
		return domain.IncomeSummary{}
	}
	months := input.Months
	component := func(get func(domain.MonthlySalary) decimal.Decimal) decimal.Decimal {
		return SumBy(months, func(m domain.MonthlySalary) decimal.Decimal { return NonNegative(get(m)) })
	}

	summary := domain.IncomeSummary{
		BasicSalary: component(func(m domain.MonthlySalary) decimal.Decimal { return m.Basic }),
		HouseRent:   component(func(m domain.MonthlySalary) decimal.Decimal { return m.HouseRent }),
		Medical:     component(func(m domain.MonthlySalary) decimal.Decimal { return m.Medical }),
		Conveyance:  component(func(m domain.MonthlySalary) decimal.Decimal { return m.Conveyance }),
		LFA:         component(func(m domain.MonthlySalary) decimal.Decimal { return m.LFA }),
		OtherSalary: component(func(m domain.MonthlySalary) decimal.Decimal { return m.Other }),
		Bonuses:     SumBy(input.Bonuses, func(b domain.Bonus) decimal.Decimal { return NonNegative(b.Amount) }),
	}
	summary.GrossIncome = summary.BasicSalary.
		Add(summary.HouseRent).
		Add(summary.Medical).
		Add(summary.Conveyance).
		Add(summary.LFA).
		Add(summary.OtherSalary).
		Add(summary.Bonuses)

	summary.Exemptions = CalculateExemptions(summary, rules)
	summary.TaxableIncome = NonNegative(summary.GrossIncome.Sub(summary.Exemptions.Total))

	summary.DeductedAtSource = component(func(m domain.MonthlySalary) decimal.Decimal { return m.TDS }).
		Add(SumBy(input.Bonuses, func(b domain.Bonus) decimal.Decimal { return NonNegative(b.TDS) })).
		Add(NonNegative(input.OtherTDS))

	return summary
}

// CalculateExemptions applies the capped-minimum rules to annual allowance totals
func CalculateExemptions(income domain.IncomeSummary, rules domain.ExemptionRules) domain.Exemptions {
	basic := NonNegative(income.BasicSalary)

	house := decimal.Min(NonNegative(income.HouseRent), percentOf(basic, rules.HouseRentBasicPercent), rules.HouseRentCap)
	medical := decimal.Min(NonNegative(income.Medical), percentOf(basic, rules.MedicalBasicPercent), rules.MedicalCap)
	conveyance := decimal.Min(NonNegative(income.Conveyance), rules.ConveyanceCap)

	house, medical, conveyance = NonNegative(house), NonNegative(medical), NonNegative(conveyance)
	return domain.Exemptions{
		HouseRent:  house,
		Medical:    medical,
		Conveyance: conveyance,
		Total:      house.Add(medical).Add(conveyance),
	}
}
