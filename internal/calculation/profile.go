package calculation

import (
	"github.com/rgehrsitz/bdtax/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// EffectiveCategory applies the age override: from SeniorAge onward a taxpayer
// is treated as senior unless their category already carries a higher,
// non-stackable threshold.
func EffectiveCategory(profile domain.TaxpayerProfile, rules domain.FiscalYearRules) domain.Category {
	p := profile.Normalized()
	if p.Age != nil && rules.SeniorAge > 0 && *p.Age >= rules.SeniorAge &&
		!lo.Contains(rules.SeniorExemptCategories, p.Category) {
		return domain.CategorySenior
	}
	return p.Category
}

// ResolveThreshold returns the tax-free threshold for a profile. The parent of
// a person with disability gets the fixed allowance on top of the general
// threshold; from SeniorAge onward the senior threshold applies instead.
func ResolveThreshold(profile domain.TaxpayerProfile, rules domain.FiscalYearRules) decimal.Decimal {
	p := profile.Normalized()
	category := EffectiveCategory(p, rules)

	allowance := decimal.Zero
	if category == domain.CategoryParentOfDisabled {
		allowance = rules.ParentOfDisabledAllowance
		category = domain.CategoryGeneral
	}

	threshold, ok := rules.Thresholds[category]
	if !ok {
		threshold = rules.Thresholds[domain.CategoryGeneral]
	}
	return threshold.Add(allowance)
}

// ResolveMinimumTax returns the statutory minimum tax for a profile's location
func ResolveMinimumTax(profile domain.TaxpayerProfile, rules domain.FiscalYearRules) decimal.Decimal {
	if !rules.FlatMinimumTax.IsZero() {
		return rules.FlatMinimumTax
	}
	location := profile.Normalized().Location
	if v, ok := rules.MinimumTax[location]; ok {
		return v
	}
	if v, ok := rules.MinimumTax[rules.DefaultLocation]; ok {
		return v
	}
	highest := decimal.Zero
	for _, v := range rules.MinimumTax {
		highest = decimal.Max(highest, v)
	}
	return highest
}
