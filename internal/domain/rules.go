package domain

import (
	"github.com/shopspring/decimal"
)

// TaxRules contains every versioned fiscal-year rule set. It is the root of
// rules.yaml and is merged over the built-in rules.
type TaxRules struct {
	Metadata    RulesMetadata     `yaml:"metadata" json:"metadata"`
	FiscalYears []FiscalYearRules `yaml:"fiscal_years" json:"fiscal_years"`
}

// RulesMetadata contains information about where the rule data came from
type RulesMetadata struct {
	Description string `yaml:"description" json:"description"`
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
	Source      string `yaml:"source" json:"source"`
}

// FiscalYearRules is everything that differs between fiscal years
type FiscalYearRules struct {
	FiscalYear FiscalYear   `yaml:"fiscal_year" json:"fiscal_year"`
	Schedule   RateSchedule `yaml:"schedule" json:"schedule"`

	// Tax-free thresholds by category. parent_disabled is not listed; it is
	// the general threshold plus ParentOfDisabledAllowance, or senior at SeniorAge.
	Thresholds                map[Category]decimal.Decimal `yaml:"thresholds" json:"thresholds"`
	ParentOfDisabledAllowance decimal.Decimal              `yaml:"parent_of_disabled_allowance" json:"parent_of_disabled_allowance"`
	SeniorAge                 int                          `yaml:"senior_age" json:"senior_age"`
	SeniorExemptCategories    []Category                   `yaml:"senior_exempt_categories" json:"senior_exempt_categories"`

	// Minimum tax by location. When FlatMinimumTax is non-zero it applies to
	// every location and the table is ignored.
	MinimumTax      map[Location]decimal.Decimal `yaml:"minimum_tax" json:"minimum_tax"`
	FlatMinimumTax  decimal.Decimal              `yaml:"flat_minimum_tax" json:"flat_minimum_tax"`
	DefaultLocation Location                     `yaml:"default_location" json:"default_location"`

	Rebate     RebateRules    `yaml:"rebate" json:"rebate"`
	Exemptions ExemptionRules `yaml:"exemptions" json:"exemptions"`
}

// RateSchedule is the ordered list of taxed bands above the tax-free threshold.
// Income beyond the last band is taxed at TopRatePercent.
type RateSchedule struct {
	Bands          []RateBand      `yaml:"bands" json:"bands"`
	TopRatePercent decimal.Decimal `yaml:"top_rate_percent" json:"top_rate_percent"`
}

// RateBand is a band width and its marginal rate
type RateBand struct {
	Width       decimal.Decimal `yaml:"width" json:"width"`
	RatePercent decimal.Decimal `yaml:"rate_percent" json:"rate_percent"`
}

// RebateMethod selects the investment rebate formula for a fiscal year
type RebateMethod string

const (
	// RebateIncomeShare is min(income share, investment share, cap)
	RebateIncomeShare RebateMethod = "income_share"
	// RebateIncomeBanded is an income-banded rate applied to capped investment
	RebateIncomeBanded RebateMethod = "income_banded"
)

// RebateRules holds the parameters of both rebate formulas; only the ones
// used by Method are read.
type RebateRules struct {
	Method RebateMethod `yaml:"method" json:"method"`

	// income_share
	IncomeSharePercent     decimal.Decimal `yaml:"income_share_percent" json:"income_share_percent"`
	InvestmentSharePercent decimal.Decimal `yaml:"investment_share_percent" json:"investment_share_percent"`

	// income_banded
	Bands                []RebateBand    `yaml:"bands" json:"bands"`
	TopRatePercent       decimal.Decimal `yaml:"top_rate_percent" json:"top_rate_percent"`
	IncomeCeilingDivisor decimal.Decimal `yaml:"income_ceiling_divisor" json:"income_ceiling_divisor"`

	Cap decimal.Decimal `yaml:"cap" json:"cap"`
}

// RebateBand applies RatePercent to taxable incomes up to and including UpTo
type RebateBand struct {
	UpTo        decimal.Decimal `yaml:"up_to" json:"up_to"`
	RatePercent decimal.Decimal `yaml:"rate_percent" json:"rate_percent"`
}

// ExemptionRules caps the exempt portion of salary allowances
type ExemptionRules struct {
	HouseRentBasicPercent decimal.Decimal `yaml:"house_rent_basic_percent" json:"house_rent_basic_percent"`
	HouseRentCap          decimal.Decimal `yaml:"house_rent_cap" json:"house_rent_cap"`
	MedicalBasicPercent   decimal.Decimal `yaml:"medical_basic_percent" json:"medical_basic_percent"`
	MedicalCap            decimal.Decimal `yaml:"medical_cap" json:"medical_cap"`
	ConveyanceCap         decimal.Decimal `yaml:"conveyance_cap" json:"conveyance_cap"`
}
