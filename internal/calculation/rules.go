package calculation

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/bdtax/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX RULE ASSUMPTIONS:
//
// 1. Rates are the individual-assessee rates of the Finance Acts for the
//    income years 2024-25 and 2025-26. Company rates are out of scope.
//
// 2. Threshold categories are non-stackable except for the parent of a person
//    with disability, which adds a fixed allowance on top of the general
//    threshold. From the senior age that parent is looked up as senior with
//    no allowance.
//
// 3. Salary exemptions use the capped-minimum rules for house rent, medical
//    and conveyance. Leave fare assistance is fully taxable.

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func defaultExemptions() domain.ExemptionRules {
	return domain.ExemptionRules{
		HouseRentBasicPercent: dec(50),
		HouseRentCap:          dec(300000),
		MedicalBasicPercent:   dec(10),
		MedicalCap:            dec(120000),
		ConveyanceCap:         dec(30000),
	}
}

var seniorExempt = []domain.Category{
	domain.CategoryDisabled,
	domain.CategoryFreedomFighter,
	domain.CategoryThirdGender,
}

// FY2024_25Rules returns the built-in rules for income year 2024-25
func FY2024_25Rules() domain.FiscalYearRules {
	return domain.FiscalYearRules{
		FiscalYear: domain.FY2024_25,
		Schedule: domain.RateSchedule{
			Bands: []domain.RateBand{
				{Width: dec(100000), RatePercent: dec(5)},
				{Width: dec(400000), RatePercent: dec(10)},
				{Width: dec(500000), RatePercent: dec(15)},
				{Width: dec(500000), RatePercent: dec(20)},
				{Width: dec(2000000), RatePercent: dec(25)},
			},
			TopRatePercent: dec(30),
		},
		Thresholds: map[domain.Category]decimal.Decimal{
			domain.CategoryGeneral:        dec(350000),
			domain.CategoryFemale:         dec(400000),
			domain.CategorySenior:         dec(400000),
			domain.CategoryDisabled:       dec(475000),
			domain.CategoryThirdGender:    dec(475000),
			domain.CategoryFreedomFighter: dec(500000),
		},
		ParentOfDisabledAllowance: dec(50000),
		SeniorAge:                 65,
		SeniorExemptCategories:    seniorExempt,
		MinimumTax: map[domain.Location]decimal.Decimal{
			domain.LocationDhaka:      dec(5000),
			domain.LocationChittagong: dec(5000),
			domain.LocationOtherCity:  dec(4000),
			domain.LocationDistrict:   dec(3000),
		},
		DefaultLocation: domain.LocationDhaka,
		Rebate: domain.RebateRules{
			Method:                 domain.RebateIncomeShare,
			IncomeSharePercent:     dec(3),
			InvestmentSharePercent: dec(15),
			Cap:                    dec(1000000),
		},
		Exemptions: defaultExemptions(),
	}
}

// FY2025_26Rules returns the built-in rules for income year 2025-26.
// The 5% slab is gone and minimum tax is a single amount everywhere.
func FY2025_26Rules() domain.FiscalYearRules {
	return domain.FiscalYearRules{
		FiscalYear: domain.FY2025_26,
		Schedule: domain.RateSchedule{
			Bands: []domain.RateBand{
				{Width: dec(300000), RatePercent: dec(10)},
				{Width: dec(400000), RatePercent: dec(15)},
				{Width: dec(500000), RatePercent: dec(20)},
				{Width: dec(2000000), RatePercent: dec(25)},
			},
			TopRatePercent: dec(30),
		},
		Thresholds: map[domain.Category]decimal.Decimal{
			domain.CategoryGeneral:        dec(375000),
			domain.CategoryFemale:         dec(425000),
			domain.CategorySenior:         dec(425000),
			domain.CategoryDisabled:       dec(500000),
			domain.CategoryThirdGender:    dec(500000),
			domain.CategoryFreedomFighter: dec(525000),
		},
		ParentOfDisabledAllowance: dec(50000),
		SeniorAge:                 65,
		SeniorExemptCategories:    seniorExempt,
		FlatMinimumTax:            dec(5000),
		DefaultLocation:           domain.LocationDhaka,
		Rebate: domain.RebateRules{
			Method: domain.RebateIncomeBanded,
			Bands: []domain.RebateBand{
				{UpTo: dec(500000), RatePercent: dec(10)},
				{UpTo: dec(700000), RatePercent: decimal.RequireFromString("12.5")},
				{UpTo: dec(1100000), RatePercent: dec(15)},
				{UpTo: dec(1600000), RatePercent: decimal.RequireFromString("17.5")},
			},
			TopRatePercent:       dec(20),
			IncomeCeilingDivisor: dec(5),
			Cap:                  dec(1000000),
		},
		Exemptions: defaultExemptions(),
	}
}

// DefaultRules returns the built-in rules for every supported fiscal year
func DefaultRules() domain.TaxRules {
	return domain.TaxRules{
		Metadata: domain.RulesMetadata{
			Description: "Bangladesh individual income tax, built-in rules",
			LastUpdated: "2025-07-01",
			Source:      "Finance Act 2024, Finance Ordinance 2025",
		},
		FiscalYears: []domain.FiscalYearRules{FY2024_25Rules(), FY2025_26Rules()},
	}
}

// MergeRules overlays override on base. A fiscal year present in override
// replaces the base entry wholesale; metadata is taken from override when set.
func MergeRules(base, override domain.TaxRules) domain.TaxRules {
	byYear := make(map[domain.FiscalYear]domain.FiscalYearRules, len(base.FiscalYears))
	for _, fy := range base.FiscalYears {
		byYear[fy.FiscalYear] = fy
	}
	for _, fy := range override.FiscalYears {
		byYear[fy.FiscalYear] = fy
	}

	merged := domain.TaxRules{Metadata: base.Metadata}
	if override.Metadata.Description != "" || override.Metadata.Source != "" {
		merged.Metadata = override.Metadata
	}
	for _, fy := range byYear {
		merged.FiscalYears = append(merged.FiscalYears, fy)
	}
	sort.Slice(merged.FiscalYears, func(i, j int) bool {
		return merged.FiscalYears[i].FiscalYear < merged.FiscalYears[j].FiscalYear
	})
	return merged
}

// ValidateFiscalYearRules checks a rule set for the structural invariants the
// slab generator relies on. Only the supported fiscal years are accepted; a
// rules file overrides a year, it cannot add one.
func ValidateFiscalYearRules(r domain.FiscalYearRules) error {
	if _, err := domain.ParseFiscalYear(string(r.FiscalYear)); err != nil {
		return err
	}
	if len(r.Schedule.Bands) == 0 {
		return fmt.Errorf("schedule must have at least one band")
	}
	prev := decimal.Zero
	for i, band := range r.Schedule.Bands {
		if !band.Width.IsPositive() {
			return fmt.Errorf("band %d: width must be positive", i)
		}
		if band.RatePercent.LessThan(prev) {
			return fmt.Errorf("band %d: rates must be non-decreasing", i)
		}
		prev = band.RatePercent
	}
	if r.Schedule.TopRatePercent.LessThan(prev) {
		return fmt.Errorf("top rate must not be lower than the last band rate")
	}
	if _, ok := r.Thresholds[domain.CategoryGeneral]; !ok {
		return fmt.Errorf("a general threshold is required")
	}
	for cat, v := range r.Thresholds {
		if !cat.Valid() {
			return fmt.Errorf("unknown threshold category %q", cat)
		}
		if v.IsNegative() {
			return fmt.Errorf("threshold for %s cannot be negative", cat)
		}
	}
	if r.FlatMinimumTax.IsZero() && len(r.MinimumTax) == 0 {
		return fmt.Errorf("either flat_minimum_tax or a minimum_tax table is required")
	}
	for loc := range r.MinimumTax {
		if !loc.Valid() {
			return fmt.Errorf("unknown minimum tax location %q", loc)
		}
	}
	if _, err := NewRebateStrategy(r.Rebate); err != nil {
		return fmt.Errorf("rebate: %w", err)
	}
	return nil
}
