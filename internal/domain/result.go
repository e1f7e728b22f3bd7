package domain

import (
	"github.com/shopspring/decimal"
)

// TaxBracket is one marginal-rate slab. The last slab of a schedule has no
// upper edge; Unbounded is set and UpperBound is left at zero.
type TaxBracket struct {
	Label       string          `json:"label"`
	LowerBound  decimal.Decimal `json:"lowerBound"`
	UpperBound  decimal.Decimal `json:"upperBound"`
	Unbounded   bool            `json:"unbounded"`
	RatePercent decimal.Decimal `json:"ratePercent"`
}

// Width returns the span of the bracket; ok is false for the unbounded bracket
func (b TaxBracket) Width() (width decimal.Decimal, ok bool) {
	if b.Unbounded {
		return decimal.Zero, false
	}
	return b.UpperBound.Sub(b.LowerBound), true
}

// BracketResult is the share of taxable income that fell into one bracket
type BracketResult struct {
	Bracket       TaxBracket      `json:"bracket"`
	TaxableAmount decimal.Decimal `json:"taxableAmount"`
	TaxOwed       decimal.Decimal `json:"taxOwed"`
}

// Exemptions holds the exempt portions of salary allowances
type Exemptions struct {
	HouseRent  decimal.Decimal `json:"houseRent"`
	Medical    decimal.Decimal `json:"medical"`
	Conveyance decimal.Decimal `json:"conveyance"`
	Total      decimal.Decimal `json:"total"`
}

// IncomeSummary is the annualised income picture that feeds the slabs
type IncomeSummary struct {
	BasicSalary      decimal.Decimal `json:"basicSalary"`
	HouseRent        decimal.Decimal `json:"houseRent"`
	Medical          decimal.Decimal `json:"medical"`
	Conveyance       decimal.Decimal `json:"conveyance"`
	LFA              decimal.Decimal `json:"lfa"`
	OtherSalary      decimal.Decimal `json:"otherSalary"`
	Bonuses          decimal.Decimal `json:"bonuses"`
	GrossIncome      decimal.Decimal `json:"grossIncome"`
	Exemptions       Exemptions      `json:"exemptions"`
	TaxableIncome    decimal.Decimal `json:"taxableIncome"`
	DeductedAtSource decimal.Decimal `json:"deductedAtSource"`
}

// RebateResult explains how the investment rebate was derived
type RebateResult struct {
	Method               RebateMethod    `json:"method"`
	QualifyingInvestment decimal.Decimal `json:"qualifyingInvestment"`
	Ceiling              decimal.Decimal `json:"ceiling"`
	RatePercent          decimal.Decimal `json:"ratePercent"`
	Rebate               decimal.Decimal `json:"rebate"`
}

// FinalTaxResult is the payable position after minimum tax, TDS and rebate
type FinalTaxResult struct {
	TotalTax              decimal.Decimal `json:"totalTax"`
	IsMinimumTaxApplied   bool            `json:"isMinimumTaxApplied"`
	MinimumTaxAmount      decimal.Decimal `json:"minimumTaxAmount"`
	Payable               decimal.Decimal `json:"payable"`
	TotalDeductedAtSource decimal.Decimal `json:"totalDeductedAtSource"`
	InvestmentRebate      decimal.Decimal `json:"investmentRebate"`
}

// YearResult is the full pipeline output for one fiscal year
type YearResult struct {
	FiscalYear        FiscalYear      `json:"fiscalYear"`
	EffectiveCategory Category        `json:"effectiveCategory"`
	Threshold         decimal.Decimal `json:"threshold"`
	MinimumTax        decimal.Decimal `json:"minimumTax"`
	Income            IncomeSummary   `json:"income"`
	Slabs             []TaxBracket    `json:"slabs"`
	Breakdown         []BracketResult `json:"breakdown"`
	CalculatedTax     decimal.Decimal `json:"calculatedTax"`
	Rebate            RebateResult    `json:"rebate"`
	Final             FinalTaxResult  `json:"final"`
}

// TaxComparison places two fiscal years side by side. Differences are
// Current minus Previous.
type TaxComparison struct {
	Previous           *YearResult     `json:"previous"`
	Current            *YearResult     `json:"current"`
	TotalTaxDifference decimal.Decimal `json:"totalTaxDifference"`
	PayableDifference  decimal.Decimal `json:"payableDifference"`
}
