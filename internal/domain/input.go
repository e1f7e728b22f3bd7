package domain

import (
	"github.com/shopspring/decimal"
)

// StateVersion is the key the persisted input state is stored under.
// Bump it when the shape of TaxInput changes incompatibly.
const StateVersion = "bdtax-v1"

// FiscalMonths are the months of a Bangladesh income year in order (July to June)
var FiscalMonths = []string{
	"July", "August", "September", "October", "November", "December",
	"January", "February", "March", "April", "May", "June",
}

// MonthlySalary is one month of salary components and tax deducted at source
type MonthlySalary struct {
	Month      string          `yaml:"month" json:"month"`
	Basic      decimal.Decimal `yaml:"basic" json:"basic"`
	HouseRent  decimal.Decimal `yaml:"house_rent" json:"house_rent"`
	Medical    decimal.Decimal `yaml:"medical" json:"medical"`
	Conveyance decimal.Decimal `yaml:"conveyance" json:"conveyance"`
	LFA        decimal.Decimal `yaml:"lfa" json:"lfa"` // leave fare assistance, never exempt
	Other      decimal.Decimal `yaml:"other" json:"other"`
	TDS        decimal.Decimal `yaml:"tds" json:"tds"`
}

// Gross returns the total of all salary components for the month
func (m MonthlySalary) Gross() decimal.Decimal {
	return m.Basic.Add(m.HouseRent).Add(m.Medical).Add(m.Conveyance).Add(m.LFA).Add(m.Other)
}

// Bonus is a festival or performance bonus paid during the year
type Bonus struct {
	Name   string          `yaml:"name" json:"name"`
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
	TDS    decimal.Decimal `yaml:"tds" json:"tds"`
}

// Investment is one rebate-eligible investment line.
// A nil Maximum means the line is not individually capped.
type Investment struct {
	Name    string           `yaml:"name" json:"name"`
	Amount  decimal.Decimal  `yaml:"amount" json:"amount"`
	Maximum *decimal.Decimal `yaml:"maximum,omitempty" json:"maximum,omitempty"`
}

// TaxInput is the complete user-entered state. It is also the persisted and
// exported JSON shape.
type TaxInput struct {
	Version     string          `yaml:"version" json:"version"`
	Profile     TaxpayerProfile `yaml:"profile" json:"profile"`
	Months      []MonthlySalary `yaml:"months" json:"months"`
	Bonuses     []Bonus         `yaml:"bonuses" json:"bonuses"`
	Investments []Investment    `yaml:"investments" json:"investments"`
	OtherTDS    decimal.Decimal `yaml:"other_tds" json:"other_tds"` // advance tax and TDS outside salary
}

func capAt(amount int64) *decimal.Decimal {
	d := decimal.NewFromInt(amount)
	return &d
}

// DefaultInvestments returns the investment lines offered before the user adds their own
func DefaultInvestments() []Investment {
	return []Investment{
		{Name: "Deposit Pension Scheme (DPS)", Amount: decimal.Zero, Maximum: capAt(120000)},
		{Name: "Savings certificates (Sanchayapatra)", Amount: decimal.Zero, Maximum: capAt(500000)},
		{Name: "Life insurance premium", Amount: decimal.Zero},
		{Name: "Provident fund contribution", Amount: decimal.Zero},
		{Name: "Listed securities", Amount: decimal.Zero},
	}
}

// UniformMonths returns twelve copies of template, one per fiscal month
func UniformMonths(template MonthlySalary) []MonthlySalary {
	months := make([]MonthlySalary, len(FiscalMonths))
	for i, name := range FiscalMonths {
		months[i] = template
		months[i].Month = name
	}
	return months
}

// DefaultTaxInput returns an empty state with the default profile and investment lines
func DefaultTaxInput() *TaxInput {
	return &TaxInput{
		Version:     StateVersion,
		Profile:     DefaultProfile(),
		Months:      UniformMonths(MonthlySalary{}),
		Bonuses:     []Bonus{},
		Investments: DefaultInvestments(),
	}
}

// ApplyDefaults fills in anything missing from a decoded state so that partial
// or older exports can still be calculated. It mutates the receiver.
func (in *TaxInput) ApplyDefaults() {
	if in.Version == "" {
		in.Version = StateVersion
	}
	in.Profile = in.Profile.Normalized()

	if len(in.Months) > len(FiscalMonths) {
		in.Months = in.Months[:len(FiscalMonths)]
	}
	for i := range in.Months {
		if in.Months[i].Month == "" {
			in.Months[i].Month = FiscalMonths[i]
		}
	}
	for i := len(in.Months); i < len(FiscalMonths); i++ {
		in.Months = append(in.Months, MonthlySalary{Month: FiscalMonths[i]})
	}

	if in.Bonuses == nil {
		in.Bonuses = []Bonus{}
	}
	if in.Investments == nil {
		in.Investments = DefaultInvestments()
	}
}

// Clone returns a deep copy so callers can edit without touching shared state
func (in *TaxInput) Clone() *TaxInput {
	out := *in
	if in.Profile.Age != nil {
		age := *in.Profile.Age
		out.Profile.Age = &age
	}
	out.Months = append([]MonthlySalary(nil), in.Months...)
	out.Bonuses = append([]Bonus(nil), in.Bonuses...)
	out.Investments = make([]Investment, len(in.Investments))
	for i, inv := range in.Investments {
		out.Investments[i] = inv
		if inv.Maximum != nil {
			m := *inv.Maximum
			out.Investments[i].Maximum = &m
		}
	}
	return &out
}
