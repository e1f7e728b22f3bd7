package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTaxInput(t *testing.T) {
	in := DefaultTaxInput()
	assert.Equal(t, StateVersion, in.Version)
	require.Len(t, in.Months, 12)
	assert.Equal(t, "July", in.Months[0].Month)
	assert.Equal(t, "June", in.Months[11].Month)
	assert.NotNil(t, in.Bonuses)
	assert.Len(t, in.Investments, len(DefaultInvestments()))
}

func TestTaxInput_ApplyDefaults(t *testing.T) {
	in := &TaxInput{
		Profile: TaxpayerProfile{Category: "bogus", Location: "ctg"},
		Months: []MonthlySalary{
			{Basic: decimal.NewFromInt(40000)},
			{Month: "Custom", Basic: decimal.NewFromInt(40000)},
		},
	}
	in.ApplyDefaults()

	assert.Equal(t, StateVersion, in.Version)
	assert.Equal(t, CategoryGeneral, in.Profile.Category)
	assert.Equal(t, LocationChittagong, in.Profile.Location)
	require.Len(t, in.Months, 12)
	assert.Equal(t, "July", in.Months[0].Month)
	assert.Equal(t, "Custom", in.Months[1].Month)
	assert.Equal(t, "September", in.Months[2].Month)
	assert.True(t, in.Months[2].Basic.IsZero())
	assert.NotNil(t, in.Bonuses)
	assert.NotEmpty(t, in.Investments)

	long := &TaxInput{Months: make([]MonthlySalary, 15)}
	long.ApplyDefaults()
	assert.Len(t, long.Months, 12)

	explicit := &TaxInput{Investments: []Investment{}}
	explicit.ApplyDefaults()
	assert.Empty(t, explicit.Investments, "an explicitly empty list is kept")
}

func TestTaxInput_Clone(t *testing.T) {
	age := 40
	in := DefaultTaxInput()
	in.Profile.Age = &age
	in.Bonuses = append(in.Bonuses, Bonus{Name: "Eid", Amount: decimal.NewFromInt(1000)})

	out := in.Clone()
	out.Months[0].Basic = decimal.NewFromInt(99)
	out.Bonuses[0].Name = "changed"
	*out.Profile.Age = 41
	*out.Investments[0].Maximum = decimal.NewFromInt(1)

	assert.True(t, in.Months[0].Basic.IsZero())
	assert.Equal(t, "Eid", in.Bonuses[0].Name)
	assert.Equal(t, 40, *in.Profile.Age)
	assert.True(t, in.Investments[0].Maximum.Equal(decimal.NewFromInt(120000)))
}

func TestMonthlySalary_Gross(t *testing.T) {
	m := MonthlySalary{
		Basic:      decimal.NewFromInt(50000),
		HouseRent:  decimal.NewFromInt(25000),
		Medical:    decimal.NewFromInt(5000),
		Conveyance: decimal.NewFromInt(2500),
		LFA:        decimal.NewFromInt(1000),
		Other:      decimal.NewFromInt(500),
		TDS:        decimal.NewFromInt(9999),
	}
	assert.True(t, m.Gross().Equal(decimal.NewFromInt(84000)))
}

func TestTaxBracket_Width(t *testing.T) {
	b := TaxBracket{LowerBound: decimal.NewFromInt(350000), UpperBound: decimal.NewFromInt(450000)}
	w, ok := b.Width()
	assert.True(t, ok)
	assert.True(t, w.Equal(decimal.NewFromInt(100000)))
}
