package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input    string
		expected Category
	}{
		{"general", CategoryGeneral},
		{" Female ", CategoryFemale},
		{"women", CategoryFemale},
		{"65+", CategorySenior},
		{"third-gender", CategoryThirdGender},
		{"parent_of_disabled", CategoryParentOfDisabled},
		{"", CategoryGeneral},
		{"unknown", CategoryGeneral},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseCategory(tt.input), "input %q", tt.input)
	}

	_, ok := LookupCategory("unknown")
	assert.False(t, ok)
}

func TestParseLocation(t *testing.T) {
	assert.Equal(t, LocationChittagong, ParseLocation("Chattogram"))
	assert.Equal(t, LocationOtherCity, ParseLocation("other_city"))
	assert.Equal(t, LocationDistrict, ParseLocation("rural"))
	assert.Equal(t, LocationDhaka, ParseLocation("atlantis"))

	_, ok := LookupLocation("atlantis")
	assert.False(t, ok)
}

func TestTaxpayerProfile_Normalized(t *testing.T) {
	age := -4
	p := TaxpayerProfile{Category: "WOMAN", Age: &age, Location: ""}.Normalized()
	assert.Equal(t, CategoryFemale, p.Category)
	assert.Equal(t, LocationDhaka, p.Location)
	assert.Nil(t, p.Age)

	age = 70
	p = TaxpayerProfile{Age: &age}.Normalized()
	require.NotNil(t, p.Age)
	age = 10
	assert.Equal(t, 70, *p.Age, "normalized profile must not alias the age pointer")
}

func TestParseFiscalYear(t *testing.T) {
	for _, s := range []string{"2024-25", "FY2024-25", "fy 2024-2025", "2024"} {
		fy, err := ParseFiscalYear(s)
		require.NoError(t, err, s)
		assert.Equal(t, FY2024_25, fy)
	}
	fy, err := ParseFiscalYear("FY2025-26")
	require.NoError(t, err)
	assert.Equal(t, "FY2025-26", fy.Label())

	_, err = ParseFiscalYear("2019-20")
	assert.Error(t, err)
}
