package store

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rgehrsitz/bdtax/internal/calculation"
	"github.com/rgehrsitz/bdtax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func sampleInput() *domain.TaxInput {
	age := 66
	in := domain.DefaultTaxInput()
	in.Profile = domain.TaxpayerProfile{Category: domain.CategoryFemale, Age: &age, Location: domain.LocationChittagong}
	in.Months = domain.UniformMonths(domain.MonthlySalary{
		Basic:      d(80000),
		HouseRent:  d(40000),
		Medical:    d(8000),
		Conveyance: d(2500),
		LFA:        d(1000),
		TDS:        d(4000),
	})
	in.Bonuses = []domain.Bonus{{Name: "Eid-ul-Fitr", Amount: d(80000), TDS: d(2000)}}
	in.Investments[0].Amount = d(120000)
	in.Investments[1].Amount = d(250000)
	in.OtherTDS = d(3000)
	return in
}

func assertFinalEqual(t *testing.T, want, got domain.FinalTaxResult) {
	t.Helper()
	assert.True(t, want.TotalTax.Equal(got.TotalTax), "total tax %s != %s", want.TotalTax, got.TotalTax)
	assert.Equal(t, want.IsMinimumTaxApplied, got.IsMinimumTaxApplied)
	assert.True(t, want.MinimumTaxAmount.Equal(got.MinimumTaxAmount))
	assert.True(t, want.Payable.Equal(got.Payable), "payable %s != %s", want.Payable, got.Payable)
	assert.True(t, want.TotalDeductedAtSource.Equal(got.TotalDeductedAtSource))
	assert.True(t, want.InvestmentRebate.Equal(got.InvestmentRebate))
}

func TestExportImport_RoundTrip(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	original := sampleInput()

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, original))

	imported, err := Import(&buf)
	require.NoError(t, err)

	want, err := engine.CalculateAll(original)
	require.NoError(t, err)
	got, err := engine.CalculateAll(imported)
	require.NoError(t, err)

	assertFinalEqual(t, want.Previous.Final, got.Previous.Final)
	assertFinalEqual(t, want.Current.Final, got.Current.Final)
	assert.Equal(t, domain.CategorySenior, got.Current.EffectiveCategory)
	require.NotNil(t, imported.Investments[0].Maximum)
	assert.True(t, imported.Investments[0].Maximum.Equal(d(120000)))
}

func TestImport_ToleratesUnknownAndMissingFields(t *testing.T) {
	doc := `{
		"theme": "dark",
		"profile": {"category": "freedom_fighter", "favourite": "tea"},
		"months": [{"basic": "30000", "bonusNote": "x"}]
	}`
	in, err := Import(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, domain.StateVersion, in.Version)
	assert.Equal(t, domain.CategoryFreedomFighter, in.Profile.Category)
	assert.Equal(t, domain.LocationDhaka, in.Profile.Location)
	require.Len(t, in.Months, 12)
	assert.Equal(t, "July", in.Months[0].Month)
	assert.True(t, in.Months[0].Basic.Equal(d(30000)))
	assert.Equal(t, "June", in.Months[11].Month)
	assert.Len(t, in.Investments, len(domain.DefaultInvestments()))
	assert.NotNil(t, in.Bonuses)
}

func TestImport_Malformed(t *testing.T) {
	_, err := Import(strings.NewReader(`{"months": "twelve"}`))
	assert.ErrorContains(t, err, "failed to decode state")
}

func TestSaveLoadState(t *testing.T) {
	kv := NewFileKV(filepath.Join(t.TempDir(), "state.json"))

	in, err := LoadState(kv)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTaxInput(), in)

	require.NoError(t, SaveState(kv, sampleInput()))
	loaded, err := LoadState(kv)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryFemale, loaded.Profile.Category)
	assert.True(t, loaded.Months[5].Basic.Equal(d(80000)))

	require.NoError(t, ClearState(kv))
	in, err = LoadState(kv)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTaxInput(), in)

	assert.Error(t, SaveState(kv, nil))
}

func TestLoadState_CorruptFallsBackToDefaults(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(domain.StateVersion, []byte(`{"profile": 42}`)))

	in, err := LoadState(kv)
	assert.ErrorContains(t, err, "saved state is corrupt, using defaults")
	require.NotNil(t, in)
	assert.Equal(t, domain.DefaultTaxInput(), in)
}
