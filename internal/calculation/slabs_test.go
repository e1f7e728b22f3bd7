package calculation

import (
	"testing"

	"github.com/rgehrsitz/bdtax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestGenerateSlabs_FY2024_25(t *testing.T) {
	slabs := GenerateSlabs(d(350000), FY2024_25Rules().Schedule)
	require.Len(t, slabs, 7)

	labels := make([]string, len(slabs))
	for i, s := range slabs {
		labels[i] = s.Label
	}
	assert.Equal(t, []string{
		"First Tk3.5 lakh",
		"Next Tk1 lakh [3.5-4.5 lakh]",
		"Next Tk4 lakh [4.5-8.5 lakh]",
		"Next Tk5 lakh [8.5-13.5 lakh]",
		"Next Tk5 lakh [13.5-18.5 lakh]",
		"Next Tk20 lakh [18.5-38.5 lakh]",
		"Remaining [above 38.5 lakh]",
	}, labels)

	assert.True(t, slabs[0].RatePercent.IsZero())
	assert.True(t, slabs[0].UpperBound.Equal(d(350000)))
	assert.True(t, slabs[1].RatePercent.Equal(d(5)))
	assert.True(t, slabs[6].Unbounded)
	assert.True(t, slabs[6].LowerBound.Equal(d(3850000)))
	assert.True(t, slabs[6].RatePercent.Equal(d(30)))
}

func TestGenerateSlabs_FY2025_26Labels(t *testing.T) {
	slabs := GenerateSlabs(d(375000), FY2025_26Rules().Schedule)
	require.Len(t, slabs, 6)

	assert.Equal(t, "First Tk3.8 lakh", slabs[0].Label)
	assert.Equal(t, "Next Tk3 lakh [3.8-6.8 lakh]", slabs[1].Label)
	assert.Equal(t, "Next Tk4 lakh [6.8-10.8 lakh]", slabs[2].Label)
	assert.Equal(t, "Remaining [above 35.8 lakh]", slabs[5].Label)
}

func TestGenerateSlabs_Contiguous(t *testing.T) {
	for _, threshold := range []int64{0, 1, 350000, 425000, 575000, 10000000} {
		slabs := GenerateSlabs(d(threshold), FY2024_25Rules().Schedule)
		assert.True(t, slabs[0].LowerBound.IsZero())
		for i := 1; i < len(slabs); i++ {
			assert.True(t, slabs[i].LowerBound.Equal(slabs[i-1].UpperBound),
				"threshold %d: slab %d must start where slab %d ends", threshold, i, i-1)
		}
		for i, s := range slabs {
			assert.Equal(t, i == len(slabs)-1, s.Unbounded)
		}
	}
}

// A negative threshold shifts the brackets down only as far as zero: the
// schedule is the same as for a zero threshold, so no bracket has a negative
// edge and the slab amounts still add up to the income.
func TestGenerateSlabs_NegativeThreshold(t *testing.T) {
	slabs := GenerateSlabs(d(-1000), FY2025_26Rules().Schedule)
	assert.True(t, slabs[0].UpperBound.IsZero())
	assert.Equal(t, "First Tk0 lakh", slabs[0].Label)
	assert.True(t, slabs[1].LowerBound.IsZero())
	zero := GenerateSlabs(d(0), FY2025_26Rules().Schedule)
	require.Len(t, slabs, len(zero))
	for i := range zero {
		assert.Equal(t, zero[i].Label, slabs[i].Label)
		assert.True(t, zero[i].LowerBound.Equal(slabs[i].LowerBound), zero[i].Label)
	}

	breakdown := CalculateBreakdown(d(500000), slabs)
	assert.True(t, TotalTaxable(breakdown).Equal(d(500000)))
	for _, b := range breakdown {
		assert.False(t, b.TaxableAmount.IsNegative(), b.Bracket.Label)
	}
}

func TestGenerateSlabs_EmptySchedule(t *testing.T) {
	slabs := GenerateSlabs(d(300000), domain.RateSchedule{TopRatePercent: d(10)})
	require.Len(t, slabs, 2)
	assert.Equal(t, "Remaining [above 3 lakh]", slabs[1].Label)

	width, ok := slabs[0].Width()
	assert.True(t, ok)
	assert.True(t, width.Equal(d(300000)))
	_, ok = slabs[1].Width()
	assert.False(t, ok)
}
