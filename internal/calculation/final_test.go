package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveFinalTax(t *testing.T) {
	tests := []struct {
		name                           string
		calculated, minimum, tds, rebt int64
		wantTotal, wantPayable         int64
		wantMinimumApplied             bool
	}{
		{"minimum tax floor", 0, 5000, 0, 0, 5000, 5000, true},
		{"calculated below minimum", 2500, 5000, 0, 0, 5000, 5000, true},
		{"calculated above minimum", 115000, 5000, 0, 0, 115000, 115000, false},
		{"equal is not applied", 5000, 5000, 0, 0, 5000, 5000, false},
		{"tds and rebate", 115000, 5000, 60000, 30000, 115000, 25000, false},
		{"over-deducted clamps to zero", 115000, 5000, 100000, 30000, 115000, 0, false},
		{"negative inputs", -10, -5000, -1, -1, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ResolveFinalTax(d(tt.calculated), d(tt.minimum), d(tt.tds), d(tt.rebt))
			assert.True(t, r.TotalTax.Equal(d(tt.wantTotal)), "total %s", r.TotalTax)
			assert.True(t, r.Payable.Equal(d(tt.wantPayable)), "payable %s", r.Payable)
			assert.Equal(t, tt.wantMinimumApplied, r.IsMinimumTaxApplied)
			assert.True(t, r.TotalTax.GreaterThanOrEqual(r.MinimumTaxAmount))
			assert.False(t, r.Payable.IsNegative())
		})
	}
}
