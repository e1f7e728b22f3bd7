package calculation

import (
	"testing"

	"github.com/rgehrsitz/bdtax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQualifyingInvestment(t *testing.T) {
	dps := d(120000)
	investments := []domain.Investment{
		{Name: "DPS", Amount: d(200000), Maximum: &dps},
		{Name: "Life insurance", Amount: d(50000)},
		{Name: "Bad line", Amount: d(-10000)},
	}
	assert.True(t, QualifyingInvestment(investments).Equal(d(170000)))
	assert.True(t, QualifyingInvestment(nil).IsZero())
}

func TestCalculateInvestmentRebate(t *testing.T) {
	tests := []struct {
		name       string
		qualifying int64
		rate       decimal.Decimal
		ceiling    int64
		expected   int64
	}{
		{"below ceiling", 100000, d(15), 200000, 15000},
		{"capped by ceiling", 300000, d(15), 200000, 30000},
		{"fractional rate", 100000, decimal.RequireFromString("12.5"), 120000, 12500},
		{"zero ceiling", 100000, d(10), 0, 0},
		{"negative investment", -5000, d(10), 100000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateInvestmentRebate(d(tt.qualifying), tt.rate, d(tt.ceiling))
			assert.True(t, got.Equal(d(tt.expected)), "got %s", got)
		})
	}
}

func TestNewRebateStrategy(t *testing.T) {
	s, err := NewRebateStrategy(FY2024_25Rules().Rebate)
	require.NoError(t, err)
	assert.Equal(t, domain.RebateIncomeShare, s.Method())

	s, err = NewRebateStrategy(FY2025_26Rules().Rebate)
	require.NoError(t, err)
	assert.Equal(t, domain.RebateIncomeBanded, s.Method())

	_, err = NewRebateStrategy(domain.RebateRules{Method: "flat"})
	assert.Error(t, err)

	_, err = NewRebateStrategy(domain.RebateRules{Method: domain.RebateIncomeBanded})
	assert.ErrorContains(t, err, "income_ceiling_divisor")
}

func TestIncomeShareRebate(t *testing.T) {
	s, err := NewRebateStrategy(FY2024_25Rules().Rebate)
	require.NoError(t, err)

	tests := []struct {
		name       string
		income     int64
		investment int64
		expected   int64
	}{
		{"investment share binds", 1000000, 100000, 15000},
		{"income share binds", 1000000, 400000, 30000},
		{"flat cap binds", 100000000, 20000000, 1000000},
		{"no investment", 1000000, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := s.Calculate(d(tt.income), d(tt.investment))
			assert.True(t, r.Rebate.Equal(d(tt.expected)), "got %s", r.Rebate)
			assert.True(t, r.RatePercent.Equal(d(15)))
		})
	}

	r := s.Calculate(d(1000000), d(100000))
	assert.True(t, r.Ceiling.Equal(d(200000)), "got %s", r.Ceiling)
}

func TestBandedRebate_RateFor(t *testing.T) {
	s, err := NewRebateStrategy(FY2025_26Rules().Rebate)
	require.NoError(t, err)
	banded := s.(BandedRebate)

	tests := []struct {
		income   int64
		expected string
	}{
		{0, "10"},
		{500000, "10"},
		{500001, "12.5"},
		{700000, "12.5"},
		{1100000, "15"},
		{1600000, "17.5"},
		{1600001, "20"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, banded.RateFor(d(tt.income)).String(), "income %d", tt.income)
	}
	assert.True(t, banded.MaxRate().Equal(d(20)))
}

func TestBandedRebate_Calculate(t *testing.T) {
	s, err := NewRebateStrategy(FY2025_26Rules().Rebate)
	require.NoError(t, err)

	r := s.Calculate(d(1000000), d(300000))
	assert.True(t, r.Ceiling.Equal(d(200000)))
	assert.True(t, r.RatePercent.Equal(d(15)))
	assert.True(t, r.Rebate.Equal(d(30000)))

	r = s.Calculate(d(600000), d(100000))
	assert.True(t, r.Ceiling.Equal(d(120000)))
	assert.True(t, r.Rebate.Equal(d(12500)))

	r = s.Calculate(d(80000000), d(5000000))
	assert.True(t, r.Ceiling.Equal(d(1000000)), "ceiling is capped")
	assert.True(t, r.Rebate.Equal(d(200000)))
}

func TestRebate_NeverExceedsCeiling(t *testing.T) {
	for _, rules := range []domain.FiscalYearRules{FY2024_25Rules(), FY2025_26Rules()} {
		s, err := NewRebateStrategy(rules.Rebate)
		require.NoError(t, err)

		maxRate := rules.Rebate.InvestmentSharePercent
		if b, ok := s.(BandedRebate); ok {
			maxRate = b.MaxRate()
		}
		for income := int64(0); income <= 50000000; income += 737111 {
			for _, investment := range []int64{0, 12345, 150000, 999999, 4000000, 30000000} {
				r := s.Calculate(d(income), d(investment))
				limit := RoundTaka(r.Ceiling.Mul(maxRate).Div(hundred))
				assert.True(t, r.Rebate.LessThanOrEqual(limit),
					"%s income %d investment %d: rebate %s > %s", rules.FiscalYear, income, investment, r.Rebate, limit)
			}
		}
	}
}
