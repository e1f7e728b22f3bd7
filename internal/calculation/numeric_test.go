package calculation

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"120000", "120000"},
		{"1,20,000", "120000"},
		{"Tk 1,20,000", "120000"},
		{"৳5,000.50", "5000.5"},
		{"  75 000 ", "75000"},
		{"1_000", "1000"},
		{"-5000", "0"},
		{"abc", "0"},
		{"", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseAmount(tt.input).String())
		})
	}
}

func TestCoerceFloat(t *testing.T) {
	assert.True(t, CoerceFloat(math.NaN()).IsZero())
	assert.True(t, CoerceFloat(math.Inf(1)).IsZero())
	assert.True(t, CoerceFloat(math.Inf(-1)).IsZero())
	assert.True(t, CoerceFloat(-1).IsZero())
	assert.True(t, CoerceFloat(2500.5).Equal(decimal.RequireFromString("2500.5")))
}

func TestRoundTaka(t *testing.T) {
	assert.Equal(t, "3", RoundTaka(decimal.RequireFromString("2.5")).String())
	assert.Equal(t, "2", RoundTaka(decimal.RequireFromString("2.49")).String())
	assert.Equal(t, "6250", RoundTaka(decimal.RequireFromString("6249.5")).String())
}

func TestLakhString(t *testing.T) {
	assert.Equal(t, "3.5", LakhString(d(350000)))
	assert.Equal(t, "3.8", LakhString(d(375000)))
	assert.Equal(t, "20", LakhString(d(2000000)))
	assert.Equal(t, "0", LakhString(decimal.Zero))
}
