package output

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatTaka(t *testing.T) {
	tests := []struct {
		amount   string
		expected string
	}{
		{"0", "Tk 0"},
		{"999", "Tk 999"},
		{"1000", "Tk 1,000"},
		{"12345", "Tk 12,345"},
		{"123456", "Tk 1,23,456"},
		{"1234567", "Tk 12,34,567"},
		{"10000000", "Tk 1,00,00,000"},
		{"2499.5", "Tk 2,500"},
		{"-3750", "-Tk 3,750"},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatTaka(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestFormatSignedTaka(t *testing.T) {
	assert.Equal(t, "+Tk 3,750", FormatSignedTaka(decimal.NewFromInt(3750)))
	assert.Equal(t, "-Tk 500", FormatSignedTaka(decimal.NewFromInt(-500)))
	assert.Equal(t, "Tk 0", FormatSignedTaka(decimal.RequireFromString("0.4")))
}

func TestFormatLakhAndPercentage(t *testing.T) {
	assert.Equal(t, "3.8 lakh", FormatLakh(decimal.NewFromInt(375000)))
	assert.Equal(t, "12.5%", FormatPercentage(decimal.RequireFromString("12.5")))
	assert.Equal(t, "0%", FormatPercentage(decimal.Zero))
}
