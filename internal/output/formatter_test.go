package output

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/bdtax/internal/calculation"
	"github.com/rgehrsitz/bdtax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleComparison(t *testing.T) *domain.TaxComparison {
	t.Helper()
	in := domain.DefaultTaxInput()
	in.Months = domain.UniformMonths(domain.MonthlySalary{
		Basic:      decimal.NewFromInt(50000),
		HouseRent:  decimal.NewFromInt(25000),
		Medical:    decimal.NewFromInt(5000),
		Conveyance: decimal.NewFromInt(2500),
		TDS:        decimal.NewFromInt(2000),
	})
	in.Bonuses = []domain.Bonus{{Name: "Eid", Amount: decimal.NewFromInt(100000)}}
	in.OtherTDS = decimal.NewFromInt(1000)

	cmp, err := calculation.NewCalculationEngine().CalculateAll(in)
	require.NoError(t, err)
	return cmp
}

func TestGetFormatterByName(t *testing.T) {
	assert.Equal(t, "console", GetFormatterByName("table").Name())
	assert.Equal(t, "console", GetFormatterByName("").Name())
	assert.Equal(t, "json", GetFormatterByName(" JSON ").Name())
	assert.Equal(t, "csv", GetFormatterByName("csv-summary").Name())
	assert.Nil(t, GetFormatterByName("html"))
	assert.Equal(t, []string{"console", "csv", "json"}, AvailableFormatterNames())
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(sampleComparison(t))
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "FY2024-25")
	assert.Contains(t, text, "FY2025-26")
	assert.Contains(t, text, "Tk 7,00,000")
	assert.Contains(t, text, "+Tk 3,750")
	assert.Contains(t, text, "Next Tk3 lakh [3.8-6.8 lakh]")
	assert.Contains(t, text, "You pay Tk 3,750 more in FY2025-26 than in FY2024-25.")

	_, err = ConsoleFormatter{}.Format(&domain.TaxComparison{})
	assert.Error(t, err)
}

func TestCSVFormatter(t *testing.T) {
	out, err := CSVFormatter{}.Format(sampleComparison(t))
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	// header + (7 slabs + 7 summary) + (6 slabs + 7 summary)
	assert.Len(t, records, 1+14+13)
	assert.Equal(t, []string{"2024-25", "slab", "First Tk3.5 lakh", "0", "350000", "0"}, records[1])

	var payable []string
	for _, r := range records {
		if r[2] == "Payable" {
			payable = append(payable, r[5])
		}
	}
	assert.Equal(t, []string{"5000", "8750"}, payable)
}

func TestJSONFormatter(t *testing.T) {
	cmp := sampleComparison(t)
	out, err := JSONFormatter{}.Format(cmp)
	require.NoError(t, err)

	var decoded domain.TaxComparison
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.True(t, decoded.PayableDifference.Equal(decimal.NewFromInt(3750)))
	assert.Equal(t, domain.FY2025_26, decoded.Current.FiscalYear)
	assert.True(t, strings.Contains(string(out), `"payableDifference"`))
}

func TestGenerateReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, GenerateReport(&buf, sampleComparison(t), "csv"))
	assert.True(t, strings.HasPrefix(buf.String(), "FiscalYear,"))

	err := GenerateReport(&buf, sampleComparison(t), "pdf")
	assert.ErrorContains(t, err, "unsupported format: pdf")
}

func TestWriteFormatted(t *testing.T) {
	dir := t.TempDir()
	name, err := WriteFormatted(ConsoleFormatter{}, sampleComparison(t), dir)
	require.NoError(t, err)
	assert.Equal(t, ".txt", filepath.Ext(name))

	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Contains(t, string(data), "BANGLADESH INCOME TAX COMPARISON")
}

func TestSummarize(t *testing.T) {
	cmp := sampleComparison(t)
	s := Summarize(cmp)
	assert.Equal(t, domain.FY2024_25, s.CheaperYear)
	assert.True(t, s.PercentageChange.Equal(decimal.NewFromInt(75)), "got %s", s.PercentageChange)

	same := &domain.TaxComparison{Previous: cmp.Previous, Current: cmp.Previous}
	assert.Equal(t, domain.FiscalYear(""), Summarize(same).CheaperYear)
	assert.Contains(t, Summarize(same).Sentence(same), "the same")

	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestFormatterFunc(t *testing.T) {
	f := FormatterFunc{ID: "count", F: func(c *domain.TaxComparison) ([]byte, error) {
		return []byte(c.Current.FiscalYear), nil
	}}
	out, err := f.Format(sampleComparison(t))
	require.NoError(t, err)
	assert.Equal(t, "2025-26", string(out))
	assert.Equal(t, "count", f.Name())
}
