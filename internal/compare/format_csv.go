package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output: the metric rows, then one row per alternative
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{"Type", "Name", string(compSet.PreviousYear), string(compSet.CurrentYear), "Change"}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for _, m := range compSet.Metrics {
		row := []string{"metric", m.Metric, m.Previous.StringFixed(0), m.Current.StringFixed(0), m.Change.StringFixed(0)}
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}

	for _, b := range compSet.Brackets {
		row := []string{"slab", strconv.Itoa(b.Index), "", "", ""}
		if b.Previous != nil {
			row[2] = b.Previous.TaxOwed.StringFixed(0)
		}
		if b.Current != nil {
			row[3] = b.Current.TaxOwed.StringFixed(0)
		}
		if b.Previous != nil && b.Current != nil {
			row[4] = b.Current.TaxOwed.Sub(b.Previous.TaxOwed).StringFixed(0)
		}
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}

	for _, alt := range compSet.Alternatives {
		row := []string{"alternative", alt.Name, alt.PreviousPayable.StringFixed(0), alt.CurrentPayable.StringFixed(0), alt.PayableDiffFromBase.StringFixed(0)}
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
