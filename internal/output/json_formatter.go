package output

import (
	"github.com/goccy/go-json"
	"github.com/rgehrsitz/bdtax/internal/domain"
)

// JSONFormatter serializes the comparison as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(cmp *domain.TaxComparison) ([]byte, error) {
	return json.MarshalIndent(cmp, "", "  ")
}
