package compare

import (
	"github.com/goccy/go-json"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool

	// Summary drops the full per-year results and the slab rows, keeping the
	// metric rows, alternatives and notes.
	Summary bool
}

type jsonSummary struct {
	PreviousYear    string              `json:"previousYear"`
	CurrentYear     string              `json:"currentYear"`
	InputPath       string              `json:"inputPath,omitempty"`
	Metrics         []MetricRow         `json:"metrics"`
	Alternatives    []AlternativeResult `json:"alternatives"`
	Recommendations []string            `json:"recommendations"`
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	if !jf.Summary {
		return jf.marshal(compSet)
	}
	return jf.marshal(jsonSummary{
		PreviousYear:    string(compSet.PreviousYear),
		CurrentYear:     string(compSet.CurrentYear),
		InputPath:       compSet.InputPath,
		Metrics:         compSet.Metrics,
		Alternatives:    compSet.Alternatives,
		Recommendations: compSet.Recommendations,
	})
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	marshal := json.Marshal
	if jf.Pretty {
		marshal = func(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") }
	}
	data, err := marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
