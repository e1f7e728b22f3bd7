package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/bdtax/internal/domain"
)

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(cmp *domain.TaxComparison) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID string
	F  func(*domain.TaxComparison) ([]byte, error)
}

func (ff FormatterFunc) Format(c *domain.TaxComparison) ([]byte, error) { return ff.F(c) }
func (ff FormatterFunc) Name() string                                   { return ff.ID }

var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	CSVFormatter{},
	JSONFormatter{},
}

// GetFormatterByName fetches a registered formatter, or nil.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

var aliasMap = map[string]string{
	"":            "console",
	"text":        "console",
	"table":       "console",
	"csv-summary": "csv",
	"json-pretty": "json",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// GenerateReport writes cmp to w in the named format
func GenerateReport(w io.Writer, cmp *domain.TaxComparison, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unsupported format: %s (available: %s)", format, strings.Join(AvailableFormatterNames(), ", "))
	}
	data, err := f.Format(cmp)
	if err != nil {
		return fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// WriteFormatted runs a formatter and writes the output to a timestamped file in dir.
func WriteFormatted(f Formatter, cmp *domain.TaxComparison, dir string) (string, error) {
	data, err := f.Format(cmp)
	if err != nil {
		return "", err
	}
	ext := f.Name()
	if ext == "console" {
		ext = "txt"
	}
	filename := filepath.Join(dir, fmt.Sprintf("tax_report_%s.%s", time.Now().Format("20060102_150405"), ext))
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}
