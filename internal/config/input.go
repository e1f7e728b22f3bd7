package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/bdtax/internal/calculation"
	"github.com/rgehrsitz/bdtax/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of taxpayer input and tax rule files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads taxpayer input from a YAML or JSON file. The format is
// chosen by extension; anything other than .json is read as YAML.
func (ip *InputParser) LoadFromFile(filename string) (*domain.TaxInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	format := "yaml"
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		format = "json"
	}
	return ip.Parse(data, format)
}

// Parse decodes and validates taxpayer input in the given format ("yaml" or "json")
func (ip *InputParser) Parse(data []byte, format string) (*domain.TaxInput, error) {
	var input domain.TaxInput
	switch strings.ToLower(format) {
	case "json":
		if err := json.Unmarshal(data, &input); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case "yaml", "yml", "":
		if err := yaml.Unmarshal(data, &input); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported input format %q", format)
	}

	if err := ip.ValidateInput(&input); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}
	input.ApplyDefaults()
	return &input, nil
}

// ValidateInput rejects values a user most likely typed by mistake. The
// calculation itself would coerce them, so this is only used for files.
func (ip *InputParser) ValidateInput(input *domain.TaxInput) error {
	if err := ip.validateProfile(input.Profile); err != nil {
		return fmt.Errorf("profile: %w", err)
	}

	if len(input.Months) > len(domain.FiscalMonths) {
		return fmt.Errorf("at most %d months are allowed, got %d", len(domain.FiscalMonths), len(input.Months))
	}
	for i, m := range input.Months {
		if err := ip.validateMonth(m); err != nil {
			name := m.Month
			if name == "" {
				name = domain.FiscalMonths[i]
			}
			return fmt.Errorf("month %d (%s): %w", i+1, name, err)
		}
	}

	for i, b := range input.Bonuses {
		if b.Amount.IsNegative() {
			return fmt.Errorf("bonus %d (%s): amount cannot be negative", i+1, b.Name)
		}
		if b.TDS.IsNegative() {
			return fmt.Errorf("bonus %d (%s): tds cannot be negative", i+1, b.Name)
		}
	}

	for i, inv := range input.Investments {
		if inv.Amount.IsNegative() {
			return fmt.Errorf("investment %d (%s): amount cannot be negative", i+1, inv.Name)
		}
		if inv.Maximum != nil && inv.Maximum.IsNegative() {
			return fmt.Errorf("investment %d (%s): maximum cannot be negative", i+1, inv.Name)
		}
	}

	if input.OtherTDS.IsNegative() {
		return fmt.Errorf("other_tds cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateProfile(p domain.TaxpayerProfile) error {
	if p.Category != "" {
		if _, ok := domain.LookupCategory(string(p.Category)); !ok {
			return fmt.Errorf("unknown category %q", p.Category)
		}
	}
	if p.Location != "" {
		if _, ok := domain.LookupLocation(string(p.Location)); !ok {
			return fmt.Errorf("unknown location %q", p.Location)
		}
	}
	if p.Age != nil && (*p.Age < 0 || *p.Age > 130) {
		return fmt.Errorf("age must be between 0 and 130, got %d", *p.Age)
	}
	return nil
}

func (ip *InputParser) validateMonth(m domain.MonthlySalary) error {
	fields := []struct {
		name  string
		value interface{ IsNegative() bool }
	}{
		{"basic", m.Basic},
		{"house_rent", m.HouseRent},
		{"medical", m.Medical},
		{"conveyance", m.Conveyance},
		{"lfa", m.LFA},
		{"other", m.Other},
		{"tds", m.TDS},
	}
	for _, f := range fields {
		if f.value.IsNegative() {
			return fmt.Errorf("%s cannot be negative", f.name)
		}
	}
	return nil
}

// LoadRulesFile loads a YAML rules override and merges it over the built-in
// rules. Fiscal years not mentioned in the file keep their built-in values.
func (ip *InputParser) LoadRulesFile(filename string) (domain.TaxRules, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return domain.TaxRules{}, fmt.Errorf("failed to read rules file %s: %w", filename, err)
	}
	return ip.ParseRules(data)
}

// rulesFile mirrors domain.TaxRules but keeps each fiscal year as a raw node
// so it can be decoded on top of the built-in rules for that year.
type rulesFile struct {
	Metadata    domain.RulesMetadata `yaml:"metadata"`
	FiscalYears []yaml.Node          `yaml:"fiscal_years"`
}

// ParseRules decodes a YAML rules override and validates the result. Each
// fiscal year entry is applied on top of the built-in rules for that year, so
// a file only needs the fields it changes. Lists such as schedule bands are
// replaced, maps such as thresholds are merged key by key.
func (ip *InputParser) ParseRules(data []byte) (domain.TaxRules, error) {
	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.TaxRules{}, fmt.Errorf("failed to parse rules YAML: %w", err)
	}

	builtin := calculation.DefaultRules()
	override := domain.TaxRules{Metadata: file.Metadata}
	for i := range file.FiscalYears {
		node := &file.FiscalYears[i]

		var header struct {
			FiscalYear string `yaml:"fiscal_year"`
		}
		if err := node.Decode(&header); err != nil {
			return domain.TaxRules{}, fmt.Errorf("fiscal_years[%d]: %w", i, err)
		}
		fy, err := domain.ParseFiscalYear(header.FiscalYear)
		if err != nil {
			return domain.TaxRules{}, fmt.Errorf("fiscal_years[%d]: %w", i, err)
		}

		rules := builtinFor(builtin, fy)
		if err := node.Decode(&rules); err != nil {
			return domain.TaxRules{}, fmt.Errorf("fiscal year %s: %w", fy, err)
		}
		rules.FiscalYear = fy
		override.FiscalYears = append(override.FiscalYears, rules)
	}

	merged := calculation.MergeRules(builtin, override)
	if err := ip.ValidateRules(merged); err != nil {
		return domain.TaxRules{}, fmt.Errorf("rules validation failed: %w", err)
	}
	return merged, nil
}

func builtinFor(rules domain.TaxRules, fy domain.FiscalYear) domain.FiscalYearRules {
	for _, r := range rules.FiscalYears {
		if r.FiscalYear == fy {
			return r
		}
	}
	return domain.FiscalYearRules{FiscalYear: fy}
}

// ValidateRules validates every fiscal year of a rule set
func (ip *InputParser) ValidateRules(rules domain.TaxRules) error {
	if len(rules.FiscalYears) == 0 {
		return fmt.Errorf("no fiscal years defined")
	}
	seen := make(map[domain.FiscalYear]bool, len(rules.FiscalYears))
	for _, fy := range rules.FiscalYears {
		if seen[fy.FiscalYear] {
			return fmt.Errorf("fiscal year %s defined more than once", fy.FiscalYear)
		}
		seen[fy.FiscalYear] = true
		if err := calculation.ValidateFiscalYearRules(fy); err != nil {
			return fmt.Errorf("fiscal year %s: %w", fy.FiscalYear, err)
		}
	}
	return nil
}

// MarshalRules renders rules as YAML, e.g. to seed an override file
func MarshalRules(rules domain.TaxRules) ([]byte, error) {
	out, err := yaml.Marshal(rules)
	if err != nil {
		return nil, fmt.Errorf("failed to render rules: %w", err)
	}
	return out, nil
}
