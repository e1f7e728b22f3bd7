package transform

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []InputTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common what-if questions
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "raise_10pct",
		Description: "Salary raised by 10%",
		Transforms:  []InputTransform{&ScaleSalary{Percent: decimal.NewFromInt(10)}},
	})
	registry.Register(Template{
		Name:        "raise_20pct",
		Description: "Salary raised by 20%",
		Transforms:  []InputTransform{&ScaleSalary{Percent: decimal.NewFromInt(20)}},
	})
	registry.Register(Template{
		Name:        "extra_bonus",
		Description: "One extra month of basic paid as a bonus",
		Transforms:  []InputTransform{&AddBonus{BonusName: "Performance", BasicMonths: 1}},
	})

	registry.Register(Template{
		Name:        "invest_1lakh",
		Description: "Tk 1 lakh in savings certificates",
		Transforms: []InputTransform{
			&SetInvestment{InvestmentName: "Savings certificates", Amount: decimal.NewFromInt(100000)},
		},
	})
	registry.Register(Template{
		Name:        "invest_5lakh",
		Description: "Tk 5 lakh in savings certificates",
		Transforms: []InputTransform{
			&SetInvestment{InvestmentName: "Savings certificates", Amount: decimal.NewFromInt(500000)},
		},
	})
	registry.Register(Template{
		Name:        "max_dps",
		Description: "DPS contributions at the Tk 1.2 lakh line limit",
		Transforms: []InputTransform{
			&SetInvestment{InvestmentName: "Deposit Pension Scheme", Amount: decimal.NewFromInt(120000)},
		},
	})

	registry.Register(Template{
		Name:        "move_to_district",
		Description: "Living outside a city corporation",
		Transforms:  []InputTransform{&SetProfile{Location: "district"}},
	})

	senior := 65
	registry.Register(Template{
		Name:        "turn_65",
		Description: "Taxpayer reaches 65 during the year",
		Transforms:  []InputTransform{&SetProfile{Age: &senior}},
	})

	return registry
}
