package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/rgehrsitz/bdtax/internal/calculation"
	"github.com/rgehrsitz/bdtax/internal/domain"
	"github.com/shopspring/decimal"
)

type fieldKind int

const (
	amountField fieldKind = iota
	choiceField
)

// field is one editable line of the form. Text fields wrap a textinput;
// choice fields cycle through options with left/right.
type field struct {
	section  string // heading rendered above the field, if any
	label    string
	kind     fieldKind
	input    textinput.Model
	options  []string
	labels   []string
	selected int
	apply    func(in *domain.TaxInput, f *field)
}

func (f *field) value() string {
	if f.kind == choiceField {
		return f.options[f.selected]
	}
	return f.input.Value()
}

func (f *field) amount() decimal.Decimal {
	return calculation.ParseAmount(f.input.Value())
}

func (f *field) cycle(step int) {
	n := len(f.options)
	f.selected = ((f.selected+step)%n + n) % n
}

func (f *field) focus() {
	if f.kind == amountField {
		f.input.Focus()
	}
}

func (f *field) blur() {
	if f.kind == amountField {
		f.input.Blur()
	}
}

func newAmountField(label string, initial decimal.Decimal, apply func(*domain.TaxInput, decimal.Decimal)) field {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 16
	ti.Width = 14
	ti.Placeholder = "0"
	if !initial.IsZero() {
		ti.SetValue(initial.String())
	}
	return field{
		label: label,
		kind:  amountField,
		input: ti,
		apply: func(in *domain.TaxInput, f *field) { apply(in, f.amount()) },
	}
}

func newChoiceField(label string, options, labels []string, selected string, apply func(*domain.TaxInput, string)) field {
	f := field{label: label, kind: choiceField, options: options, labels: labels}
	for i, o := range options {
		if o == selected {
			f.selected = i
		}
	}
	f.apply = func(in *domain.TaxInput, f *field) { apply(in, f.value()) }
	return f
}

// setMonthly returns an apply func that writes the same amount into every month
func setMonthly(set func(m *domain.MonthlySalary, v decimal.Decimal)) func(*domain.TaxInput, decimal.Decimal) {
	return func(in *domain.TaxInput, v decimal.Decimal) {
		for i := range in.Months {
			set(&in.Months[i], v)
		}
	}
}

// buildFields lays out the form for in. Salary is edited as one uniform
// month; the first month seeds the values shown.
func buildFields(in *domain.TaxInput) []field {
	first := domain.MonthlySalary{}
	if len(in.Months) > 0 {
		first = in.Months[0]
	}

	categories := make([]string, len(domain.Categories))
	categoryLabels := make([]string, len(domain.Categories))
	for i, c := range domain.Categories {
		categories[i], categoryLabels[i] = string(c), c.Label()
	}
	locations := make([]string, len(domain.Locations))
	locationLabels := make([]string, len(domain.Locations))
	for i, l := range domain.Locations {
		locations[i], locationLabels[i] = string(l), l.Label()
	}

	fields := []field{
		newChoiceField("Category", categories, categoryLabels, string(in.Profile.Category), func(in *domain.TaxInput, v string) {
			in.Profile.Category = domain.Category(v)
		}),
		ageField(in.Profile.Age),
		newChoiceField("Location", locations, locationLabels, string(in.Profile.Location), func(in *domain.TaxInput, v string) {
			in.Profile.Location = domain.Location(v)
		}),
		newAmountField("Monthly basic", first.Basic, setMonthly(func(m *domain.MonthlySalary, v decimal.Decimal) { m.Basic = v })),
		newAmountField("Monthly house rent", first.HouseRent, setMonthly(func(m *domain.MonthlySalary, v decimal.Decimal) { m.HouseRent = v })),
		newAmountField("Monthly medical", first.Medical, setMonthly(func(m *domain.MonthlySalary, v decimal.Decimal) { m.Medical = v })),
		newAmountField("Monthly conveyance", first.Conveyance, setMonthly(func(m *domain.MonthlySalary, v decimal.Decimal) { m.Conveyance = v })),
		newAmountField("Monthly other", first.Other.Add(first.LFA), setMonthly(func(m *domain.MonthlySalary, v decimal.Decimal) {
			m.Other, m.LFA = v, decimal.Zero
		})),
		newAmountField("Monthly TDS", first.TDS, setMonthly(func(m *domain.MonthlySalary, v decimal.Decimal) { m.TDS = v })),
		newAmountField("Bonuses (year)", calculation.SumBy(in.Bonuses, func(b domain.Bonus) decimal.Decimal { return b.Amount }),
			func(in *domain.TaxInput, v decimal.Decimal) {
				in.Bonuses = []domain.Bonus{}
				if v.IsPositive() {
					in.Bonuses = append(in.Bonuses, domain.Bonus{Name: "Festival", Amount: v})
				}
			}),
	}

	fields[0].section = "Taxpayer"
	fields[3].section = "Salary"

	for i, inv := range in.Investments {
		idx := i
		f := newAmountField(investmentLabel(inv), inv.Amount, func(in *domain.TaxInput, v decimal.Decimal) {
			if idx < len(in.Investments) {
				in.Investments[idx].Amount = v
			}
		})
		if i == 0 {
			f.section = "Investments"
		}
		fields = append(fields, f)
	}

	other := newAmountField("Other TDS / advance tax", in.OtherTDS, func(in *domain.TaxInput, v decimal.Decimal) {
		in.OtherTDS = v
	})
	other.section = "Tax paid"
	return append(fields, other)
}

func ageField(age *int) field {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 3
	ti.Width = 4
	ti.Placeholder = "-"
	if age != nil {
		ti.SetValue(strconv.Itoa(*age))
	}
	return field{
		label: "Age",
		kind:  amountField,
		input: ti,
		apply: func(in *domain.TaxInput, f *field) {
			in.Profile.Age = nil
			if n, err := strconv.Atoi(strings.TrimSpace(f.input.Value())); err == nil && n >= 0 {
				in.Profile.Age = &n
			}
		},
	}
}

func investmentLabel(inv domain.Investment) string {
	name := inv.Name
	if i := strings.Index(name, " ("); i > 0 {
		name = name[:i]
	}
	if len(name) > 24 {
		name = name[:21] + "..."
	}
	return name
}
