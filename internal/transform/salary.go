package transform

import (
	"fmt"

	"github.com/rgehrsitz/bdtax/internal/domain"
	"github.com/shopspring/decimal"
)

// ScaleSalary raises (or cuts) every salary component by a percentage.
// Tax deducted at source is left alone.
type ScaleSalary struct {
	Percent decimal.Decimal // 10 means +10%
}

func (s *ScaleSalary) Name() string { return "scale_salary" }

func (s *ScaleSalary) Description() string {
	return fmt.Sprintf("Change salary by %s%%", s.Percent.String())
}

func (s *ScaleSalary) Validate(base *domain.TaxInput) error {
	if base == nil {
		return NewTransformError(s.Name(), "validate", "base input cannot be nil", nil)
	}
	if s.Percent.LessThanOrEqual(decimal.NewFromInt(-100)) {
		return NewTransformError(s.Name(), "validate", fmt.Sprintf("percent must be above -100, got %s", s.Percent), nil)
	}
	return nil
}

func (s *ScaleSalary) Apply(base *domain.TaxInput) (*domain.TaxInput, error) {
	modified := base.Clone()
	factor := decimal.NewFromInt(1).Add(s.Percent.Div(decimal.NewFromInt(100)))
	for i := range modified.Months {
		m := &modified.Months[i]
		m.Basic = m.Basic.Mul(factor).Round(0)
		m.HouseRent = m.HouseRent.Mul(factor).Round(0)
		m.Medical = m.Medical.Mul(factor).Round(0)
		m.Conveyance = m.Conveyance.Mul(factor).Round(0)
		m.LFA = m.LFA.Mul(factor).Round(0)
		m.Other = m.Other.Mul(factor).Round(0)
	}
	return modified, nil
}

// AddBonus appends a bonus. When Amount is zero the bonus is BasicMonths
// times the average monthly basic salary.
type AddBonus struct {
	BonusName   string
	Amount      decimal.Decimal
	BasicMonths int
}

func (b *AddBonus) Name() string { return "add_bonus" }

func (b *AddBonus) Description() string {
	if b.Amount.IsZero() {
		return fmt.Sprintf("Add a %s bonus of %d month(s) basic", b.label(), b.BasicMonths)
	}
	return fmt.Sprintf("Add a %s bonus of Tk %s", b.label(), b.Amount.StringFixed(0))
}

func (b *AddBonus) label() string {
	if b.BonusName == "" {
		return "one-off"
	}
	return b.BonusName
}

func (b *AddBonus) Validate(base *domain.TaxInput) error {
	if base == nil {
		return NewTransformError(b.Name(), "validate", "base input cannot be nil", nil)
	}
	if b.Amount.IsNegative() || b.BasicMonths < 0 {
		return NewTransformError(b.Name(), "validate", "bonus cannot be negative", nil)
	}
	if b.Amount.IsZero() && b.BasicMonths == 0 {
		return NewTransformError(b.Name(), "validate", "either amount or basic_months is required", nil)
	}
	return nil
}

func (b *AddBonus) Apply(base *domain.TaxInput) (*domain.TaxInput, error) {
	modified := base.Clone()
	amount := b.Amount
	if amount.IsZero() {
		amount = averageBasic(modified).Mul(decimal.NewFromInt(int64(b.BasicMonths))).Round(0)
	}
	modified.Bonuses = append(modified.Bonuses, domain.Bonus{Name: b.label(), Amount: amount})
	return modified, nil
}

func averageBasic(in *domain.TaxInput) decimal.Decimal {
	if len(in.Months) == 0 {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, m := range in.Months {
		total = total.Add(m.Basic)
	}
	return total.Div(decimal.NewFromInt(int64(len(in.Months))))
}

// SetBasic sets the basic salary of every month to Amount. Allowances and
// bonuses are left alone.
type SetBasic struct {
	Amount decimal.Decimal
}

func (s *SetBasic) Name() string { return "set_basic" }

func (s *SetBasic) Description() string {
	return fmt.Sprintf("Set monthly basic salary to Tk %s", s.Amount.StringFixed(0))
}

func (s *SetBasic) Validate(base *domain.TaxInput) error {
	if base == nil {
		return NewTransformError(s.Name(), "validate", "base input cannot be nil", nil)
	}
	if s.Amount.IsNegative() {
		return NewTransformError(s.Name(), "validate", "amount cannot be negative", nil)
	}
	return nil
}

func (s *SetBasic) Apply(base *domain.TaxInput) (*domain.TaxInput, error) {
	modified := base.Clone()
	for i := range modified.Months {
		modified.Months[i].Basic = s.Amount
	}
	return modified, nil
}
