package transform

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/bdtax/internal/domain"
	"github.com/shopspring/decimal"
)

// SetInvestment sets the amount of the named investment line, adding the
// line when it does not exist. Names match case-insensitively on prefix:
// "savings" finds "Savings certificates (Sanchayapatra)".
type SetInvestment struct {
	InvestmentName string
	Amount         decimal.Decimal
}

func (s *SetInvestment) Name() string { return "set_investment" }

func (s *SetInvestment) Description() string {
	return fmt.Sprintf("Invest Tk %s in %s", s.Amount.StringFixed(0), s.InvestmentName)
}

func (s *SetInvestment) Validate(base *domain.TaxInput) error {
	if base == nil {
		return NewTransformError(s.Name(), "validate", "base input cannot be nil", nil)
	}
	if strings.TrimSpace(s.InvestmentName) == "" {
		return NewTransformError(s.Name(), "validate", "investment name cannot be empty", nil)
	}
	if s.Amount.IsNegative() {
		return NewTransformError(s.Name(), "validate", "amount cannot be negative", nil)
	}
	return nil
}

func (s *SetInvestment) Apply(base *domain.TaxInput) (*domain.TaxInput, error) {
	modified := base.Clone()
	want := strings.ToLower(strings.TrimSpace(s.InvestmentName))
	for i := range modified.Investments {
		if strings.HasPrefix(strings.ToLower(modified.Investments[i].Name), want) {
			modified.Investments[i].Amount = s.Amount
			return modified, nil
		}
	}
	modified.Investments = append(modified.Investments, domain.Investment{Name: s.InvestmentName, Amount: s.Amount})
	return modified, nil
}
