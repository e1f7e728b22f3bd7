package transform

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/bdtax/internal/domain"
	"github.com/shopspring/decimal"
)

func baseInput() *domain.TaxInput {
	in := domain.DefaultTaxInput()
	in.Months = domain.UniformMonths(domain.MonthlySalary{
		Basic:     decimal.NewFromInt(50000),
		HouseRent: decimal.NewFromInt(25000),
		TDS:       decimal.NewFromInt(2000),
	})
	return in
}

func TestApplyTransforms_Empty(t *testing.T) {
	base := baseInput()
	result, err := ApplyTransforms(base, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == base {
		t.Error("expected a copy, got the same pointer")
	}
	if !result.Months[0].Basic.Equal(base.Months[0].Basic) {
		t.Error("copy should carry the same salary")
	}
}

func TestApplyTransforms_Chain(t *testing.T) {
	base := baseInput()
	result, err := ApplyTransforms(base, []InputTransform{
		&ScaleSalary{Percent: decimal.NewFromInt(10)},
		&AddBonus{BonusName: "Eid", BasicMonths: 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Months[0].Basic.Equal(decimal.NewFromInt(55000)) {
		t.Errorf("expected basic 55000, got %s", result.Months[0].Basic)
	}
	if !result.Months[0].TDS.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("TDS should not scale, got %s", result.Months[0].TDS)
	}
	if len(result.Bonuses) != 1 || !result.Bonuses[0].Amount.Equal(decimal.NewFromInt(55000)) {
		t.Errorf("expected one bonus of a raised month's basic, got %+v", result.Bonuses)
	}
	if !base.Months[0].Basic.Equal(decimal.NewFromInt(50000)) || len(base.Bonuses) != 0 {
		t.Error("base input was modified")
	}
}

func TestApplyTransforms_Errors(t *testing.T) {
	if _, err := ApplyTransforms(nil, nil); err == nil {
		t.Error("expected error for nil base")
	}
	if _, err := ApplyTransforms(baseInput(), []InputTransform{nil}); err == nil {
		t.Error("expected error for nil transform")
	}

	_, err := ApplyTransforms(baseInput(), []InputTransform{&ScaleSalary{Percent: decimal.NewFromInt(-100)}})
	if err == nil {
		t.Fatal("expected validation error")
	}
	var te *TransformError
	if !errors.As(err, &te) {
		t.Fatalf("expected a TransformError in the chain, got %v", err)
	}
	if te.TransformName != "scale_salary" {
		t.Errorf("unexpected transform name %q", te.TransformName)
	}
}

func TestSetInvestment(t *testing.T) {
	base := baseInput()
	result, err := ApplyTransforms(base, []InputTransform{
		&SetInvestment{InvestmentName: "savings", Amount: decimal.NewFromInt(200000)},
		&SetInvestment{InvestmentName: "Zakat fund", Amount: decimal.NewFromInt(5000)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Investments[1].Amount.Equal(decimal.NewFromInt(200000)) {
		t.Errorf("expected savings certificates to be set, got %s", result.Investments[1].Amount)
	}
	last := result.Investments[len(result.Investments)-1]
	if last.Name != "Zakat fund" || len(result.Investments) != len(base.Investments)+1 {
		t.Errorf("expected a new investment line, got %+v", last)
	}

	bad := &SetInvestment{InvestmentName: " ", Amount: decimal.NewFromInt(1)}
	if err := bad.Validate(base); err == nil {
		t.Error("expected error for empty name")
	}
}

func TestSetProfile(t *testing.T) {
	age := 70
	tr := &SetProfile{Category: "women", Location: "ctg", Age: &age}
	result, err := ApplyTransforms(baseInput(), []InputTransform{tr})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Profile.Category != domain.CategoryFemale || result.Profile.Location != domain.LocationChittagong {
		t.Errorf("unexpected profile %+v", result.Profile)
	}
	if result.Profile.Age == nil || *result.Profile.Age != 70 {
		t.Error("age not applied")
	}

	if err := (&SetProfile{}).Validate(baseInput()); err == nil {
		t.Error("expected error when nothing changes")
	}
	if err := (&SetProfile{Category: "royalty"}).Validate(baseInput()); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestAddBonus_Validate(t *testing.T) {
	if err := (&AddBonus{}).Validate(baseInput()); err == nil {
		t.Error("expected error without amount or months")
	}
	if err := (&AddBonus{Amount: decimal.NewFromInt(-1)}).Validate(baseInput()); err == nil {
		t.Error("expected error for negative amount")
	}
	b := &AddBonus{Amount: decimal.NewFromInt(30000)}
	if b.Description() != "Add a one-off bonus of Tk 30000" {
		t.Errorf("unexpected description %q", b.Description())
	}
}

func TestSetBasic(t *testing.T) {
	base := baseInput()
	result, err := ApplyTransforms(base, []InputTransform{&SetBasic{Amount: decimal.NewFromInt(31250)}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, m := range result.Months {
		if !m.Basic.Equal(decimal.NewFromInt(31250)) {
			t.Fatalf("expected basic 31250 in %s, got %s", m.Month, m.Basic)
		}
		if !m.HouseRent.Equal(decimal.NewFromInt(25000)) {
			t.Fatalf("house rent should be untouched in %s", m.Month)
		}
	}
	if _, err := ApplyTransforms(base, []InputTransform{&SetBasic{Amount: decimal.NewFromInt(-1)}}); err == nil {
		t.Error("expected error for negative basic")
	}
}
