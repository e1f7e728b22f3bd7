package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/bdtax/internal/calculation"
	"github.com/rgehrsitz/bdtax/internal/domain"
	"github.com/rgehrsitz/bdtax/internal/transform"
)

// CompareEngine orchestrates fiscal-year comparison and what-if alternatives
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	PreviousYear domain.FiscalYear // defaults to FY2024-25
	CurrentYear  domain.FiscalYear // defaults to FY2025-26
	Templates    []string          // built-in what-if templates to evaluate
	Transforms   []string          // ad-hoc transform specs, "name:key=value,..."
	InputPath    string            // shown in reports only
}

// Compare calculates input under both fiscal years and every requested alternative
func (ce *CompareEngine) Compare(ctx context.Context, input *domain.TaxInput, options CompareOptions) (*ComparisonSet, error) {
	if options.PreviousYear == "" {
		options.PreviousYear = domain.FY2024_25
	}
	if options.CurrentYear == "" {
		options.CurrentYear = domain.FY2025_26
	}
	if input == nil {
		input = domain.DefaultTaxInput()
	}

	base, err := ce.CalcEngine.Compare(input, options.PreviousYear, options.CurrentYear)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base input: %w", err)
	}

	set := &ComparisonSet{
		PreviousYear: options.PreviousYear,
		CurrentYear:  options.CurrentYear,
		InputPath:    options.InputPath,
		Base:         base,
		Metrics:      BuildMetrics(base),
		Brackets:     BuildBracketRows(base),
		Alternatives: []AlternativeResult{},
	}

	for _, name := range options.Templates {
		tmpl, ok := ce.TemplateRegistry.Get(name)
		if !ok {
			return nil, fmt.Errorf("template %s not found", name)
		}
		alt, err := ce.evaluate(ctx, input, options, tmpl.Name, tmpl.Description, tmpl.Transforms)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", name, err)
		}
		set.Alternatives = append(set.Alternatives, alt)
	}

	for _, spec := range options.Transforms {
		t, err := ce.TransformRegistry.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		alt, err := ce.evaluate(ctx, input, options, spec, t.Description(), []transform.InputTransform{t})
		if err != nil {
			return nil, fmt.Errorf("failed to apply transform %s: %w", spec, err)
		}
		set.Alternatives = append(set.Alternatives, alt)
	}

	for i := range set.Alternatives {
		set.Alternatives[i].PayableDiffFromBase = set.Alternatives[i].CurrentPayable.Sub(base.Current.Final.Payable)
	}
	set.Recommendations = GenerateRecommendations(set)
	return set, nil
}

func (ce *CompareEngine) evaluate(ctx context.Context, input *domain.TaxInput, options CompareOptions, name, description string, transforms []transform.InputTransform) (AlternativeResult, error) {
	if err := ctx.Err(); err != nil {
		return AlternativeResult{}, err
	}
	modified, err := transform.ApplyTransforms(input, transforms)
	if err != nil {
		return AlternativeResult{}, err
	}
	cmp, err := ce.CalcEngine.Compare(modified, options.PreviousYear, options.CurrentYear)
	if err != nil {
		return AlternativeResult{}, err
	}
	return AlternativeResult{
		Name:            name,
		Description:     description,
		Comparison:      cmp,
		PreviousPayable: cmp.Previous.Final.Payable,
		CurrentPayable:  cmp.Current.Final.Payable,
	}, nil
}
