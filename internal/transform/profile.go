package transform

import (
	"fmt"

	"github.com/rgehrsitz/bdtax/internal/domain"
)

// SetProfile replaces parts of the taxpayer profile. Empty fields and a nil
// Age are left unchanged.
type SetProfile struct {
	Category domain.Category
	Location domain.Location
	Age      *int
}

func (s *SetProfile) Name() string { return "set_profile" }

func (s *SetProfile) Description() string {
	desc := "Change profile:"
	if s.Category != "" {
		desc += " category " + s.Category.Label()
	}
	if s.Location != "" {
		desc += " location " + s.Location.Label()
	}
	if s.Age != nil {
		desc += fmt.Sprintf(" age %d", *s.Age)
	}
	return desc
}

func (s *SetProfile) Validate(base *domain.TaxInput) error {
	if base == nil {
		return NewTransformError(s.Name(), "validate", "base input cannot be nil", nil)
	}
	if s.Category == "" && s.Location == "" && s.Age == nil {
		return NewTransformError(s.Name(), "validate", "nothing to change", nil)
	}
	if s.Category != "" {
		if _, ok := domain.LookupCategory(string(s.Category)); !ok {
			return NewTransformError(s.Name(), "validate", fmt.Sprintf("unknown category %q", s.Category), nil)
		}
	}
	if s.Location != "" {
		if _, ok := domain.LookupLocation(string(s.Location)); !ok {
			return NewTransformError(s.Name(), "validate", fmt.Sprintf("unknown location %q", s.Location), nil)
		}
	}
	if s.Age != nil && *s.Age < 0 {
		return NewTransformError(s.Name(), "validate", "age cannot be negative", nil)
	}
	return nil
}

func (s *SetProfile) Apply(base *domain.TaxInput) (*domain.TaxInput, error) {
	modified := base.Clone()
	if s.Category != "" {
		modified.Profile.Category = domain.ParseCategory(string(s.Category))
	}
	if s.Location != "" {
		modified.Profile.Location = domain.ParseLocation(string(s.Location))
	}
	if s.Age != nil {
		age := *s.Age
		modified.Profile.Age = &age
	}
	return modified, nil
}
