package transform

import (
	"fmt"

	"github.com/rgehrsitz/bdtax/internal/domain"
)

// InputTransform is a what-if edit applied to taxpayer input. Transforms are
// composable and never modify the input they are given.
type InputTransform interface {
	// Apply returns a modified copy of base.
	Apply(base *domain.TaxInput) (*domain.TaxInput, error)

	// Name returns a short identifier (e.g. "scale_salary").
	Name() string

	// Description returns a human-readable description of the edit.
	Description() string

	// Validate checks the transform parameters against base without applying them.
	Validate(base *domain.TaxInput) error
}

// ApplyTransforms applies transforms in order, each receiving the output of
// the previous one.
func ApplyTransforms(base *domain.TaxInput, transforms []InputTransform) (*domain.TaxInput, error) {
	if base == nil {
		return nil, fmt.Errorf("base input cannot be nil")
	}

	current := base.Clone()
	current.ApplyDefaults()

	for i, transform := range transforms {
		if transform == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}
		if err := transform.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}
		next, err := transform.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}
		current = next
	}
	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
