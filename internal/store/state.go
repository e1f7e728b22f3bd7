package store

import (
	"bytes"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/bdtax/internal/domain"
)

// SaveState writes the input state under the current state version key
func SaveState(kv KV, in *domain.TaxInput) error {
	if in == nil {
		return fmt.Errorf("cannot save nil state")
	}
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := kv.Set(domain.StateVersion, data); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// LoadState reads the saved input state. It always returns a usable input:
// when nothing is saved the default state is returned with a nil error, and
// when the saved blob cannot be read the default state is returned together
// with an error describing why, for the caller to show as a warning.
func LoadState(kv KV) (*domain.TaxInput, error) {
	data, ok, err := kv.Get(domain.StateVersion)
	if err != nil {
		return domain.DefaultTaxInput(), fmt.Errorf("saved state unavailable, using defaults: %w", err)
	}
	if !ok {
		return domain.DefaultTaxInput(), nil
	}
	in, err := Import(bytes.NewReader(data))
	if err != nil {
		return domain.DefaultTaxInput(), fmt.Errorf("saved state is corrupt, using defaults: %w", err)
	}
	return in, nil
}

// ClearState removes the saved input state
func ClearState(kv KV) error {
	return kv.Delete(domain.StateVersion)
}

// Export writes the input state as indented JSON, the same shape that is persisted
func Export(w io.Writer, in *domain.TaxInput) error {
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// Import decodes an exported or persisted state. Unknown fields are ignored
// and anything missing is filled with defaults.
func Import(r io.Reader) (*domain.TaxInput, error) {
	var in domain.TaxInput
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, fmt.Errorf("failed to decode state: %w", err)
	}
	in.ApplyDefaults()
	return &in, nil
}
