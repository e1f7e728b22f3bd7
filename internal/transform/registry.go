package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/bdtax/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (InputTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}
	registry.Register("scale_salary", createScaleSalary)
	registry.Register("add_bonus", createAddBonus)
	registry.Register("set_investment", createSetInvestment)
	registry.Register("set_basic", createSetBasic)
	registry.Register("set_profile", createSetProfile)
	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (InputTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}
	return factory(params)
}

// List returns the sorted names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "set_investment:name=Savings certificates,amount=200000"
func (r *TransformRegistry) ParseTransformSpec(spec string) (InputTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}
	return r.Create(name, params)
}

func requireDecimal(params map[string]string, transform, key string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}

func createScaleSalary(params map[string]string) (InputTransform, error) {
	percent, err := requireDecimal(params, "scale_salary", "percent")
	if err != nil {
		return nil, err
	}
	return &ScaleSalary{Percent: percent}, nil
}

func createAddBonus(params map[string]string) (InputTransform, error) {
	bonus := &AddBonus{BonusName: params["name"]}
	if _, ok := params["amount"]; ok {
		amount, err := requireDecimal(params, "add_bonus", "amount")
		if err != nil {
			return nil, err
		}
		bonus.Amount = amount
	}
	if raw, ok := params["basic_months"]; ok {
		months, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid basic_months value: %w", err)
		}
		bonus.BasicMonths = months
	}
	return bonus, nil
}

func createSetBasic(params map[string]string) (InputTransform, error) {
	amount, err := requireDecimal(params, "set_basic", "amount")
	if err != nil {
		return nil, err
	}
	return &SetBasic{Amount: amount}, nil
}

func createSetInvestment(params map[string]string) (InputTransform, error) {
	name, ok := params["name"]
	if !ok {
		return nil, fmt.Errorf("set_investment requires 'name' parameter")
	}
	amount, err := requireDecimal(params, "set_investment", "amount")
	if err != nil {
		return nil, err
	}
	return &SetInvestment{InvestmentName: name, Amount: amount}, nil
}

func createSetProfile(params map[string]string) (InputTransform, error) {
	t := &SetProfile{
		Category: domain.Category(params["category"]),
		Location: domain.Location(params["location"]),
	}
	if raw, ok := params["age"]; ok {
		age, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid age value: %w", err)
		}
		t.Age = &age
	}
	return t, nil
}
