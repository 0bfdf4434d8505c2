package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/pensioncalc/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI
// flags and scenario files.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("stop_at", createStopAt)
	registry.Register("delay_stop", createDelayStop)
	registry.Register("continuous", createContinuous)
	registry.Register("fixed_base", createFixedBase)
	registry.Register("follow_salary", createFollowSalary)
	registry.Register("set_base", createSetBase)
	registry.Register("scale_base", createScaleBase)
	registry.Register("set_rates", createSetRates)
	registry.Register("future_index", createFutureIndex)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"; the colon may be
// omitted for transforms without parameters.
// Example: "set_rates:interest=0.04,salary=0.02"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	name, paramsStr, _ := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)
	paramsStr = strings.TrimSpace(paramsStr)
	if name == "" {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %q", spec)
	}

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

// ParseTransformSpecs parses each spec in turn
func (r *TransformRegistry) ParseTransformSpecs(specs []string) ([]ScenarioTransform, error) {
	out := make([]ScenarioTransform, 0, len(specs))
	for _, spec := range specs {
		t, err := r.ParseTransformSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("transform %q: %w", spec, err)
		}
		out = append(out, t)
	}
	return out, nil
}

// Factory functions for each transform

func requireInt(params map[string]string, transform, key string) (int, error) {
	s, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func requireDecimal(params map[string]string, transform, key string) (decimal.Decimal, error) {
	s, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}

func optionalDecimal(params map[string]string, key string) (*decimal.Decimal, error) {
	s, ok := params[key]
	if !ok {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return &d, nil
}

func createStopAt(params map[string]string) (ScenarioTransform, error) {
	age, err := requireInt(params, "stop_at", "age")
	if err != nil {
		return nil, err
	}
	return &StopAt{Age: age}, nil
}

func createDelayStop(params map[string]string) (ScenarioTransform, error) {
	years, err := requireInt(params, "delay_stop", "years")
	if err != nil {
		return nil, err
	}
	return &DelayStop{Years: years}, nil
}

func createContinuous(map[string]string) (ScenarioTransform, error) {
	return &ContinueToRetirement{}, nil
}

func createFixedBase(map[string]string) (ScenarioTransform, error) {
	return &SetBaseMode{Mode: domain.BaseFixed}, nil
}

func createFollowSalary(map[string]string) (ScenarioTransform, error) {
	return &SetBaseMode{Mode: domain.BaseFollowSalary}, nil
}

func createSetBase(params map[string]string) (ScenarioTransform, error) {
	amount, err := requireDecimal(params, "set_base", "amount")
	if err != nil {
		return nil, err
	}
	return &SetBase{Amount: amount}, nil
}

func createScaleBase(params map[string]string) (ScenarioTransform, error) {
	factor, err := requireDecimal(params, "scale_base", "factor")
	if err != nil {
		return nil, err
	}
	return &ScaleBase{Factor: factor}, nil
}

// createSetRates accepts salary, avg and interest; at least one is required
func createSetRates(params map[string]string) (ScenarioTransform, error) {
	sr := &SetRates{}
	var err error
	if sr.SalaryGrowth, err = optionalDecimal(params, "salary"); err != nil {
		return nil, err
	}
	if sr.SocAvgGrowth, err = optionalDecimal(params, "avg"); err != nil {
		return nil, err
	}
	if sr.InterestRate, err = optionalDecimal(params, "interest"); err != nil {
		return nil, err
	}
	if sr.SalaryGrowth == nil && sr.SocAvgGrowth == nil && sr.InterestRate == nil {
		return nil, fmt.Errorf("set_rates requires at least one of 'salary', 'avg', 'interest'")
	}
	return sr, nil
}

func createFutureIndex(params map[string]string) (ScenarioTransform, error) {
	s, ok := params["value"]
	if !ok {
		return nil, fmt.Errorf("future_index requires 'value' parameter")
	}
	idx, err := domain.ParseFutureIndex(s)
	if err != nil {
		return nil, err
	}
	return &SetFutureIndex{Index: idx}, nil
}
