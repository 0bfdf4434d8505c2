package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/pensioncalc/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ScenarioFile is the on-disk description of a projection request. Omitted
// fields fall back to domain.DefaultProjectionInput.
type ScenarioFile struct {
	Name      string          `yaml:"name" json:"name"`
	Policy    string          `yaml:"policy,omitempty" json:"policy,omitempty"` // optional policy YAML path
	Input     InputSection    `yaml:"input" json:"input"`
	Scenarios []ScenarioEntry `yaml:"scenarios,omitempty" json:"scenarios,omitempty"`
}

// InputSection mirrors domain.ProjectionInput with optional fields
type InputSection struct {
	Gender         string           `yaml:"gender" json:"gender"`
	CurrentAge     *int             `yaml:"current_age" json:"current_age"`
	AvgSalary      *decimal.Decimal `yaml:"avg_salary" json:"avg_salary"`
	PaidYears      *decimal.Decimal `yaml:"paid_years" json:"paid_years"`
	AccountBalance *decimal.Decimal `yaml:"account_balance" json:"account_balance"`
	SalaryBase     *decimal.Decimal `yaml:"salary_base" json:"salary_base"`
	PastAvgIndex   *decimal.Decimal `yaml:"past_avg_index" json:"past_avg_index"`
	FutureAvgIndex string           `yaml:"future_avg_index" json:"future_avg_index"` // "auto" or a number
	BaseChangeMode string           `yaml:"base_change_mode" json:"base_change_mode"`
	PaymentPlan    string           `yaml:"payment_plan" json:"payment_plan"`
	StopAge        *int             `yaml:"stop_age" json:"stop_age"`
	SalaryGrowth   *decimal.Decimal `yaml:"salary_growth" json:"salary_growth"`
	SocAvgGrowth   *decimal.Decimal `yaml:"soc_avg_growth" json:"soc_avg_growth"`
	InterestRate   *decimal.Decimal `yaml:"interest_rate" json:"interest_rate"`
}

// ScenarioEntry is a named variant of the base input built from transforms
// such as "stop_at:age=50"
type ScenarioEntry struct {
	Name       string   `yaml:"name" json:"name"`
	Transforms []string `yaml:"transforms" json:"transforms"`
}

// InputParser handles parsing of scenario files
type InputParser struct {
	MinAge int
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{MinAge: domain.DefaultMinAge}
}

// LoadFromFile loads and validates a scenario file
func (ip *InputParser) LoadFromFile(filename string) (*ScenarioFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates scenario YAML
func (ip *InputParser) Parse(data []byte) (*ScenarioFile, error) {
	var file ScenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ip.ValidateScenarioFile(&file); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &file, nil
}

// ValidateScenarioFile checks the base input and every scenario entry
func (ip *InputParser) ValidateScenarioFile(file *ScenarioFile) error {
	if _, err := ip.ToProjectionInput(file.Input); err != nil {
		return fmt.Errorf("input: %w", err)
	}
	seen := make(map[string]bool, len(file.Scenarios))
	for i, s := range file.Scenarios {
		if s.Name == "" {
			return fmt.Errorf("scenario %d: name is required", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("scenario %d: duplicate name %q", i, s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

// ToProjectionInput converts the file section through the domain builder
func (ip *InputParser) ToProjectionInput(s InputSection) (domain.ProjectionInput, error) {
	b := domain.NewInputBuilder().MinAge(ip.MinAge)

	if s.Gender != "" {
		b.GenderString(s.Gender)
	}
	if s.CurrentAge != nil {
		b.CurrentAge(*s.CurrentAge)
	}
	if s.AvgSalary != nil {
		b.AvgSalary(*s.AvgSalary)
	}
	if s.PaidYears != nil {
		b.PaidYears(*s.PaidYears)
	}
	if s.AccountBalance != nil {
		b.AccountBalance(*s.AccountBalance)
	}
	if s.SalaryBase != nil {
		b.SalaryBase(*s.SalaryBase)
	}
	if s.PastAvgIndex != nil {
		b.PastAvgIndex(*s.PastAvgIndex)
	}
	b.FutureAvgIndexString(s.FutureAvgIndex)
	if s.BaseChangeMode != "" {
		b.BaseChangeModeString(s.BaseChangeMode)
	}
	if s.PaymentPlan != "" {
		b.PaymentPlanString(s.PaymentPlan)
	}
	if s.StopAge != nil {
		b.StopAge(*s.StopAge)
	}

	defaults := domain.DefaultProjectionInput()
	b.Rates(
		rateOr(s.SalaryGrowth, defaults.SalaryGrowth),
		rateOr(s.SocAvgGrowth, defaults.SocAvgGrowth),
		rateOr(s.InterestRate, defaults.InterestRate),
	)
	return b.Build()
}

func rateOr(v *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if v == nil {
		return fallback
	}
	return *v
}

// InputSectionFrom renders a ProjectionInput back into its file form
func InputSectionFrom(in domain.ProjectionInput) InputSection {
	dec := func(d decimal.Decimal) *decimal.Decimal {
		return &d
	}
	age, stop := in.CurrentAge, in.StopAge
	return InputSection{
		Gender:         string(in.Gender),
		CurrentAge:     &age,
		AvgSalary:      dec(in.AvgSalary),
		PaidYears:      dec(in.PaidYears),
		AccountBalance: dec(in.AccountBalance),
		SalaryBase:     dec(in.SalaryBase),
		PastAvgIndex:   dec(in.PastAvgIndex),
		FutureAvgIndex: in.FutureAvgIndex.String(),
		BaseChangeMode: string(in.BaseChangeMode),
		PaymentPlan:    string(in.PaymentPlan),
		StopAge:        &stop,
		SalaryGrowth:   dec(in.SalaryGrowth),
		SocAvgGrowth:   dec(in.SocAvgGrowth),
		InterestRate:   dec(in.InterestRate),
	}
}

// MarshalScenarioFile encodes a scenario file as YAML
func MarshalScenarioFile(file *ScenarioFile) ([]byte, error) {
	data, err := yaml.Marshal(file)
	if err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return data, nil
}
