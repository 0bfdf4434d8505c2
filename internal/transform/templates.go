package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/pensioncalc/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ScenarioTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func rate(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

// CreateBuiltInTemplates creates a template registry with the common what-if
// scenarios. currentAge anchors the "stop now" template.
func CreateBuiltInTemplates(currentAge int) *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Contribution timing
	registry.Register(Template{
		Name:        "stop_now",
		Description: "Stop contributing immediately",
		Transforms:  []ScenarioTransform{&StopAt{Age: currentAge}},
	})
	for _, age := range []int{45, 50, 55} {
		registry.Register(Template{
			Name:        fmt.Sprintf("stop_at_%d", age),
			Description: fmt.Sprintf("Stop contributing at age %d", age),
			Transforms:  []ScenarioTransform{&StopAt{Age: age}},
		})
	}
	registry.Register(Template{
		Name:        "to_retirement",
		Description: "Contribute until retirement",
		Transforms:  []ScenarioTransform{&ContinueToRetirement{}},
	})

	// Contribution base
	registry.Register(Template{
		Name:        "base_fixed",
		Description: "Hold the contribution base at today's level",
		Transforms:  []ScenarioTransform{&SetBaseMode{Mode: domain.BaseFixed}},
	})
	registry.Register(Template{
		Name:        "base_follow_salary",
		Description: "Grow the contribution base with salary",
		Transforms:  []ScenarioTransform{&SetBaseMode{Mode: domain.BaseFollowSalary}},
	})
	registry.Register(Template{
		Name:        "base_plus_20pct",
		Description: "Raise the contribution base by 20%",
		Transforms:  []ScenarioTransform{&ScaleBase{Factor: decimal.NewFromFloat(1.2)}},
	})

	// Economic assumptions
	registry.Register(Template{
		Name:        "pessimistic",
		Description: "2% salary growth, 2% average wage growth, 2% interest",
		Transforms: []ScenarioTransform{
			&SetRates{SalaryGrowth: rate(0.02), SocAvgGrowth: rate(0.02), InterestRate: rate(0.02)},
		},
	})
	registry.Register(Template{
		Name:        "optimistic",
		Description: "5% salary growth, 5% average wage growth, 5% interest",
		Transforms: []ScenarioTransform{
			&SetRates{SalaryGrowth: rate(0.05), SocAvgGrowth: rate(0.05), InterestRate: rate(0.05)},
		},
	})
	registry.Register(Template{
		Name:        "low_interest",
		Description: "Personal account interest of 1.5%",
		Transforms:  []ScenarioTransform{&SetRates{InterestRate: rate(0.015)}},
	})

	// Combinations
	registry.Register(Template{
		Name:        "stop_at_50_fixed_base",
		Description: "Stop at 50 with the base held fixed until then",
		Transforms: []ScenarioTransform{
			&SetBaseMode{Mode: domain.BaseFixed},
			&StopAt{Age: 50},
		},
	})
	registry.Register(Template{
		Name:        "stop_at_50_pessimistic",
		Description: "Stop at 50 under pessimistic rates",
		Transforms: []ScenarioTransform{
			&StopAt{Age: 50},
			&SetRates{SalaryGrowth: rate(0.02), SocAvgGrowth: rate(0.02), InterestRate: rate(0.02)},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base input
func ApplyTemplate(base domain.ProjectionInput, template Template) (domain.ProjectionInput, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := map[string][]Template{}
	order := []string{"Contribution Timing", "Contribution Base", "Economic Assumptions", "Combination Strategies"}

	for _, name := range registry.List() {
		template := registry.templates[name]
		switch {
		case len(template.Transforms) > 1:
			categories["Combination Strategies"] = append(categories["Combination Strategies"], template)
		case strings.HasPrefix(name, "stop_") || name == "to_retirement":
			categories["Contribution Timing"] = append(categories["Contribution Timing"], template)
		case strings.HasPrefix(name, "base_"):
			categories["Contribution Base"] = append(categories["Contribution Base"], template)
		default:
			categories["Economic Assumptions"] = append(categories["Economic Assumptions"], template)
		}
	}

	for _, category := range order {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-26s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  pensioncalc compare base.yaml --with stop_at_50,pessimistic\n")
	sb.WriteString("  pensioncalc compare base.yaml --with stop_now --transform set_rates:interest=0.04\n")

	return sb.String()
}
