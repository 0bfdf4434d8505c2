package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/pensioncalc/internal/calculation"
	"github.com/rgehrsitz/pensioncalc/internal/domain"
	"github.com/rgehrsitz/pensioncalc/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.Engine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.Engine) *CompareEngine {
	if calcEngine == nil {
		calcEngine = calculation.NewEngine()
	}
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // label for the unmodified input
	Templates        []string // template names, one alternative each
	Transforms       []string // transform specs combined into one "custom" alternative
	ConfigPath       string
}

// Scenario is a named alternative built from transforms
type Scenario struct {
	Name        string
	Description string
	Transforms  []transform.ScenarioTransform
}

// Compare projects the base input and one alternative per template, plus a
// custom alternative when transform specs are given
func (ce *CompareEngine) Compare(ctx context.Context, base domain.ProjectionInput, options CompareOptions) (*ComparisonSet, error) {
	ce.TemplateRegistry = transform.CreateBuiltInTemplates(base.CurrentAge)

	scenarios := make([]Scenario, 0, len(options.Templates)+1)
	for _, name := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(name)
		if !ok {
			return nil, fmt.Errorf("template %s not found", name)
		}
		scenarios = append(scenarios, Scenario{
			Name:        template.Name,
			Description: template.Description,
			Transforms:  template.Transforms,
		})
	}

	if len(options.Transforms) > 0 {
		transforms, err := ce.TransformRegistry.ParseTransformSpecs(options.Transforms)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, Scenario{
			Name:        "custom",
			Description: "Custom transforms",
			Transforms:  transforms,
		})
	}

	compSet, err := ce.CompareScenarios(ctx, base, options.BaseScenarioName, scenarios)
	if err != nil {
		return nil, err
	}
	compSet.ConfigPath = options.ConfigPath
	return compSet, nil
}

// CompareScenarios compares explicit scenarios against the base input.
// Alternatives whose transformed input is invalid are recorded as skipped;
// any other failure aborts the comparison.
func (ce *CompareEngine) CompareScenarios(ctx context.Context, base domain.ProjectionInput, baseName string, scenarios []Scenario) (*ComparisonSet, error) {
	if baseName == "" {
		baseName = "base"
	}

	baseProjection, err := ce.CalcEngine.Project(base)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseName, baseProjection)
	baseResult.Description = "Current plan"

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         &baseResult,
		AlternativeResults: []ComparisonResult{},
	}

	for _, sc := range scenarios {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		modified, err := transform.ApplyTransforms(base, sc.Transforms)
		if err != nil {
			compSet.Skipped = append(compSet.Skipped, SkippedScenario{ScenarioName: sc.Name, Reason: err.Error()})
			continue
		}

		projection, err := ce.CalcEngine.Project(modified)
		if err != nil {
			if domain.IsInvalidInput(err) {
				compSet.Skipped = append(compSet.Skipped, SkippedScenario{ScenarioName: sc.Name, Reason: err.Error()})
				continue
			}
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", sc.Name, err)
		}

		altResult := ce.MetricsCalculator.CalculateMetrics(sc.Name, projection)
		altResult.Description = sc.Description
		altResult.Changes = transform.Describe(sc.Transforms)
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)
		compSet.AlternativeResults = append(compSet.AlternativeResults, altResult)
	}

	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet, nil
}
