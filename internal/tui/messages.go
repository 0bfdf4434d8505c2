package tui

import (
	"github.com/rgehrsitz/pensioncalc/internal/breakeven"
	"github.com/rgehrsitz/pensioncalc/internal/compare"
	"github.com/rgehrsitz/pensioncalc/internal/config"
	"github.com/rgehrsitz/pensioncalc/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneHome Scene = iota
	SceneScenarios
	SceneParameters
	SceneCompare
	SceneOptimize
	SceneResults
	SceneHelp
)

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneHome:
		return "Home"
	case SceneScenarios:
		return "Scenarios"
	case SceneParameters:
		return "Parameters"
	case SceneCompare:
		return "Compare"
	case SceneOptimize:
		return "Optimize"
	case SceneResults:
		return "Results"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// InputLoadedMsg signals the scenario file has been read
type InputLoadedMsg struct {
	File  *config.ScenarioFile
	Input domain.ProjectionInput
}

// CalculationCompleteMsg carries a finished projection. Edited is set when
// the input came from the parameters scene rather than a scenario switch.
type CalculationCompleteMsg struct {
	ScenarioName string
	Input        domain.ProjectionInput
	Result       *domain.ProjectionResult
	Edited       bool
	Err          error
}

// ComparisonCompleteMsg signals a comparison has finished
type ComparisonCompleteMsg struct {
	Result *compare.ComparisonSet
	Err    error
}

// OptimizationCompleteMsg signals the break-even search has finished
type OptimizationCompleteMsg struct {
	Result *breakeven.MultiDimensionalResult
	Err    error
}
