// Package tuimsg defines the messages scenes send to the root model
package tuimsg

import (
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/pensioncalc/internal/breakeven"
	"github.com/rgehrsitz/pensioncalc/internal/domain"
)

// ScenarioSelectedMsg asks the root model to switch to a named scenario
// from the loaded file; an empty name selects the base input
type ScenarioSelectedMsg struct {
	ScenarioName string
}

// InputChangedMsg carries an edited input for immediate recalculation
type InputChangedMsg struct {
	Input domain.ProjectionInput
}

// CompareRequestedMsg asks for a comparison of the current input against
// built-in templates
type CompareRequestedMsg struct {
	Templates []string
}

// OptimizeRequestedMsg asks the break-even solver to reach a target
type OptimizeRequestedMsg struct {
	Goal   breakeven.OptimizationGoal
	Target decimal.Decimal
}

// SaveInputMsg asks for the current input to be written back to disk
type SaveInputMsg struct {
	Input domain.ProjectionInput
}

// SaveCompleteMsg reports the result of a save
type SaveCompleteMsg struct {
	Filename string
	Err      error
}
