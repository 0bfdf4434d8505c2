package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/pensioncalc/internal/breakeven"
	"github.com/rgehrsitz/pensioncalc/internal/tui/tuimsg"
	"github.com/rgehrsitz/pensioncalc/internal/tui/tuistyles"
)

var keyGoal = key.NewBinding(key.WithKeys("tab"))

// OptimizeModel asks for a target pension or replacement rate and shows
// what it takes to reach it
type OptimizeModel struct {
	goal       breakeven.OptimizationGoal
	input      textinput.Model
	optimizing bool
	result     *breakeven.MultiDimensionalResult
	err        error
	width      int
	height     int
}

// NewOptimizeModel creates a new optimize scene model
func NewOptimizeModel() *OptimizeModel {
	ti := textinput.New()
	ti.CharLimit = 12
	ti.Width = 16

	m := &OptimizeModel{goal: breakeven.GoalMatchPension, input: ti}
	m.applyPlaceholder()
	return m
}

func (m *OptimizeModel) applyPlaceholder() {
	if m.goal == breakeven.GoalMatchReplacement {
		m.input.Placeholder = "e.g. 60 (%)"
	} else {
		m.input.Placeholder = "e.g. 12000"
	}
}

// Focus starts text entry
func (m *OptimizeModel) Focus() tea.Cmd {
	return m.input.Focus()
}

// Blur stops text entry
func (m *OptimizeModel) Blur() {
	m.input.Blur()
}

// Capturing reports whether keystrokes belong to the text input
func (m *OptimizeModel) Capturing() bool {
	return m.input.Focused()
}

// Goal returns the selected goal
func (m *OptimizeModel) Goal() breakeven.OptimizationGoal {
	return m.goal
}

// SetSize updates the scene dimensions
func (m *OptimizeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetResult shows a finished optimization
func (m *OptimizeModel) SetResult(result *breakeven.MultiDimensionalResult, err error) {
	m.result = result
	m.err = err
	m.optimizing = false
}

// ParseTarget converts the typed value for the selected goal; replacement
// rates are typed as percentages
func (m *OptimizeModel) ParseTarget() (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(strings.TrimSuffix(m.input.Value(), "%")))
	if err != nil {
		return decimal.Zero, fmt.Errorf("not a number: %q", m.input.Value())
	}
	if !v.IsPositive() {
		return decimal.Zero, fmt.Errorf("target must be positive")
	}
	if m.goal == breakeven.GoalMatchReplacement {
		v = v.Div(decimal.NewFromInt(100))
	}
	return v, nil
}

// Update handles messages for the optimize scene
func (m *OptimizeModel) Update(msg tea.Msg) (*OptimizeModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keyGoal):
			if m.goal == breakeven.GoalMatchPension {
				m.goal = breakeven.GoalMatchReplacement
			} else {
				m.goal = breakeven.GoalMatchPension
			}
			m.applyPlaceholder()
			return m, nil

		case key.Matches(keyMsg, keySelect):
			if !m.input.Focused() {
				return m, m.input.Focus()
			}
			target, err := m.ParseTarget()
			if err != nil {
				m.err = err
				return m, nil
			}
			m.err = nil
			m.optimizing = true
			m.input.Blur()
			goal := m.goal
			return m, func() tea.Msg { return tuimsg.OptimizeRequestedMsg{Goal: goal, Target: target} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the optimize scene
func (m *OptimizeModel) View() string {
	goalLabel := "Target monthly pension"
	if m.goal == breakeven.GoalMatchReplacement {
		goalLabel = "Target replacement rate (%)"
	}

	parts := []string{
		tuistyles.TitleStyle.Render("Break-even Solver"),
		"",
		tuistyles.ParameterLabelStyle.Render(goalLabel) + "  " + tuistyles.SubtitleStyle.Render("(tab switches)"),
		m.input.View(),
		"",
	}

	switch {
	case m.optimizing:
		parts = append(parts, tuistyles.InfoStyle.Render("Searching stop ages and contribution bases..."))
	case m.err != nil:
		parts = append(parts, tuistyles.ErrorStyle.Render("Error: "+m.err.Error()))
	case m.result != nil:
		parts = append(parts, m.renderResults())
	}

	parts = append(parts, "", tuistyles.HelpStyle.Render("enter edit/solve • tab goal • esc back"))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *OptimizeModel) renderResults() string {
	var sb strings.Builder
	for i := range m.result.Results {
		r := &m.result.Results[i]
		switch {
		case r.OptimalStopAge != nil:
			sb.WriteString(fmt.Sprintf("Stop contributing at %d", *r.OptimalStopAge))
		case r.OptimalSalaryBase != nil:
			sb.WriteString(fmt.Sprintf("Contribute on a base of %s", tuistyles.FormatCurrency(*r.OptimalSalaryBase)))
		}
		sb.WriteString(fmt.Sprintf("  →  %s per month, %s replacement\n",
			tuistyles.FormatCurrency(r.TotalPension),
			r.ReplacementRate.Mul(decimal.NewFromInt(100)).StringFixed(1)+"%"))
		sb.WriteString(tuistyles.SubtitleStyle.Render("   " + r.ConvergenceInfo))
		sb.WriteString("\n")
	}
	for _, f := range m.result.Failures {
		sb.WriteString(tuistyles.ErrorStyle.Render("✗ " + f))
		sb.WriteString("\n")
	}
	for _, rec := range m.result.Recommendations {
		sb.WriteString(tuistyles.InfoStyle.Render("• " + rec))
		sb.WriteString("\n")
	}
	return tuistyles.BorderStyle.Render(strings.TrimRight(sb.String(), "\n"))
}
