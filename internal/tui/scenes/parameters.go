package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/pensioncalc/internal/domain"
	"github.com/rgehrsitz/pensioncalc/internal/tui/components"
	"github.com/rgehrsitz/pensioncalc/internal/tui/tuimsg"
	"github.com/rgehrsitz/pensioncalc/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

const (
	sliderSalaryBase   = "salary_base"
	sliderStopAge      = "stop_age"
	sliderSalaryGrowth = "salary_growth"
	sliderSocAvgGrowth = "soc_avg_growth"
	sliderInterestRate = "interest_rate"
)

// rate sliders work in percent
var (
	hundred    = decimal.NewFromInt(100)
	maxRatePct = decimal.NewFromInt(15)
	halfPct    = decimal.NewFromFloat(0.5)
)

var (
	keyUp        = key.NewBinding(key.WithKeys("up", "k"))
	keyDown      = key.NewBinding(key.WithKeys("down", "j"))
	keyIncrease  = key.NewBinding(key.WithKeys("right", "+", "="))
	keyDecrease  = key.NewBinding(key.WithKeys("left", "-"))
	keyTogglePln = key.NewBinding(key.WithKeys("t"))
	keyToggleBas = key.NewBinding(key.WithKeys("b"))
	keyUndo      = key.NewBinding(key.WithKeys("u"))
	keySave      = key.NewBinding(key.WithKeys("ctrl+s"))
)

// ParametersModel edits the current input with sliders; every change is
// sent up for recalculation
type ParametersModel struct {
	original  domain.ProjectionInput
	input     domain.ProjectionInput
	retireAge int
	loaded    bool
	sliders   []*components.ParameterSlider
	focused   int
	modified  bool
	width     int
	height    int
}

// NewParametersModel creates a new parameters scene model
func NewParametersModel() *ParametersModel {
	return &ParametersModel{}
}

// SetInput replaces the input being edited and rebuilds the sliders
func (m *ParametersModel) SetInput(in domain.ProjectionInput, retireAge int) {
	m.original = in
	m.input = in
	m.retireAge = retireAge
	m.loaded = true
	m.modified = false
	m.buildSliders()
}

// Input returns the edited input
func (m *ParametersModel) Input() domain.ProjectionInput {
	return m.input
}

// Modified reports whether the input differs from the one last set
func (m *ParametersModel) Modified() bool {
	return m.modified
}

// SetSize updates the scene dimensions
func (m *ParametersModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *ParametersModel) buildSliders() {
	in := m.input
	stopAge := in.StopAge
	if in.PaymentPlan != domain.PlanStopEarly || stopAge < in.CurrentAge {
		stopAge = m.retireAge
	}
	maxBase := decimal.Max(in.AvgSalary.Mul(decimal.NewFromInt(5)), in.SalaryBase)
	pct := func(rate decimal.Decimal) decimal.Decimal { return rate.Mul(hundred) }

	m.sliders = []*components.ParameterSlider{
		components.NewParameterSlider(sliderSalaryBase, "Contribution base", in.SalaryBase, hundred, maxBase, hundred).
			WithKind(components.SliderCurrency).
			WithDescription("Monthly base contributions are charged on"),
		components.NewParameterSlider(sliderStopAge, "Stop age",
			decimal.NewFromInt(int64(stopAge)), decimal.NewFromInt(int64(in.CurrentAge)), decimal.NewFromInt(int64(m.retireAge)), decimal.NewFromInt(1)).
			WithKind(components.SliderYears).
			WithDescription("Moving this switches to the stop-early plan"),
		components.NewParameterSlider(sliderSalaryGrowth, "Salary growth", pct(in.SalaryGrowth), decimal.Zero, maxRatePct, halfPct).
			WithKind(components.SliderPercent).
			WithDescription("Yearly growth of the contribution base when it follows salary"),
		components.NewParameterSlider(sliderSocAvgGrowth, "Average wage growth", pct(in.SocAvgGrowth), decimal.Zero, maxRatePct, halfPct).
			WithKind(components.SliderPercent).
			WithDescription("Yearly growth of the social average wage"),
		components.NewParameterSlider(sliderInterestRate, "Account interest", pct(in.InterestRate), decimal.Zero, maxRatePct, decimal.NewFromFloat(0.25)).
			WithKind(components.SliderPercent).
			WithDescription("Yearly interest credited to the personal account"),
	}
	if m.focused >= len(m.sliders) {
		m.focused = 0
	}
	m.sliders[m.focused].SetFocused(true)
}

// Update handles messages for the parameters scene
func (m *ParametersModel) Update(msg tea.Msg) (*ParametersModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.loaded || len(m.sliders) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keyUp):
		m.moveFocus(-1)
	case key.Matches(keyMsg, keyDown):
		m.moveFocus(1)
	case key.Matches(keyMsg, keyIncrease):
		if m.sliders[m.focused].Increment() {
			return m, m.applySlider(m.sliders[m.focused])
		}
	case key.Matches(keyMsg, keyDecrease):
		if m.sliders[m.focused].Decrement() {
			return m, m.applySlider(m.sliders[m.focused])
		}
	case key.Matches(keyMsg, keyTogglePln):
		if m.input.PaymentPlan == domain.PlanStopEarly {
			m.input.PaymentPlan = domain.PlanContinuous
		} else {
			m.input.PaymentPlan = domain.PlanStopEarly
			m.input.StopAge = int(m.slider(sliderStopAge).Value.IntPart())
		}
		return m, m.changed()
	case key.Matches(keyMsg, keyToggleBas):
		if m.input.BaseChangeMode == domain.BaseFixed {
			m.input.BaseChangeMode = domain.BaseFollowSalary
		} else {
			m.input.BaseChangeMode = domain.BaseFixed
		}
		return m, m.changed()
	case key.Matches(keyMsg, keyUndo):
		m.input = m.original
		m.modified = false
		m.buildSliders()
		return m, inputChangedCmd(m.input)
	case key.Matches(keyMsg, keySave):
		in := m.input
		return m, func() tea.Msg { return tuimsg.SaveInputMsg{Input: in} }
	}
	return m, nil
}

func (m *ParametersModel) moveFocus(delta int) {
	next := m.focused + delta
	if next < 0 || next >= len(m.sliders) {
		return
	}
	m.sliders[m.focused].SetFocused(false)
	m.focused = next
	m.sliders[m.focused].SetFocused(true)
}

func (m *ParametersModel) slider(k string) *components.ParameterSlider {
	for _, s := range m.sliders {
		if s.Key == k {
			return s
		}
	}
	return nil
}

// applySlider writes one slider back into the input
func (m *ParametersModel) applySlider(s *components.ParameterSlider) tea.Cmd {
	switch s.Key {
	case sliderSalaryBase:
		m.input.SalaryBase = s.Value
	case sliderStopAge:
		m.input.PaymentPlan = domain.PlanStopEarly
		m.input.StopAge = int(s.Value.IntPart())
	case sliderSalaryGrowth:
		m.input.SalaryGrowth = s.Value.Div(hundred)
	case sliderSocAvgGrowth:
		m.input.SocAvgGrowth = s.Value.Div(hundred)
	case sliderInterestRate:
		m.input.InterestRate = s.Value.Div(hundred)
	}
	return m.changed()
}

func (m *ParametersModel) changed() tea.Cmd {
	m.modified = true
	return inputChangedCmd(m.input)
}

func inputChangedCmd(in domain.ProjectionInput) tea.Cmd {
	return func() tea.Msg { return tuimsg.InputChangedMsg{Input: in} }
}

// View renders the parameters scene
func (m *ParametersModel) View() string {
	if !m.loaded {
		return tuistyles.BorderStyle.Render("No input loaded.")
	}

	rows := make([]string, 0, len(m.sliders))
	for _, s := range m.sliders {
		rows = append(rows, s.RenderCompact())
	}
	focused := m.sliders[m.focused].Render()

	plan := "continuous"
	if m.input.PaymentPlan == domain.PlanStopEarly {
		plan = fmt.Sprintf("stop early at %d", m.input.StopAge)
	}
	mode := "follows salary"
	if m.input.BaseChangeMode == domain.BaseFixed {
		mode = "fixed"
	}
	toggles := fmt.Sprintf("Plan: %s  (t)   •   Base: %s  (b)", plan, mode)

	var status string
	if m.modified {
		status = tuistyles.InfoStyle.Render("⚠ Modified • u undo • ctrl+s save")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.TitleStyle.Render("Edit Parameters"),
		"",
		tuistyles.BorderStyle.Render(strings.Join(rows, "\n")),
		toggles,
		"",
		focused,
		"",
		status,
		tuistyles.HelpStyle.Render("↑/↓ select • ←/→ adjust • t plan • b base mode • u undo • ctrl+s save • esc back"),
	)
}
