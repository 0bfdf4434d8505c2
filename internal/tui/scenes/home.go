package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/pensioncalc/internal/domain"
	"github.com/rgehrsitz/pensioncalc/internal/output"
	"github.com/rgehrsitz/pensioncalc/internal/tui/components"
	"github.com/rgehrsitz/pensioncalc/internal/tui/tuistyles"
)

// HomeModel is the dashboard: headline figures for the current input and
// the pension curve over every possible stop age
type HomeModel struct {
	scenarioName string
	result       *domain.ProjectionResult
	width        int
	height       int
}

// NewHomeModel creates a new home scene model
func NewHomeModel() *HomeModel {
	return &HomeModel{}
}

// SetResult updates the projection shown on the dashboard
func (m *HomeModel) SetResult(scenarioName string, result *domain.ProjectionResult) {
	m.scenarioName = scenarioName
	m.result = result
}

// SetSize updates the scene dimensions
func (m *HomeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the home scene
func (m *HomeModel) Update(msg tea.Msg) (*HomeModel, tea.Cmd) {
	return m, nil
}

// View renders the dashboard
func (m *HomeModel) View() string {
	if m.result == nil {
		return tuistyles.BorderStyle.Render("Welcome to pensioncalc\n\nLoading input...")
	}

	sections := []string{
		m.renderInputOverview(),
		components.MetricGrid(m.metricCards(), m.columns()),
		m.renderCurve(),
		tuistyles.HelpStyle.Render("p edit parameters • r year table • s scenarios • c compare • o break-even"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *HomeModel) columns() int {
	if m.width > 0 && m.width < 80 {
		return 2
	}
	return 4
}

func (m *HomeModel) renderInputOverview() string {
	in := m.result.Input
	plan := "contribute until retirement"
	if in.PaymentPlan == domain.PlanStopEarly {
		plan = fmt.Sprintf("stop contributing at %d", in.StopAge)
	}
	lines := []string{
		tuistyles.TitleStyle.Render("Scenario: " + m.scenarioName),
		fmt.Sprintf("%s, age %d, retiring at %d (%d) • %s",
			genderLabel(in.Gender), in.CurrentAge, m.result.Profile.RetireAge,
			m.result.Profile.RetireCalendarYear, plan),
		tuistyles.SubtitleStyle.Render(strings.Join(output.Assumptions(m.result)[:3], " • ")),
	}
	return strings.Join(lines, "\n")
}

func (m *HomeModel) metricCards() []*components.MetricCard {
	r := m.result
	best := r.BestStopRow()
	return []*components.MetricCard{
		components.NewMetricCard("Monthly pension", tuistyles.FormatCurrency(r.TotalPension)).
			WithDescription(fmt.Sprintf("%d payment months", r.PaymentMonths)),
		components.NewMetricCard("Basic pension", tuistyles.FormatCurrency(r.BasicPension)).
			WithDescription(r.TotalYears.StringFixed(2) + " credited years"),
		components.NewMetricCard("Personal pension", tuistyles.FormatCurrency(r.PersonalPension)).
			WithDescription("balance " + tuistyles.FormatCurrency(r.BalanceAtRetirement)),
		components.NewMetricCard("Replacement rate", output.FormatPercentage(r.ReplacementRate)).
			WithDescription(fmt.Sprintf("peak row: age %d", best.Age)),
	}
}

// renderCurve plots the pension reached by stopping at each row's age
func (m *HomeModel) renderCurve() string {
	rows := m.result.Rows
	if len(rows) < 2 {
		return ""
	}
	points := make([]float64, len(rows))
	labels := make([]string, len(rows))
	highlight := -1
	for i, row := range rows {
		points[i] = row.PensionIfStop.InexactFloat64()
		labels[i] = fmt.Sprintf("%d", row.Age)
		if m.result.Input.PaymentPlan == domain.PlanStopEarly && row.Age == m.result.Input.StopAge {
			highlight = i
		}
	}
	width := 70
	if m.width > 20 && m.width-6 < width {
		width = m.width - 6
	}
	return components.NewASCIIChart("Pension by stop age").
		AddSeries("pension", points, tuistyles.ColorChartLine1).
		WithLabels(labels).
		WithHighlight(highlight).
		WithSize(width, 10).
		Render()
}

func genderLabel(g domain.Gender) string {
	switch g {
	case domain.GenderFemaleWorker:
		return "Female worker"
	case domain.GenderFemaleCadre:
		return "Female cadre"
	default:
		return "Male"
	}
}
