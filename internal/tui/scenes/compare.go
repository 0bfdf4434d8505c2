package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/pensioncalc/internal/compare"
	"github.com/rgehrsitz/pensioncalc/internal/transform"
	"github.com/rgehrsitz/pensioncalc/internal/tui/tuimsg"
	"github.com/rgehrsitz/pensioncalc/internal/tui/tuistyles"
)

var keyToggle = key.NewBinding(key.WithKeys(" ", "x"))

// CompareModel picks built-in templates and shows how each one moves the
// pension against the current input
type CompareModel struct {
	templates []transform.Template
	checked   map[string]bool
	cursor    int
	running   bool
	result    *compare.ComparisonSet
	width     int
	height    int
}

// NewCompareModel creates a new compare scene model
func NewCompareModel() *CompareModel {
	return &CompareModel{checked: make(map[string]bool)}
}

// SetTemplates loads the templates available for the current age. Earlier
// choices that still exist stay checked.
func (m *CompareModel) SetTemplates(registry *transform.TemplateRegistry) {
	m.templates = m.templates[:0]
	for _, name := range registry.List() {
		t, _ := registry.Get(name)
		m.templates = append(m.templates, t)
	}
	if m.cursor >= len(m.templates) {
		m.cursor = 0
	}
}

// SetResult shows a finished comparison
func (m *CompareModel) SetResult(result *compare.ComparisonSet) {
	m.result = result
	m.running = false
}

// SetSize updates the scene dimensions
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Selected returns the checked template names in list order
func (m *CompareModel) Selected() []string {
	var names []string
	for _, t := range m.templates {
		if m.checked[t.Name] {
			names = append(names, t.Name)
		}
	}
	return names
}

// Update handles messages for the compare scene
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.templates) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keyUp):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keyDown):
		if m.cursor < len(m.templates)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keyToggle):
		name := m.templates[m.cursor].Name
		m.checked[name] = !m.checked[name]
	case key.Matches(keyMsg, keySelect):
		names := m.Selected()
		if len(names) == 0 {
			names = []string{m.templates[m.cursor].Name}
		}
		m.running = true
		return m, func() tea.Msg { return tuimsg.CompareRequestedMsg{Templates: names} }
	}
	return m, nil
}

// View renders the compare scene
func (m *CompareModel) View() string {
	left := lipgloss.NewStyle().Width(34).Render(m.renderSelection())

	var right string
	switch {
	case m.running:
		right = tuistyles.InfoStyle.Render("Comparing...")
	case m.result != nil:
		right = m.renderComparison()
	default:
		right = tuistyles.SubtitleStyle.Render("Check templates with space, then press enter.")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.TitleStyle.Render("Compare Scenarios"),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		"",
		tuistyles.HelpStyle.Render("↑/↓ move • space check • enter compare • esc back"),
	)
}

func (m *CompareModel) renderSelection() string {
	lines := make([]string, 0, len(m.templates))
	for i, t := range m.templates {
		box := "[ ]"
		if m.checked[t.Name] {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s", box, t.Name)
		if i == m.cursor {
			lines = append(lines, tuistyles.SelectedItemStyle.Render("▸ "+line))
		} else {
			lines = append(lines, tuistyles.UnselectedItemStyle.Render("  "+line))
		}
	}
	if m.cursor < len(m.templates) {
		lines = append(lines, "", tuistyles.SubtitleStyle.Render(m.templates[m.cursor].Description))
	}
	return strings.Join(lines, "\n")
}

func (m *CompareModel) renderComparison() string {
	r := m.result
	var sb strings.Builder

	sb.WriteString(tuistyles.TableHeaderStyle.Render(
		fmt.Sprintf("%-24s %12s %10s %12s", "Scenario", "Pension/mo", "Change", "Contributed")))
	sb.WriteString("\n")
	if r.BaseResult != nil {
		sb.WriteString(fmt.Sprintf("%-24s %12s %10s %12s\n",
			truncate(r.BaseResult.ScenarioName+" (base)", 24),
			r.BaseResult.TotalPension.StringFixed(2),
			"",
			formatCompact(r.BaseResult.TotalContributions)))
	}
	for _, alt := range r.AlternativeResults {
		change := fmt.Sprintf("%s%%", alt.PensionPctFromBase.StringFixed(1))
		style := tuistyles.MetricTrendStyle(!alt.PensionDiffFromBase.IsNegative())
		sb.WriteString(fmt.Sprintf("%-24s %12s %s %12s\n",
			truncate(alt.ScenarioName, 24),
			alt.TotalPension.StringFixed(2),
			style.Render(fmt.Sprintf("%10s", change)),
			formatCompact(alt.TotalContributions)))
	}
	for _, s := range r.Skipped {
		sb.WriteString(tuistyles.ErrorStyle.Render(fmt.Sprintf("skipped %s: %s", s.ScenarioName, s.Reason)))
		sb.WriteString("\n")
	}
	if len(r.Recommendations) > 0 {
		sb.WriteString("\n")
		for _, rec := range r.Recommendations {
			sb.WriteString(tuistyles.InfoStyle.Render("• " + rec))
			sb.WriteString("\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func formatCompact(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		return d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	}
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}
