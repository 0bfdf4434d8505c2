package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/pensioncalc/internal/tui/tuistyles"
)

// ScenarioCard summarises a named scenario and the transforms behind it
type ScenarioCard struct {
	Name       string
	Changes    []string
	Pension    string // headline monthly pension, empty until projected
	IsSelected bool
	Width      int
}

// NewScenarioCard creates a card for a scenario
func NewScenarioCard(name string, changes []string) *ScenarioCard {
	return &ScenarioCard{
		Name:    name,
		Changes: changes,
		Width:   48,
	}
}

// WithPension sets the projected pension line
func (s *ScenarioCard) WithPension(pension string) *ScenarioCard {
	s.Pension = pension
	return s
}

// SetSelected marks the card as selected
func (s *ScenarioCard) SetSelected(selected bool) *ScenarioCard {
	s.IsSelected = selected
	return s
}

// Render returns the bordered card
func (s *ScenarioCard) Render() string {
	lines := []string{tuistyles.TitleStyle.Render(s.Name)}
	if s.Pension != "" {
		lines = append(lines, tuistyles.MetricValueStyle.Render(s.Pension+" / month"))
	}
	if len(s.Changes) == 0 {
		lines = append(lines, tuistyles.SubtitleStyle.Render("• unchanged input"))
	}
	for _, c := range s.Changes {
		lines = append(lines, tuistyles.SubtitleStyle.Render("• "+c))
	}

	border := tuistyles.ColorBorder
	if s.IsSelected {
		border = tuistyles.ColorPrimary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(s.Width).
		Render(strings.Join(lines, "\n"))
}

// RenderCompact returns a single selectable line
func (s *ScenarioCard) RenderCompact() string {
	if s.IsSelected {
		return tuistyles.SelectedItemStyle.Render("▸ " + s.Name)
	}
	return tuistyles.UnselectedItemStyle.Render("  " + s.Name)
}

// ScenarioListCompact renders cards as a list with one selected entry
func ScenarioListCompact(cards []*ScenarioCard, selectedIndex int) string {
	lines := make([]string, 0, len(cards))
	for i, card := range cards {
		card.SetSelected(i == selectedIndex)
		lines = append(lines, card.RenderCompact())
	}
	return strings.Join(lines, "\n")
}
