package scenes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/pensioncalc/internal/config"
	"github.com/rgehrsitz/pensioncalc/internal/tui/components"
	"github.com/rgehrsitz/pensioncalc/internal/tui/tuimsg"
	"github.com/rgehrsitz/pensioncalc/internal/tui/tuistyles"
)

// BaseScenarioName labels the unmodified input in the scenario list
const BaseScenarioName = "base"

var keySelect = key.NewBinding(key.WithKeys("enter"))

// ScenariosModel lists the base input and the named scenarios from the
// loaded file
type ScenariosModel struct {
	cards    []*components.ScenarioCard
	selected int
	active   string
	width    int
	height   int
}

// NewScenariosModel creates a new scenarios scene model
func NewScenariosModel() *ScenariosModel {
	return &ScenariosModel{active: BaseScenarioName}
}

// SetScenarios rebuilds the list from the file's scenario entries
func (m *ScenariosModel) SetScenarios(entries []config.ScenarioEntry) {
	m.cards = []*components.ScenarioCard{components.NewScenarioCard(BaseScenarioName, nil)}
	for _, e := range entries {
		m.cards = append(m.cards, components.NewScenarioCard(e.Name, e.Transforms))
	}
	if m.selected >= len(m.cards) {
		m.selected = 0
	}
}

// SetActive records which scenario is projected and its pension
func (m *ScenariosModel) SetActive(name, pension string) {
	m.active = name
	for _, c := range m.cards {
		if c.Name == name {
			c.WithPension(pension)
		}
	}
}

// SelectedScenario returns the name under the cursor
func (m *ScenariosModel) SelectedScenario() string {
	if m.selected >= 0 && m.selected < len(m.cards) {
		return m.cards[m.selected].Name
	}
	return ""
}

// SetSize updates the scene dimensions
func (m *ScenariosModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the scenarios scene
func (m *ScenariosModel) Update(msg tea.Msg) (*ScenariosModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keyUp):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(keyMsg, keyDown):
		if m.selected < len(m.cards)-1 {
			m.selected++
		}
	case key.Matches(keyMsg, keySelect):
		name := m.SelectedScenario()
		if name == "" {
			return m, nil
		}
		if name == BaseScenarioName {
			name = ""
		}
		return m, func() tea.Msg { return tuimsg.ScenarioSelectedMsg{ScenarioName: name} }
	}
	return m, nil
}

// View renders the scenarios scene
func (m *ScenariosModel) View() string {
	if len(m.cards) == 0 {
		return tuistyles.BorderStyle.Render("No scenarios loaded.")
	}

	list := components.ScenarioListCompact(m.cards, m.selected)
	detail := m.cards[m.selected].Render()

	return lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.TitleStyle.Render("Scenarios"),
		tuistyles.SubtitleStyle.Render("Active: "+m.active),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(28).Render(list),
			detail),
		"",
		tuistyles.HelpStyle.Render("↑/↓ select • enter project • esc back"),
	)
}
