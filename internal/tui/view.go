package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderApp(BorderStyle.Render(fmt.Sprintf("%s %s", m.spinner.View(), m.loadingMessage)))
	}

	if m.err != nil {
		return m.renderApp(ErrorStyle.Render(
			fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err.Error()),
		))
	}

	var content string
	switch m.currentScene {
	case SceneHome:
		content = m.homeModel.View()
	case SceneScenarios:
		content = m.scenariosModel.View()
	case SceneParameters:
		content = m.parametersModel.View()
	case SceneCompare:
		content = m.compareModel.View()
	case SceneOptimize:
		content = m.optimizeModel.View()
	case SceneResults:
		content = m.resultsModel.View()
	case SceneHelp:
		content = renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar, status bar, and main container
func (m Model) renderApp(content string) string {
	contentHeight := m.height - 4 // title (2) + status (1) + padding (1)
	if contentHeight < 1 {
		contentHeight = 1
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		lipgloss.NewStyle().Height(contentHeight).Render(content),
		m.renderStatusBar(),
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("pensioncalc - Pension Projection")

	crumb := m.currentScene.String()
	if m.scenarioName != "" {
		crumb = fmt.Sprintf("%s / %s", crumb, m.scenarioName)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(crumb))
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("h", "home"),
		formatShortcut("s", "scenarios"),
		formatShortcut("p", "parameters"),
		formatShortcut("c", "compare"),
		formatShortcut("o", "optimize"),
		formatShortcut("r", "results"),
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}
	statusText := strings.Join(shortcuts, " • ")

	right := m.status
	if right == "" && m.file != nil {
		right = m.file.Name
		if m.parametersModel.Modified() {
			right += " (modified)"
		}
	}
	if right != "" {
		gap := m.width - lipgloss.Width(statusText) - lipgloss.Width(right) - 4
		if gap < 1 {
			gap = 1
		}
		statusText += strings.Repeat(" ", gap) + SubtitleStyle.Render(right)
	}

	return StatusBarStyle.Width(m.width).Render(statusText)
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

func renderHelp() string {
	helpText := `
pensioncalc - Pension Projection Calculator

KEYBOARD SHORTCUTS:
  h        Home dashboard
  s        Scenarios from the input file
  p        Edit parameters
  c        Compare against templates
  o        Break-even solver
  r        Year-by-year results
  ?        Show this help
  ESC      Go back (leaves the solver input first)
  q/Ctrl+C Quit

LISTS:
  ↑/↓ or j/k   Move
  Enter        Select or run
  Space/x      Check a template (compare)

PARAMETERS:
  ←/→ or +/-   Adjust the focused slider
  t            Toggle continuous / stop early
  b            Toggle fixed / salary-following base
  u            Undo edits
  Ctrl+S       Save the input file

SOLVER:
  Tab          Switch between pension and replacement targets
`
	return BorderStyle.Render(helpText)
}
