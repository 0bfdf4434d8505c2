package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/pensioncalc/internal/transform"
	"github.com/rgehrsitz/pensioncalc/internal/tui/scenes"
	"github.com/rgehrsitz/pensioncalc/internal/tui/tuimsg"
	"github.com/rgehrsitz/pensioncalc/internal/tui/tuistyles"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		if m.currentScene == SceneOptimize {
			return m, m.optimizeModel.Focus()
		}
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case InputLoadedMsg:
		m.file = msg.File
		m.base = msg.Input
		m.scenariosModel.SetScenarios(msg.File.Scenarios)
		m.compareModel.SetTemplates(transform.CreateBuiltInTemplates(msg.Input.CurrentAge))
		m.resize()
		m.loadingMessage = "Calculating projection..."
		return m, calculateCmd(m.engine, "", msg.Input, false)

	case CalculationCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.scenarioName = msg.ScenarioName
		m.input = msg.Input
		m.result = msg.Result

		name := msg.ScenarioName
		if name == "" {
			name = scenes.BaseScenarioName
		}
		m.homeModel.SetResult(name, msg.Result)
		m.resultsModel.SetResults(name, msg.Result)
		m.scenariosModel.SetActive(name, tuistyles.FormatCurrency(msg.Result.TotalPension))
		if !msg.Edited {
			m.parametersModel.SetInput(msg.Input, msg.Result.Profile.RetireAge)
		}
		return m, nil

	case ComparisonCompleteMsg:
		m.compareModel.SetResult(msg.Result)
		if msg.Err != nil {
			m.err = msg.Err
		}
		return m, nil

	case OptimizationCompleteMsg:
		m.optimizeModel.SetResult(msg.Result, msg.Err)
		return m, nil

	case tuimsg.ScenarioSelectedMsg:
		in, err := m.scenarioInput(msg.ScenarioName)
		if err != nil {
			m.err = err
			return m, nil
		}
		return m, calculateCmd(m.engine, msg.ScenarioName, in, false)

	case tuimsg.InputChangedMsg:
		return m, calculateCmd(m.engine, m.scenarioName, msg.Input, true)

	case tuimsg.CompareRequestedMsg:
		return m, compareCmd(m.engine, m.input, msg.Templates)

	case tuimsg.OptimizeRequestedMsg:
		return m, optimizeCmd(m.engine, m.input, msg.Goal, msg.Target)

	case tuimsg.SaveInputMsg:
		return m, saveCmd(m.inputPath, m.file, msg.Input)

	case tuimsg.SaveCompleteMsg:
		if msg.Err != nil {
			m.err = msg.Err
		} else {
			m.status = "Saved " + msg.Filename
		}
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Any key dismisses an error
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	// The optimize scene's text input owns the keyboard while focused
	if m.currentScene == SceneOptimize && m.optimizeModel.Capturing() {
		if msg.String() == "esc" {
			m.optimizeModel.Blur()
			return m, nil
		}
		return m.updateCurrentScene(msg)
	}

	m.status = ""
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		return m, navigate(SceneHelp)
	case "esc":
		if m.currentScene != SceneHome {
			if m.previousScene != m.currentScene && m.previousScene != SceneHelp {
				return m, navigate(m.previousScene)
			}
			return m, navigate(SceneHome)
		}
	case "h":
		return m, navigate(SceneHome)
	case "s":
		return m, navigate(SceneScenarios)
	case "p":
		return m, navigate(SceneParameters)
	case "c":
		return m, navigate(SceneCompare)
	case "o":
		return m, navigate(SceneOptimize)
	case "r":
		return m, navigate(SceneResults)
	}

	return m.updateCurrentScene(msg)
}

func navigate(scene Scene) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Scene: scene} }
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneHome:
		m.homeModel, cmd = m.homeModel.Update(msg)
	case SceneScenarios:
		m.scenariosModel, cmd = m.scenariosModel.Update(msg)
	case SceneParameters:
		m.parametersModel, cmd = m.parametersModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	case SceneOptimize:
		m.optimizeModel, cmd = m.optimizeModel.Update(msg)
	case SceneResults:
		m.resultsModel, cmd = m.resultsModel.Update(msg)
	}
	return m, cmd
}
