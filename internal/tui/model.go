package tui

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/pensioncalc/internal/breakeven"
	"github.com/rgehrsitz/pensioncalc/internal/calculation"
	"github.com/rgehrsitz/pensioncalc/internal/compare"
	"github.com/rgehrsitz/pensioncalc/internal/config"
	"github.com/rgehrsitz/pensioncalc/internal/domain"
	"github.com/rgehrsitz/pensioncalc/internal/transform"
	"github.com/rgehrsitz/pensioncalc/internal/tui/scenes"
	"github.com/rgehrsitz/pensioncalc/internal/tui/tuimsg"
)

// DefaultSavePath is where edits go when no input file was given
const DefaultSavePath = "pensioncalc-input.yaml"

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Input file and the projection derived from it
	inputPath    string
	parser       *config.InputParser
	file         *config.ScenarioFile
	base         domain.ProjectionInput
	input        domain.ProjectionInput
	scenarioName string
	result       *domain.ProjectionResult

	engine     *calculation.Engine
	transforms *transform.TransformRegistry

	// Scene models
	homeModel       *scenes.HomeModel
	scenariosModel  *scenes.ScenariosModel
	parametersModel *scenes.ParametersModel
	compareModel    *scenes.CompareModel
	optimizeModel   *scenes.OptimizeModel
	resultsModel    *scenes.ResultsModel

	spinner        spinner.Model
	loading        bool
	loadingMessage string
	status         string
	err            error
}

// NewModel creates a new application model. An empty inputPath starts from
// the default input. A nil engine uses the default policy.
func NewModel(inputPath string, engine *calculation.Engine) Model {
	if engine == nil {
		engine = calculation.NewEngine()
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		currentScene:    SceneHome,
		width:           80,
		height:          24,
		inputPath:       inputPath,
		parser:          config.NewInputParser(),
		engine:          engine,
		transforms:      transform.NewTransformRegistry(),
		homeModel:       scenes.NewHomeModel(),
		scenariosModel:  scenes.NewScenariosModel(),
		parametersModel: scenes.NewParametersModel(),
		compareModel:    scenes.NewCompareModel(),
		optimizeModel:   scenes.NewOptimizeModel(),
		resultsModel:    scenes.NewResultsModel(),
		spinner:         sp,
		loading:         true,
		loadingMessage:  "Loading input...",
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadInputCmd(m.parser, m.inputPath))
}

// loadInputCmd reads the scenario file, or falls back to the default input
func loadInputCmd(parser *config.InputParser, path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			in := domain.DefaultProjectionInput()
			return InputLoadedMsg{
				File:  &config.ScenarioFile{Name: "default", Input: config.InputSectionFrom(in)},
				Input: in,
			}
		}
		file, err := parser.LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		in, err := parser.ToProjectionInput(file.Input)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return InputLoadedMsg{File: file, Input: in}
	}
}

// calculateCmd projects one input in the background
func calculateCmd(engine *calculation.Engine, name string, in domain.ProjectionInput, edited bool) tea.Cmd {
	return func() tea.Msg {
		result, err := engine.Project(in)
		return CalculationCompleteMsg{
			ScenarioName: name,
			Input:        in,
			Result:       result,
			Edited:       edited,
			Err:          err,
		}
	}
}

// compareCmd compares the current input against built-in templates
func compareCmd(engine *calculation.Engine, in domain.ProjectionInput, templates []string) tea.Cmd {
	return func() tea.Msg {
		ce := compare.NewCompareEngine(engine)
		set, err := ce.Compare(context.Background(), in, compare.CompareOptions{
			BaseScenarioName: "Current",
			Templates:        templates,
		})
		return ComparisonCompleteMsg{Result: set, Err: err}
	}
}

// optimizeCmd searches stop ages and contribution bases for a target
func optimizeCmd(engine *calculation.Engine, in domain.ProjectionInput, goal breakeven.OptimizationGoal, target decimal.Decimal) tea.Cmd {
	return func() tea.Msg {
		constraints := breakeven.Constraints{}
		t := target
		if goal == breakeven.GoalMatchReplacement {
			constraints.TargetReplacementRate = &t
		} else {
			constraints.TargetPension = &t
		}
		solver := breakeven.NewDefaultSolver(engine)
		result, err := solver.OptimizeMultiDimensional(context.Background(), in, constraints, []breakeven.OptimizationGoal{goal})
		return OptimizationCompleteMsg{Result: result, Err: err}
	}
}

// saveCmd writes the edited input back as a scenario file, keeping the
// file's name, policy and scenario list
func saveCmd(path string, file *config.ScenarioFile, in domain.ProjectionInput) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			path = DefaultSavePath
		}
		out := config.ScenarioFile{Input: config.InputSectionFrom(in)}
		if file != nil {
			out.Name = file.Name
			out.Policy = file.Policy
			out.Scenarios = file.Scenarios
		}
		data, err := config.MarshalScenarioFile(&out)
		if err == nil {
			err = os.WriteFile(path, data, 0o644)
		}
		if err != nil {
			err = fmt.Errorf("failed to save %s: %w", path, err)
		}
		return tuimsg.SaveCompleteMsg{Filename: path, Err: err}
	}
}

// scenarioInput applies a named scenario's transforms to the base input
func (m Model) scenarioInput(name string) (domain.ProjectionInput, error) {
	if name == "" || m.file == nil {
		return m.base, nil
	}
	for _, entry := range m.file.Scenarios {
		if entry.Name != name {
			continue
		}
		transforms, err := m.transforms.ParseTransformSpecs(entry.Transforms)
		if err != nil {
			return domain.ProjectionInput{}, fmt.Errorf("scenario %s: %w", name, err)
		}
		return transform.ApplyTransforms(m.base, transforms)
	}
	return domain.ProjectionInput{}, fmt.Errorf("scenario %s not found", name)
}

// resize propagates the content area to every scene
func (m Model) resize() {
	h := m.height - 4
	m.homeModel.SetSize(m.width, h)
	m.scenariosModel.SetSize(m.width, h)
	m.parametersModel.SetSize(m.width, h)
	m.compareModel.SetSize(m.width, h)
	m.optimizeModel.SetSize(m.width, h)
	m.resultsModel.SetSize(m.width, h)
}
