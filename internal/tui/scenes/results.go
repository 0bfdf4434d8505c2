package scenes

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/pensioncalc/internal/domain"
	"github.com/rgehrsitz/pensioncalc/internal/output"
	"github.com/rgehrsitz/pensioncalc/internal/tui/tuistyles"
)

// ResultsModel shows the year-by-year table for the current projection
type ResultsModel struct {
	scenarioName string
	result       *domain.ProjectionResult
	table        table.Model
	width        int
	height       int
}

// NewResultsModel creates a new results scene model
func NewResultsModel() *ResultsModel {
	t := table.New(
		table.WithColumns(resultColumns()),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(tuistyles.ColorBorder).
		BorderBottom(true).
		Foreground(tuistyles.ColorPrimary).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(tuistyles.ColorBackground).
		Background(tuistyles.ColorAccent)
	t.SetStyles(styles)

	return &ResultsModel{table: t}
}

func resultColumns() []table.Column {
	return []table.Column{
		{Title: "Year", Width: 6},
		{Title: "Age", Width: 4},
		{Title: "Avg wage", Width: 11},
		{Title: "Base", Width: 11},
		{Title: "Paid/yr", Width: 10},
		{Title: "Balance", Width: 13},
		{Title: "Years", Width: 6},
		{Title: "Index", Width: 6},
		{Title: "Pension if stop", Width: 15},
	}
}

// SetResults replaces the projection shown
func (m *ResultsModel) SetResults(scenarioName string, result *domain.ProjectionResult) {
	m.scenarioName = scenarioName
	m.result = result
	if result == nil {
		m.table.SetRows(nil)
		return
	}

	rows := make([]table.Row, 0, len(result.Rows))
	for _, r := range result.Rows {
		base := output.FormatCurrency(r.ContributionBase)
		if r.Floored {
			base += "*"
		}
		paid := "-"
		if r.Contributing {
			paid = output.FormatCurrency(r.YearContribution)
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", r.Year),
			fmt.Sprintf("%d", r.Age),
			output.FormatCurrency(r.CurrentYearAvgSalary),
			base,
			paid,
			output.FormatCurrency(r.AccumulatedBalance),
			r.YearsIfStop.StringFixed(1),
			r.IndexIfStop.StringFixed(3),
			output.FormatCurrency(r.PensionIfStop),
		})
	}
	m.table.SetRows(rows)
}

// SetSize updates the scene dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if h := height - 10; h > 4 {
		m.table.SetHeight(h)
	}
}

// Update forwards navigation keys to the table
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// SelectedRow returns the projection row under the cursor
func (m *ResultsModel) SelectedRow() (domain.YearProjectionRow, bool) {
	if m.result == nil {
		return domain.YearProjectionRow{}, false
	}
	i := m.table.Cursor()
	if i < 0 || i >= len(m.result.Rows) {
		return domain.YearProjectionRow{}, false
	}
	return m.result.Rows[i], true
}

// View renders the results scene
func (m *ResultsModel) View() string {
	if m.result == nil {
		return tuistyles.BorderStyle.Render("No results yet.\n\nLoad an input or adjust parameters (press 'p').")
	}

	header := tuistyles.TitleStyle.Render(fmt.Sprintf("Year table: %s", m.scenarioName))

	detail := ""
	if row, ok := m.SelectedRow(); ok {
		detail = fmt.Sprintf("Stopping at %d: basic %s + personal %s = %s per month",
			row.Age,
			output.FormatCurrency(row.BasicPensionIfStop),
			output.FormatCurrency(row.PersonalPensionIfStop),
			output.FormatCurrency(row.PensionIfStop))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		tuistyles.BorderStyle.UnsetPadding().Render(m.table.View()),
		tuistyles.InfoStyle.Render(detail),
		tuistyles.SubtitleStyle.Render("* base raised to the minimum"),
		tuistyles.HelpStyle.Render("↑/↓ move • pgup/pgdn page • esc back"),
	)
}
