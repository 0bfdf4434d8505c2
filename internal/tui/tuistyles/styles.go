// Package tuistyles holds the palette and lipgloss styles shared by the TUI
// scenes and components.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/pensioncalc/internal/output"
	"github.com/shopspring/decimal"
)

var (
	ColorPrimary   = lipgloss.Color("#5FAFD7")
	ColorSecondary = lipgloss.Color("#AF87D7")
	ColorAccent    = lipgloss.Color("#FFAF5F")
	ColorSuccess   = lipgloss.Color("#87D787")
	ColorDanger    = lipgloss.Color("#FF5F5F")
	ColorInfo      = lipgloss.Color("#D7D75F")

	ColorBackground = lipgloss.Color("#1C1C1C")
	ColorForeground = lipgloss.Color("#E4E4E4")
	ColorMuted      = lipgloss.Color("#808080")
	ColorBorder     = lipgloss.Color("#4E4E4E")

	ColorChartLine1 = lipgloss.Color("#5FAFD7")
	ColorChartLine2 = lipgloss.Color("#FFAF5F")
)

var (
	AppStyle = lipgloss.NewStyle().Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			Background(ColorBorder).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)

	UnselectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Foreground(ColorForeground).
				Bold(true)

	MetricPositiveStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	MetricNegativeStyle = lipgloss.NewStyle().Foreground(ColorDanger)

	ParameterLabelStyle = lipgloss.NewStyle().
				Foreground(ColorForeground).
				Bold(true)

	ParameterValueStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary)

	SliderTrackStyle = lipgloss.NewStyle().Foreground(ColorBorder)
	SliderThumbStyle = lipgloss.NewStyle().Foreground(ColorPrimary)

	HelpStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Italic(true)

	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true)

	TableHighlightStyle = lipgloss.NewStyle().
				Foreground(ColorAccent)
)

// MetricTrendStyle colours a change by direction
func MetricTrendStyle(positive bool) lipgloss.Style {
	if positive {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}

// TrendIndicator returns an arrow for a change direction
func TrendIndicator(positive bool) string {
	if positive {
		return "▲"
	}
	return "▼"
}

// FormatCurrency groups thousands the same way the reports do
func FormatCurrency(amount decimal.Decimal) string {
	return output.FormatCurrency(amount)
}
