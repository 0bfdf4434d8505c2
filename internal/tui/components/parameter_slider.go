package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/rgehrsitz/pensioncalc/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// SliderKind controls how a slider value is displayed
type SliderKind int

const (
	SliderNumber   SliderKind = iota
	SliderCurrency            // grouped thousands, two decimals
	SliderPercent             // value held as a percentage, e.g. 3.5
	SliderYears
)

// ParameterSlider is one adjustable projection input
type ParameterSlider struct {
	Key         string // input field the slider edits
	Label       string
	Value       decimal.Decimal
	Min         decimal.Decimal
	Max         decimal.Decimal
	Step        decimal.Decimal
	Kind        SliderKind
	Width       int
	IsFocused   bool
	Description string
}

// NewParameterSlider creates a slider clamped to [min, max]
func NewParameterSlider(key, label string, value, min, max, step decimal.Decimal) *ParameterSlider {
	p := &ParameterSlider{
		Key:   key,
		Label: label,
		Min:   min,
		Max:   max,
		Step:  step,
		Width: 40,
	}
	p.SetValue(value)
	return p
}

// WithKind sets the display kind
func (p *ParameterSlider) WithKind(kind SliderKind) *ParameterSlider {
	p.Kind = kind
	return p
}

// WithWidth sets the bar width
func (p *ParameterSlider) WithWidth(width int) *ParameterSlider {
	p.Width = width
	return p
}

// WithDescription adds help text shown under the bar
func (p *ParameterSlider) WithDescription(desc string) *ParameterSlider {
	p.Description = desc
	return p
}

// SetFocused sets the focus state
func (p *ParameterSlider) SetFocused(focused bool) *ParameterSlider {
	p.IsFocused = focused
	return p
}

// Increment moves one step up, stopping at Max
func (p *ParameterSlider) Increment() bool {
	return p.move(p.Step)
}

// Decrement moves one step down, stopping at Min
func (p *ParameterSlider) Decrement() bool {
	return p.move(p.Step.Neg())
}

func (p *ParameterSlider) move(delta decimal.Decimal) bool {
	before := p.Value
	p.SetValue(p.Value.Add(delta))
	return !p.Value.Equal(before)
}

// SetValue clamps to the range and snaps to the step grid
func (p *ParameterSlider) SetValue(value decimal.Decimal) {
	if p.Step.IsPositive() {
		steps := value.Sub(p.Min).Div(p.Step).Round(0)
		value = p.Min.Add(steps.Mul(p.Step))
	}
	p.Value = decimal.Max(p.Min, decimal.Min(p.Max, value))
}

// Percentage returns the position within the range, for drawing the bar
func (p *ParameterSlider) Percentage() float64 {
	span := p.Max.Sub(p.Min)
	if !span.IsPositive() {
		return 0
	}
	return p.Value.Sub(p.Min).Div(span).InexactFloat64()
}

// FormatValue renders a value according to the slider kind
func (p *ParameterSlider) FormatValue(v decimal.Decimal) string {
	switch p.Kind {
	case SliderCurrency:
		return tuistyles.FormatCurrency(v)
	case SliderPercent:
		return v.StringFixed(1) + "%"
	case SliderYears:
		return v.StringFixed(0)
	default:
		return v.StringFixed(2)
	}
}

// Render returns the label, value, bar and range
func (p *ParameterSlider) Render() string {
	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}

	lines := []string{
		labelStyle.Render(p.Label) + "  " + valueStyle.Render(p.FormatValue(p.Value)),
		p.renderBar(p.Width),
		tuistyles.SubtitleStyle.Render(fmt.Sprintf("%s ─ %s", p.FormatValue(p.Min), p.FormatValue(p.Max))),
	}
	if p.Description != "" && p.IsFocused {
		lines = append(lines, tuistyles.InfoStyle.Render(p.Description))
	}
	return strings.Join(lines, "\n")
}

// RenderCompact returns a single line with a short bar
func (p *ParameterSlider) RenderCompact() string {
	marker := "  "
	if p.IsFocused {
		marker = tuistyles.SelectedItemStyle.Render("▸ ")
	}
	label := tuistyles.ParameterLabelStyle.Render(fmt.Sprintf("%-22s", p.Label))
	value := tuistyles.ParameterValueStyle.Render(fmt.Sprintf("%14s", p.FormatValue(p.Value)))
	return marker + label + " " + value + " " + p.renderBar(16)
}

func (p *ParameterSlider) renderBar(width int) string {
	if width < 2 {
		width = 2
	}
	pos := int(math.Round(float64(width-1) * p.Percentage()))

	thumb := tuistyles.SliderThumbStyle
	if p.IsFocused {
		thumb = thumb.Foreground(tuistyles.ColorAccent)
	}

	var bar strings.Builder
	bar.WriteString("[")
	if pos > 0 {
		bar.WriteString(thumb.Render(strings.Repeat("━", pos)))
	}
	bar.WriteString(thumb.Render("●"))
	if rest := width - pos - 1; rest > 0 {
		bar.WriteString(tuistyles.SliderTrackStyle.Render(strings.Repeat("─", rest)))
	}
	bar.WriteString("]")
	return bar.String()
}
