package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/pensioncalc/internal/tui/tuistyles"
)

// DataSeries is one plotted line
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// ASCIIChart plots one or more series against shared x labels
type ASCIIChart struct {
	Title     string
	Series    []*DataSeries
	Labels    []string // one per point
	Width     int
	Height    int
	Highlight int // index marked on the x axis, -1 for none
}

// NewASCIIChart creates an empty chart
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:     title,
		Width:     60,
		Height:    12,
		Highlight: -1,
	}
}

// AddSeries adds a line
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{Name: name, Points: points, Color: color})
	return c
}

// WithLabels sets the x labels
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// WithSize sets the plot area
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

// WithHighlight marks one x position
func (c *ASCIIChart) WithHighlight(index int) *ASCIIChart {
	c.Highlight = index
	return c
}

const yAxisWidth = 10

// Render returns the chart as text
func (c *ASCIIChart) Render() string {
	if len(c.Series) == 0 || c.pointCount() == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var sb strings.Builder
	if c.Title != "" {
		sb.WriteString(tuistyles.TitleStyle.Render(c.Title))
		sb.WriteString("\n\n")
	}

	lo, hi := c.bounds()
	plotWidth := c.Width - yAxisWidth - 3
	if plotWidth < 2 {
		plotWidth = 2
	}
	height := c.Height
	if height < 2 {
		height = 2
	}

	grid := make([][]rune, height)
	owner := make([][]int, height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", plotWidth))
		owner[y] = make([]int, plotWidth)
	}

	for si, s := range c.Series {
		ch := seriesChar(si)
		prevX, prevY := -1, -1
		for i, v := range s.Points {
			x := c.column(i, plotWidth)
			y := height - 1 - int(math.Round((v-lo)/(hi-lo)*float64(height-1)))
			if prevX >= 0 {
				plotLine(grid, owner, prevX, prevY, x, y, ch, si)
			}
			grid[y][x] = ch
			owner[y][x] = si
			prevX, prevY = x, y
		}
	}

	for y, row := range grid {
		value := hi - float64(y)/float64(height-1)*(hi-lo)
		sb.WriteString(lipgloss.NewStyle().
			Foreground(tuistyles.ColorMuted).
			Width(yAxisWidth).
			Align(lipgloss.Right).
			Render(formatChartValue(value)))
		sb.WriteString(" │ ")
		for x, r := range row {
			if r == ' ' {
				sb.WriteRune(r)
				continue
			}
			sb.WriteString(lipgloss.NewStyle().Foreground(c.Series[owner[y][x]].Color).Render(string(r)))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(strings.Repeat(" ", yAxisWidth+1))
	sb.WriteString("└")
	axis := []rune(strings.Repeat("─", plotWidth+1))
	if c.Highlight >= 0 && c.Highlight < c.pointCount() {
		axis[c.column(c.Highlight, plotWidth)+1] = '▲'
	}
	sb.WriteString(string(axis))
	sb.WriteString("\n")
	sb.WriteString(c.renderLabels(plotWidth))

	if len(c.Series) > 1 {
		sb.WriteString("\n")
		sb.WriteString(c.renderLegend())
	}
	return sb.String()
}

func (c *ASCIIChart) pointCount() int {
	n := 0
	for _, s := range c.Series {
		if len(s.Points) > n {
			n = len(s.Points)
		}
	}
	return n
}

func (c *ASCIIChart) column(i, plotWidth int) int {
	n := c.pointCount()
	if n <= 1 {
		return 0
	}
	return int(math.Round(float64(i) / float64(n-1) * float64(plotWidth-1)))
}

// bounds returns a padded value range; a flat series gets a unit range
func (c *ASCIIChart) bounds() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		for _, v := range s.Points {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if hi == lo {
		return lo - 1, hi + 1
	}
	pad := (hi - lo) * 0.05
	return lo - pad, hi + pad
}

// renderLabels prints the first, middle and last x labels
func (c *ASCIIChart) renderLabels(plotWidth int) string {
	n := len(c.Labels)
	if n == 0 {
		return ""
	}
	line := []rune(strings.Repeat(" ", plotWidth+yAxisWidth+8))
	for _, i := range []int{0, n / 2, n - 1} {
		start := yAxisWidth + 3 + c.column(i, plotWidth)
		for j, r := range c.Labels[i] {
			if start+j < len(line) {
				line[start+j] = r
			}
		}
	}
	return tuistyles.SubtitleStyle.Render(strings.TrimRight(string(line), " "))
}

func (c *ASCIIChart) renderLegend() string {
	items := make([]string, 0, len(c.Series))
	for i, s := range c.Series {
		items = append(items, lipgloss.NewStyle().Foreground(s.Color).Render(string(seriesChar(i)))+" "+s.Name)
	}
	return tuistyles.SubtitleStyle.Render("Legend: ") + strings.Join(items, " • ")
}

func seriesChar(i int) rune {
	chars := []rune{'●', '■', '▲', '♦'}
	return chars[i%len(chars)]
}

// plotLine joins two points with Bresenham's algorithm without overwriting
// earlier marks
func plotLine(grid [][]rune, owner [][]int, x0, y0, x1, y1 int, ch rune, series int) {
	dx, dy := absInt(x1-x0), -absInt(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		if grid[y0][x0] == ' ' {
			grid[y0][x0] = '·'
			owner[y0][x0] = series
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// formatChartValue abbreviates axis values
func formatChartValue(value float64) string {
	switch {
	case math.Abs(value) >= 1000000:
		return fmt.Sprintf("%.1fM", value/1000000)
	case math.Abs(value) >= 10000:
		return fmt.Sprintf("%.0fK", value/1000)
	case math.Abs(value) >= 1000:
		return fmt.Sprintf("%.1fK", value/1000)
	}
	return fmt.Sprintf("%.0f", value)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
