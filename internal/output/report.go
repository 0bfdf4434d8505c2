package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/pensioncalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Formatter renders a projection result into one output format
type Formatter interface {
	Name() string
	Format(result *domain.ProjectionResult) ([]byte, error)
}

// FormatterFunc adapts a plain function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(*domain.ProjectionResult) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(result *domain.ProjectionResult) ([]byte, error) {
	return f.F(result)
}

var formatters = map[string]func() Formatter{
	"console":         func() Formatter { return ConsoleFormatter{} },
	"console-verbose": func() Formatter { return ConsoleVerboseFormatter{} },
	"verbose":         func() Formatter { return ConsoleVerboseFormatter{} },
	"csv":             func() Formatter { return CSVFormatter{} },
	"json":            func() Formatter { return JSONFormatter{Indent: true} },
	"html":            func() Formatter { return HTMLFormatter{} },
	"pdf":             func() Formatter { return PDFFormatter{} },
}

// GetFormatterByName returns the formatter registered under name
func GetFormatterByName(name string) (Formatter, error) {
	ctor, ok := formatters[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s (available: %s)", name, strings.Join(FormatNames(), ", "))
	}
	return ctor(), nil
}

// FormatNames lists the registered format names
func FormatNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsBinary reports whether a format should be written to a file rather than
// the terminal
func IsBinary(name string) bool {
	return name == "pdf"
}

// Extension returns the file extension for a format name
func Extension(name string) string {
	switch name {
	case "console", "console-verbose", "verbose":
		return "txt"
	}
	return name
}

// WriteFormatted renders result and writes it to a timestamped file in the
// working directory, returning the file name
func WriteFormatted(f Formatter, result *domain.ProjectionResult, ext string) (string, error) {
	data, err := f.Format(result)
	if err != nil {
		return "", fmt.Errorf("%s formatter failed: %w", f.Name(), err)
	}
	filename := fmt.Sprintf("pension_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}

// FormatCurrency rounds to cents and groups thousands, e.g. 16,931.65
func FormatCurrency(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return sign + b.String() + "." + frac
}

// FormatPercentage renders a fraction as a percentage, e.g. 0.0312 -> 3.12%
func FormatPercentage(fraction decimal.Decimal) string {
	return fraction.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

// FormatYears drops a trailing .0 from whole year counts
func FormatYears(years decimal.Decimal) string {
	return years.Round(2).String()
}
