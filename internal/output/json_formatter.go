package output

import (
	json "github.com/goccy/go-json"

	"github.com/rgehrsitz/pensioncalc/internal/domain"
)

// JSONFormatter encodes the full result, rows included
type JSONFormatter struct {
	Indent bool
}

func (j JSONFormatter) Name() string { return "json" }

type jsonReport struct {
	*domain.ProjectionResult
	Assumptions []string `json:"assumptions"`
}

func (j JSONFormatter) Format(r *domain.ProjectionResult) ([]byte, error) {
	report := jsonReport{ProjectionResult: r, Assumptions: Assumptions(r)}
	if j.Indent {
		return json.MarshalIndent(report, "", "  ")
	}
	return json.Marshal(report)
}

// MarshalJSON encodes any value with the same encoder the formatter uses
func MarshalJSON(v interface{}, indent bool) ([]byte, error) {
	if indent {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
