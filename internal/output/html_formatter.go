package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/pensioncalc/internal/domain"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a self-contained HTML report
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":  FormatCurrency,
	"pct":   FormatPercentage,
	"years": FormatYears,
	"ratio": func(v decimal.Decimal) string { return v.StringFixed(4) },
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(r *domain.ProjectionResult) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.ProjectionResult
		Plan          string
		Contributions decimal.Decimal
		Best          domain.YearProjectionRow
		Assumptions   []string
		StoppedEarly  bool
	}{r, planLabel(r), r.TotalContributions(), r.BestStopRow(), Assumptions(r), r.PaymentPlan == domain.PlanStopEarly}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
