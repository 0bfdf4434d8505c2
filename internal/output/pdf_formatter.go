package output

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/rgehrsitz/pensioncalc/internal/domain"
)

const (
	pdfMarginLeft   = 15.0
	pdfMarginTop    = 15.0
	pdfMarginRight  = 15.0
	pdfMarginBottom = 15.0
	pdfPageWidth    = 210.0
	pdfContentWidth = pdfPageWidth - pdfMarginLeft - pdfMarginRight
)

// PDFFormatter renders an A4 report: summary page plus the what-if table
type PDFFormatter struct {
	// Now stamps the report; defaults to time.Now
	Now func() time.Time
}

func (p PDFFormatter) Name() string { return "pdf" }

func (p PDFFormatter) Format(r *domain.ProjectionResult) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("nil projection result")
	}
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	pdf.SetAutoPageBreak(true, pdfMarginBottom)
	pdf.SetCreationDate(now())

	writePDFSummary(pdf, r, now())
	writePDFTable(pdf, r.Rows)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func writePDFSummary(pdf *fpdf.Fpdf, r *domain.ProjectionResult, generated time.Time) {
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 22)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(pdfContentWidth, 12, "Pension Projection", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "I", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.CellFormat(pdfContentWidth, 6, fmt.Sprintf("Generated: %s", generated.Format("2 January 2006")), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	box := func(title string, lines [][2]string) {
		pdf.SetFillColor(245, 247, 250)
		pdf.SetDrawColor(200, 200, 200)
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(0, 51, 102)
		pdf.CellFormat(pdfContentWidth, 8, title, "1", 1, "L", true, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.SetTextColor(50, 50, 50)
		for _, l := range lines {
			pdf.CellFormat(pdfContentWidth*0.6, 7, l[0], "L", 0, "L", true, 0, "")
			pdf.CellFormat(pdfContentWidth*0.4, 7, l[1], "R", 1, "R", true, 0, "")
		}
		pdf.CellFormat(pdfContentWidth, 1, "", "LRB", 1, "C", true, 0, "")
		pdf.Ln(6)
	}

	in := r.Input
	box("Participant", [][2]string{
		{"Category", string(in.Gender)},
		{"Current age", fmt.Sprintf("%d", in.CurrentAge)},
		{"Retirement", fmt.Sprintf("age %d in %d", r.Profile.RetireAge, r.Profile.RetireCalendarYear)},
		{"Plan", planLabel(r)},
		{"Contribution years", fmt.Sprintf("%s paid + %d future", FormatYears(in.PaidYears), r.FuturePaymentYears)},
	})
	box("Monthly pension", [][2]string{
		{"Basic pension", FormatCurrency(r.BasicPension)},
		{"Personal account pension", FormatCurrency(r.PersonalPension)},
		{"Total", FormatCurrency(r.TotalPension)},
		{"Replacement rate", FormatPercentage(r.ReplacementRate)},
	})
	account := [][2]string{
		{"Balance at retirement", FormatCurrency(r.BalanceAtRetirement)},
		{"Future contributions", FormatCurrency(r.TotalContributions())},
		{"Annuity divisor (months)", fmt.Sprintf("%d", r.PaymentMonths)},
	}
	if r.PaymentPlan == domain.PlanStopEarly {
		account = append([][2]string{{"Balance at stop age", FormatCurrency(r.TotalAccountBalance)}}, account...)
	}
	box("Personal account", account)

	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(pdfContentWidth, 8, "Assumptions", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(50, 50, 50)
	for _, a := range Assumptions(r) {
		pdf.MultiCell(pdfContentWidth, 5, "- "+a, "", "L", false)
	}
}

func writePDFTable(pdf *fpdf.Fpdf, rows []domain.YearProjectionRow) {
	if len(rows) == 0 {
		return
	}
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(pdfContentWidth, 10, "Pension if contributions stop", "", 1, "L", false, 0, "")

	headers := []string{"Year", "Age", "Avg wage", "Base", "Yearly", "Balance", "Years", "Pension"}
	widths := []float64{14, 10, 26, 26, 24, 30, 16, 34}

	header := func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(0, 51, 102)
		pdf.SetTextColor(255, 255, 255)
		for i, h := range headers {
			pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(50, 50, 50)
	}
	header()

	_, pageHeight := pdf.GetPageSize()
	for i, row := range rows {
		if pdf.GetY()+6 > pageHeight-pdfMarginBottom {
			pdf.AddPage()
			header()
		}
		fill := i%2 == 1
		pdf.SetFillColor(245, 247, 250)
		base := FormatCurrency(row.ContributionBase)
		if row.Floored {
			base += "*"
		}
		cells := []string{
			fmt.Sprintf("%d", row.Year),
			fmt.Sprintf("%d", row.Age),
			FormatCurrency(row.CurrentYearAvgSalary),
			base,
			FormatCurrency(row.YearContribution),
			FormatCurrency(row.AccumulatedBalance),
			FormatYears(row.YearsIfStop),
			FormatCurrency(row.PensionIfStop),
		}
		for j, c := range cells {
			pdf.CellFormat(widths[j], 6, c, "1", 0, "R", fill, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(3)
	pdf.SetFont("Arial", "I", 8)
	pdf.CellFormat(pdfContentWidth, 5, "* contribution base raised to the statutory minimum", "", 1, "L", false, 0, "")
}
