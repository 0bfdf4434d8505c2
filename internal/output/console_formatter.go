package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/pensioncalc/internal/domain"
)

// ConsoleFormatter prints the headline figures of a projection
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(r *domain.ProjectionResult) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("nil projection result")
	}
	var buf bytes.Buffer
	writeSummary(&buf, r)
	return buf.Bytes(), nil
}

func writeSummary(buf *bytes.Buffer, r *domain.ProjectionResult) {
	in := r.Input
	fmt.Fprintln(buf, strings.Repeat("=", 64))
	fmt.Fprintln(buf, "PENSION PROJECTION")
	fmt.Fprintln(buf, strings.Repeat("=", 64))
	fmt.Fprintf(buf, "Participant:          %s, age %d\n", in.Gender, in.CurrentAge)
	fmt.Fprintf(buf, "Retirement:           age %d in %d (%d years away)\n",
		r.Profile.RetireAge, r.Profile.RetireCalendarYear, r.Profile.YearsToRetire)
	fmt.Fprintf(buf, "Plan:                 %s\n", planLabel(r))
	fmt.Fprintf(buf, "Contribution years:   %s paid + %d future = %s\n",
		FormatYears(in.PaidYears), r.FuturePaymentYears, FormatYears(r.TotalYears))
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "MONTHLY PENSION AT RETIREMENT")
	fmt.Fprintln(buf, strings.Repeat("-", 40))
	fmt.Fprintf(buf, "  Basic pension:      %14s\n", FormatCurrency(r.BasicPension))
	fmt.Fprintf(buf, "  Personal account:   %14s\n", FormatCurrency(r.PersonalPension))
	fmt.Fprintf(buf, "  TOTAL:              %14s\n", FormatCurrency(r.TotalPension))
	fmt.Fprintf(buf, "  Replacement rate:   %14s\n", FormatPercentage(r.ReplacementRate))
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "PERSONAL ACCOUNT")
	fmt.Fprintln(buf, strings.Repeat("-", 40))
	if r.PaymentPlan == domain.PlanStopEarly {
		fmt.Fprintf(buf, "  Balance at stop age:   %14s\n", FormatCurrency(r.TotalAccountBalance))
	}
	fmt.Fprintf(buf, "  Balance at retirement: %14s\n", FormatCurrency(r.BalanceAtRetirement))
	fmt.Fprintf(buf, "  Future contributions:  %14s\n", FormatCurrency(r.TotalContributions()))
	fmt.Fprintf(buf, "  Annuity divisor:       %14d\n", r.PaymentMonths)
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "INDICES")
	fmt.Fprintln(buf, strings.Repeat("-", 40))
	fmt.Fprintf(buf, "  Social average wage at retirement: %s\n", FormatCurrency(r.FutureAvgSalary))
	source := "calculated"
	if !r.FutureAvgIndexCalculated {
		source = "override"
	}
	fmt.Fprintf(buf, "  Future average index:              %s (%s)\n", r.FutureAvgIndex.StringFixed(4), source)
	fmt.Fprintf(buf, "  Weighted average index:            %s\n", r.WeightedAvgIndex.StringFixed(4))
	if n := r.FlooredYears(); n > 0 {
		fmt.Fprintf(buf, "  Years raised to the minimum base:  %d\n", n)
	}
}
