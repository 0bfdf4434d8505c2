package breakeven

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func intPtr(v int) *int { return &v }

func decPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

func TestDefaultSolverOptions(t *testing.T) {
	opts := DefaultSolverOptions()

	if !opts.Tolerance.Equal(decimal.NewFromInt(1)) {
		t.Errorf("Expected tolerance 1, got %s", opts.Tolerance)
	}
	if opts.MaxIterations != 60 {
		t.Errorf("Expected 60 iterations, got %d", opts.MaxIterations)
	}
	if !opts.BaseCapRatio.Equal(decimal.NewFromInt(3)) {
		t.Errorf("Expected base cap ratio 3, got %s", opts.BaseCapRatio)
	}
}

func TestConstraints_Validate(t *testing.T) {
	tests := []struct {
		name        string
		constraints Constraints
		wantErr     string
	}{
		{"empty", Constraints{}, ""},
		{"valid ages", Constraints{MinStopAge: intPtr(45), MaxStopAge: intPtr(60)}, ""},
		{"inverted ages", Constraints{MinStopAge: intPtr(60), MaxStopAge: intPtr(45)}, "min_stop_age"},
		{"zero base", Constraints{MinBase: decPtr(0)}, "min_base must be positive"},
		{"inverted bases", Constraints{MinBase: decPtr(9000), MaxBase: decPtr(5000)}, "min_base cannot be greater"},
		{"negative pension", Constraints{TargetPension: decPtr(-1)}, "target_pension"},
		{"zero replacement", Constraints{TargetReplacementRate: decPtr(0)}, "target_replacement_rate"},
		{"huge replacement", Constraints{TargetReplacementRate: decPtr(2.5)}, "target_replacement_rate"},
		{"valid targets", Constraints{TargetPension: decPtr(5000), TargetReplacementRate: decPtr(0.6)}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.constraints.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
			var beErr *BreakEvenError
			if !errors.As(err, &beErr) || beErr.Operation != "validate_constraints" {
				t.Errorf("Expected a validate_constraints BreakEvenError, got %T", err)
			}
		})
	}
}

func TestConstraints_targetFor(t *testing.T) {
	c := Constraints{TargetPension: decPtr(5000)}

	if v, ok := c.targetFor(GoalMatchPension); !ok || !v.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("Expected pension target 5000, got %s %v", v, ok)
	}
	if _, ok := c.targetFor(GoalMatchReplacement); ok {
		t.Error("Expected no replacement target")
	}
	if _, ok := c.targetFor(GoalMaximizePension); ok {
		t.Error("Maximize goals have no target")
	}
}

func TestOptimizationGoal_IsMatch(t *testing.T) {
	if !GoalMatchPension.IsMatch() || !GoalMatchReplacement.IsMatch() {
		t.Error("Expected match goals to report IsMatch")
	}
	if GoalMaximizePension.IsMatch() || GoalMaximizeValue.IsMatch() {
		t.Error("Expected maximize goals not to report IsMatch")
	}
}

func TestOptimizationResult_PensionPerThousand(t *testing.T) {
	r := &OptimizationResult{
		TotalPension:       decimal.NewFromInt(1000),
		TotalContributions: decimal.NewFromInt(240000),
	}
	// 12000 / 240000 * 1000 = 50
	if got := r.PensionPerThousand(); !got.Equal(decimal.NewFromInt(50)) {
		t.Errorf("Expected 50, got %s", got)
	}
	if !(&OptimizationResult{TotalPension: decimal.NewFromInt(1000)}).PensionPerThousand().IsZero() {
		t.Error("Expected zero when nothing is contributed")
	}
}

func TestBreakEvenError(t *testing.T) {
	cause := errors.New("boom")
	err := &BreakEvenError{Operation: "optimize", Message: "failed", Cause: cause}

	if err.Error() != "optimize: failed: boom" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("Expected Unwrap to expose the cause")
	}

	plain := &BreakEvenError{Operation: "optimize", Message: "failed"}
	if plain.Error() != "optimize: failed" {
		t.Errorf("Unexpected message: %s", plain.Error())
	}
}
