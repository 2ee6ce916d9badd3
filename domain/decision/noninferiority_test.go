package decision

import (
	"testing"

	"evidec/domain/core"
	"evidec/domain/stats"
)

func ciResult(effect, ciLow, ciHigh float64) *stats.StatResult {
	baseline := 0.10
	p := 0.20
	return &stats.StatResult{
		Effect:   effect,
		PValue:   &p,
		CILow:    ciLow,
		CIHigh:   ciHigh,
		Method:   stats.MethodTwoProportionZ,
		Metric:   "retention",
		Baseline: &baseline,
	}
}

func TestNonInferiorityRule_IncreaseGoal(t *testing.T) {
	rule := NonInferiorityRule{Alpha: 0.05, Margin: 0.01, MetricGoal: GoalIncrease}

	cases := []struct {
		name          string
		ciLow, ciHigh float64
		want          Status
	}{
		{"lower bound clears margin", -0.005, 0.02, StatusGo},
		{"lower bound exactly at margin", -0.01, 0.02, StatusGo},
		{"interval entirely below margin", -0.05, -0.02, StatusNoGo},
		{"interval straddles margin", -0.03, 0.01, StatusInconclusive},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			dec, err := rule.Judge(ciResult((c.ciLow+c.ciHigh)/2, c.ciLow, c.ciHigh))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if dec.Status != c.want {
				t.Errorf("status = %s, want %s (reason: %s)", dec.Status, c.want, dec.Reason)
			}
		})
	}
}

func TestNonInferiorityRule_DecreaseGoal(t *testing.T) {
	rule := NonInferiorityRule{Alpha: 0.05, Margin: 0.01, MetricGoal: GoalDecrease}

	// Harmful direction is a positive difference: the adjusted interval
	// flips, so the upper bound is the binding one.
	dec, err := rule.Judge(ciResult(0.0, -0.02, 0.008))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dec.Status != StatusGo {
		t.Errorf("status = %s, want GO (reason: %s)", dec.Status, dec.Reason)
	}

	dec, err = rule.Judge(ciResult(0.03, 0.02, 0.05))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dec.Status != StatusNoGo {
		t.Errorf("status = %s, want NO_GO (reason: %s)", dec.Status, dec.Reason)
	}

	dec, err = rule.Judge(ciResult(0.0, -0.02, 0.03))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dec.Status != StatusInconclusive {
		t.Errorf("status = %s, want INCONCLUSIVE (reason: %s)", dec.Status, dec.Reason)
	}
}

func TestNonInferiorityRule_MinLiftDisplay(t *testing.T) {
	increase := NonInferiorityRule{Margin: 0.01, MetricGoal: GoalIncrease}
	if increase.MinLift() != -0.01 {
		t.Errorf("increase MinLift = %v, want -0.01", increase.MinLift())
	}
	decrease := NonInferiorityRule{Margin: 0.01, MetricGoal: GoalDecrease}
	if decrease.MinLift() != 0.01 {
		t.Errorf("decrease MinLift = %v, want 0.01", decrease.MinLift())
	}
}

func TestNonInferiorityRule_InvalidGoal(t *testing.T) {
	rule := NonInferiorityRule{Margin: 0.01, MetricGoal: Goal("")}
	if _, err := rule.Judge(ciResult(0, -0.01, 0.01)); !core.IsInvalidInput(err) {
		t.Errorf("expected InvalidInput, got %v", err)
	}
}
