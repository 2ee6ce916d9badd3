package decision

import (
	"reflect"
	"strings"
	"testing"

	"evidec/domain/bayes"
	"evidec/domain/stats"
)

func posterior(pImprove, pAboveTol, liftMean float64) *bayes.BayesResult {
	return &bayes.BayesResult{
		PImprove:        pImprove,
		PAboveTolerance: pAboveTol,
		LiftMean:        liftMean,
		LiftCI:          [2]float64{liftMean - 0.01, liftMean + 0.01},
		Tolerance:       -0.005,
		Method:          stats.MethodBetaBinomial,
		Params:          bayes.Params{Alpha0: 1, Beta0: 1, NDraws: 20000, Tolerance: -0.005},
	}
}

func TestBayesianRule_Judge(t *testing.T) {
	rule := DefaultBayesianRule()

	cases := []struct {
		name                      string
		pImprove, pAboveTol, lift float64
		want                      Status
		safe                      bool
	}{
		{"clear winner", 0.97, 0.98, 0.02, StatusGo, false},
		{"safe but not better", 0.70, 0.98, 0.002, StatusInconclusive, true},
		{"regression risk", 0.50, 0.90, -0.01, StatusNoGo, false},
		{"safe but nothing else met", 0.60, 0.98, 0.001, StatusInconclusive, false},
		{"below all bars", 0.60, 0.96, 0.001, StatusNoGo, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			dec, err := rule.Judge(posterior(c.pImprove, c.pAboveTol, c.lift))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if dec.Status != c.want {
				t.Errorf("status = %s, want %s (reason: %s)", dec.Status, c.want, dec.Reason)
			}
			label, hasLabel := dec.Stats["label"]
			if c.safe {
				if !hasLabel || label != LabelSafe {
					t.Errorf("expected SAFE label, stats: %v", dec.Stats)
				}
				if !strings.Contains(dec.Reason, "SAFE") {
					t.Errorf("reason should carry the SAFE label: %s", dec.Reason)
				}
			} else if hasLabel {
				t.Errorf("unexpected label %v", label)
			}
		})
	}
}

// The status space never widens: SAFE is only a sub-label.
func TestBayesianRule_StatusStaysCanonical(t *testing.T) {
	rule := DefaultBayesianRule()
	grid := []float64{0.1, 0.5, 0.79, 0.80, 0.94, 0.95, 0.97, 0.975, 0.99}
	for _, pi := range grid {
		for _, pt := range grid {
			dec, err := rule.Judge(posterior(pi, pt, 0.01))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !dec.Status.Valid() {
				t.Fatalf("non-canonical status %q for p_improve=%v p_above_tol=%v", dec.Status, pi, pt)
			}
		}
	}
}

func TestBayesianRule_LiftFloorBlocksGo(t *testing.T) {
	rule := DefaultBayesianRule()
	rule.MinLift = 0.05

	dec, err := rule.Judge(posterior(0.97, 0.98, 0.02))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dec.Status == StatusGo {
		t.Errorf("lift_mean below min_lift must not be GO (reason: %s)", dec.Reason)
	}
}

func TestBayesianRule_Idempotent(t *testing.T) {
	rule := DefaultBayesianRule()
	result := posterior(0.97, 0.98, 0.02)

	first, err := rule.Judge(result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := rule.Judge(result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("decisions differ across identical calls:\n%+v\n%+v", first, second)
	}
}

func TestBayesianRule_StatsCarryThresholds(t *testing.T) {
	rule := DefaultBayesianRule()
	dec, err := rule.Judge(posterior(0.97, 0.98, 0.02))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, key := range []string{
		"p_improve", "p_above_tolerance", "lift_mean", "tolerance",
		"p_improve_go", "p_safe", "p_improve_safe", "min_lift",
	} {
		if _, ok := dec.Stats[key]; !ok {
			t.Errorf("stats missing key %q", key)
		}
	}
}
