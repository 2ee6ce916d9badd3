package report

import (
	"strings"
	"testing"

	"evidec/domain/core"
	"evidec/domain/decision"
	"evidec/domain/experiment"
	"evidec/domain/stats"
)

func sampleResult() *stats.StatResult {
	p := 0.031
	baseline := 0.05
	return &stats.StatResult{
		Effect:   0.012,
		PValue:   &p,
		CILow:    0.002,
		CIHigh:   0.022,
		Method:   stats.MethodTwoProportionZ,
		Metric:   "conversion_rate",
		Baseline: &baseline,
	}
}

func TestNewAssemblesSections(t *testing.T) {
	exp := experiment.New("checkout redesign", "conversion_rate", [2]string{})
	rule := decision.DefaultThresholdRule()
	dec := decision.Decision{
		Status: decision.StatusGo,
		Reason: "p=0.0310, CI=[+0.2%, +2.2%], lift=+1.2%, min_lift=+1.0% -> GO",
	}

	rep, err := New(exp, rule, dec, sampleResult(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if rep.ID == "" {
		t.Error("expected a report ID")
	}
	if !strings.Contains(rep.Summary, "checkout redesign") || !strings.Contains(rep.Summary, "GO") {
		t.Errorf("summary = %q, want name and status", rep.Summary)
	}
	if !strings.Contains(rep.StatisticalEvidence, string(stats.MethodTwoProportionZ)) {
		t.Errorf("statistical evidence = %q, want method name", rep.StatisticalEvidence)
	}
	if !strings.Contains(rep.StatisticalEvidence, "p=0.0310") {
		t.Errorf("statistical evidence = %q, want formatted p-value", rep.StatisticalEvidence)
	}
	if rep.DecisionRule == "" {
		t.Error("expected a decision-rule description")
	}
	if rep.Interpretation != dec.Reason {
		t.Errorf("interpretation = %q, want decision reason", rep.Interpretation)
	}
	if rep.BayesResult != nil {
		t.Error("expected nil BayesResult to pass through")
	}
}

func TestNewRejectsUnknownStatus(t *testing.T) {
	exp := experiment.New("bad", "metric", [2]string{})
	dec := decision.Decision{Status: decision.Status("MAYBE"), Reason: "?"}

	_, err := New(exp, decision.DefaultThresholdRule(), dec, sampleResult(), nil)
	if err == nil {
		t.Fatal("expected error for unknown status")
	}
	if !core.IsInvalidInput(err) {
		t.Errorf("err = %v, want invalid input", err)
	}
}

func TestNewToleratesMissingStatResult(t *testing.T) {
	exp := experiment.New("bayes only", "conversion_rate", [2]string{})
	dec := decision.Decision{Status: decision.StatusInconclusive, Reason: "insufficient evidence"}

	rep, err := New(exp, nil, dec, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if rep.StatisticalEvidence != "no frequentist result" {
		t.Errorf("statistical evidence = %q", rep.StatisticalEvidence)
	}
	if rep.DecisionRule != "" {
		t.Errorf("decision rule = %q, want empty for nil rule", rep.DecisionRule)
	}
}
