package render

import (
	"strings"
	"testing"

	"evidec/domain/bayes"
	"evidec/domain/decision"
	"evidec/domain/experiment"
	"evidec/domain/report"
	"evidec/domain/stats"
)

func frequentistReport(t *testing.T) *report.EvidenceReport {
	t.Helper()
	p := 0.021
	baseline := 0.05
	result := &stats.StatResult{
		Effect:   0.015,
		PValue:   &p,
		CILow:    0.003,
		CIHigh:   0.027,
		Method:   stats.MethodTwoProportionZ,
		Metric:   "conversion_rate",
		Baseline: &baseline,
		Warnings: []stats.Warning{{Code: stats.WarnLowSample, Message: "control arm is small"}},
	}
	exp := experiment.New("pricing page", "conversion_rate", [2]string{})
	dec := decision.Decision{Status: decision.StatusGo, Reason: "significant and above floor"}

	rep, err := report.New(exp, decision.DefaultThresholdRule(), dec, result, nil)
	if err != nil {
		t.Fatalf("report.New: %v", err)
	}
	return rep
}

func TestMarkdownSections(t *testing.T) {
	out := Markdown(frequentistReport(t))

	for _, want := range []string{
		"# Evidence Report: pricing page",
		"## Summary",
		"- Verdict: **GO**",
		"## Statistical Evidence",
		"- Method: two_proportion_z",
		"- p-value: 0.0210",
		"- Effect (treatment - control): +1.5%",
		"- Warning (low_sample): control arm is small",
		"## Decision Rule",
		"## Interpretation",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "## Bayesian Posterior") {
		t.Error("markdown should omit the Bayesian section when no posterior is present")
	}
}

func TestMarkdownBayesianSection(t *testing.T) {
	rep := frequentistReport(t)
	rep.BayesResult = &bayes.BayesResult{
		PImprove:        0.987,
		PAboveTolerance: 0.995,
		LiftMean:        0.014,
		LiftCI:          [2]float64{0.002, 0.026},
		Tolerance:       -0.005,
		Method:          stats.MethodBetaBinomial,
		Params: bayes.Params{
			Alpha0: 1, Beta0: 1, NDraws: 20000, Tolerance: -0.005, Seed: 42,
		},
	}

	out := Markdown(rep)
	for _, want := range []string{
		"## Bayesian Posterior",
		"- P(lift > 0): 98.7%",
		"- P(lift > -0.5%): 99.5%",
		"- Prior: Beta(1.00, 1.00), draws=20000, seed=42",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q\n%s", want, out)
		}
	}
}

func TestHTMLWrapsMarkdown(t *testing.T) {
	out := string(HTML(frequentistReport(t)))

	if !strings.Contains(out, "<h1") || !strings.Contains(out, "Evidence Report: pricing page") {
		t.Errorf("html missing heading:\n%s", out)
	}
	if !strings.Contains(out, "<strong>GO</strong>") {
		t.Errorf("html missing bold verdict:\n%s", out)
	}
}
