// Package render turns evidence reports into shareable Markdown and HTML.
// It imposes no decision logic; renderers must tolerate a missing
// Bayesian section.
package render

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"evidec/domain/core"
	"evidec/domain/decision"
	"evidec/domain/report"
)

// Markdown renders the structured evidence report.
func Markdown(r *report.EvidenceReport) string {
	ratio := decision.IsRatioMetric(r.StatResult)

	lines := []string{
		fmt.Sprintf("# Evidence Report: %s", r.Experiment.Name),
		"",
		"## Summary",
		fmt.Sprintf("- Metric: **%s**", r.Experiment.Metric),
		fmt.Sprintf("- Variants: %s vs %s", r.Experiment.Variants[0], r.Experiment.Variants[1]),
		fmt.Sprintf("- Verdict: **%s**", r.Decision.Status),
		fmt.Sprintf("- Reason: %s", r.Decision.Reason),
		"",
		"## Statistical Evidence",
	}

	if sr := r.StatResult; sr != nil {
		baseline := "n/a"
		if sr.Baseline != nil {
			baseline = core.FormatNumeric(*sr.Baseline, ratio)
		}
		lines = append(lines,
			fmt.Sprintf("- Method: %s", sr.Method),
			fmt.Sprintf("- Effect (treatment - control): %s", core.FormatNumeric(sr.Effect, ratio)),
			fmt.Sprintf("- 95%% CI: %s", core.FormatCI(sr.CILow, sr.CIHigh, ratio)),
			fmt.Sprintf("- p-value: %s", core.FormatP(sr.PValue)),
			fmt.Sprintf("- Baseline (%s): %s", r.Experiment.Variants[0], baseline),
		)
		for _, w := range sr.Warnings {
			lines = append(lines, fmt.Sprintf("- Warning (%s): %s", w.Code, w.Message))
		}
	} else {
		lines = append(lines, "- no frequentist result")
	}

	if br := r.BayesResult; br != nil {
		lines = append(lines,
			"",
			"## Bayesian Posterior",
			fmt.Sprintf("- P(lift > 0): %.1f%%", br.PImprove*100),
			fmt.Sprintf("- P(lift > %s): %.1f%%", core.FormatNumeric(br.Tolerance, true), br.PAboveTolerance*100),
			fmt.Sprintf("- Mean lift: %s", core.FormatNumeric(br.LiftMean, true)),
			fmt.Sprintf("- 95%% credible interval: %s", core.FormatCI(br.LiftCI[0], br.LiftCI[1], true)),
			fmt.Sprintf("- Prior: Beta(%.2f, %.2f), draws=%d, seed=%d",
				br.Params.Alpha0, br.Params.Beta0, br.Params.NDraws, br.Params.Seed),
		)
	}

	lines = append(lines,
		"",
		"## Decision Rule",
		fmt.Sprintf("- %s", r.DecisionRule),
		"",
		"## Interpretation",
		r.Interpretation,
	)

	return strings.Join(lines, "\n")
}

// HTML renders the report through gomarkdown for embedding in dashboards
// or mail.
func HTML(r *report.EvidenceReport) []byte {
	md := []byte(Markdown(r))
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return markdown.ToHTML(md, p, renderer)
}
