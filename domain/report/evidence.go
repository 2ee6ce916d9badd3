package report

import (
	"fmt"

	"github.com/google/uuid"

	"evidec/domain/bayes"
	"evidec/domain/core"
	"evidec/domain/decision"
	"evidec/domain/experiment"
	"evidec/domain/stats"
)

// EvidenceReport packages an evaluation into one immutable record for
// downstream rendering. Pure aggregation: nothing is recomputed, and the
// only validation is that the decision status is canonical. BayesResult
// is optional; renderers must tolerate its absence.
type EvidenceReport struct {
	ID                  string                `json:"id"`
	Experiment          experiment.Experiment `json:"experiment"`
	Summary             string                `json:"summary"`
	StatisticalEvidence string                `json:"statistical_evidence"`
	DecisionRule        string                `json:"decision_rule"`
	Interpretation      string                `json:"interpretation"`
	Decision            decision.Decision     `json:"decision"`
	StatResult          *stats.StatResult     `json:"stat_result"`
	BayesResult         *bayes.BayesResult    `json:"bayes_result,omitempty"`
}

// New assembles the evidence record from the pieces an evaluation
// produced.
func New(
	exp experiment.Experiment,
	rule decision.RuleDescriber,
	dec decision.Decision,
	statResult *stats.StatResult,
	bayesResult *bayes.BayesResult,
) (*EvidenceReport, error) {
	if !dec.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown decision status %q", core.ErrInvalidInput, dec.Status)
	}

	ratio := decision.IsRatioMetric(statResult)

	statistical := "no frequentist result"
	if statResult != nil {
		statistical = fmt.Sprintf("%s effect=%s, 95%% CI=%s, p=%s",
			statResult.Method,
			core.FormatNumeric(statResult.Effect, ratio),
			core.FormatCI(statResult.CILow, statResult.CIHigh, ratio),
			core.FormatP(statResult.PValue))
	}

	criterion := ""
	if rule != nil {
		criterion, _ = rule.DescribeThreshold(ratio)
	}

	return &EvidenceReport{
		ID:                  uuid.NewString(),
		Experiment:          exp,
		Summary:             fmt.Sprintf("%s: %s (%s)", exp.Name, dec.Status, dec.Reason),
		StatisticalEvidence: statistical,
		DecisionRule:        criterion,
		Interpretation:      dec.Reason,
		Decision:            dec,
		StatResult:          statResult,
		BayesResult:         bayesResult,
	}, nil
}
