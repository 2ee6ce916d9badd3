package decision

import (
	"fmt"

	"evidec/domain/bayes"
	"evidec/domain/core"
)

// BayesianRule classifies a Beta-Binomial posterior. Checks run in order,
// first match wins:
//
//  1. improvement and safety both clear their bars, mean lift clears the
//     floor → GO
//  2. safe but not convincingly better → INCONCLUSIVE, labeled SAFE
//  3. regression risk above tolerance → NO_GO
//  4. nothing met → INCONCLUSIVE
type BayesianRule struct {
	// PImproveGo is the P(lift>0) bar for a GO.
	PImproveGo float64 `json:"p_improve_go"`
	// PSafe is the P(lift>tolerance) bar for declaring no regression.
	PSafe float64 `json:"p_safe"`
	// PImproveSafe is the reduced improvement bar for the SAFE label.
	PImproveSafe float64 `json:"p_improve_safe"`
	MinLift      float64 `json:"min_lift"`
}

// DefaultBayesianRule carries the standard probability bars.
func DefaultBayesianRule() BayesianRule {
	return BayesianRule{
		PImproveGo:   0.95,
		PSafe:        0.975,
		PImproveSafe: 0.80,
		MinLift:      0.0,
	}
}

// Judge never fails for a well-formed result; the error return only fires
// on a nil result and keeps the signature uniform with the other rules.
func (r BayesianRule) Judge(result *bayes.BayesResult) (Decision, error) {
	if result == nil {
		return Decision{}, fmt.Errorf("%w: nil posterior result", core.ErrInvalidInput)
	}

	tolStr := core.FormatNumeric(result.Tolerance, true)

	var status Status
	var reason string
	safe := false
	switch {
	case result.PImprove >= r.PImproveGo && result.PAboveTolerance >= r.PSafe && result.LiftMean >= r.MinLift:
		status = StatusGo
		reason = fmt.Sprintf("P(lift>0)=%.1f%% ≥ %.0f%%, P(lift>%s)=%.1f%% ≥ %.0f%% and lift_mean=%s ≥ min_lift=%s → GO",
			result.PImprove*100, r.PImproveGo*100, tolStr, result.PAboveTolerance*100, r.PSafe*100,
			core.FormatNumeric(result.LiftMean, true), core.FormatNumeric(r.MinLift, true))
	case result.PAboveTolerance >= r.PSafe && result.PImprove >= r.PImproveSafe:
		status = StatusInconclusive
		safe = true
		reason = fmt.Sprintf("SAFE: P(lift>%s)=%.1f%% ≥ %.0f%% but P(lift>0)=%.1f%% < %.0f%%, no regression yet insufficient improvement → INCONCLUSIVE",
			tolStr, result.PAboveTolerance*100, r.PSafe*100, result.PImprove*100, r.PImproveGo*100)
	case result.PAboveTolerance < r.PSafe:
		status = StatusNoGo
		reason = fmt.Sprintf("P(lift>%s)=%.1f%% < p_safe=%.1f%%, regression risk exceeds tolerance → NO_GO",
			tolStr, result.PAboveTolerance*100, r.PSafe*100)
	default:
		status = StatusInconclusive
		reason = fmt.Sprintf("probability thresholds not met (P(lift>0)=%.1f%%, P(lift>%s)=%.1f%%) → INCONCLUSIVE",
			result.PImprove*100, tolStr, result.PAboveTolerance*100)
	}

	decStats := map[string]interface{}{
		"p_improve":         result.PImprove,
		"p_above_tolerance": result.PAboveTolerance,
		"lift_mean":         result.LiftMean,
		"tolerance":         result.Tolerance,
		"p_improve_go":      r.PImproveGo,
		"p_safe":            r.PSafe,
		"p_improve_safe":    r.PImproveSafe,
		"min_lift":          r.MinLift,
	}
	if safe {
		decStats["label"] = LabelSafe
	}

	return Decision{Status: status, Reason: reason, Stats: decStats}, nil
}

// DescribeThreshold implements RuleDescriber.
func (r BayesianRule) DescribeThreshold(ratioMetric bool) (string, string) {
	minLift := core.FormatNumeric(r.MinLift, ratioMetric)
	criterion := fmt.Sprintf("P(lift>0)≥%.0f%%, P(lift>%s)≥%.1f%%", r.PImproveGo*100, minLift, r.PSafe*100)
	return criterion, fmt.Sprintf("P(lift>0)≥%.0f%%", r.PImproveGo*100)
}
