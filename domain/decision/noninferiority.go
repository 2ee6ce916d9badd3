package decision

import (
	"fmt"

	"evidec/domain/core"
	"evidec/domain/stats"
)

// NonInferiorityRule accepts a treatment unless it is worse than control
// by more than Margin. Margin is the absolute tolerated regression and
// must be >= 0.
type NonInferiorityRule struct {
	Alpha      float64 `json:"alpha"`
	Margin     float64 `json:"margin"`
	MetricGoal Goal    `json:"metric_goal"`
}

// DefaultNonInferiorityRule tolerates a one-point regression.
func DefaultNonInferiorityRule() NonInferiorityRule {
	return NonInferiorityRule{Alpha: 0.05, Margin: 0.01, MetricGoal: GoalIncrease}
}

// Judge applies the one-sided margin test: GO when the lower bound of the
// direction-adjusted confidence interval clears -Margin, NO_GO when the
// whole interval sits below it, INCONCLUSIVE when the interval straddles
// the boundary.
func (r NonInferiorityRule) Judge(result *stats.StatResult) (Decision, error) {
	if err := r.MetricGoal.validate(); err != nil {
		return Decision{}, err
	}
	if result == nil {
		return Decision{}, core.ErrMissingPValue
	}

	ratio := IsRatioMetric(result)

	// Direction-adjusted interval: for a decrease goal the harmful
	// direction is a positive difference, so the bounds flip.
	var adjLow, adjHigh float64
	if r.MetricGoal == GoalIncrease {
		adjLow, adjHigh = result.CILow, result.CIHigh
	} else {
		adjLow, adjHigh = -result.CIHigh, -result.CILow
	}

	marginStr := core.FormatNumeric(-r.Margin, ratio)
	ciStr := core.FormatCI(result.CILow, result.CIHigh, ratio)

	var status Status
	var reason string
	switch {
	case adjLow >= -r.Margin:
		status = StatusGo
		reason = fmt.Sprintf("non-inferiority met: adjusted CI lower bound %s ≥ margin %s → GO",
			core.FormatNumeric(adjLow, ratio), marginStr)
	case adjHigh < -r.Margin:
		status = StatusNoGo
		reason = fmt.Sprintf("regression: adjusted CI upper bound %s < margin %s → NO_GO",
			core.FormatNumeric(adjHigh, ratio), marginStr)
	default:
		status = StatusInconclusive
		reason = fmt.Sprintf("CI straddles the margin (CI=%s, margin=%s) → INCONCLUSIVE",
			ciStr, marginStr)
	}

	decStats := map[string]interface{}{
		"alpha":   r.Alpha,
		"effect":  result.Effect,
		"margin":  r.Margin,
		"method":  string(result.Method),
		"ci_low":  result.CILow,
		"ci_high": result.CIHigh,
	}
	if result.PValue != nil {
		decStats["p_value"] = *result.PValue
	}

	return Decision{Status: status, Reason: reason, Stats: decStats}, nil
}

// MinLift returns the display threshold: the tolerated downside for an
// increase goal, the tolerated upside for a decrease goal.
func (r NonInferiorityRule) MinLift() float64 {
	if r.MetricGoal == GoalDecrease {
		return r.Margin
	}
	return -r.Margin
}

// DescribeThreshold implements RuleDescriber.
func (r NonInferiorityRule) DescribeThreshold(ratioMetric bool) (string, string) {
	threshold := core.FormatNumeric(r.MinLift(), ratioMetric)
	criterion := fmt.Sprintf("α=%.3f, tolerated regression=%s, goal=%s", r.Alpha, threshold, r.MetricGoal)
	return criterion, threshold
}
