package decision

import (
	"fmt"
	"math"

	"evidec/domain/core"
	"evidec/domain/stats"
)

// ThresholdRule accepts a treatment that is both statistically significant
// and practically large enough.
//
// MinEffectSize is an optional extra floor on |effect|; when set it must
// pass in addition to MinLift (AND composition).
type ThresholdRule struct {
	Alpha         float64  `json:"alpha"`
	MinLift       float64  `json:"min_lift"`
	MetricGoal    Goal     `json:"metric_goal"`
	MinEffectSize *float64 `json:"min_effect_size,omitempty"`
}

// DefaultThresholdRule is the conventional 5% significance gate with no
// practical-significance floor.
func DefaultThresholdRule() ThresholdRule {
	return ThresholdRule{Alpha: 0.05, MinLift: 0.0, MetricGoal: GoalIncrease}
}

// Judge classifies a frequentist result. Checks run in order: the
// significance gate, then the direction override, then the practical
// floors. An exact tie with MinLift satisfies the floor.
func (r ThresholdRule) Judge(result *stats.StatResult) (Decision, error) {
	if err := r.MetricGoal.validate(); err != nil {
		return Decision{}, err
	}
	if result == nil || result.PValue == nil {
		return Decision{}, core.ErrMissingPValue
	}

	ratio := IsRatioMetric(result)
	p := *result.PValue
	signedLift := r.MetricGoal.direction() * result.Effect

	prefix := fmt.Sprintf("p=%s, CI=%s, lift=%s, min_lift=%s",
		core.FormatP(result.PValue),
		core.FormatCI(result.CILow, result.CIHigh, ratio),
		core.FormatNumeric(signedLift, ratio),
		core.FormatNumeric(r.MinLift, ratio))

	var status Status
	var reason string
	switch {
	case p > r.Alpha:
		status = StatusInconclusive
		reason = fmt.Sprintf("%s, p > α=%.3f → INCONCLUSIVE", prefix, r.Alpha)
	case signedLift < 0:
		// Direction override: moving against the goal loses even when
		// the result is significant.
		status = StatusNoGo
		reason = fmt.Sprintf("%s, effect=%s moved against metric_goal=%s → NO_GO",
			prefix, core.FormatNumeric(result.Effect, ratio), r.MetricGoal)
	case signedLift >= r.MinLift && (r.MinEffectSize == nil || math.Abs(result.Effect) >= *r.MinEffectSize):
		status = StatusGo
		reason = fmt.Sprintf("%s, p ≤ α=%.3f and lift ≥ min_lift → GO", prefix, r.Alpha)
	case signedLift < r.MinLift:
		status = StatusNoGo
		reason = fmt.Sprintf("%s, p ≤ α=%.3f but lift < min_lift → NO_GO", prefix, r.Alpha)
	default:
		status = StatusNoGo
		reason = fmt.Sprintf("%s, |effect|=%.4f < min_effect_size=%.4f → NO_GO",
			prefix, math.Abs(result.Effect), *r.MinEffectSize)
	}

	decStats := map[string]interface{}{
		"p_value":  p,
		"alpha":    r.Alpha,
		"effect":   result.Effect,
		"min_lift": r.MinLift,
		"method":   string(result.Method),
		"ci_low":   result.CILow,
		"ci_high":  result.CIHigh,
	}
	if r.MinEffectSize != nil {
		decStats["min_effect_size"] = *r.MinEffectSize
	}

	return Decision{Status: status, Reason: reason, Stats: decStats}, nil
}

// DescribeThreshold implements RuleDescriber.
func (r ThresholdRule) DescribeThreshold(ratioMetric bool) (string, string) {
	minLift := core.FormatNumeric(r.MinLift, ratioMetric)
	criterion := fmt.Sprintf("α=%.3f, min_lift=%s, goal=%s", r.Alpha, minLift, r.MetricGoal)
	return criterion, minLift
}
