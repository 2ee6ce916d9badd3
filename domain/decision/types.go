package decision

import (
	"evidec/domain/core"
	"evidec/domain/stats"
)

// Status is the closed set of decision verdicts. "SAFE" is not a fourth
// value; it travels as a sub-label in Reason and Stats.
type Status string

const (
	StatusGo           Status = "GO"
	StatusNoGo         Status = "NO_GO"
	StatusInconclusive Status = "INCONCLUSIVE"
)

// Valid reports whether s is one of the three canonical verdicts.
func (s Status) Valid() bool {
	switch s {
	case StatusGo, StatusNoGo, StatusInconclusive:
		return true
	}
	return false
}

// LabelSafe marks a no-regression-but-insufficient-improvement verdict in
// Decision.Stats.
const LabelSafe = "SAFE"

// Goal is the direction in which the metric is supposed to move.
type Goal string

const (
	GoalIncrease Goal = "increase"
	GoalDecrease Goal = "decrease"
)

func (g Goal) validate() error {
	if g != GoalIncrease && g != GoalDecrease {
		return core.ErrUnknownGoal
	}
	return nil
}

// direction is +1 for increase goals and -1 for decrease goals.
func (g Goal) direction() float64 {
	if g == GoalDecrease {
		return -1
	}
	return 1
}

// Decision is a verdict plus everything needed to audit it: a template-
// generated reason embedding the compared values, and the raw numbers in
// Stats sufficient to reconstruct the reason programmatically. Produced
// fresh per Judge call.
type Decision struct {
	Status Status                 `json:"status"`
	Reason string                 `json:"reason"`
	Stats  map[string]interface{} `json:"stats"`
}

// RuleDescriber exposes display information common to all rules, used by
// report assembly.
type RuleDescriber interface {
	// DescribeThreshold returns a criterion sentence and the headline
	// threshold string, formatted as percent when ratioMetric is set.
	DescribeThreshold(ratioMetric bool) (criterion, threshold string)
}

// IsRatioMetric reports whether a result describes a proportion metric,
// which switches display formatting to percentages.
func IsRatioMetric(result *stats.StatResult) bool {
	return result != nil && result.Baseline != nil && *result.Baseline >= 0 && *result.Baseline <= 1
}
