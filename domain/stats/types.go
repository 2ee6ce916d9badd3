package stats

import (
	"math"

	"evidec/domain/core"
)

// Method identifies the inference procedure that produced a result.
type Method string

const (
	MethodTwoProportionZ Method = "two_proportion_z"
	MethodTwoSampleT     Method = "two_sample_t"
	MethodBetaBinomial   Method = "beta_binomial"
)

// WarningCode classifies non-fatal conditions attached to a result.
type WarningCode string

const (
	// WarnLowSample flags a violated normal-approximation validity
	// condition. The result is still returned.
	WarnLowSample WarningCode = "low_sample"
)

// Warning is a non-fatal diagnostic. Callers may log or ignore it.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}

// StatResult is the unified shape for frequentist test outcomes.
// Instances are constructed once per inference call and owned by the
// caller afterwards.
type StatResult struct {
	// Effect is the signed point estimate of treatment - control.
	Effect float64 `json:"effect"`
	// PValue is present for frequentist results only.
	PValue *float64 `json:"p_value,omitempty"`
	CILow  float64  `json:"ci_low"`
	CIHigh float64  `json:"ci_high"`
	Method Method   `json:"method"`
	Metric string   `json:"metric_name"`
	// Baseline is the control-arm reference value (proportion or mean).
	Baseline *float64  `json:"baseline,omitempty"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// Counts holds aggregated binomial outcomes for one arm.
type Counts struct {
	Success int `json:"success"`
	Total   int `json:"total"`
}

// Rate returns the observed proportion.
func (c Counts) Rate() float64 {
	return float64(c.Success) / float64(c.Total)
}

func (c Counts) validate(arm string) error {
	if c.Total <= 0 || c.Success < 0 || c.Success > c.Total {
		return core.NewCountError(arm, c.Success, c.Total)
	}
	return nil
}

// CleanSamples strips NaN and Inf values, leaving the input untouched.
func CleanSamples(samples []float64) []float64 {
	out := make([]float64, 0, len(samples))
	for _, v := range samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// IsBinary reports whether every finite value is 0 or 1.
func IsBinary(samples []float64) bool {
	for _, v := range samples {
		if v != 0 && v != 1 {
			return false
		}
	}
	return len(samples) > 0
}

// CountBinary aggregates a cleaned 0/1 sample into Counts.
func CountBinary(samples []float64) (Counts, error) {
	cleaned := CleanSamples(samples)
	if len(cleaned) == 0 {
		return Counts{}, core.ErrEmptyAfterClean
	}
	if !IsBinary(cleaned) {
		return Counts{}, core.ErrNonBinaryData
	}
	success := 0
	for _, v := range cleaned {
		if v == 1 {
			success++
		}
	}
	return Counts{Success: success, Total: len(cleaned)}, nil
}
