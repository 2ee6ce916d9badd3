package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"evidec/domain/core"
)

// RunTTest performs a two-sample t-test on continuous observations.
//
// NaN and Inf values are removed before anything else; each arm must keep
// at least 2 observations. Welch's unequal-variance form is the default;
// equalVar=true switches to Student's pooled-variance form with
// df = n1+n2-2. Effect is mean(treatment) - mean(control) with a 95%
// confidence interval from the t-distribution at the resolved degrees of
// freedom.
func RunTTest(controlSamples, treatmentSamples []float64, equalVar bool) (*StatResult, error) {
	control := CleanSamples(controlSamples)
	treatment := CleanSamples(treatmentSamples)

	if len(control) < 2 {
		return nil, core.NewSampleSizeError("control", len(control))
	}
	if len(treatment) < 2 {
		return nil, core.NewSampleSizeError("treatment", len(treatment))
	}

	n1 := float64(len(control))
	n2 := float64(len(treatment))
	mean1 := mean(control)
	mean2 := mean(treatment)
	var1 := variance(control, mean1)
	var2 := variance(treatment, mean2)

	// A degenerate t-statistic: no spread in either arm.
	if var1 == 0 && var2 == 0 {
		return nil, core.ErrNoVariation
	}

	effect := mean2 - mean1

	var df, se float64
	if equalVar {
		df = n1 + n2 - 2
		pooled := ((n1-1)*var1 + (n2-1)*var2) / df
		se = math.Sqrt(pooled * (1/n1 + 1/n2))
	} else {
		df = welchDF(var1, var2, n1, n2)
		se = math.Sqrt(var1/n1 + var2/n2)
	}
	if se == 0 {
		return nil, core.ErrNoVariation
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	tStat := effect / se
	pValue := 2 * (1 - tDist.CDF(math.Abs(tStat)))
	tCrit := tDist.Quantile(0.975)

	baseline := mean1
	return &StatResult{
		Effect:   effect,
		PValue:   &pValue,
		CILow:    effect - tCrit*se,
		CIHigh:   effect + tCrit*se,
		Method:   MethodTwoSampleT,
		Baseline: &baseline,
	}, nil
}

// welchDF computes degrees of freedom with the Welch-Satterthwaite equation.
func welchDF(var1, var2, n1, n2 float64) float64 {
	num := math.Pow(var1/n1+var2/n2, 2)
	denom := math.Pow(var1/n1, 2)/(n1-1) + math.Pow(var2/n2, 2)/(n2-1)
	return num / denom
}

func mean(data []float64) float64 {
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

// variance is the unbiased sample variance (ddof=1).
func variance(data []float64, mean float64) float64 {
	if len(data) < 2 {
		return 0
	}
	sumSq := 0.0
	for _, v := range data {
		diff := v - mean
		sumSq += diff * diff
	}
	return sumSq / float64(len(data)-1)
}
