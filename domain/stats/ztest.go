package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"evidec/domain/core"
)

// normalApproxFloor is the per-arm n*p*(1-p) threshold below which the
// normal approximation to the binomial is considered borderline.
const normalApproxFloor = 5.0

// RunZTest performs a two-proportion z-test on aggregated counts.
//
// The test statistic uses the pooled standard error; the 95% confidence
// interval on the proportion difference uses the unpooled (Wald) standard
// error. With correction=true a continuity correction of 0.5*(1/n1+1/n2)
// is applied to the effect before computing the statistic.
//
// A low-sample warning is attached (result still returned) when
// n*p*(1-p) < 5 in either arm.
func RunZTest(control, treatment Counts, correction bool) (*StatResult, error) {
	if err := control.validate("control"); err != nil {
		return nil, err
	}
	if err := treatment.validate("treatment"); err != nil {
		return nil, err
	}

	controlRate := control.Rate()
	treatmentRate := treatment.Rate()
	effect := treatmentRate - controlRate

	pooled := float64(control.Success+treatment.Success) / float64(control.Total+treatment.Total)
	pooledSE := math.Sqrt(pooled * (1 - pooled) * (1/float64(control.Total) + 1/float64(treatment.Total)))
	if pooledSE == 0 {
		return nil, core.ErrNoVariation
	}

	waldSE := math.Sqrt(
		controlRate*(1-controlRate)/float64(control.Total) +
			treatmentRate*(1-treatmentRate)/float64(treatment.Total))
	if waldSE == 0 {
		return nil, core.ErrNoVariation
	}

	adjustedEffect := effect
	if correction {
		continuity := 0.5 * (1/float64(control.Total) + 1/float64(treatment.Total))
		adjustedEffect = effect - math.Copysign(continuity, effect)
	}

	z := adjustedEffect / pooledSE
	pValue := 2 * (1 - distuv.UnitNormal.CDF(math.Abs(z)))

	zCrit := distuv.UnitNormal.Quantile(0.975)
	baseline := controlRate

	result := &StatResult{
		Effect:   effect,
		PValue:   &pValue,
		CILow:    effect - zCrit*waldSE,
		CIHigh:   effect + zCrit*waldSE,
		Method:   MethodTwoProportionZ,
		Baseline: &baseline,
	}

	for _, arm := range []struct {
		name string
		c    Counts
	}{{"control", control}, {"treatment", treatment}} {
		rate := arm.c.Rate()
		if npq := float64(arm.c.Total) * rate * (1 - rate); npq < normalApproxFloor {
			result.Warnings = append(result.Warnings, Warning{
				Code: WarnLowSample,
				Message: fmt.Sprintf("%s arm n*p*(1-p)=%.2f is below %.0f, normal approximation is borderline",
					arm.name, npq, normalApproxFloor),
			})
		}
	}

	return result, nil
}
