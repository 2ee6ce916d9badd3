package bayes

import (
	"fmt"
	"math/rand/v2"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"evidec/domain/core"
	domstats "evidec/domain/stats"
)

// minDraws is the smallest acceptable Monte Carlo sample; below this the
// sampling noise makes the posterior probabilities unreliable.
const minDraws = 1000

// seedStreamSalt separates the two PCG state words derived from one seed.
const seedStreamSalt = 0x9e3779b97f4a7c15

// BetaBinomialOptions configures a posterior fit. Defaults come from
// DefaultBetaBinomialOptions; the value is treated as immutable by the
// fit so concurrent callers with different thresholds never interfere.
type BetaBinomialOptions struct {
	// Alpha0 and Beta0 are the Beta prior parameters per arm.
	Alpha0 float64 `json:"alpha0"`
	Beta0  float64 `json:"beta0"`
	NDraws int     `json:"n_draws"`
	// Tolerance is the non-inferiority lift floor, usually <= 0.
	Tolerance float64 `json:"tolerance"`
	// Seed pins the PCG stream for bit-for-bit reproducible draws.
	// When nil a seed is taken from the global generator and recorded
	// in the result's Params.
	Seed *int64 `json:"seed,omitempty"`
}

// DefaultBetaBinomialOptions returns the symmetric-uniform prior with the
// standard draw count and tolerance.
func DefaultBetaBinomialOptions() BetaBinomialOptions {
	return BetaBinomialOptions{
		Alpha0:    1.0,
		Beta0:     1.0,
		NDraws:    20000,
		Tolerance: -0.005,
	}
}

// FitBetaBinomial estimates the lift distribution of treatment over
// control under independent Beta-Binomial models.
//
// Per arm the posterior is Beta(alpha0+s, beta0+(n-s)). NDraws samples
// are drawn from each posterior using a PCG generator owned by this call;
// all control draws precede all treatment draws on the same stream, which
// is part of the determinism contract: a fixed seed reproduces every
// derived quantity to full floating-point precision.
//
// The call is synchronous and not cancellable.
func FitBetaBinomial(control, treatment domstats.Counts, opts BetaBinomialOptions) (*BayesResult, error) {
	if err := validateCounts(control, "control"); err != nil {
		return nil, err
	}
	if err := validateCounts(treatment, "treatment"); err != nil {
		return nil, err
	}
	if opts.NDraws < minDraws {
		return nil, fmt.Errorf("%w (n_draws=%d, minimum %d)", core.ErrDrawCountTooLow, opts.NDraws, minDraws)
	}
	if opts.Alpha0 <= 0 || opts.Beta0 <= 0 {
		return nil, fmt.Errorf("%w (alpha0=%g, beta0=%g)", core.ErrNonPositivePrior, opts.Alpha0, opts.Beta0)
	}

	seed := effectiveSeed(opts.Seed)
	src := rand.NewPCG(uint64(seed), uint64(seed)^seedStreamSalt)

	controlPost := distuv.Beta{
		Alpha: opts.Alpha0 + float64(control.Success),
		Beta:  opts.Beta0 + float64(control.Total-control.Success),
		Src:   src,
	}
	treatmentPost := distuv.Beta{
		Alpha: opts.Alpha0 + float64(treatment.Success),
		Beta:  opts.Beta0 + float64(treatment.Total-treatment.Success),
		Src:   src,
	}

	controlDraws := make([]float64, opts.NDraws)
	for i := range controlDraws {
		controlDraws[i] = controlPost.Rand()
	}
	lift := make([]float64, opts.NDraws)
	for i := range lift {
		lift[i] = treatmentPost.Rand() - controlDraws[i]
	}

	above := 0
	aboveTol := 0
	for _, d := range lift {
		if d > 0 {
			above++
		}
		if d > opts.Tolerance {
			aboveTol++
		}
	}

	liftMean, err := stats.Mean(lift)
	if err != nil {
		return nil, fmt.Errorf("lift mean: %w", err)
	}
	ciLow, err := stats.Percentile(lift, 2.5)
	if err != nil {
		return nil, fmt.Errorf("lift percentile: %w", err)
	}
	ciHigh, err := stats.Percentile(lift, 97.5)
	if err != nil {
		return nil, fmt.Errorf("lift percentile: %w", err)
	}

	return &BayesResult{
		PImprove:        float64(above) / float64(opts.NDraws),
		PAboveTolerance: float64(aboveTol) / float64(opts.NDraws),
		LiftMean:        liftMean,
		LiftCI:          [2]float64{ciLow, ciHigh},
		Tolerance:       opts.Tolerance,
		Method:          domstats.MethodBetaBinomial,
		Params: Params{
			Alpha0:           opts.Alpha0,
			Beta0:            opts.Beta0,
			NDraws:           opts.NDraws,
			Tolerance:        opts.Tolerance,
			Seed:             seed,
			ControlSuccess:   control.Success,
			ControlTotal:     control.Total,
			TreatmentSuccess: treatment.Success,
			TreatmentTotal:   treatment.Total,
		},
	}, nil
}

// FitBetaBinomialFromPrior builds the Beta prior from domain knowledge:
// priorMean is the expected baseline rate and priorStrength the number of
// past observations it should weigh as.
func FitBetaBinomialFromPrior(priorMean, priorStrength float64, control, treatment domstats.Counts, opts BetaBinomialOptions) (*BayesResult, error) {
	if priorMean <= 0 || priorMean >= 1 {
		return nil, fmt.Errorf("%w (prior_mean=%g, must be inside (0,1))", core.ErrNonPositivePrior, priorMean)
	}
	if priorStrength <= 0 {
		return nil, fmt.Errorf("%w (prior_strength=%g)", core.ErrNonPositivePrior, priorStrength)
	}
	opts.Alpha0 = priorMean * priorStrength
	opts.Beta0 = (1 - priorMean) * priorStrength
	return FitBetaBinomial(control, treatment, opts)
}

// FitBetaBinomialFromSamples aggregates 0/1 observation arrays into counts
// before fitting. NaN values are dropped; any other non-binary value is an
// error.
func FitBetaBinomialFromSamples(controlSamples, treatmentSamples []float64, opts BetaBinomialOptions) (*BayesResult, error) {
	control, err := domstats.CountBinary(controlSamples)
	if err != nil {
		return nil, err
	}
	treatment, err := domstats.CountBinary(treatmentSamples)
	if err != nil {
		return nil, err
	}
	return FitBetaBinomial(control, treatment, opts)
}

func validateCounts(c domstats.Counts, arm string) error {
	if c.Total <= 0 || c.Success < 0 || c.Success > c.Total {
		return core.NewCountError(arm, c.Success, c.Total)
	}
	return nil
}

func effectiveSeed(seed *int64) int64 {
	if seed != nil {
		return *seed
	}
	return rand.Int64()
}
