package experiment

import (
	"github.com/google/uuid"

	"evidec/domain/core"
	"evidec/domain/stats"
)

// Experiment identifies one two-variant comparison and selects the test
// family implied by the shape of its data.
type Experiment struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Metric   string    `json:"metric"`
	Variants [2]string `json:"variants"`
}

// New creates an experiment with a fresh ID. Empty variant names fall
// back to the conventional pair.
func New(name, metric string, variants [2]string) Experiment {
	if variants[0] == "" && variants[1] == "" {
		variants = [2]string{"control", "treatment"}
	}
	return Experiment{
		ID:       uuid.New(),
		Name:     name,
		Metric:   metric,
		Variants: variants,
	}
}

// FitCounts runs the two-proportion z-test on aggregated counts.
func (e Experiment) FitCounts(control, treatment stats.Counts) (*stats.StatResult, error) {
	result, err := stats.RunZTest(control, treatment, false)
	if err != nil {
		return nil, err
	}
	result.Metric = e.Metric
	return result, nil
}

// FitSamples dispatches raw observations to the right test: arrays that
// are all 0/1 after NaN/Inf removal are treated as proportion data and go
// to the z-test, anything else to the Welch t-test.
func (e Experiment) FitSamples(controlSamples, treatmentSamples []float64) (*stats.StatResult, error) {
	control := stats.CleanSamples(controlSamples)
	treatment := stats.CleanSamples(treatmentSamples)
	if len(control) == 0 || len(treatment) == 0 {
		return nil, core.ErrEmptyAfterClean
	}

	if stats.IsBinary(control) && stats.IsBinary(treatment) {
		controlCounts, err := stats.CountBinary(control)
		if err != nil {
			return nil, err
		}
		treatmentCounts, err := stats.CountBinary(treatment)
		if err != nil {
			return nil, err
		}
		return e.FitCounts(controlCounts, treatmentCounts)
	}

	result, err := stats.RunTTest(control, treatment, false)
	if err != nil {
		return nil, err
	}
	result.Metric = e.Metric
	return result, nil
}
