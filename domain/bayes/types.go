package bayes

import "evidec/domain/stats"

// Params records every input that shaped a posterior fit, including the
// effective random seed, so any result can be replayed exactly. It is
// always fully populated.
type Params struct {
	Alpha0           float64 `json:"alpha0"`
	Beta0            float64 `json:"beta0"`
	NDraws           int     `json:"n_draws"`
	Tolerance        float64 `json:"tolerance"`
	Seed             int64   `json:"seed"`
	ControlSuccess   int     `json:"control_success"`
	ControlTotal     int     `json:"control_total"`
	TreatmentSuccess int     `json:"treatment_success"`
	TreatmentTotal   int     `json:"treatment_total"`
}

// BayesResult holds a Beta-Binomial posterior summary. Constructed once
// per inference call and never mutated after return.
type BayesResult struct {
	// PImprove is P(lift > 0) under the posterior.
	PImprove float64 `json:"p_improve"`
	// PAboveTolerance is P(lift > tolerance), the non-inferiority
	// probability for a typically negative tolerance.
	PAboveTolerance float64      `json:"p_above_tolerance"`
	LiftMean        float64      `json:"lift_mean"`
	LiftCI          [2]float64   `json:"lift_ci"`
	Tolerance       float64      `json:"tolerance"`
	Method          stats.Method `json:"method"`
	Params          Params       `json:"params"`
}
