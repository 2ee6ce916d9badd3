package app

import (
	"context"
	"fmt"

	"evidec/domain/bayes"
	"evidec/domain/core"
	"evidec/domain/decision"
	"evidec/domain/experiment"
	"evidec/domain/report"
	"evidec/domain/stats"
	"evidec/internal"
)

// Policy kinds accepted by the evaluation service.
const (
	PolicyThreshold      = "threshold"
	PolicyNonInferiority = "non_inferiority"
	PolicyBayesian       = "bayesian"
)

// ArmData carries one arm's outcomes, either aggregated or raw.
type ArmData struct {
	Counts  *stats.Counts `json:"counts,omitempty"`
	Samples []float64     `json:"samples,omitempty"`
}

// PolicyConfig selects and parameterizes the decision rule. Unset rule
// structs fall back to their defaults.
type PolicyConfig struct {
	Kind           string                       `json:"kind"`
	Threshold      *decision.ThresholdRule      `json:"threshold,omitempty"`
	NonInferiority *decision.NonInferiorityRule `json:"non_inferiority,omitempty"`
	Bayesian       *decision.BayesianRule       `json:"bayesian,omitempty"`
	// Sampling configures the posterior fit for the bayesian policy.
	Sampling *bayes.BetaBinomialOptions `json:"sampling,omitempty"`
}

// EvaluationRequest describes one two-variant comparison to evaluate.
type EvaluationRequest struct {
	Name      string       `json:"name"`
	Metric    string       `json:"metric"`
	Variants  [2]string    `json:"variants"`
	Control   ArmData      `json:"control"`
	Treatment ArmData      `json:"treatment"`
	Policy    PolicyConfig `json:"policy"`
}

// EvaluationService runs the full pipeline: test-family dispatch, policy
// judgment, evidence assembly. Stateless and safe for concurrent use.
type EvaluationService struct {
	log *internal.Logger
}

// NewEvaluationService creates an evaluation service
func NewEvaluationService(log *internal.Logger) *EvaluationService {
	return &EvaluationService{log: log.Component("evaluation")}
}

// Evaluate runs one experiment end to end and returns its evidence
// report. For the bayesian policy the frequentist result is still
// computed so the report carries both views.
func (s *EvaluationService) Evaluate(ctx context.Context, req EvaluationRequest) (*report.EvidenceReport, error) {
	exp := experiment.New(req.Name, req.Metric, req.Variants)

	statResult, counts, err := s.fit(exp, req)
	if err != nil {
		return nil, err
	}
	for _, w := range statResult.Warnings {
		s.log.Warn("experiment %s: %s", req.Name, w.Message)
	}

	kind := req.Policy.Kind
	if kind == "" {
		kind = PolicyThreshold
	}

	var (
		rule        decision.RuleDescriber
		dec         decision.Decision
		bayesResult *bayes.BayesResult
	)
	switch kind {
	case PolicyThreshold:
		r := decision.DefaultThresholdRule()
		if req.Policy.Threshold != nil {
			r = *req.Policy.Threshold
		}
		rule = r
		dec, err = r.Judge(statResult)
	case PolicyNonInferiority:
		r := decision.DefaultNonInferiorityRule()
		if req.Policy.NonInferiority != nil {
			r = *req.Policy.NonInferiority
		}
		rule = r
		dec, err = r.Judge(statResult)
	case PolicyBayesian:
		if counts == nil {
			return nil, fmt.Errorf("%w: bayesian policy requires binomial outcomes", core.ErrInvalidInput)
		}
		opts := bayes.DefaultBetaBinomialOptions()
		if req.Policy.Sampling != nil {
			opts = *req.Policy.Sampling
		}
		bayesResult, err = bayes.FitBetaBinomial(counts[0], counts[1], opts)
		if err != nil {
			return nil, err
		}
		r := decision.DefaultBayesianRule()
		if req.Policy.Bayesian != nil {
			r = *req.Policy.Bayesian
		}
		rule = r
		dec, err = r.Judge(bayesResult)
	default:
		return nil, fmt.Errorf("%w: unknown policy kind %q", core.ErrInvalidInput, kind)
	}
	if err != nil {
		return nil, err
	}

	rep, err := report.New(exp, rule, dec, statResult, bayesResult)
	if err != nil {
		return nil, err
	}
	s.log.Info("experiment %s judged %s by %s policy", req.Name, dec.Status, kind)
	return rep, nil
}

// fit dispatches the arms to the right test family and, when the data is
// binomial, also returns the aggregated counts for posterior fitting.
func (s *EvaluationService) fit(exp experiment.Experiment, req EvaluationRequest) (*stats.StatResult, *[2]stats.Counts, error) {
	control, treatment := req.Control, req.Treatment

	switch {
	case control.Counts != nil && treatment.Counts != nil:
		result, err := exp.FitCounts(*control.Counts, *treatment.Counts)
		if err != nil {
			return nil, nil, err
		}
		return result, &[2]stats.Counts{*control.Counts, *treatment.Counts}, nil

	case control.Counts == nil && treatment.Counts == nil:
		if len(control.Samples) == 0 || len(treatment.Samples) == 0 {
			return nil, nil, fmt.Errorf("%w: both arms need counts or samples", core.ErrInvalidInput)
		}
		result, err := exp.FitSamples(control.Samples, treatment.Samples)
		if err != nil {
			return nil, nil, err
		}
		if result.Method == stats.MethodTwoProportionZ {
			cc, err := stats.CountBinary(stats.CleanSamples(control.Samples))
			if err != nil {
				return nil, nil, err
			}
			tc, err := stats.CountBinary(stats.CleanSamples(treatment.Samples))
			if err != nil {
				return nil, nil, err
			}
			return result, &[2]stats.Counts{cc, tc}, nil
		}
		return result, nil, nil

	default:
		return nil, nil, fmt.Errorf("%w: arms must both use counts or both use samples", core.ErrInvalidInput)
	}
}
