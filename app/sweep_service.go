package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"evidec/domain/report"
	"evidec/internal"
	"evidec/internal/errors"
)

// SweepService evaluates batches of independent experiments concurrently.
// Each evaluation allocates its own buffers and RNG state, so no
// coordination is needed beyond the worker limit.
type SweepService struct {
	eval    *EvaluationService
	workers int
	log     *internal.Logger
}

// NewSweepService creates a sweep service with a bounded worker pool
func NewSweepService(eval *EvaluationService, workers int, log *internal.Logger) *SweepService {
	if workers < 1 {
		workers = 1
	}
	return &SweepService{eval: eval, workers: workers, log: log.Component("sweep")}
}

// EvaluateBatch runs all requests and returns reports in request order.
// The first failure cancels the remaining work.
func (s *SweepService) EvaluateBatch(ctx context.Context, reqs []EvaluationRequest) ([]*report.EvidenceReport, error) {
	out := make([]*report.EvidenceReport, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, req := range reqs {
		g.Go(func() error {
			rep, err := s.eval.Evaluate(ctx, req)
			if err != nil {
				return errors.Wrapf(err, "experiment %q (index %d)", req.Name, i)
			}
			out[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.log.Info("evaluated %d experiments", len(reqs))
	return out, nil
}
