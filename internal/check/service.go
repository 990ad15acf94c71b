// Package check applies caller policy on top of NHI validation and serves the
// HTTP and CLI surfaces. Validation itself lives in pkg/nhi.
package check

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"nhi/internal/platform/metrics"
	dErrors "nhi/pkg/domain-errors"
	"nhi/pkg/nhi"
)

// DefaultMaxBatchSize bounds CheckBatch when no limit is configured.
const DefaultMaxBatchSize = 500

// Service checks NHI values against the standard and caller policy.
type Service struct {
	metrics      *metrics.Metrics
	maxBatchSize int
	workers      int
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics records check outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithMaxBatchSize overrides DefaultMaxBatchSize.
func WithMaxBatchSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxBatchSize = n
		}
	}
}

// New constructs a check service.
func New(opts ...Option) *Service {
	s := &Service{
		maxBatchSize: DefaultMaxBatchSize,
		workers:      runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxBatchSize returns the largest batch CheckBatch accepts.
func (s *Service) MaxBatchSize() int {
	return s.maxBatchSize
}

// Check validates raw and applies opts. Test NHIs are valid NHIs; they are
// only rejected when opts.ExcludeTest is set.
func (s *Service) Check(ctx context.Context, raw string, opts Options) Result {
	res := evaluate(raw, opts)
	s.metrics.IncrementOutcome(res.outcome(), res.Format.String())
	return res
}

// CheckBatch checks every value and returns results in input order.
func (s *Service) CheckBatch(ctx context.Context, raws []string, opts Options) ([]Result, error) {
	if len(raws) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "values must not be empty")
	}
	if len(raws) > s.maxBatchSize {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("at most %d values may be checked at once", s.maxBatchSize))
	}

	start := time.Now()
	results := make([]Result, len(raws))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, raw := range raws {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = s.Check(ctx, raw, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "batch check aborted")
	}

	s.metrics.ObserveBatch(len(raws), time.Since(start))
	return results, nil
}

func evaluate(raw string, opts Options) Result {
	res := Result{Input: raw}

	n, err := nhi.Parse(raw)
	if err != nil {
		res.Reason = ReasonInvalidFormat
		return res
	}

	res.Format = n.Format()
	res.Test = n.IsTest()
	if opts.ExcludeTest && res.Test {
		res.Reason = ReasonReservedForTesting
		return res
	}

	res.NHI = n
	res.Valid = true
	return res
}
