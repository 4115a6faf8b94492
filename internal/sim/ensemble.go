package sim

import (
	"context"
	"fmt"
	"runtime"

	"github.com/san-kum/landscape/internal/config"
	"golang.org/x/sync/errgroup"
)

// SetupFunc prepares a fresh session before it runs, typically by applying
// a scenario.
type SetupFunc func(s *Session) error

// Ensemble runs the same config over consecutive seeds in parallel. Every
// run owns its own session, so no state is shared between goroutines.
type Ensemble struct {
	cfg       *config.Config
	numRuns   int
	seedStart int64
	setup     SetupFunc
	metrics   func() []Metric
	limit     int
}

func NewEnsemble(cfg *config.Config, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{
		cfg:       cfg.Clone(),
		numRuns:   numRuns,
		seedStart: seedStart,
		limit:     runtime.NumCPU(),
	}
}

func (e *Ensemble) WithSetup(fn SetupFunc) *Ensemble {
	e.setup = fn
	return e
}

// WithMetrics registers a factory; each run gets freshly built metrics.
func (e *Ensemble) WithMetrics(fn func() []Metric) *Ensemble {
	e.metrics = fn
	return e
}

func (e *Ensemble) WithLimit(n int) *Ensemble {
	if n > 0 {
		e.limit = n
	}
	return e
}

// Run executes all runs and returns results ordered by seed. The first
// failing run cancels the rest.
func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	if e.numRuns <= 0 {
		return nil, fmt.Errorf("%w: ensemble needs at least one run", ErrInvalidConfig)
	}
	results := make([]*Result, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.limit)
	for i := 0; i < e.numRuns; i++ {
		idx := i
		g.Go(func() error {
			cfgCopy := e.cfg.Clone()
			cfgCopy.Seed = e.seedStart + int64(idx)

			s, err := New(cfgCopy)
			if err != nil {
				return err
			}
			if e.setup != nil {
				if err := e.setup(s); err != nil {
					return fmt.Errorf("seed %d: %w", cfgCopy.Seed, err)
				}
			}
			if e.metrics != nil {
				for _, m := range e.metrics() {
					s.AddMetric(m)
				}
			}

			res, err := s.Run(ctx, cfgCopy.Frames)
			if err != nil {
				return fmt.Errorf("seed %d: %w", cfgCopy.Seed, err)
			}
			results[idx] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Summary aggregates an ensemble.
type Summary struct {
	Runs              int                `json:"runs"`
	Collapsed         int                `json:"collapsed"`
	CollapseFraction  float64            `json:"collapse_fraction"`
	MeanCollapseFrame float64            `json:"mean_collapse_frame"`
	MeanMetrics       map[string]float64 `json:"mean_metrics"`
}

func Summarize(results []*Result) Summary {
	sum := Summary{MeanMetrics: make(map[string]float64), MeanCollapseFrame: -1}
	var frameTotal float64
	counts := make(map[string]int)
	for _, r := range results {
		if r == nil {
			continue
		}
		sum.Runs++
		if r.Collapsed {
			sum.Collapsed++
			frameTotal += float64(r.CollapseFrame)
		}
		for k, v := range r.Metrics {
			sum.MeanMetrics[k] += v
			counts[k]++
		}
	}
	for k, n := range counts {
		sum.MeanMetrics[k] /= float64(n)
	}
	if sum.Runs > 0 {
		sum.CollapseFraction = float64(sum.Collapsed) / float64(sum.Runs)
	}
	if sum.Collapsed > 0 {
		sum.MeanCollapseFrame = frameTotal / float64(sum.Collapsed)
	}
	return sum
}
