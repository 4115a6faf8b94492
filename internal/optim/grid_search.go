package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/landscape/internal/config"
	"github.com/san-kum/landscape/internal/sim"
)

var ErrUnknownParam = errors.New("optim: unknown parameter")

// setters maps sweepable parameter names onto config fields.
var setters = map[string]func(c *config.Config, v float64){
	"noise":             func(c *config.Config, v float64) { c.Noise = v },
	"shock.magnitude":   func(c *config.Config, v float64) { c.Shock.Magnitude = v },
	"shock.every":       func(c *config.Config, v float64) { c.Shock.Every = int(v) },
	"erosion.intensity": func(c *config.Config, v float64) { c.Erosion.Intensity = v },
	"erosion.every":     func(c *config.Config, v float64) { c.Erosion.Every = int(v) },
	"terrain.depth":     func(c *config.Config, v float64) { c.Terrain.Depth = v },
	"physics.friction":  func(c *config.Config, v float64) { c.Physics.Friction = v },
	"physics.gravity":   func(c *config.Config, v float64) { c.Physics.Gravity = v },
}

// Params lists the sweepable parameter names.
func Params() []string {
	names := make([]string, 0, len(setters))
	for k := range setters {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Apply sets each named parameter on a copy of base.
func Apply(base *config.Config, params map[string]float64) (*config.Config, error) {
	cfg := base.Clone()
	for name, v := range params {
		set, ok := setters[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownParam, name)
		}
		set(cfg, v)
	}
	return cfg, cfg.Validate()
}

// Point is one evaluated grid point.
type Point struct {
	Params  map[string]float64
	Summary sim.Summary
	Score   float64
}

// GridSearch evaluates every combination of parameter values with an
// ensemble per point.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search runs build for every grid point and keeps the lowest score.
// Points are returned in grid order.
func (g *GridSearch) Search(
	ctx context.Context,
	build func(params map[string]float64) (*sim.Ensemble, error),
	score func(sim.Summary) float64,
) (best Point, points []Point, err error) {
	if len(g.paramNames) != len(g.ranges) {
		return best, nil, fmt.Errorf("optim: %d params but %d ranges", len(g.paramNames), len(g.ranges))
	}

	best.Score = math.Inf(1)
	err = g.searchRecursive(ctx, 0, make(map[string]float64), build, score, &best, &points)
	return best, points, err
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	build func(map[string]float64) (*sim.Ensemble, error),
	score func(sim.Summary) float64,
	best *Point,
	points *[]Point,
) error {
	if depth == len(g.paramNames) {
		ens, err := build(current)
		if err != nil {
			return err
		}
		results, err := ens.Run(ctx)
		if err != nil {
			return err
		}

		p := Point{Params: current, Summary: sim.Summarize(results)}
		p.Score = score(p.Summary)
		*points = append(*points, p)
		if p.Score < best.Score {
			*best = p
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, build, score, best, points); err != nil {
			return err
		}
	}
	return nil
}

// CollapseScore prefers fewer collapses, then later ones.
func CollapseScore(s sim.Summary) float64 {
	score := s.CollapseFraction
	if s.MeanCollapseFrame >= 0 {
		score -= s.MeanCollapseFrame * 1e-9
	}
	return score
}
