package sim

import (
	"context"
	"errors"
	"testing"
)

func TestEnsembleRun(t *testing.T) {
	cfg := testConfig()
	cfg.Noise = 0.5
	cfg.Frames = 40

	results, err := NewEnsemble(cfg, 4, 100).
		WithLimit(2).
		WithMetrics(func() []Metric { return []Metric{&countMetric{}} }).
		Run(context.Background())
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Seed != int64(100+i) {
			t.Errorf("result %d: expected seed %d, got %d", i, 100+i, r.Seed)
		}
		if r.Metrics["count"] != 40 {
			t.Errorf("result %d: expected 40 observations, got %f", i, r.Metrics["count"])
		}
	}
}

func TestEnsembleRun_Deterministic(t *testing.T) {
	cfg := testConfig()
	cfg.Noise = 1
	cfg.Frames = 50

	a, err := NewEnsemble(cfg, 3, 1).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewEnsemble(cfg, 3, 1).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		pa := a[i].Frames[len(a[i].Frames)-1].Marker.Position
		pb := b[i].Frames[len(b[i].Frames)-1].Marker.Position
		if pa != pb {
			t.Errorf("run %d: same seed diverged: %v vs %v", i, pa, pb)
		}
	}
}

func TestEnsembleRun_SetupError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewEnsemble(testConfig(), 3, 0).
		WithSetup(func(*Session) error { return boom }).
		Run(context.Background())
	if !errors.Is(err, boom) {
		t.Errorf("expected setup error, got %v", err)
	}
}

func TestEnsembleRun_NoRuns(t *testing.T) {
	if _, err := NewEnsemble(testConfig(), 0, 0).Run(context.Background()); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	results := []*Result{
		{Collapsed: true, CollapseFrame: 10, Metrics: map[string]float64{"x": 1}},
		{Collapsed: true, CollapseFrame: 30, Metrics: map[string]float64{"x": 3}},
		{CollapseFrame: -1, Metrics: map[string]float64{"x": 5}},
		nil,
	}
	sum := Summarize(results)

	if sum.Runs != 3 || sum.Collapsed != 2 {
		t.Errorf("expected 3 runs and 2 collapses, got %d and %d", sum.Runs, sum.Collapsed)
	}
	if sum.MeanCollapseFrame != 20 {
		t.Errorf("expected mean collapse frame 20, got %f", sum.MeanCollapseFrame)
	}
	if sum.MeanMetrics["x"] != 3 {
		t.Errorf("expected mean metric 3, got %f", sum.MeanMetrics["x"])
	}
	if empty := Summarize(nil); empty.MeanCollapseFrame != -1 || empty.CollapseFraction != 0 {
		t.Errorf("unexpected empty summary %+v", empty)
	}
}
