package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/landscape/internal/config"
	"github.com/san-kum/landscape/internal/hexgrid"
)

type countMetric struct {
	n int
}

func (c *countMetric) Name() string   { return "count" }
func (c *countMetric) Observe(Frame)  { c.n++ }
func (c *countMetric) Value() float64 { return float64(c.n) }
func (c *countMetric) Reset()         { c.n = 0 }

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Frames = 60
	cfg.Seed = 7
	return cfg
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Grid.Cols = 0

	_, err := New(cfg)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestNew_StartsAtStartCell(t *testing.T) {
	s, err := New(testConfig())
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	c, ok := s.Marker.CurrentCell()
	if !ok || c != s.StartCell() {
		t.Errorf("expected marker on %v, got %v (ok=%v)", s.StartCell(), c, ok)
	}
	if s.Overlay.PercentRevealed() != 100 {
		t.Errorf("expected fully revealed overlay, got %.1f", s.Overlay.PercentRevealed())
	}
}

func TestNew_HiddenFog(t *testing.T) {
	cfg := testConfig()
	cfg.Fog.Hidden = true
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if s.Overlay.RevealedCount() != 0 {
		t.Errorf("expected all cells hidden, got %d revealed", s.Overlay.RevealedCount())
	}
}

func TestSessionRun(t *testing.T) {
	s, err := New(testConfig())
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	m := &countMetric{}
	s.AddMetric(m)

	res, err := s.Run(context.Background(), 60)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.FramesRun != 60 || len(res.Frames) != 60 {
		t.Errorf("expected 60 frames, got %d (%d recorded)", res.FramesRun, len(res.Frames))
	}
	if res.Metrics["count"] != 60 {
		t.Errorf("expected metric count 60, got %f", res.Metrics["count"])
	}
	if res.Frames[0].Index != 1 || res.Frames[59].Index != 60 {
		t.Errorf("unexpected frame indices %d..%d", res.Frames[0].Index, res.Frames[59].Index)
	}
	if res.Collapsed || res.CollapseFrame != -1 {
		t.Error("flat terrain should not collapse")
	}
}

func TestSessionRun_InvalidFrames(t *testing.T) {
	s, _ := New(testConfig())
	if _, err := s.Run(context.Background(), 0); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSessionRun_Cancelled(t *testing.T) {
	s, _ := New(testConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := s.Run(ctx, 10)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if res == nil || res.FramesRun != 0 {
		t.Error("expected an empty partial result")
	}
}

func TestSessionRun_StopOnCollapse(t *testing.T) {
	cfg := testConfig()
	cfg.StopOnCollapse = true
	s, _ := New(cfg)
	s.Grid.SetTerminal(s.StartCell(), true)

	res, err := s.Run(context.Background(), 60)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !res.Collapsed || res.CollapseFrame != 1 {
		t.Errorf("expected collapse on frame 1, got collapsed=%v frame=%d", res.Collapsed, res.CollapseFrame)
	}
	if res.FramesRun != 1 {
		t.Errorf("expected run to stop after 1 frame, got %d", res.FramesRun)
	}
}

func TestSessionRun_ContinuesAfterCollapse(t *testing.T) {
	s, _ := New(testConfig())
	s.Grid.SetTerminal(s.StartCell(), true)

	res, _ := s.Run(context.Background(), 20)
	if res.FramesRun != 20 {
		t.Errorf("expected 20 frames, got %d", res.FramesRun)
	}
	if !res.Collapsed {
		t.Error("expected collapse to be recorded")
	}
}

func TestTimers(t *testing.T) {
	s, _ := New(testConfig())

	var once, repeat []int
	s.After(3, func(s *Session) { once = append(once, s.FrameIndex()) })
	tm := s.Every(5, func(s *Session) { repeat = append(repeat, s.FrameIndex()) })

	for i := 0; i < 12; i++ {
		s.Step()
	}
	if len(once) != 1 || once[0] != 3 {
		t.Errorf("expected After to fire once on frame 3, got %v", once)
	}
	if len(repeat) != 2 || repeat[0] != 5 || repeat[1] != 10 {
		t.Errorf("expected Every to fire on 5 and 10, got %v", repeat)
	}

	tm.Stop()
	for i := 0; i < 10; i++ {
		s.Step()
	}
	if len(repeat) != 2 {
		t.Errorf("stopped timer fired again: %v", repeat)
	}
}

func TestTeardown_StaleTimersDoNothing(t *testing.T) {
	s, _ := New(testConfig())

	fired := false
	s.After(2, func(*Session) { fired = true })
	s.Step()
	s.Teardown()
	for i := 0; i < 5; i++ {
		s.Step()
	}

	if fired {
		t.Error("timer fired after teardown")
	}
	if s.FrameIndex() != 1 {
		t.Errorf("expected frame counter to stop at 1, got %d", s.FrameIndex())
	}
	if _, err := s.Run(context.Background(), 5); !errors.Is(err, ErrTornDown) {
		t.Errorf("expected ErrTornDown, got %v", err)
	}
	if tm := s.After(1, func(*Session) {}); !tm.Stopped() {
		t.Error("timers scheduled after teardown should be inert")
	}
}

func TestTimer_TeardownFromCallback(t *testing.T) {
	s, _ := New(testConfig())

	second := false
	s.After(1, func(s *Session) { s.Teardown() })
	s.After(1, func(*Session) { second = true })
	s.Step()

	if second {
		t.Error("sibling timer ran after teardown in the same frame")
	}
	if s.Alive() {
		t.Error("session should be dead")
	}
}

func TestRestart(t *testing.T) {
	s, _ := New(testConfig())
	start := s.StartCell()
	s.Grid.ShapeValley(start, -2)
	s.Overlay.CoverAll()
	s.Marker.ApplyImpulse(5, 0)
	s.Marker.RecordEquilibrium()
	s.Every(1, func(*Session) {})
	for i := 0; i < 100; i++ {
		s.Step()
	}
	s.Teardown()

	s.Restart()

	if !s.Alive() || s.FrameIndex() != 0 {
		t.Error("restart should revive the session at frame 0")
	}
	if e, _ := s.Grid.Elevation(start); e != 0 {
		t.Errorf("expected flat terrain, got %f", e)
	}
	if s.Overlay.PercentRevealed() != 100 {
		t.Error("expected overlay to be revealed again")
	}
	if c, _ := s.Marker.CurrentCell(); c != start || s.Marker.Speed() != 0 {
		t.Error("marker should be back at rest on the start cell")
	}
	if len(s.timers) != 0 {
		t.Errorf("expected no timers, got %d", len(s.timers))
	}
	if f := s.Snapshot(false); f.TimeMs != 0 || f.Marker.Clock != 0 {
		t.Errorf("expected clocks at zero, got frame %f marker %f", f.TimeMs, f.Marker.Clock)
	}
	if _, ok := s.Marker.Equilibrium(); ok {
		t.Error("expected equilibrium from the previous run to be cleared")
	}
}

func TestObserverSeesTrail(t *testing.T) {
	s, _ := New(testConfig())
	s.Marker.ApplyImpulse(2, 0)

	var last Frame
	s.AddObserver(ObserverFunc(func(f Frame) { last = f }))
	s.Step()
	s.Step()

	if len(last.Marker.Trail) != 2 {
		t.Errorf("expected trail of 2, got %d", len(last.Marker.Trail))
	}
}

func TestResultSeries(t *testing.T) {
	s, _ := New(testConfig())
	res, _ := s.Run(context.Background(), 10)

	speeds := res.Series(Speed)
	if len(speeds) != 10 {
		t.Fatalf("expected 10 samples, got %d", len(speeds))
	}
	for i, v := range speeds {
		if v < 0 {
			t.Errorf("sample %d: negative speed %f", i, v)
		}
	}
}

func TestFrameError(t *testing.T) {
	err := error(&FrameError{Frame: 12, Wrapped: ErrUnstable})
	if !errors.Is(err, ErrUnstable) {
		t.Error("FrameError should unwrap to its cause")
	}
	var fe *FrameError
	if !errors.As(err, &fe) || fe.Frame != 12 {
		t.Error("expected errors.As to recover the frame")
	}
	if err.Error() != "frame 12: sim: marker state diverged" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestSnapshot_DoesNotAdvance(t *testing.T) {
	s, _ := New(testConfig())
	s.Step()
	f := s.Snapshot(false)
	if f.Index != 1 || s.FrameIndex() != 1 {
		t.Errorf("snapshot advanced the session: %d", f.Index)
	}
	if f.Marker.Cell != hexgrid.C(7, 5) {
		t.Errorf("expected marker on centre cell, got %v", f.Marker.Cell)
	}
}
