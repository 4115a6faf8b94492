package marker

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/san-kum/landscape/internal/geom"
	"github.com/san-kum/landscape/internal/hexgrid"
)

const frame = 1000.0 / 60.0

func slopedGrid() *hexgrid.Grid {
	g := hexgrid.New(12, 8, 20)
	for _, c := range g.Coords() {
		g.SetElevation(c, 2.5-0.4*float64(c.Col))
	}
	return g
}

func TestNew_AtCellCenter(t *testing.T) {
	g := hexgrid.New(6, 6, 20)
	m := New(g, 2, 3)

	if m.Position() != g.ToPixel(hexgrid.C(2, 3)) {
		t.Errorf("expected marker at centre of (2,3), got %v", m.Position())
	}
	c, ok := m.CurrentCell()
	if !ok || c != hexgrid.C(2, 3) {
		t.Errorf("CurrentCell() = %v,%v", c, ok)
	}
	if m.Metrics() != restMetrics() {
		t.Errorf("fresh marker metrics = %+v", m.Metrics())
	}
}

func TestUpdate_FlatTerrainSettles(t *testing.T) {
	g := hexgrid.New(9, 9, 20)
	m := New(g, 4, 4)
	center := m.Position()
	m.SetPosition(center.Add(geom.V(6, 3)))

	for i := 0; i < 600; i++ {
		m.Update(frame)
	}
	for i := 0; i < 50; i++ {
		m.Update(frame)
		if !m.IsSettled(0.5) {
			t.Fatalf("tick %d: speed %.3f not settled", 600+i, m.Speed())
		}
	}
	if d := m.Position().Dist(center); d > 2 {
		t.Errorf("expected marker near the cell centre, distance %.2f", d)
	}
}

func TestUpdate_RollsDownhill(t *testing.T) {
	g := slopedGrid()
	m := New(g, 2, 4)
	m.Seed(1)
	start := m.Position()

	for i := 0; i < 40; i++ {
		m.Update(frame)
	}

	if m.Position().X <= start.X+10 {
		t.Errorf("expected marker to roll east, moved from %v to %v", start, m.Position())
	}
	if m.Speed() > m.Params().MaxSpeed+1e-9 {
		t.Errorf("speed %.3f exceeds max %.3f", m.Speed(), m.Params().MaxSpeed)
	}
}

func TestUpdate_TerminalIsAbsorbing(t *testing.T) {
	g := slopedGrid()
	m := New(g, 5, 3)
	m.ApplyImpulse(3, 1)
	g.SetTerminal(hexgrid.C(5, 3), true)

	m.Update(frame)
	if !m.IsTerminal() {
		t.Fatal("expected terminal after one update on a terminal cell")
	}

	pos, vel := m.Position(), m.Velocity()
	m.ApplyImpulse(10, 10)
	m.SetNoise(1)
	for i := 0; i < 20; i++ {
		m.Update(frame)
	}
	if m.Position() != pos || m.Velocity() != vel {
		t.Errorf("terminal marker moved: %v/%v -> %v/%v", pos, vel, m.Position(), m.Velocity())
	}

	if !m.BindToCell(hexgrid.C(1, 1)) || m.IsTerminal() {
		t.Error("re-binding should clear the terminal state")
	}
}

func TestUpdate_OffGridRecenters(t *testing.T) {
	g := hexgrid.New(6, 6, 20)
	m := New(g, 0, 0)
	m.SetPosition(geom.V(-200, -200))

	m.Update(frame)

	toMid := g.Midpoint().Sub(geom.V(-200, -200)).Unit()
	if m.Velocity().Unit().Dot(toMid) < 0.99 {
		t.Errorf("off-grid velocity %v does not point at the midpoint", m.Velocity())
	}
}

func TestUpdate_IgnoresBadDelta(t *testing.T) {
	g := slopedGrid()
	m := New(g, 3, 3)
	pos := m.Position()

	for _, dt := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		m.Update(dt)
	}
	if m.Position() != pos || m.Clock() != 0 {
		t.Errorf("bad deltas changed state: %v clock %.1f", m.Position(), m.Clock())
	}
}

func TestMoveTo_ReachesTargetExactly(t *testing.T) {
	g := hexgrid.New(6, 6, 20)
	m := New(g, 2, 2)
	target := hexgrid.C(3, 2)

	if !m.MoveTo(target, 300) {
		t.Fatal("MoveTo rejected")
	}
	if m.MoveTo(hexgrid.C(1, 2), 300) {
		t.Error("second MoveTo during a glide should be rejected")
	}

	for i := 0; i < 29; i++ {
		m.Update(10)
		if !m.IsMovingDiscrete() {
			t.Fatalf("glide finished early at %d ms", (i+1)*10)
		}
	}
	m.Update(10)

	if m.IsMovingDiscrete() {
		t.Error("glide should be complete after 300 ms")
	}
	if m.Position() != g.ToPixel(target) {
		t.Errorf("position %v, want exactly %v", m.Position(), g.ToPixel(target))
	}
	if m.Velocity() != (geom.Vec{}) {
		t.Errorf("velocity %v, want zero", m.Velocity())
	}
}

func TestMoveTo_FrameStepsReachTarget(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
	}{
		{"100ms", 100},
		{"300ms", 300},
		{"500ms", 500},
		{"1000ms", 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := hexgrid.New(6, 6, 20)
			m := New(g, 2, 2)
			target := hexgrid.C(3, 2)
			if !m.MoveTo(target, tt.duration) {
				t.Fatal("MoveTo rejected")
			}

			steps := int(math.Round(tt.duration / frame))
			for i := 0; i < steps-1; i++ {
				m.Update(frame)
			}
			if !m.IsMovingDiscrete() {
				t.Fatalf("glide finished one frame early")
			}
			m.Update(frame)

			if m.IsMovingDiscrete() {
				t.Errorf("glide still running after %d frames", steps)
			}
			if m.Position() != g.ToPixel(target) {
				t.Errorf("position %v, want exactly %v", m.Position(), g.ToPixel(target))
			}
		})
	}
}

func TestReset(t *testing.T) {
	g := hexgrid.New(6, 6, 20)
	m := New(g, 2, 2)
	m.RecordEquilibrium()
	m.SetMode(ModeDiscrete)
	m.SetNoise(0.4)
	m.ApplyImpulse(3, 0)
	for i := 0; i < 10; i++ {
		m.Update(frame)
	}

	if !m.Reset(hexgrid.C(4, 4)) {
		t.Fatal("Reset rejected an on-grid cell")
	}
	if m.Clock() != 0 {
		t.Errorf("clock %v, want 0", m.Clock())
	}
	if _, ok := m.Equilibrium(); ok {
		t.Error("equilibrium should be cleared")
	}
	if m.Mode() != ModeContinuous {
		t.Errorf("mode %v, want continuous", m.Mode())
	}
	if c, _ := m.CurrentCell(); c != hexgrid.C(4, 4) || m.Speed() != 0 {
		t.Error("marker should rest on the new cell")
	}
	if m.Noise() != 0.4 {
		t.Errorf("noise %v, want it kept at 0.4", m.Noise())
	}
}

func TestMoveTo_Rejections(t *testing.T) {
	g := hexgrid.New(4, 4, 20)
	m := New(g, 1, 1)

	if m.MoveTo(hexgrid.C(9, 9), 100) {
		t.Error("MoveTo off-grid should be rejected")
	}

	g.SetTerminal(hexgrid.C(1, 1), true)
	m.Update(frame)
	if m.MoveTo(hexgrid.C(2, 1), 100) {
		t.Error("MoveTo on a terminal marker should be rejected")
	}

	var nilGrid Marker
	if nilGrid.MoveTo(hexgrid.C(0, 0), 100) {
		t.Error("MoveTo without a grid should be rejected")
	}
}

func TestMoveTo_InstantWithZeroDuration(t *testing.T) {
	g := hexgrid.New(4, 4, 20)
	m := New(g, 0, 0)
	if !m.MoveTo(hexgrid.C(3, 3), 0) {
		t.Fatal("instant move rejected")
	}
	if m.IsMovingDiscrete() || m.Position() != g.ToPixel(hexgrid.C(3, 3)) {
		t.Errorf("instant move did not land: %v", m.Position())
	}
}

func TestDiscreteMode_IdleDoesNotRoll(t *testing.T) {
	g := slopedGrid()
	m := New(g, 4, 4)
	m.SetMode(ModeDiscrete)
	pos := m.Position()

	for i := 0; i < 30; i++ {
		m.Update(frame)
	}
	if m.Position() != pos {
		t.Errorf("idle discrete marker moved to %v", m.Position())
	}
}

func TestEaseInOut(t *testing.T) {
	tests := []struct {
		t, want float64
	}{
		{0, 0},
		{0.25, 0.125},
		{0.5, 0.5},
		{0.75, 0.875},
		{1, 1},
	}
	for _, tt := range tests {
		if got := easeInOut(tt.t); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("easeInOut(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestMetrics_WaitForWindow(t *testing.T) {
	g := slopedGrid()
	m := New(g, 1, 4)
	for i := 0; i < MetricWindow-1; i++ {
		m.Update(frame)
	}
	if m.Metrics().Oscillation != 0 || m.Metrics().Recovery != 1 {
		t.Errorf("metrics computed before window filled: %+v", m.Metrics())
	}
	m.Update(frame)
	if m.Metrics().Oscillation == 0 {
		t.Error("expected non-zero oscillation once the window is full on a slope")
	}
}

func TestMetrics_ClampedUnderFuzz(t *testing.T) {
	g := slopedGrid()
	m := New(g, 5, 4)
	m.Seed(99)
	r := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 3000; i++ {
		switch r.IntN(4) {
		case 0:
			scale := math.Pow(10, float64(r.IntN(8)))
			m.ApplyImpulse((r.Float64()*2-1)*scale, (r.Float64()*2-1)*scale)
		case 1:
			m.SetNoise(r.Float64() * 2)
		case 2:
			if r.IntN(50) == 0 {
				m.SetPosition(geom.V(r.Float64()*1e4-5e3, r.Float64()*1e4-5e3))
			}
		}
		m.Update(r.Float64() * 100)

		mt := m.Metrics()
		if mt.Oscillation < 0 || mt.Oscillation > 1 || math.IsNaN(mt.Oscillation) {
			t.Fatalf("step %d: oscillation %v out of range", i, mt.Oscillation)
		}
		if mt.Recovery < 0 || mt.Recovery > 1 || math.IsNaN(mt.Recovery) {
			t.Fatalf("step %d: recovery %v out of range", i, mt.Recovery)
		}
		if m.IsTerminal() {
			m.BindToCell(hexgrid.C(5, 4))
		}
	}
}

func TestOscillationAmplitude_Extremes(t *testing.T) {
	tests := []struct {
		name   string
		window []geom.Vec
		want   float64
	}{
		{"empty", nil, 0},
		{"still", []geom.Vec{{X: 3, Y: 3}, {X: 3, Y: 3}}, 0},
		{"huge", []geom.Vec{{X: -1e200, Y: 0}, {X: 1e200, Y: 0}}, 1},
		{"nan", []geom.Vec{{X: math.NaN(), Y: 0}, {X: 1, Y: 0}}, 0},
		{"inf", []geom.Vec{{X: math.Inf(1), Y: 0}, {X: 1, Y: 0}}, 0},
		{"half", []geom.Vec{{X: -12.5, Y: 0}, {X: 12.5, Y: 0}}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := oscillationAmplitude(tt.window, 25)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("oscillationAmplitude = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecoveryRate(t *testing.T) {
	tests := []struct {
		speed, want float64
	}{
		{0, 1},
		{3, 0.5},
		{6, 0},
		{60, 0},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}
	for _, tt := range tests {
		if got := recoveryRate(tt.speed, 6); got != tt.want {
			t.Errorf("recoveryRate(%v) = %v, want %v", tt.speed, got, tt.want)
		}
	}
}

func TestDistanceFromEquilibrium(t *testing.T) {
	g := hexgrid.New(6, 6, 20)
	m := New(g, 2, 2)
	m.RecordEquilibrium()
	eq := m.Position()

	m.SetPosition(eq.Add(geom.V(3, 4)))
	if d := m.Metrics().Distance; math.Abs(d-5) > 1e-9 {
		t.Errorf("distance = %v, want 5", d)
	}
}

func TestNilGridGuards(t *testing.T) {
	var m Marker
	m.Update(frame)
	m.ApplyImpulse(1, 1)
	m.SetPosition(geom.V(1, 1))
	if m.BindToCell(hexgrid.C(0, 0)) {
		t.Error("BindToCell without a grid should fail")
	}
	if _, ok := m.CurrentCell(); ok {
		t.Error("CurrentCell without a grid should be absent")
	}
}

func TestSetParams_ResizesBuffers(t *testing.T) {
	g := slopedGrid()
	m := New(g, 1, 4)
	for i := 0; i < 50; i++ {
		m.Update(frame)
	}
	p := m.Params()
	p.TrailLen = 10
	m.SetParams(p)

	if n := len(m.Trail()); n != 10 {
		t.Errorf("trail len %d after shrinking, want 10", n)
	}
	if n := len(m.History()); n != 50 {
		t.Errorf("history len %d, want 50", n)
	}
}
