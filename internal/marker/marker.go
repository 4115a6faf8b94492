package marker

import (
	"math"

	"github.com/san-kum/landscape/internal/geom"
	"github.com/san-kum/landscape/internal/hexgrid"
	"github.com/san-kum/landscape/internal/ringbuf"
	"github.com/san-kum/landscape/internal/rng"
)

type Mode int

const (
	// ModeContinuous integrates gravity, friction and noise every tick.
	ModeContinuous Mode = iota
	// ModeDiscrete only moves through explicit MoveTo glides.
	ModeDiscrete
)

func (m Mode) String() string {
	if m == ModeDiscrete {
		return "discrete"
	}
	return "continuous"
}

// Marker is a particle bound to one grid. It is the sole writer of its own
// kinematic state.
type Marker struct {
	grid   *hexgrid.Grid
	params Params
	rand   *rng.RNG

	pos      geom.Vec
	vel      geom.Vec
	noise    float64
	mode     Mode
	terminal bool
	glide    *glide
	clock    float64

	trail   *ringbuf.Ring[geom.Vec]
	history *ringbuf.Ring[geom.Vec]

	equilibrium    geom.Vec
	hasEquilibrium bool
	metrics        Metrics
}

// New places a marker at the centre of (col, row) with default parameters.
func New(g *hexgrid.Grid, col, row int) *Marker {
	return NewWithParams(g, hexgrid.C(col, row), DefaultParams())
}

func NewWithParams(g *hexgrid.Grid, start hexgrid.Coord, p Params) *Marker {
	p = p.normalized()
	m := &Marker{
		grid:    g,
		params:  p,
		rand:    rng.NewTime(),
		trail:   ringbuf.New[geom.Vec](p.TrailLen),
		history: ringbuf.New[geom.Vec](p.HistoryLen),
		metrics: restMetrics(),
	}
	m.BindToCell(start)
	return m
}

// Seed makes noise impulses deterministic.
func (m *Marker) Seed(seed int64) { m.rand = rng.New(seed) }

func (m *Marker) Grid() *hexgrid.Grid { return m.grid }
func (m *Marker) Params() Params      { return m.params }
func (m *Marker) Position() geom.Vec  { return m.pos }
func (m *Marker) Velocity() geom.Vec  { return m.vel }
func (m *Marker) Speed() float64      { return m.vel.Norm() }
func (m *Marker) Noise() float64      { return m.noise }
func (m *Marker) Mode() Mode          { return m.mode }
func (m *Marker) IsTerminal() bool    { return m.terminal }
func (m *Marker) Clock() float64      { return m.clock }
func (m *Marker) Metrics() Metrics    { return m.metrics }

// Trail returns the recent positions kept for rendering, oldest first.
func (m *Marker) Trail() []geom.Vec { return m.trail.Slice() }

// History returns the recent positions kept for metrics, oldest first.
func (m *Marker) History() []geom.Vec { return m.history.Slice() }

// SetNoise sets the noise intensity, clamped to [0, 1].
func (m *Marker) SetNoise(v float64) {
	if math.IsNaN(v) {
		v = 0
	}
	m.noise = math.Max(0, math.Min(1, v))
}

func (m *Marker) SetMode(mode Mode) { m.mode = mode }

// SetParams replaces the physical constants; buffers keep their contents
// up to the new capacities.
func (m *Marker) SetParams(p Params) {
	p = p.normalized()
	if p.TrailLen != m.params.TrailLen {
		m.trail = resized(m.trail, p.TrailLen)
	}
	if p.HistoryLen != m.params.HistoryLen {
		m.history = resized(m.history, p.HistoryLen)
	}
	m.params = p
}

func resized(r *ringbuf.Ring[geom.Vec], capacity int) *ringbuf.Ring[geom.Vec] {
	out := ringbuf.New[geom.Vec](capacity)
	for _, v := range r.Tail(capacity) {
		out.Push(v)
	}
	return out
}

// CurrentCell returns the cell under the marker's continuous position.
func (m *Marker) CurrentCell() (hexgrid.Coord, bool) {
	if m.grid == nil {
		return hexgrid.Coord{}, false
	}
	return m.grid.CellAt(m.pos)
}

// SetPosition teleports the marker, clearing velocity, buffers, any glide in
// progress and the terminal state.
func (m *Marker) SetPosition(p geom.Vec) {
	if m.grid == nil || !p.IsValid() {
		return
	}
	m.pos = p
	m.vel = geom.Vec{}
	m.terminal = false
	m.glide = nil
	m.trail.Clear()
	m.history.Clear()
	m.metrics = restMetrics()
	m.metrics.Distance = m.distanceFromEquilibrium()
}

// Reset returns the marker to rest on c: clock at zero, no recorded
// equilibrium, continuous mode. Noise and parameters are kept.
func (m *Marker) Reset(c hexgrid.Coord) bool {
	m.clock = 0
	m.equilibrium, m.hasEquilibrium = geom.Vec{}, false
	m.mode = ModeContinuous
	return m.BindToCell(c)
}

// BindToCell teleports the marker to the centre of c.
func (m *Marker) BindToCell(c hexgrid.Coord) bool {
	if m.grid == nil || !m.grid.Contains(c) {
		return false
	}
	m.SetPosition(m.grid.ToPixel(c))
	return true
}

// ApplyImpulse adds (fx, fy) to the velocity. A terminal marker ignores it.
func (m *Marker) ApplyImpulse(fx, fy float64) {
	if m.grid == nil || m.terminal {
		return
	}
	imp := geom.V(fx, fy)
	if !imp.IsValid() {
		return
	}
	m.vel = m.vel.Add(imp)
}

// IsSettled reports whether the speed is below threshold.
func (m *Marker) IsSettled(threshold float64) bool {
	return m.Speed() < threshold
}

// RecordEquilibrium stores the current position as the reference point for
// the distance metric.
func (m *Marker) RecordEquilibrium() {
	m.SetEquilibrium(m.pos)
}

func (m *Marker) SetEquilibrium(p geom.Vec) {
	if !p.IsValid() {
		return
	}
	m.equilibrium, m.hasEquilibrium = p, true
	m.metrics.Distance = m.distanceFromEquilibrium()
}

// Equilibrium returns the recorded reference point, if any.
func (m *Marker) Equilibrium() (geom.Vec, bool) {
	return m.equilibrium, m.hasEquilibrium
}

// Update advances the marker by dtMs milliseconds. The terminal check runs
// first; after that the tick dispatches on the motion mode.
func (m *Marker) Update(dtMs float64) {
	if m.grid == nil || m.terminal || !(dtMs > 0) || math.IsInf(dtMs, 0) {
		return
	}
	if c, ok := m.grid.CellAt(m.pos); ok && m.grid.IsTerminal(c) {
		m.terminal = true
		m.vel = geom.Vec{}
		m.glide = nil
		return
	}
	m.clock += dtMs

	switch {
	case m.glide != nil:
		m.stepGlide(dtMs)
	case m.mode == ModeContinuous:
		m.stepContinuous(dtMs / m.params.FrameMs)
	default:
		return
	}

	m.trail.Push(m.pos)
	m.history.Push(m.pos)
	m.recomputeMetrics()
}
