package marker

import (
	"github.com/san-kum/landscape/internal/geom"
	"github.com/san-kum/landscape/internal/hexgrid"
)

// glide is an eased move between two cell centres.
type glide struct {
	from, to geom.Vec
	target   hexgrid.Coord
	start    float64
	elapsed  float64
	duration float64
}

// MoveTo starts a glide to the centre of target lasting durationMs. It is
// rejected while another glide is running, when the target is off the grid,
// or once the marker is terminal. Moves are never queued. A non-positive
// duration arrives immediately.
func (m *Marker) MoveTo(target hexgrid.Coord, durationMs float64) bool {
	if m.grid == nil || m.terminal || m.glide != nil || !m.grid.Contains(target) {
		return false
	}
	to := m.grid.ToPixel(target)
	if !(durationMs > 0) {
		m.pos, m.vel = to, geom.Vec{}
		return true
	}
	m.glide = &glide{
		from:     m.pos,
		to:       to,
		target:   target,
		start:    m.clock,
		duration: durationMs,
	}
	return true
}

// IsMovingDiscrete reports whether a glide is in progress.
func (m *Marker) IsMovingDiscrete() bool { return m.glide != nil }

// GlideTarget returns the destination of the running glide.
func (m *Marker) GlideTarget() (hexgrid.Coord, bool) {
	if m.glide == nil {
		return hexgrid.Coord{}, false
	}
	return m.glide.target, true
}

// glideEpsilon absorbs rounding when frame lengths are summed, so frames
// adding up to the duration always land on the target.
const glideEpsilon = 1e-9

func (m *Marker) stepGlide(dtMs float64) {
	g := m.glide
	g.elapsed += dtMs
	t := g.elapsed / g.duration
	if g.elapsed >= g.duration*(1-glideEpsilon) {
		m.pos = g.to
		m.vel = geom.Vec{}
		m.glide = nil
		return
	}
	prev := m.pos
	m.pos = g.from.Lerp(g.to, easeInOut(t))
	m.vel = m.pos.Sub(prev).Scale(m.params.FrameMs / dtMs)
}

// easeInOut is the quadratic ease-in/ease-out curve on [0, 1].
func easeInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}
