package marker

import (
	"github.com/san-kum/landscape/internal/geom"
	"github.com/san-kum/landscape/internal/hexgrid"
)

// Snapshot is a read-only copy of the marker state for presentation layers.
type Snapshot struct {
	Clock    float64       `json:"clock"`
	Position geom.Vec      `json:"position"`
	Velocity geom.Vec      `json:"velocity"`
	Cell     hexgrid.Coord `json:"cell"`
	OnGrid   bool          `json:"on_grid"`
	Terminal bool          `json:"terminal"`
	Mode     Mode          `json:"mode"`
	Moving   bool          `json:"moving"`
	Progress float64       `json:"progress"`
	Noise    float64       `json:"noise"`
	Metrics  Metrics       `json:"metrics"`
	Trail    []geom.Vec    `json:"trail,omitempty"`
}

// Snapshot copies the current state. The trail is only included when
// withTrail is set.
func (m *Marker) Snapshot(withTrail bool) Snapshot {
	s := Snapshot{
		Clock:    m.clock,
		Position: m.pos,
		Velocity: m.vel,
		Terminal: m.terminal,
		Mode:     m.mode,
		Moving:   m.glide != nil,
		Noise:    m.noise,
		Metrics:  m.metrics,
	}
	s.Cell, s.OnGrid = m.CurrentCell()
	if m.glide != nil {
		s.Progress = (m.clock - m.glide.start) / m.glide.duration
	}
	if withTrail {
		s.Trail = m.trail.Slice()
	}
	return s
}
