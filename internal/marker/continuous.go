package marker

import (
	"math"

	"github.com/san-kum/landscape/internal/geom"
)

// stepContinuous integrates one tick of free rolling. ts is the tick length
// in reference frames.
func (m *Marker) stepContinuous(ts float64) {
	p := m.params

	if c, ok := m.grid.CellAt(m.pos); !ok {
		toMid := m.grid.Midpoint().Sub(m.pos).Unit()
		m.vel = m.vel.Add(toMid.Scale(p.Recenter * ts))
	} else {
		m.vel = m.vel.Add(m.grid.Gradient(c).Scale(p.Gravity * ts))
		// Only pull toward the centre at low speed so slopes stay rollable.
		if m.Speed() < p.LowSpeed {
			m.vel = m.vel.Add(m.grid.CenteringForce(c, m.pos, p.Centering*ts))
		}
	}

	if m.noise > 0 && m.rand.Chance(m.noise*p.NoiseChance*ts) {
		magnitude := m.noise * p.NoiseImpulse * (0.5 + 0.5*m.rand.Float64())
		m.vel = m.vel.Add(geom.FromAngle(m.rand.Angle()).Scale(magnitude))
	}

	m.vel = m.vel.Scale(math.Pow(p.Friction, ts))
	m.vel = m.vel.ClampNorm(p.MaxSpeed)
	if !m.vel.IsValid() {
		m.vel = geom.Vec{}
	}

	m.pos = m.pos.Add(m.vel.Scale(ts))
}
