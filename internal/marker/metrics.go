package marker

import (
	"math"

	"github.com/san-kum/landscape/internal/geom"
)

// Metrics are the early-warning indicators derived from recent motion.
type Metrics struct {
	// Oscillation is the positional standard deviation over the metric
	// window divided by the reference scale, in [0, 1].
	Oscillation float64 `json:"oscillation"`
	// Recovery is 1 - speed/maxSpeed, in [0, 1]. Sustained low values
	// indicate critical slowing down.
	Recovery float64 `json:"recovery"`
	// Distance is the Euclidean distance from the recorded equilibrium, or
	// 0 when none has been recorded.
	Distance float64 `json:"distance"`
}

func restMetrics() Metrics {
	return Metrics{Recovery: 1}
}

func (m *Marker) recomputeMetrics() {
	m.metrics.Distance = m.distanceFromEquilibrium()
	if m.history.Len() < MetricWindow {
		return
	}
	m.metrics.Oscillation = oscillationAmplitude(m.history.Tail(MetricWindow), m.params.OscillationScale)
	m.metrics.Recovery = recoveryRate(m.Speed(), m.params.MaxSpeed)
}

func (m *Marker) distanceFromEquilibrium() float64 {
	if !m.hasEquilibrium {
		return 0
	}
	d := m.pos.Dist(m.equilibrium)
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return 0
	}
	return d
}

// oscillationAmplitude returns sqrt(variance)/scale clamped to [0, 1], where
// variance is the mean squared distance from the window's centroid.
func oscillationAmplitude(window []geom.Vec, scale float64) float64 {
	if len(window) == 0 || !(scale > 0) {
		return 0
	}
	var mean geom.Vec
	for _, p := range window {
		mean = mean.Add(p)
	}
	mean = mean.Scale(1 / float64(len(window)))

	variance := 0.0
	for _, p := range window {
		variance += p.Sub(mean).NormSq()
	}
	variance /= float64(len(window))
	return clamp01(math.Sqrt(variance) / scale)
}

func recoveryRate(speed, maxSpeed float64) float64 {
	if !(maxSpeed > 0) {
		return 0
	}
	return clamp01(1 - speed/maxSpeed)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
