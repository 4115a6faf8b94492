package metrics

import (
	"math"

	"github.com/san-kum/landscape/internal/sim"
)

type PeakOscillation struct {
	name string
	peak float64
}

func NewPeakOscillation() *PeakOscillation {
	return &PeakOscillation{name: "peak_oscillation"}
}

func (p *PeakOscillation) Name() string { return p.name }

func (p *PeakOscillation) Observe(f sim.Frame) {
	p.peak = math.Max(p.peak, f.Marker.Metrics.Oscillation)
}

func (p *PeakOscillation) Value() float64 { return p.peak }
func (p *PeakOscillation) Reset()         { p.peak = 0 }

// MeanRecovery averages the marker's recovery rate over the frames it was
// still alive.
type MeanRecovery struct {
	name    string
	sum     float64
	samples int
}

func NewMeanRecovery() *MeanRecovery {
	return &MeanRecovery{name: "mean_recovery"}
}

func (m *MeanRecovery) Name() string { return m.name }

func (m *MeanRecovery) Observe(f sim.Frame) {
	if f.Marker.Terminal {
		return
	}
	m.sum += f.Marker.Metrics.Recovery
	m.samples++
}

func (m *MeanRecovery) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanRecovery) Reset() {
	m.sum = 0
	m.samples = 0
}

// SettledFraction is the share of frames with the marker slower than
// threshold px per frame.
type SettledFraction struct {
	name      string
	threshold float64
	settled   int
	samples   int
}

func NewSettledFraction(threshold float64) *SettledFraction {
	return &SettledFraction{
		name:      "settled_fraction",
		threshold: threshold,
	}
}

func (s *SettledFraction) Name() string {
	return s.name
}

func (s *SettledFraction) Observe(f sim.Frame) {
	s.samples++
	if f.Marker.Velocity.Norm() < s.threshold {
		s.settled++
	}
}

func (s *SettledFraction) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return float64(s.settled) / float64(s.samples)
}

func (s *SettledFraction) Reset() {
	s.settled = 0
	s.samples = 0
}

// MaxDistance is the furthest the marker strayed from its equilibrium.
type MaxDistance struct {
	name string
	max  float64
}

func NewMaxDistance() *MaxDistance {
	return &MaxDistance{name: "max_distance"}
}

func (d *MaxDistance) Name() string { return d.name }

func (d *MaxDistance) Observe(f sim.Frame) {
	d.max = math.Max(d.max, f.Marker.Metrics.Distance)
}

func (d *MaxDistance) Value() float64 { return d.max }
func (d *MaxDistance) Reset()         { d.max = 0 }
