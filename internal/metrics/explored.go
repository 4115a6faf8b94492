package metrics

import (
	"math"

	"github.com/san-kum/landscape/internal/sim"
)

// Explored is the highest percentage of revealed cells seen during a run.
type Explored struct {
	name string
	pct  float64
}

func NewExplored() *Explored {
	return &Explored{name: "explored"}
}

func (e *Explored) Name() string { return e.name }

func (e *Explored) Observe(f sim.Frame) {
	e.pct = math.Max(e.pct, f.Revealed)
}

func (e *Explored) Value() float64 { return e.pct }
func (e *Explored) Reset()         { e.pct = 0 }

// Standard returns a fresh set of the metrics reported by every command.
func Standard() []sim.Metric {
	return []sim.Metric{
		NewTimeToCollapse(),
		NewPeakOscillation(),
		NewMeanRecovery(),
		NewSettledFraction(0.5),
		NewMaxDistance(),
		NewExplored(),
	}
}
