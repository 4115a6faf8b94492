package metrics

import (
	"github.com/san-kum/landscape/internal/sim"
)

// TimeToCollapse reports the simulated milliseconds until the marker first
// became terminal, or -1 if it never did.
type TimeToCollapse struct {
	name      string
	collapsed bool
	at        float64
}

func NewTimeToCollapse() *TimeToCollapse {
	return &TimeToCollapse{name: "time_to_collapse", at: -1}
}

func (c *TimeToCollapse) Name() string { return c.name }

func (c *TimeToCollapse) Observe(f sim.Frame) {
	if c.collapsed || !f.Marker.Terminal {
		return
	}
	c.collapsed = true
	c.at = f.TimeMs
}

func (c *TimeToCollapse) Value() float64 { return c.at }

func (c *TimeToCollapse) Reset() {
	c.collapsed = false
	c.at = -1
}
