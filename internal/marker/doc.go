// Package marker implements the particle that rolls across a hexgrid
// landscape.
//
// A [Marker] has two motion modes sharing one state:
//
//   - continuous: gravity along the terrain gradient, low-speed centering,
//     random noise impulses, exponential friction and a speed cap
//   - discrete: eased glides between cell centres started by [Marker.MoveTo]
//
// Entering a terminal cell is absorbing: the next [Marker.Update] freezes the
// marker until it is re-bound with [Marker.BindToCell] or
// [Marker.SetPosition].
//
// # Metrics
//
// Once [MetricWindow] positions have been recorded the marker reports an
// oscillation amplitude and a recovery rate, both in [0, 1], plus the
// distance from a recorded equilibrium. Rising oscillation and falling
// recovery precede collapse.
//
// # Example
//
//	g := hexgrid.New(12, 10, 20)
//	g.ShapeValley(hexgrid.C(6, 5), -2)
//	m := marker.New(g, 6, 5)
//	m.SetNoise(0.3)
//	for frame := 0; frame < 600; frame++ {
//	    m.Update(1000.0 / 60)
//	}
package marker
