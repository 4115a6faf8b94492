// Package hexgrid provides the terrain of a resilience landscape: a fixed
// rectangular field of pointy-top hexagonal cells, each with an elevation
// in [-3, 3] and a terminal flag.
//
// The grid owns topology and every spatial query the other packages need:
//
//   - [Grid.Neighbors]: odd-r offset adjacency, no wraparound
//   - [Grid.ToPixel] / [Grid.CellAt]: closed-form hexagon geometry
//   - [Grid.Gradient]: unit direction of steepest descent, the force field
//     the marker rolls along
//   - [Grid.CenteringForce]: pull toward a cell centre for settling
//   - [Grid.Ring]: hex-ring enumeration used by the fog overlay
//
// Coordinate accessors never fail; out-of-range coordinates are reported
// through a second boolean result.
//
// # Thread Safety
//
// A Grid is single-writer. Callers that share one across goroutines must
// serialise access themselves.
package hexgrid
