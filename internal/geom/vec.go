// Package geom provides the 2D vector type shared by the grid and the marker.
package geom

import "math"

// Vec is a point or displacement on the continuous canvas plane.
type Vec struct {
	X, Y float64
}

func V(x, y float64) Vec { return Vec{X: x, Y: y} }

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

func (v Vec) Scale(f float64) Vec { return Vec{v.X * f, v.Y * f} }

func (v Vec) Dot(o Vec) float64 { return v.X*o.X + v.Y*o.Y }

func (v Vec) Norm() float64 { return math.Hypot(v.X, v.Y) }

func (v Vec) NormSq() float64 { return v.X*v.X + v.Y*v.Y }

// Dist returns the Euclidean distance between two points.
func (v Vec) Dist(o Vec) float64 { return v.Sub(o).Norm() }

// Unit returns v scaled to length 1, or the zero vector when |v| is zero.
func (v Vec) Unit() Vec {
	n := v.Norm()
	if n == 0 {
		return Vec{}
	}
	return Vec{v.X / n, v.Y / n}
}

// ClampNorm limits |v| to max while preserving direction.
func (v Vec) ClampNorm(max float64) Vec {
	n := v.Norm()
	if n <= max || n == 0 {
		return v
	}
	return v.Scale(max / n)
}

// Lerp interpolates between v and o; t=0 yields v and t=1 yields o exactly.
func (v Vec) Lerp(o Vec, t float64) Vec {
	if t >= 1 {
		return o
	}
	return Vec{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// IsValid reports whether both components are finite.
func (v Vec) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// FromAngle returns the unit vector at angle a (radians).
func FromAngle(a float64) Vec {
	return Vec{math.Cos(a), math.Sin(a)}
}
