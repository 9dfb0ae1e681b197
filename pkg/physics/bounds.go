package physics

import "math"

// Bounds is the rectangular arena, spanning [0, Width] x [0, Height].
type Bounds struct {
	Width  float64
	Height float64
}

// Center returns the middle of the arena.
func (b Bounds) Center() Vector2D {
	return Vector2D{X: b.Width / 2, Y: b.Height / 2}
}

// ClampCircle keeps a circle of the given radius fully inside the arena.
func (b Bounds) ClampCircle(p Vector2D, radius float64) Vector2D {
	return Vector2D{
		X: clamp(p.X, radius, b.Width-radius),
		Y: clamp(p.Y, radius, b.Height-radius),
	}
}

// ContainsWithMargin reports whether p lies within the arena expanded by
// margin on every side. Points exactly on the expanded edge count as inside.
func (b Bounds) ContainsWithMargin(p Vector2D, margin float64) bool {
	return p.X >= -margin && p.X <= b.Width+margin &&
		p.Y >= -margin && p.Y <= b.Height+margin
}

// Rect returns the arena expanded by margin as a centred Rect.
func (b Bounds) Rect(margin float64) Rect {
	return Rect{
		Center: b.Center(),
		Width:  b.Width + 2*margin,
		Height: b.Height + 2*margin,
	}
}

// clamp mirrors max(lo, min(hi, v)), so lo wins when the range is empty.
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
