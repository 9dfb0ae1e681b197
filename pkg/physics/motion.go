package physics

// Integrate advances a position by velocity over dt.
func Integrate(position, velocity Vector2D, dt float64) Vector2D {
	return position.Add(velocity.Scale(dt))
}

// ApplyDrag scales velocity by a per-tick retention factor.
func ApplyDrag(velocity Vector2D, retain float64) Vector2D {
	return velocity.Scale(retain)
}

// MoveToward moves position a fixed distance along the unit vector towards
// target. A zero delta leaves the position unchanged.
func MoveToward(position, target Vector2D, distance float64) Vector2D {
	delta := target.Sub(position)
	if delta.X == 0 && delta.Y == 0 {
		return position
	}
	return position.Add(delta.Normalize().Scale(distance))
}

// Steer turns up/down/left/right flags into a unit direction, or the zero
// vector when no flag (or only opposing flags) is set.
func Steer(up, down, left, right bool) Vector2D {
	var dir Vector2D
	if up {
		dir.Y--
	}
	if down {
		dir.Y++
	}
	if left {
		dir.X--
	}
	if right {
		dir.X++
	}
	return dir.Normalize()
}
