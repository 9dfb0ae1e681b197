package entity

import "github.com/opd-ai/crystal-raiders/pkg/physics"

// Intent is the abstracted input for one tick. Presentation layers translate
// device events into this shape.
type Intent struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
	Fire  bool
}

// Direction returns the normalized movement direction of the intent.
func (i Intent) Direction() physics.Vector2D {
	return physics.Steer(i.Up, i.Down, i.Left, i.Right)
}
