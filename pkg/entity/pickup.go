package entity

import (
	"math"

	"github.com/opd-ai/crystal-raiders/pkg/physics"
	"github.com/opd-ai/crystal-raiders/pkg/rng"
)

// PickupSpec describes dropped currency crystals.
type PickupSpec struct {
	Radius float64
	Life   float64
}

// Pickup is a crystal worth Value credits.
type Pickup struct {
	BaseEntity
	Value      float64
	Life       float64
	FloatPhase float64
}

// NewPickup creates a pickup with a random float-animation phase.
func NewPickup(position physics.Vector2D, value float64, spec PickupSpec, src *rng.Source) *Pickup {
	return &Pickup{
		BaseEntity: BaseEntity{
			ID:       GenerateID(),
			Position: position,
			Radius:   spec.Radius,
		},
		Value:      value,
		Life:       spec.Life,
		FloatPhase: src.Range(0, 2*math.Pi),
	}
}

// Update ages the pickup and advances its bobbing animation.
func (p *Pickup) Update(dt float64) {
	p.Life -= dt
	p.FloatPhase += 2 * dt
}

// Expired reports whether the pickup timed out.
func (p *Pickup) Expired() bool {
	return p.Life <= 0
}

// Bob returns the vertical draw offset for the float animation.
func (p *Pickup) Bob(amplitude float64) float64 {
	return math.Sin(p.FloatPhase) * amplitude
}
