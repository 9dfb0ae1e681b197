package entity

import "github.com/opd-ai/crystal-raiders/pkg/physics"

// Projectile is a player shot travelling in a straight line.
type Projectile struct {
	BaseEntity
	Damage float64
	Life   float64
	Color  string
}

// NewProjectile creates a projectile heading along angle at speed.
func NewProjectile(position physics.Vector2D, angle, speed, damage float64, spec ProjectileSpec) *Projectile {
	return &Projectile{
		BaseEntity: BaseEntity{
			ID:       GenerateID(),
			Position: position,
			Velocity: physics.FromAngle(angle, speed),
			Radius:   spec.Radius,
		},
		Damage: damage,
		Life:   spec.Life,
		Color:  spec.Color,
	}
}

// Update moves the projectile and burns down its life.
func (p *Projectile) Update(dt float64) {
	p.Life -= dt
	p.integrate(dt)
}

// Expired reports whether the projectile has outlived its life or left the
// arena by more than margin.
func (p *Projectile) Expired(arena physics.Bounds, margin float64) bool {
	return p.Life <= 0 || !arena.ContainsWithMargin(p.Position, margin)
}
