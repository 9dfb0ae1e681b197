package entity

import (
	"math"

	"github.com/opd-ai/crystal-raiders/pkg/physics"
	"github.com/opd-ai/crystal-raiders/pkg/rng"
)

// ParticleSpec holds the randomisation ranges for cosmetic particles.
type ParticleSpec struct {
	MinRadius float64
	MaxRadius float64
	MinSpeed  float64
	MaxSpeed  float64
	MinLife   float64
	MaxLife   float64
	Drag      float64 // velocity retained per tick
}

// Particle is purely cosmetic and never affects gameplay.
type Particle struct {
	BaseEntity
	Color string
	Life  float64
	Drag  float64
}

// NewParticle creates a particle flying out of position in a random
// direction.
func NewParticle(position physics.Vector2D, color string, spec ParticleSpec, src *rng.Source) *Particle {
	angle := src.Range(0, 2*math.Pi)
	speed := src.Range(spec.MinSpeed, spec.MaxSpeed)
	return &Particle{
		BaseEntity: BaseEntity{
			ID:       GenerateID(),
			Position: position,
			Velocity: physics.FromAngle(angle, speed),
			Radius:   src.Range(spec.MinRadius, spec.MaxRadius),
		},
		Color: color,
		Life:  src.Range(spec.MinLife, spec.MaxLife),
		Drag:  spec.Drag,
	}
}

// Update ages the particle, moves it and applies per-tick drag.
func (p *Particle) Update(dt float64) {
	p.Life -= dt
	p.integrate(dt)
	p.Velocity = physics.ApplyDrag(p.Velocity, p.Drag)
}

// Expired reports whether the particle faded out.
func (p *Particle) Expired() bool {
	return p.Life <= 0
}

// Alpha returns the draw opacity, which follows remaining life.
func (p *Particle) Alpha() float64 {
	return math.Max(0, math.Min(1, p.Life))
}
