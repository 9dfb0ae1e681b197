// pkg/entity/entity.go
package entity

import (
	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/crystal-raiders/pkg/physics"
)

// ID is a unique identifier for an entity
type ID uint64

// GenerateID returns a process-unique entity ID. IDs come from the engo ecs
// counter so presentation adapters built on engo can reuse them directly.
func GenerateID() ID {
	basic := ecs.NewBasic()
	return ID(basic.ID())
}

// Entity is the base interface for all arena objects
type Entity interface {
	GetID() ID
	GetPosition() physics.Vector2D
	GetCollider() physics.Circle
	Render(r Renderer)
}

// BaseEntity contains common state for all entities
type BaseEntity struct {
	ID       ID
	Position physics.Vector2D
	Velocity physics.Vector2D
	Radius   float64
}

// GetID returns the entity's unique identifier
func (e *BaseEntity) GetID() ID {
	return e.ID
}

// GetPosition returns the entity's position
func (e *BaseEntity) GetPosition() physics.Vector2D {
	return e.Position
}

// GetCollider returns the entity's collision shape
func (e *BaseEntity) GetCollider() physics.Circle {
	return physics.Circle{Center: e.Position, Radius: e.Radius}
}

// integrate moves the entity along its velocity.
func (e *BaseEntity) integrate(dt float64) {
	e.Position = physics.Integrate(e.Position, e.Velocity, dt)
}

func (p *Player) Render(r Renderer) {
	r.RenderPlayer(p)
}

func (e *Enemy) Render(r Renderer) {
	r.RenderEnemy(e)
}

func (p *Projectile) Render(r Renderer) {
	r.RenderProjectile(p)
}

func (p *Pickup) Render(r Renderer) {
	r.RenderPickup(p)
}

func (p *Particle) Render(r Renderer) {
	r.RenderParticle(p)
}
