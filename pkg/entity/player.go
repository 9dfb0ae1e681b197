package entity

import (
	"math"

	"github.com/opd-ai/crystal-raiders/pkg/physics"
)

// Colors used by player-originated effects.
const (
	PlayerColor = "#62f4c9"
	HurtColor   = "#ff5e8c"
)

// PlayerStats is the stat block that upgrades mutate.
type PlayerStats struct {
	Speed            float64
	MaxHealth        float64
	Health           float64
	Damage           float64
	FireRate         float64 // cooldown seconds between volleys
	BulletSpeed      float64
	MultiShot        int
	ProjectileSpread float64 // radians between adjacent projectiles
	RegenRate        float64 // health per second
}

// ProjectileSpec describes projectiles created by the player.
type ProjectileSpec struct {
	Radius float64
	Life   float64
	Color  string
}

// Player is the single player-controlled actor. It persists for the whole
// run and is reset in place on a new run.
type Player struct {
	BaseEntity
	PlayerStats
	FireCooldown float64
	Projectile   ProjectileSpec
}

// NewPlayer creates a player at position with the given stats.
func NewPlayer(position physics.Vector2D, radius float64, stats PlayerStats, projectile ProjectileSpec) *Player {
	p := &Player{}
	p.Reset(position, radius, stats, projectile)
	return p
}

// Reset restores default state without replacing the Player value.
func (p *Player) Reset(position physics.Vector2D, radius float64, stats PlayerStats, projectile ProjectileSpec) {
	id := p.ID
	if id == 0 {
		id = GenerateID()
	}
	*p = Player{
		BaseEntity: BaseEntity{
			ID:       id,
			Position: position,
			Radius:   radius,
		},
		PlayerStats: stats,
		Projectile:  projectile,
	}
	if p.MultiShot < 1 {
		p.MultiShot = 1
	}
	p.Health = math.Min(p.Health, p.MaxHealth)
}

// Update applies movement intent, cooldown and passive regeneration.
func (p *Player) Update(dt float64, intent Intent, arena physics.Bounds) {
	move := intent.Direction()
	p.Position = p.Position.Add(move.Scale(p.Speed * dt))
	p.Position = arena.ClampCircle(p.Position, p.Radius)

	p.FireCooldown = math.Max(0, p.FireCooldown-dt)

	if p.Health < p.MaxHealth {
		p.Health = math.Min(p.MaxHealth, p.Health+p.RegenRate*dt)
	}
}

// Ready reports whether the weapon can fire.
func (p *Player) Ready() bool {
	return p.FireCooldown <= 0
}

// TryFire fires a volley towards aim if the weapon is ready. The volley is
// fanned symmetrically around the aim angle. A nil result means no shot.
func (p *Player) TryFire(aim physics.Vector2D) []*Projectile {
	if !p.Ready() {
		return nil
	}
	p.FireCooldown = p.FireRate

	angle := p.Position.AngleTo(aim)
	count := p.MultiShot
	volley := make([]*Projectile, 0, count)
	for i := 0; i < count; i++ {
		offset := (float64(i) - float64(count-1)/2) * p.ProjectileSpread
		volley = append(volley, NewProjectile(
			p.Position,
			angle+offset,
			p.BulletSpeed,
			p.Damage,
			p.Projectile,
		))
	}
	return volley
}

// TakeDamage reduces health, clamping at zero, and reports whether the
// player is down.
func (p *Player) TakeDamage(amount float64) bool {
	p.Health = math.Max(0, p.Health-amount)
	return p.Health <= 0
}

// Alive reports whether the player still has health.
func (p *Player) Alive() bool {
	return p.Health > 0
}
