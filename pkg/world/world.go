// Package world owns the live entity collections of an arena run and
// advances them by one tick.
package world

import (
	"github.com/opd-ai/crystal-raiders/pkg/config"
	"github.com/opd-ai/crystal-raiders/pkg/entity"
	"github.com/opd-ai/crystal-raiders/pkg/physics"
	"github.com/opd-ai/crystal-raiders/pkg/rng"
)

// Config holds the entity tuning the World needs.
type Config struct {
	Arena            physics.Bounds
	PlayerRadius     float64
	PlayerStats      entity.PlayerStats
	Projectile       entity.ProjectileSpec
	ProjectileMargin float64
	Enemy            entity.EnemyScaling
	Pickup           entity.PickupSpec
	Particle         entity.ParticleSpec
}

// ConfigFrom extracts the World tuning from a game configuration.
func ConfigFrom(cfg *config.GameConfig) Config {
	return Config{
		Arena:        physics.Bounds{Width: cfg.Arena.Width, Height: cfg.Arena.Height},
		PlayerRadius: cfg.Player.Radius,
		PlayerStats: entity.PlayerStats{
			Speed:            cfg.Player.Speed,
			MaxHealth:        cfg.Player.MaxHealth,
			Health:           cfg.Player.MaxHealth,
			Damage:           cfg.Player.Damage,
			FireRate:         cfg.Player.FireRate,
			BulletSpeed:      cfg.Player.BulletSpeed,
			MultiShot:        cfg.Player.MultiShot,
			ProjectileSpread: cfg.Player.ProjectileSpread,
			RegenRate:        cfg.Player.RegenRate,
		},
		Projectile: entity.ProjectileSpec{
			Radius: cfg.Projectile.Radius,
			Life:   cfg.Projectile.Life,
			Color:  cfg.Projectile.Color,
		},
		ProjectileMargin: cfg.Projectile.DespawnMargin,
		Enemy: entity.EnemyScaling{
			BaseRadius:     cfg.Enemy.BaseRadius,
			RadiusPerLevel: cfg.Enemy.RadiusPerLevel,
			BaseSpeed:      cfg.Enemy.BaseSpeed,
			SpeedPerLevel:  cfg.Enemy.SpeedPerLevel,
			BaseHealth:     cfg.Enemy.BaseHealth,
			HealthPerLevel: cfg.Enemy.HealthPerLevel,
			BaseDamage:     cfg.Enemy.BaseDamage,
			DamagePerLevel: cfg.Enemy.DamagePerLevel,
			MinGlow:        cfg.Enemy.MinGlow,
			MaxGlow:        cfg.Enemy.MaxGlow,
		},
		Pickup: entity.PickupSpec{
			Radius: cfg.Pickup.Radius,
			Life:   cfg.Pickup.Life,
		},
		Particle: entity.ParticleSpec{
			MinRadius: cfg.Particle.MinRadius,
			MaxRadius: cfg.Particle.MaxRadius,
			MinSpeed:  cfg.Particle.MinSpeed,
			MaxSpeed:  cfg.Particle.MaxSpeed,
			MinLife:   cfg.Particle.MinLife,
			MaxLife:   cfg.Particle.MaxLife,
			Drag:      cfg.Particle.Drag,
		},
	}
}

// World owns the player and every entity collection. Collection order is
// insertion order and is significant for collision tie-breaks.
type World struct {
	cfg Config
	rng *rng.Source

	Player      *entity.Player
	Enemies     []*entity.Enemy
	Projectiles []*entity.Projectile
	Pickups     []*entity.Pickup
	Particles   []*entity.Particle
}

// New creates a World with a default player at the arena centre.
func New(cfg Config, src *rng.Source) *World {
	w := &World{cfg: cfg, rng: src}
	w.Player = entity.NewPlayer(cfg.Arena.Center(), cfg.PlayerRadius, cfg.PlayerStats, cfg.Projectile)
	return w
}

// Config returns the tuning the World was built with.
func (w *World) Config() Config {
	return w.cfg
}

// Arena returns the arena bounds.
func (w *World) Arena() physics.Bounds {
	return w.cfg.Arena
}

// Rand returns the injected random source.
func (w *World) Rand() *rng.Source {
	return w.rng
}

// Reset clears every collection and resets the player in place.
func (w *World) Reset() {
	w.Enemies = drop(w.Enemies)
	w.Projectiles = drop(w.Projectiles)
	w.Pickups = drop(w.Pickups)
	w.Particles = drop(w.Particles)
	w.Player.Reset(w.cfg.Arena.Center(), w.cfg.PlayerRadius, w.cfg.PlayerStats, w.cfg.Projectile)
}

// Advance runs one tick of entity updates and expiry removal. It returns the
// projectiles fired this tick, if any.
func (w *World) Advance(dt float64, intent entity.Intent, aim physics.Vector2D) []*entity.Projectile {
	w.Player.Update(dt, intent, w.cfg.Arena)

	var fired []*entity.Projectile
	if intent.Fire {
		fired = w.Player.TryFire(aim)
		w.Projectiles = append(w.Projectiles, fired...)
	}

	target := w.Player.Position
	for _, e := range w.Enemies {
		e.Update(dt, target)
	}

	for _, p := range w.Projectiles {
		p.Update(dt)
	}
	w.Projectiles = Retain(w.Projectiles, func(p *entity.Projectile) bool {
		return !p.Expired(w.cfg.Arena, w.cfg.ProjectileMargin)
	})

	for _, p := range w.Particles {
		p.Update(dt)
	}
	w.Particles = Retain(w.Particles, func(p *entity.Particle) bool {
		return !p.Expired()
	})

	for _, p := range w.Pickups {
		p.Update(dt)
	}
	w.Pickups = Retain(w.Pickups, func(p *entity.Pickup) bool {
		return !p.Expired()
	})

	return fired
}

// SpawnEnemy adds an enemy of the given level at position.
func (w *World) SpawnEnemy(position physics.Vector2D, level float64) *entity.Enemy {
	e := entity.NewEnemy(position, level, w.cfg.Enemy, w.rng)
	w.Enemies = append(w.Enemies, e)
	return e
}

// EmitParticles adds count particles at position.
func (w *World) EmitParticles(position physics.Vector2D, color string, count int) {
	for i := 0; i < count; i++ {
		w.Particles = append(w.Particles, entity.NewParticle(position, color, w.cfg.Particle, w.rng))
	}
}

// DropPickup adds a crystal worth value at position.
func (w *World) DropPickup(position physics.Vector2D, value float64) *entity.Pickup {
	p := entity.NewPickup(position, value, w.cfg.Pickup, w.rng)
	w.Pickups = append(w.Pickups, p)
	return p
}

// Retain filters s in place, keeping elements for which keep returns true
// and preserving their order. Dropped tail slots are zeroed.
func Retain[T any](s []T, keep func(T) bool) []T {
	n := 0
	for _, v := range s {
		if keep(v) {
			s[n] = v
			n++
		}
	}
	var zero T
	for i := n; i < len(s); i++ {
		s[i] = zero
	}
	return s[:n]
}

func drop[T any](s []T) []T {
	return Retain(s, func(T) bool { return false })
}
