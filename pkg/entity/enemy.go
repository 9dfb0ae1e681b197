package entity

import (
	"github.com/opd-ai/crystal-raiders/pkg/physics"
	"github.com/opd-ai/crystal-raiders/pkg/rng"
)

// EnemyColors are the color tags enemies are drawn from.
var EnemyColors = []string{"#35c3ff", "#62f4c9", "#ff5e8c"}

// EnemyScaling holds the linear per-level formulas for enemy stats.
type EnemyScaling struct {
	BaseRadius     float64
	RadiusPerLevel float64
	BaseSpeed      float64
	SpeedPerLevel  float64
	BaseHealth     float64
	HealthPerLevel float64
	BaseDamage     float64
	DamagePerLevel float64
	MinGlow        float64
	MaxGlow        float64
}

// Enemy pursues the player. Health may go negative transiently before the
// collision pass removes it.
type Enemy struct {
	BaseEntity
	Speed     float64
	Health    float64
	MaxHealth float64
	Damage    float64
	Color     string
	Glow      float64
	Level     float64
}

// NewEnemy creates an enemy at position with stats scaled by level.
func NewEnemy(position physics.Vector2D, level float64, scaling EnemyScaling, src *rng.Source) *Enemy {
	health := scaling.BaseHealth + level*scaling.HealthPerLevel
	return &Enemy{
		BaseEntity: BaseEntity{
			ID:       GenerateID(),
			Position: position,
			Radius:   scaling.BaseRadius + level*scaling.RadiusPerLevel,
		},
		Speed:     scaling.BaseSpeed + level*scaling.SpeedPerLevel,
		Health:    health,
		MaxHealth: health,
		Damage:    scaling.BaseDamage + level*scaling.DamagePerLevel,
		Color:     rng.Choice(src, EnemyColors),
		Glow:      src.Range(scaling.MinGlow, scaling.MaxGlow),
		Level:     level,
	}
}

// Update moves the enemy straight towards target at constant speed.
func (e *Enemy) Update(dt float64, target physics.Vector2D) {
	e.Position = physics.MoveToward(e.Position, target, e.Speed*dt)
}

// Hit applies damage and reports whether the enemy is dead.
func (e *Enemy) Hit(damage float64) bool {
	e.Health -= damage
	return e.Dead()
}

// Dead reports whether health has run out.
func (e *Enemy) Dead() bool {
	return e.Health <= 0
}

// HealthFraction returns health/maxHealth clamped to [0,1] for health bars.
func (e *Enemy) HealthFraction() float64 {
	if e.MaxHealth <= 0 {
		return 0
	}
	f := e.Health / e.MaxHealth
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
