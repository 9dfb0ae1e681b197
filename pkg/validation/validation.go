// Package validation checks tuning files and sanitizes the inputs that cross
// into the simulation from presentation layers.
package validation

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/opd-ai/crystal-raiders/pkg/config"
	"github.com/opd-ai/crystal-raiders/pkg/economy"
	"github.com/opd-ai/crystal-raiders/pkg/physics"
)

// Limits on tuning values.
const (
	MaxArenaSize    = 8192
	MaxUpgradeIDLen = 32
	MaxMultiShot    = 5
)

// ValidateGameConfig checks every section of cfg and returns all problems
// joined together, or nil.
func ValidateGameConfig(cfg *config.GameConfig) error {
	if cfg == nil {
		return errors.New("config cannot be nil")
	}

	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	positive := func(name string, v float64) {
		check(v > 0 && !math.IsInf(v, 0), "%s must be positive, got %v", name, v)
	}
	nonNegative := func(name string, v float64) {
		check(v >= 0 && !math.IsInf(v, 0), "%s must not be negative, got %v", name, v)
	}
	ordered := func(name string, lo, hi float64) {
		check(lo <= hi, "%s range is inverted: %v > %v", name, lo, hi)
	}

	positive("arena width", cfg.Arena.Width)
	positive("arena height", cfg.Arena.Height)
	check(cfg.Arena.Width <= MaxArenaSize && cfg.Arena.Height <= MaxArenaSize,
		"arena must not exceed %d in either dimension", MaxArenaSize)

	p := cfg.Player
	positive("player radius", p.Radius)
	check(2*p.Radius < cfg.Arena.Width && 2*p.Radius < cfg.Arena.Height,
		"player radius %v does not fit the arena", p.Radius)
	nonNegative("player speed", p.Speed)
	positive("player max health", p.MaxHealth)
	nonNegative("player damage", p.Damage)
	positive("player fire rate", p.FireRate)
	positive("player bullet speed", p.BulletSpeed)
	check(p.MultiShot >= 1 && p.MultiShot <= MaxMultiShot,
		"player multiShot must be between 1 and %d, got %d", MaxMultiShot, p.MultiShot)
	nonNegative("player projectile spread", p.ProjectileSpread)
	nonNegative("player regen rate", p.RegenRate)

	e := cfg.Enemy
	positive("enemy base radius", e.BaseRadius)
	nonNegative("enemy base speed", e.BaseSpeed)
	positive("enemy base health", e.BaseHealth)
	nonNegative("enemy base damage", e.BaseDamage)
	ordered("enemy glow", e.MinGlow, e.MaxGlow)

	positive("projectile radius", cfg.Projectile.Radius)
	positive("projectile life", cfg.Projectile.Life)
	nonNegative("projectile despawn margin", cfg.Projectile.DespawnMargin)

	positive("pickup radius", cfg.Pickup.Radius)
	positive("pickup life", cfg.Pickup.Life)
	check(cfg.Pickup.DropChance >= 0 && cfg.Pickup.DropChance <= 1,
		"pickup drop chance must be within [0,1], got %v", cfg.Pickup.DropChance)
	ordered("pickup value", cfg.Pickup.MinValue, cfg.Pickup.MaxValue)

	pa := cfg.Particle
	ordered("particle radius", pa.MinRadius, pa.MaxRadius)
	ordered("particle speed", pa.MinSpeed, pa.MaxSpeed)
	ordered("particle life", pa.MinLife, pa.MaxLife)
	check(pa.Drag >= 0 && pa.Drag <= 1, "particle drag must be within [0,1], got %v", pa.Drag)
	check(pa.DeathBurst >= 0 && pa.HitParticle >= 0, "particle counts must not be negative")

	w := cfg.Wave
	check(w.BaseCount >= 0 && w.CountPerWave >= 0, "wave counts must not be negative")
	check(w.MaxCount >= 1, "wave max count must be at least 1, got %d", w.MaxCount)
	nonNegative("wave spawn margin", w.SpawnMargin)
	check(2*w.SpawnMargin < cfg.Arena.Width && 2*w.SpawnMargin < cfg.Arena.Height,
		"wave spawn margin %v does not fit the arena", w.SpawnMargin)
	nonNegative("wave level step", w.LevelPerWave)

	nonNegative("contact knockback", cfg.Contact.Knockback)
	nonNegative("contact damage factor", cfg.Contact.DamageFactor)
	check(cfg.MaxDelta > 0 && cfg.MaxDelta <= 1, "max delta must be within (0,1], got %v", cfg.MaxDelta)

	return errors.Join(errs...)
}

// ValidateUpgradeID normalizes id and checks it names a catalog entry.
func ValidateUpgradeID(id string) (string, error) {
	if !utf8.ValidString(id) {
		return "", fmt.Errorf("upgrade id contains invalid UTF-8 characters")
	}
	if len(id) > MaxUpgradeIDLen {
		return "", fmt.Errorf("upgrade id too long: %d characters (max %d)", len(id), MaxUpgradeIDLen)
	}
	normalized := strings.ToLower(strings.TrimSpace(id))
	if normalized == "" {
		return "", fmt.Errorf("upgrade id cannot be empty")
	}
	if _, ok := economy.Lookup(normalized); !ok {
		return "", fmt.Errorf("unknown upgrade id %q", normalized)
	}
	return normalized, nil
}

// ValidateAim rejects aim targets with NaN or infinite coordinates.
func ValidateAim(aim physics.Vector2D) error {
	if !aim.IsFinite() {
		return fmt.Errorf("aim target is not finite: (%v, %v)", aim.X, aim.Y)
	}
	return nil
}

// ClampDelta bounds a frame delta to [0, limit]. NaN becomes 0.
func ClampDelta(dt, limit float64) float64 {
	if math.IsNaN(dt) || dt < 0 {
		return 0
	}
	return math.Min(dt, limit)
}
