// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/crystal-raiders/pkg/entity"
	"github.com/opd-ai/crystal-raiders/pkg/logging"
)

// NullRenderer is a headless implementation of entity.Renderer that logs
// every call at debug level.
type NullRenderer struct {
	logger *logging.Logger
	frames int
}

// NewNullRenderer creates a new NullRenderer. A nil logger discards output.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &NullRenderer{
		logger: logger.Component("null_renderer"),
	}
}

// Frames returns the number of frames presented so far.
func (d *NullRenderer) Frames() int {
	return d.frames
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear() {
	d.logger.Debug(context.Background(), "Clear called")
}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() {
	d.frames++
	d.logger.Debug(context.Background(), "Present called", "frame", d.frames)
}

// RenderPlayer implements entity.Renderer.
func (d *NullRenderer) RenderPlayer(player *entity.Player) {
	ctx := context.Background()
	if player == nil {
		d.logger.Debug(ctx, "RenderPlayer called with nil player")
		return
	}
	d.logger.Debug(ctx, "RenderPlayer called",
		"player_id", player.ID,
		"health", player.Health,
		"max_health", player.MaxHealth,
	)
}

// RenderEnemy implements entity.Renderer.
func (d *NullRenderer) RenderEnemy(enemy *entity.Enemy) {
	ctx := context.Background()
	if enemy == nil {
		d.logger.Debug(ctx, "RenderEnemy called with nil enemy")
		return
	}
	d.logger.Debug(ctx, "RenderEnemy called",
		"enemy_id", enemy.ID,
		"level", enemy.Level,
		"health_fraction", enemy.HealthFraction(),
	)
}

// RenderProjectile implements entity.Renderer.
func (d *NullRenderer) RenderProjectile(projectile *entity.Projectile) {
	ctx := context.Background()
	if projectile == nil {
		d.logger.Debug(ctx, "RenderProjectile called with nil projectile")
		return
	}
	d.logger.Debug(ctx, "RenderProjectile called",
		"projectile_id", projectile.ID,
		"life", projectile.Life,
	)
}

// RenderPickup implements entity.Renderer.
func (d *NullRenderer) RenderPickup(pickup *entity.Pickup) {
	ctx := context.Background()
	if pickup == nil {
		d.logger.Debug(ctx, "RenderPickup called with nil pickup")
		return
	}
	d.logger.Debug(ctx, "RenderPickup called",
		"pickup_id", pickup.ID,
		"value", pickup.Value,
	)
}

// RenderParticle implements entity.Renderer.
func (d *NullRenderer) RenderParticle(particle *entity.Particle) {
	if particle == nil {
		return
	}
	d.logger.Debug(context.Background(), "RenderParticle called", "particle_id", particle.ID)
}

// NullRendererInstance is a global instance of NullRenderer for convenience.
var NullRendererInstance entity.Renderer = NewNullRenderer(nil)
