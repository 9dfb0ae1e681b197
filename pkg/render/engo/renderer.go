// pkg/render/engo/renderer.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/crystal-raiders/pkg/entity"
	"github.com/opd-ai/crystal-raiders/pkg/physics"
)

// Draw order, back to front.
const (
	zPickup float32 = iota + 1
	zParticle
	zProjectile
	zEnemy
	zBar
	zPlayer
	zHUD = 10
)

// Bar geometry in arena units.
const (
	enemyBarHeight  = 6
	enemyBarOffset  = 12 // above the enemy's top edge
	playerBarWidth  = 64
	playerBarHeight = 8
	playerBarOffset = 14 // below the player's bottom edge
	pickupBob       = 4
)

var (
	barBackground = color.NRGBA{A: 128}
	enemyBarFill  = color.NRGBA{R: 0x35, G: 0xc3, B: 0xff, A: 255}
	pickupFill    = color.NRGBA{R: 0x35, G: 0xc3, B: 0xff, A: 217}
)

// SpriteSink receives engo entities to draw. *common.RenderSystem is the
// production sink.
type SpriteSink interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

type spriteKind int

const (
	kindPlayer spriteKind = iota
	kindEnemy
	kindProjectile
	kindPickup
	kindParticle
	kindBarBack
	kindBarFill
)

type spriteKey struct {
	kind spriteKind
	id   entity.ID
}

type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
	seen bool
}

// EngoRenderer implements entity.Renderer on top of an engo render system.
// Each arena entity keeps one engo entity across frames; entities not drawn
// in a frame are removed in Present.
type EngoRenderer struct {
	sink    SpriteSink
	assets  *AssetManager
	sprites map[spriteKey]*sprite
}

// NewEngoRenderer creates a renderer that adds sprites to sink.
func NewEngoRenderer(sink SpriteSink, assets *AssetManager) *EngoRenderer {
	if assets == nil {
		assets = NewAssetManager()
	}
	return &EngoRenderer{
		sink:    sink,
		assets:  assets,
		sprites: make(map[spriteKey]*sprite),
	}
}

// Len returns the number of live sprites.
func (r *EngoRenderer) Len() int {
	return len(r.sprites)
}

// Clear implements entity.Renderer
func (r *EngoRenderer) Clear() {
	for _, s := range r.sprites {
		s.seen = false
	}
}

// Present implements entity.Renderer. Engo draws on its own schedule, so
// presenting only drops sprites whose entity is gone.
func (r *EngoRenderer) Present() {
	for key, s := range r.sprites {
		if !s.seen {
			r.sink.Remove(s.BasicEntity)
			delete(r.sprites, key)
		}
	}
}

// RenderPlayer implements entity.Renderer
func (r *EngoRenderer) RenderPlayer(player *entity.Player) {
	r.disc(spriteKey{kindPlayer, player.ID}, player.Position, player.Radius, r.assets.Glow(),
		r.assets.Color(entity.PlayerColor), zPlayer)

	fraction := 0.0
	if player.MaxHealth > 0 {
		fraction = player.Health / player.MaxHealth
	}
	top := player.Position.Y + player.Radius + playerBarOffset
	r.bar(player.ID, player.Position.X-playerBarWidth/2, top, playerBarWidth, playerBarHeight,
		fraction, r.assets.Color(entity.PlayerColor))
}

// RenderEnemy implements entity.Renderer
func (r *EngoRenderer) RenderEnemy(enemy *entity.Enemy) {
	r.disc(spriteKey{kindEnemy, enemy.ID}, enemy.Position, enemy.Radius, r.assets.Glow(),
		r.assets.Color(enemy.Color), zEnemy)

	width := enemy.Radius * 2
	top := enemy.Position.Y - enemy.Radius - enemyBarOffset
	r.bar(enemy.ID, enemy.Position.X-enemy.Radius, top, width, enemyBarHeight,
		enemy.HealthFraction(), enemyBarFill)
}

// RenderProjectile implements entity.Renderer
func (r *EngoRenderer) RenderProjectile(projectile *entity.Projectile) {
	r.disc(spriteKey{kindProjectile, projectile.ID}, projectile.Position, projectile.Radius,
		common.Circle{}, r.assets.Color(projectile.Color), zProjectile)
}

// RenderPickup implements entity.Renderer. Pickups bob on their float phase.
func (r *EngoRenderer) RenderPickup(pickup *entity.Pickup) {
	pos := pickup.Position
	pos.Y += pickup.Bob(pickupBob)
	r.disc(spriteKey{kindPickup, pickup.ID}, pos, pickup.Radius, common.Circle{}, pickupFill, zPickup)
}

// RenderParticle implements entity.Renderer. Particles fade with life.
func (r *EngoRenderer) RenderParticle(particle *entity.Particle) {
	c := WithAlpha(r.assets.Color(particle.Color), particle.Alpha())
	r.disc(spriteKey{kindParticle, particle.ID}, particle.Position, particle.Radius, common.Circle{}, c, zParticle)
}

// disc places a round sprite centred on pos.
func (r *EngoRenderer) disc(key spriteKey, pos physics.Vector2D, radius float64, drawable common.Drawable, c color.Color, z float32) {
	s := r.getOrCreate(key, drawable, z)
	s.Drawable = drawable
	s.Color = c
	size := float32(radius * 2)
	s.Position = engo.Point{X: float32(pos.X - radius), Y: float32(pos.Y - radius)}
	s.Width, s.Height = size, size
	s.Scale = engo.Point{X: 1, Y: 1}
	if w := drawable.Width(); w > 0 {
		s.Scale = engo.Point{X: size / w, Y: size / drawable.Height()}
	}
}

// bar places a two-part health bar with its top-left corner at (x, y).
func (r *EngoRenderer) bar(id entity.ID, x, y, width, height, fraction float64, fill color.Color) {
	fraction = max(0, min(1, fraction))

	back := r.getOrCreate(spriteKey{kindBarBack, id}, common.Rectangle{}, zBar)
	back.Color = barBackground
	back.Position = engo.Point{X: float32(x), Y: float32(y)}
	back.Width, back.Height = float32(width), float32(height)

	front := r.getOrCreate(spriteKey{kindBarFill, id}, common.Rectangle{}, zBar+0.5)
	front.Color = fill
	front.Position = back.Position
	front.Width, front.Height = float32(width*fraction), float32(height)
}

func (r *EngoRenderer) getOrCreate(key spriteKey, drawable common.Drawable, z float32) *sprite {
	s, ok := r.sprites[key]
	if !ok {
		s = &sprite{BasicEntity: ecs.NewBasic()}
		s.Drawable = drawable
		s.Scale = engo.Point{X: 1, Y: 1}
		s.SetZIndex(z)
		r.sprites[key] = s
		r.sink.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	}
	s.seen = true
	return s
}
