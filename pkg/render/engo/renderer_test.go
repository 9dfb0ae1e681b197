// pkg/render/engo/renderer_test.go
package engo

import (
	"image/color"
	"math"
	"testing"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/crystal-raiders/pkg/entity"
	"github.com/opd-ai/crystal-raiders/pkg/physics"
)

type fakeSink struct {
	added   []*ecs.BasicEntity
	removed []ecs.BasicEntity
}

func newFakeSink() *fakeSink {
	return &fakeSink{}
}

func (s *fakeSink) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	s.added = append(s.added, basic)
}

func (s *fakeSink) Remove(basic ecs.BasicEntity) {
	s.removed = append(s.removed, basic)
}

func testPlayer(health float64) *entity.Player {
	return &entity.Player{
		BaseEntity:  entity.BaseEntity{ID: 1, Position: physics.Vector2D{X: 100, Y: 100}, Radius: 18},
		PlayerStats: entity.PlayerStats{Health: health, MaxHealth: 100},
	}
}

func TestEngoRenderer_SpriteLifecycle(t *testing.T) {
	sink := newFakeSink()
	r := NewEngoRenderer(sink, nil)

	enemy := &entity.Enemy{
		BaseEntity: entity.BaseEntity{ID: 2, Position: physics.Vector2D{X: 50, Y: 60}, Radius: 20},
		Health:     50, MaxHealth: 100, Color: "#ff4d6d",
	}
	shot := &entity.Projectile{BaseEntity: entity.BaseEntity{ID: 3, Radius: 5}, Color: entity.PlayerColor}

	r.Clear()
	r.RenderPlayer(testPlayer(100))
	r.RenderEnemy(enemy)
	r.RenderProjectile(shot)
	r.Present()

	// player disc and bar pair, enemy disc and bar pair, projectile
	if r.Len() != 7 || len(sink.added) != 7 {
		t.Fatalf("expected 7 sprites, got %d live and %d added", r.Len(), len(sink.added))
	}

	r.Clear()
	r.RenderPlayer(testPlayer(90))
	r.RenderEnemy(enemy)
	r.Present()

	if len(sink.added) != 7 {
		t.Errorf("redrawing existing entities should reuse sprites, added %d", len(sink.added))
	}
	if len(sink.removed) != 1 || r.Len() != 6 {
		t.Errorf("expected the projectile sprite dropped, removed %d live %d", len(sink.removed), r.Len())
	}
}

func TestEngoRenderer_Bars(t *testing.T) {
	tests := []struct {
		name      string
		health    float64
		wantWidth float32
	}{
		{name: "full", health: 100, wantWidth: playerBarWidth},
		{name: "half", health: 50, wantWidth: playerBarWidth / 2},
		{name: "overhealed clamps", health: 150, wantWidth: playerBarWidth},
		{name: "dead", health: -5, wantWidth: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewEngoRenderer(newFakeSink(), nil)
			p := testPlayer(tt.health)
			r.RenderPlayer(p)

			back := r.sprites[spriteKey{kindBarBack, p.ID}]
			fill := r.sprites[spriteKey{kindBarFill, p.ID}]
			if back == nil || fill == nil {
				t.Fatal("health bar sprites missing")
			}
			if back.Width != playerBarWidth {
				t.Errorf("background width = %v", back.Width)
			}
			if fill.Width != tt.wantWidth {
				t.Errorf("fill width = %v, want %v", fill.Width, tt.wantWidth)
			}
			wantY := float32(p.Position.Y + p.Radius + playerBarOffset)
			if back.Position.Y != wantY {
				t.Errorf("bar top = %v, want %v", back.Position.Y, wantY)
			}
		})
	}
}

func TestEngoRenderer_EnemyBarAbove(t *testing.T) {
	r := NewEngoRenderer(newFakeSink(), nil)
	e := &entity.Enemy{
		BaseEntity: entity.BaseEntity{ID: 9, Position: physics.Vector2D{X: 200, Y: 200}, Radius: 15},
		Health:     25, MaxHealth: 100, Color: "#ff4d6d",
	}
	r.RenderEnemy(e)

	fill := r.sprites[spriteKey{kindBarFill, e.ID}]
	if fill.Width != 7.5 {
		t.Errorf("fill width = %v, want 7.5", fill.Width)
	}
	if fill.Position.X != 185 || fill.Position.Y != 173 {
		t.Errorf("bar at %v, want (185, 173)", fill.Position)
	}
	disc := r.sprites[spriteKey{kindEnemy, e.ID}]
	if disc.Position.X != 185 || disc.Width != 30 {
		t.Errorf("disc at %v size %v", disc.Position, disc.Width)
	}
}

func TestEngoRenderer_ParticleFades(t *testing.T) {
	r := NewEngoRenderer(newFakeSink(), nil)
	p := &entity.Particle{BaseEntity: entity.BaseEntity{ID: 4, Radius: 2}, Color: "#ffffff", Life: 0.5}
	r.RenderParticle(p)

	c, ok := r.sprites[spriteKey{kindParticle, p.ID}].Color.(color.NRGBA)
	if !ok {
		t.Fatal("particle colour is not NRGBA")
	}
	if math.Abs(float64(c.A)-127.5) > 1 {
		t.Errorf("alpha = %d, want about half", c.A)
	}
}

func TestEngoRenderer_PickupBobs(t *testing.T) {
	r := NewEngoRenderer(newFakeSink(), nil)
	p := &entity.Pickup{
		BaseEntity: entity.BaseEntity{ID: 5, Position: physics.Vector2D{X: 10, Y: 10}, Radius: 6},
		FloatPhase: math.Pi / 2,
	}
	r.RenderPickup(p)

	s := r.sprites[spriteKey{kindPickup, p.ID}]
	if want := float32(10 + pickupBob - 6); math.Abs(float64(s.Position.Y-want)) > 1e-4 {
		t.Errorf("pickup top = %v, want %v", s.Position.Y, want)
	}
}
