package world

import (
	"testing"

	"github.com/opd-ai/crystal-raiders/pkg/config"
	"github.com/opd-ai/crystal-raiders/pkg/entity"
	"github.com/opd-ai/crystal-raiders/pkg/physics"
	"github.com/opd-ai/crystal-raiders/pkg/rng"
)

func newTestWorld(seed uint64) *World {
	return New(ConfigFrom(config.DefaultConfig()), rng.New(seed))
}

func TestNew_PlayerAtCentre(t *testing.T) {
	w := newTestWorld(1)
	if w.Player.Position != (physics.Vector2D{X: 480, Y: 320}) {
		t.Errorf("player at %+v, want arena centre", w.Player.Position)
	}
	if w.Player.Health != 120 || w.Player.MultiShot != 1 {
		t.Errorf("player stats not defaulted: %+v", w.Player.PlayerStats)
	}
}

func TestRetain_PreservesOrder(t *testing.T) {
	s := []int{1, 2, 3, 4, 5, 6}
	got := Retain(s, func(v int) bool { return v%2 == 0 })
	want := []int{2, 4, 6}
	if len(got) != len(want) {
		t.Fatalf("Retain() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Retain()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
	if s[3] != 0 || s[5] != 0 {
		t.Errorf("tail not zeroed: %v", s)
	}
}

func TestAdvance_FireRespectsCooldown(t *testing.T) {
	w := newTestWorld(2)
	aim := physics.Vector2D{X: 900, Y: 320}
	fire := entity.Intent{Fire: true}

	if fired := w.Advance(0.016, fire, aim); len(fired) != 1 {
		t.Fatalf("first tick fired %d, want 1", len(fired))
	}
	if fired := w.Advance(0.016, fire, aim); len(fired) != 0 {
		t.Fatalf("second tick fired %d, want 0", len(fired))
	}
	if len(w.Projectiles) != 1 {
		t.Errorf("projectiles = %d, want 1", len(w.Projectiles))
	}
}

func TestAdvance_ProjectileExpires(t *testing.T) {
	w := newTestWorld(3)
	w.Advance(0.016, entity.Intent{Fire: true}, physics.Vector2D{X: 480, Y: 0})

	// 460 px/s upward from y=320 leaves the arena plus margin well before
	// the 1.6s life runs out.
	for i := 0; i < 20; i++ {
		w.Advance(0.1, entity.Intent{}, physics.Vector2D{})
	}
	if len(w.Projectiles) != 0 {
		t.Errorf("projectiles = %d, want 0", len(w.Projectiles))
	}
}

func TestAdvance_EnemiesPursuePlayer(t *testing.T) {
	w := newTestWorld(4)
	e := w.SpawnEnemy(physics.Vector2D{X: 0, Y: 320}, 0)
	before := e.Position.Distance(w.Player.Position)
	w.Advance(0.1, entity.Intent{}, physics.Vector2D{})
	after := e.Position.Distance(w.Player.Position)
	if before-after < 5.9 {
		t.Errorf("enemy closed %v px, want 6", before-after)
	}
}

func TestAdvance_ParticlesAndPickupsExpire(t *testing.T) {
	w := newTestWorld(5)
	w.EmitParticles(physics.Vector2D{X: 100, Y: 100}, "#fff", 12)
	w.DropPickup(physics.Vector2D{X: 200, Y: 200}, 30)

	if len(w.Particles) != 12 || len(w.Pickups) != 1 {
		t.Fatalf("emitted %d particles and %d pickups", len(w.Particles), len(w.Pickups))
	}

	w.Advance(0.1, entity.Intent{}, physics.Vector2D{})
	for i := 0; i < 9; i++ {
		w.Advance(0.1, entity.Intent{}, physics.Vector2D{})
	}
	if len(w.Particles) != 0 {
		t.Errorf("particles = %d after 1s, want 0", len(w.Particles))
	}
	if len(w.Pickups) != 1 {
		t.Errorf("pickup expired early")
	}

	for i := 0; i < 51; i++ {
		w.Advance(0.1, entity.Intent{}, physics.Vector2D{})
	}
	if len(w.Pickups) != 0 {
		t.Errorf("pickups = %d after 6.1s, want 0", len(w.Pickups))
	}
}

func TestReset(t *testing.T) {
	w := newTestWorld(6)
	id := w.Player.ID
	w.SpawnEnemy(physics.Vector2D{}, 1)
	w.EmitParticles(physics.Vector2D{}, "#fff", 3)
	w.DropPickup(physics.Vector2D{}, 20)
	w.Advance(0.016, entity.Intent{Fire: true, Left: true}, physics.Vector2D{})
	w.Player.Health = 5

	w.Reset()

	if len(w.Enemies)+len(w.Projectiles)+len(w.Pickups)+len(w.Particles) != 0 {
		t.Error("collections not cleared")
	}
	if w.Player.ID != id {
		t.Error("player replaced instead of reset in place")
	}
	if w.Player.Health != 120 || w.Player.Position != w.Arena().Center() {
		t.Errorf("player not reset: %+v", w.Player)
	}
}
