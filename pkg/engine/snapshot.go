package engine

import (
	"fmt"

	"github.com/opd-ai/crystal-raiders/pkg/entity"
	"github.com/opd-ai/crystal-raiders/pkg/physics"
)

// Banner is the between-waves overlay text.
type Banner struct {
	Title    string
	Subtitle string
}

// Status is the HUD view of the run.
type Status struct {
	State            State
	Score            float64
	Credits          float64
	Wave             int
	EnemiesRemaining int
	BestScore        float64
	FinalScore       float64
	FinalWave        int
	Health           float64
	MaxHealth        float64
}

// Snapshot is a deep copy of everything a presentation layer needs to draw
// one frame. It shares no memory with the live simulation.
type Snapshot struct {
	Status
	Tick        uint64
	Arena       physics.Bounds
	Player      entity.Player
	Enemies     []entity.Enemy
	Projectiles []entity.Projectile
	Pickups     []entity.Pickup
	Particles   []entity.Particle
	Banner      *Banner
}

// Render draws the snapshot through r, back to front: pickups, particles,
// projectiles, enemies, then the player.
func (s *Snapshot) Render(r entity.Renderer) {
	r.Clear()
	for i := range s.Pickups {
		s.Pickups[i].Render(r)
	}
	for i := range s.Particles {
		s.Particles[i].Render(r)
	}
	for i := range s.Projectiles {
		s.Projectiles[i].Render(r)
	}
	for i := range s.Enemies {
		s.Enemies[i].Render(r)
	}
	s.Player.Render(r)
	r.Present()
}

// Snapshot returns a copy of the current game state.
func (g *Game) Snapshot() Snapshot {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()
	return g.snapshotLocked()
}

// Status returns the HUD values without copying entities.
func (g *Game) Status() Status {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()
	return g.statusLocked()
}

func (g *Game) statusLocked() Status {
	return Status{
		State:            g.state,
		Score:            g.run.Score,
		Credits:          g.run.Credits,
		Wave:             g.run.Wave,
		EnemiesRemaining: g.run.EnemiesRemaining,
		BestScore:        g.run.BestScore,
		FinalScore:       g.run.FinalScore,
		FinalWave:        g.run.FinalWave,
		Health:           g.world.Player.Health,
		MaxHealth:        g.world.Player.MaxHealth,
	}
}

// snapshotLocked builds the snapshot.
// Note: This method should only be called from within a locked context.
func (g *Game) snapshotLocked() Snapshot {
	w := g.world
	snap := Snapshot{
		Status:      g.statusLocked(),
		Tick:        g.currentTick,
		Arena:       w.Arena(),
		Player:      *w.Player,
		Enemies:     copyAll(w.Enemies),
		Projectiles: copyAll(w.Projectiles),
		Pickups:     copyAll(w.Pickups),
		Particles:   copyAll(w.Particles),
	}
	if g.state == StateBetweenWaves || g.state == StateShopping {
		snap.Banner = &Banner{
			Title:    fmt.Sprintf("Wave %d Incoming", g.run.Wave),
			Subtitle: "Spend your credits in the shop and start the wave when ready.",
		}
	}
	return snap
}

func copyAll[T any](src []*T) []T {
	out := make([]T, len(src))
	for i, v := range src {
		out[i] = *v
	}
	return out
}
