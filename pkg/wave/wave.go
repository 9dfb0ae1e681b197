// Package wave sizes, places and scores enemy waves.
package wave

import (
	"github.com/opd-ai/crystal-raiders/pkg/config"
	"github.com/opd-ai/crystal-raiders/pkg/physics"
	"github.com/opd-ai/crystal-raiders/pkg/run"
	"github.com/opd-ai/crystal-raiders/pkg/world"
)

// Edge identifies the arena side an enemy enters from.
type Edge int

// Arena edges in the order they are drawn.
const (
	Top Edge = iota
	Right
	Bottom
	Left
)

// Settings holds wave sizing, placement and clear-bonus parameters.
type Settings struct {
	BaseCount      int
	CountPerWave   int
	MaxCount       int
	SpawnMargin    float64
	LevelPerWave   float64
	ClearCredits   float64
	CreditsPerWave float64
	ClearScore     float64
}

// SettingsFrom extracts wave settings from a game configuration.
func SettingsFrom(cfg *config.GameConfig) Settings {
	return Settings{
		BaseCount:      cfg.Wave.BaseCount,
		CountPerWave:   cfg.Wave.CountPerWave,
		MaxCount:       cfg.Wave.MaxCount,
		SpawnMargin:    cfg.Wave.SpawnMargin,
		LevelPerWave:   cfg.Wave.LevelPerWave,
		ClearCredits:   cfg.Wave.ClearCredits,
		CreditsPerWave: cfg.Wave.CreditsPerWave,
		ClearScore:     cfg.Wave.ClearScore,
	}
}

// Director spawns waves into a World and detects when they are cleared.
type Director struct {
	settings Settings
}

// NewDirector creates a Director.
func NewDirector(settings Settings) *Director {
	return &Director{settings: settings}
}

// Count returns the number of enemies in wave n.
func (d *Director) Count(n int) int {
	return min(d.settings.BaseCount+d.settings.CountPerWave*n, d.settings.MaxCount)
}

// Level returns the enemy level for wave n.
func (d *Director) Level(n int) float64 {
	return float64(n) * d.settings.LevelPerWave
}

// SpawnPoint picks an entry point just outside a random arena edge.
func (d *Director) SpawnPoint(w *world.World) (physics.Vector2D, Edge) {
	src := w.Rand()
	arena := w.Arena()
	m := d.settings.SpawnMargin
	edge := Edge(src.IntN(4))
	switch edge {
	case Top:
		return physics.Vector2D{X: src.Range(m, arena.Width-m), Y: -m}, edge
	case Right:
		return physics.Vector2D{X: arena.Width + m, Y: src.Range(m, arena.Height-m)}, edge
	case Bottom:
		return physics.Vector2D{X: src.Range(m, arena.Width-m), Y: arena.Height + m}, edge
	default:
		return physics.Vector2D{X: -m, Y: src.Range(m, arena.Height-m)}, Left
	}
}

// SpawnWave places wave n's enemies and sets the remaining count. It returns
// the number spawned.
func (d *Director) SpawnWave(n int, w *world.World, st *run.State) int {
	count := d.Count(n)
	level := d.Level(n)
	st.EnemiesRemaining = count
	for i := 0; i < count; i++ {
		pos, _ := d.SpawnPoint(w)
		w.SpawnEnemy(pos, level)
	}
	return count
}

// Cleared reports whether the current wave is finished.
func (d *Director) Cleared(w *world.World, st *run.State) bool {
	return st.EnemiesRemaining <= 0 && len(w.Enemies) == 0
}

// Award grants the clear bonus for the current wave, then advances the wave
// counter. The credit bonus uses the wave number before the increment.
func (d *Director) Award(st *run.State) (credits, score float64) {
	credits = d.settings.ClearCredits + d.settings.CreditsPerWave*float64(st.Wave)
	score = d.settings.ClearScore
	st.AddCredits(credits)
	st.AddScore(score)
	st.Wave++
	return credits, score
}
