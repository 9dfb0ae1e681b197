// Package collision resolves contacts between the entity collections after
// each world advance: projectiles against enemies, enemies against the
// player, and pickups against the player.
package collision

import (
	"math"

	"github.com/opd-ai/crystal-raiders/pkg/config"
	"github.com/opd-ai/crystal-raiders/pkg/entity"
	"github.com/opd-ai/crystal-raiders/pkg/event"
	"github.com/opd-ai/crystal-raiders/pkg/physics"
	"github.com/opd-ai/crystal-raiders/pkg/run"
	"github.com/opd-ai/crystal-raiders/pkg/world"
)

// Settings holds the rewards and contact constants used during resolution.
type Settings struct {
	KillScore       float64
	KillCredits     float64
	PickupScoreRate float64
	DropChance      float64
	MinDropValue    float64
	MaxDropValue    float64
	HitParticles    int
	DeathParticles  int
	Knockback       float64
	DamageFactor    float64
	TreeMargin      float64 // broad-phase boundary beyond the arena
	TreeCapacity    int
}

// SettingsFrom extracts resolution settings from a game configuration.
func SettingsFrom(cfg *config.GameConfig) Settings {
	return Settings{
		KillScore:       cfg.Rewards.KillScore,
		KillCredits:     cfg.Rewards.KillCredits,
		PickupScoreRate: cfg.Rewards.PickupScoreRate,
		DropChance:      cfg.Pickup.DropChance,
		MinDropValue:    cfg.Pickup.MinValue,
		MaxDropValue:    cfg.Pickup.MaxValue,
		HitParticles:    cfg.Particle.HitParticle,
		DeathParticles:  cfg.Particle.DeathBurst,
		Knockback:       cfg.Contact.Knockback,
		DamageFactor:    cfg.Contact.DamageFactor,
		TreeMargin:      cfg.Wave.SpawnMargin * 2,
		TreeCapacity:    8,
	}
}

// Resolver runs the three resolution passes. It keeps a reusable quadtree
// of enemy indices for the projectile pass.
type Resolver struct {
	settings Settings
	tree     *physics.QuadTree[int]
	outside  []int
	dead     []bool
	maxR     float64

	// OnPlayerDown is called every time a contact leaves the player with no
	// health. It may fire several times in one tick.
	OnPlayerDown func()
}

// NewResolver creates a Resolver for the given arena.
func NewResolver(settings Settings, arena physics.Bounds) *Resolver {
	return &Resolver{
		settings: settings,
		tree:     physics.NewQuadTree[int](arena.Rect(settings.TreeMargin), settings.TreeCapacity),
	}
}

// Resolve runs all three passes against w, applying rewards to st and
// queueing events on q.
func (r *Resolver) Resolve(w *world.World, st *run.State, q *event.Queue) {
	r.projectilesVsEnemies(w, st, q)
	r.enemiesVsPlayer(w, q)
	r.pickupsVsPlayer(w, st, q)
}

func (r *Resolver) buildTree(enemies []*entity.Enemy) {
	r.tree.Clear()
	r.outside = r.outside[:0]
	r.maxR = 0
	if cap(r.dead) < len(enemies) {
		r.dead = make([]bool, len(enemies))
	}
	r.dead = r.dead[:len(enemies)]
	for i, e := range enemies {
		r.dead[i] = false
		r.maxR = math.Max(r.maxR, e.Radius)
		if !r.tree.Insert(e.Position, i) {
			r.outside = append(r.outside, i)
		}
	}
}

// firstHit returns the lowest-index live enemy overlapping c, or -1.
func (r *Resolver) firstHit(c physics.Circle, enemies []*entity.Enemy) int {
	best := -1
	check := func(i int) {
		if r.dead[i] || (best >= 0 && i >= best) {
			return
		}
		if c.Collides(enemies[i].GetCollider()) {
			best = i
		}
	}
	for _, i := range r.tree.Query(physics.SquareAround(c.Center, c.Radius+r.maxR)) {
		check(i)
	}
	for _, i := range r.outside {
		check(i)
	}
	return best
}

func (r *Resolver) projectilesVsEnemies(w *world.World, st *run.State, q *event.Queue) {
	if len(w.Enemies) == 0 || len(w.Projectiles) == 0 {
		return
	}
	r.buildTree(w.Enemies)
	src := w.Rand()
	killed := false

	w.Projectiles = world.Retain(w.Projectiles, func(p *entity.Projectile) bool {
		idx := r.firstHit(p.GetCollider(), w.Enemies)
		if idx < 0 {
			return true
		}
		enemy := w.Enemies[idx]
		dead := enemy.Hit(p.Damage)
		w.EmitParticles(enemy.Position, enemy.Color, r.settings.HitParticles)
		q.Push(event.NewCombatEvent(event.EnemyHit, r, uint64(enemy.ID), enemy.Position, p.Damage, enemy.Health))

		if dead {
			r.dead[idx] = true
			killed = true
			st.AddScore(r.settings.KillScore)
			st.AddCredits(r.settings.KillCredits)
			st.EnemyKilled()
			q.Push(event.NewCombatEvent(event.EnemyKilled, r, uint64(enemy.ID), enemy.Position, p.Damage, enemy.Health))
			if src.Chance(r.settings.DropChance) {
				value := math.Floor(src.Range(r.settings.MinDropValue, r.settings.MaxDropValue))
				pickup := w.DropPickup(enemy.Position, value)
				q.Push(event.NewPickupEvent(event.PickupDropped, r, uint64(pickup.ID), pickup.Position, value))
			}
			w.EmitParticles(enemy.Position, enemy.Color, r.settings.DeathParticles)
		}
		return false
	})

	if killed {
		i := 0
		w.Enemies = world.Retain(w.Enemies, func(*entity.Enemy) bool {
			keep := !r.dead[i]
			i++
			return keep
		})
	}
}

func (r *Resolver) enemiesVsPlayer(w *world.World, q *event.Queue) {
	player := w.Player
	arena := w.Arena()
	for _, enemy := range w.Enemies {
		contact := physics.CheckCollision(enemy.GetCollider(), player.GetCollider())
		if !contact.Collided {
			continue
		}
		push := contact.Normal.Scale(r.settings.Knockback)
		player.Position = arena.ClampCircle(player.Position.Add(push), player.Radius)
		enemy.Position = enemy.Position.Sub(push)

		damage := enemy.Damage * r.settings.DamageFactor
		down := player.TakeDamage(damage)
		w.EmitParticles(player.Position, entity.HurtColor, r.settings.HitParticles)
		q.Push(event.NewCombatEvent(event.PlayerHit, r, uint64(player.ID), player.Position, damage, player.Health))

		if down && r.OnPlayerDown != nil {
			r.OnPlayerDown()
		}
	}
}

func (r *Resolver) pickupsVsPlayer(w *world.World, st *run.State, q *event.Queue) {
	collider := w.Player.GetCollider()
	w.Pickups = world.Retain(w.Pickups, func(p *entity.Pickup) bool {
		if !collider.Collides(p.GetCollider()) {
			return true
		}
		st.AddCredits(p.Value)
		st.AddScore(p.Value * r.settings.PickupScoreRate)
		q.Push(event.NewPickupEvent(event.PickupCollected, r, uint64(p.ID), p.Position, p.Value))
		return false
	})
}
