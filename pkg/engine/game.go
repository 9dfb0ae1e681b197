// pkg/engine/game.go
package engine

import (
	"context"
	"sync"

	"github.com/opd-ai/crystal-raiders/pkg/collision"
	"github.com/opd-ai/crystal-raiders/pkg/config"
	"github.com/opd-ai/crystal-raiders/pkg/economy"
	"github.com/opd-ai/crystal-raiders/pkg/entity"
	"github.com/opd-ai/crystal-raiders/pkg/event"
	"github.com/opd-ai/crystal-raiders/pkg/logging"
	"github.com/opd-ai/crystal-raiders/pkg/physics"
	"github.com/opd-ai/crystal-raiders/pkg/rng"
	"github.com/opd-ai/crystal-raiders/pkg/run"
	"github.com/opd-ai/crystal-raiders/pkg/score"
	"github.com/opd-ai/crystal-raiders/pkg/validation"
	"github.com/opd-ai/crystal-raiders/pkg/wave"
	"github.com/opd-ai/crystal-raiders/pkg/world"
)

// State is the game-state machine position.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StateBetweenWaves
	StateShopping
	StateGameOver
)

// String returns the lower-case state name used in logs and events.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StateBetweenWaves:
		return "between_waves"
	case StateShopping:
		return "shopping"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Option configures a Game.
type Option func(*Game)

// WithStore sets the best-score store. The default is an empty MemoryStore.
func WithStore(store score.Store) Option {
	return func(g *Game) { g.store = store }
}

// WithRand injects the random source used for spawning and variance.
func WithRand(src *rng.Source) Option {
	return func(g *Game) { g.rng = src }
}

// WithLogger sets the logger.
func WithLogger(logger *logging.Logger) Option {
	return func(g *Game) { g.logger = logger }
}

// WithEventBus shares an existing bus instead of creating one.
func WithEventBus(bus *event.Bus) Option {
	return func(g *Game) { g.bus = bus }
}

// WithContext sets the parent context for run correlation IDs.
func WithContext(ctx context.Context) Option {
	return func(g *Game) { g.baseCtx = ctx }
}

// Game is the arena state machine. Every exported method is safe for
// concurrent use; each call is applied or rejected atomically.
type Game struct {
	Config     *config.GameConfig
	EntityLock sync.RWMutex

	state       State
	run         run.State
	world       *world.World
	resolver    *collision.Resolver
	director    *wave.Director
	currentTick uint64

	store  score.Store
	rng    *rng.Source
	bus    *event.Bus
	queue  event.Queue
	logger *logging.Logger

	baseCtx context.Context
	runCtx  context.Context

	// downThisTick is set when the player dies during the current tick so the
	// best score is recorded once the tick finishes.
	downThisTick bool
}

// New creates a Game in the Menu state and loads the best score from the
// store. A nil cfg uses DefaultConfig.
func New(cfg *config.GameConfig, opts ...Option) *Game {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	g := &Game{Config: cfg, state: StateMenu}
	for _, opt := range opts {
		opt(g)
	}
	if g.store == nil {
		g.store = score.NewMemoryStore(0)
	}
	if g.rng == nil {
		g.rng = rng.NewFromTime()
	}
	if g.bus == nil {
		g.bus = event.NewEventBus()
	}
	if g.logger == nil {
		g.logger = logging.NewLogger()
	}
	g.logger = g.logger.Component("engine")
	if g.baseCtx == nil {
		g.baseCtx = context.Background()
	}
	g.runCtx = g.baseCtx

	g.world = world.New(world.ConfigFrom(cfg), g.rng)
	g.resolver = collision.NewResolver(collision.SettingsFrom(cfg), g.world.Arena())
	g.resolver.OnPlayerDown = g.playerDown
	g.director = wave.NewDirector(wave.SettingsFrom(cfg))
	g.run.Reset()

	g.loadBestScore()
	return g
}

// loadBestScore reads the best score. A failing store is logged and treated
// as no best score.
func (g *Game) loadBestScore() {
	best, err := g.store.Load()
	if err != nil {
		g.logger.Error(g.baseCtx, "failed to load best score", err)
		return
	}
	g.run.BestScore = best
	g.logger.Debug(g.baseCtx, "best score loaded", "best", best)
}

// Events returns the bus state changes are published on. Handlers run after
// the Game lock is released and may call back into the Game.
func (g *Game) Events() *event.Bus {
	return g.bus
}

// State returns the current state.
func (g *Game) State() State {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()
	return g.state
}

// StartRun starts a new run from any state.
func (g *Game) StartRun() {
	g.beginRun("start")
}

// RetryRun restarts after a game over. Like StartRun it resets from any
// state.
func (g *Game) RetryRun() {
	g.beginRun("retry")
}

func (g *Game) beginRun(reason string) {
	g.EntityLock.Lock()
	g.runCtx = logging.NewRunContext(g.baseCtx)
	g.run.Reset()
	g.world.Reset()
	g.downThisTick = false
	g.setState(StatePlaying)
	count := g.director.SpawnWave(g.run.Wave, g.world, &g.run)
	g.logger.Info(g.runCtx, "run started", "reason", reason, "best", g.run.BestScore, "seed", g.rng.Seed())
	g.queue.Push(event.NewRunEvent(event.RunStarted, g, g.run.Wave, count, 0, 0, g.run.BestScore))
	g.queue.Push(event.NewRunEvent(event.WaveStarted, g, g.run.Wave, count, g.run.Score, g.run.Credits, g.run.BestScore))
	events := g.queue.Drain()
	g.EntityLock.Unlock()

	g.publish(events)
}

// OpenShop moves BetweenWaves to Shopping.
func (g *Game) OpenShop() bool {
	return g.transition(StateBetweenWaves, StateShopping)
}

// CloseShop moves Shopping back to BetweenWaves.
func (g *Game) CloseShop() bool {
	return g.transition(StateShopping, StateBetweenWaves)
}

func (g *Game) transition(from, to State) bool {
	g.EntityLock.Lock()
	if g.state != from {
		g.EntityLock.Unlock()
		return false
	}
	g.setState(to)
	events := g.queue.Drain()
	g.EntityLock.Unlock()

	g.publish(events)
	return true
}

// StartNextWave spawns the current wave and resumes play. It is accepted
// only from BetweenWaves, so repeated calls spawn at most once.
func (g *Game) StartNextWave() bool {
	g.EntityLock.Lock()
	if g.state != StateBetweenWaves {
		g.EntityLock.Unlock()
		return false
	}
	g.setState(StatePlaying)
	count := g.director.SpawnWave(g.run.Wave, g.world, &g.run)
	g.logger.Info(g.runCtx, "wave started", "wave", g.run.Wave, "enemies", count)
	g.queue.Push(event.NewRunEvent(event.WaveStarted, g, g.run.Wave, count, g.run.Score, g.run.Credits, g.run.BestScore))
	events := g.queue.Drain()
	g.EntityLock.Unlock()

	g.publish(events)
	return true
}

// PurchaseResult reports a purchase attempt.
type PurchaseResult struct {
	Success          bool
	CreditsRemaining float64
}

// Purchase buys the upgrade with the given id. It succeeds only while
// Shopping with enough credits; otherwise nothing changes.
func (g *Game) Purchase(id string) PurchaseResult {
	g.EntityLock.Lock()
	credits := g.run.Credits
	if g.state != StateShopping {
		g.EntityLock.Unlock()
		return PurchaseResult{CreditsRemaining: credits}
	}
	id, err := validation.ValidateUpgradeID(id)
	if err != nil {
		g.logger.Warn(g.runCtx, "purchase rejected", "reason", err.Error())
		g.EntityLock.Unlock()
		return PurchaseResult{CreditsRemaining: credits}
	}
	upgrade, _ := economy.Lookup(id)
	res := economy.Purchase(upgrade, &g.run, g.world.Player)
	if res.Success {
		g.logger.Info(g.runCtx, "upgrade purchased", "upgrade", id, "cost", upgrade.Cost, "credits", res.CreditsRemaining)
		g.queue.Push(event.NewUpgradeEvent(g, id, upgrade.Cost, res.CreditsRemaining))
	}
	events := g.queue.Drain()
	g.EntityLock.Unlock()

	g.publish(events)
	return PurchaseResult{Success: res.Success, CreditsRemaining: res.CreditsRemaining}
}

// Offers lists the shop catalog with affordability at the current balance.
func (g *Game) Offers() []economy.Offer {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()
	return economy.Offers(g.run.Credits)
}

// AdvanceTick runs one simulation tick while Playing and returns the
// resulting snapshot. In any other state it only returns the snapshot. A
// non-finite aim target discards the whole intent for the tick.
func (g *Game) AdvanceTick(dt float64, intent entity.Intent, aim physics.Vector2D) Snapshot {
	g.EntityLock.Lock()
	if g.state != StatePlaying {
		snap := g.snapshotLocked()
		g.EntityLock.Unlock()
		return snap
	}

	dt = validation.ClampDelta(dt, g.Config.MaxDelta)
	if err := validation.ValidateAim(aim); err != nil {
		g.logger.Debug(g.runCtx, "input rejected", "reason", err.Error())
		intent = entity.Intent{}
		aim = g.world.Player.Position
	}

	g.updateGameState(dt, intent, aim)

	var saveBest bool
	if g.downThisTick {
		g.downThisTick = false
		saveBest = g.finishRun()
	}
	best := g.run.BestScore

	snap := g.snapshotLocked()
	events := g.queue.Drain()
	g.EntityLock.Unlock()

	if saveBest {
		g.saveBestScore(best)
	}
	g.publish(events)
	return snap
}

// updateGameState advances the world, resolves contacts and checks the
// wave. Note: This method should only be called from within a locked context.
func (g *Game) updateGameState(dt float64, intent entity.Intent, aim physics.Vector2D) {
	fired := g.world.Advance(dt, intent, aim)
	if len(fired) > 0 {
		p := g.world.Player
		g.queue.Push(event.NewCombatEvent(event.ProjectileFired, g, uint64(p.ID), p.Position, float64(len(fired)), p.Health))
	}

	g.resolver.Resolve(g.world, &g.run, &g.queue)

	if g.state == StatePlaying && g.director.Cleared(g.world, &g.run) {
		cleared := g.run.Wave
		credits, _ := g.director.Award(&g.run)
		g.setState(StateBetweenWaves)
		g.logger.Info(g.runCtx, "wave cleared", "wave", cleared, "credits_bonus", credits, "score", g.run.Score)
		g.queue.Push(event.NewRunEvent(event.WaveCleared, g, cleared, 0, g.run.Score, g.run.Credits, g.run.BestScore))
	}
	g.currentTick++
}

// playerDown moves Playing to GameOver. Several contacts in one tick may call
// it; only the first has an effect.
func (g *Game) playerDown() {
	if g.state != StatePlaying {
		return
	}
	g.setState(StateGameOver)
	g.run.Finish()
	g.downThisTick = true
}

// finishRun records the best score at the end of the game-over tick and
// reports whether it changed.
func (g *Game) finishRun() bool {
	improved := g.run.RecordBest()
	g.logger.Info(g.runCtx, "game over", "score", g.run.FinalScore, "wave", g.run.FinalWave, "best", g.run.BestScore)
	g.queue.Push(event.NewRunEvent(event.GameOver, g, g.run.FinalWave, 0, g.run.FinalScore, g.run.Credits, g.run.BestScore))
	if improved {
		g.queue.Push(event.NewRunEvent(event.BestScoreUpdated, g, g.run.FinalWave, 0, g.run.FinalScore, g.run.Credits, g.run.BestScore))
	}
	return improved
}

// saveBestScore persists best. Failures are logged and never undo the
// transition.
func (g *Game) saveBestScore(best float64) {
	if err := g.store.Save(best); err != nil {
		g.logger.Error(g.runCtx, "failed to save best score", err, "best", best)
	}
}

// setState changes state and queues a state_changed event.
// Note: This method should only be called from within a locked context.
func (g *Game) setState(to State) {
	from := g.state
	g.state = to
	g.logger.Info(g.runCtx, "state changed", "from", from.String(), "to", to.String())
	g.queue.Push(event.NewStateEvent(g, from.String(), to.String()))
}

func (g *Game) publish(events []event.Event) {
	for _, e := range events {
		g.bus.Publish(e)
	}
}
