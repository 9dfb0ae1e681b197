// pkg/render/engo/scene.go
package engo

import (
	"context"
	"fmt"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/crystal-raiders/pkg/economy"
	"github.com/opd-ai/crystal-raiders/pkg/engine"
	"github.com/opd-ai/crystal-raiders/pkg/event"
	"github.com/opd-ai/crystal-raiders/pkg/logging"
	"github.com/opd-ai/crystal-raiders/pkg/render"
)

// GameScene is the windowed front end. engo drives the frame loop; each
// frame the simulation system advances the Game by the frame time and
// redraws from the resulting snapshot.
type GameScene struct {
	game   *engine.Game
	logger *logging.Logger
	subs   []*event.Subscription

	assets   *AssetManager
	renderer *EngoRenderer
	input    *InputSystem
	hud      *HUDSystem
	backdrop *BackdropSystem
}

// NewGameScene creates a scene for g.
func NewGameScene(g *engine.Game, logger *logging.Logger) *GameScene {
	if logger == nil {
		logger = logging.Discard()
	}
	return &GameScene{
		game:   g,
		logger: logger.Component("engo"),
		assets: NewAssetManager(),
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "GameScene"
}

// Preload loads the HUD font and sprite texture (required by Engo)
func (scene *GameScene) Preload() {
	if err := scene.assets.LoadAssets(); err != nil {
		scene.logger.Error(context.Background(), "failed to load assets", err)
	}
}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	world, ok := u.(*ecs.World)
	if !ok {
		panic(fmt.Sprintf("engo updater is %T, want *ecs.World", u))
	}
	common.SetBackground(BackgroundColor)
	SetupInputBindings()

	rs := &common.RenderSystem{}
	world.AddSystem(rs)

	arena := scene.game.Snapshot().Arena
	scene.backdrop = NewBackdropSystem(rs, arena)
	scene.renderer = NewEngoRenderer(rs, scene.assets)
	scene.input = NewInputSystem(scene.handleAction)
	scene.hud = NewHUDSystem(rs, scene.assets.Font(), arena)

	world.AddSystem(scene.input)
	world.AddSystem(scene.backdrop)
	world.AddSystem(&SimulationSystem{scene: scene})
	world.AddSystem(scene.hud)

	scene.subscribeToEvents()
}

// handleAction forwards an input action to the game, leaving the window
// on quit.
func (scene *GameScene) handleAction(a render.Action) {
	if !render.Dispatch(scene.game, a) {
		engo.Exit()
	}
}

// subscribeToEvents feeds notable events into the HUD feed.
func (scene *GameScene) subscribeToEvents() {
	bus := scene.game.Events()
	on := func(t event.Type, h event.Handler) {
		scene.subs = append(scene.subs, bus.Subscribe(t, h))
	}
	on(event.WaveCleared, func(e event.Event) {
		if re, ok := e.(*event.RunEvent); ok {
			scene.hud.AddMessage(fmt.Sprintf("Wave %d cleared", re.Wave))
		}
	})
	on(event.UpgradePurchased, func(e event.Event) {
		if ue, ok := e.(*event.UpgradeEvent); ok {
			title := ue.UpgradeID
			if u, found := economy.Lookup(ue.UpgradeID); found {
				title = u.Title
			}
			scene.hud.AddMessage(fmt.Sprintf("%s installed, %d credits left", title, int(ue.CreditsRemaining)))
		}
	})
	on(event.PickupCollected, func(e event.Event) {
		if pe, ok := e.(*event.PickupEvent); ok {
			scene.hud.AddMessage(fmt.Sprintf("+%d credits", int(pe.Value)))
		}
	})
	on(event.BestScoreUpdated, func(e event.Event) {
		scene.hud.AddMessage("New best score!")
	})
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *GameScene) Exit() {
	for _, s := range scene.subs {
		s.Cancel()
	}
	scene.subs = nil
}

// frame advances the game by dt and redraws.
func (scene *GameScene) frame(dt float32) {
	intent, aim := scene.input.Intent()
	snap := scene.game.AdvanceTick(float64(dt), intent, aim)
	snap.Render(scene.renderer)

	var offers []economy.Offer
	if snap.State == engine.StateShopping {
		offers = scene.game.Offers()
	}
	scene.hud.Show(&snap, offers)
}

// SimulationSystem ticks the Game once per engo frame.
type SimulationSystem struct {
	scene *GameScene
}

// Remove satisfies the ecs.System interface
func (s *SimulationSystem) Remove(basic ecs.BasicEntity) {}

// Update advances the simulation.
func (s *SimulationSystem) Update(dt float32) {
	s.scene.frame(dt)
}

// Run opens a window sized to the arena and blocks until it closes.
func Run(g *engine.Game, logger *logging.Logger) {
	arena := g.Snapshot().Arena
	engo.Run(engo.RunOptions{
		Title:          "Crystal Raiders",
		Width:          int(arena.Width),
		Height:         int(arena.Height),
		StandardInputs: true,
		NotResizable:   true,
	}, NewGameScene(g, logger))
}
