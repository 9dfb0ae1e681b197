// pkg/render/engo/input.go
package engo

import (
	"sync"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/crystal-raiders/pkg/entity"
	"github.com/opd-ai/crystal-raiders/pkg/physics"
	"github.com/opd-ai/crystal-raiders/pkg/render"
)

// Button names registered with engo.Input.
const (
	buttonUp        = "up"
	buttonDown      = "down"
	buttonLeft      = "left"
	buttonRight     = "right"
	buttonFire      = "fire"
	buttonConfirm   = "confirm"
	buttonShop      = "shop"
	buttonCloseShop = "closeShop"
	buttonRetry     = "retry"
	buttonQuit      = "quit"
)

// buyButtons holds the shop slot button names, in slot order.
var buyButtons = []string{"buy1", "buy2", "buy3", "buy4", "buy5", "buy6", "buy7"}

// Buttons reads named button state. The engo implementation wraps
// engo.Input; tests supply their own.
type Buttons interface {
	Down(name string) bool
	JustPressed(name string) bool
}

// Pointer reports the mouse position in arena coordinates and whether the
// primary button is held.
type Pointer interface {
	Position() physics.Vector2D
	Pressed() bool
}

type engoButtons struct{}

func (engoButtons) Down(name string) bool        { return engo.Input.Button(name).Down() }
func (engoButtons) JustPressed(name string) bool { return engo.Input.Button(name).JustPressed() }

// engoPointer tracks the left button across Press and Release actions,
// which engo reports once rather than as a level.
type engoPointer struct {
	held bool
}

func (p *engoPointer) Position() physics.Vector2D {
	return physics.Vector2D{X: float64(engo.Input.Mouse.X), Y: float64(engo.Input.Mouse.Y)}
}

func (p *engoPointer) Pressed() bool {
	if engo.Input.Mouse.Button == engo.MouseButtonLeft {
		switch engo.Input.Mouse.Action {
		case engo.Press:
			p.held = true
		case engo.Release:
			p.held = false
		}
	}
	return p.held
}

// InputSystem samples keyboard and mouse once per engo frame. Intent is read
// by the simulation system; discrete actions go to the action callback.
type InputSystem struct {
	buttons  Buttons
	pointer  Pointer
	onAction func(render.Action)

	mu     sync.Mutex
	intent entity.Intent
	aim    physics.Vector2D
}

// NewInputSystem creates an input system reading engo.Input.
func NewInputSystem(onAction func(render.Action)) *InputSystem {
	return newInputSystem(engoButtons{}, &engoPointer{}, onAction)
}

func newInputSystem(buttons Buttons, pointer Pointer, onAction func(render.Action)) *InputSystem {
	if onAction == nil {
		onAction = func(render.Action) {}
	}
	return &InputSystem{buttons: buttons, pointer: pointer, onAction: onAction}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update samples held buttons into the intent and emits an action for each
// button pressed this frame.
func (is *InputSystem) Update(dt float32) {
	b := is.buttons
	fire := b.Down(buttonFire) || is.pointer.Pressed()

	is.mu.Lock()
	is.intent = entity.Intent{
		Up:    b.Down(buttonUp),
		Down:  b.Down(buttonDown),
		Left:  b.Down(buttonLeft),
		Right: b.Down(buttonRight),
		Fire:  fire,
	}
	is.aim = is.pointer.Position()
	is.mu.Unlock()

	for _, a := range is.actions() {
		is.onAction(a)
	}
}

func (is *InputSystem) actions() []render.Action {
	b := is.buttons
	var out []render.Action
	if b.JustPressed(buttonQuit) {
		out = append(out, render.Action{Command: render.CommandQuit})
	}
	if b.JustPressed(buttonConfirm) {
		out = append(out, render.Action{Command: render.CommandConfirm})
	}
	if b.JustPressed(buttonRetry) {
		out = append(out, render.Action{Command: render.CommandRetry})
	}
	if b.JustPressed(buttonShop) {
		out = append(out, render.Action{Command: render.CommandOpenShop})
	}
	if b.JustPressed(buttonCloseShop) {
		out = append(out, render.Action{Command: render.CommandCloseShop})
	}
	for i, name := range buyButtons {
		if b.JustPressed(name) {
			out = append(out, render.BuySlot(i+1))
		}
	}
	return out
}

// Intent returns the intent and aim sampled by the last Update.
func (is *InputSystem) Intent() (entity.Intent, physics.Vector2D) {
	is.mu.Lock()
	defer is.mu.Unlock()
	return is.intent, is.aim
}

// SetupInputBindings registers the key bindings. Call it from Setup.
func SetupInputBindings() {
	engo.Input.RegisterButton(buttonUp, engo.KeyW, engo.KeyArrowUp)
	engo.Input.RegisterButton(buttonDown, engo.KeyS, engo.KeyArrowDown)
	engo.Input.RegisterButton(buttonLeft, engo.KeyA, engo.KeyArrowLeft)
	engo.Input.RegisterButton(buttonRight, engo.KeyD, engo.KeyArrowRight)
	engo.Input.RegisterButton(buttonFire, engo.KeySpace)

	engo.Input.RegisterButton(buttonConfirm, engo.KeyEnter, engo.KeyN)
	engo.Input.RegisterButton(buttonShop, engo.KeyB)
	engo.Input.RegisterButton(buttonCloseShop, engo.KeyEscape)
	engo.Input.RegisterButton(buttonRetry, engo.KeyR)
	engo.Input.RegisterButton(buttonQuit, engo.KeyQ)

	slotKeys := []engo.Key{engo.KeyOne, engo.KeyTwo, engo.KeyThree, engo.KeyFour, engo.KeyFive, engo.KeySix, engo.KeySeven}
	for i, name := range buyButtons {
		engo.Input.RegisterButton(name, slotKeys[i])
	}
}
