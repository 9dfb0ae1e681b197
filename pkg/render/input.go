package render

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/crystal-raiders/pkg/entity"
	"github.com/opd-ai/crystal-raiders/pkg/physics"
)

// DefaultLatch is how long a key press keeps its direction held. Terminals
// report key repeats but no releases, so a held key is one that repeated
// within the latch.
const DefaultLatch = 180 * time.Millisecond

// aimReach is how far ahead of the player keyboard aiming points.
const aimReach = 100.0

type direction int

const (
	dirUp direction = iota
	dirDown
	dirLeft
	dirRight
	dirFire
	dirCount
)

// TerminalInput turns tcell events into per-tick intent and discrete
// actions. HandleEvent runs on the event goroutine while Intent is called
// from the tick loop.
type TerminalInput struct {
	mu       sync.Mutex
	renderer *TerminalRenderer
	latch    time.Duration
	now      func() time.Time

	held      [dirCount]time.Time
	mouseAim  bool
	mouseFire bool
	aim       physics.Vector2D
	facing    physics.Vector2D
	player    physics.Vector2D
}

// NewTerminalInput creates an input translator. The renderer is used to map
// mouse cells back to arena coordinates and may be nil.
func NewTerminalInput(renderer *TerminalRenderer, latch time.Duration) *TerminalInput {
	if latch <= 0 {
		latch = DefaultLatch
	}
	return &TerminalInput{
		renderer: renderer,
		latch:    latch,
		now:      time.Now,
		facing:   physics.Vector2D{X: 1},
	}
}

// HandleEvent records movement and fire keys and returns the discrete action
// the event maps to, if any.
func (in *TerminalInput) HandleEvent(ev tcell.Event) Action {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return in.handleKey(ev)
	case *tcell.EventMouse:
		in.handleMouse(ev)
	case *tcell.EventResize:
		if in.renderer != nil {
			in.renderer.RequestResize()
		}
	}
	return Action{}
}

func (in *TerminalInput) handleKey(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return Action{Command: CommandQuit}
	case tcell.KeyUp:
		in.press(dirUp)
	case tcell.KeyDown:
		in.press(dirDown)
	case tcell.KeyLeft:
		in.press(dirLeft)
	case tcell.KeyRight:
		in.press(dirRight)
	case tcell.KeyEnter:
		return Action{Command: CommandConfirm}
	case tcell.KeyEscape:
		return Action{Command: CommandCloseShop}
	case tcell.KeyRune:
		return in.handleRune(ev.Rune())
	}
	return Action{}
}

func (in *TerminalInput) handleRune(ch rune) Action {
	switch ch {
	case 'w', 'W':
		in.press(dirUp)
	case 's', 'S':
		in.press(dirDown)
	case 'a', 'A':
		in.press(dirLeft)
	case 'd', 'D':
		in.press(dirRight)
	case ' ':
		in.press(dirFire)
	case 'n', 'N':
		return Action{Command: CommandConfirm}
	case 'r', 'R':
		return Action{Command: CommandRetry}
	case 'b', 'B':
		return Action{Command: CommandOpenShop}
	case 'q', 'Q':
		return Action{Command: CommandQuit}
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return BuySlot(int(ch - '0'))
	}
	return Action{}
}

func (in *TerminalInput) handleMouse(ev *tcell.EventMouse) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.renderer != nil {
		x, y := ev.Position()
		in.aim = in.renderer.ScreenToWorld(x, y)
		in.mouseAim = true
	}
	in.mouseFire = ev.Buttons()&tcell.Button1 != 0
}

func (in *TerminalInput) press(d direction) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.held[d] = in.now()
}

// Track tells the input where the player is so keyboard aiming can point
// ahead of it.
func (in *TerminalInput) Track(player physics.Vector2D) {
	in.mu.Lock()
	in.player = player
	in.mu.Unlock()
}

// Intent returns the currently held keys and the aim target. Without a mouse
// the aim follows the last movement direction.
func (in *TerminalInput) Intent() (entity.Intent, physics.Vector2D) {
	in.mu.Lock()
	defer in.mu.Unlock()

	now := in.now()
	active := func(d direction) bool {
		t := in.held[d]
		return !t.IsZero() && now.Sub(t) <= in.latch
	}
	intent := entity.Intent{
		Up:    active(dirUp),
		Down:  active(dirDown),
		Left:  active(dirLeft),
		Right: active(dirRight),
		Fire:  active(dirFire) || in.mouseFire,
	}
	if dir := intent.Direction(); dir.LengthSquared() > 0 {
		in.facing = dir.Normalize()
	}
	if in.mouseAim {
		return intent, in.aim
	}
	return intent, in.player.Add(in.facing.Scale(aimReach))
}
