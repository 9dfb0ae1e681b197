// pkg/render/engo/hud.go
package engo

import (
	"image/color"
	"sync"
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/crystal-raiders/pkg/economy"
	"github.com/opd-ai/crystal-raiders/pkg/engine"
	"github.com/opd-ai/crystal-raiders/pkg/physics"
	"github.com/opd-ai/crystal-raiders/pkg/render"
)

// Approximate glyph metrics of the 16px HUD font.
const (
	charWidth  = 9
	lineHeight = 22
	margin     = 10
)

// FeedMessage is a short-lived notice shown above the help line.
type FeedMessage struct {
	Text      string
	Timestamp time.Time
	Color     color.Color
}

type hudLine struct {
	text  string
	pos   engo.Point
	color color.Color
}

// HUDSystem draws the status line, the state overlay, the help line and a
// feed of recent notices as engo text entities.
type HUDSystem struct {
	sink  SpriteSink
	font  *common.Font
	arena physics.Bounds

	status  string
	overlay []string
	help    string

	mu       sync.Mutex
	feed     []FeedMessage
	maxFeed  int
	feedLife time.Duration
	now      func() time.Time

	sprites []*sprite

	hudColor    color.Color
	titleColor  color.Color
	mutedColor  color.Color
	noticeColor color.Color
}

// NewHUDSystem creates a HUD that adds its text to sink. With a nil font the
// HUD still tracks its lines but draws nothing.
func NewHUDSystem(sink SpriteSink, font *common.Font, arena physics.Bounds) *HUDSystem {
	return &HUDSystem{
		sink:        sink,
		font:        font,
		arena:       arena,
		maxFeed:     5,
		feedLife:    4 * time.Second,
		now:         time.Now,
		hudColor:    color.NRGBA{R: 0xe7, G: 0xf6, B: 0xff, A: 255},
		titleColor:  color.NRGBA{R: 0x62, G: 0xf4, B: 0xc9, A: 255},
		mutedColor:  color.NRGBA{R: 0x5d, G: 0x6b, B: 0x86, A: 255},
		noticeColor: color.NRGBA{R: 0xff, G: 0xd1, B: 0x66, A: 255},
	}
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {}

// Show records the text for the next frame.
func (hud *HUDSystem) Show(snap *engine.Snapshot, offers []economy.Offer) {
	hud.status = render.StatusLine(snap.Status)
	hud.overlay = render.OverlayLines(snap.Status, snap.Banner, offers)
	hud.help = render.HelpLine(snap.State)
}

// AddMessage appends a notice to the feed. It may be called from event
// handlers on any goroutine.
func (hud *HUDSystem) AddMessage(text string) {
	hud.mu.Lock()
	defer hud.mu.Unlock()
	hud.feed = append(hud.feed, FeedMessage{Text: text, Timestamp: hud.now(), Color: hud.noticeColor})
	if len(hud.feed) > hud.maxFeed {
		hud.feed = hud.feed[len(hud.feed)-hud.maxFeed:]
	}
}

// Messages returns the notices that have not yet expired.
func (hud *HUDSystem) Messages() []FeedMessage {
	hud.mu.Lock()
	defer hud.mu.Unlock()
	now := hud.now()
	kept := hud.feed[:0]
	for _, m := range hud.feed {
		if now.Sub(m.Timestamp) < hud.feedLife {
			kept = append(kept, m)
		}
	}
	hud.feed = kept
	return append([]FeedMessage(nil), kept...)
}

// layout positions every visible line.
func (hud *HUDSystem) layout() []hudLine {
	w, h := float32(hud.arena.Width), float32(hud.arena.Height)
	lines := []hudLine{{text: hud.status, pos: engo.Point{X: margin, Y: margin}, color: hud.hudColor}}

	top := h/2 - float32(len(hud.overlay))*lineHeight/2
	for i, text := range hud.overlay {
		c := hud.hudColor
		if i == 0 {
			c = hud.titleColor
		}
		x := max(w/2-float32(len(text))*charWidth/2, margin)
		lines = append(lines, hudLine{text: text, pos: engo.Point{X: x, Y: top + float32(i)*lineHeight}, color: c})
	}

	helpY := h - margin - lineHeight
	msgs := hud.Messages()
	for i, m := range msgs {
		y := helpY - float32(len(msgs)-i)*lineHeight
		lines = append(lines, hudLine{text: m.Text, pos: engo.Point{X: margin, Y: y}, color: m.Color})
	}

	lines = append(lines, hudLine{text: hud.help, pos: engo.Point{X: margin, Y: helpY}, color: hud.mutedColor})
	return lines
}

// Update syncs the text entities with the current layout. Spare entities
// from longer frames are hidden rather than removed.
func (hud *HUDSystem) Update(dt float32) {
	if hud.font == nil {
		return
	}
	lines := hud.layout()
	for i, line := range lines {
		s := hud.textSprite(i)
		s.Hidden = line.text == ""
		s.Drawable = common.Text{Font: hud.font, Text: line.text}
		s.Color = line.color
		s.Position = line.pos
	}
	for i := len(lines); i < len(hud.sprites); i++ {
		hud.sprites[i].Hidden = true
	}
}

func (hud *HUDSystem) textSprite(i int) *sprite {
	for len(hud.sprites) <= i {
		s := &sprite{BasicEntity: ecs.NewBasic()}
		s.Drawable = common.Text{Font: hud.font}
		s.Scale = engo.Point{X: 1, Y: 1}
		s.SetShader(common.HUDShader)
		s.SetZIndex(zHUD)
		hud.sprites = append(hud.sprites, s)
		hud.sink.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	}
	return hud.sprites[i]
}
