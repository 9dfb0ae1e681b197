package render

import (
	"math"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/opd-ai/crystal-raiders/pkg/economy"
	"github.com/opd-ai/crystal-raiders/pkg/engine"
	"github.com/opd-ai/crystal-raiders/pkg/entity"
	"github.com/opd-ai/crystal-raiders/pkg/physics"
)

// Rows reserved above and below the arena for the HUD.
const (
	hudTop    = 1
	hudBottom = 1
)

var (
	styleHUD    = tcell.StyleDefault.Foreground(tcell.GetColor("#e7f6ff"))
	styleBorder = tcell.StyleDefault.Foreground(tcell.GetColor("#35c3ff"))
	styleBanner = tcell.StyleDefault.Foreground(tcell.GetColor("#0b1224")).Background(tcell.GetColor("#62f4c9")).Bold(true)
	styleMuted  = tcell.StyleDefault.Foreground(tcell.GetColor("#5d6b86"))
	styleOffer  = tcell.StyleDefault.Foreground(tcell.GetColor("#ffd166"))
)

type cell struct {
	r     rune
	style tcell.Style
}

// TerminalRenderer draws snapshots onto a tcell screen. Entities are first
// rasterised into a cell buffer scaled to fit the arena, then the buffer,
// border and HUD are flushed to the screen in Present.
type TerminalRenderer struct {
	screen tcell.Screen
	arena  physics.Bounds
	width  int // arena columns inside the border
	height int // arena rows inside the border
	buffer [][]cell
	resize atomic.Bool

	status engine.Status
	banner *engine.Banner
	offers []economy.Offer
}

// NewTerminalRenderer creates a renderer that maps arena onto screen.
func NewTerminalRenderer(screen tcell.Screen, arena physics.Bounds) *TerminalRenderer {
	r := &TerminalRenderer{
		screen: screen,
		arena:  arena,
	}
	r.Resize()
	return r
}

// Resize re-reads the screen size and reallocates the cell buffer.
func (r *TerminalRenderer) Resize() {
	cols, rows := r.screen.Size()
	r.width = max(cols-2, 1)
	r.height = max(rows-2-hudTop-hudBottom, 1)
	r.buffer = make([][]cell, r.height)
	for i := range r.buffer {
		r.buffer[i] = make([]cell, r.width)
	}
}

// RequestResize marks the buffer stale. It is safe to call from the event
// goroutine; the next Draw picks it up.
func (r *TerminalRenderer) RequestResize() {
	r.resize.Store(true)
}

// Draw renders one frame: the snapshot's entities plus its HUD. offers is
// shown as the shop panel while shopping and may be nil otherwise.
func (r *TerminalRenderer) Draw(snap *engine.Snapshot, offers []economy.Offer) {
	if r.resize.CompareAndSwap(true, false) {
		r.screen.Sync()
		r.Resize()
	}
	r.status = snap.Status
	r.banner = snap.Banner
	r.offers = offers
	snap.Render(r)
}

// worldToScreen converts arena coordinates to buffer coordinates.
func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (int, int) {
	if r.arena.Width <= 0 || r.arena.Height <= 0 {
		return -1, -1
	}
	x := int(math.Floor(pos.X / r.arena.Width * float64(r.width)))
	y := int(math.Floor(pos.Y / r.arena.Height * float64(r.height)))
	return x, y
}

// ScreenToWorld converts a screen cell to the arena point at its centre.
// It is the inverse of the buffer mapping, offset by the border and HUD.
func (r *TerminalRenderer) ScreenToWorld(col, row int) physics.Vector2D {
	bx := float64(col-1) + 0.5
	by := float64(row-1-hudTop) + 0.5
	return physics.Vector2D{
		X: bx / float64(r.width) * r.arena.Width,
		Y: by / float64(r.height) * r.arena.Height,
	}
}

func (r *TerminalRenderer) plot(pos physics.Vector2D, ch rune, style tcell.Style) {
	x, y := r.worldToScreen(pos)
	if x >= 0 && x < r.width && y >= 0 && y < r.height {
		r.buffer[y][x] = cell{r: ch, style: style}
	}
}

func colorStyle(hex string) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.GetColor(hex))
}

// Clear implements entity.Renderer
func (r *TerminalRenderer) Clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = cell{r: ' ', style: tcell.StyleDefault}
		}
	}
}

// RenderPlayer implements entity.Renderer
func (r *TerminalRenderer) RenderPlayer(player *entity.Player) {
	style := colorStyle(entity.PlayerColor).Bold(true)
	if player.MaxHealth > 0 && player.Health/player.MaxHealth < 0.3 {
		style = colorStyle(entity.HurtColor).Bold(true)
	}
	r.plot(player.Position, '@', style)
}

// RenderEnemy implements entity.Renderer. The glyph empties as the enemy
// loses health.
func (r *TerminalRenderer) RenderEnemy(enemy *entity.Enemy) {
	glyph := '●'
	switch f := enemy.HealthFraction(); {
	case f <= 0.34:
		glyph = '○'
	case f <= 0.67:
		glyph = '◐'
	}
	r.plot(enemy.Position, glyph, colorStyle(enemy.Color))
}

// RenderProjectile implements entity.Renderer
func (r *TerminalRenderer) RenderProjectile(projectile *entity.Projectile) {
	r.plot(projectile.Position, '•', colorStyle(projectile.Color))
}

// RenderPickup implements entity.Renderer
func (r *TerminalRenderer) RenderPickup(pickup *entity.Pickup) {
	r.plot(pickup.Position, '◆', styleOffer)
}

// RenderParticle implements entity.Renderer. Faded particles are dimmed.
func (r *TerminalRenderer) RenderParticle(particle *entity.Particle) {
	style := colorStyle(particle.Color)
	ch := '*'
	if particle.Alpha() < 0.5 {
		ch = '·'
		style = style.Dim(true)
	}
	r.plot(particle.Position, ch, style)
}

// Present implements entity.Renderer
func (r *TerminalRenderer) Present() {
	s := r.screen
	s.Clear()

	r.drawStatus(0)

	top := hudTop
	bottom := top + r.height + 1
	s.SetContent(0, top, '┌', nil, styleBorder)
	s.SetContent(r.width+1, top, '┐', nil, styleBorder)
	s.SetContent(0, bottom, '└', nil, styleBorder)
	s.SetContent(r.width+1, bottom, '┘', nil, styleBorder)
	for x := 1; x <= r.width; x++ {
		s.SetContent(x, top, '─', nil, styleBorder)
		s.SetContent(x, bottom, '─', nil, styleBorder)
	}
	for y := range r.buffer {
		s.SetContent(0, top+1+y, '│', nil, styleBorder)
		s.SetContent(r.width+1, top+1+y, '│', nil, styleBorder)
		for x, c := range r.buffer[y] {
			s.SetContent(x+1, top+1+y, c.r, nil, c.style)
		}
	}

	r.drawOverlay(top + 1)
	r.drawText(0, bottom+1, " "+HelpLine(r.status.State), styleMuted)
	s.Show()
}

func (r *TerminalRenderer) drawStatus(row int) {
	x := r.drawText(0, row, " "+StatusLine(r.status)+"  HP ", styleHUD)
	r.drawBar(x, row, 20, r.status.Health, r.status.MaxHealth)
}

// drawBar draws a health bar of the given width starting at column x.
func (r *TerminalRenderer) drawBar(x, row, width int, value, maxValue float64) {
	filled := 0
	if maxValue > 0 {
		filled = int(math.Round(math.Max(0, math.Min(1, value/maxValue)) * float64(width)))
	}
	for i := 0; i < width; i++ {
		style := colorStyle(entity.PlayerColor)
		ch := '█'
		if i >= filled {
			style = styleMuted
			ch = '░'
		}
		r.screen.SetContent(x+i, row, ch, nil, style)
	}
}

// drawOverlay draws the state-specific panel centred in the arena.
func (r *TerminalRenderer) drawOverlay(top int) {
	lines := OverlayLines(r.status, r.banner, r.offers)
	if len(lines) == 0 {
		return
	}
	start := top + max((r.height-len(lines))/2, 0)
	for i, line := range lines {
		style := styleHUD
		if i == 0 {
			style = styleBanner
		}
		x := 1 + max((r.width-runewidth.StringWidth(line))/2, 0)
		r.drawText(x, start+i, line, style)
	}
}

// drawText writes s at (x, row) and returns the column after it. Wide runes
// take two cells.
func (r *TerminalRenderer) drawText(x, row int, s string, style tcell.Style) int {
	for _, ch := range s {
		r.screen.SetContent(x, row, ch, nil, style)
		x += max(runewidth.RuneWidth(ch), 1)
	}
	return x
}
