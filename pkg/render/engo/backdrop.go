// pkg/render/engo/backdrop.go
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/crystal-raiders/pkg/physics"
)

// Backdrop defaults: a faint grid drifting diagonally.
const (
	DefaultGridSize    = 60
	DefaultScrollSpeed = 20 // pixels per second
	gridLineWidth      = 2
	zBackdrop          = 0
)

var (
	BackgroundColor = color.NRGBA{R: 0x04, G: 0x0b, B: 0x19, A: 255}
	gridColor       = color.NRGBA{R: 53, G: 195, B: 255, A: 13}
)

// BackdropSystem scrolls the arena grid. Line entities are created once and
// only moved each frame.
type BackdropSystem struct {
	arena    physics.Bounds
	gridSize float64
	speed    float64
	elapsed  float64

	columns []*sprite
	rows    []*sprite
}

// NewBackdropSystem creates the grid lines for arena and adds them to sink.
func NewBackdropSystem(sink SpriteSink, arena physics.Bounds) *BackdropSystem {
	b := &BackdropSystem{arena: arena, gridSize: DefaultGridSize, speed: DefaultScrollSpeed}
	n := lineCount(arena.Width, b.gridSize)
	for i := 0; i < n; i++ {
		b.columns = append(b.columns, newLine(sink, gridLineWidth, float32(arena.Height)))
	}
	n = lineCount(arena.Height, b.gridSize)
	for i := 0; i < n; i++ {
		b.rows = append(b.rows, newLine(sink, float32(arena.Width), gridLineWidth))
	}
	b.place()
	return b
}

// lineCount covers [-grid, extent+grid) like the offset loop it replaces.
func lineCount(extent, grid float64) int {
	return int(math.Ceil((extent+2*grid)/grid))
}

func newLine(sink SpriteSink, w, h float32) *sprite {
	s := &sprite{BasicEntity: ecs.NewBasic()}
	s.Drawable = common.Rectangle{}
	s.Color = gridColor
	s.Scale = engo.Point{X: 1, Y: 1}
	s.Width, s.Height = w, h
	s.SetZIndex(zBackdrop)
	sink.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	return s
}

// Offset returns the current scroll offset in [0, gridSize).
func (b *BackdropSystem) Offset() float64 {
	return math.Mod(b.elapsed*b.speed, b.gridSize)
}

// Remove satisfies the ecs.System interface
func (b *BackdropSystem) Remove(basic ecs.BasicEntity) {}

// Update advances the scroll.
func (b *BackdropSystem) Update(dt float32) {
	b.elapsed += float64(dt)
	b.place()
}

func (b *BackdropSystem) place() {
	offset := b.Offset()
	for i, s := range b.columns {
		s.Position = engo.Point{X: float32(float64(i-1)*b.gridSize + offset), Y: 0}
	}
	for i, s := range b.rows {
		s.Position = engo.Point{X: 0, Y: float32(float64(i-1)*b.gridSize + offset)}
	}
}
