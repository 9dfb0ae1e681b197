// pkg/render/engo/assets.go
package engo

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	fontURL  = "crystal-raiders/goregular.ttf"
	glowSize = 64 // texture edge in pixels; sprites are scaled to radius
)

// AssetManager owns the HUD font, the glow texture every round sprite is
// drawn with, and a cache of parsed hex colours.
type AssetManager struct {
	font *common.Font
	glow common.Drawable

	mu     sync.Mutex
	colors map[string]color.NRGBA
}

// NewAssetManager creates an empty asset manager. Colours work immediately;
// the font and texture need LoadAssets and a GL context.
func NewAssetManager() *AssetManager {
	return &AssetManager{colors: make(map[string]color.NRGBA)}
}

// LoadAssets registers the embedded font with engo and uploads the glow
// texture. It must run inside Preload or Setup.
func (am *AssetManager) LoadAssets() error {
	if err := engo.Files.LoadReaderData(fontURL, bytes.NewReader(goregular.TTF)); err != nil {
		return fmt.Errorf("failed to load HUD font: %w", err)
	}
	am.font = &common.Font{URL: fontURL, FG: color.White, Size: 16}
	if err := am.font.CreatePreloaded(); err != nil {
		return fmt.Errorf("failed to prepare HUD font: %w", err)
	}

	am.glow = common.NewTextureSingle(common.NewImageObject(GlowImage(glowSize)))
	return nil
}

// Font returns the HUD font, or nil before LoadAssets.
func (am *AssetManager) Font() *common.Font {
	return am.font
}

// Glow returns the sprite drawable for round entities. Before LoadAssets it
// falls back to a flat circle.
func (am *AssetManager) Glow() common.Drawable {
	if am.glow == nil {
		return common.Circle{}
	}
	return am.glow
}

// Color parses a "#rrggbb" colour, caching the result. Unparseable input
// yields white.
func (am *AssetManager) Color(hex string) color.NRGBA {
	am.mu.Lock()
	defer am.mu.Unlock()
	if c, ok := am.colors[hex]; ok {
		return c
	}
	c := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	if parsed, err := colorful.Hex(hex); err == nil {
		r, g, b := parsed.RGB255()
		c = color.NRGBA{R: r, G: g, B: b, A: 255}
	}
	am.colors[hex] = c
	return c
}

// WithAlpha returns c with its alpha scaled by a in [0,1].
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(math.Round(255 * math.Max(0, math.Min(1, a))))
	return c
}

// GlowImage renders a white disc whose alpha falls off toward the rim, the
// radial gradient entities are tinted with.
func GlowImage(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	c := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)+0.5-c, float64(y)+0.5-c) / c
			if d > 1 {
				continue
			}
			a := 1.0
			if d > 0.3 {
				a = 1 - (d-0.3)/0.7
			}
			img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: uint8(math.Round(255 * a))})
		}
	}
	return img
}
