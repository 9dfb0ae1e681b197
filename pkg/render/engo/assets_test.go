// pkg/render/engo/assets_test.go
package engo

import (
	"image/color"
	"testing"

	"github.com/EngoEngine/engo/common"
)

func TestAssetManager_Color(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		want color.NRGBA
	}{
		{name: "player", hex: "#62f4c9", want: color.NRGBA{R: 0x62, G: 0xf4, B: 0xc9, A: 255}},
		{name: "short form", hex: "#fff", want: color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{name: "garbage falls back to white", hex: "not-a-colour", want: color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
	}

	am := NewAssetManager()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := am.Color(tt.hex); got != tt.want {
				t.Errorf("Color(%q) = %v, want %v", tt.hex, got, tt.want)
			}
		})
	}
}

func TestAssetManager_ColorIsCached(t *testing.T) {
	am := NewAssetManager()
	am.Color("#35c3ff")
	am.Color("#35c3ff")
	if len(am.colors) != 1 {
		t.Errorf("expected one cached colour, got %d", len(am.colors))
	}
}

func TestAssetManager_FallbacksBeforeLoad(t *testing.T) {
	am := NewAssetManager()
	if am.Font() != nil {
		t.Error("expected no font before LoadAssets")
	}
	if _, ok := am.Glow().(common.Circle); !ok {
		t.Errorf("expected circle fallback, got %T", am.Glow())
	}
}

func TestWithAlpha(t *testing.T) {
	base := color.NRGBA{R: 10, G: 20, B: 30, A: 255}
	tests := []struct {
		alpha float64
		want  uint8
	}{
		{alpha: 1, want: 255},
		{alpha: 0.5, want: 128},
		{alpha: 0, want: 0},
		{alpha: -1, want: 0},
		{alpha: 3, want: 255},
	}
	for _, tt := range tests {
		got := WithAlpha(base, tt.alpha)
		if got.A != tt.want || got.R != 10 {
			t.Errorf("WithAlpha(%v) = %v, want alpha %d", tt.alpha, got, tt.want)
		}
	}
}

func TestGlowImage(t *testing.T) {
	img := GlowImage(32)
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
		t.Fatalf("unexpected bounds %v", b)
	}
	if a := img.NRGBAAt(16, 16).A; a != 255 {
		t.Errorf("centre alpha = %d, want 255", a)
	}
	if a := img.NRGBAAt(0, 0).A; a != 0 {
		t.Errorf("corner alpha = %d, want 0", a)
	}
	inner := img.NRGBAAt(16, 10).A
	outer := img.NRGBAAt(16, 2).A
	if outer >= inner {
		t.Errorf("expected alpha to fall off toward the rim: inner %d, outer %d", inner, outer)
	}
}
