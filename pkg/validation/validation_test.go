package validation

import (
	"math"
	"strings"
	"testing"

	"github.com/opd-ai/crystal-raiders/pkg/config"
	"github.com/opd-ai/crystal-raiders/pkg/physics"
)

func TestValidateGameConfig(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*config.GameConfig)
		wantErr     bool
		errContains string
	}{
		{
			name:    "defaults are valid",
			modify:  func(*config.GameConfig) {},
			wantErr: false,
		},
		{
			name:        "zero arena width",
			modify:      func(c *config.GameConfig) { c.Arena.Width = 0 },
			wantErr:     true,
			errContains: "arena width must be positive",
		},
		{
			name:        "multishot over cap",
			modify:      func(c *config.GameConfig) { c.Player.MultiShot = 9 },
			wantErr:     true,
			errContains: "multiShot",
		},
		{
			name:        "inverted pickup value",
			modify:      func(c *config.GameConfig) { c.Pickup.MinValue = 50 },
			wantErr:     true,
			errContains: "pickup value range is inverted",
		},
		{
			name:        "drop chance above one",
			modify:      func(c *config.GameConfig) { c.Pickup.DropChance = 1.5 },
			wantErr:     true,
			errContains: "drop chance",
		},
		{
			name:        "player too large for arena",
			modify:      func(c *config.GameConfig) { c.Player.Radius = 400 },
			wantErr:     true,
			errContains: "does not fit the arena",
		},
		{
			name:        "infinite speed",
			modify:      func(c *config.GameConfig) { c.Player.Speed = math.Inf(1) },
			wantErr:     true,
			errContains: "player speed",
		},
		{
			name:        "max delta zero",
			modify:      func(c *config.GameConfig) { c.MaxDelta = 0 },
			wantErr:     true,
			errContains: "max delta",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.modify(cfg)
			err := ValidateGameConfig(cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateGameConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error %q does not contain %q", err, tt.errContains)
			}
		})
	}
}

func TestValidateGameConfig_ReportsAllProblems(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Arena.Height = -1
	cfg.Wave.MaxCount = 0
	err := ValidateGameConfig(cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"arena height", "wave max count"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
	if ValidateGameConfig(nil) == nil {
		t.Error("nil config should be rejected")
	}
}

func TestValidateUpgradeID(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        string
		wantErr     bool
		errContains string
	}{
		{name: "exact", input: "speed", want: "speed"},
		{name: "mixed case and spaces", input: "  MultiShot ", want: "multishot"},
		{name: "empty", input: "  ", wantErr: true, errContains: "cannot be empty"},
		{name: "unknown", input: "laser", wantErr: true, errContains: "unknown upgrade"},
		{name: "too long", input: strings.Repeat("x", 40), wantErr: true, errContains: "too long"},
		{name: "invalid utf8", input: "sp\xffeed", wantErr: true, errContains: "UTF-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateUpgradeID(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ValidateUpgradeID(%q) expected error", tt.input)
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err, tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateUpgradeID(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ValidateUpgradeID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateAim(t *testing.T) {
	tests := []struct {
		name    string
		aim     physics.Vector2D
		wantErr bool
	}{
		{"finite", physics.Vector2D{X: 10, Y: -4}, false},
		{"nan x", physics.Vector2D{X: math.NaN(), Y: 0}, true},
		{"inf y", physics.Vector2D{X: 0, Y: math.Inf(-1)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateAim(tt.aim); (err != nil) != tt.wantErr {
				t.Errorf("ValidateAim() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestClampDelta(t *testing.T) {
	tests := []struct {
		dt   float64
		want float64
	}{
		{0.016, 0.016},
		{0.5, 0.1},
		{-1, 0},
		{math.NaN(), 0},
		{math.Inf(1), 0.1},
	}
	for _, tt := range tests {
		if got := ClampDelta(tt.dt, 0.1); got != tt.want {
			t.Errorf("ClampDelta(%v) = %v, want %v", tt.dt, got, tt.want)
		}
	}
}
