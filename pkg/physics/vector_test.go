// pkg/physics/vector_test.go
package physics

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestVector2D_Arithmetic(t *testing.T) {
	tests := []struct {
		name     string
		got      Vector2D
		expected Vector2D
	}{
		{"add", Vector2D{X: 3, Y: 4}.Add(Vector2D{X: 1, Y: 2}), Vector2D{X: 4, Y: 6}},
		{"sub", Vector2D{X: 3, Y: 4}.Sub(Vector2D{X: 1, Y: 2}), Vector2D{X: 2, Y: 2}},
		{"scale", Vector2D{X: 3, Y: -4}.Scale(2), Vector2D{X: 6, Y: -8}},
		{"scale_zero", Vector2D{X: 3, Y: -4}.Scale(0), Vector2D{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %v, expected %v", tt.got, tt.expected)
			}
		})
	}
}

func TestVector2D_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		v        Vector2D
		expected Vector2D
	}{
		{"axis", Vector2D{X: 0, Y: 5}, Vector2D{X: 0, Y: 1}},
		{"diagonal", Vector2D{X: 3, Y: 4}, Vector2D{X: 0.6, Y: 0.8}},
		{"zero", Vector2D{}, Vector2D{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Normalize()
			if !almostEqual(got.X, tt.expected.X) || !almostEqual(got.Y, tt.expected.Y) {
				t.Errorf("Normalize() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestVector2D_DistanceAndAngle(t *testing.T) {
	a := Vector2D{X: 1, Y: 1}
	b := Vector2D{X: 4, Y: 5}
	if d := a.Distance(b); !almostEqual(d, 5) {
		t.Errorf("Distance() = %v, expected 5", d)
	}
	if got := (Vector2D{}).AngleTo(Vector2D{X: 0, Y: 10}); !almostEqual(got, math.Pi/2) {
		t.Errorf("AngleTo() = %v, expected pi/2", got)
	}
	v := FromAngle(math.Pi, 2)
	if !almostEqual(v.X, -2) || !almostEqual(v.Y, 0) {
		t.Errorf("FromAngle(pi, 2) = %v", v)
	}
}

func TestVector2D_IsFinite(t *testing.T) {
	tests := []struct {
		name string
		v    Vector2D
		want bool
	}{
		{"finite", Vector2D{X: 1, Y: -2}, true},
		{"nan", Vector2D{X: math.NaN(), Y: 0}, false},
		{"inf", Vector2D{X: 0, Y: math.Inf(-1)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsFinite(); got != tt.want {
				t.Errorf("IsFinite() = %v, want %v", got, tt.want)
			}
		})
	}
}
