// pkg/render/engo/input_test.go
package engo

import (
	"testing"

	"github.com/opd-ai/crystal-raiders/pkg/entity"
	"github.com/opd-ai/crystal-raiders/pkg/physics"
	"github.com/opd-ai/crystal-raiders/pkg/render"
)

type fakeButtons struct {
	down    map[string]bool
	pressed map[string]bool
}

func (f fakeButtons) Down(name string) bool        { return f.down[name] }
func (f fakeButtons) JustPressed(name string) bool { return f.pressed[name] }

type fakePointer struct {
	pos     physics.Vector2D
	pressed bool
}

func (f *fakePointer) Position() physics.Vector2D { return f.pos }
func (f *fakePointer) Pressed() bool              { return f.pressed }

func TestInputSystem_Intent(t *testing.T) {
	tests := []struct {
		name    string
		down    []string
		pointer fakePointer
		want    entity.Intent
	}{
		{name: "idle", want: entity.Intent{}},
		{name: "up left", down: []string{buttonUp, buttonLeft}, want: entity.Intent{Up: true, Left: true}},
		{name: "space fires", down: []string{buttonFire}, want: entity.Intent{Fire: true}},
		{name: "mouse fires", pointer: fakePointer{pressed: true}, want: entity.Intent{Fire: true}},
		{name: "all directions", down: []string{buttonUp, buttonDown, buttonLeft, buttonRight}, want: entity.Intent{Up: true, Down: true, Left: true, Right: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := fakeButtons{down: map[string]bool{}}
			for _, name := range tt.down {
				b.down[name] = true
			}
			pointer := tt.pointer
			pointer.pos = physics.Vector2D{X: 12, Y: 34}
			is := newInputSystem(b, &pointer, nil)
			is.Update(1.0 / 60)

			intent, aim := is.Intent()
			if intent != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, intent)
			}
			if aim != pointer.pos {
				t.Errorf("expected aim %+v, got %+v", pointer.pos, aim)
			}
		})
	}
}

func TestInputSystem_Actions(t *testing.T) {
	tests := []struct {
		name    string
		pressed []string
		want    []render.Action
	}{
		{name: "none"},
		{name: "confirm", pressed: []string{buttonConfirm}, want: []render.Action{{Command: render.CommandConfirm}}},
		{name: "retry", pressed: []string{buttonRetry}, want: []render.Action{{Command: render.CommandRetry}}},
		{name: "shop", pressed: []string{buttonShop}, want: []render.Action{{Command: render.CommandOpenShop}}},
		{name: "close shop", pressed: []string{buttonCloseShop}, want: []render.Action{{Command: render.CommandCloseShop}}},
		{name: "quit", pressed: []string{buttonQuit}, want: []render.Action{{Command: render.CommandQuit}}},
		{name: "buy slot 3", pressed: []string{"buy3"}, want: []render.Action{render.BuySlot(3)}},
		{
			name:    "quit is reported first",
			pressed: []string{"buy1", buttonQuit},
			want:    []render.Action{{Command: render.CommandQuit}, render.BuySlot(1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := fakeButtons{pressed: map[string]bool{}}
			for _, name := range tt.pressed {
				b.pressed[name] = true
			}
			var got []render.Action
			is := newInputSystem(b, &fakePointer{}, func(a render.Action) { got = append(got, a) })
			is.Update(1.0 / 60)

			if len(got) != len(tt.want) {
				t.Fatalf("expected %d actions, got %+v", len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("action %d: expected %+v, got %+v", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestBuyButtonsCoverCatalog(t *testing.T) {
	for i := range buyButtons {
		if a := render.BuySlot(i + 1); a.Command != render.CommandBuy {
			t.Errorf("slot %d has no catalog entry", i+1)
		}
	}
}
