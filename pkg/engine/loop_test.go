package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/opd-ai/crystal-raiders/pkg/entity"
	"github.com/opd-ai/crystal-raiders/pkg/physics"
)

func TestLoop_TicksUntilCancelled(t *testing.T) {
	g := newTestGame(1)
	g.StartRun()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var inputs, frames int
	input := func() (entity.Intent, physics.Vector2D) {
		inputs++
		return entity.Intent{Right: true}, g.world.Arena().Center()
	}
	frame := func(snap Snapshot) {
		frames++
		if frames == 5 {
			cancel()
		}
	}

	err := Loop(ctx, g, time.Millisecond, input, frame)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if frames != 5 || inputs != 5 {
		t.Errorf("expected 5 inputs and frames, got %d and %d", inputs, frames)
	}
	if tick := g.Snapshot().Tick; tick != 5 {
		t.Errorf("expected 5 ticks, got %d", tick)
	}
}

func TestLoop_NilCallbacks(t *testing.T) {
	g := newTestGame(2)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := Loop(ctx, g, 0, nil, nil); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	if g.State() != StateMenu {
		t.Errorf("loop changed state to %s", g.State())
	}
}
