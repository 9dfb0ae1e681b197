package engine

import (
	"context"
	"time"

	"github.com/opd-ai/crystal-raiders/pkg/entity"
	"github.com/opd-ai/crystal-raiders/pkg/physics"
)

// InputFunc supplies the intent and aim target for the next tick.
type InputFunc func() (entity.Intent, physics.Vector2D)

// FrameFunc receives the snapshot produced by each tick.
type FrameFunc func(Snapshot)

// Loop drives g at a fixed rate from a single goroutine until ctx is
// cancelled. Each tick is passed the wall-clock time since the previous one;
// the Game clamps it. A nil input means no input, a nil frame is skipped.
func Loop(ctx context.Context, g *Game, interval time.Duration, input InputFunc, frame FrameFunc) error {
	if interval <= 0 {
		interval = time.Second / 60
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			var (
				intent entity.Intent
				aim    physics.Vector2D
			)
			if input != nil {
				intent, aim = input()
			}
			snap := g.AdvanceTick(dt, intent, aim)
			if frame != nil {
				frame(snap)
			}
		}
	}
}
