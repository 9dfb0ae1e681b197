// pkg/engine/race_condition_test.go
package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/opd-ai/crystal-raiders/pkg/economy"
	"github.com/opd-ai/crystal-raiders/pkg/entity"
	"github.com/opd-ai/crystal-raiders/pkg/physics"
)

// TestGameRaceCondition drives ticks, shop calls and snapshots from several
// goroutines at once. Run with -race.
func TestGameRaceCondition(t *testing.T) {
	g := newTestGame(21)
	g.StartRun()

	var wg sync.WaitGroup
	done := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				snap := g.AdvanceTick(0.016, entity.Intent{Fire: true, Left: true}, physics.Vector2D{X: 0, Y: 0})
				if snap.State == StateBetweenWaves {
					g.StartNextWave()
				}
				if snap.State == StateGameOver {
					g.RetryRun()
				}
			}
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			g.OpenShop()
			for _, u := range economy.Catalog {
				g.Purchase(u.ID)
			}
			g.CloseShop()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			snap := g.Snapshot()
			for j := range snap.Enemies {
				_ = snap.Enemies[j].Position
			}
			_ = g.Offers()
			_ = g.Status()
		}
	}()

	time.Sleep(50 * time.Millisecond)
	close(done)
	wg.Wait()
}
