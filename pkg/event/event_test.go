// pkg/event/event_test.go
package event

import (
	"sync"
	"testing"

	"github.com/opd-ai/crystal-raiders/pkg/physics"
)

func TestNewEventBus_Creation_ReturnsInitializedBus(t *testing.T) {
	bus := NewEventBus()

	if bus == nil {
		t.Fatal("NewEventBus() returned nil")
	}
	if bus.handlers == nil {
		t.Error("handlers map not initialized")
	}
	if bus.nextID != 1 {
		t.Errorf("expected nextID to be 1, got %d", bus.nextID)
	}
}

func TestBusSubscribe_SingleHandler_ReturnsValidSubscription(t *testing.T) {
	bus := NewEventBus()

	sub := bus.Subscribe(EnemyKilled, func(e Event) {})

	if sub == nil {
		t.Fatal("Subscribe() returned nil subscription")
	}
	if sub.ID == 0 {
		t.Error("subscription ID should not be 0")
	}
	if sub.Type != EnemyKilled {
		t.Errorf("subscription Type = %q, want %q", sub.Type, EnemyKilled)
	}
	if sub.Cancel == nil {
		t.Error("subscription Cancel function should not be nil")
	}
	if got := len(bus.handlers[EnemyKilled]); got != 1 {
		t.Errorf("expected 1 handler, got %d", got)
	}
}

func TestBusPublish_OrderAndFiltering(t *testing.T) {
	bus := NewEventBus()
	var calls []string

	bus.Subscribe(WaveCleared, func(e Event) { calls = append(calls, "first") })
	bus.Subscribe(WaveCleared, func(e Event) { calls = append(calls, "second") })
	bus.Subscribe(GameOver, func(e Event) { calls = append(calls, "wrong type") })

	bus.Publish(NewRunEvent(WaveCleared, "test", 1, 0, 150, 75, 0))

	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Errorf("calls = %v, want [first second]", calls)
	}
}

func TestBusPublish_NoSubscribers_NoError(t *testing.T) {
	bus := NewEventBus()
	bus.Publish(&BaseEvent{EventType: PlayerHit})
}

func TestSubscriptionCancel_ValidSubscription_RemovesHandler(t *testing.T) {
	bus := NewEventBus()
	called := 0

	sub := bus.Subscribe(PickupCollected, func(e Event) { called++ })
	other := bus.Subscribe(PickupCollected, func(e Event) {})

	sub.Cancel()
	sub.Cancel()

	if got := len(bus.handlers[PickupCollected]); got != 1 {
		t.Errorf("expected 1 handler after cancel, got %d", got)
	}

	bus.Publish(NewPickupEvent(PickupCollected, "test", 3, physics.Vector2D{}, 30))
	if called != 0 {
		t.Error("handler should not be called after cancellation")
	}

	other.Cancel()
	if _, ok := bus.handlers[PickupCollected]; ok {
		t.Error("empty handler list should be deleted")
	}
}

func TestBusPublish_HandlerMayCancelDuringDispatch(t *testing.T) {
	bus := NewEventBus()
	var sub *Subscription
	calls := 0
	sub = bus.Subscribe(EnemyHit, func(e Event) {
		calls++
		sub.Cancel()
	})
	bus.Subscribe(EnemyHit, func(e Event) { calls++ })

	bus.Publish(&BaseEvent{EventType: EnemyHit})
	bus.Publish(&BaseEvent{EventType: EnemyHit})

	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestBusSubscribeAll(t *testing.T) {
	bus := NewEventBus()
	seen := map[Type]int{}
	subs := bus.SubscribeAll(AllTypes, func(e Event) { seen[e.GetType()]++ })

	if len(subs) != len(AllTypes) {
		t.Fatalf("got %d subscriptions, want %d", len(subs), len(AllTypes))
	}
	for _, typ := range AllTypes {
		bus.Publish(&BaseEvent{EventType: typ})
	}
	for _, typ := range AllTypes {
		if seen[typ] != 1 {
			t.Errorf("%s seen %d times, want 1", typ, seen[typ])
		}
	}
}

func TestBusSubscribe_ConcurrentAccess_ThreadSafe(t *testing.T) {
	bus := NewEventBus()
	var wg sync.WaitGroup
	var mu sync.Mutex
	handlerCount := 0

	handler := func(e Event) {
		mu.Lock()
		handlerCount++
		mu.Unlock()
	}

	numGoroutines := 10
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			bus.Subscribe(ProjectileFired, handler)
		}()
	}
	wg.Wait()

	wg.Add(3)
	for i := 0; i < 3; i++ {
		go func() {
			defer wg.Done()
			bus.Publish(&BaseEvent{EventType: ProjectileFired})
		}()
	}
	wg.Wait()

	if handlerCount != numGoroutines*3 {
		t.Errorf("expected %d handler calls, got %d", numGoroutines*3, handlerCount)
	}
}

func TestEventConstructors(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  Type
	}{
		{"state", NewStateEvent("g", "menu", "playing"), StateChanged},
		{"run", NewRunEvent(RunStarted, "g", 1, 8, 0, 0, 100), RunStarted},
		{"combat", NewCombatEvent(EnemyHit, "g", 9, physics.Vector2D{X: 1}, 28, 12), EnemyHit},
		{"pickup", NewPickupEvent(PickupDropped, "g", 4, physics.Vector2D{}, 33), PickupDropped},
		{"upgrade", NewUpgradeEvent("g", "speed", 120, 30), UpgradePurchased},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.event.GetType() != tt.want {
				t.Errorf("GetType() = %q, want %q", tt.event.GetType(), tt.want)
			}
			if tt.event.GetSource() != "g" {
				t.Errorf("GetSource() = %v, want g", tt.event.GetSource())
			}
		})
	}

	s := NewStateEvent(nil, "menu", "playing")
	if s.From != "menu" || s.To != "playing" {
		t.Errorf("StateEvent = %+v", s)
	}
	u := NewUpgradeEvent(nil, "damage", 180, 20)
	if u.UpgradeID != "damage" || u.Cost != 180 || u.CreditsRemaining != 20 {
		t.Errorf("UpgradeEvent = %+v", u)
	}
}

func TestQueue_FlushPublishesInOrder(t *testing.T) {
	bus := NewEventBus()
	var order []Type
	bus.SubscribeAll(AllTypes, func(e Event) { order = append(order, e.GetType()) })

	var q Queue
	q.Push(&BaseEvent{EventType: EnemyHit})
	q.Push(&BaseEvent{EventType: EnemyKilled})
	q.Push(&BaseEvent{EventType: PickupDropped})
	if q.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", q.Len())
	}

	q.Flush(bus)

	want := []Type{EnemyHit, EnemyKilled, PickupDropped}
	if len(order) != len(want) {
		t.Fatalf("published %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, order[i], want[i])
		}
	}
	if q.Len() != 0 {
		t.Error("queue should be empty after Flush")
	}
}
