// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/crystal-raiders/pkg/physics"
)

// Type represents the type of event
type Type string

// Arena event types
const (
	RunStarted       Type = "run_started"
	WaveStarted      Type = "wave_started"
	WaveCleared      Type = "wave_cleared"
	ProjectileFired  Type = "projectile_fired"
	EnemyHit         Type = "enemy_hit"
	EnemyKilled      Type = "enemy_killed"
	PlayerHit        Type = "player_hit"
	PickupDropped    Type = "pickup_dropped"
	PickupCollected  Type = "pickup_collected"
	UpgradePurchased Type = "upgrade_purchased"
	StateChanged     Type = "state_changed"
	GameOver         Type = "game_over"
	BestScoreUpdated Type = "best_score_updated"
)

// AllTypes lists every event type the simulation publishes.
var AllTypes = []Type{
	RunStarted, WaveStarted, WaveCleared, ProjectileFired,
	EnemyHit, EnemyKilled, PlayerHit, PickupDropped, PickupCollected,
	UpgradePurchased, StateChanged, GameOver, BestScoreUpdated,
}

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription is returned by Subscribe; Cancel removes the handler.
type Subscription struct {
	ID     uint64
	Type   Type
	Cancel func()
}

type subscriber struct {
	id      uint64
	handler Handler
}

// Bus dispatches events synchronously to subscribers in subscription order.
type Bus struct {
	handlers map[Type][]subscriber
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscriber),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscriber{id: id, handler: handler})

	var once sync.Once
	return &Subscription{
		ID:   id,
		Type: eventType,
		Cancel: func() {
			once.Do(func() { b.unsubscribe(eventType, id) })
		},
	}
}

// SubscribeAll registers handler for each of types.
func (b *Bus) SubscribeAll(types []Type, handler Handler) []*Subscription {
	subs := make([]*Subscription, 0, len(types))
	for _, t := range types {
		subs = append(subs, b.Subscribe(t, handler))
	}
	return subs
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	handlers := b.handlers[eventType]
	for i, s := range handlers {
		if s.id == id {
			b.handlers[eventType] = append(handlers[:i:i], handlers[i+1:]...)
			break
		}
	}
	if len(b.handlers[eventType]) == 0 {
		delete(b.handlers, eventType)
	}
}

// Publish sends an event to all subscribed handlers. Handlers run on the
// caller's goroutine and may subscribe or cancel without deadlocking.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, s := range handlers {
		s.handler(event)
	}
}

// Specific event implementations

// StateEvent reports a game-state transition
type StateEvent struct {
	BaseEvent
	From string
	To   string
}

// NewStateEvent creates a state_changed event
func NewStateEvent(source interface{}, from, to string) *StateEvent {
	return &StateEvent{
		BaseEvent: BaseEvent{EventType: StateChanged, Source: source},
		From:      from,
		To:        to,
	}
}

// RunEvent reports run-level progress: run start, wave start and clear,
// game over and best score changes
type RunEvent struct {
	BaseEvent
	Wave    int
	Enemies int
	Score   float64
	Credits float64
	Best    float64
}

// NewRunEvent creates a run-level event of the given type
func NewRunEvent(eventType Type, source interface{}, wave, enemies int, score, credits, best float64) *RunEvent {
	return &RunEvent{
		BaseEvent: BaseEvent{EventType: eventType, Source: source},
		Wave:      wave,
		Enemies:   enemies,
		Score:     score,
		Credits:   credits,
		Best:      best,
	}
}

// CombatEvent reports shots, hits and kills
type CombatEvent struct {
	BaseEvent
	EntityID uint64
	Position physics.Vector2D
	Amount   float64 // damage dealt or projectiles fired
	Health   float64 // target health after the event
}

// NewCombatEvent creates a combat event of the given type
func NewCombatEvent(eventType Type, source interface{}, entityID uint64, position physics.Vector2D, amount, health float64) *CombatEvent {
	return &CombatEvent{
		BaseEvent: BaseEvent{EventType: eventType, Source: source},
		EntityID:  entityID,
		Position:  position,
		Amount:    amount,
		Health:    health,
	}
}

// PickupEvent reports crystals dropping and being collected
type PickupEvent struct {
	BaseEvent
	PickupID uint64
	Position physics.Vector2D
	Value    float64
}

// NewPickupEvent creates a pickup event of the given type
func NewPickupEvent(eventType Type, source interface{}, pickupID uint64, position physics.Vector2D, value float64) *PickupEvent {
	return &PickupEvent{
		BaseEvent: BaseEvent{EventType: eventType, Source: source},
		PickupID:  pickupID,
		Position:  position,
		Value:     value,
	}
}

// UpgradeEvent reports a completed purchase
type UpgradeEvent struct {
	BaseEvent
	UpgradeID        string
	Cost             float64
	CreditsRemaining float64
}

// NewUpgradeEvent creates an upgrade_purchased event
func NewUpgradeEvent(source interface{}, upgradeID string, cost, creditsRemaining float64) *UpgradeEvent {
	return &UpgradeEvent{
		BaseEvent:        BaseEvent{EventType: UpgradePurchased, Source: source},
		UpgradeID:        upgradeID,
		Cost:             cost,
		CreditsRemaining: creditsRemaining,
	}
}

// Queue collects events for later publication. The simulation queues while
// it holds its lock and flushes once released.
type Queue struct {
	events []Event
}

// Push appends an event
func (q *Queue) Push(e Event) {
	q.events = append(q.events, e)
}

// Len returns the number of queued events
func (q *Queue) Len() int {
	return len(q.events)
}

// Drain returns the queued events and empties the queue
func (q *Queue) Drain() []Event {
	events := q.events
	q.events = nil
	return events
}

// Flush publishes every queued event to bus in order
func (q *Queue) Flush(bus *Bus) {
	for _, e := range q.Drain() {
		bus.Publish(e)
	}
}
