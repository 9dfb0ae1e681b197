package audio

import (
	"context"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/opd-ai/crystal-raiders/pkg/event"
	"github.com/opd-ai/crystal-raiders/pkg/logging"
)

// DefaultSampleRate is the speaker rate used by the arena binary.
const DefaultSampleRate = beep.SampleRate(44100)

// Cues maps the events that make a sound to their tone.
var Cues = map[event.Type]Tone{
	event.ProjectileFired:  {Wave: Sawtooth, Freq: 680, Duration: 100 * time.Millisecond, Volume: 0.25, Decay: 200 * time.Millisecond},
	event.EnemyHit:         {Wave: Square, Freq: 180, Duration: 200 * time.Millisecond, Volume: 0.2, Decay: 300 * time.Millisecond},
	event.PlayerHit:        {Wave: Sine, Freq: 120, Duration: 300 * time.Millisecond, Volume: 0.25, Decay: 300 * time.Millisecond},
	event.PickupCollected:  {Wave: Triangle, Freq: 720, Duration: 200 * time.Millisecond, Volume: 0.25, Decay: 400 * time.Millisecond},
	event.WaveCleared:      {Wave: Triangle, Freq: 880, Duration: 400 * time.Millisecond, Volume: 0.3, Decay: 500 * time.Millisecond},
	event.UpgradePurchased: {Wave: Triangle, Freq: 520, Duration: 200 * time.Millisecond, Volume: 0.2, Decay: 400 * time.Millisecond},
}

// Player plays cue tones for bus events through a shared mixer.
type Player struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	volume      float64
	mixer       *beep.Mixer
	enqueue     func(beep.Streamer)
	subs        []*event.Subscription
	logger      *logging.Logger
	initialized bool
	played      int
}

// NewPlayer creates a player at master volume in [0,1]. Nothing is audible
// until Initialize opens the speaker.
func NewPlayer(rate beep.SampleRate, volume float64, logger *logging.Logger) *Player {
	if logger == nil {
		logger = logging.Discard()
	}
	p := &Player{
		rate:   rate,
		volume: volume,
		mixer:  &beep.Mixer{},
		logger: logger.Component("audio"),
	}
	p.enqueue = p.addToSpeaker
	return p
}

// Initialize opens the speaker and starts the mixer.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return logging.WrapError(err, "speaker init at %d Hz", int(p.rate))
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

func (p *Player) addToSpeaker(s beep.Streamer) {
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Attach subscribes the player to every event type with a cue.
func (p *Player) Attach(bus *event.Bus) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for t := range Cues {
		p.subs = append(p.subs, bus.Subscribe(t, p.handle))
	}
}

func (p *Player) handle(e event.Event) {
	if tone, ok := Cues[e.GetType()]; ok {
		p.Play(tone)
	}
}

// Play mixes tone in. It is a no-op before Initialize.
func (p *Player) Play(tone Tone) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	p.enqueue(tone.Streamer(p.rate, p.volume))
	p.played++
}

// Played returns the number of tones started.
func (p *Player) Played() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played
}

// Close unsubscribes from the bus and silences the mixer.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, s := range p.subs {
		s.Cancel()
	}
	p.subs = nil

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
	p.logger.Debug(context.Background(), "audio closed", "played", p.played)
}
