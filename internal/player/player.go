package player

import (
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

// positionInterval is how often EventTimeUpdate is reported while playing.
const positionInterval = 250 * time.Millisecond

var (
	speakerMu          sync.Mutex
	speakerInitialized bool
	speakerSampleRate  beep.SampleRate
)

// initSpeaker opens the audio device at the rate of the first decoded track.
// Later tracks are resampled to that rate.
func initSpeaker(rate beep.SampleRate) error {
	speakerMu.Lock()
	defer speakerMu.Unlock()
	if speakerInitialized {
		return nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return err
	}
	speakerSampleRate = rate
	speakerInitialized = true
	return nil
}

// Player is the beep-backed audio output.
//
// Load decodes in the background. Play and Pause may be called before the
// decoder is ready; the latest intent is applied once it is.
type Player struct {
	mu         sync.Mutex
	state      State
	generation uint64
	source     string
	wantPlay   bool
	streamer   beep.StreamSeekCloser
	format     beep.Format
	ctrl       *beep.Ctrl
	volume     *effects.Volume
	level      float64
	stopTicker chan struct{}
	events     *mailbox
	decode     func(path string) (beep.StreamSeekCloser, beep.Format, error)
}

// New creates a player with the given initial volume level (0.0 to 1.0).
func New(level float64) *Player {
	return &Player{
		state:  Stopped,
		level:  clampLevel(level),
		events: newMailbox(),
		decode: decodeFile,
	}
}

// Load releases the current track and starts decoding source for generation.
func (p *Player) Load(generation uint64, source string) {
	p.mu.Lock()
	p.releaseLocked()
	p.generation = generation
	p.source = source
	p.wantPlay = false
	p.mu.Unlock()

	go p.open(generation, source)
}

func (p *Player) open(generation uint64, source string) {
	streamer, format, err := p.decode(source)
	if err == nil {
		err = initSpeaker(format.SampleRate)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if generation != p.generation {
		// Superseded while decoding.
		if streamer != nil {
			streamer.Close()
		}
		return
	}
	if err != nil {
		if streamer != nil {
			streamer.Close()
		}
		p.emit(Event{Kind: EventError, Generation: generation, Err: err})
		return
	}

	p.streamer = streamer
	p.format = format

	var out beep.Streamer = streamer
	if format.SampleRate != speakerSampleRate {
		out = beep.Resample(4, format.SampleRate, speakerSampleRate, streamer)
	}
	p.ctrl = &beep.Ctrl{Streamer: out, Paused: true}
	p.volume = &effects.Volume{Streamer: p.ctrl, Base: 2, Volume: levelToVolume(p.level), Silent: p.level <= 0}
	p.state = Paused

	p.emit(Event{
		Kind:       EventLoadedMetadata,
		Generation: generation,
		Duration:   format.SampleRate.D(streamer.Len()),
	})

	speaker.Play(beep.Seq(p.volume, beep.Callback(func() {
		// Runs on the speaker goroutine with the speaker lock held.
		go p.finished(generation)
	})))

	if p.wantPlay {
		p.resumeLocked()
	}
}

func (p *Player) finished(generation uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if generation != p.generation || p.streamer == nil {
		return
	}
	p.releaseLocked()
	p.emit(Event{Kind: EventEnded, Generation: generation})
}

// releaseLocked stops audio and closes the decoder. The caller holds p.mu.
func (p *Player) releaseLocked() {
	p.haltTicker()
	if p.streamer != nil {
		speaker.Clear()
		p.streamer.Close()
		p.streamer = nil
	}
	p.ctrl = nil
	p.volume = nil
	p.state = Stopped
}

// Events returns the channel events are delivered on.
func (p *Player) Events() <-chan Event {
	return p.events.Out()
}

// Close releases the audio device resources and closes the event channel.
func (p *Player) Close() error {
	p.mu.Lock()
	p.generation++
	p.releaseLocked()
	p.mu.Unlock()

	p.events.close()
	return nil
}

// State returns the output-side state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Player) emit(e Event) {
	p.events.put(e)
}
