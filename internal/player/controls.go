package player

import (
	"time"

	"github.com/gopxl/beep/v2/speaker"
)

// Play starts or resumes the loaded track. If the decoder is still working,
// playback starts as soon as it is ready.
func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.source == "" {
		return
	}
	p.wantPlay = true
	if p.ctrl == nil || !p.state.CanResume() {
		return
	}
	p.resumeLocked()
}

func (p *Player) resumeLocked() {
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
	p.state = Playing

	p.emit(Event{Kind: EventStarted, Generation: p.generation})
	p.startTicker(p.generation)
}

// Pause pauses playback. EventPaused is reported for the current load even
// when the decoder had not started yet, so callers always see the pause land.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.source == "" {
		return
	}
	p.wantPlay = false
	if p.state == Paused {
		return
	}
	if p.state.CanPause() {
		speaker.Lock()
		p.ctrl.Paused = true
		speaker.Unlock()
		p.state = Paused
	}
	p.haltTicker()
	p.emit(Event{Kind: EventPaused, Generation: p.generation})
}

// Seek moves playback to position, clamped to the track.
func (p *Player) Seek(position time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.state.IsActive() || p.streamer == nil {
		return
	}

	target := p.format.SampleRate.N(position)
	target = min(max(target, 0), max(p.streamer.Len()-1, 0))

	speaker.Lock()
	_ = p.streamer.Seek(target)
	speaker.Unlock()
}

// Position returns the current playback position.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.positionLocked()
}

func (p *Player) positionLocked() time.Duration {
	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := p.format.SampleRate.D(p.streamer.Position())
	speaker.Unlock()
	return pos
}

// startTicker reports the position every positionInterval until the track
// pauses, ends, or is replaced.
func (p *Player) startTicker(generation uint64) {
	p.haltTicker()
	stop := make(chan struct{})
	p.stopTicker = stop

	go func() {
		ticker := time.NewTicker(positionInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				p.mu.Lock()
				if generation == p.generation && p.state == Playing {
					p.emit(Event{Kind: EventTimeUpdate, Generation: generation, Position: p.positionLocked()})
				}
				p.mu.Unlock()
			}
		}
	}()
}

func (p *Player) haltTicker() {
	if p.stopTicker != nil {
		close(p.stopTicker)
		p.stopTicker = nil
	}
}
