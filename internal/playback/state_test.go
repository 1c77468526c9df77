package playback

import (
	"errors"
	"testing"

	"github.com/llehouerou/cadence/internal/player"
	"github.com/llehouerou/cadence/internal/playlist"
)

func TestState_String(t *testing.T) {
	names := map[State]string{
		StateStopped: "Stopped",
		StatePlaying: "Playing",
		StatePaused:  "Paused",
		State(-1):    "Unknown",
	}
	for state, want := range names {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", int(state), got, want)
		}
	}
}

type stateStep struct {
	name   string
	do     func(svc Service, p *player.Mock)
	want   State
	active bool
}

func runStateSteps(t *testing.T, svc Service, p *player.Mock, steps []stateStep) {
	t.Helper()
	for _, st := range steps {
		st.do(svc, p)
		if got := svc.State(); got != st.want {
			t.Fatalf("after %s: State() = %v, want %v", st.name, got, st.want)
		}
		if got := svc.State().IsActive(); got != st.active {
			t.Errorf("after %s: IsActive() = %v, want %v", st.name, got, st.active)
		}
	}
}

func TestState_Transitions(t *testing.T) {
	tests := []struct {
		name  string
		opts  []playlist.Option
		steps []stateStep
	}{
		{
			name: "play pause resume stop",
			steps: []stateStep{
				{"play collection", func(svc Service, _ *player.Mock) {
					svc.PlayCollection([]playlist.Track{trackA, trackB}, 0)
				}, StatePlaying, true},
				{"started", func(svc Service, p *player.Mock) {
					_ = emit(svc, p, player.EventStarted)
				}, StatePlaying, true},
				{"pause requested", func(svc Service, _ *player.Mock) {
					svc.Pause()
				}, StatePlaying, true},
				{"paused", func(svc Service, p *player.Mock) {
					_ = emit(svc, p, player.EventPaused)
				}, StatePaused, true},
				{"resume", func(svc Service, _ *player.Mock) {
					svc.Play()
				}, StatePlaying, true},
				{"stop", func(svc Service, _ *player.Mock) {
					svc.Stop()
				}, StateStopped, false},
			},
		},
		{
			name: "output error pauses",
			steps: []stateStep{
				{"play collection", func(svc Service, _ *player.Mock) {
					svc.PlayCollection([]playlist.Track{trackA}, 0)
				}, StatePlaying, true},
				{"error", func(svc Service, p *player.Mock) {
					_ = svc.HandleEvent(player.Event{
						Kind:       player.EventError,
						Generation: p.Generation(),
						Err:        errors.New("device lost"),
					})
				}, StatePaused, true},
				{"retry", func(svc Service, _ *player.Mock) {
					svc.Play()
				}, StatePlaying, true},
			},
		},
		{
			name: "paused then queue emptied",
			steps: []stateStep{
				{"play collection", func(svc Service, _ *player.Mock) {
					svc.PlayCollection([]playlist.Track{trackA}, 0)
				}, StatePlaying, true},
				{"pause", func(svc Service, p *player.Mock) {
					svc.Pause()
					_ = emit(svc, p, player.EventPaused)
				}, StatePaused, true},
				{"clear", func(svc Service, _ *player.Mock) {
					svc.ClearQueue()
				}, StateStopped, false},
			},
		},
		{
			name: "last track ends",
			steps: []stateStep{
				{"play collection", func(svc Service, _ *player.Mock) {
					svc.PlayCollection([]playlist.Track{trackA}, 0)
				}, StatePlaying, true},
				{"dequeue", func(svc Service, _ *player.Mock) {
					_, _ = svc.Dequeue(0)
				}, StateStopped, false},
			},
		},
		{
			name: "repeat one keeps playing",
			opts: []playlist.Option{playlist.WithRepeatMode(playlist.RepeatOne)},
			steps: []stateStep{
				{"play collection", func(svc Service, _ *player.Mock) {
					svc.PlayCollection([]playlist.Track{trackA, trackB}, 1)
				}, StatePlaying, true},
				{"ended", func(svc Service, p *player.Mock) {
					_ = emit(svc, p, player.EventEnded)
				}, StatePlaying, true},
			},
		},
		{
			name: "stopped ignores pause",
			steps: []stateStep{
				{"pause", func(svc Service, _ *player.Mock) {
					svc.Pause()
				}, StateStopped, false},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, p := newTestService(tt.opts...)
			runStateSteps(t, svc, p, tt.steps)
		})
	}
}
