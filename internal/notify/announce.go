package notify

import (
	"context"
	"log/slog"
	"strings"

	"github.com/llehouerou/cadence/internal/errmsg"
	"github.com/llehouerou/cadence/internal/playback"
	"github.com/llehouerou/cadence/internal/playlist"
)

const (
	nowPlayingTimeout = 5000
	failureTimeout    = -1
)

// Announcer turns playback events into desktop notifications. Now-playing
// notifications replace each other so only the latest track is shown.
type Announcer struct {
	notifier Notifier
	logger   *slog.Logger
	lastID   uint32
}

// NewAnnouncer creates an Announcer sending through n.
func NewAnnouncer(n Notifier, logger *slog.Logger) *Announcer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Announcer{notifier: n, logger: logger}
}

// Run announces events from sub until ctx is canceled or the subscription
// is closed.
func (a *Announcer) Run(ctx context.Context, sub *playback.Subscription) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Done:
			return
		case e := <-sub.TrackChanged:
			if e.Current != nil {
				a.NowPlaying(*e.Current)
			}
		case e := <-sub.Error:
			a.Failure(e)
		}
	}
}

// NowPlaying shows the track that just started.
func (a *Announcer) NowPlaying(track playlist.Track) {
	id, err := a.notifier.Notify(Notification{
		Title:      track.Title,
		Body:       nowPlayingBody(track),
		Icon:       coverIcon(track.Source),
		Timeout:    nowPlayingTimeout,
		ReplacesID: a.lastID,
		Urgency:    UrgencyLow,
	})
	if err != nil {
		a.logger.Debug("failed to send notification", "track", track.ID, "error", err)
		return
	}
	a.lastID = id
}

// Failure reports a playback or queue error.
func (a *Announcer) Failure(e playback.ErrorEvent) {
	if e.Err == nil {
		return
	}
	_, err := a.notifier.Notify(Notification{
		Title:   appName,
		Body:    errmsg.Format(e.Operation, e.Err),
		Icon:    "dialog-error",
		Timeout: failureTimeout,
		Urgency: UrgencyCritical,
	})
	if err != nil {
		a.logger.Debug("failed to send notification", "operation", e.Operation, "error", err)
	}
}

func nowPlayingBody(track playlist.Track) string {
	parts := make([]string, 0, 2)
	if track.Artist != "" {
		parts = append(parts, track.Artist)
	}
	if track.Album != "" {
		parts = append(parts, track.Album)
	}
	return strings.Join(parts, " - ")
}
