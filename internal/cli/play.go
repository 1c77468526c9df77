package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/llehouerou/cadence/internal/app"
	"github.com/llehouerou/cadence/internal/catalog"
	"github.com/llehouerou/cadence/internal/config"
	"github.com/llehouerou/cadence/internal/errmsg"
	"github.com/llehouerou/cadence/internal/mpris"
	"github.com/llehouerou/cadence/internal/notify"
	"github.com/llehouerou/cadence/internal/playback"
	"github.com/llehouerou/cadence/internal/player"
	"github.com/llehouerou/cadence/internal/playlist"
	nativeout "github.com/llehouerou/cadence/internal/stderr"
)

type PlayParams struct {
	SongIDs  []string `pos:"true" optional:"true" help:"Songs to queue, in order. Defaults to the whole catalog."`
	Playlist string   `short:"p" long:"playlist" optional:"true" help:"Queue this playlist."`
	Artist   string   `long:"artist" optional:"true" help:"Queue only songs by this artist."`
	Start    int      `long:"start" help:"Position (1-based) of the first track to play." default:"1"`
	Shuffle  bool     `short:"s" optional:"true" help:"Shuffle the queue."`
	Repeat   string   `short:"r" long:"repeat" optional:"true" help:"Repeat mode: none, one or all (overrides the configuration)."`
	Debug    bool     `long:"debug" optional:"true" help:"Write debug messages to the log file."`
}

func PlayCmd() *cobra.Command {
	return boa.CmdT[PlayParams]{
		Use:         "play",
		Short:       "Play songs from the catalog",
		Long:        "Load a collection from the catalog into the queue and open the player.",
		ParamEnrich: DefaultParamEnricher(),
		RunFunc: func(params *PlayParams, cmd *cobra.Command, args []string) {
			exitCode := RunPlay(cmd.Context(), params, os.Stderr)
			os.Exit(exitCode)
		},
	}.ToCobra()
}

func RunPlay(ctx context.Context, params *PlayParams, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, errmsg.Format(errmsg.OpConfigLoad, err))
		return 1
	}

	repeat := cfg.RepeatMode()
	if params.Repeat != "" {
		if repeat, err = playlist.ParseRepeatMode(params.Repeat); err != nil {
			fmt.Fprintf(stderr, "play: %v\n", err)
			return 1
		}
	}

	logger, closeLog, err := setupLogging(cfg.LogFile, params.Debug)
	if err != nil {
		fmt.Fprintln(stderr, errmsg.Format(errmsg.OpInitialize, err))
		return 1
	}
	defer closeLog()

	cat, err := catalog.Open(cfg.Database)
	if err != nil {
		fmt.Fprintln(stderr, errmsg.Format(errmsg.OpInitialize, err))
		return 1
	}
	defer cat.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tracks, err := loadTracks(ctx, cat, params)
	if err != nil {
		op := errmsg.OpSongLookup
		if params.Playlist != "" {
			op = errmsg.OpPlaylistLoad
		}
		fmt.Fprintln(stderr, errmsg.Format(op, err))
		return 1
	}
	if len(tracks) == 0 {
		fmt.Fprintln(stderr, "Nothing to play.")
		return 1
	}
	start, err := startIndex(params.Start, len(tracks))
	if err != nil {
		fmt.Fprintf(stderr, "play: %v\n", err)
		return 1
	}

	p := player.New(cfg.Volume)
	defer p.Close()

	svc := playback.New(p, playlist.NewQueue(playlist.WithRepeatMode(repeat)),
		playback.WithLogger(logger),
		playback.WithDefaultVolume(cfg.Volume),
	)
	defer svc.Close()

	go func() {
		if err := svc.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("event pump stopped", "error", err)
		}
	}()
	go recordPlays(ctx, cat, svc.Subscribe(), logger)

	if cfg.Notifications {
		startAnnouncer(ctx, svc, logger)
	}
	if cfg.MPRIS {
		adapter, err := mpris.New(svc)
		if err != nil {
			logger.Warn("mpris unavailable", "error", err)
		} else {
			defer adapter.Close()
		}
	}

	if err := nativeout.Start(logger); err != nil {
		logger.Warn("failed to capture stderr", "error", err)
	}
	defer nativeout.Stop()

	startQueue(svc, tracks, start, params.Shuffle)

	program := tea.NewProgram(app.New(svc, app.WithSeekStep(cfg.SeekStep)), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		nativeout.WriteOriginal(fmt.Sprintf("Error running program: %v\n", err))
		return 1
	}
	return 0
}

func startAnnouncer(ctx context.Context, svc playback.Service, logger *slog.Logger) {
	n, err := notify.New()
	if err != nil {
		logger.Warn("notifications unavailable", "error", err)
		return
	}
	go notify.NewAnnouncer(n, logger).Run(ctx, svc.Subscribe())
}

// startQueue plays the collection from start. Shuffle is applied once the
// start track is loaded, so it keeps playing.
func startQueue(svc playback.Service, tracks []playlist.Track, start int, shuffle bool) {
	svc.PlayCollection(tracks, start)
	if shuffle {
		svc.SetShuffle(true)
	}
}

// loadTracks resolves the collection to queue: explicit song IDs in the
// given order, otherwise the catalog filtered by playlist and artist.
func loadTracks(ctx context.Context, cat *catalog.Catalog, params *PlayParams) ([]playlist.Track, error) {
	if len(params.SongIDs) == 0 {
		return cat.FetchCollection(ctx, catalog.Filter{
			Playlist: params.Playlist,
			Artist:   params.Artist,
		})
	}

	tracks := make([]playlist.Track, 0, len(params.SongIDs))
	for _, id := range params.SongIDs {
		track, err := cat.FetchTrackByID(ctx, id)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}
	return tracks, nil
}

// startIndex converts a 1-based position into a queue index.
func startIndex(position, n int) (int, error) {
	if position < 1 || position > n {
		return 0, fmt.Errorf("start position %d is outside 1..%d", position, n)
	}
	return position - 1, nil
}

type playRecorder interface {
	IncrementPlayCount(ctx context.Context, id string) error
}

// recordPlays counts a play every time a track is loaded for playback.
func recordPlays(ctx context.Context, rec playRecorder, sub *playback.Subscription, logger *slog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Done:
			return
		case e := <-sub.TrackChanged:
			if e.Current == nil {
				continue
			}
			if err := rec.IncrementPlayCount(ctx, e.Current.ID); err != nil {
				logger.Warn("failed to record play", "track", e.Current.ID, "error", err)
			}
		}
	}
}
