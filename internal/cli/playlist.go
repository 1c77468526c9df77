package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/llehouerou/cadence/internal/catalog"
	"github.com/llehouerou/cadence/internal/errmsg"
	"github.com/llehouerou/cadence/internal/playlist"
)

func PlaylistCmd() *cobra.Command {
	cmd := boa.CmdT[boa.NoParams]{
		Use:   "playlist",
		Short: "Manage playlists",
		SubCmds: []*cobra.Command{
			PlaylistCreateCmd(),
			PlaylistAddCmd(),
			PlaylistRemoveCmd(),
			PlaylistShowCmd(),
			PlaylistListCmd(),
		},
	}.ToCobra()
	cmd.Aliases = []string{"playlists", "pl"}
	return cmd
}

type PlaylistCreateParams struct {
	Name string `pos:"true" required:"true" help:"Name of the new playlist."`
}

func PlaylistCreateCmd() *cobra.Command {
	return boa.CmdT[PlaylistCreateParams]{
		Use:         "create",
		Short:       "Create an empty playlist",
		ParamEnrich: DefaultParamEnricher(),
		RunFunc: func(params *PlaylistCreateParams, cmd *cobra.Command, args []string) {
			exitCode := withCatalog(os.Stderr, func(cat *catalog.Catalog) int {
				return RunPlaylistCreate(cmd.Context(), cat, params, os.Stdout, os.Stderr)
			})
			os.Exit(exitCode)
		},
	}.ToCobra()
}

func RunPlaylistCreate(ctx context.Context, cat *catalog.Catalog, params *PlaylistCreateParams, stdout, stderr io.Writer) int {
	info, err := cat.CreatePlaylist(ctx, params.Name)
	if err != nil {
		fmt.Fprintln(stderr, errmsg.FormatWith(errmsg.OpPlaylistCreate, params.Name, err))
		return 1
	}
	fmt.Fprintf(stdout, "Created playlist %q\n", info.Name)
	return 0
}

type PlaylistAddParams struct {
	Name    string   `pos:"true" required:"true" help:"Playlist name."`
	SongIDs []string `pos:"true" required:"true" help:"IDs of the songs to append, in order."`
}

func PlaylistAddCmd() *cobra.Command {
	return boa.CmdT[PlaylistAddParams]{
		Use:         "add",
		Short:       "Append songs to a playlist",
		ParamEnrich: DefaultParamEnricher(),
		RunFunc: func(params *PlaylistAddParams, cmd *cobra.Command, args []string) {
			exitCode := withCatalog(os.Stderr, func(cat *catalog.Catalog) int {
				return RunPlaylistAdd(cmd.Context(), cat, params, os.Stdout, os.Stderr)
			})
			os.Exit(exitCode)
		},
	}.ToCobra()
}

func RunPlaylistAdd(ctx context.Context, cat *catalog.Catalog, params *PlaylistAddParams, stdout, stderr io.Writer) int {
	if err := cat.AddToPlaylist(ctx, params.Name, params.SongIDs...); err != nil {
		fmt.Fprintln(stderr, errmsg.FormatWith(errmsg.OpPlaylistAddTrack, params.Name, err))
		return 1
	}
	fmt.Fprintf(stdout, "Added %d songs to %q\n", len(params.SongIDs), params.Name)
	return 0
}

type PlaylistRemoveParams struct {
	Name   string `pos:"true" required:"true" help:"Playlist name."`
	SongID string `pos:"true" required:"true" help:"ID of the song to remove. Only its first occurrence is removed."`
}

func PlaylistRemoveCmd() *cobra.Command {
	return boa.CmdT[PlaylistRemoveParams]{
		Use:         "remove",
		Short:       "Remove a song from a playlist",
		ParamEnrich: DefaultParamEnricher(),
		RunFunc: func(params *PlaylistRemoveParams, cmd *cobra.Command, args []string) {
			exitCode := withCatalog(os.Stderr, func(cat *catalog.Catalog) int {
				return RunPlaylistRemove(cmd.Context(), cat, params, os.Stdout, os.Stderr)
			})
			os.Exit(exitCode)
		},
	}.ToCobra()
}

func RunPlaylistRemove(ctx context.Context, cat *catalog.Catalog, params *PlaylistRemoveParams, stdout, stderr io.Writer) int {
	if err := cat.RemoveFromPlaylist(ctx, params.Name, params.SongID); err != nil {
		fmt.Fprintln(stderr, errmsg.FormatWith(errmsg.OpPlaylistRemove, params.Name, err))
		return 1
	}
	fmt.Fprintf(stdout, "Removed %s from %q\n", params.SongID, params.Name)
	return 0
}

type PlaylistShowParams struct {
	Name string `pos:"true" required:"true" help:"Playlist name."`
}

func PlaylistShowCmd() *cobra.Command {
	return boa.CmdT[PlaylistShowParams]{
		Use:         "show",
		Short:       "Show the songs of a playlist in order",
		ParamEnrich: DefaultParamEnricher(),
		RunFunc: func(params *PlaylistShowParams, cmd *cobra.Command, args []string) {
			exitCode := withCatalog(os.Stderr, func(cat *catalog.Catalog) int {
				return RunPlaylistShow(cmd.Context(), cat, params, os.Stdout, os.Stderr)
			})
			os.Exit(exitCode)
		},
	}.ToCobra()
}

func RunPlaylistShow(ctx context.Context, cat *catalog.Catalog, params *PlaylistShowParams, stdout, stderr io.Writer) int {
	info, err := cat.PlaylistByName(ctx, params.Name)
	if err != nil {
		fmt.Fprintln(stderr, errmsg.FormatWith(errmsg.OpPlaylistLoad, params.Name, err))
		return 1
	}
	songs, err := cat.Songs(ctx, catalog.Filter{Playlist: info.Name})
	if err != nil {
		fmt.Fprintln(stderr, errmsg.FormatWith(errmsg.OpPlaylistLoad, params.Name, err))
		return 1
	}

	t := table.NewWriter()
	t.SetOutputMirror(stdout)
	t.SetStyle(table.StyleLight)
	t.SetTitle(info.Name)
	t.AppendHeader(table.Row{"#", "Title", "Artist", "Length", "ID"})
	for i, s := range songs {
		t.AppendRow(table.Row{i + 1, s.Title, s.Artist, playlist.FormatDuration(s.Duration), s.ID})
	}
	t.AppendFooter(table.Row{"", songCount(info.SongCount), "", playlist.FormatDuration(info.TotalDuration), ""})
	t.Render()
	return 0
}

type PlaylistListParams struct{}

func PlaylistListCmd() *cobra.Command {
	return boa.CmdT[PlaylistListParams]{
		Use:         "list",
		Short:       "List playlists",
		ParamEnrich: DefaultParamEnricher(),
		RunFunc: func(params *PlaylistListParams, cmd *cobra.Command, args []string) {
			exitCode := withCatalog(os.Stderr, func(cat *catalog.Catalog) int {
				return RunPlaylistList(cmd.Context(), cat, params, os.Stdout, os.Stderr)
			})
			os.Exit(exitCode)
		},
	}.ToCobra()
}

func RunPlaylistList(ctx context.Context, cat *catalog.Catalog, _ *PlaylistListParams, stdout, stderr io.Writer) int {
	lists, err := cat.Playlists(ctx)
	if err != nil {
		fmt.Fprintln(stderr, errmsg.Format(errmsg.OpPlaylistList, err))
		return 1
	}
	if len(lists) == 0 {
		fmt.Fprintln(stdout, "No playlists.")
		return 0
	}
	RenderPlaylists(stdout, lists, time.Now())
	return 0
}

// RenderPlaylists prints playlists with their size and age.
func RenderPlaylists(w io.Writer, lists []catalog.PlaylistInfo, now time.Time) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Songs", "Length", "Created"})
	for _, p := range lists {
		t.AppendRow(table.Row{
			p.Name,
			humanize.Comma(int64(p.SongCount)),
			playlist.FormatDuration(p.TotalDuration),
			humanize.RelTime(p.CreatedAt, now, "ago", "from now"),
		})
	}
	t.Render()
}

func songCount(n int) string {
	if n == 1 {
		return "1 song"
	}
	return humanize.Comma(int64(n)) + " songs"
}
