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

type SongsParams struct {
	Artist string `long:"artist" optional:"true" help:"Only songs by this artist."`
	Query  string `short:"q" long:"query" optional:"true" help:"Only songs whose title or artist contains this text."`
	Limit  int    `short:"n" help:"Limit number of results (0 = no limit)" default:"0"`
}

func SongsCmd() *cobra.Command {
	return boa.CmdT[SongsParams]{
		Use:         "songs",
		Short:       "List songs in the catalog",
		ParamEnrich: DefaultParamEnricher(),
		RunFunc: func(params *SongsParams, cmd *cobra.Command, args []string) {
			exitCode := withCatalog(os.Stderr, func(cat *catalog.Catalog) int {
				return RunSongs(cmd.Context(), cat, params, os.Stdout, os.Stderr)
			})
			os.Exit(exitCode)
		},
	}.ToCobra()
}

func RunSongs(ctx context.Context, cat *catalog.Catalog, params *SongsParams, stdout, stderr io.Writer) int {
	songs, err := cat.Songs(ctx, catalog.Filter{
		Artist: params.Artist,
		Query:  params.Query,
		Limit:  params.Limit,
	})
	if err != nil {
		fmt.Fprintln(stderr, errmsg.Format(errmsg.OpSongList, err))
		return 1
	}

	if len(songs) == 0 {
		fmt.Fprintln(stdout, "No songs found.")
		return 0
	}

	RenderSongs(stdout, songs, time.Now())
	return 0
}

// RenderSongs prints songs as a table. Added dates are shown relative to now.
func RenderSongs(w io.Writer, songs []catalog.Song, now time.Time) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Title", "Artist", "Album", "Length", "Plays", "Added"})

	for _, s := range songs {
		t.AppendRow(table.Row{
			s.ID,
			s.Title,
			s.Artist,
			s.Album,
			playlist.FormatDuration(s.Duration),
			humanize.Comma(int64(s.PlayCount)),
			humanize.RelTime(s.AddedAt, now, "ago", "from now"),
		})
	}

	t.Render()
}
