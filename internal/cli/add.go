package cli

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/spf13/cobra"

	"github.com/llehouerou/cadence/internal/catalog"
	"github.com/llehouerou/cadence/internal/errmsg"
	"github.com/llehouerou/cadence/internal/player"
)

type AddParams struct {
	Paths   []string `pos:"true" required:"true" help:"Audio files or directories to add."`
	Verbose bool     `short:"v" optional:"true" help:"Print every added song."`
}

// readTrackInfo decodes tags and duration; replaced in tests.
var readTrackInfo = player.ExtractFullMetadata

func AddCmd() *cobra.Command {
	return boa.CmdT[AddParams]{
		Use:         "add",
		Short:       "Add audio files to the catalog",
		Long:        "Read tags and duration of each audio file and store it in the catalog. Directories are walked recursively.",
		ParamEnrich: DefaultParamEnricher(),
		RunFunc: func(params *AddParams, cmd *cobra.Command, args []string) {
			exitCode := withCatalog(os.Stderr, func(cat *catalog.Catalog) int {
				return RunAdd(cmd.Context(), cat, params, os.Stdout, os.Stderr)
			})
			os.Exit(exitCode)
		},
	}.ToCobra()
}

func RunAdd(ctx context.Context, cat *catalog.Catalog, params *AddParams, stdout, stderr io.Writer) int {
	files, hadError := collectFiles(params.Paths, stderr)

	added := 0
	for _, path := range files {
		song, err := addFile(ctx, cat, path)
		if err != nil {
			fmt.Fprintln(stderr, errmsg.FormatWith(errmsg.OpSongAdd, path, err))
			hadError = true
			continue
		}
		added++
		if params.Verbose {
			fmt.Fprintf(stdout, "%s  %s\n", song.ID, song.Title)
		}
	}

	fmt.Fprintf(stdout, "Added %d of %d songs\n", added, len(files))
	if hadError {
		return 1
	}
	return 0
}

// collectFiles expands directories into the music files below them.
// Explicitly named files are kept whatever their extension.
func collectFiles(paths []string, stderr io.Writer) ([]string, bool) {
	var files []string
	hadError := false

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintln(stderr, errmsg.FormatWith(errmsg.OpFileLoad, path, err))
			hadError = true
			continue
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && player.IsMusicFile(p) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			fmt.Fprintln(stderr, errmsg.FormatWith(errmsg.OpFileLoad, path, err))
			hadError = true
		}
	}
	return files, hadError
}

func addFile(ctx context.Context, cat *catalog.Catalog, path string) (catalog.Song, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return catalog.Song{}, err
	}

	info, err := readTrackInfo(abs)
	if err != nil {
		return catalog.Song{}, err
	}

	return cat.AddSong(ctx, catalog.Song{
		Title:    info.Title,
		Artist:   info.Artist,
		Album:    info.Album,
		Genre:    info.Genre,
		Source:   abs,
		Duration: info.Duration,
		Year:     info.Year,
	})
}
