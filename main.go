package main

import (
	"runtime/debug"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/spf13/cobra"

	"github.com/llehouerou/cadence/internal/cli"
)

func main() {
	boa.CmdT[boa.NoParams]{
		Use:     "cadence",
		Short:   "Terminal music player with a playback queue",
		Version: appVersion(),
		SubCmds: []*cobra.Command{
			cli.PlayCmd(),
			cli.AddCmd(),
			cli.SongsCmd(),
			cli.PlaylistCmd(),
		},
	}.Run()
}

func appVersion() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi.Main.Version == "" {
		return "unknown"
	}
	return bi.Main.Version
}
