//go:build linux

package notify

import "github.com/llehouerou/cadence/internal/mpris"

// coverIcon returns the album art next to a track source, used as the
// notification icon.
func coverIcon(source string) string {
	return mpris.FindAlbumArt(source)
}
