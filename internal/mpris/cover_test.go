//go:build linux

package mpris

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("fake"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFindAlbumArt(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  string
	}{
		{"no art", []string{"track.mp3"}, ""},
		{"cover", []string{"track.mp3", "cover.jpg"}, "cover.jpg"},
		{"cover beats folder", []string{"folder.jpg", "cover.png"}, "cover.png"},
		{"jpg beats png", []string{"front.png", "front.jpg"}, "front.jpg"},
		{"case insensitive", []string{"Folder.JPG"}, "Folder.JPG"},
		{"unknown names ignored", []string{"scan.jpg", "booklet.png"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tt.files {
				touch(t, dir, f)
			}

			got := FindAlbumArt(filepath.Join(dir, "track.mp3"))

			want := ""
			if tt.want != "" {
				want = filepath.Join(dir, tt.want)
			}
			if got != want {
				t.Errorf("FindAlbumArt() = %q, want %q", got, want)
			}
		})
	}
}

func TestFindAlbumArt_MissingDirectory(t *testing.T) {
	got := FindAlbumArt(filepath.Join(t.TempDir(), "gone", "track.mp3"))
	if got != "" {
		t.Errorf("FindAlbumArt() = %q, want empty string", got)
	}
}

func TestFindAlbumArt_DirectoryNamedLikeCover(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "cover.jpg"), 0o755); err != nil {
		t.Fatal(err)
	}

	if got := FindAlbumArt(filepath.Join(dir, "track.mp3")); got != "" {
		t.Errorf("FindAlbumArt() = %q, want empty string", got)
	}
}
