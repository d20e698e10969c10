// Package discover enumerates video files under the configured source
// folders.
package discover

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nikbrunner/vorg/internal/model"
)

// videoExts contains the recognized video file extensions (lowercase).
var videoExts = map[string]bool{
	".mp4":  true,
	".avi":  true,
	".mov":  true,
	".mkv":  true,
	".webm": true,
	".flv":  true,
	".wmv":  true,
	".m4v":  true,
}

// IsVideo reports whether path has a recognized video extension.
func IsVideo(path string) bool {
	return videoExts[strings.ToLower(filepath.Ext(path))]
}

// Videos walks each folder recursively and returns the video files found,
// newest first (by modification time). Folders that no longer exist are
// silently skipped, as are unreadable entries. Videos reachable from two
// overlapping folders are listed twice.
func Videos(folders []string) []model.Video {
	var videos []model.Video

	for _, folder := range folders {
		if _, err := os.Stat(folder); err != nil {
			continue
		}

		filepath.WalkDir(folder, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() || !IsVideo(path) {
				return nil
			}

			info, err := d.Info()
			if err != nil {
				return nil
			}

			videos = append(videos, model.NewVideo(path, info.ModTime()))
			return nil
		})
	}

	sort.SliceStable(videos, func(i, j int) bool {
		return videos[i].ModTime.After(videos[j].ModTime)
	})

	return videos
}
