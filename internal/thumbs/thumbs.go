// Package thumbs generates and caches still-frame thumbnails for videos by
// invoking ffmpeg. Generated paths are persisted in the config document so
// extraction runs at most once per video across sessions.
package thumbs

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/nikbrunner/vorg/internal/store"
)

// Frame extraction parameters: one frame, one second in, downscaled to fit
// a 320x180 box.
const (
	seekOffset  = "00:00:01"
	scaleFilter = "scale=320:180:force_original_aspect_ratio=decrease"
)

// Runner executes an external command. It exists so tests can stub ffmpeg.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// execRunner runs commands via os/exec, discarding their output.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// Generator produces thumbnails into CacheDir.
type Generator struct {
	CacheDir string
	Runner   Runner

	store  *store.Store
	logger *log.Logger
}

// New creates a Generator backed by ffmpeg.
func New(cacheDir string, st *store.Store, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.Default()
	}
	return &Generator{
		CacheDir: cacheDir,
		Runner:   execRunner{},
		store:    st,
		logger:   logger,
	}
}

// Generate returns the thumbnail path for videoPath, extracting a frame if
// no valid cached thumbnail exists. A non-zero ffmpeg exit yields an error
// and no thumbnail; the failure is logged, not fatal.
func (g *Generator) Generate(ctx context.Context, videoPath string) (string, error) {
	if cached, ok := g.store.Thumbnail(videoPath); ok {
		if _, err := os.Stat(cached); err == nil {
			return cached, nil
		}
	}

	if err := os.MkdirAll(g.CacheDir, 0755); err != nil {
		return "", fmt.Errorf("creating thumbnail dir: %w", err)
	}

	out := filepath.Join(g.CacheDir, hashPath(videoPath)+".jpg")

	err := g.Runner.Run(ctx, "ffmpeg",
		"-i", videoPath,
		"-ss", seekOffset,
		"-vframes", "1",
		"-vf", scaleFilter,
		"-y",
		out,
	)
	if err != nil {
		g.logger.Warn("thumbnail generation failed", "video", videoPath, "err", err)
		return "", fmt.Errorf("extracting frame from %s: %w", videoPath, err)
	}

	g.store.SetThumbnail(videoPath, out)
	return out, nil
}

// hashPath names cache files by a digest of the exact video path string.
func hashPath(path string) string {
	sum := sha1.Sum([]byte(path))
	return hex.EncodeToString(sum[:])
}
