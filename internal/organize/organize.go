// Package organize moves tagged videos into tag-derived subfolders of the
// destination root and maintains the usage counters.
package organize

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nikbrunner/vorg/internal/store"
)

// Configuration errors reported before any filesystem change.
var (
	ErrNoTags        = errors.New("no tags selected")
	ErrNoDestination = errors.New("destination folder not configured or missing")
)

// Mover commits tagged videos.
type Mover struct {
	store *store.Store
}

// New creates a Mover bound to the given store.
func New(st *store.Store) *Mover {
	return &Mover{store: st}
}

// DestinationDir returns root/tag1/…/tagN with tags sorted
// lexicographically, so the same tag combination maps to the same
// directory regardless of selection order.
func DestinationDir(root string, tags []string) string {
	sorted := make([]string, len(tags))
	copy(sorted, tags)
	sort.Strings(sorted)
	return filepath.Join(append([]string{root}, sorted...)...)
}

// Move commits a video: it resolves the tag-derived destination directory,
// picks a collision-free filename, moves the file and bumps the usage
// counter of every selected tag. On any mkdir/move error the source file is
// left untouched and the error returned.
func (m *Mover) Move(videoPath string, tags []string) (string, error) {
	if len(tags) == 0 {
		return "", ErrNoTags
	}

	root := m.store.Config().DestinationFolder
	if root == "" {
		return "", ErrNoDestination
	}
	if fi, err := os.Stat(root); err != nil || !fi.IsDir() {
		return "", ErrNoDestination
	}

	dir := DestinationDir(root, tags)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}

	target := resolveCollision(dir, filepath.Base(videoPath))
	if err := moveFile(videoPath, target); err != nil {
		return "", fmt.Errorf("moving %s: %w", videoPath, err)
	}

	for _, tag := range tags {
		m.store.IncrementTagUsage(tag)
	}

	return target, nil
}

// resolveCollision returns dir/name, appending _1, _2, … before the
// extension until the name is free. Only a successful stat counts as a
// collision; any stat error ends the search and the move reports the
// real failure.
func resolveCollision(dir, name string) string {
	target := filepath.Join(dir, name)
	if _, err := os.Stat(target); err != nil {
		return target
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for i := 1; ; i++ {
		target = filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, i, ext))
		if _, err := os.Stat(target); err != nil {
			return target
		}
	}
}

// moveFile renames src to dst, falling back to copy+delete for
// cross-device moves.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

// copyFile copies src to dst preserving the source file mode, removing a
// partial dst on failure.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		os.Remove(dst)
		return err
	}
	if err := dstFile.Close(); err != nil {
		return err
	}
	return os.Chmod(dst, srcInfo.Mode().Perm())
}
