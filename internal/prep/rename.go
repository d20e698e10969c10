// Package prep holds the dataset preparation utilities: sequentially
// renaming a captioned image set and batch-resizing JPEGs in place.
package prep

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/rwcarlsen/goexif/exif"
)

// RenameOptions configures RenameFromList.
type RenameOptions struct {
	ListPath  string // text file with one image path per line
	TargetDir string // directory receiving 1.ext, 2.ext, ... (list dir if empty)
	ByDate    bool   // order by EXIF capture date instead of list order
	Logger    *log.Logger
}

// RenameResult summarizes a rename run.
type RenameResult struct {
	Renamed int
	Missing int
}

// RenameFromList renames the listed images into TargetDir as 1.ext, 2.ext,
// … and creates an empty N.txt caption sidecar per image. Missing inputs
// are warned about and skipped; the sequence number still advances so the
// numbering matches the list. With ByDate the list is first ordered by
// EXIF capture time (file mtime when EXIF is absent).
func RenameFromList(opts RenameOptions) (RenameResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	paths, err := readList(opts.ListPath)
	if err != nil {
		return RenameResult{}, err
	}

	if opts.TargetDir == "" {
		opts.TargetDir = filepath.Dir(opts.ListPath)
	}

	if opts.ByDate {
		sort.SliceStable(paths, func(i, j int) bool {
			return captureTime(paths[i]).Before(captureTime(paths[j]))
		})
	}

	if err := os.MkdirAll(opts.TargetDir, 0755); err != nil {
		return RenameResult{}, err
	}

	var res RenameResult
	for idx, oldPath := range paths {
		n := idx + 1

		if _, err := os.Stat(oldPath); err != nil {
			logger.Warn("image not found", "path", oldPath)
			res.Missing++
			continue
		}

		ext := filepath.Ext(oldPath)
		newPath := filepath.Join(opts.TargetDir, fmt.Sprintf("%d%s", n, ext))
		if err := moveFile(oldPath, newPath); err != nil {
			return res, fmt.Errorf("renaming %s: %w", oldPath, err)
		}

		caption := filepath.Join(opts.TargetDir, fmt.Sprintf("%d.txt", n))
		if err := os.WriteFile(caption, nil, 0644); err != nil {
			return res, fmt.Errorf("creating caption %s: %w", caption, err)
		}

		logger.Info("renamed", "from", filepath.Base(oldPath), "to", filepath.Base(newPath))
		res.Renamed++
	}

	return res, nil
}

// readList reads one path per line, skipping blank lines.
func readList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var paths []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			paths = append(paths, line)
		}
	}
	return paths, scanner.Err()
}

// captureTime returns the EXIF capture time of an image, falling back to
// the file's modification time (zero time if the file is missing too).
func captureTime(path string) time.Time {
	if t, err := exifTime(path); err == nil {
		return t
	}
	if fi, err := os.Stat(path); err == nil {
		return fi.ModTime()
	}
	return time.Time{}
}

func exifTime(path string) (time.Time, error) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, err
	}
	return x.DateTime()
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
