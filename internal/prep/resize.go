package prep

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
)

// jpegQuality is the encode quality for resized images.
const jpegQuality = 95

// ResizeReport describes one in-place resize.
type ResizeReport struct {
	Path                  string
	FromWidth, FromHeight int
	ToWidth, ToHeight     int
}

func (r ResizeReport) String() string {
	return fmt.Sprintf("%s: %dx%d -> %dx%d",
		filepath.Base(r.Path), r.FromWidth, r.FromHeight, r.ToWidth, r.ToHeight)
}

// ResizeFile resizes the image at path in place so its longest edge equals
// maxSize, preserving the aspect ratio, and overwrites the original with a
// Lanczos-resampled JPEG.
func ResizeFile(path string, maxSize int) (ResizeReport, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return ResizeReport{}, fmt.Errorf("opening %s: %w", path, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	var newW, newH int
	if w > h {
		newW = maxSize
		newH = h * maxSize / w
	} else {
		newH = maxSize
		newW = w * maxSize / h
	}

	resized := imaging.Resize(img, newW, newH, imaging.Lanczos)
	if err := imaging.Save(resized, path, imaging.JPEGQuality(jpegQuality)); err != nil {
		return ResizeReport{}, fmt.Errorf("saving %s: %w", path, err)
	}

	return ResizeReport{
		Path:      path,
		FromWidth: w, FromHeight: h,
		ToWidth: newW, ToHeight: newH,
	}, nil
}

// ResizeRange resizes dir/<from>.jpg … dir/<to>.jpg in place. Missing or
// failing images are reported and skipped; the batch always runs to the
// end. Returns the successful reports.
func ResizeRange(dir string, from, to, maxSize int, logger *log.Logger) []ResizeReport {
	if logger == nil {
		logger = log.Default()
	}

	var reports []ResizeReport
	for i := from; i <= to; i++ {
		path := filepath.Join(dir, fmt.Sprintf("%d.jpg", i))
		if _, err := os.Stat(path); err != nil {
			logger.Warn("image not found", "path", path)
			continue
		}

		report, err := ResizeFile(path, maxSize)
		if err != nil {
			logger.Error("resize failed", "path", path, "err", err)
			continue
		}
		logger.Info(report.String())
		reports = append(reports, report)
	}
	return reports
}
