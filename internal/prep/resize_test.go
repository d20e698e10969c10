package prep_test

import (
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/nikbrunner/vorg/internal/prep"
)

func writeJPEG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, nil); err != nil {
		t.Fatal(err)
	}
}

func imageSize(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	return cfg.Width, cfg.Height
}

func TestResizeFile_Landscape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wide.jpg")
	writeJPEG(t, path, 64, 32)

	report, err := prep.ResizeFile(path, 16)
	if err != nil {
		t.Fatalf("resize failed: %v", err)
	}

	if report.ToWidth != 16 || report.ToHeight != 8 {
		t.Errorf("expected 16x8, got %dx%d", report.ToWidth, report.ToHeight)
	}

	// The file was overwritten in place
	w, h := imageSize(t, path)
	if w != 16 || h != 8 {
		t.Errorf("expected file to be 16x8, got %dx%d", w, h)
	}
}

func TestResizeFile_Portrait(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tall.jpg")
	writeJPEG(t, path, 30, 60)

	report, err := prep.ResizeFile(path, 20)
	if err != nil {
		t.Fatal(err)
	}
	if report.ToWidth != 10 || report.ToHeight != 20 {
		t.Errorf("expected 10x20, got %dx%d", report.ToWidth, report.ToHeight)
	}
}

func TestResizeRange_SkipsMissingAndContinues(t *testing.T) {
	dir := t.TempDir()
	writeJPEG(t, filepath.Join(dir, "1.jpg"), 40, 20)
	// 2.jpg is missing
	writeJPEG(t, filepath.Join(dir, "3.jpg"), 20, 40)

	reports := prep.ResizeRange(dir, 1, 3, 10, nil)
	if len(reports) != 2 {
		t.Fatalf("expected 2 resized images, got %d", len(reports))
	}

	w, _ := imageSize(t, filepath.Join(dir, "1.jpg"))
	if w != 10 {
		t.Errorf("expected 1.jpg width 10, got %d", w)
	}
}
