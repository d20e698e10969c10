package organize_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/nikbrunner/vorg/internal/model"
	"github.com/nikbrunner/vorg/internal/organize"
	"github.com/nikbrunner/vorg/internal/storage"
	"github.com/nikbrunner/vorg/internal/store"
)

func newTestMover(t *testing.T, destRoot string) (*organize.Mover, *store.Store) {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.DestinationFolder = destRoot
	backend := storage.NewJSONStorage(filepath.Join(t.TempDir(), "config.json"))
	st := store.New(cfg, backend, nil)
	return organize.New(st), st
}

func writeVideo(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	assert.NilError(t, os.WriteFile(path, []byte("video"), 0644))
	return path
}

func TestDestinationDir_OrderInvariant(t *testing.T) {
	a := organize.DestinationDir("/out", []string{"pool", "gym", "outdoor"})
	b := organize.DestinationDir("/out", []string{"outdoor", "pool", "gym"})
	assert.Equal(t, a, b)
	assert.Equal(t, a, filepath.Join("/out", "gym", "outdoor", "pool"))
}

func TestMove_MovesIntoTagPath(t *testing.T) {
	srcDir := t.TempDir()
	destRoot := t.TempDir()
	mover, st := newTestMover(t, destRoot)

	src := writeVideo(t, srcDir, "clip.mp4")

	dest, err := mover.Move(src, []string{"pool", "gym"})
	assert.NilError(t, err)
	assert.Equal(t, dest, filepath.Join(destRoot, "gym", "pool", "clip.mp4"))

	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("source file still exists after move")
	}
	if _, err := os.Stat(dest); err != nil {
		t.Errorf("destination file missing: %v", err)
	}

	// Every selected tag's usage is bumped once
	assert.Equal(t, st.Config().Usage("pool"), 1)
	assert.Equal(t, st.Config().Usage("gym"), 1)
}

func TestMove_CollisionSuffix(t *testing.T) {
	srcDir := t.TempDir()
	destRoot := t.TempDir()
	mover, _ := newTestMover(t, destRoot)

	first := writeVideo(t, srcDir, "x.mp4")
	dest1, err := mover.Move(first, []string{"pool"})
	assert.NilError(t, err)
	assert.Equal(t, filepath.Base(dest1), "x.mp4")

	second := writeVideo(t, srcDir, "x.mp4")
	dest2, err := mover.Move(second, []string{"pool"})
	assert.NilError(t, err)
	assert.Equal(t, filepath.Base(dest2), "x_1.mp4")

	third := writeVideo(t, srcDir, "x.mp4")
	dest3, err := mover.Move(third, []string{"pool"})
	assert.NilError(t, err)
	assert.Equal(t, filepath.Base(dest3), "x_2.mp4")
}

func TestMove_NoTags(t *testing.T) {
	srcDir := t.TempDir()
	mover, _ := newTestMover(t, t.TempDir())

	src := writeVideo(t, srcDir, "clip.mp4")
	_, err := mover.Move(src, nil)
	assert.Assert(t, errors.Is(err, organize.ErrNoTags))

	if _, statErr := os.Stat(src); statErr != nil {
		t.Error("source file must remain in place")
	}
}

func TestMove_NoDestinationConfigured(t *testing.T) {
	srcDir := t.TempDir()
	mover, st := newTestMover(t, "")

	src := writeVideo(t, srcDir, "clip.mp4")
	_, err := mover.Move(src, []string{"pool"})
	assert.Assert(t, errors.Is(err, organize.ErrNoDestination))

	if _, statErr := os.Stat(src); statErr != nil {
		t.Error("source file must remain in place")
	}
	assert.Equal(t, st.Config().Usage("pool"), 0)
}

func TestMove_DestinationMissingOnDisk(t *testing.T) {
	srcDir := t.TempDir()
	mover, _ := newTestMover(t, "/no/such/destination")

	src := writeVideo(t, srcDir, "clip.mp4")
	_, err := mover.Move(src, []string{"pool"})
	assert.Assert(t, errors.Is(err, organize.ErrNoDestination))
}

func TestMove_MissingSourceLeavesCountersAlone(t *testing.T) {
	mover, st := newTestMover(t, t.TempDir())

	_, err := mover.Move("/no/such/clip.mp4", []string{"pool"})
	assert.Assert(t, err != nil)
	assert.Equal(t, st.Config().Usage("pool"), 0)
}
