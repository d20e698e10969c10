package thumbs_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nikbrunner/vorg/internal/model"
	"github.com/nikbrunner/vorg/internal/storage"
	"github.com/nikbrunner/vorg/internal/store"
	"github.com/nikbrunner/vorg/internal/thumbs"
)

// fakeRunner records invocations and optionally fails. On success it
// creates the output file like ffmpeg would.
type fakeRunner struct {
	calls   int
	lastCmd []string
	failure error
}

func (r *fakeRunner) Run(ctx context.Context, name string, args ...string) error {
	r.calls++
	r.lastCmd = append([]string{name}, args...)
	if r.failure != nil {
		return r.failure
	}
	out := args[len(args)-1]
	return os.WriteFile(out, []byte("jpeg"), 0644)
}

func newTestGenerator(t *testing.T) (*thumbs.Generator, *fakeRunner, *store.Store) {
	t.Helper()
	tmpDir := t.TempDir()
	backend := storage.NewJSONStorage(filepath.Join(tmpDir, "config.json"))
	st := store.New(model.DefaultConfig(), backend, nil)

	g := thumbs.New(filepath.Join(tmpDir, "thumbnails"), st, nil)
	runner := &fakeRunner{}
	g.Runner = runner
	return g, runner, st
}

func TestGenerate_InvokesFFmpegAndCaches(t *testing.T) {
	g, runner, st := newTestGenerator(t)

	path, err := g.Generate(context.Background(), "/videos/a.mp4")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if runner.calls != 1 {
		t.Fatalf("expected 1 ffmpeg call, got %d", runner.calls)
	}
	if runner.lastCmd[0] != "ffmpeg" {
		t.Errorf("expected ffmpeg, got %q", runner.lastCmd[0])
	}
	if filepath.Ext(path) != ".jpg" {
		t.Errorf("expected .jpg output, got %q", path)
	}

	// The generated path is persisted in the cache map
	if cached, ok := st.Config().Thumbnail("/videos/a.mp4"); !ok || cached != path {
		t.Errorf("expected cache entry %q, got %q (ok=%v)", path, cached, ok)
	}

	// Second call is a cache hit: no new invocation
	again, err := g.Generate(context.Background(), "/videos/a.mp4")
	if err != nil {
		t.Fatal(err)
	}
	if again != path {
		t.Errorf("expected cached path %q, got %q", path, again)
	}
	if runner.calls != 1 {
		t.Errorf("expected cache hit to skip ffmpeg, got %d calls", runner.calls)
	}
}

func TestGenerate_StaleCacheEntryRegenerates(t *testing.T) {
	g, runner, st := newTestGenerator(t)

	// Cache points at a file that no longer exists on disk
	st.SetThumbnail("/videos/a.mp4", filepath.Join(t.TempDir(), "gone.jpg"))

	if _, err := g.Generate(context.Background(), "/videos/a.mp4"); err != nil {
		t.Fatal(err)
	}
	if runner.calls != 1 {
		t.Errorf("expected regeneration for stale cache entry, got %d calls", runner.calls)
	}
}

func TestGenerate_FailureYieldsNoThumbnail(t *testing.T) {
	g, runner, st := newTestGenerator(t)
	runner.failure = errors.New("exit status 1")

	path, err := g.Generate(context.Background(), "/videos/broken.mp4")
	if err == nil {
		t.Fatal("expected error for failed extraction")
	}
	if path != "" {
		t.Errorf("expected empty path on failure, got %q", path)
	}
	if _, ok := st.Config().Thumbnail("/videos/broken.mp4"); ok {
		t.Error("failed extraction must not be cached")
	}
}

func TestGenerate_DistinctPathsDistinctOutputs(t *testing.T) {
	g, _, _ := newTestGenerator(t)

	a, err := g.Generate(context.Background(), "/videos/a.mp4")
	if err != nil {
		t.Fatal(err)
	}
	b, err := g.Generate(context.Background(), "/videos/b.mp4")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Errorf("expected distinct outputs, both were %q", a)
	}
}
