package storage_test

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/nikbrunner/vorg/internal/model"
	"github.com/nikbrunner/vorg/internal/storage"
)

func newTestSQLite(t *testing.T) *storage.SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "config.db")
	s, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to open sqlite storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStorage_SaveAndLoad(t *testing.T) {
	s := newTestSQLite(t)

	cfg := &model.Config{
		Tags:              []string{"zebra", "apple", "mango"},
		TagUsage:          map[string]int{"apple": 2, "stale": 7},
		SourceFolders:     []string{"/videos/a", "/videos/b"},
		DestinationFolder: "/videos/out",
		ThumbnailCache:    map[string]string{"/videos/a/x.mp4": "/cache/x.jpg"},
	}

	if err := s.Save(cfg); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	if !reflect.DeepEqual(loaded, cfg) {
		t.Errorf("round trip mismatch:\nsaved:  %+v\nloaded: %+v", cfg, loaded)
	}

	// Vocabulary order must survive (ranking fallback depends on it)
	want := []string{"zebra", "apple", "mango"}
	if !reflect.DeepEqual(loaded.Tags, want) {
		t.Errorf("expected tag order %v, got %v", want, loaded.Tags)
	}
}

func TestSQLiteStorage_FreshDatabaseSeedsDefaults(t *testing.T) {
	s := newTestSQLite(t)

	cfg, err := s.Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	if len(cfg.Tags) == 0 {
		t.Error("expected default tag vocabulary from a fresh database")
	}
}

func TestSQLiteStorage_SaveOverwrites(t *testing.T) {
	s := newTestSQLite(t)

	first := model.DefaultConfig()
	first.AddSourceFolder("/videos/old")
	if err := s.Save(first); err != nil {
		t.Fatal(err)
	}

	second := model.DefaultConfig()
	second.AddSourceFolder("/videos/new")
	if err := s.Save(second); err != nil {
		t.Fatal(err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}

	if len(loaded.SourceFolders) != 1 || loaded.SourceFolders[0] != "/videos/new" {
		t.Errorf("expected only the new folder, got %v", loaded.SourceFolders)
	}
}
