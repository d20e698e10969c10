package storage_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/nikbrunner/vorg/internal/model"
	"github.com/nikbrunner/vorg/internal/storage"
)

func TestJSONStorage_SaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	cfg := &model.Config{
		Tags:              []string{"indoor", "outdoor"},
		TagUsage:          map[string]int{"indoor": 3},
		SourceFolders:     []string{"/videos/in"},
		DestinationFolder: "/videos/out",
		ThumbnailCache:    map[string]string{"/videos/in/a.mp4": "/cache/a.jpg"},
	}

	s := storage.NewJSONStorage(configPath)
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
}

func TestJSONStorage_LoadNonexistent(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nonexistent.json")

	s := storage.NewJSONStorage(configPath)
	cfg, err := s.Load()

	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	// Should return the defaults
	if len(cfg.Tags) == 0 {
		t.Error("expected default tag vocabulary for missing file")
	}
	if cfg.DestinationFolder != "" {
		t.Errorf("expected empty destination, got %q", cfg.DestinationFolder)
	}
}

func TestJSONStorage_LoadMalformed(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(configPath, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	s := storage.NewJSONStorage(configPath)
	cfg, err := s.Load()

	// Malformed config falls back to defaults; the error is reported for
	// logging but the config is usable.
	if err == nil {
		t.Error("expected parse error to be reported")
	}
	if cfg == nil || len(cfg.Tags) == 0 {
		t.Fatal("expected default config despite parse error")
	}
}

func TestJSONStorage_MergesOverDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	// Partial document: only a destination folder
	partial := `{"destinationFolder": "/videos/out"}`
	if err := os.WriteFile(configPath, []byte(partial), 0644); err != nil {
		t.Fatal(err)
	}

	s := storage.NewJSONStorage(configPath)
	cfg, err := s.Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	if cfg.DestinationFolder != "/videos/out" {
		t.Errorf("expected destination from file, got %q", cfg.DestinationFolder)
	}
	if len(cfg.Tags) == 0 {
		t.Error("expected default tags for field missing from file")
	}
	if cfg.TagUsage == nil || cfg.SourceFolders == nil || cfg.ThumbnailCache == nil {
		t.Error("expected maps and slices to be initialized")
	}
}

func TestJSONStorage_CreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "dir", "config.json")

	s := storage.NewJSONStorage(configPath)
	if err := s.Save(model.DefaultConfig()); err != nil {
		t.Fatalf("failed to save with nested dir: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("config file was not created in nested directory")
	}
}
