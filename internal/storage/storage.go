package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nikbrunner/vorg/internal/model"
)

// Storage defines the interface for persisting the config document.
type Storage interface {
	Load() (*model.Config, error)
	Save(cfg *model.Config) error
}

// JSONStorage implements Storage using a JSON file.
type JSONStorage struct {
	path string
}

// NewJSONStorage creates a new JSONStorage with the given file path.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// Load reads the config from the JSON file, merging it over the defaults.
// A missing file yields the defaults with no error. A malformed file also
// yields the defaults, with the parse error returned so the caller can log
// it; starting up must never fail over a bad config.
func (s *JSONStorage) Load() (*model.Config, error) {
	cfg := model.DefaultConfig()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return model.DefaultConfig(), fmt.Errorf("parsing %s: %w", s.path, err)
	}

	normalize(cfg)
	return cfg, nil
}

// Save writes the whole config document to the JSON file.
// Creates the directory if it doesn't exist.
func (s *JSONStorage) Save(cfg *model.Config) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// normalize ensures maps and slices are not nil after a partial document.
func normalize(cfg *model.Config) {
	if cfg.Tags == nil {
		cfg.Tags = []string{}
	}
	if cfg.TagUsage == nil {
		cfg.TagUsage = map[string]int{}
	}
	if cfg.SourceFolders == nil {
		cfg.SourceFolders = []string{}
	}
	if cfg.ThumbnailCache == nil {
		cfg.ThumbnailCache = map[string]string{}
	}
}

// DefaultConfigPath returns the default config path: ~/.config/vorg/config.json
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "vorg", "config.json"), nil
}

// DefaultThumbsDir returns the thumbnail cache directory: ~/.cache/vorg/thumbnails
func DefaultThumbsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".cache", "vorg", "thumbnails"), nil
}

// DefaultLogPath returns the log file path: ~/.cache/vorg/vorg.log
func DefaultLogPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".cache", "vorg", "vorg.log"), nil
}

// OpenStorage opens the appropriate storage backend.
// Prefers SQLite if the database file exists, otherwise falls back to JSON.
func OpenStorage() (Storage, error) {
	sqlitePath, err := DefaultSQLitePath()
	if err != nil {
		return nil, err
	}

	// If SQLite database exists, use it
	if _, err := os.Stat(sqlitePath); err == nil {
		return NewSQLiteStorage(sqlitePath)
	}

	// Fall back to JSON
	jsonPath, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return NewJSONStorage(jsonPath), nil
}
