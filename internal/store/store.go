// Package store wraps the config document with its storage backend so that
// every mutation is immediately durable. Consumers hold a *Store instead of
// sharing a mutable global document.
package store

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/nikbrunner/vorg/internal/model"
	"github.com/nikbrunner/vorg/internal/storage"
)

// Store owns the in-memory config document and persists it after every
// mutation. Save failures are logged, never returned: the filesystem action
// that triggered the mutation has already happened and must not be undone
// by a bookkeeping write. A mutex guards the document because thumbnail
// results arrive from background workers.
type Store struct {
	mu      sync.Mutex
	cfg     *model.Config
	backend storage.Storage
	logger  *log.Logger
}

// New creates a Store around a loaded config document.
func New(cfg *model.Config, backend storage.Storage, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{cfg: cfg, backend: backend, logger: logger}
}

// Open loads the config from backend and wraps it in a Store. A malformed
// document degrades to the defaults with a warning.
func Open(backend storage.Storage, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	cfg, err := backend.Load()
	if err != nil {
		logger.Warn("loading config", "err", err)
	}
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	return New(cfg, backend, logger)
}

// Config returns a snapshot copy of the document. Handing out the live
// pointer would let callers read fields outside the lock while thumbnail
// workers mutate them under it.
func (s *Store) Config() *model.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Clone()
}

// SortedTags returns the ranked display order of the tag vocabulary.
func (s *Store) SortedTags() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.SortedTags()
}

// Usage returns the usage count for tag.
func (s *Store) Usage(tag string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Usage(tag)
}

// Thumbnail returns the cached thumbnail path for a video, if any.
func (s *Store) Thumbnail(videoPath string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Thumbnail(videoPath)
}

// AddTag inserts a tag and persists. Returns whether it was newly added.
func (s *Store) AddTag(tag string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cfg.AddTag(tag) {
		return false
	}
	s.save()
	return true
}

// IncrementTagUsage bumps a tag's usage counter and persists.
func (s *Store) IncrementTagUsage(tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.IncrementTagUsage(tag)
	s.save()
}

// AddSourceFolder appends a source folder (deduplicated) and persists.
func (s *Store) AddSourceFolder(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cfg.AddSourceFolder(path) {
		return false
	}
	s.save()
	return true
}

// SetDestinationFolder sets the destination root and persists.
func (s *Store) SetDestinationFolder(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.DestinationFolder = path
	s.save()
}

// SetThumbnail records a generated thumbnail path and persists.
func (s *Store) SetThumbnail(videoPath, thumbPath string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.SetThumbnail(videoPath, thumbPath)
	s.save()
}

// save persists the document. Callers must hold the mutex.
func (s *Store) save() {
	if err := s.backend.Save(s.cfg); err != nil {
		s.logger.Warn("saving config", "err", err)
	}
}
