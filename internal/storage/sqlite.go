package storage

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/nikbrunner/vorg/internal/model"
)

const currentSchemaVersion = 1

// SQLiteStorage implements Storage using a SQLite database.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage creates a new SQLiteStorage with the given database path.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &SQLiteStorage{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// migrate runs database migrations.
func (s *SQLiteStorage) migrate() error {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the initial schema.
func (s *SQLiteStorage) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS tags (
			name TEXT PRIMARY KEY NOT NULL,
			position INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS tag_usage (
			tag TEXT PRIMARY KEY NOT NULL,
			count INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS source_folders (
			path TEXT PRIMARY KEY NOT NULL,
			position INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY NOT NULL,
			value TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS thumbnails (
			video_path TEXT PRIMARY KEY NOT NULL,
			thumb_path TEXT NOT NULL
		);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load reads the config document from the SQLite database. Usage entries
// for tags missing from the vocabulary are kept in TagUsage but not in
// Tags, matching the JSON backend's tolerance for stale counters.
func (s *SQLiteStorage) Load() (*model.Config, error) {
	cfg := &model.Config{
		Tags:           []string{},
		TagUsage:       map[string]int{},
		SourceFolders:  []string{},
		ThumbnailCache: map[string]string{},
	}

	rows, err := s.db.Query(`SELECT name FROM tags ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cfg.Tags = append(cfg.Tags, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.Query(`SELECT tag, count FROM tag_usage`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var tag string
		var count int
		if err := rows.Scan(&tag, &count); err != nil {
			return nil, err
		}
		cfg.TagUsage[tag] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.Query(`SELECT path FROM source_folders ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		cfg.SourceFolders = append(cfg.SourceFolders, path)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = s.db.QueryRow(`SELECT value FROM settings WHERE key = 'destination_folder'`).
		Scan(&cfg.DestinationFolder)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	rows, err = s.db.Query(`SELECT video_path, thumb_path FROM thumbnails`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var videoPath, thumbPath string
		if err := rows.Scan(&videoPath, &thumbPath); err != nil {
			return nil, err
		}
		cfg.ThumbnailCache[videoPath] = thumbPath
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// A brand-new database carries no vocabulary yet; seed the defaults.
	if len(cfg.Tags) == 0 {
		cfg.Tags = model.DefaultConfig().Tags
	}

	return cfg, nil
}

// Save writes the config document to the SQLite database.
// Uses a transaction for atomicity - all or nothing.
func (s *SQLiteStorage) Save(cfg *model.Config) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"tags", "tag_usage", "source_folders", "settings", "thumbnails"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}

	tagStmt, err := tx.Prepare(`INSERT INTO tags (name, position) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer tagStmt.Close()

	for i, tag := range cfg.Tags {
		if _, err := tagStmt.Exec(tag, i); err != nil {
			return err
		}
	}

	usageStmt, err := tx.Prepare(`INSERT INTO tag_usage (tag, count) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer usageStmt.Close()

	for tag, count := range cfg.TagUsage {
		if _, err := usageStmt.Exec(tag, count); err != nil {
			return err
		}
	}

	folderStmt, err := tx.Prepare(`INSERT INTO source_folders (path, position) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer folderStmt.Close()

	for i, folder := range cfg.SourceFolders {
		if _, err := folderStmt.Exec(folder, i); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(
		`INSERT INTO settings (key, value) VALUES ('destination_folder', ?)`,
		cfg.DestinationFolder,
	); err != nil {
		return err
	}

	thumbStmt, err := tx.Prepare(`INSERT INTO thumbnails (video_path, thumb_path) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer thumbStmt.Close()

	for videoPath, thumbPath := range cfg.ThumbnailCache {
		if _, err := thumbStmt.Exec(videoPath, thumbPath); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DefaultSQLitePath returns the default SQLite database path:
// ~/.config/vorg/config.db
func DefaultSQLitePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "vorg", "config.db"), nil
}
