package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/repromptsquest/repmt/pkg/models"
)

// Entry is one recorded prompt export.
type Entry struct {
	ID          int64     `json:"id"`
	Root        string    `json:"root"`
	PromptType  string    `json:"prompt_type"`
	Format      string    `json:"format"`
	Destination string    `json:"destination"`
	FileCount   int       `json:"file_count"`
	ByteSize    int       `json:"byte_size"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store keeps a record of generated prompts in a sqlite database.
type Store struct {
	db *sql.DB
}

// NewStore opens (creating if needed) the history database at
// <dataDir>/history.db.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db, err := sql.Open("sqlite3", filepath.Join(dataDir, "history.db"))
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS prompts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		root TEXT NOT NULL,
		prompt_type TEXT NOT NULL,
		format TEXT NOT NULL,
		destination TEXT NOT NULL,
		file_count INTEGER NOT NULL,
		byte_size INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_prompts_created_at ON prompts(created_at);
	CREATE INDEX IF NOT EXISTS idx_prompts_root ON prompts(root);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record stores one export. Callers treat failures as non-fatal.
func (s *Store) Record(p *models.GeneratedPrompt, format, destination string) error {
	_, err := s.db.Exec(
		`INSERT INTO prompts (root, prompt_type, format, destination, file_count, byte_size, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Root, string(p.PromptType), format, destination, p.FileCount, p.ByteSize, p.CreatedAt,
	)
	return err
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(limit int) ([]*Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, root, prompt_type, format, destination, file_count, byte_size, created_at
		 FROM prompts ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Root, &e.PromptType, &e.Format, &e.Destination,
			&e.FileCount, &e.ByteSize, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// Clear removes all recorded entries.
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM prompts`)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
