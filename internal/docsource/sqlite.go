package docsource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dastrobu/doc-html-mcp/internal/doctree"
	"github.com/dastrobu/doc-html-mcp/internal/log"
)

// Store keeps documents in a SQLite database.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the database at path and ensures the
// schema exists.
func OpenStore(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.ExecContext(ctx, `PRAGMA journal_mode=WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &Store{db: db}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS documents (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  format TEXT NOT NULL,
  content BLOB NOT NULL,
  updated_at TIMESTAMP NOT NULL
);
`)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores a document, replacing any previous content with the same id.
// The content is decoded first so that only readable documents are stored.
func (s *Store) Put(ctx context.Context, id, format string, content []byte) (Info, error) {
	if err := ValidateID(id); err != nil {
		return Info{}, err
	}
	doc, err := Decode(id, format, content)
	if err != nil {
		return Info{}, err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO documents(id, title, format, content, updated_at) VALUES(?,?,?,?,?)
ON CONFLICT(id) DO UPDATE SET title=excluded.title, format=excluded.format, content=excluded.content, updated_at=excluded.updated_at`,
		id, doc.Title, format, content, time.Now().UTC())
	if err != nil {
		return Info{}, fmt.Errorf("failed to store document %s: %w", id, err)
	}
	return Info{ID: id, Title: doc.Title, Format: format}, nil
}

// Import reads a file and stores it under the id derived from its name.
func (s *Store) Import(ctx context.Context, path string) (Info, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return Info{}, err
	}
	data, err := readFile(path)
	if err != nil {
		return Info{}, err
	}
	info, err := s.Put(ctx, IDForPath(path), format, data)
	if err != nil {
		return Info{}, err
	}
	log.FromContext(ctx).Debugf("imported %s as %s (%s)", path, info.ID, info.Format)
	return info, nil
}

// Open loads and decodes the document with the given id.
func (s *Store) Open(ctx context.Context, id string) (*doctree.Document, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	var format string
	var content []byte
	row := s.db.QueryRowContext(ctx, `SELECT format, content FROM documents WHERE id=?`, id)
	if err := row.Scan(&format, &content); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to load document %s: %w", id, err)
	}
	return Decode(id, format, content)
}

// List returns all stored documents sorted by id.
func (s *Store) List(ctx context.Context) ([]Info, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, format FROM documents ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()
	var out []Info
	for rows.Next() {
		var info Info
		if err := rows.Scan(&info.ID, &info.Title, &info.Format); err != nil {
			return nil, err
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// Delete removes a document. Deleting a missing document returns
// ErrNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
