// Package cache persists parsed documentation in a SQLite database so the
// documentation tree only has to be parsed once per location.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atomicstack/sysctl-control/internal/docs"

	_ "modernc.org/sqlite"
)

// ErrMiss is returned by Load when nothing is stored under a label.
var ErrMiss = errors.New("cache miss")

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	label     TEXT PRIMARY KEY,
	stored_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS documents (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	label   TEXT NOT NULL REFERENCES entries(label) ON DELETE CASCADE,
	path    TEXT NOT NULL,
	ordinal INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS documents_label ON documents(label, ordinal);
CREATE TABLE IF NOT EXISTS paragraphs (
	document_id INTEGER NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	ordinal     INTEGER NOT NULL,
	title       TEXT NOT NULL,
	contents    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS paragraphs_document ON paragraphs(document_id, ordinal);
`

// Cache is a handle to the documentation database.
type Cache struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Entry describes one stored label.
type Entry struct {
	Label    string
	StoredAt time.Time
}

// DefaultPath returns the database location under the user cache directory.
func DefaultPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache dir: %w", err)
	}
	return filepath.Join(dir, "sysctl-control", "docs.db"), nil
}

// Open creates the database at path if needed and ensures the schema exists.
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open cache %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Cache{db: db, path: path, now: time.Now}, nil
}

// Path returns the database file location.
func (c *Cache) Path() string {
	return c.path
}

// Close releases the database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Store replaces everything saved under label with documents.
func (c *Cache) Store(ctx context.Context, label string, documents []docs.Document) (err error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM entries WHERE label = ?`, label); err != nil {
		return fmt.Errorf("clear %s: %w", label, err)
	}
	if _, err = tx.ExecContext(ctx, `INSERT INTO entries (label, stored_at) VALUES (?, ?)`, label, c.now().Unix()); err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	insertParagraph, err := tx.PrepareContext(ctx, `INSERT INTO paragraphs (document_id, ordinal, title, contents) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer insertParagraph.Close()

	for i, doc := range documents {
		res, err := tx.ExecContext(ctx, `INSERT INTO documents (label, path, ordinal) VALUES (?, ?, ?)`, label, doc.Path, i)
		if err != nil {
			return fmt.Errorf("insert document %s: %w", doc.Path, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("document id: %w", err)
		}
		for j, paragraph := range doc.Paragraphs {
			if _, err := insertParagraph.ExecContext(ctx, id, j, paragraph.Title, paragraph.Contents); err != nil {
				return fmt.Errorf("insert paragraph: %w", err)
			}
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Load returns the documents stored under label in their stored order.
func (c *Cache) Load(ctx context.Context, label string) ([]docs.Document, error) {
	var storedAt int64
	err := c.db.QueryRowContext(ctx, `SELECT stored_at FROM entries WHERE label = ?`, label).Scan(&storedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrMiss, label)
	}
	if err != nil {
		return nil, fmt.Errorf("query entry: %w", err)
	}

	rows, err := c.db.QueryContext(ctx, `
SELECT d.id, d.path, p.title, p.contents
FROM documents d
LEFT JOIN paragraphs p ON p.document_id = d.id
WHERE d.label = ?
ORDER BY d.ordinal, p.ordinal`, label)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	documents := []docs.Document{}
	lastID := int64(-1)
	for rows.Next() {
		var (
			id       int64
			path     string
			title    sql.NullString
			contents sql.NullString
		)
		if err := rows.Scan(&id, &path, &title, &contents); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		if id != lastID {
			documents = append(documents, docs.NewDocument(nil, path))
			lastID = id
		}
		if title.Valid {
			current := &documents[len(documents)-1]
			current.Paragraphs = append(current.Paragraphs, docs.Paragraph{
				Title:    title.String,
				Contents: contents.String,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate: %w", err)
	}
	return documents, nil
}

// Labels lists every stored label, most recent first.
func (c *Cache) Labels(ctx context.Context) ([]Entry, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT label, stored_at FROM entries ORDER BY stored_at DESC, label`)
	if err != nil {
		return nil, fmt.Errorf("query labels: %w", err)
	}
	defer rows.Close()
	var entries []Entry
	for rows.Next() {
		var (
			label    string
			storedAt int64
		)
		if err := rows.Scan(&label, &storedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		entries = append(entries, Entry{Label: label, StoredAt: time.Unix(storedAt, 0)})
	}
	return entries, rows.Err()
}

// Delete removes everything stored under label. Deleting an absent label
// returns ErrMiss.
func (c *Cache) Delete(ctx context.Context, label string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM entries WHERE label = ?`, label)
	if err != nil {
		return fmt.Errorf("delete %s: %w", label, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrMiss, label)
	}
	return nil
}
