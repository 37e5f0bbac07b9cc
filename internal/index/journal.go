package index

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pfassina/mdtoc/internal/toc"
)

// Record is one journaled refresh of a document.
type Record struct {
	Path      string
	Hash      string
	Outcome   string
	Entries   int
	ModTime   time.Time
	UpdatedAt time.Time
}

// AnchorResult is a stored TOC entry of a document.
type AnchorResult struct {
	Level  int
	Text   string
	Anchor string
	Line   int
}

// Record stores rec and replaces the document's anchors with entries in a
// single transaction.
func (db *DB) Record(rec Record, entries []toc.Entry) error {
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now()
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
		INSERT INTO documents (path, hash, outcome, entries, mod_time, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			hash = excluded.hash,
			outcome = excluded.outcome,
			entries = excluded.entries,
			mod_time = excluded.mod_time,
			updated_at = excluded.updated_at
	`, rec.Path, rec.Hash, rec.Outcome, rec.Entries, rec.ModTime.Unix(), rec.UpdatedAt.Unix()); err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}

	var id int64
	if err := tx.QueryRow("SELECT id FROM documents WHERE path = ?", rec.Path).Scan(&id); err != nil {
		return fmt.Errorf("document id: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM anchors WHERE document_id = ?", id); err != nil {
		return fmt.Errorf("clear anchors: %w", err)
	}
	for i, e := range entries {
		if _, err := tx.Exec(
			"INSERT INTO anchors (document_id, position, level, text, anchor, line) VALUES (?, ?, ?, ?, ?, ?)",
			id, i, e.Level, e.Text, e.Anchor, e.Line,
		); err != nil {
			return fmt.Errorf("insert anchor %q: %w", e.Text, err)
		}
	}
	return tx.Commit()
}

// Hash returns the stored content hash for path, or "" if it was never
// journaled.
func (db *DB) Hash(path string) (string, error) {
	var hash string
	err := db.conn.QueryRow("SELECT hash FROM documents WHERE path = ?", path).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return hash, err
}

// List returns all journaled documents, most recently updated first.
func (db *DB) List() ([]Record, error) {
	rows, err := db.conn.Query(`
		SELECT path, hash, outcome, entries, mod_time, updated_at
		FROM documents
		ORDER BY updated_at DESC, path
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []Record
	for rows.Next() {
		var r Record
		var mod, updated int64
		if err := rows.Scan(&r.Path, &r.Hash, &r.Outcome, &r.Entries, &mod, &updated); err != nil {
			return nil, err
		}
		r.ModTime = time.Unix(mod, 0)
		r.UpdatedAt = time.Unix(updated, 0)
		results = append(results, r)
	}
	return results, rows.Err()
}

// Anchors returns the stored TOC entries of path in document order.
func (db *DB) Anchors(path string) ([]AnchorResult, error) {
	rows, err := db.conn.Query(`
		SELECT a.level, a.text, a.anchor, a.line
		FROM anchors a
		JOIN documents d ON d.id = a.document_id
		WHERE d.path = ?
		ORDER BY a.position
	`, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []AnchorResult
	for rows.Next() {
		var a AnchorResult
		if err := rows.Scan(&a.Level, &a.Text, &a.Anchor, &a.Line); err != nil {
			return nil, err
		}
		results = append(results, a)
	}
	return results, rows.Err()
}

// Delete removes a document and its anchors.
func (db *DB) Delete(path string) error {
	_, err := db.conn.Exec("DELETE FROM documents WHERE path = ?", path)
	return err
}
