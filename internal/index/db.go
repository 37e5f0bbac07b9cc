package index

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    path TEXT NOT NULL UNIQUE,
    hash TEXT NOT NULL DEFAULT '',
    outcome TEXT NOT NULL DEFAULT '',
    entries INTEGER NOT NULL DEFAULT 0,
    mod_time INTEGER NOT NULL DEFAULT 0,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS anchors (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    document_id INTEGER NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    level INTEGER NOT NULL,
    text TEXT NOT NULL,
    anchor TEXT NOT NULL DEFAULT '',
    line INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_anchors_document ON anchors(document_id, position);
`

// DB wraps the SQLite journal of refreshed documents.
type DB struct {
	conn *sql.DB
}

// DataDir returns the mdtoc data directory.
// Respects XDG_DATA_HOME, defaults to ~/.local/share/mdtoc.
func DataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "mdtoc"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("data dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", "mdtoc"), nil
}

// DefaultPath returns the journal location inside DataDir.
func DefaultPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "journal.db"), nil
}

// Open opens or creates the journal at the given path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}
	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return initDB(conn)
}

// OpenMemory opens an in-memory journal (for testing).
func OpenMemory() (*DB, error) {
	conn, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(on)")
	if err != nil {
		return nil, err
	}
	// Each pooled connection would get its own empty in-memory database.
	conn.SetMaxOpenConns(1)
	return initDB(conn)
}

func initDB(conn *sql.DB) (*DB, error) {
	if _, err := conn.Exec(schema); err != nil {
		return nil, errors.Join(fmt.Errorf("init schema: %w", err), conn.Close())
	}
	return &DB{conn: conn}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
