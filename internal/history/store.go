// Package history persists analysis runs to a local SQLite database.
// The store is strictly opt-in; the analysis engine itself never touches
// it and stays a pure function of its input.
package history

import (
	"bytes"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	_ "modernc.org/sqlite"

	"pylens/internal/logging"
)

// Kind discriminates saved runs.
const (
	KindFile = "file"
	KindRepo = "repo"
)

// Entry is one saved analysis run.
type Entry struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"createdAt"`

	// Result is the raw JSON report. Populated by Get, empty in List.
	Result []byte `json:"-"`
}

// Store provides persistence for analysis runs.
type Store struct {
	conn   *sql.DB
	logger *logging.Logger
	dbPath string
}

// Open opens or creates the history database at the given path.
func Open(dbPath string, logger *logging.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}

	store := &Store{conn: conn, logger: logger, dbPath: dbPath}
	if err := store.initializeSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}

	return store, nil
}

func (s *Store) initializeSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			path TEXT NOT NULL,
			created_at TEXT NOT NULL,
			result BLOB NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Save stores one analysis run. The result JSON is gzip-compressed at
// rest. Returns the generated run ID.
func (s *Store) Save(kind, path string, result []byte) (string, error) {
	id := uuid.New().String()
	createdAt := time.Now().UTC().Format(time.RFC3339)

	compressed, err := compress(result)
	if err != nil {
		return "", fmt.Errorf("compress result: %w", err)
	}

	_, err = s.conn.Exec(
		"INSERT INTO runs (id, kind, path, created_at, result) VALUES (?, ?, ?, ?, ?)",
		id, kind, path, createdAt, compressed,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	s.logger.Debug("Saved analysis run", map[string]interface{}{
		"id":   id,
		"kind": kind,
		"path": path,
	})
	return id, nil
}

// List returns saved runs, newest first, without their result payloads.
func (s *Store) List(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.conn.Query(
		"SELECT id, kind, path, created_at FROM runs ORDER BY created_at DESC, id LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Kind, &e.Path, &createdAt); err != nil {
			return nil, err
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get returns one saved run including its decompressed result JSON.
func (s *Store) Get(id string) (*Entry, error) {
	var e Entry
	var createdAt string
	var compressed []byte

	err := s.conn.QueryRow(
		"SELECT id, kind, path, created_at, result FROM runs WHERE id = ?", id,
	).Scan(&e.ID, &e.Kind, &e.Path, &createdAt, &compressed)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	if err != nil {
		return nil, err
	}

	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	e.Result, err = decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("decompress result: %w", err)
	}
	return &e, nil
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, gzip.BestSpeed)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompress(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()
	return io.ReadAll(r)
}
