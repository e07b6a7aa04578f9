package session

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"thoreinstein.com/shadow/pkg/board"
	shadowerrors "thoreinstein.com/shadow/pkg/errors"
)

// DefaultMaxSessions caps the history length when no limit is configured.
const DefaultMaxSessions = 100

// Store persists the session history in a sqlite-backed key/value table. The
// whole list is serialized under StorageKey and rewritten on every mutation,
// so the stored payload always matches what a load would return.
type Store struct {
	db  *sql.DB
	max int
}

// NewStore opens (creating if needed) the session database at path.
func NewStore(path string, maxSessions int) (*Store, error) {
	if maxSessions < 1 {
		maxSessions = DefaultMaxSessions
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, shadowerrors.NewStoreErrorWithCause("Open", "failed to create data directory", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, shadowerrors.NewStoreErrorWithCause("Open", "failed to open database", err)
	}

	s := &Store{db: db, max: maxSessions}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, shadowerrors.NewStoreErrorWithCause("Open", "failed to migrate schema", err)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load returns all stored sessions, newest first. A missing key is an empty
// history, not an error. A corrupt payload is discarded so one bad write
// cannot brick the app.
func (s *Store) Load() ([]Session, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", StorageKey).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, shadowerrors.NewStoreErrorWithCause("Load", "failed to read sessions", err)
	}

	var sessions []Session
	if err := json.Unmarshal([]byte(value), &sessions); err != nil {
		return nil, nil
	}
	return sessions, nil
}

// Append prepends a session to the history and rewrites the stored list,
// dropping the oldest entries past the configured cap.
func (s *Store) Append(sess Session) error {
	sessions, err := s.Load()
	if err != nil {
		return err
	}

	sessions = append([]Session{sess}, sessions...)
	if len(sessions) > s.max {
		sessions = sessions[:s.max]
	}

	return s.save(sessions)
}

// ReplaceAnalysis writes back the edited analysis of the session with the
// given id. Returns false when no stored session matches.
func (s *Store) ReplaceAnalysis(id string, analysis board.Analysis) (bool, error) {
	sessions, err := s.Load()
	if err != nil {
		return false, err
	}

	for i := range sessions {
		if sessions[i].ID == id {
			sessions[i].Analysis = analysis.Clone()
			return true, s.save(sessions)
		}
	}
	return false, nil
}

// Get returns the stored session with the given id.
func (s *Store) Get(id string) (*Session, error) {
	sessions, err := s.Load()
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		if sessions[i].ID == id {
			return &sessions[i], nil
		}
	}
	return nil, shadowerrors.NewStoreError("Get", "no session with id "+id)
}

// Reset deletes the entire session history.
func (s *Store) Reset() error {
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", StorageKey); err != nil {
		return shadowerrors.NewStoreErrorWithCause("Reset", "failed to delete sessions", err)
	}
	return nil
}

func (s *Store) save(sessions []Session) error {
	payload, err := json.Marshal(sessions)
	if err != nil {
		return shadowerrors.NewStoreErrorWithCause("Save", "failed to serialize sessions", err)
	}

	_, err = s.db.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		StorageKey, string(payload),
	)
	if err != nil {
		return shadowerrors.NewStoreErrorWithCause("Save", "failed to write sessions", err)
	}
	return nil
}
