// Package session persists tab-strip snapshots to a SQLite database so a
// host can restore its open tabs across restarts. The engine core never
// depends on this package; hosts save and restore snapshots explicitly.
package session

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/strayware/tabdeck/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// dbFileName is the database file created inside the data directory.
const dbFileName = "tabdeck.db"

// Store reads and writes session snapshots. Not usable until Open succeeds.
type Store struct {
	mu   sync.RWMutex
	open bool
	db   *sql.DB
}

// New creates a Store. Call Open with a data directory before use.
func New() *Store {
	return &Store{}
}

// Open creates the data directory if needed, opens the database, and
// applies the schema. Returns ErrSessionAlreadyOpen if called while open.
func (s *Store) Open(dataDir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return types.ErrSessionAlreadyOpen
	}

	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return fmt.Errorf("apply schema: %w", err)
	}

	s.db = db
	s.open = true
	return nil
}

// Close releases the database. Idempotent; operations after Close return
// ErrSessionClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return err
	}
	s.db = nil
	s.open = false
	return nil
}

// Save upserts the snapshot and returns its session ID. A snapshot without
// an ID reuses the existing session with the same name, or gets a new
// UUID v7. The tab rows are rewritten atomically with the session row.
func (s *Store) Save(snap types.SessionSnapshot) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return "", types.ErrSessionClosed
	}

	id := snap.SessionID
	if id == "" {
		if existing, err := s.idByName(snap.Name); err == nil {
			id = existing
		} else {
			id = newSessionID()
		}
	}

	now := time.Now().UTC()
	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO sessions (session_id, name, active_id, pathname, search, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			name = excluded.name,
			active_id = excluded.active_id,
			pathname = excluded.pathname,
			search = excluded.search,
			updated_at = excluded.updated_at`,
		id, snap.Name, snap.ActiveID,
		snap.Location.Pathname, snap.Location.Search,
		now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM session_tabs WHERE session_id = ?`, id); err != nil {
		return "", fmt.Errorf("clear tabs: %w", err)
	}
	for i, tab := range snap.Tabs {
		_, err := tx.Exec(`
			INSERT INTO session_tabs (session_id, position, route_id, title, path, last_path, closable)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, i, tab.ID, tab.Title, tab.Path, tab.LastPath, boolToInt(tab.Closable))
		if err != nil {
			return "", fmt.Errorf("save tab %s: %w", tab.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit save: %w", err)
	}
	return id, nil
}

// Load returns the snapshot with the given session ID.
// Returns ErrSessionNotFound if no such session exists.
func (s *Store) Load(id string) (types.SessionSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return types.SessionSnapshot{}, types.ErrSessionClosed
	}
	return s.load(`WHERE session_id = ?`, id)
}

// LoadByName returns the snapshot with the given name.
// Returns ErrSessionNotFound if no such session exists.
func (s *Store) LoadByName(name string) (types.SessionSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return types.SessionSnapshot{}, types.ErrSessionClosed
	}
	return s.load(`WHERE name = ?`, name)
}

// List returns every stored snapshot, most recently updated first.
func (s *Store) List() ([]types.SessionSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return nil, types.ErrSessionClosed
	}

	rows, err := s.db.Query(`SELECT session_id FROM sessions ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan session id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	snaps := make([]types.SessionSnapshot, 0, len(ids))
	for _, id := range ids {
		snap, err := s.load(`WHERE session_id = ?`, id)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

// Delete removes the session and its tabs.
// Returns ErrSessionNotFound if no such session exists.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return types.ErrSessionClosed
	}

	res, err := s.db.Exec(`DELETE FROM sessions WHERE session_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return types.ErrSessionNotFound
	}
	_, err = s.db.Exec(`DELETE FROM session_tabs WHERE session_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session tabs: %w", err)
	}
	return nil
}

// load fetches one session row plus its ordered tabs. Callers hold the
// lock and have verified the store is open.
func (s *Store) load(where string, arg any) (types.SessionSnapshot, error) {
	var (
		snap             types.SessionSnapshot
		created, updated string
	)
	row := s.db.QueryRow(`
		SELECT session_id, name, active_id, pathname, search, created_at, updated_at
		FROM sessions `+where, arg)
	err := row.Scan(&snap.SessionID, &snap.Name, &snap.ActiveID,
		&snap.Location.Pathname, &snap.Location.Search, &created, &updated)
	if err == sql.ErrNoRows {
		return types.SessionSnapshot{}, types.ErrSessionNotFound
	}
	if err != nil {
		return types.SessionSnapshot{}, fmt.Errorf("load session: %w", err)
	}
	snap.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	snap.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)

	rows, err := s.db.Query(`
		SELECT route_id, title, path, last_path, closable
		FROM session_tabs WHERE session_id = ? ORDER BY position`, snap.SessionID)
	if err != nil {
		return types.SessionSnapshot{}, fmt.Errorf("load tabs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			tab      types.Tab
			closable int
		)
		if err := rows.Scan(&tab.ID, &tab.Title, &tab.Path, &tab.LastPath, &closable); err != nil {
			return types.SessionSnapshot{}, fmt.Errorf("scan tab: %w", err)
		}
		tab.Closable = closable != 0
		snap.Tabs = append(snap.Tabs, tab)
	}
	if err := rows.Err(); err != nil {
		return types.SessionSnapshot{}, err
	}
	return snap, nil
}

// idByName resolves a session ID from its name. Callers hold the lock.
func (s *Store) idByName(name string) (string, error) {
	var id string
	err := s.db.QueryRow(`SELECT session_id FROM sessions WHERE name = ?`, name).Scan(&id)
	if err != nil {
		return "", types.ErrSessionNotFound
	}
	return id, nil
}

// newSessionID generates a UUID v7, falling back to v4 when the clock
// source fails.
func newSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
