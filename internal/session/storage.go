package session

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// The session snapshot persists in a small per-user SQLite database as two
// rows of a key/value table: the bearer token and the JSON-serialized user.
// The two are always written together and cleared together so they cannot
// diverge across restarts.

const (
	credsDBFile = "session.sqlite"

	keyToken = "token"
	keyUser  = "user"
)

// DefaultDir resolves the state directory (~/.kale-admin unless overridden).
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".kale-admin"), nil
}

func (s *Store) openDB(ctx context.Context) (*sql.DB, error) {
	dir := strings.TrimSpace(s.dir)
	if dir == "" {
		return nil, errors.New("session: no state dir configured")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", filepath.Join(dir, credsDBFile))
	if err != nil {
		return nil, err
	}
	// WAL + busy_timeout: tolerate a CLI invocation racing an open TUI.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS creds (
		k TEXT PRIMARY KEY,
		v TEXT NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// readCreds returns the persisted token and user JSON. ok is true only when
// both rows are present and non-empty.
func (s *Store) readCreds(ctx context.Context) (token, userJSON string, ok bool, err error) {
	db, err := s.openDB(ctx)
	if err != nil {
		return "", "", false, err
	}
	defer db.Close()

	read := func(k string) string {
		var v string
		_ = db.QueryRowContext(ctx, `SELECT v FROM creds WHERE k = ?`, k).Scan(&v)
		return strings.TrimSpace(v)
	}
	token = read(keyToken)
	userJSON = read(keyUser)
	return token, userJSON, token != "" && userJSON != "", nil
}

// writeCreds persists both keys in one transaction.
func (s *Store) writeCreds(ctx context.Context, token, userJSON string) error {
	db, err := s.openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO creds(k, v) VALUES(?, ?)`, keyToken, token); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO creds(k, v) VALUES(?, ?)`, keyUser, userJSON); err != nil {
		return err
	}
	return tx.Commit()
}

// clearCreds removes both keys. Missing rows are not an error, so clearing an
// already-empty store stays idempotent.
func (s *Store) clearCreds(ctx context.Context) error {
	db, err := s.openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `DELETE FROM creds WHERE k IN (?, ?)`, keyToken, keyUser)
	return err
}
