package marker

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Ledger is a SQLite index of processed replays keyed by content identity.
// It complements co-located markers: a replay renamed outside the pipeline
// loses its marker but keeps its identity.
type Ledger struct {
	db *sql.DB
}

// OpenLedger opens (creating if needed) the ledger database at path.
func OpenLedger(path string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	dsn := fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)",
		path,
	)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("exec ledger schema: %w", err)
	}
	return &Ledger{db: db}, nil
}

// Close closes the database connection.
func (l *Ledger) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// Lookup returns the last recorded name for identity.
func (l *Ledger) Lookup(ctx context.Context, identity string) (name string, ok bool, err error) {
	const q = `SELECT name FROM processed WHERE identity = ?`
	err = l.db.QueryRowContext(ctx, q, identity).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup %s: %w", identity, err)
	}
	return name, true, nil
}

// Record inserts or updates the entry for identity.
func (l *Ledger) Record(ctx context.Context, identity, name, state string) error {
	const q = `INSERT INTO processed (identity, name, state, processed_at) VALUES (?, ?, ?, ?)
ON CONFLICT(identity) DO UPDATE SET name = excluded.name, state = excluded.state, processed_at = excluded.processed_at`
	if _, err := l.db.ExecContext(ctx, q, identity, name, state, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("record %s: %w", identity, err)
	}
	return nil
}

// Count returns the number of recorded identities.
func (l *Ledger) Count(ctx context.Context) (int, error) {
	var n int
	if err := l.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM processed`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
