package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DefaultKeep is how many checkpoints are retained per drawing.
const DefaultKeep = 20

const schema = `
CREATE TABLE IF NOT EXISTS checkpoints (
    id       INTEGER PRIMARY KEY AUTOINCREMENT,
    name     TEXT    NOT NULL,
    saved_at INTEGER NOT NULL,
    body     TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS checkpoints_name ON checkpoints(name, id);
`

// SQLiteStore appends a checkpoint on every save and loads the newest.
// Older checkpoints beyond Keep are pruned.
type SQLiteStore struct {
	db   *sql.DB
	Keep int
}

// OpenSQLite opens (creating if needed) the database at dbPath.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteStore{db: db, Keep: DefaultKeep}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, name string, doc Document) error {
	if err := checkName(name); err != nil {
		return err
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
        INSERT INTO checkpoints (name, saved_at, body)
        VALUES (?, ?, ?)
    `, name, doc.SavedAt.UnixMilli(), string(body)); err != nil {
		return fmt.Errorf("insert checkpoint: %w", err)
	}
	if s.Keep > 0 {
		res, err := tx.ExecContext(ctx, `
            DELETE FROM checkpoints
            WHERE name = ? AND id NOT IN (
                SELECT id FROM checkpoints WHERE name = ? ORDER BY id DESC LIMIT ?
            )
        `, name, name, s.Keep)
		if err != nil {
			return fmt.Errorf("prune checkpoints: %w", err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			log.Printf("[store] pruned %d checkpoints of %s", n, name)
		}
	}
	return tx.Commit()
}

// Load returns the newest checkpoint of a drawing.
func (s *SQLiteStore) Load(ctx context.Context, name string) (Document, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT body FROM checkpoints
        WHERE name = ?
        ORDER BY id DESC
        LIMIT 1
    `, name)
	return scanDocument(row, name)
}

// Checkpoints reports how many checkpoints are held for a drawing.
func (s *SQLiteStore) Checkpoints(ctx context.Context, name string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM checkpoints WHERE name = ?`, name).Scan(&n)
	return n, err
}

// Previous returns the checkpoint saved back steps before the newest;
// back 0 is the same as Load.
func (s *SQLiteStore) Previous(ctx context.Context, name string, back int) (Document, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT body FROM checkpoints
        WHERE name = ?
        ORDER BY id DESC
        LIMIT 1 OFFSET ?
    `, name, back)
	return scanDocument(row, name)
}

func (s *SQLiteStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT name FROM checkpoints ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func scanDocument(row *sql.Row, name string) (Document, error) {
	var body string
	if err := row.Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return Document{}, err
	}
	var doc Document
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return Document{}, fmt.Errorf("decode %s: %w", name, err)
	}
	if err := doc.check(); err != nil {
		return Document{}, err
	}
	return doc, nil
}
