package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Row is one indexed record.
type Row struct {
	Collection string
	ID         string
	Title      string
	Body       string
	Tags       []string
	Position   int
}

// SearchResult represents one search hit.
type SearchResult struct {
	Collection string `json:"collection"`
	ID         string `json:"id"`
	Title      string `json:"title"`
	Snippet    string `json:"snippet"`
}

const defaultSearchLimit = 20

// Replace swaps every indexed row for rows and records version, within a
// single transaction.
func (db *DB) Replace(ctx context.Context, version string, rows []Row) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("index: clear records: %w", err)
	}
	if err := ftsClear(tx); err != nil {
		return err
	}

	if len(rows) > 0 {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO records (collection, id, title, body, tags, position)
			VALUES (?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("index: prepare insert: %w", err)
		}
		defer stmt.Close()
		for _, r := range rows {
			tagsJSON, _ := json.Marshal(r.Tags)
			if _, err := stmt.ExecContext(ctx, r.Collection, r.ID, r.Title, r.Body, string(tagsJSON), r.Position); err != nil {
				return fmt.Errorf("index: insert %s/%s: %w", r.Collection, r.ID, err)
			}
			if err := ftsInsert(tx, r); err != nil {
				return err
			}
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sync_state (id, version, synced_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET version = excluded.version, synced_at = excluded.synced_at
	`, version, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("index: record version: %w", err)
	}

	return tx.Commit()
}

// Version returns the content version last synced, or "" if never synced.
func (db *DB) Version(ctx context.Context) (string, error) {
	var v string
	err := db.conn.QueryRowContext(ctx, `SELECT version FROM sync_state WHERE id = 1`).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("index: version: %w", err)
	}
	return v, nil
}

// Count returns the number of indexed rows per collection.
func (db *DB) Count(ctx context.Context) (map[string]int, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT collection, count(*) FROM records GROUP BY collection`)
	if err != nil {
		return nil, fmt.Errorf("index: count: %w", err)
	}
	defer rows.Close()
	out := make(map[string]int)
	for rows.Next() {
		var c string
		var n int
		if err := rows.Scan(&c, &n); err != nil {
			return nil, err
		}
		out[c] = n
	}
	return out, rows.Err()
}

func scanResults(rows *sql.Rows) ([]SearchResult, error) {
	defer rows.Close()
	out := []SearchResult{}
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.Collection, &r.ID, &r.Title, &r.Snippet); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
