// Package inbox keeps a SQLite record of contact-form messages and their
// delivery outcome.
package inbox

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/starford/folio/internal/apperr"
)

// Status is the delivery state of a message.
type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
)

// Message is a received contact-form submission.
type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Status    Status    `json:"status"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS messages (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL,
	subject    TEXT NOT NULL DEFAULT '',
	body       TEXT NOT NULL,
	status     TEXT NOT NULL DEFAULT 'pending',
	error      TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_messages_created ON messages(created_at);
`

// DB wraps a sql.DB with inbox operations.
type DB struct {
	conn *sql.DB
	now  func() time.Time
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("inbox: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("inbox: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("inbox: apply schema: %w", err)
	}
	return &DB{conn: conn, now: func() time.Time { return time.Now().UTC() }}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Save stores m as pending, assigning an id and timestamps.
func (db *DB) Save(ctx context.Context, m *Message) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	now := db.now()
	m.Status = StatusPending
	m.Error = ""
	m.CreatedAt, m.UpdatedAt = now, now
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO messages (id, name, email, subject, body, status, error, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, '', ?, ?)
	`, m.ID, m.Name, m.Email, m.Subject, m.Body, m.Status, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inbox: save: %w", err)
	}
	return nil
}

// MarkSent records a successful delivery.
func (db *DB) MarkSent(ctx context.Context, id string) error {
	return db.setStatus(ctx, id, StatusSent, "")
}

// MarkFailed records a failed delivery with its reason.
func (db *DB) MarkFailed(ctx context.Context, id, reason string) error {
	return db.setStatus(ctx, id, StatusFailed, reason)
}

func (db *DB) setStatus(ctx context.Context, id string, status Status, reason string) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE messages SET status = ?, error = ?, updated_at = ? WHERE id = ?`,
		status, reason, db.now(), id)
	if err != nil {
		return fmt.Errorf("inbox: set status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("inbox: message %s: %w", id, apperr.ErrNotFound)
	}
	return nil
}

// Get returns one message.
func (db *DB) Get(ctx context.Context, id string) (Message, error) {
	row := db.conn.QueryRowContext(ctx, `
		SELECT id, name, email, subject, body, status, error, created_at, updated_at
		FROM messages WHERE id = ?
	`, id)
	m, err := scanMessage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Message{}, fmt.Errorf("inbox: message %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return Message{}, fmt.Errorf("inbox: get: %w", err)
	}
	return m, nil
}

// List returns messages newest first, with the total count.
func (db *DB) List(ctx context.Context, limit, offset int) ([]Message, int, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := db.conn.QueryRowContext(ctx, `SELECT count(*) FROM messages`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("inbox: count: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, name, email, subject, body, status, error, created_at, updated_at
		FROM messages
		ORDER BY created_at DESC, rowid DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("inbox: list: %w", err)
	}
	defer rows.Close()

	out := []Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("inbox: scan: %w", err)
		}
		out = append(out, m)
	}
	return out, total, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMessage(s scanner) (Message, error) {
	var m Message
	var status string
	err := s.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &status, &m.Error, &m.CreatedAt, &m.UpdatedAt)
	m.Status = Status(status)
	return m, err
}
