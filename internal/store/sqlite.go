package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/jmorales/shopdesk/internal/model"
)

// SQLiteStore implements the Store interface using a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// SeenIDs returns the persisted set of already-surfaced notification ids.
func (s *SQLiteStore) SeenIDs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryxContext(ctx, "SELECT id FROM seen_notifications")
	if err != nil {
		return nil, fmt.Errorf("querying seen ids: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning seen id: %w", err)
		}
		seen[id] = struct{}{}
	}

	return seen, rows.Err()
}

// MarkSeen adds ids to the seen set and prunes the set to the most
// recent SeenCap entries. Already-present ids are left untouched.
func (s *SQLiteStore) MarkSeen(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx,
		"INSERT OR IGNORE INTO seen_notifications (id, seen_at) VALUES (?, ?)",
	)
	if err != nil {
		return fmt.Errorf("preparing seen insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, id := range ids {
		if _, err := stmt.ExecContext(ctx, id, now); err != nil {
			return fmt.Errorf("marking id %s seen: %w", id, err)
		}
	}

	// Retain only the most recently inserted entries.
	_, err = tx.ExecContext(ctx, `
		DELETE FROM seen_notifications WHERE rowid NOT IN (
			SELECT rowid FROM seen_notifications ORDER BY rowid DESC LIMIT ?
		)`, SeenCap)
	if err != nil {
		return fmt.Errorf("pruning seen ids: %w", err)
	}

	return tx.Commit()
}

// InsertNotifications appends notifications to the local history.
// Duplicates by id are ignored.
func (s *SQLiteStore) InsertNotifications(
	ctx context.Context,
	ns []model.Notification,
) error {
	if len(ns) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT OR IGNORE INTO notifications (
			id, title, message, type, category, priority,
			action_url, action_text, read, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing notification insert: %w", err)
	}
	defer stmt.Close()

	for _, n := range ns {
		_, err := stmt.ExecContext(ctx,
			n.ID, n.Title, n.Message, n.Type, n.Category, n.Priority,
			n.ActionURL, n.ActionText, boolToInt(n.Read), n.CreatedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("inserting notification %s: %w", n.ID, err)
		}
	}

	return tx.Commit()
}

// GetNotifications retrieves the notification history, newest first.
func (s *SQLiteStore) GetNotifications(
	ctx context.Context,
	limit int,
) ([]model.Notification, error) {
	query := "SELECT * FROM notifications ORDER BY created_at DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// UnreadCount returns the number of unread notifications in the history.
func (s *SQLiteStore) UnreadCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM notifications WHERE read = 0",
	)
	if err != nil {
		return 0, fmt.Errorf("counting unread notifications: %w", err)
	}
	return count, nil
}

// MarkNotificationRead marks a single notification as read.
func (s *SQLiteStore) MarkNotificationRead(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE notifications SET read = 1 WHERE id = ?", id,
	)
	if err != nil {
		return fmt.Errorf("marking notification %s as read: %w", id, err)
	}
	return nil
}

// MarkAllNotificationsRead marks the whole history as read.
func (s *SQLiteStore) MarkAllNotificationsRead(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "UPDATE notifications SET read = 1")
	if err != nil {
		return fmt.Errorf("marking notifications read: %w", err)
	}
	return nil
}

// SaveSnapshot stores the last-known-good payload for a resource kind.
func (s *SQLiteStore) SaveSnapshot(
	ctx context.Context,
	kind string,
	payload []byte,
	fetchedAt time.Time,
) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO snapshots (kind, payload, fetched_at)
		VALUES (?, ?, ?)`,
		kind, string(payload), fetchedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving snapshot %s: %w", kind, err)
	}
	return nil
}

// LoadSnapshot retrieves the stored payload for a resource kind,
// returning nil when none exists.
func (s *SQLiteStore) LoadSnapshot(
	ctx context.Context,
	kind string,
) (*model.Snapshot, error) {
	var (
		payload   string
		fetchedAt time.Time
	)
	err := s.db.QueryRowxContext(ctx,
		"SELECT payload, fetched_at FROM snapshots WHERE kind = ?", kind,
	).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading snapshot %s: %w", kind, err)
	}

	return &model.Snapshot{
		Kind:      kind,
		Payload:   []byte(payload),
		FetchedAt: fetchedAt,
	}, nil
}

// scanNotification scans a notification row from a sqlx.Rows result set.
func scanNotification(rows *sqlx.Rows) (model.Notification, error) {
	var (
		n         model.Notification
		readInt   int
		createdAt time.Time
	)

	err := rows.Scan(
		&n.ID, &n.Title, &n.Message, &n.Type, &n.Category, &n.Priority,
		&n.ActionURL, &n.ActionText, &readInt, &createdAt,
	)
	if err != nil {
		return model.Notification{}, fmt.Errorf("scanning notification row: %w", err)
	}

	n.Read = readInt != 0
	n.CreatedAt = createdAt

	return n, nil
}

// boolToInt converts a boolean to 0 or 1 for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
