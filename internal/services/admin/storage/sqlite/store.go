package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/adminpanel/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/adminpanel/internal/services/admin/storage"
	"github.com/louisbranch/adminpanel/internal/services/admin/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

const timeFormat = time.RFC3339Nano

// defaultActivityLimit bounds ListActivity when the caller passes no limit.
const defaultActivityLimit = 50

// Store provides a SQLite-backed store implementing admin storage interfaces.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens a SQLite store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := "file:" + cleanPath + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{
		sqlDB: sqlDB,
		now:   func() time.Time { return time.Now().UTC() },
	}

	if err := store.runMigrations(context.Background()); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return store, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) runMigrations(ctx context.Context) error {
	return sqlitemigrate.ApplyMigrations(ctx, s.sqlDB, migrations.FS, "")
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// PutPanelSession persists a panel session record. Repeated calls for the
// same session keep the first timestamp.
func (s *Store) PutPanelSession(ctx context.Context, sessionID string, createdAt time.Time) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("session id is required")
	}
	if createdAt.IsZero() {
		createdAt = s.now()
	}

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO panel_sessions (session_id, created_at) VALUES (?, ?)
		 ON CONFLICT (session_id) DO NOTHING`,
		sessionID, createdAt.UTC().Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("put panel session: %w", err)
	}
	return nil
}

// AppendActivity stores an activity entry.
func (s *Store) AppendActivity(ctx context.Context, entry storage.Activity) (storage.Activity, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Activity{}, err
	}
	if strings.TrimSpace(entry.SessionID) == "" {
		return storage.Activity{}, fmt.Errorf("session id is required")
	}
	if strings.TrimSpace(entry.Action) == "" {
		return storage.Activity{}, fmt.Errorf("action is required")
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}
	entry.CreatedAt = entry.CreatedAt.UTC()

	result, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO activity (session_id, action, subject, detail, created_at) VALUES (?, ?, ?, ?, ?)`,
		entry.SessionID, entry.Action, entry.Subject, entry.Detail, entry.CreatedAt.Format(timeFormat),
	)
	if err != nil {
		return storage.Activity{}, fmt.Errorf("append activity: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return storage.Activity{}, fmt.Errorf("append activity id: %w", err)
	}
	entry.ID = id
	return entry, nil
}

// ListActivity returns the newest activity entries first.
func (s *Store) ListActivity(ctx context.Context, sessionID string, limit int) ([]storage.Activity, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultActivityLimit
	}

	query := `SELECT id, session_id, action, subject, detail, created_at FROM activity`
	args := []any{}
	if sessionID = strings.TrimSpace(sessionID); sessionID != "" {
		query += ` WHERE session_id = ?`
		args = append(args, sessionID)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()

	entries := make([]storage.Activity, 0, limit)
	for rows.Next() {
		var (
			entry     storage.Activity
			createdAt string
		)
		if err := rows.Scan(&entry.ID, &entry.SessionID, &entry.Action, &entry.Subject, &entry.Detail, &createdAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		parsed, err := time.Parse(timeFormat, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse activity time: %w", err)
		}
		entry.CreatedAt = parsed
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity: %w", err)
	}
	return entries, nil
}

var _ storage.Store = (*Store)(nil)
