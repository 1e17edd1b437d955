package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"cropall/internal/cropper"
)

// Entry is one crop written to disk.
type Entry struct {
	ID           int64
	SessionID    string
	InputPath    string
	OutputPath   string
	Rect         cropper.Rect
	SourceWidth  int
	SourceHeight int
	CreatedAt    time.Time
}

// Store manages crop history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts e and returns it with ID and CreatedAt filled in.
func (s *Store) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO crops (
            session_id, input_path, output_path, x0, y0, x1, y1,
            source_width, source_height, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.SessionID, e.InputPath, e.OutputPath,
		e.Rect.X0, e.Rect.Y0, e.Rect.X1, e.Rect.Y1,
		e.SourceWidth, e.SourceHeight,
		e.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("insert crop: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Entry{}, fmt.Errorf("crop id: %w", err)
	}
	e.ID = id
	return e, nil
}

// List returns the most recent entries, newest first. A limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT id, session_id, input_path, output_path, x0, y0, x1, y1,
        source_width, source_height, created_at FROM crops ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return s.query(ctx, query, args...)
}

// ForInput returns the entries for one input image, newest first.
func (s *Store) ForInput(ctx context.Context, inputPath string) ([]Entry, error) {
	return s.query(ctx,
		`SELECT id, session_id, input_path, output_path, x0, y0, x1, y1,
        source_width, source_height, created_at FROM crops
        WHERE input_path = ? ORDER BY id DESC`,
		inputPath,
	)
}

// Last returns the newest entry for inputPath and whether one exists.
func (s *Store) Last(ctx context.Context, inputPath string) (Entry, bool, error) {
	entries, err := s.ForInput(ctx, inputPath)
	if err != nil || len(entries) == 0 {
		return Entry{}, false, err
	}
	return entries[0], true, nil
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query crops: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(
			&e.ID, &e.SessionID, &e.InputPath, &e.OutputPath,
			&e.Rect.X0, &e.Rect.Y0, &e.Rect.X1, &e.Rect.Y1,
			&e.SourceWidth, &e.SourceHeight, &created,
		); err != nil {
			return nil, fmt.Errorf("scan crop: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
			e.CreatedAt = ts
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate crops: %w", err)
	}
	return entries, nil
}
