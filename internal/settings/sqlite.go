// Package settings persists dashboard preferences in SQLite.
package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goodnatureofminers/tezwatch-backend/internal/model"
	_ "modernc.org/sqlite"
)

// Repository stores one Settings row per namespace.
type Repository struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (and creates when missing) the database at path. Use ":memory:" in tests.
func Open(ctx context.Context, path string) (*Repository, error) {
	p := strings.TrimSpace(path)
	if p == "" {
		return nil, errors.New("empty settings db path")
	}
	db, err := sql.Open("sqlite", p)
	if err != nil {
		return nil, fmt.Errorf("open settings db: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=3000;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure settings db: %w", err)
	}
	r := &Repository{db: db, now: time.Now}
	if err := r.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return r, nil
}

func (r *Repository) ensureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS settings(
			namespace TEXT PRIMARY KEY,
			page_size INTEGER NOT NULL,
			page_offset INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);`)
	if err != nil {
		return fmt.Errorf("create settings table: %w", err)
	}
	return nil
}

// Get returns the settings of namespace, or the defaults with ok=false when none were saved.
func (r *Repository) Get(ctx context.Context, namespace string) (model.Settings, bool, error) {
	var (
		s       = model.Settings{Namespace: namespace}
		updated int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT page_size, page_offset, updated_at FROM settings WHERE namespace = ?`, namespace,
	).Scan(&s.PageSize, &s.Offset, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DefaultSettings(namespace), false, nil
	}
	if err != nil {
		return model.Settings{}, false, fmt.Errorf("get settings %q: %w", namespace, err)
	}
	s.UpdatedAt = time.Unix(0, updated).UTC()
	return s, true, nil
}

// Put validates and stores s, replacing what was saved for its namespace.
func (r *Repository) Put(ctx context.Context, s model.Settings) (model.Settings, error) {
	if err := s.Validate(); err != nil {
		return model.Settings{}, err
	}
	s.UpdatedAt = r.now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings(namespace, page_size, page_offset, updated_at)
		VALUES(?, ?, ?, ?)
		ON CONFLICT(namespace) DO UPDATE SET
			page_size=excluded.page_size,
			page_offset=excluded.page_offset,
			updated_at=excluded.updated_at;`,
		s.Namespace, s.PageSize, s.Offset, s.UpdatedAt.UnixNano())
	if err != nil {
		return model.Settings{}, fmt.Errorf("put settings %q: %w", s.Namespace, err)
	}
	return s, nil
}

func (r *Repository) Close() error { return r.db.Close() }
