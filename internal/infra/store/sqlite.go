// Package store provides a SQLite-backed document store for generated playlists.
package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver

	"github.com/osa030/moodmix/internal/domain/playlist"
	"github.com/osa030/moodmix/internal/infra/provider"
)

// ErrUnavailable is returned when no store connection was established.
var ErrUnavailable = errors.New("store unavailable")

const schema = `
CREATE TABLE IF NOT EXISTS playlists (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	document   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_playlists_user_created ON playlists(user_id, created_at DESC);
`

// SQLite stores each playlist as a JSON document keyed by a generated id.
type SQLite struct {
	db *sql.DB
}

// Open opens the database at path and migrates the schema.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite db")
	}
	// A single connection keeps ":memory:" databases shared and serializes writes.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to ping sqlite db")
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "migration failed")
	}

	return &SQLite{db: db}, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Save stores the playlist and returns its new id.
func (s *SQLite) Save(ctx context.Context, p playlist.Playlist) (string, error) {
	id := uuid.New().String()
	p.ID = ""

	doc, err := json.Marshal(p)
	if err != nil {
		return "", provider.Wrap(provider.Store, err, "failed to encode playlist")
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO playlists (id, user_id, created_at, document) VALUES (?, ?, ?, ?)",
		id, p.UserID, p.CreatedAt.UnixNano(), string(doc),
	)
	if err != nil {
		return "", provider.Wrap(provider.Store, err, "failed to save playlist")
	}

	return id, nil
}

// ListByUser returns the user's playlists, newest first.
func (s *SQLite) ListByUser(ctx context.Context, userID string) ([]playlist.Playlist, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, document FROM playlists WHERE user_id = ? ORDER BY created_at DESC, rowid DESC",
		userID,
	)
	if err != nil {
		return nil, provider.Wrap(provider.Store, err, "failed to query playlists")
	}
	defer rows.Close()

	playlists := make([]playlist.Playlist, 0)
	for rows.Next() {
		var id, doc string
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, provider.Wrap(provider.Store, err, "failed to scan playlist")
		}

		var p playlist.Playlist
		if err := json.Unmarshal([]byte(doc), &p); err != nil {
			return nil, provider.Wrap(provider.Store, err, "failed to decode playlist")
		}
		p.ID = id
		playlists = append(playlists, p)
	}
	if err := rows.Err(); err != nil {
		return nil, provider.Wrap(provider.Store, err, "failed to iterate playlists")
	}

	return playlists, nil
}

// Delete removes the playlist with the given id. Missing ids are not an error.
func (s *SQLite) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM playlists WHERE id = ?", id); err != nil {
		return provider.Wrap(provider.Store, err, "failed to delete playlist")
	}
	return nil
}
