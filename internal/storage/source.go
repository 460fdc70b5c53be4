package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// Source represents a deck origin, either a local path or a Git URL. Each
// source feeds exactly one deck.
type Source struct {
	ID         int64
	Path       string
	Type       string // "local" or "git"
	DeckID     string
	LastSynced sql.NullTime
}

// InsertSource inserts a new source and returns it.
func (db *DB) InsertSource(path, sourceType, deckID string) (*Source, error) {
	res, err := db.conn.Exec(`
		INSERT INTO sources (path, type, deck_id)
		VALUES (?, ?, ?)
	`, path, sourceType, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert source %s: %w", path, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert ID for source %s: %w", path, err)
	}
	return &Source{ID: id, Path: path, Type: sourceType, DeckID: deckID}, nil
}

// FindSourceByPath retrieves a source by its path. Returns nil if not found.
func (db *DB) FindSourceByPath(path string) (*Source, error) {
	var s Source
	row := db.conn.QueryRow(`
		SELECT id, path, type, deck_id, last_synced
		FROM sources WHERE path = ?
	`, path)

	err := row.Scan(&s.ID, &s.Path, &s.Type, &s.DeckID, &s.LastSynced)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Source not found
		}
		return nil, fmt.Errorf("failed to find source by path %s: %w", path, err)
	}
	return &s, nil
}

// GetAllSources retrieves all stored sources.
func (db *DB) GetAllSources() ([]Source, error) {
	rows, err := db.conn.Query(`
		SELECT id, path, type, deck_id, last_synced
		FROM sources
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get all sources: %w", err)
	}
	defer rows.Close()

	var sources []Source
	for rows.Next() {
		var s Source
		if err := rows.Scan(&s.ID, &s.Path, &s.Type, &s.DeckID, &s.LastSynced); err != nil {
			return nil, fmt.Errorf("failed to scan source row: %w", err)
		}
		sources = append(sources, s)
	}
	return sources, rows.Err()
}

// UpdateSourceLastSynced updates the last_synced timestamp for a source.
func (db *DB) UpdateSourceLastSynced(sourceID int64, now time.Time) error {
	_, err := db.conn.Exec(`
		UPDATE sources
		SET last_synced = ?
		WHERE id = ?
	`, now, sourceID)
	if err != nil {
		return fmt.Errorf("failed to update last synced for source ID %d: %w", sourceID, err)
	}
	return nil
}

// DeleteSource removes a source. Its deck and cards are kept; they simply
// stop being reconciled.
func (db *DB) DeleteSource(id int64) error {
	_, err := db.conn.Exec(`
		DELETE FROM sources
		WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete source ID %d: %w", id, err)
	}
	return nil
}
