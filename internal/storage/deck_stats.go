package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/revisehq/revise/internal/deckstats"
)

// SaveDeckStats upserts the projected summary snapshot for a deck.
func (db *DB) SaveDeckStats(deckID string, stats deckstats.Summary, now time.Time) error {
	_, err := db.conn.Exec(`
		INSERT INTO deck_stats (deck_id, total_cards, due_count, mastered, learning, not_started, average_performance, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(deck_id) DO UPDATE SET
			total_cards = excluded.total_cards,
			due_count = excluded.due_count,
			mastered = excluded.mastered,
			learning = excluded.learning,
			not_started = excluded.not_started,
			average_performance = excluded.average_performance,
			updated_at = excluded.updated_at
	`,
		deckID,
		stats.TotalCards,
		stats.DueCount,
		stats.Mastered,
		stats.Learning,
		stats.NotStarted,
		stats.AveragePerformance,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to save stats for deck %s: %w", deckID, err)
	}
	return nil
}

// LoadDeckStats retrieves the last saved summary for a deck. Returns nil if
// no snapshot has been written yet.
func (db *DB) LoadDeckStats(deckID string) (*deckstats.Summary, error) {
	var s deckstats.Summary
	row := db.conn.QueryRow(`
		SELECT total_cards, due_count, mastered, learning, not_started, average_performance
		FROM deck_stats WHERE deck_id = ?
	`, deckID)

	err := row.Scan(&s.TotalCards, &s.DueCount, &s.Mastered, &s.Learning, &s.NotStarted, &s.AveragePerformance)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // No snapshot yet
		}
		return nil, fmt.Errorf("failed to load stats for deck %s: %w", deckID, err)
	}
	return &s, nil
}
