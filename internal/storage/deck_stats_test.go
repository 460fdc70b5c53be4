package storage

import (
	"testing"

	"github.com/revisehq/revise/internal/deckstats"
)

func TestDeckStatsSnapshot(t *testing.T) {
	db := openTestDB(t)
	deck, err := db.CreateDeck("Stats", now)
	if err != nil {
		t.Fatalf("CreateDeck returned an unexpected error: %v", err)
	}

	t.Run("missing snapshot returns nil", func(t *testing.T) {
		stats, err := db.LoadDeckStats(deck.ID)
		if err != nil || stats != nil {
			t.Errorf("Expected nil before any snapshot, got %+v, %v", stats, err)
		}
	})

	first := deckstats.Summary{TotalCards: 10, DueCount: 4, Mastered: 2, Learning: 5, NotStarted: 3, AveragePerformance: 71.4}
	if err := db.SaveDeckStats(deck.ID, first, now); err != nil {
		t.Fatalf("SaveDeckStats returned an unexpected error: %v", err)
	}

	t.Run("round trips a snapshot", func(t *testing.T) {
		stats, err := db.LoadDeckStats(deck.ID)
		if err != nil || stats == nil {
			t.Fatalf("LoadDeckStats failed: %+v, %v", stats, err)
		}
		if *stats != first {
			t.Errorf("Expected %+v, got %+v", first, *stats)
		}
	})

	t.Run("upsert replaces the previous snapshot", func(t *testing.T) {
		second := deckstats.Summary{TotalCards: 10, DueCount: 0, Mastered: 3, Learning: 4, NotStarted: 3, AveragePerformance: 85}
		if err := db.SaveDeckStats(deck.ID, second, now.Add(1)); err != nil {
			t.Fatalf("SaveDeckStats returned an unexpected error: %v", err)
		}
		stats, err := db.LoadDeckStats(deck.ID)
		if err != nil || stats == nil {
			t.Fatalf("LoadDeckStats failed: %+v, %v", stats, err)
		}
		if *stats != second {
			t.Errorf("Expected %+v, got %+v", second, *stats)
		}
	})
}
