package deckstats

import (
	"testing"
	"time"

	"github.com/revisehq/revise/internal/domain"
)

var now = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func TestProject(t *testing.T) {
	t.Run("empty deck", func(t *testing.T) {
		s := Project(nil, now)
		if s.TotalCards != 0 || s.DueCount != 0 || s.AveragePerformance != 0 {
			t.Errorf("Expected a zero summary for an empty deck, got %+v", s)
		}
	})

	t.Run("counts due cards", func(t *testing.T) {
		future := now.Add(time.Hour)
		past := now.Add(-time.Hour)
		cards := []domain.Card{
			{ID: "a"},                      // never scheduled, due
			{ID: "b", NextReview: &past},   // overdue
			{ID: "c", NextReview: &future}, // not yet due
		}
		s := Project(cards, now)
		if s.TotalCards != 3 {
			t.Errorf("Expected 3 total cards, got %d", s.TotalCards)
		}
		if s.DueCount != 2 {
			t.Errorf("Expected 2 due cards, got %d", s.DueCount)
		}
	})

	t.Run("partitions mastery buckets", func(t *testing.T) {
		cards := []domain.Card{
			{ID: "a", Difficulty: domain.DifficultyEasy},
			{ID: "b", Difficulty: domain.DifficultyGood},
			{ID: "c", Difficulty: domain.DifficultyHard},
			{ID: "d", Difficulty: domain.DifficultyUnset},
		}
		s := Project(cards, now)
		if s.Mastered != 1 {
			t.Errorf("Expected 1 mastered card, got %d", s.Mastered)
		}
		if s.Learning != 2 {
			t.Errorf("Expected 2 learning cards, got %d", s.Learning)
		}
		if s.NotStarted != 1 {
			t.Errorf("Expected 1 not-started card, got %d", s.NotStarted)
		}
	})

	t.Run("never-reviewed cards are excluded from the average", func(t *testing.T) {
		cards := []domain.Card{
			{ID: "a", Difficulty: domain.DifficultyEasy},
			{ID: "b", Difficulty: domain.DifficultyUnset},
		}
		s := Project(cards, now)
		if s.AveragePerformance != 100 {
			t.Errorf("Expected average performance 100, got %.1f", s.AveragePerformance)
		}
	})

	t.Run("hard cards drag the average down", func(t *testing.T) {
		cards := []domain.Card{
			{ID: "a", Difficulty: domain.DifficultyGood},
			{ID: "b", Difficulty: domain.DifficultyHard},
		}
		s := Project(cards, now)
		if s.AveragePerformance != 50 {
			t.Errorf("Expected average performance 50, got %.1f", s.AveragePerformance)
		}
	})

	t.Run("no reviewed cards means zero average", func(t *testing.T) {
		cards := []domain.Card{{ID: "a"}, {ID: "b"}}
		s := Project(cards, now)
		if s.AveragePerformance != 0 {
			t.Errorf("Expected average performance 0, got %.1f", s.AveragePerformance)
		}
	})
}
