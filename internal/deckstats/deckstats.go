// Package deckstats projects deck-level summary figures from current card
// state. The projection is recomputed on demand, never incrementally
// maintained, so a stale read simply refreshes on the next request.
package deckstats

import (
	"time"

	"github.com/revisehq/revise/internal/domain"
)

// Summary holds the dashboard figures for one deck.
type Summary struct {
	TotalCards int
	DueCount   int

	// Mastery buckets partition every card by its last rating.
	Mastered   int // last rated easy
	Learning   int // last rated hard or good
	NotStarted int // never reviewed

	// AveragePerformance is 0-100 over reviewed cards only. Never-reviewed
	// cards are excluded so a fresh deck is not dragged toward zero; with no
	// reviewed cards the average is 0.
	AveragePerformance float64
}

// Project derives a deck summary from its cards at the given time.
func Project(cards []domain.Card, now time.Time) Summary {
	s := Summary{TotalCards: len(cards)}

	var reviewed, successSum int
	for _, c := range cards {
		if c.Due(now) {
			s.DueCount++
		}
		switch c.Difficulty {
		case domain.DifficultyEasy:
			s.Mastered++
		case domain.DifficultyHard, domain.DifficultyGood:
			s.Learning++
		default:
			s.NotStarted++
		}
		if c.Reviewed() {
			reviewed++
			if c.Difficulty >= domain.DifficultyGood {
				successSum += 100
			}
		}
	}
	if reviewed > 0 {
		s.AveragePerformance = float64(successSum) / float64(reviewed)
	}
	return s
}
