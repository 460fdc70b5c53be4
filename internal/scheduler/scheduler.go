package scheduler

import (
	"math/rand"
	"time"

	"github.com/revisehq/revise/internal/domain"
)

// Interval buckets for the fixed three-bucket model. A richer ease-factor
// model can replace intervalFor without changing any caller.
const (
	hardInterval = 24 * time.Hour
	goodInterval = 3 * 24 * time.Hour
	easyInterval = 7 * 24 * time.Hour
)

// SelectDue returns the cards that should be presented at the given time, in
// a freshly shuffled order. The shuffle is deliberately different per call so
// a session never presents cards in a memorizable sequence. The input slice
// is not mutated. An empty result is a normal outcome, not an error.
func SelectDue(cards []domain.Card, now time.Time) []domain.Card {
	var due []domain.Card
	for _, c := range cards {
		if c.Due(now) {
			due = append(due, c)
		}
	}
	rand.Shuffle(len(due), func(i, j int) {
		due[i], due[j] = due[j], due[i]
	})
	return due
}

// ApplyOutcome computes a card's new scheduling state after one answer and
// returns it; the caller persists the result. Intervals are fixed per rating:
// hard one day, good three days, easy seven days. An unrecognized rating
// falls back to the shortest interval rather than failing, because a
// scheduling miss is cheaper than aborting a study session.
func ApplyOutcome(card domain.Card, rating domain.Rating, now time.Time) domain.Card {
	if !rating.Valid() {
		rating = domain.Hard
	}

	next := now.Add(intervalFor(rating))
	card.LastReviewed = &now
	card.NextReview = &next
	card.Difficulty = int(rating)

	if rating > domain.Hard {
		card.ConsecutiveCorrect++
	} else {
		card.ConsecutiveCorrect = 0
	}
	return card
}

func intervalFor(rating domain.Rating) time.Duration {
	switch rating {
	case domain.Good:
		return goodInterval
	case domain.Easy:
		return easyInterval
	default:
		return hardInterval
	}
}
