package domain

import "time"

// Difficulty values recorded on a card after its last review.
const (
	DifficultyUnset = 0
	DifficultyHard  = 1
	DifficultyGood  = 2
	DifficultyEasy  = 3
)

// Card is a single front-back entry owned by a deck, together with its
// scheduling state. Scheduling fields are only mutated through the
// scheduler package or direct edit forms.
type Card struct {
	ID     string `validate:"required"`
	DeckID string `validate:"required"`
	Front  string `validate:"required"`
	Back   string `validate:"required"`
	Notes  string
	Hash   string

	// Difficulty is the rating of the last answer: 0 unset, 1 hard,
	// 2 good, 3 easy.
	Difficulty int `validate:"gte=0,lte=3"`
	// LastReviewed is nil for a card that has never been reviewed.
	LastReviewed *time.Time
	// NextReview is nil when the card is eligible immediately.
	// Invariant: nil or >= LastReviewed.
	NextReview *time.Time
	// ConsecutiveCorrect counts consecutive non-hard answers.
	ConsecutiveCorrect int
}

// Due reports whether the card should be presented at the given time.
// A card with no scheduled review is always due.
func (c Card) Due(now time.Time) bool {
	return c.NextReview == nil || !c.NextReview.After(now)
}

// Reviewed reports whether the card has ever been answered.
func (c Card) Reviewed() bool {
	return c.Difficulty != DifficultyUnset
}
