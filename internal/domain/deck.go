package domain

import "time"

// Deck is a named collection of cards. Card order is irrelevant to
// scheduling.
type Deck struct {
	ID        string `validate:"required"`
	Name      string `validate:"required"`
	CreatedAt time.Time
	Cards     []Card
}

// ReviewEvent records one answered card. Events are append-only and are the
// only input to historical aggregation; they are never mutated or deleted.
type ReviewEvent struct {
	DeckID string
	CardID string
	// Performance is on the canonical 0-100 scale (see Rating.Performance).
	Performance int `validate:"gte=0,lte=100"`
	ReviewedAt  time.Time
}
