package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/revisehq/revise/internal/domain"
	_ "modernc.org/sqlite" // Registers the sqlite driver
)

// DB represents a wrapper around the SQL database connection. Card and deck
// writes are validated here, at the store boundary, so the scheduling core
// never sees malformed input.
type DB struct {
	conn     *sql.DB
	validate *validator.Validate
}

// Open creates a new database connection and ensures the schema is up to date.
func Open(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Execute the schema to create tables if they don't exist.
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{conn: db, validate: validator.New()}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// CreateDeck inserts a new empty deck and returns it.
func (db *DB) CreateDeck(name string, now time.Time) (domain.Deck, error) {
	deck := domain.Deck{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
	}
	if err := db.validate.Struct(deck); err != nil {
		return domain.Deck{}, fmt.Errorf("invalid deck: %w", err)
	}

	_, err := db.conn.Exec(`
		INSERT INTO decks (id, name, created_at)
		VALUES (?, ?, ?)
	`, deck.ID, deck.Name, deck.CreatedAt)
	if err != nil {
		return domain.Deck{}, fmt.Errorf("failed to insert deck %s: %w", deck.Name, err)
	}
	return deck, nil
}

// ListDecks retrieves all decks without their cards.
func (db *DB) ListDecks() ([]domain.Deck, error) {
	rows, err := db.conn.Query(`
		SELECT id, name, created_at
		FROM decks ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	defer rows.Close()

	var decks []domain.Deck
	for rows.Next() {
		var d domain.Deck
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan deck row: %w", err)
		}
		decks = append(decks, d)
	}
	return decks, rows.Err()
}

// LoadDeck retrieves a deck and all of its cards. Returns nil if the deck
// does not exist.
func (db *DB) LoadDeck(deckID string) (*domain.Deck, error) {
	var d domain.Deck
	row := db.conn.QueryRow(`
		SELECT id, name, created_at
		FROM decks WHERE id = ?
	`, deckID)
	if err := row.Scan(&d.ID, &d.Name, &d.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Deck not found
		}
		return nil, fmt.Errorf("failed to load deck %s: %w", deckID, err)
	}

	cards, err := db.GetCardsByDeckID(deckID)
	if err != nil {
		return nil, err
	}
	d.Cards = cards
	return &d, nil
}

// FindDeckByName retrieves a deck (without cards) by its name. Returns nil
// if no deck has that name.
func (db *DB) FindDeckByName(name string) (*domain.Deck, error) {
	var d domain.Deck
	row := db.conn.QueryRow(`
		SELECT id, name, created_at
		FROM decks WHERE name = ?
	`, name)
	if err := row.Scan(&d.ID, &d.Name, &d.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find deck by name %s: %w", name, err)
	}
	return &d, nil
}

// InsertCard inserts a new card. A missing ID is assigned here; content is
// validated before the write. New cards start unscheduled: difficulty unset
// and both review timestamps NULL, so the card is due immediately.
func (db *DB) InsertCard(card domain.Card, sourceID int64) (domain.Card, error) {
	if card.ID == "" {
		card.ID = uuid.NewString()
	}
	card.Front = strings.TrimSpace(card.Front)
	card.Back = strings.TrimSpace(card.Back)
	if err := db.validate.Struct(card); err != nil {
		return domain.Card{}, fmt.Errorf("invalid card: %w", err)
	}

	_, err := db.conn.Exec(`
		INSERT INTO cards (id, deck_id, front, back, notes, hash, difficulty, last_reviewed, next_review, consecutive_correct, source_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		card.ID,
		card.DeckID,
		card.Front,
		card.Back,
		card.Notes,
		card.Hash,
		card.Difficulty,
		nullTime(card.LastReviewed),
		nullTime(card.NextReview),
		card.ConsecutiveCorrect,
		nullInt(sourceID),
	)
	if err != nil {
		return domain.Card{}, fmt.Errorf("failed to insert card %s: %w", card.ID, err)
	}
	return card, nil
}

// SaveCard updates an existing card's scheduling state. This is the per-card
// upsert the review flow calls after each answer; no multi-card transaction
// is needed because an outcome only ever touches one card.
func (db *DB) SaveCard(card domain.Card) error {
	if err := db.validate.Struct(card); err != nil {
		return fmt.Errorf("invalid card: %w", err)
	}

	_, err := db.conn.Exec(`
		UPDATE cards
		SET difficulty = ?, last_reviewed = ?, next_review = ?, consecutive_correct = ?
		WHERE id = ?
	`,
		card.Difficulty,
		nullTime(card.LastReviewed),
		nullTime(card.NextReview),
		card.ConsecutiveCorrect,
		card.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to save card %s: %w", card.ID, err)
	}
	return nil
}

// FindCardByID retrieves a card by its ID. Returns nil if not found.
func (db *DB) FindCardByID(id string) (*domain.Card, error) {
	row := db.conn.QueryRow(cardSelect+` WHERE id = ?`, id)
	card, err := scanCard(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Card not found
		}
		return nil, fmt.Errorf("failed to find card by id %s: %w", id, err)
	}
	return &card, nil
}

// FindCardByHash retrieves a card by its content hash. Returns nil if not found.
func (db *DB) FindCardByHash(hash string) (*domain.Card, error) {
	row := db.conn.QueryRow(cardSelect+` WHERE hash = ?`, hash)
	card, err := scanCard(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Card not found
		}
		return nil, fmt.Errorf("failed to find card by hash %s: %w", hash, err)
	}
	return &card, nil
}

// GetCardsByDeckID retrieves all cards belonging to a deck.
func (db *DB) GetCardsByDeckID(deckID string) ([]domain.Card, error) {
	rows, err := db.conn.Query(cardSelect+` WHERE deck_id = ?`, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cards for deck %s: %w", deckID, err)
	}
	defer rows.Close()
	return collectCards(rows)
}

// GetCardsBySourceID retrieves all cards that came from a specific source.
func (db *DB) GetCardsBySourceID(sourceID int64) ([]domain.Card, error) {
	rows, err := db.conn.Query(cardSelect+` WHERE source_id = ?`, sourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cards for source ID %d: %w", sourceID, err)
	}
	defer rows.Close()
	return collectCards(rows)
}

// DeleteCardByHash removes a card by its content hash.
func (db *DB) DeleteCardByHash(hash string) error {
	_, err := db.conn.Exec(`
		DELETE FROM cards
		WHERE hash = ?
	`, hash)
	if err != nil {
		return fmt.Errorf("failed to delete card with hash %s: %w", hash, err)
	}
	return nil
}

// AppendEvent appends one review event to the log. Events are append-only;
// there is deliberately no update or delete.
func (db *DB) AppendEvent(ev domain.ReviewEvent) error {
	if err := db.validate.Struct(ev); err != nil {
		return fmt.Errorf("invalid review event: %w", err)
	}

	_, err := db.conn.Exec(`
		INSERT INTO review_events (deck_id, card_id, performance, reviewed_at)
		VALUES (?, ?, ?, ?)
	`, ev.DeckID, ev.CardID, ev.Performance, ev.ReviewedAt)
	if err != nil {
		return fmt.Errorf("failed to append review event for card %s: %w", ev.CardID, err)
	}
	return nil
}

// LoadEvents retrieves review events at or after the given time, oldest first.
// Pass the zero time to load the full history.
func (db *DB) LoadEvents(since time.Time) ([]domain.ReviewEvent, error) {
	rows, err := db.conn.Query(`
		SELECT deck_id, card_id, performance, reviewed_at
		FROM review_events
		WHERE reviewed_at >= ?
		ORDER BY reviewed_at
	`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load review events: %w", err)
	}
	defer rows.Close()

	var events []domain.ReviewEvent
	for rows.Next() {
		var ev domain.ReviewEvent
		if err := rows.Scan(&ev.DeckID, &ev.CardID, &ev.Performance, &ev.ReviewedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review event row: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

const cardSelect = `
	SELECT id, deck_id, front, back, notes, hash, difficulty, last_reviewed, next_review, consecutive_correct
	FROM cards`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (domain.Card, error) {
	var c domain.Card
	var notes sql.NullString
	var lastReviewed, nextReview sql.NullTime
	err := row.Scan(
		&c.ID,
		&c.DeckID,
		&c.Front,
		&c.Back,
		&notes,
		&c.Hash,
		&c.Difficulty,
		&lastReviewed,
		&nextReview,
		&c.ConsecutiveCorrect,
	)
	if err != nil {
		return domain.Card{}, err
	}
	c.Notes = notes.String
	if lastReviewed.Valid {
		t := lastReviewed.Time
		c.LastReviewed = &t
	}
	if nextReview.Valid {
		t := nextReview.Time
		c.NextReview = &t
	}
	return c, nil
}

func collectCards(rows *sql.Rows) ([]domain.Card, error) {
	var cards []domain.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card row: %w", err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullInt(v int64) sql.NullInt64 {
	if v == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: v, Valid: true}
}
