package storage

const schema = `
-- The 'decks' table groups cards for study and dashboards.
CREATE TABLE IF NOT EXISTS decks (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    created_at DATETIME NOT NULL
);

-- The 'cards' table stores card content plus scheduling state.
-- last_reviewed and next_review are NULL for never-reviewed cards;
-- a NULL next_review means the card is due immediately.
CREATE TABLE IF NOT EXISTS cards (
    id TEXT PRIMARY KEY,
    deck_id TEXT NOT NULL,
    front TEXT NOT NULL,
    back TEXT NOT NULL,
    notes TEXT,
    hash TEXT NOT NULL,
    difficulty INTEGER NOT NULL DEFAULT 0, -- 0: unset, 1: hard, 2: good, 3: easy
    last_reviewed DATETIME,
    next_review DATETIME,
    consecutive_correct INTEGER NOT NULL DEFAULT 0,
    source_id INTEGER,

    FOREIGN KEY(deck_id) REFERENCES decks(id),
    FOREIGN KEY(source_id) REFERENCES sources(id)
);

-- The 'review_events' table is an append-only log of answered cards,
-- used only for historical aggregation. Rows are never updated or deleted.
CREATE TABLE IF NOT EXISTS review_events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    deck_id TEXT NOT NULL,
    card_id TEXT NOT NULL,
    performance INTEGER NOT NULL, -- canonical 0-100 scale
    reviewed_at DATETIME NOT NULL
);

-- The 'deck_stats' table holds the last projected summary per deck, written
-- when a study session completes. It is a denormalized snapshot for
-- dashboards; card state remains the source of truth.
CREATE TABLE IF NOT EXISTS deck_stats (
    deck_id TEXT PRIMARY KEY,
    total_cards INTEGER NOT NULL,
    due_count INTEGER NOT NULL,
    mastered INTEGER NOT NULL,
    learning INTEGER NOT NULL,
    not_started INTEGER NOT NULL,
    average_performance REAL NOT NULL,
    updated_at DATETIME NOT NULL,

    FOREIGN KEY(deck_id) REFERENCES decks(id)
);

-- The 'sources' table tracks deck origins, either a local directory or a git repository.
CREATE TABLE IF NOT EXISTS sources (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    path TEXT NOT NULL UNIQUE,
    type TEXT NOT NULL, -- 'local' or 'git'
    deck_id TEXT NOT NULL,
    last_synced DATETIME,

    FOREIGN KEY(deck_id) REFERENCES decks(id)
);
`
