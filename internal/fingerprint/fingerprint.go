package fingerprint

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/revisehq/revise/internal/domain"
)

// Normalize concatenates the card's content after cleaning each part.
// It trims whitespace, lowercases, and normalizes line endings for each field
// before joining them. Scheduling state is deliberately excluded: a card's
// identity is its content, so re-importing an unchanged card keeps its
// review history.
func Normalize(card domain.Card) string {
	normalizePart := func(part string) string {
		p := strings.ToLower(part)
		p = strings.TrimSpace(p)
		p = strings.ReplaceAll(p, "\r\n", "\n")
		return p
	}

	f := normalizePart(card.Front)
	b := normalizePart(card.Back)
	n := normalizePart(card.Notes)

	// We join with a newline to ensure separation between fields,
	// preventing accidental joining of words. e.g. "front" and "back"
	// becoming "frontback".
	return strings.Join([]string{f, b, n}, "\n")
}

// Hash takes a card, normalizes it, and returns its SHA-256 hash as a hex string.
func Hash(card domain.Card) string {
	normalized := Normalize(card)
	hashBytes := sha256.Sum256([]byte(normalized))
	return fmt.Sprintf("%x", hashBytes)
}
