package parser

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name          string
		input         string
		expectedCards int
		expectedF     string
		expectedB     string
		expectedN     string
	}{
		{
			name:          "Simple front and back",
			input:         "F: What is the capital of France?\nB: Paris",
			expectedCards: 1,
			expectedF:     "What is the capital of France?",
			expectedB:     "Paris",
			expectedN:     "",
		},
		{
			name:          "Front, back, and notes",
			input:         "F: What is 1+1?\nB: 2\nN: Basic arithmetic",
			expectedCards: 1,
			expectedF:     "What is 1+1?",
			expectedB:     "2",
			expectedN:     "Basic arithmetic",
		},
		{
			name: "Multiline back",
			input: `
F: What are the primary colors?
B: Red
Blue
Yellow
`,
			expectedCards: 1,
			expectedF:     "What are the primary colors?",
			expectedB:     "Red\nBlue\nYellow",
			expectedN:     "",
		},
		{
			name: "Two cards",
			input: `
F: First front
B: First back

F: Second front
B: Second back
`,
			expectedCards: 2,
		},
		{
			name: "Separator between cards",
			input: `
F: One
B: 1
---
F: Two
B: 2
`,
			expectedCards: 2,
		},
		{
			name: "Card with all fields and multiline",
			input: `
F: What is Go?
B: A statically typed, compiled programming language.
It was designed at Google.
N: Programming Languages
`,
			expectedCards: 1,
			expectedF:     "What is Go?",
			expectedB:     "A statically typed, compiled programming language.\nIt was designed at Google.",
			expectedN:     "Programming Languages",
		},
		{
			name:          "No cards, just text",
			input:         "This is a file with no fronts.",
			expectedCards: 0,
		},
		{
			name:          "Prefixes with no space",
			input:         "F:Front\nB:Back",
			expectedCards: 1,
			expectedF:     "Front",
			expectedB:     "Back",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := strings.NewReader(tc.input)
			cards, err := Parse(r)
			if err != nil {
				t.Fatalf("Parse() returned an unexpected error: %v", err)
			}

			if len(cards) != tc.expectedCards {
				t.Fatalf("Expected %d cards, but got %d", tc.expectedCards, len(cards))
			}

			if tc.expectedCards == 1 {
				card := cards[0]
				if card.Front != tc.expectedF {
					t.Errorf("Expected Front to be '%s', but got '%s'", tc.expectedF, card.Front)
				}
				if card.Back != tc.expectedB {
					t.Errorf("Expected Back to be '%s', but got '%s'", tc.expectedB, card.Back)
				}
				if card.Notes != tc.expectedN {
					t.Errorf("Expected Notes to be '%s', but got '%s'", tc.expectedN, card.Notes)
				}
			}
		})
	}
}
