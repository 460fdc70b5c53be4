package parser

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/revisehq/revise/internal/domain"
)

const (
	frontPrefix = "F:"
	backPrefix  = "B:"
	notesPrefix = "N:"
)

type state int

const (
	seeking state = iota
	readingFront
	readingBack
	readingNotes
)

// ParseFile reads a file from the given path and extracts all cards.
func ParseFile(path string) ([]domain.Card, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads from an io.Reader and extracts all cards. Cards are blocks of
// F:/B:/N: sections separated by "---"; a new F: always starts a new card.
func Parse(r io.Reader) ([]domain.Card, error) {
	scanner := bufio.NewScanner(r)
	var cards []domain.Card
	var currentCard domain.Card
	var currentBlock []string
	currentState := seeking

	flushBlock := func() {
		if len(currentBlock) == 0 {
			return
		}
		content := strings.Join(currentBlock, "\n")
		switch currentState {
		case readingFront:
			currentCard.Front = content
		case readingBack:
			currentCard.Back = content
		case readingNotes:
			currentCard.Notes = content
		}
		currentBlock = nil
	}

	finishCard := func() {
		flushBlock()
		if currentCard.Front != "" {
			cards = append(cards, currentCard)
		}
		currentCard = domain.Card{}
		currentState = seeking
	}

	stripPrefix := func(line, prefix string) string {
		content := line[len(prefix):]
		if strings.HasPrefix(content, " ") {
			content = content[1:]
		}
		return content
	}

	for scanner.Scan() {
		line := scanner.Text()

		isF := strings.HasPrefix(line, frontPrefix)
		isB := strings.HasPrefix(line, backPrefix)
		isN := strings.HasPrefix(line, notesPrefix)

		if line == "---" {
			finishCard()
			continue
		}

		if isF || isB || isN {
			flushBlock()

			switch {
			case isF:
				if currentState != seeking { // a new front always starts a new card
					finishCard()
				}
				currentState = readingFront
				currentBlock = append(currentBlock, stripPrefix(line, frontPrefix))
			case isB:
				currentState = readingBack
				currentBlock = append(currentBlock, stripPrefix(line, backPrefix))
			case isN:
				currentState = readingNotes
				currentBlock = append(currentBlock, stripPrefix(line, notesPrefix))
			}
		} else if currentState != seeking {
			currentBlock = append(currentBlock, line)
		}
	}

	finishCard() // finish the very last card in the file

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return cards, nil
}
