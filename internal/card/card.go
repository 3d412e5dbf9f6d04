// Package card provides the word-card supply for the game. Cards are
// loaded once from a delimited text file and consumed read-only by index.
package card

import (
	"os"
	"strings"
)

// WordsPerCard is the number of words every card carries.
const WordsPerCard = 5

// Card is one set of words to describe during a round.
type Card []string

// Supply is the ordered, immutable list of cards a game draws from.
// Indices into a Supply are stable for the lifetime of a game.
type Supply []Card

// Load reads a card file from disk.
func Load(path string) (Supply, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data)), nil
}

// Parse parses card records from delimited text. The first line is a
// header and is skipped. Rows with fewer than WordsPerCard fields are
// dropped; longer rows keep their first WordsPerCard fields.
func Parse(text string) Supply {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	var cards Supply
	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		words := parseLine(line)
		if len(words) >= WordsPerCard {
			cards = append(cards, Card(words[:WordsPerCard]))
		}
	}
	return cards
}

// parseLine splits one record. A double quote toggles field capture, so
// commas between quotes are literal. There is no escaped-quote handling.
func parseLine(line string) []string {
	var result []string
	var current strings.Builder
	inQuotes := false
	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			result = append(result, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	result = append(result, strings.TrimSpace(current.String()))
	return result
}
