// internal/puzzle/puzzle.go
//
// Puzzle document model.
// A puzzle is fetched once per date key and never mutated afterwards.
//
// Wire shape (static store, one file per day):
//   { "letters": "abcdefg", "center": "a", "wordlist": ["face", ...], "total": 20 }
//
// The feed is allowed to list the center inside `letters` (7 letters) or
// beside it (6 outer letters); both are accepted and neither is rewritten,
// since Identity and StorageKey are built from the raw fields.

package puzzle

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// LetterCount is the number of distinct letters on the board, center included.
const LetterCount = 7

var (
	// ErrNoPuzzle is returned by every Fetcher when no usable document exists for a key.
	ErrNoPuzzle = errors.New("no puzzle available")
	// ErrInvalidPuzzle marks documents that break the board invariants.
	ErrInvalidPuzzle = errors.New("invalid puzzle")
)

// Puzzle is one day's board.
type Puzzle struct {
	Letters  string   `json:"letters"`
	Center   string   `json:"center"`
	WordList []string `json:"wordlist"`
	Total    int      `json:"total"`

	words map[string]struct{}
}

// Decode reads and validates a puzzle document.
func Decode(r io.Reader) (*Puzzle, error) {
	var p Puzzle
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode puzzle: %w", err)
	}
	p.WordList = normalizeWords(p.WordList)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.words = toSet(p.WordList)
	return &p, nil
}

// Validate checks the board invariants: a single-character center and exactly
// seven distinct letters once the center is counted.
func (p *Puzzle) Validate() error {
	if utf8.RuneCountInString(p.Center) != 1 {
		return fmt.Errorf("%w: center %q must be one letter", ErrInvalidPuzzle, p.Center)
	}
	seen := make(map[rune]struct{}, LetterCount)
	for _, r := range p.Letters {
		if _, dup := seen[r]; dup {
			return fmt.Errorf("%w: letter %q repeated", ErrInvalidPuzzle, r)
		}
		seen[r] = struct{}{}
	}
	if !strings.Contains(p.Letters, p.Center) {
		seen[[]rune(p.Center)[0]] = struct{}{}
	}
	if len(seen) != LetterCount {
		return fmt.Errorf("%w: want %d letters, got %d", ErrInvalidPuzzle, LetterCount, len(seen))
	}
	if p.Total <= 0 {
		return fmt.Errorf("%w: total must be positive", ErrInvalidPuzzle)
	}
	return nil
}

// Identity tags shared guess blobs for this board.
func (p *Puzzle) Identity() string {
	return p.Letters + p.Center
}

// StorageKey is the durable storage key for guesses on this board.
// Two days that reuse a letter set share a key.
func (p *Puzzle) StorageKey() string {
	return "guessed_" + p.Letters + "_" + p.Center
}

// Contains reports whether word is on the puzzle's word list.
// Puzzles built by Decode use a prebuilt set; literals fall back to a scan.
func (p *Puzzle) Contains(word string) bool {
	if p.words != nil {
		_, ok := p.words[word]
		return ok
	}
	for _, w := range p.WordList {
		if w == word {
			return true
		}
	}
	return false
}

// WordCount is the number of distinct words on the list.
func (p *Puzzle) WordCount() int {
	if p.words != nil {
		return len(p.words)
	}
	return len(toSet(p.WordList))
}
