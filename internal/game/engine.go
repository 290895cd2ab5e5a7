// internal/game/engine.go
//
// Guess validation for a single puzzle.
// Responsibilities:
//   - Normalize raw input to the lowercase form used by word lists.
//   - Check a guess against the board rules in a fixed order.
//
// Notes:
//   - The order matters and is part of the game: duplicate, then length,
//     then center letter, then dictionary. A repeated four-letter word says
//     "Already found", not "Too short".

package game

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/robalobadob/freebee/internal/puzzle"
)

// Normalize trims and lowercases a raw guess.
func Normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// Check validates word for p given the words already found. It returns nil
// when the guess is acceptable, or one of the rejection errors.
func Check(word string, p *puzzle.Puzzle, found func(string) bool) error {
	if found != nil && found(word) {
		return ErrAlreadyFound
	}
	if utf8.RuneCountInString(word) < MinWordLength {
		return ErrTooShort
	}
	if !strings.Contains(word, p.Center) {
		return ErrMissingCenter
	}
	if !p.Contains(word) {
		return ErrNotInWordList
	}
	return nil
}

// IsRejection reports whether err is one of the player-facing rejection reasons.
func IsRejection(err error) bool {
	return errors.Is(err, ErrAlreadyFound) ||
		errors.Is(err, ErrTooShort) ||
		errors.Is(err, ErrMissingCenter) ||
		errors.Is(err, ErrNotInWordList)
}
