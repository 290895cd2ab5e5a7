package game

import (
	"strings"
	"unicode/utf8"
)

// PangramBonus is added to the length of a pangram longer than four letters.
const PangramBonus = 7

// IsPangram reports whether every letter of letters occurs in word.
func IsPangram(word, letters string) bool {
	for _, r := range letters {
		if !strings.ContainsRune(word, r) {
			return false
		}
	}
	return true
}

// Score returns the points for one accepted word. Four-letter words are
// always worth 1, even when they are pangrams.
func Score(word, letters string) int {
	n := utf8.RuneCountInString(word)
	if n == 4 {
		return 1
	}
	if IsPangram(word, letters) {
		return n + PangramBonus
	}
	return n
}

// TotalScore sums Score over words.
func TotalScore(words []string, letters string) int {
	total := 0
	for _, w := range words {
		total += Score(w, letters)
	}
	return total
}
