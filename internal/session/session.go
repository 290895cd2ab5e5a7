// internal/session/session.go
//
// Guess state for one puzzle.
// A Session holds the accepted words in the order they were found and derives
// score, level and pangram flags from them on demand. It never touches
// storage; Engine does that.

package session

import (
	"sort"

	"github.com/robalobadob/freebee/internal/game"
	"github.com/robalobadob/freebee/internal/puzzle"
)

// Session is the Ready-state data for one puzzle.
type Session struct {
	Puzzle *puzzle.Puzzle

	words []string
	set   map[string]struct{}
}

// Accepted describes a guess that made it onto the list.
type Accepted struct {
	Word    string `json:"word"`
	Points  int    `json:"points"`
	Pangram bool   `json:"pangram"`
	Message string `json:"message,omitempty"`
}

// WordScore is one row of the found-words list.
type WordScore struct {
	Word    string `json:"word"`
	Points  int    `json:"points"`
	Pangram bool   `json:"pangram"`
}

// New builds a Session for p from previously found words. Repeats are dropped,
// keeping the first occurrence.
func New(p *puzzle.Puzzle, words []string) *Session {
	s := &Session{Puzzle: p, set: make(map[string]struct{}, len(words))}
	for _, w := range words {
		s.add(w)
	}
	return s
}

func (s *Session) add(w string) {
	if w == "" {
		return
	}
	if _, dup := s.set[w]; dup {
		return
	}
	s.set[w] = struct{}{}
	s.words = append(s.words, w)
}

// Has reports whether w has already been found.
func (s *Session) Has(w string) bool {
	_, ok := s.set[w]
	return ok
}

// Words returns the found words in insertion order.
func (s *Session) Words() []string {
	return append([]string(nil), s.words...)
}

// Len is the number of found words.
func (s *Session) Len() int { return len(s.words) }

// Submit validates word and, when accepted, appends it. The caller persists.
func (s *Session) Submit(word string) (Accepted, error) {
	word = game.Normalize(word)
	if err := game.Check(word, s.Puzzle, s.Has); err != nil {
		return Accepted{}, err
	}
	s.add(word)

	a := Accepted{
		Word:    word,
		Points:  game.Score(word, s.Puzzle.Letters),
		Pangram: game.IsPangram(word, s.Puzzle.Letters),
	}
	if a.Pangram {
		a.Message = game.PangramMessage
	}
	return a, nil
}

// Score is the sum of the found words' points.
func (s *Session) Score() int {
	return game.TotalScore(s.words, s.Puzzle.Letters)
}

// Level is the tier reached by the current score.
func (s *Session) Level() game.Tier {
	return game.LevelFor(s.Score(), s.Puzzle.Total)
}

// PointsToNext is the distance to the next tier; ok is false at the top.
func (s *Session) PointsToNext() (int, bool) {
	score := s.Score()
	return game.PointsToNext(score, s.Puzzle.Total, game.LevelFor(score, s.Puzzle.Total))
}

// Ladder is the level table for this puzzle and score.
func (s *Session) Ladder() []game.Rung {
	return game.Ladder(s.Score(), s.Puzzle.Total)
}

// Recent returns the found words, most recent first.
func (s *Session) Recent() []string {
	out := make([]string, len(s.words))
	for i, w := range s.words {
		out[len(s.words)-1-i] = w
	}
	return out
}

// Sorted returns the found words alphabetically with their points.
func (s *Session) Sorted() []WordScore {
	out := make([]WordScore, 0, len(s.words))
	for _, w := range s.words {
		out = append(out, WordScore{
			Word:    w,
			Points:  game.Score(w, s.Puzzle.Letters),
			Pangram: game.IsPangram(w, s.Puzzle.Letters),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Word < out[j].Word })
	return out
}
