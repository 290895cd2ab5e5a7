// internal/game/types.go
//
// Core type definitions for the puzzle rules engine.
// Defines:
//   - Tier: a named level with its share of the puzzle's total score.
//   - Tiers: the fixed level table, lowest first.
//   - Rejection errors returned by Check.

package game

import "errors"

// Tier is one rung of the level ladder.
type Tier struct {
	Name  string  `json:"name"`
	Ratio float64 `json:"ratio"` // share of the puzzle total needed to reach this tier
}

// Tiers is ordered ascending by Ratio. The first tier has ratio 0 so every
// score has a level.
var Tiers = []Tier{
	{Name: "Newbie", Ratio: 0},
	{Name: "Novice", Ratio: 0.02},
	{Name: "Fine", Ratio: 0.05},
	{Name: "Skilled", Ratio: 0.08},
	{Name: "Excellent", Ratio: 0.15},
	{Name: "Superb", Ratio: 0.25},
	{Name: "Marvellous", Ratio: 0.4},
	{Name: "Outstanding", Ratio: 0.5},
	{Name: "Queen Bee 🐝", Ratio: 0.7},
}

// Rejection reasons, in the order Check tests them. The messages are shown
// to players verbatim.
var (
	ErrAlreadyFound  = errors.New("Already found")
	ErrTooShort      = errors.New("Too short")
	ErrMissingCenter = errors.New("Missing center letter")
	ErrNotInWordList = errors.New("Not in word list")
)

// MinWordLength is the shortest acceptable guess.
const MinWordLength = 4

// PangramMessage is shown when an accepted word uses every letter.
const PangramMessage = "PANGRAM!"
