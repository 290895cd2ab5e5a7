package game

// Threshold converts a tier ratio to points for a puzzle total. The product
// is truncated, not rounded.
func Threshold(total int, ratio float64) int {
	return int(float64(total) * ratio)
}

// LevelFor returns the highest tier whose threshold is at or below score.
func LevelFor(score, total int) Tier {
	level := Tiers[0]
	for _, t := range Tiers {
		if score >= Threshold(total, t.Ratio) {
			level = t
		}
	}
	return level
}

// PointsToNext returns how many points separate score from the tier after
// current. ok is false when current is the top tier.
func PointsToNext(score, total int, current Tier) (points int, ok bool) {
	for i, t := range Tiers {
		if t.Name != current.Name {
			continue
		}
		if i+1 >= len(Tiers) {
			return 0, false
		}
		return Threshold(total, Tiers[i+1].Ratio) - score, true
	}
	return 0, false
}

// Rung is a tier as shown on the levels ladder.
type Rung struct {
	Tier
	Points  int  `json:"points"`
	Current bool `json:"current"`
	Passed  bool `json:"passed"`
}

// Ladder lists every tier with its threshold for total, lowest first, marking
// the current tier and the ones score has gone past.
func Ladder(score, total int) []Rung {
	current := LevelFor(score, total)
	out := make([]Rung, len(Tiers))
	for i, t := range Tiers {
		pts := Threshold(total, t.Ratio)
		out[i] = Rung{
			Tier:    t,
			Points:  pts,
			Current: t.Name == current.Name,
			Passed:  score > pts,
		}
	}
	return out
}
