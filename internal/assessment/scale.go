// Package assessment is the estimation core of the backend: ability
// estimation, performance prediction, item selection, difficulty
// adaptation, and blockage detection. Every function here is a pure
// computation over caller-supplied histories — no I/O, no shared state —
// so callers may invoke it concurrently for different learners.
package assessment

import "github.com/adaptlearn/backend/internal/models"

// difficultyLevels is the fixed ordered ladder, easiest first. The
// numeric values are the Rasch difficulty parameters (b) the rest of
// the core works in.
var difficultyLevels = []struct {
	Label models.Difficulty
	Value float64
}{
	{models.DifficultyVeryEasy, -2.0},
	{models.DifficultyEasy, -1.0},
	{models.DifficultyMedium, 0.0},
	{models.DifficultyHard, 1.0},
	{models.DifficultyVeryHard, 2.0},
}

// ToNumeric converts a difficulty label to its position on the numeric
// scale. Unknown labels map to medium (0.0) so a bad row in the item
// bank never aborts an estimation pass.
func ToNumeric(label models.Difficulty) float64 {
	for _, l := range difficultyLevels {
		if l.Label == label {
			return l.Value
		}
	}
	return 0.0
}

// FromNumeric clamps v to the valid range and snaps it to the nearest
// defined level. Ties break toward the easier level.
func FromNumeric(v float64) models.Difficulty {
	if v < difficultyLevels[0].Value {
		v = difficultyLevels[0].Value
	}
	if v > difficultyLevels[len(difficultyLevels)-1].Value {
		v = difficultyLevels[len(difficultyLevels)-1].Value
	}

	best := difficultyLevels[0].Label
	bestDist := abs(v - difficultyLevels[0].Value)
	for _, l := range difficultyLevels[1:] {
		// Strict comparison: on an exact tie the earlier (easier) level wins.
		if d := abs(v - l.Value); d < bestDist {
			best = l.Label
			bestDist = d
		}
	}
	return best
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
