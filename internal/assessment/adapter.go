package assessment

import "github.com/adaptlearn/backend/internal/models"

// Adaptation moves only when observed performance diverges from the
// prediction by more than this many score points.
const performanceGapThreshold = 20.0

// AdaptDifficulty converts observed vs. predicted performance on the
// current difficulty into a new target level. actualScore is the
// learner's recent score (0-100) at the current difficulty;
// questionsAnswered is the session's response count, used to stay
// conservative while the estimate is still warming up.
func AdaptDifficulty(current models.Difficulty, theta, actualScore float64, questionsAnswered int) models.DifficultyTransition {
	bCurrent := ToNumeric(current)
	predicted := predictNumeric(theta, bCurrent, probability(theta, bCurrent))
	gap := actualScore - predicted.PredictedScore

	// Conservative early, more responsive once the estimate has settled.
	adjustmentFactor := 0.3
	if questionsAnswered >= 5 {
		adjustmentFactor = 0.5
	}

	adjustment := 0.0
	switch {
	case gap > performanceGapThreshold:
		adjustment = adjustmentFactor * minFloat(gap/100.0, 0.5)
	case gap < -performanceGapThreshold:
		adjustment = -adjustmentFactor * minFloat(abs(gap)/100.0, 0.5)
	}

	optimal := clamp(theta+adjustment, -2.0, 2.0)
	newLabel := FromNumeric(optimal)

	return models.DifficultyTransition{
		Current:        current,
		New:            newLabel,
		PerformanceGap: gap,
		Justification:  justify(gap, current, newLabel),
	}
}

func justify(gap float64, current, next models.Difficulty) string {
	var observed string
	switch {
	case gap > performanceGapThreshold:
		observed = "performance well above prediction"
	case gap < -performanceGapThreshold:
		observed = "performance well below prediction"
	default:
		return "performance in line with prediction — holding difficulty"
	}

	switch {
	case ToNumeric(next) > ToNumeric(current):
		return observed + " — raising difficulty"
	case ToNumeric(next) < ToNumeric(current):
		return observed + " — lowering difficulty"
	default:
		return observed + " — holding difficulty at estimated ability"
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
