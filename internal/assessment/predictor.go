package assessment

import "github.com/adaptlearn/backend/internal/models"

// PredictPerformance predicts how a learner at theta will do on an item
// of the given difficulty, under the plain Rasch model. Deterministic,
// no failure modes.
func PredictPerformance(theta float64, difficulty models.Difficulty) models.PredictionResult {
	return predictNumeric(theta, ToNumeric(difficulty), probability(theta, ToNumeric(difficulty)))
}

// PredictItemPerformance is the 3PL extension: it uses the item's
// discrimination and guessing parameters when the item bank supplies
// them, falling back to Rasch defaults when it doesn't.
//
//	P = c + (1-c) / (1 + exp(-a*(theta-b)))
func PredictItemPerformance(theta float64, item models.ItemParameters) models.PredictionResult {
	a := item.Discrimination
	if a <= 0 {
		a = 1.0
	}
	c := item.Guessing
	if c < 0 || c >= 1 {
		c = 0
	}
	b := ToNumeric(item.Difficulty)
	p := c + (1-c)*sigmoid(a*(theta-b), 0)
	return predictNumeric(theta, b, p)
}

func probability(theta, b float64) float64 {
	return sigmoid(theta, b)
}

func predictNumeric(theta, b, p float64) models.PredictionResult {
	score := 100.0 * p

	// Predictions are most reliable when ability and difficulty are well
	// matched, so confidence is a function of the gap.
	gap := abs(theta - b)
	confidence := models.ConfidenceLow
	switch {
	case gap < 0.5:
		confidence = models.ConfidenceHigh
	case gap < 1.0:
		confidence = models.ConfidenceMedium
	}

	var delta models.DifficultyDelta
	switch {
	case score > 90:
		delta = models.DeltaIncrease
	case score >= 80:
		delta = models.DeltaSlightIncrease
	case score >= 60:
		delta = models.DeltaMaintain
	case score >= 40:
		delta = models.DeltaSlightDecrease
	default:
		delta = models.DeltaDecrease
	}

	return models.PredictionResult{
		PredictedScore:     score,
		ProbabilityCorrect: p,
		ConfidenceLevel:    confidence,
		RecommendedDelta:   delta,
	}
}
