package assessment

import (
	"testing"
	"time"

	"github.com/adaptlearn/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

// makeHistory builds n responses at the given difficulty, all answered at
// testNow, with correctness taken from the pattern (cycled).
func makeHistory(n int, difficulty models.Difficulty, pattern ...bool) []models.ResponseRecord {
	history := make([]models.ResponseRecord, n)
	for i := 0; i < n; i++ {
		history[i] = models.ResponseRecord{
			LearnerID:           1,
			ItemID:              int64(i + 1),
			Subject:             models.SubjectAlgebra,
			Difficulty:          difficulty,
			Correct:             pattern[i%len(pattern)],
			ResponseTimeSeconds: 12,
			AnsweredAt:          testNow,
		}
	}
	return history
}

func TestEstimateAbilityEmptyHistory(t *testing.T) {
	est := EstimateAbilityAt(nil, testNow)

	assert.Equal(t, 0.0, est.Theta)
	assert.Equal(t, 1.0, est.StandardError)
	assert.Equal(t, 0, est.SampleSize)
	assert.InDelta(t, -1.96, est.ConfidenceLow, 1e-9)
	assert.InDelta(t, 1.96, est.ConfidenceHigh, 1e-9)
}

func TestEstimateAbilityBounds(t *testing.T) {
	histories := [][]models.ResponseRecord{
		makeHistory(1, models.DifficultyVeryHard, true),
		makeHistory(1, models.DifficultyVeryEasy, false),
		makeHistory(25, models.DifficultyMedium, true),
		makeHistory(25, models.DifficultyMedium, false),
		makeHistory(12, models.DifficultyHard, true, false, true),
	}

	for _, h := range histories {
		est := EstimateAbilityAt(h, testNow)
		assert.GreaterOrEqual(t, est.Theta, ThetaMin)
		assert.LessOrEqual(t, est.Theta, ThetaMax)
		assert.Greater(t, est.StandardError, 0.0)
		assert.LessOrEqual(t, est.StandardError, maxStandardError)
	}
}

func TestEstimateAbilityTenCorrectAtMedium(t *testing.T) {
	est := EstimateAbilityAt(makeHistory(10, models.DifficultyMedium, true), testNow)

	assert.Greater(t, est.Theta, 0.5, "ten straight correct answers at medium should push theta well above 0.5")
	assert.Equal(t, 10, est.SampleSize)
	assert.Equal(t, int64(1), est.LearnerID)
}

func TestEstimateAbilityAllWrong(t *testing.T) {
	est := EstimateAbilityAt(makeHistory(10, models.DifficultyMedium, false), testNow)
	assert.Less(t, est.Theta, -0.5)
}

func TestEstimateAbilityMixedSitsBetween(t *testing.T) {
	// Correct on easy items, wrong on hard ones: ability sits in between.
	history := append(
		makeHistory(6, models.DifficultyEasy, true),
		makeHistory(6, models.DifficultyHard, false)...,
	)
	est := EstimateAbilityAt(history, testNow)

	assert.Greater(t, est.Theta, ToNumeric(models.DifficultyEasy))
	assert.Less(t, est.Theta, ToNumeric(models.DifficultyHard))
}

func TestStandardErrorShrinksWithMoreData(t *testing.T) {
	// Same accuracy ratio, growing history: the longer history must not
	// be reported with more uncertainty than its prefix.
	long := makeHistory(16, models.DifficultyMedium, true, false)
	short := long[:8]

	seShort := EstimateAbilityAt(short, testNow).StandardError
	seLong := EstimateAbilityAt(long, testNow).StandardError

	assert.LessOrEqual(t, seLong, seShort)
}

func TestEstimateAbilityConfidenceInterval(t *testing.T) {
	est := EstimateAbilityAt(makeHistory(8, models.DifficultyMedium, true, false), testNow)

	require.Greater(t, est.StandardError, 0.0)
	assert.InDelta(t, est.Theta-1.96*est.StandardError, est.ConfidenceLow, 1e-9)
	assert.InDelta(t, est.Theta+1.96*est.StandardError, est.ConfidenceHigh, 1e-9)
}

func TestRecencyWeightingFavorsRecentResponses(t *testing.T) {
	old := testNow.AddDate(0, 0, -120)

	// Recently strong learner: failed long ago, succeeding now.
	improving := makeHistory(5, models.DifficultyMedium, false)
	for i := range improving {
		improving[i].AnsweredAt = old
	}
	improving = append(improving, makeHistory(5, models.DifficultyMedium, true)...)

	// Recently weak learner: the mirror image.
	declining := makeHistory(5, models.DifficultyMedium, true)
	for i := range declining {
		declining[i].AnsweredAt = old
	}
	declining = append(declining, makeHistory(5, models.DifficultyMedium, false)...)

	thetaImproving := EstimateAbilityAt(improving, testNow).Theta
	thetaDeclining := EstimateAbilityAt(declining, testNow).Theta

	assert.Greater(t, thetaImproving, thetaDeclining)
	assert.Greater(t, thetaImproving, 0.0)
	assert.Less(t, thetaDeclining, 0.0)
}

func TestRecencyWeight(t *testing.T) {
	assert.Equal(t, 1.0, recencyWeight(testNow, testNow))
	assert.Equal(t, 1.0, recencyWeight(testNow.Add(time.Hour), testNow), "future timestamps get full weight")

	halfLife := recencyWeight(testNow.AddDate(0, 0, -30), testNow)
	assert.InDelta(t, 0.5, halfLife, 1e-9)

	ancient := recencyWeight(testNow.AddDate(-2, 0, 0), testNow)
	assert.Equal(t, recencyFloor, ancient, "weights floor out instead of vanishing")
}
