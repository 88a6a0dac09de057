package assessment

import (
	"testing"
	"time"

	"github.com/adaptlearn/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// timedHistory builds a chronological history from parallel correctness
// and response-time slices.
func timedHistory(correct []bool, seconds []float64) []models.ResponseRecord {
	history := make([]models.ResponseRecord, len(correct))
	for i := range correct {
		history[i] = models.ResponseRecord{
			LearnerID:           1,
			ItemID:              int64(i + 1),
			Subject:             models.SubjectAlgebra,
			Difficulty:          models.DifficultyMedium,
			Correct:             correct[i],
			ResponseTimeSeconds: seconds[i],
			AnsweredAt:          testNow.Add(time.Duration(i) * time.Minute),
		}
	}
	return history
}

func flatTimes(n int, s float64) []float64 {
	times := make([]float64, n)
	for i := range times {
		times[i] = s
	}
	return times
}

func patternTypes(report models.BlockageReport) map[models.BlockageType]bool {
	types := map[models.BlockageType]bool{}
	for _, p := range report.Patterns {
		types[p.Type] = true
	}
	return types
}

func TestDetectBlockagesPlateauOnAlternatingAnswers(t *testing.T) {
	// Eight responses alternating wrong/right: 50% accuracy, stuck at
	// the edge of competence.
	correct := []bool{false, true, false, true, false, true, false, true}
	report := DetectBlockages(timedHistory(correct, flatTimes(8, 12)))

	types := patternTypes(report)
	assert.True(t, types[models.BlockagePlateau], "expected a plateau pattern")
	assert.False(t, types[models.BlockageTimeIncrease])
	assert.Contains(t, report.Suggestions, models.BlockagePlateau)
	assert.Contains(t, report.Suggestions[models.BlockagePlateau], "review")
}

func TestDetectBlockagesRegressionAndSlowdown(t *testing.T) {
	// First three correct and fast, last three wrong and slow: both the
	// regression and the time-increase checks fire.
	correct := []bool{true, true, true, false, false, false}
	seconds := []float64{10, 10, 10, 40, 40, 40}
	report := DetectBlockages(timedHistory(correct, seconds))

	types := patternTypes(report)
	assert.True(t, types[models.BlockageRegression], "expected a regression pattern")
	assert.True(t, types[models.BlockageTimeIncrease], "expected a time_increase pattern")

	// 0.3·(6/10) + 0.7·(0.4 + 0.2)
	assert.InDelta(t, 0.6, report.Confidence, 1e-9)

	assert.Contains(t, report.Suggestions, models.BlockageRegression)
	assert.Contains(t, report.Suggestions, models.BlockageTimeIncrease)
}

func TestDetectBlockagesRegressionSeverity(t *testing.T) {
	// A total collapse (100% → 0%) is high severity.
	correct := []bool{true, true, true, false, false, false}
	report := DetectBlockages(timedHistory(correct, flatTimes(6, 12)))

	require.Len(t, report.Patterns, 1)
	assert.Equal(t, models.BlockageRegression, report.Patterns[0].Type)
	assert.Equal(t, models.SeverityHigh, report.Patterns[0].Severity)
}

func TestDetectBlockagesNoPatternsOnHealthyHistory(t *testing.T) {
	// Mostly correct, steady pace: nothing to report.
	correct := []bool{true, true, false, true, true, true, true, true}
	report := DetectBlockages(timedHistory(correct, flatTimes(8, 12)))

	assert.Empty(t, report.Patterns)
	assert.Empty(t, report.Suggestions)
	// Confidence reflects data quantity only: 0.3·(8/10).
	assert.InDelta(t, 0.24, report.Confidence, 1e-9)
}

func TestDetectBlockagesInsufficientData(t *testing.T) {
	// Below every threshold: the unevaluable checks are omitted rather
	// than failing the call.
	correct := []bool{false, true, false}
	report := DetectBlockages(timedHistory(correct, flatTimes(3, 12)))

	assert.Empty(t, report.Patterns)

	// Six responses evaluate the trend checks but not the plateau check.
	correct = []bool{false, true, false, true, false, true}
	report = DetectBlockages(timedHistory(correct, flatTimes(6, 12)))
	assert.False(t, patternTypes(report)[models.BlockagePlateau])
}

func TestDetectBlockagesConfidenceBounds(t *testing.T) {
	histories := [][]models.ResponseRecord{
		timedHistory([]bool{true}, flatTimes(1, 10)),
		timedHistory([]bool{false, true, false, true, false, true, false, true}, flatTimes(8, 12)),
		timedHistory([]bool{true, true, true, false, false, false}, []float64{5, 5, 5, 50, 50, 50}),
	}

	for _, h := range histories {
		report := DetectBlockages(h)
		assert.GreaterOrEqual(t, report.Confidence, 0.0)
		assert.LessOrEqual(t, report.Confidence, 1.0)
		for _, p := range report.Patterns {
			assert.GreaterOrEqual(t, p.Confidence, 0.0)
			assert.LessOrEqual(t, p.Confidence, 1.0)
		}
	}
}

func TestDetectBlockagesEmptyHistory(t *testing.T) {
	report := DetectBlockages(nil)

	assert.Empty(t, report.Patterns)
	assert.Equal(t, 0.0, report.Confidence)
}
