package assessment

import (
	"testing"

	"github.com/adaptlearn/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestScaleRoundTrip(t *testing.T) {
	labels := []models.Difficulty{
		models.DifficultyVeryEasy,
		models.DifficultyEasy,
		models.DifficultyMedium,
		models.DifficultyHard,
		models.DifficultyVeryHard,
	}
	for _, label := range labels {
		assert.Equal(t, label, FromNumeric(ToNumeric(label)), "round-trip for %s", label)
	}
}

func TestToNumericUnknownLabel(t *testing.T) {
	assert.Equal(t, 0.0, ToNumeric(models.Difficulty("bogus")))
}

func TestFromNumeric(t *testing.T) {
	tests := []struct {
		value float64
		want  models.Difficulty
	}{
		{-2.0, models.DifficultyVeryEasy},
		{-1.0, models.DifficultyEasy},
		{0.0, models.DifficultyMedium},
		{1.0, models.DifficultyHard},
		{2.0, models.DifficultyVeryHard},
		// Clamping outside the valid range
		{-7.5, models.DifficultyVeryEasy},
		{3.4, models.DifficultyVeryHard},
		// Nearest level
		{-0.8, models.DifficultyEasy},
		{0.3, models.DifficultyMedium},
		{1.2, models.DifficultyHard},
		// Exact midpoints break toward the easier level
		{-1.5, models.DifficultyVeryEasy},
		{-0.5, models.DifficultyEasy},
		{0.5, models.DifficultyMedium},
		{1.5, models.DifficultyHard},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FromNumeric(tt.value), "FromNumeric(%v)", tt.value)
	}
}
