package assessment

import (
	"testing"

	"github.com/adaptlearn/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectNextItemPicksClosestDifficulty(t *testing.T) {
	candidates := []models.ItemParameters{
		{ItemID: 1, Difficulty: models.DifficultyEasy},
		{ItemID: 2, Difficulty: models.DifficultyHard},
	}

	// theta=1.8: hard (1.0) is 0.8 away, easy (-1.0) is 2.8 away.
	item, err := SelectNextItem(1.8, candidates, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), item.ItemID)
}

func TestSelectNextItemTieBreaksOnLowestID(t *testing.T) {
	candidates := []models.ItemParameters{
		{ItemID: 9, Difficulty: models.DifficultyHard},
		{ItemID: 4, Difficulty: models.DifficultyEasy},
		{ItemID: 7, Difficulty: models.DifficultyHard},
	}

	// theta=0: easy and hard are both 1.0 away; the lowest item ID wins.
	item, err := SelectNextItem(0.0, candidates, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), item.ItemID)
}

func TestSelectNextItemSkipsAnswered(t *testing.T) {
	candidates := []models.ItemParameters{
		{ItemID: 1, Difficulty: models.DifficultyMedium},
		{ItemID: 2, Difficulty: models.DifficultyHard},
	}
	answered := map[int64]bool{1: true}

	item, err := SelectNextItem(0.0, candidates, answered)
	require.NoError(t, err)
	assert.Equal(t, int64(2), item.ItemID)
}

func TestSelectNextItemEmptyPool(t *testing.T) {
	_, err := SelectNextItem(0.0, nil, nil)
	assert.ErrorIs(t, err, ErrNoItemAvailable)

	// A pool where everything is already answered is just as empty.
	candidates := []models.ItemParameters{{ItemID: 1, Difficulty: models.DifficultyMedium}}
	_, err = SelectNextItem(0.0, candidates, map[int64]bool{1: true})
	assert.ErrorIs(t, err, ErrNoItemAvailable)
}

func TestSelectNextItemDoesNotAliasCandidates(t *testing.T) {
	candidates := []models.ItemParameters{{ItemID: 1, Difficulty: models.DifficultyMedium}}

	item, err := SelectNextItem(0.0, candidates, nil)
	require.NoError(t, err)

	item.Difficulty = models.DifficultyVeryHard
	assert.Equal(t, models.DifficultyMedium, candidates[0].Difficulty)
}
