package items

import (
	"testing"

	"github.com/adaptlearn/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateRequest() models.CreateItemRequest {
	return models.CreateItemRequest{
		Subject:    models.SubjectAlgebra,
		Difficulty: models.DifficultyMedium,
		Stem:       "Solve 2x + 4 = 10.",
		Choices: []models.ItemChoice{
			{ChoiceID: "A", ChoiceText: "x = 3"},
			{ChoiceID: "B", ChoiceText: "x = 7"},
			{ChoiceID: "C", ChoiceText: "x = -3"},
			{ChoiceID: "D", ChoiceText: "x = 5"},
		},
		CorrectChoiceID: "A",
		Explanation:     "Subtract 4 from both sides, then divide by 2.",
	}
}

func TestValidateCreateItemValid(t *testing.T) {
	assert.NoError(t, validateCreateItem(validCreateRequest()))
}

func TestValidateCreateItemInvalidSubject(t *testing.T) {
	req := validCreateRequest()
	req.Subject = "astrology"
	err := validateCreateItem(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid subject")
}

func TestValidateCreateItemInvalidDifficulty(t *testing.T) {
	req := validCreateRequest()
	req.Difficulty = "impossible"
	assert.Error(t, validateCreateItem(req))
}

func TestValidateCreateItemEmptyStem(t *testing.T) {
	req := validCreateRequest()
	req.Stem = ""
	assert.Error(t, validateCreateItem(req))
}

func TestValidateCreateItemWrongChoiceCount(t *testing.T) {
	req := validCreateRequest()
	req.Choices = req.Choices[:3]
	err := validateCreateItem(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 4 choices")
}

func TestValidateCreateItemMisorderedChoices(t *testing.T) {
	req := validCreateRequest()
	req.Choices[0], req.Choices[1] = req.Choices[1], req.Choices[0]
	assert.Error(t, validateCreateItem(req))
}

func TestValidateCreateItemCorrectChoiceMissing(t *testing.T) {
	req := validCreateRequest()
	req.CorrectChoiceID = "E"
	err := validateCreateItem(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match any choice")
}

func TestValidateCreateItemBadParameters(t *testing.T) {
	req := validCreateRequest()
	zero := 0.0
	req.Discrimination = &zero
	assert.Error(t, validateCreateItem(req))

	req = validCreateRequest()
	one := 1.0
	req.Guessing = &one
	assert.Error(t, validateCreateItem(req))

	req = validCreateRequest()
	quarter := 0.25
	req.Guessing = &quarter
	assert.NoError(t, validateCreateItem(req))
}
