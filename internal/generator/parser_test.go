package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validItemJSON() string {
	return `{"items":[{"stem":"What is 2 + 3?","choices":[{"id":"A","text":"5"},{"id":"B","text":"6"},{"id":"C","text":"4"},{"id":"D","text":"23"}],"correct_choice_id":"A","explanation":"2 + 3 = 5."}]}`
}

func TestParseItemsValid(t *testing.T) {
	items, err := ParseItems(validItemJSON())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "What is 2 + 3?", items[0].Stem)
	assert.Equal(t, "A", items[0].CorrectChoiceID)
	assert.Len(t, items[0].Choices, 4)
}

func TestParseItemsStripsCodeFences(t *testing.T) {
	fenced := "```json\n" + validItemJSON() + "\n```"
	items, err := ParseItems(fenced)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestParseItemsInvalidJSON(t *testing.T) {
	_, err := ParseItems("not json at all")
	assert.Error(t, err)
}

func TestParseItemsEmpty(t *testing.T) {
	_, err := ParseItems(`{"items":[]}`)
	require.Error(t, err)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestParseItemsWrongChoiceCount(t *testing.T) {
	payload := `{"items":[{"stem":"x?","choices":[{"id":"A","text":"1"},{"id":"B","text":"2"}],"correct_choice_id":"A","explanation":"e"}]}`
	_, err := ParseItems(payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 4 choices")
}

func TestParseItemsMisorderedChoiceIDs(t *testing.T) {
	payload := `{"items":[{"stem":"x?","choices":[{"id":"B","text":"1"},{"id":"A","text":"2"},{"id":"C","text":"3"},{"id":"D","text":"4"}],"correct_choice_id":"A","explanation":"e"}]}`
	_, err := ParseItems(payload)
	assert.Error(t, err)
}

func TestParseItemsInvalidCorrectChoice(t *testing.T) {
	payload := `{"items":[{"stem":"x?","choices":[{"id":"A","text":"1"},{"id":"B","text":"2"},{"id":"C","text":"3"},{"id":"D","text":"4"}],"correct_choice_id":"E","explanation":"e"}]}`
	_, err := ParseItems(payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid correct_choice_id")
}

func TestParseItemsMissingExplanation(t *testing.T) {
	payload := `{"items":[{"stem":"x?","choices":[{"id":"A","text":"1"},{"id":"B","text":"2"},{"id":"C","text":"3"},{"id":"D","text":"4"}],"correct_choice_id":"A","explanation":""}]}`
	_, err := ParseItems(payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty explanation")
}

func TestMockClientOutputParses(t *testing.T) {
	items, err := ParseItems(buildMockJSON())
	require.NoError(t, err)
	assert.Len(t, items, 4)
}
