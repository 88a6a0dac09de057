package generator

import (
	"encoding/json"
	"fmt"
	"strings"
)

type generatedPayload struct {
	Items []GeneratedItem `json:"items"`
}

type GeneratedItem struct {
	Stem            string            `json:"stem"`
	Choices         []GeneratedChoice `json:"choices"`
	CorrectChoiceID string            `json:"correct_choice_id"`
	Explanation     string            `json:"explanation"`
}

type GeneratedChoice struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

func ParseItems(responseBody string) ([]GeneratedItem, error) {
	cleaned := stripCodeFences(responseBody)

	var payload generatedPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := validateItems(payload.Items); err != nil {
		return nil, err
	}

	return payload.Items, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

var expectedChoiceIDs = []string{"A", "B", "C", "D"}

var validChoiceIDs = map[string]bool{"A": true, "B": true, "C": true, "D": true}

func validateItems(items []GeneratedItem) error {
	var errs []string

	if len(items) == 0 {
		return &ValidationError{Errors: []string{"no items in response"}}
	}

	for i, item := range items {
		num := i + 1

		if item.Stem == "" {
			errs = append(errs, fmt.Sprintf("item %d: empty stem", num))
		}

		if len(item.Choices) != 4 {
			errs = append(errs, fmt.Sprintf("item %d: expected 4 choices, got %d", num, len(item.Choices)))
			continue
		}

		for j, c := range item.Choices {
			if c.ID != expectedChoiceIDs[j] {
				errs = append(errs, fmt.Sprintf("item %d: choice %d has id %q, expected %q", num, j+1, c.ID, expectedChoiceIDs[j]))
			}
			if c.Text == "" {
				errs = append(errs, fmt.Sprintf("item %d: choice %s has empty text", num, c.ID))
			}
		}

		if !validChoiceIDs[item.CorrectChoiceID] {
			errs = append(errs, fmt.Sprintf("item %d: invalid correct_choice_id %q", num, item.CorrectChoiceID))
		}

		if item.Explanation == "" {
			errs = append(errs, fmt.Sprintf("item %d: empty explanation", num))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}

	return nil
}
