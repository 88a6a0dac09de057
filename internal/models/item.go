package models

import "time"

type Difficulty string

const (
	DifficultyVeryEasy Difficulty = "very_easy"
	DifficultyEasy     Difficulty = "easy"
	DifficultyMedium   Difficulty = "medium"
	DifficultyHard     Difficulty = "hard"
	DifficultyVeryHard Difficulty = "very_hard"
)

var ValidDifficulties = map[Difficulty]bool{
	DifficultyVeryEasy: true,
	DifficultyEasy:     true,
	DifficultyMedium:   true,
	DifficultyHard:     true,
	DifficultyVeryHard: true,
}

type Subject string

const (
	SubjectArithmetic Subject = "arithmetic"
	SubjectAlgebra    Subject = "algebra"
	SubjectGeometry   Subject = "geometry"
	SubjectStatistics Subject = "statistics"
)

var ValidSubjects = map[Subject]bool{
	SubjectArithmetic: true,
	SubjectAlgebra:    true,
	SubjectGeometry:   true,
	SubjectStatistics: true,
}

// ── Core Structs ───────────────────────────────────────

type Item struct {
	ID              int64        `json:"id"`
	Subject         Subject      `json:"subject"`
	Difficulty      Difficulty   `json:"difficulty"`
	Stem            string       `json:"stem"`
	Choices         []ItemChoice `json:"choices"`
	CorrectChoiceID string       `json:"correct_choice_id"`
	Explanation     string       `json:"explanation"`
	Discrimination  float64      `json:"discrimination"`
	Guessing        float64      `json:"guessing"`
	Source          string       `json:"source"`
	CreatedAt       time.Time    `json:"created_at"`
}

type ItemChoice struct {
	ChoiceID   string `json:"choice_id"`
	ChoiceText string `json:"choice_text"`
}

// ItemParameters is the read-only view of an item the assessment core
// consumes: identity, subject, and IRT parameters only.
type ItemParameters struct {
	ItemID         int64      `json:"item_id"`
	Subject        Subject    `json:"subject"`
	Difficulty     Difficulty `json:"difficulty"`
	Discrimination float64    `json:"discrimination"` // default 1.0
	Guessing       float64    `json:"guessing"`       // default 0.25 for 4-choice items
}

// Parameters strips an item down to what the selector and predictor need.
func (i Item) Parameters() ItemParameters {
	return ItemParameters{
		ItemID:         i.ID,
		Subject:        i.Subject,
		Difficulty:     i.Difficulty,
		Discrimination: i.Discrimination,
		Guessing:       i.Guessing,
	}
}

// ServingItem is an item with answer data stripped, safe to send to a
// learner mid-session.
type ServingItem struct {
	ID         int64        `json:"id"`
	Subject    Subject      `json:"subject"`
	Difficulty Difficulty   `json:"difficulty"`
	Stem       string       `json:"stem"`
	Choices    []ItemChoice `json:"choices"`
}

// ToServing drops the correct answer and explanation.
func (i Item) ToServing() ServingItem {
	return ServingItem{
		ID:         i.ID,
		Subject:    i.Subject,
		Difficulty: i.Difficulty,
		Stem:       i.Stem,
		Choices:    i.Choices,
	}
}

// ── API Request/Response Types ────────────────────────────

type CreateItemRequest struct {
	Subject         Subject      `json:"subject"`
	Difficulty      Difficulty   `json:"difficulty"`
	Stem            string       `json:"stem"`
	Choices         []ItemChoice `json:"choices"`
	CorrectChoiceID string       `json:"correct_choice_id"`
	Explanation     string       `json:"explanation"`
	Discrimination  *float64     `json:"discrimination,omitempty"`
	Guessing        *float64     `json:"guessing,omitempty"`
}

type ItemListResponse struct {
	Items    []Item `json:"items"`
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}
