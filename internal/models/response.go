package models

import "time"

// ResponseRecord is one answered item in a learner's history. Records are
// append-only: the response store writes them once and the assessment core
// only ever reads ordered sequences of them.
type ResponseRecord struct {
	ID                  int64      `json:"id"`
	LearnerID           int64      `json:"learner_id"`
	ItemID              int64      `json:"item_id"`
	Subject             Subject    `json:"subject"`
	Difficulty          Difficulty `json:"difficulty"`
	Correct             bool       `json:"correct"`
	ResponseTimeSeconds float64    `json:"response_time_seconds"`
	AnsweredAt          time.Time  `json:"answered_at"`
}

// ── API Request/Response Types ────────────────────────────

type SubmitAnswerRequest struct {
	SelectedChoiceID    string  `json:"selected_choice_id"`
	ResponseTimeSeconds float64 `json:"response_time_seconds"`
}

type SubmitAnswerResponse struct {
	Correct         bool                  `json:"correct"`
	CorrectChoiceID string                `json:"correct_choice_id"`
	Explanation     string                `json:"explanation"`
	Ability         *AbilityEstimate      `json:"ability,omitempty"`
	Difficulty      *DifficultyTransition `json:"difficulty,omitempty"`
	NextItem        *ServingItem          `json:"next_item,omitempty"`
	NextPrediction  *PredictionResult     `json:"next_prediction,omitempty"`
	Blockage        *BlockageReport       `json:"blockage,omitempty"`
}

type HistoryListResponse struct {
	Responses []ResponseRecord `json:"responses"`
	Total     int              `json:"total"`
	Page      int              `json:"page"`
	PageSize  int              `json:"page_size"`
}
