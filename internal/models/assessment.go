package models

import "time"

// ── Ability Estimation ─────────────────────────────────

// AbilityEstimate is a learner's estimated proficiency on the latent
// theta scale. Estimates are produced fresh on every call and replaced
// wholesale — never partially mutated.
type AbilityEstimate struct {
	LearnerID      int64     `json:"learner_id"`
	Theta          float64   `json:"theta"` // in [-3, 3]
	StandardError  float64   `json:"standard_error"`
	ConfidenceLow  float64   `json:"confidence_low"`
	ConfidenceHigh float64   `json:"confidence_high"`
	SampleSize     int       `json:"sample_size"`
	ComputedAt     time.Time `json:"computed_at"`
}

// ── Performance Prediction ─────────────────────────────

type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

type DifficultyDelta string

const (
	DeltaDecrease       DifficultyDelta = "decrease"
	DeltaSlightDecrease DifficultyDelta = "slight_decrease"
	DeltaMaintain       DifficultyDelta = "maintain"
	DeltaSlightIncrease DifficultyDelta = "slight_increase"
	DeltaIncrease       DifficultyDelta = "increase"
)

type PredictionResult struct {
	PredictedScore     float64         `json:"predicted_score"` // 0..100
	ProbabilityCorrect float64         `json:"probability_correct"`
	ConfidenceLevel    ConfidenceLevel `json:"confidence_level"`
	RecommendedDelta   DifficultyDelta `json:"recommended_difficulty_delta"`
}

// ── Difficulty Adaptation ──────────────────────────────

type DifficultyTransition struct {
	Current        Difficulty `json:"current"`
	New            Difficulty `json:"new"`
	PerformanceGap float64    `json:"performance_gap"`
	Justification  string     `json:"justification"`
}

// ── Blockage Detection ─────────────────────────────────

type BlockageType string

const (
	BlockagePlateau      BlockageType = "plateau"
	BlockageRegression   BlockageType = "regression"
	BlockageTimeIncrease BlockageType = "time_increase"
)

type BlockageSeverity string

const (
	SeverityLow    BlockageSeverity = "low"
	SeverityMedium BlockageSeverity = "medium"
	SeverityHigh   BlockageSeverity = "high"
)

type BlockagePattern struct {
	Type        BlockageType     `json:"type"`
	Severity    BlockageSeverity `json:"severity"`
	Confidence  float64          `json:"confidence"` // 0..1
	Description string           `json:"description"`
}

// BlockageReport is the full result of one analysis pass. Patterns are
// recomputed from scratch every time, never merged with earlier reports.
type BlockageReport struct {
	Patterns    []BlockagePattern       `json:"patterns"`
	Confidence  float64                 `json:"confidence"` // 0..1
	Suggestions map[BlockageType]string `json:"suggestions"`
}

// ── API Request/Response Types ────────────────────────────

type AbilityResponse struct {
	Overall   *AbilityEstimate            `json:"overall"`
	BySubject map[Subject]AbilityEstimate `json:"by_subject"`
}

type NextItemResponse struct {
	Item       ServingItem      `json:"item"`
	Prediction PredictionResult `json:"prediction"`
}
