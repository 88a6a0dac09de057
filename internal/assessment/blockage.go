package assessment

import (
	"fmt"

	"github.com/adaptlearn/backend/internal/models"
)

const (
	// plateauWindow is how many trailing responses the plateau check
	// inspects; below this the check is not evaluated at all.
	plateauWindow = 8

	// trendWindow is the minimum history for the regression and
	// time-increase checks (earliest 3 vs. most recent 3).
	trendWindow = 6

	regressionDrop    = 0.3
	timeIncreaseRatio = 1.5
)

// DetectBlockages scans a learner's chronological response history for
// stagnation patterns. Sub-checks below their minimum sample threshold
// are simply omitted from the result — an unevaluable check never fails
// the whole analysis. A learner may trigger several patterns at once.
func DetectBlockages(history []models.ResponseRecord) models.BlockageReport {
	report := models.BlockageReport{
		Patterns:    []models.BlockagePattern{},
		Suggestions: map[models.BlockageType]string{},
	}

	if p := detectPlateau(history); p != nil {
		report.Patterns = append(report.Patterns, *p)
		report.Suggestions[models.BlockagePlateau] = "targeted review of the current difficulty level before advancing"
	}
	if p := detectRegression(history); p != nil {
		report.Patterns = append(report.Patterns, *p)
		report.Suggestions[models.BlockageRegression] = "immediate intervention: revisit recently missed material"
	}
	if p := detectTimeIncrease(history); p != nil {
		report.Patterns = append(report.Patterns, *p)
		report.Suggestions[models.BlockageTimeIncrease] = "methodological support: shorter sessions or worked examples"
	}

	report.Confidence = overallConfidence(len(history), report.Patterns)
	return report
}

// detectPlateau fires when accuracy over the last 8 responses sits in
// [0.4, 0.6] — neither mastery nor failure, the learner is stuck at the
// edge of competence.
func detectPlateau(history []models.ResponseRecord) *models.BlockagePattern {
	if len(history) < plateauWindow {
		return nil
	}
	window := history[len(history)-plateauWindow:]
	acc := accuracy(window)
	if acc < 0.4 || acc > 0.6 {
		return nil
	}
	return &models.BlockagePattern{
		Type:        models.BlockagePlateau,
		Severity:    models.SeverityMedium,
		Confidence:  patternConfidence(len(history)),
		Description: fmt.Sprintf("accuracy stuck at %.0f%% over the last %d responses", acc*100, plateauWindow),
	}
}

// detectRegression fires when accuracy over the most recent 3 responses
// drops more than 0.3 below the earliest 3 in the window.
func detectRegression(history []models.ResponseRecord) *models.BlockagePattern {
	if len(history) < trendWindow {
		return nil
	}
	early := accuracy(history[:3])
	recent := accuracy(history[len(history)-3:])
	drop := early - recent
	if drop <= regressionDrop {
		return nil
	}

	severity := models.SeverityMedium
	if drop > 0.6 {
		severity = models.SeverityHigh
	}
	return &models.BlockagePattern{
		Type:        models.BlockageRegression,
		Severity:    severity,
		Confidence:  patternConfidence(len(history)),
		Description: fmt.Sprintf("accuracy fell from %.0f%% to %.0f%%", early*100, recent*100),
	}
}

// detectTimeIncrease fires when the mean response time of the most
// recent 3 responses exceeds 1.5x the earliest 3 — growing hesitation
// or fatigue.
func detectTimeIncrease(history []models.ResponseRecord) *models.BlockagePattern {
	if len(history) < trendWindow {
		return nil
	}
	early := meanTime(history[:3])
	recent := meanTime(history[len(history)-3:])
	if early <= 0 || recent <= timeIncreaseRatio*early {
		return nil
	}

	ratio := recent / early
	severity := models.SeverityLow
	switch {
	case ratio > 2.5:
		severity = models.SeverityHigh
	case ratio > 2.0:
		severity = models.SeverityMedium
	}
	return &models.BlockagePattern{
		Type:        models.BlockageTimeIncrease,
		Severity:    severity,
		Confidence:  patternConfidence(len(history)),
		Description: fmt.Sprintf("mean response time rose from %.1fs to %.1fs", early, recent),
	}
}

// overallConfidence blends how much data backed the analysis (saturating
// at 10 responses) with a weighted count of triggered patterns.
func overallConfidence(sampleSize int, patterns []models.BlockagePattern) float64 {
	dataQuantity := float64(sampleSize) / 10.0
	if dataQuantity > 1.0 {
		dataQuantity = 1.0
	}

	patternWeight := 0.0
	for _, p := range patterns {
		switch p.Type {
		case models.BlockagePlateau, models.BlockageRegression:
			patternWeight += 0.4
		case models.BlockageTimeIncrease:
			patternWeight += 0.2
		}
	}

	return clamp(0.3*dataQuantity+0.7*patternWeight, 0.0, 1.0)
}

// patternConfidence rates a single detection by sample size alone,
// saturating at 10 responses.
func patternConfidence(sampleSize int) float64 {
	c := 0.5 + float64(sampleSize)/20.0
	return clamp(c, 0.0, 1.0)
}

func accuracy(window []models.ResponseRecord) float64 {
	if len(window) == 0 {
		return 0
	}
	correct := 0
	for _, r := range window {
		if r.Correct {
			correct++
		}
	}
	return float64(correct) / float64(len(window))
}

func meanTime(window []models.ResponseRecord) float64 {
	if len(window) == 0 {
		return 0
	}
	total := 0.0
	for _, r := range window {
		total += r.ResponseTimeSeconds
	}
	return total / float64(len(window))
}
