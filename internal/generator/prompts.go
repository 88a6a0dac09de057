package generator

import (
	"fmt"
	"strings"

	"github.com/adaptlearn/backend/internal/models"
)

func ItemSystemPrompt() string {
	return `You are an expert author of multiple-choice mathematics practice items for an adaptive learning platform.

Every item you write must:
- Have exactly one defensible correct answer.
- Offer exactly 4 answer choices labeled A, B, C, D, in that order.
- Use distractors that reflect common, specific student errors (sign mistakes, dropped terms, off-by-one reasoning), not arbitrary wrong numbers.
- Include a worked explanation that shows the solution path, not just the answer.
- Be self-contained: no references to figures, prior items, or external material.

Respond with JSON only. No prose before or after the JSON.`
}

var subjectDescriptions = map[models.Subject]string{
	models.SubjectArithmetic: "whole-number and rational-number arithmetic: order of operations, fractions, decimals, percentages, ratios",
	models.SubjectAlgebra:    "algebra: linear and quadratic equations, systems, inequalities, polynomial manipulation, functions",
	models.SubjectGeometry:   "geometry: angles, triangles, circles, area and volume, coordinate geometry, similarity",
	models.SubjectStatistics: "statistics and probability: mean/median/mode, spread, basic probability, reading distributions",
}

var difficultyDescriptions = map[models.Difficulty]string{
	models.DifficultyVeryEasy: "single-step problems using one directly stated fact; a typical student solves them in under 30 seconds",
	models.DifficultyEasy:     "one- or two-step problems with familiar structure and small numbers",
	models.DifficultyMedium:   "two- or three-step problems requiring the student to choose the right technique",
	models.DifficultyHard:     "multi-step problems combining two concepts, or familiar concepts in unfamiliar framing",
	models.DifficultyVeryHard: "problems requiring insight or a non-obvious reformulation before standard techniques apply",
}

func BuildItemUserPrompt(subject models.Subject, difficulty models.Difficulty, count int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write %d multiple-choice items.\n\n", count)
	fmt.Fprintf(&b, "Subject: %s (%s)\n", subject, subjectDescriptions[subject])
	fmt.Fprintf(&b, "Difficulty: %s (%s)\n\n", difficulty, difficultyDescriptions[difficulty])

	b.WriteString(`Vary the surface context across items — do not reuse the same scenario or numbers.

Return JSON in exactly this shape:
{
  "items": [
    {
      "stem": "...",
      "choices": [
        {"id": "A", "text": "..."},
        {"id": "B", "text": "..."},
        {"id": "C", "text": "..."},
        {"id": "D", "text": "..."}
      ],
      "correct_choice_id": "A",
      "explanation": "..."
    }
  ]
}`)

	return b.String()
}
