package assessment

import (
	"errors"

	"github.com/adaptlearn/backend/internal/models"
)

// ErrNoItemAvailable is returned when the candidate pool is empty after
// excluding already-answered items. Unlike estimation failures this must
// surface to the caller — the flow cannot continue without an item.
var ErrNoItemAvailable = errors.New("no item available")

// SelectNextItem picks the unanswered candidate whose difficulty is
// closest to theta. Under the Rasch model item information peaks where
// difficulty matches ability, so this is the maximum-information choice.
// Ties break toward the lowest item ID so selection is reproducible.
func SelectNextItem(theta float64, candidates []models.ItemParameters, answered map[int64]bool) (*models.ItemParameters, error) {
	var best *models.ItemParameters
	bestDist := 0.0

	for i := range candidates {
		c := &candidates[i]
		if answered[c.ItemID] {
			continue
		}
		dist := abs(ToNumeric(c.Difficulty) - theta)
		if best == nil || dist < bestDist || (dist == bestDist && c.ItemID < best.ItemID) {
			best = c
			bestDist = dist
		}
	}

	if best == nil {
		return nil, ErrNoItemAvailable
	}
	chosen := *best
	return &chosen, nil
}
