package assessment

import (
	"math"
	"time"

	"github.com/adaptlearn/backend/internal/models"
)

const (
	// ThetaMin and ThetaMax bound the latent ability scale.
	ThetaMin = -3.0
	ThetaMax = 3.0

	// maxStandardError caps reported uncertainty so callers never see a
	// near-infinite value from a barely-informative history.
	maxStandardError = 2.0

	// recencyHalfLifeDays controls how fast old responses stop counting:
	// a response loses half its weight every 30 days.
	recencyHalfLifeDays = 30.0

	// recencyFloor keeps even very old responses minimally informative.
	recencyFloor = 0.1

	// maxIterations bounds the golden-section search. The weighted Rasch
	// log-likelihood is concave in theta, so the search converges long
	// before this, but estimation must never be able to spin.
	maxIterations = 200

	thetaTolerance = 1e-5
)

// EstimateAbility fits a Rasch ability estimate to a learner's response
// history. It never returns an error: an empty history or a failed
// optimization degrades to theta=0 with maximal uncertainty, because an
// estimator embedded in a live test flow must not abort the flow.
func EstimateAbility(history []models.ResponseRecord) models.AbilityEstimate {
	return EstimateAbilityAt(history, time.Now())
}

// EstimateAbilityAt is EstimateAbility with an explicit "now" for the
// recency weighting, so results are reproducible in tests.
func EstimateAbilityAt(history []models.ResponseRecord, now time.Time) models.AbilityEstimate {
	est := models.AbilityEstimate{
		Theta:         0.0,
		StandardError: 1.0,
		SampleSize:    len(history),
		ComputedAt:    now,
	}
	if len(history) == 0 {
		est.ConfidenceLow = est.Theta - 1.96*est.StandardError
		est.ConfidenceHigh = est.Theta + 1.96*est.StandardError
		return est
	}
	est.LearnerID = history[0].LearnerID

	difficulties := make([]float64, len(history))
	weights := make([]float64, len(history))
	for i, r := range history {
		difficulties[i] = ToNumeric(r.Difficulty)
		weights[i] = recencyWeight(r.AnsweredAt, now)
	}

	theta, ok := maximizeLogLikelihood(history, difficulties, weights)
	if !ok {
		// Numerical non-convergence degrades to the default estimate.
		theta = 0.0
	}
	est.Theta = theta

	est.StandardError = standardError(theta, difficulties, weights)
	est.ConfidenceLow = est.Theta - 1.96*est.StandardError
	est.ConfidenceHigh = est.Theta + 1.96*est.StandardError
	return est
}

// recencyWeight decays exponentially with the age of a response in days,
// floored so stale history still counts a little.
func recencyWeight(answeredAt, now time.Time) float64 {
	days := now.Sub(answeredAt).Hours() / 24.0
	if days <= 0 {
		return 1.0
	}
	w := math.Exp(-math.Ln2 * days / recencyHalfLifeDays)
	if w < recencyFloor {
		return recencyFloor
	}
	return w
}

// sigmoid is the Rasch response function: the probability of a correct
// answer from a learner at theta on an item of difficulty b.
func sigmoid(theta, b float64) float64 {
	return 1.0 / (1.0 + math.Exp(-(theta - b)))
}

// logLikelihood evaluates the recency-weighted Bernoulli log-likelihood
// of the observed correctness sequence at a candidate theta.
func logLikelihood(theta float64, history []models.ResponseRecord, difficulties, weights []float64) float64 {
	const eps = 1e-10
	ll := 0.0
	for i, r := range history {
		p := sigmoid(theta, difficulties[i])
		if p < eps {
			p = eps
		}
		if p > 1-eps {
			p = 1 - eps
		}
		if r.Correct {
			ll += weights[i] * math.Log(p)
		} else {
			ll += weights[i] * math.Log(1-p)
		}
	}
	return ll
}

// maximizeLogLikelihood runs a bounded golden-section search for the
// theta maximizing the weighted log-likelihood over [ThetaMin, ThetaMax].
// Returns false if the search produced a non-finite result.
func maximizeLogLikelihood(history []models.ResponseRecord, difficulties, weights []float64) (float64, bool) {
	const golden = 0.6180339887498949 // (sqrt(5)-1)/2

	lo, hi := ThetaMin, ThetaMax
	x1 := hi - golden*(hi-lo)
	x2 := lo + golden*(hi-lo)
	f1 := logLikelihood(x1, history, difficulties, weights)
	f2 := logLikelihood(x2, history, difficulties, weights)

	for i := 0; i < maxIterations && hi-lo > thetaTolerance; i++ {
		if f1 < f2 {
			lo = x1
			x1, f1 = x2, f2
			x2 = lo + golden*(hi-lo)
			f2 = logLikelihood(x2, history, difficulties, weights)
		} else {
			hi = x2
			x2, f2 = x1, f1
			x1 = hi - golden*(hi-lo)
			f1 = logLikelihood(x1, history, difficulties, weights)
		}
	}

	theta := (lo + hi) / 2.0
	if math.IsNaN(theta) || math.IsInf(theta, 0) {
		return 0, false
	}
	return theta, true
}

// standardError computes 1/sqrt(I) from the total Fisher information at
// the estimated theta, capped to keep the value informative.
func standardError(theta float64, difficulties, weights []float64) float64 {
	info := 0.0
	for i, b := range difficulties {
		p := sigmoid(theta, b)
		info += weights[i] * p * (1 - p)
	}
	if info <= 0 {
		return 1.0
	}
	se := 1.0 / math.Sqrt(info)
	if se > maxStandardError {
		return maxStandardError
	}
	return se
}
