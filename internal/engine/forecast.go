package engine

import (
	"math"

	"github.com/aturoa13699-lab/TURF-ENGINE/internal/models"
)

// Sigmoid is a numerically stable logistic function
func Sigmoid(x float64) float64 {
	if x >= 0 {
		return 1.0 / (1.0 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1.0 + e)
}

// Logit is the inverse logistic function, clamped away from 0 and 1
func Logit(p float64) float64 {
	const eps = 1e-10
	p = Clamp(p, eps, 1-eps)
	return math.Log(p / (1 - p))
}

// Softmax applies a temperature softmax over values; the result sums to 1 by
// construction. The max is subtracted before exponentiation for stability.
func Softmax(values []float64, tau float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	maxVal := values[0]
	for _, v := range values[1:] {
		if v > maxVal {
			maxVal = v
		}
	}
	exps := make([]float64, len(values))
	total := 0.0
	for i, v := range values {
		exps[i] = math.Exp((v - maxVal) / tau)
		total += exps[i]
	}
	out := make([]float64, len(values))
	for i, e := range exps {
		out[i] = e / total
	}
	return out
}

// PlaceProbabilities derives place probabilities from win probabilities via
// the pairwise heuristic place[i] = win[i] + sum_{k!=i} win[k]*win[i]/(1-win[k]),
// clamped to [0,1]. This is an approximation, not an exact order-statistics
// model; downstream consumers depend on its numeric output as-is.
func PlaceProbabilities(win []float64) []float64 {
	place := make([]float64, len(win))
	for i := range win {
		acc := 0.0
		for k := range win {
			if k == i {
				continue
			}
			denom := 1.0 - win[k]
			if denom > 0 {
				acc += win[k] * (win[i] / denom)
			}
		}
		place[i] = Clamp(win[i]+acc, 0, 1)
	}
	return place
}

// CertaintyFor maps a degrade mode and warning set to a certainty tier
func CertaintyFor(mode models.DegradeMode, warnings []models.Warning) float64 {
	switch {
	case mode == models.DegradeModeNormal && len(warnings) == 0:
		return models.CertaintyFull
	case models.HasWarning(warnings, models.WarningSomePricesInvalid, models.WarningJoinMiss):
		return models.CertaintyReduced
	case models.HasWarning(warnings, models.WarningAllPricesInvalid, models.WarningFewValidSpeedsNeutralized):
		return models.CertaintyLow
	default:
		return models.CertaintyReduced
	}
}

// ExpectedValue computes the expected profit per one unit staked at the given
// decimal price, or nil when the price is invalid.
func ExpectedValue(winProb float64, price *float64) *float64 {
	if !models.ValidPrice(price) {
		return nil
	}
	ev := winProb*(*price-1.0) - (1.0 - winProb)
	return &ev
}
