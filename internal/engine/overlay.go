package engine

import (
	"sort"

	"github.com/aturoa13699-lab/TURF-ENGINE/internal/models"
)

// Featureless overlay parameters
const (
	BaseTau = 0.12

	alphaNormal     = 0.25
	alphaPartial    = 0.40
	alphaMarketOnly = 0.70
)

// OverlayWriterLite identifies the featureless softmax-blend overlay writer
const OverlayWriterLite = "LITE_WRAPPER_SOFTMAX_BLEND"

// MarketProbBasis documents how market probabilities are derived
const MarketProbBasis = "valid_prices_only|uniform_if_empty"

// overlayTau widens the softmax temperature as input quality degrades
func overlayTau(mode models.DegradeMode, warnings []models.Warning) float64 {
	tau := BaseTau
	switch mode {
	case models.DegradeModeMarketOnly:
		tau = 0.18
	case models.DegradeModePartialSidecar:
		tau = 0.14
	}
	if models.HasWarning(warnings, models.WarningFewValidSpeedsNeutralized) && tau < 0.14 {
		tau = 0.14
	}
	if models.HasWarning(warnings, models.WarningAllPricesInvalid) && tau < 0.16 {
		tau = 0.16
	}
	return tau
}

// overlayAlpha controls how much the blend defers to the market
func overlayAlpha(mode models.DegradeMode) float64 {
	switch mode {
	case models.DegradeModeMarketOnly:
		return alphaMarketOnly
	case models.DegradeModePartialSidecar:
		return alphaPartial
	default:
		return alphaNormal
	}
}

// FeaturelessOverlay produces forecasts from Lite scores alone: a temperature
// softmax over lite scores blended with market probabilities. It is the cheap
// fallback used when the full PRO vector is unavailable, with the same output
// contract as the PRO overlay.
func FeaturelessOverlay(
	liteScores map[int]float64,
	marketProb map[int]float64,
	prices map[int]*float64,
	mode models.DegradeMode,
	warnings []models.Warning,
) map[int]*models.Forecast {
	numbers := make([]int, 0, len(liteScores))
	for number := range liteScores {
		numbers = append(numbers, number)
	}
	sort.Ints(numbers)

	scores := make([]float64, len(numbers))
	for i, number := range numbers {
		scores[i] = liteScores[number]
	}

	tau := overlayTau(mode, warnings)
	alpha := overlayAlpha(mode)
	raw := Softmax(scores, tau)

	win := make([]float64, len(numbers))
	for i, number := range numbers {
		win[i] = (1-alpha)*raw[i] + alpha*marketProb[number]
	}
	place := PlaceProbabilities(win)
	certainty := CertaintyFor(mode, warnings)

	forecasts := make(map[int]*models.Forecast, len(numbers))
	for i, number := range numbers {
		forecasts[number] = &models.Forecast{
			WinProb:    win[i],
			PlaceProb:  place[i],
			MarketProb: marketProb[number],
			ValueEdge:  win[i] - marketProb[number],
			EV1U:       ExpectedValue(win[i], prices[number]),
			Certainty:  certainty,
		}
	}
	return forecasts
}
