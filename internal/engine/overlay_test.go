package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aturoa13699-lab/TURF-ENGINE/internal/models"
)

func TestOverlayTau(t *testing.T) {
	assert.InDelta(t, 0.12, overlayTau(models.DegradeModeNormal, nil), 1e-12)
	assert.InDelta(t, 0.14, overlayTau(models.DegradeModePartialSidecar, nil), 1e-12)
	assert.InDelta(t, 0.18, overlayTau(models.DegradeModeMarketOnly, nil), 1e-12)

	// warning floors only widen, never narrow
	assert.InDelta(t, 0.14, overlayTau(models.DegradeModeNormal,
		[]models.Warning{models.WarningFewValidSpeedsNeutralized}), 1e-12)
	assert.InDelta(t, 0.16, overlayTau(models.DegradeModeNormal,
		[]models.Warning{models.WarningAllPricesInvalid}), 1e-12)
	assert.InDelta(t, 0.18, overlayTau(models.DegradeModeMarketOnly,
		[]models.Warning{models.WarningAllPricesInvalid}), 1e-12)
}

func TestOverlayAlpha(t *testing.T) {
	assert.InDelta(t, 0.25, overlayAlpha(models.DegradeModeNormal), 1e-12)
	assert.InDelta(t, 0.40, overlayAlpha(models.DegradeModePartialSidecar), 1e-12)
	assert.InDelta(t, 0.70, overlayAlpha(models.DegradeModeMarketOnly), 1e-12)
}

func TestFeaturelessOverlayBlendsMarket(t *testing.T) {
	liteScores := map[int]float64{1: 0.55, 2: 0.45}
	marketProb := map[int]float64{1: 0.7, 2: 0.3}
	prices := map[int]*float64{1: fp(1.43), 2: fp(3.33)}

	forecasts := FeaturelessOverlay(liteScores, marketProb, prices, models.DegradeModeNormal, nil)
	require.Len(t, forecasts, 2)

	sum := forecasts[1].WinProb + forecasts[2].WinProb
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.Greater(t, forecasts[1].WinProb, forecasts[2].WinProb)
	assert.InDelta(t, 0.7, forecasts[1].MarketProb, 1e-12)
	assert.InDelta(t, forecasts[1].WinProb-0.7, forecasts[1].ValueEdge, 1e-12)
	require.NotNil(t, forecasts[1].EV1U)
}
