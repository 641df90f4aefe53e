package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aturoa13699-lab/TURF-ENGINE/internal/models"
)

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

func TestEVBand(t *testing.T) {
	tests := []struct {
		ev   *float64
		want string
	}{
		{fp(0.30), "A"},
		{fp(0.25), "A"},
		{fp(0.15), "B"},
		{fp(0.05), "C"},
		{fp(0.0), "C"},
		{fp(-0.03), "D"},
		{fp(-0.05), "D"},
		{fp(-0.20), "E"},
		{nil, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EVBand(tt.ev))
	}
}

func TestEVMarker(t *testing.T) {
	assert.Equal(t, "\U0001F7E2", EVMarker(fp(0.06)))
	assert.Equal(t, "\U0001F534", EVMarker(fp(-0.06)))
	assert.Equal(t, "⚪️", EVMarker(fp(0.01)))
	assert.Empty(t, EVMarker(nil))
}

func TestConfidenceClass(t *testing.T) {
	assert.Equal(t, "HIGH", ConfidenceClass(fp(1.00)))
	assert.Equal(t, "HIGH", ConfidenceClass(fp(0.90)))
	assert.Equal(t, "MEDIUM", ConfidenceClass(fp(0.80)))
	assert.Equal(t, "LOW", ConfidenceClass(fp(0.60)))
	assert.Empty(t, ConfidenceClass(nil))
}

func TestRiskProfile(t *testing.T) {
	// implied probability at 4.0 is 0.25
	assert.Equal(t, "VALUE", RiskProfile(fp(0.31), fp(4.0)))
	assert.Equal(t, "UNDERLAY", RiskProfile(fp(0.19), fp(4.0)))
	assert.Equal(t, "FAIR", RiskProfile(fp(0.26), fp(4.0)))
	assert.Empty(t, RiskProfile(fp(0.30), nil))
	assert.Empty(t, RiskProfile(fp(0.30), fp(1.0)))
}

func TestModelVsMarketAlert(t *testing.T) {
	assert.Equal(t, "overlay_positive", ModelVsMarketAlert(fp(0.10)))
	assert.Equal(t, "overlay_negative", ModelVsMarketAlert(fp(-0.10)))
	assert.Empty(t, ModelVsMarketAlert(fp(0.02)))
	assert.Empty(t, ModelVsMarketAlert(nil))
}

func TestApplyValueFields(t *testing.T) {
	runner := &models.RunnerCard{
		RunnerNumber: 4,
		OddsMinimal:  &models.OddsMinimal{PriceNowDec: 4.0},
		Forecast: &models.Forecast{
			WinProb:   0.32,
			ValueEdge: 0.09,
			EV1U:      fp(0.28),
			Certainty: 1.00,
		},
	}

	ApplyValueFields(runner)

	require.NotNil(t, runner.EV)
	assert.InDelta(t, 0.28, *runner.EV, 1e-12)
	assert.Equal(t, "A", runner.EVBand)
	assert.Equal(t, "\U0001F7E2", runner.EVMarker)
	assert.Equal(t, "HIGH", runner.ConfidenceClass)
	assert.Equal(t, "VALUE", runner.RiskProfile)
	assert.Equal(t, "overlay_positive", runner.ModelVsMarketAlert)
}

func TestApplyValueFieldsNoForecast(t *testing.T) {
	runner := &models.RunnerCard{RunnerNumber: 9}

	ApplyValueFields(runner)

	assert.Nil(t, runner.EV)
	assert.Empty(t, runner.EVBand)
	assert.Empty(t, runner.ConfidenceClass)
}
