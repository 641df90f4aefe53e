package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aturoa13699-lab/TURF-ENGINE/internal/models"
)

func TestSigmoid(t *testing.T) {
	assert.InDelta(t, 0.5, Sigmoid(0), 1e-12)
	assert.InDelta(t, 1.0, Sigmoid(40), 1e-9)
	assert.InDelta(t, 0.0, Sigmoid(-40), 1e-9)
	assert.False(t, math.IsNaN(Sigmoid(-800)))
	assert.False(t, math.IsNaN(Sigmoid(800)))
}

func TestLogitInvertsSigmoid(t *testing.T) {
	for _, x := range []float64{-4, -1, 0, 0.5, 2.5} {
		assert.InDelta(t, x, Logit(Sigmoid(x)), 1e-9)
	}
	assert.False(t, math.IsInf(Logit(0), 0))
	assert.False(t, math.IsInf(Logit(1), 0))
}

func TestSoftmaxSumsToOne(t *testing.T) {
	probs := Softmax([]float64{0.54, 0.47, 0.27}, 0.12)

	require.Len(t, probs, 3)
	sum := 0.0
	for _, p := range probs {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.Greater(t, probs[0], probs[1])
	assert.Greater(t, probs[1], probs[2])
}

func TestSoftmaxTemperature(t *testing.T) {
	sharp := Softmax([]float64{0.6, 0.4}, 0.12)
	flat := Softmax([]float64{0.6, 0.4}, 0.18)

	// a wider temperature moves mass toward uniform
	assert.Greater(t, sharp[0], flat[0])
}

func TestSoftmaxEmpty(t *testing.T) {
	assert.Nil(t, Softmax(nil, 0.12))
}

func TestPlaceProbabilities(t *testing.T) {
	place := PlaceProbabilities([]float64{0.5, 0.3, 0.2})

	expected0 := 0.5 + 0.3*0.5/0.7 + 0.2*0.5/0.8
	assert.InDelta(t, expected0, place[0], 1e-9)
	for _, p := range place {
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}

func TestCertaintyFor(t *testing.T) {
	tests := []struct {
		name     string
		mode     models.DegradeMode
		warnings []models.Warning
		want     float64
	}{
		{"normal clean", models.DegradeModeNormal, nil, 1.00},
		{"some prices invalid", models.DegradeModeNormal, []models.Warning{models.WarningSomePricesInvalid}, 0.80},
		{"join miss", models.DegradeModeNormal, []models.Warning{models.WarningJoinMiss}, 0.80},
		{"all prices invalid", models.DegradeModeMarketOnly, []models.Warning{models.WarningAllPricesInvalid}, 0.60},
		{"few speeds", models.DegradeModePartialSidecar, []models.Warning{models.WarningFewValidSpeedsNeutralized}, 0.60},
		{"degraded no warnings", models.DegradeModePartialSidecar, nil, 0.80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CertaintyFor(tt.mode, tt.warnings), 1e-12)
		})
	}
}

func TestExpectedValue(t *testing.T) {
	ev := ExpectedValue(0.4, fp(3.0))
	require.NotNil(t, ev)
	assert.InDelta(t, 0.2, *ev, 1e-12)

	assert.Nil(t, ExpectedValue(0.4, nil))
	assert.Nil(t, ExpectedValue(0.4, fp(1.0)))
	assert.Nil(t, ExpectedValue(0.4, fp(math.Inf(1))))
}
