package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

func sampleCard() *StakeCard {
	alpha := 0.25
	writer := "LITE_WRAPPER_SOFTMAX_BLEND"
	return &StakeCard{
		EngineContext: EngineContext{
			EngineSpecID:  "TURF_ENGINE_LITE_AU",
			EngineVersion: "0.2.1p2",
			LiteVersion:   "0.2.1p2",
			DegradeMode:   DegradeModeNormal,
			Warnings:      []Warning{WarningJoinMiss},
			InputsHash:    "abc123",
			ForecastParams: &ForecastParams{
				Tau:   0.12,
				Alpha: &alpha,
			},
			Debug: DebugInfo{OverlayWriter: &writer},
		},
		Meeting: Meeting{MeetingID: "2025-10-04_RANDWICK"},
		Races: []RaceCard{{
			RaceNumber: 1,
			DistanceM:  1200,
			Runners: []RunnerCard{{
				RunnerNumber: 1,
				RunnerName:   "Alpha",
				Barrier:      ip(3),
				LiteScore:    0.61,
				LiteTag:      LiteTagB,
				OddsMinimal:  &OddsMinimal{PriceNowDec: 3.0},
				Forecast: &Forecast{
					WinProb:   0.42,
					PlaceProb: 0.80,
					EV1U:      fp(0.26),
					Certainty: 1.00,
				},
			}},
		}},
	}
}

func TestStakeCardCloneIsDeep(t *testing.T) {
	card := sampleCard()
	clone := card.Clone()

	clone.EngineContext.Warnings[0] = WarningAllPricesInvalid
	*clone.EngineContext.ForecastParams.Alpha = 0.70
	*clone.EngineContext.Debug.OverlayWriter = "changed"
	clone.Races[0].Runners[0].LiteScore = 0.99
	*clone.Races[0].Runners[0].Barrier = 12
	clone.Races[0].Runners[0].OddsMinimal.PriceNowDec = 99.0
	clone.Races[0].Runners[0].Forecast.WinProb = 0.01
	*clone.Races[0].Runners[0].Forecast.EV1U = -1.0

	assert.Equal(t, WarningJoinMiss, card.EngineContext.Warnings[0])
	assert.InDelta(t, 0.25, *card.EngineContext.ForecastParams.Alpha, 1e-12)
	assert.Equal(t, "LITE_WRAPPER_SOFTMAX_BLEND", *card.EngineContext.Debug.OverlayWriter)
	assert.InDelta(t, 0.61, card.Races[0].Runners[0].LiteScore, 1e-12)
	assert.Equal(t, 3, *card.Races[0].Runners[0].Barrier)
	assert.InDelta(t, 3.0, card.Races[0].Runners[0].OddsMinimal.PriceNowDec, 1e-12)
	assert.InDelta(t, 0.42, card.Races[0].Runners[0].Forecast.WinProb, 1e-12)
	assert.InDelta(t, 0.26, *card.Races[0].Runners[0].Forecast.EV1U, 1e-12)
}

func TestStakeCardCloneNil(t *testing.T) {
	var card *StakeCard
	assert.Nil(t, card.Clone())
}

func TestRunnerCardPrice(t *testing.T) {
	runner := RunnerCard{OddsMinimal: &OddsMinimal{PriceNowDec: 4.4}}
	price := runner.Price()
	require.NotNil(t, price)
	assert.InDelta(t, 4.4, *price, 1e-12)

	bare := RunnerCard{}
	assert.Nil(t, bare.Price())
}
