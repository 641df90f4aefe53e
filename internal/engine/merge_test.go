package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aturoa13699-lab/TURF-ENGINE/internal/models"
)

func TestNormalizeOdds(t *testing.T) {
	price := NormalizeOdds(" 4.40 ")
	require.NotNil(t, price)
	assert.InDelta(t, 4.4, *price, 1e-12)

	assert.Nil(t, NormalizeOdds(""))
	assert.Nil(t, NormalizeOdds("SCR"))
	assert.Nil(t, NormalizeOdds("-2.5"))
	assert.Nil(t, NormalizeOdds("0"))
}

func TestMergeOddsJoinsByName(t *testing.T) {
	runners := []models.RunnerInput{
		{RunnerNumber: 1, RunnerName: "Fast Lane"},
		{RunnerNumber: 2, RunnerName: "Slow Burn", PriceNowDec: fp(9.0)},
	}
	quotes := []OddsQuote{
		{RunnerName: "  FAST LANE ", PriceNowDec: fp(3.2)},
		{RunnerName: "slow burn", PriceNowDec: fp(8.5)},
	}

	merged, warnings := MergeOdds(runners, quotes)

	require.Len(t, merged, 2)
	require.NotNil(t, merged[0].PriceNowDec)
	assert.InDelta(t, 3.2, *merged[0].PriceNowDec, 1e-12)
	assert.InDelta(t, 8.5, *merged[1].PriceNowDec, 1e-12)
	assert.Empty(t, warnings)

	// inputs are not mutated
	assert.Nil(t, runners[0].PriceNowDec)
	assert.InDelta(t, 9.0, *runners[1].PriceNowDec, 1e-12)
}

func TestMergeOddsReportsMisses(t *testing.T) {
	runners := []models.RunnerInput{
		{RunnerNumber: 1, RunnerName: "Fast Lane"},
		{RunnerNumber: 2, RunnerName: "No Quote", PriceNowDec: fp(6.0)},
	}
	quotes := []OddsQuote{{RunnerName: "Fast Lane", PriceNowDec: fp(3.2)}}

	merged, warnings := MergeOdds(runners, quotes)

	assert.Contains(t, warnings, models.WarningJoinMiss)
	// the unmatched runner keeps its existing price
	require.NotNil(t, merged[1].PriceNowDec)
	assert.InDelta(t, 6.0, *merged[1].PriceNowDec, 1e-12)
}
