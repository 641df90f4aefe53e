package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aturoa13699-lab/TURF-ENGINE/internal/models"
)

func TestPairwiseProbabilitySymmetry(t *testing.T) {
	pairs := [][2]float64{{0.4, 0.2}, {0.55, 0.1}, {0.33, 0.33}, {0.05, 0.9}}
	for _, pair := range pairs {
		p := PairwiseProbability(pair[0], pair[1])
		q := PairwiseProbability(pair[1], pair[0])
		assert.InDelta(t, 1.0, p+q, 1e-9)
	}
}

func TestPairwiseProbabilityEqualIsEven(t *testing.T) {
	assert.InDelta(t, 0.5, PairwiseProbability(0.25, 0.25), 1e-12)
}

func TestPairwiseProbabilityInvalidIsEven(t *testing.T) {
	assert.InDelta(t, 0.5, PairwiseProbability(0, 0.3), 1e-12)
	assert.InDelta(t, 0.5, PairwiseProbability(0.3, -0.1), 1e-12)
}

func matchupCard() *models.StakeCard {
	runner := func(number int, name string, winProb float64) models.RunnerCard {
		return models.RunnerCard{
			RunnerNumber: number,
			RunnerName:   name,
			Forecast:     &models.Forecast{WinProb: winProb},
		}
	}
	return &models.StakeCard{
		Meeting: models.Meeting{MeetingID: "2025-10-04_RANDWICK"},
		Races: []models.RaceCard{{
			RaceNumber: 1,
			Runners: []models.RunnerCard{
				runner(1, "Alpha", 0.42),
				runner(2, "Bravo", 0.31),
				runner(3, "Charlie", 0.17),
				runner(4, "Delta", 0.10),
			},
		}},
	}
}

func TestGenerateMatchups(t *testing.T) {
	matchups := GenerateMatchups(matchupCard(), 0, 3)

	// upper triangle over the top 3 contenders
	require.Len(t, matchups, 3)
	first := matchups[0]
	assert.Equal(t, 1, first.RunnerA)
	assert.Equal(t, 2, first.RunnerB)
	assert.Equal(t, "bradley_terry", first.Method)
	assert.InDelta(t, 1.0, first.PABeatsB+first.PBBeatsA, 1e-9)
	assert.Greater(t, first.PABeatsB, 0.5)
	assert.GreaterOrEqual(t, first.Edge, 0.0)
	assert.LessOrEqual(t, first.Edge, 1.0)
}

func TestGenerateMatchupsRaceFilter(t *testing.T) {
	card := matchupCard()

	assert.Empty(t, GenerateMatchups(card, 9, 5))
	assert.Len(t, GenerateMatchups(card, 1, 5), 6)
}

func TestGenerateMatchupsSkipsThinFields(t *testing.T) {
	card := &models.StakeCard{
		Races: []models.RaceCard{{
			RaceNumber: 1,
			Runners: []models.RunnerCard{
				{RunnerNumber: 1, Forecast: &models.Forecast{WinProb: 0.8}},
				{RunnerNumber: 2},
			},
		}},
	}

	assert.Empty(t, GenerateMatchups(card, 0, 5))
}
