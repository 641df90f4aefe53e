package insights

import (
	"math"
	"sort"

	"github.com/aturoa13699-lab/TURF-ENGINE/internal/engine"
	"github.com/aturoa13699-lab/TURF-ENGINE/internal/models"
)

// PairwiseProbability computes P(i beats j) with a Bradley-Terry style model
// over logit-transformed win probabilities:
//
//	P(i beats j) = sigmoid(logit(p_i) - logit(p_j))
//
// Symmetry holds by construction: P(i beats j) + P(j beats i) = 1. Invalid
// probabilities fall back to an even 0.5.
func PairwiseProbability(probI, probJ float64) float64 {
	if probI <= 0 || probJ <= 0 || math.IsNaN(probI) || math.IsNaN(probJ) {
		return 0.5
	}
	return engine.Sigmoid(engine.Logit(probI) - engine.Logit(probJ))
}

// Matchup is a head-to-head probability between two runners in a race
type Matchup struct {
	RaceNumber  int     `json:"race_number"`
	RunnerA     int     `json:"runner_a"`
	RunnerAName string  `json:"runner_a_name"`
	RunnerB     int     `json:"runner_b"`
	RunnerBName string  `json:"runner_b_name"`
	PABeatsB    float64 `json:"p_a_beats_b"`
	PBBeatsA    float64 `json:"p_b_beats_a"`
	Edge        float64 `json:"edge"`
	Method      string  `json:"method"`
}

// GenerateMatchups produces upper-triangle pairwise matchups over the top N
// runners by win probability for each race. raceNumber 0 means all races.
// This derived output never modifies Lite ordering or forecasts.
func GenerateMatchups(card *models.StakeCard, raceNumber, topN int) []Matchup {
	if topN <= 0 {
		topN = 5
	}
	var matchups []Matchup

	for _, race := range card.Races {
		if raceNumber != 0 && race.RaceNumber != raceNumber {
			continue
		}

		type contender struct {
			number  int
			name    string
			winProb float64
		}
		var contenders []contender
		for _, runner := range race.Runners {
			if runner.Forecast != nil && runner.Forecast.WinProb > 0 {
				contenders = append(contenders, contender{
					number:  runner.RunnerNumber,
					name:    runner.RunnerName,
					winProb: runner.Forecast.WinProb,
				})
			}
		}
		sort.SliceStable(contenders, func(i, j int) bool {
			return contenders[i].winProb > contenders[j].winProb
		})
		if len(contenders) > topN {
			contenders = contenders[:topN]
		}
		if len(contenders) < 2 {
			continue
		}

		for i := 0; i < len(contenders); i++ {
			for j := i + 1; j < len(contenders); j++ {
				p := PairwiseProbability(contenders[i].winProb, contenders[j].winProb)
				matchups = append(matchups, Matchup{
					RaceNumber:  race.RaceNumber,
					RunnerA:     contenders[i].number,
					RunnerAName: contenders[i].name,
					RunnerB:     contenders[j].number,
					RunnerBName: contenders[j].name,
					PABeatsB:    round4(p),
					PBBeatsA:    round4(1 - p),
					Edge:        round4(math.Abs(p-0.5) * 2),
					Method:      "bradley_terry",
				})
			}
		}
	}
	return matchups
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
