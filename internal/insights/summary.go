package insights

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aturoa13699-lab/TURF-ENGINE/internal/models"
)

type enrichedRunner struct {
	number  int
	winProb float64
	ev      *float64
}

func evOrZero(ev *float64) float64 {
	if ev == nil {
		return 0
	}
	return *ev
}

// SummarizeRace derives the deterministic race-level pick summary from
// overlay fields: top picks by win probability, value picks by positive EV,
// fades by negative EV, and an observe-only trap marker when no value exists.
func SummarizeRace(race models.RaceCard) models.RaceSummary {
	enriched := make([]enrichedRunner, 0, len(race.Runners))
	for _, runner := range race.Runners {
		e := enrichedRunner{number: runner.RunnerNumber}
		if f := runner.Forecast; f != nil {
			e.winProb = f.WinProb
			e.ev = f.EV1U
		}
		enriched = append(enriched, e)
	}

	topSorted := append([]enrichedRunner(nil), enriched...)
	sort.SliceStable(topSorted, func(i, j int) bool {
		if topSorted[i].winProb != topSorted[j].winProb {
			return topSorted[i].winProb > topSorted[j].winProb
		}
		if evOrZero(topSorted[i].ev) != evOrZero(topSorted[j].ev) {
			return evOrZero(topSorted[i].ev) > evOrZero(topSorted[j].ev)
		}
		return topSorted[i].number < topSorted[j].number
	})
	var topPicks []int
	for _, e := range topSorted {
		if len(topPicks) == 2 {
			break
		}
		if e.number != 0 {
			topPicks = append(topPicks, e.number)
		}
	}

	withEV := make([]enrichedRunner, 0, len(enriched))
	for _, e := range enriched {
		if e.ev != nil {
			withEV = append(withEV, e)
		}
	}
	sort.SliceStable(withEV, func(i, j int) bool {
		if *withEV[i].ev != *withEV[j].ev {
			return *withEV[i].ev > *withEV[j].ev
		}
		return withEV[i].number < withEV[j].number
	})
	var valuePicks []int
	for _, e := range withEV {
		if len(valuePicks) == 2 {
			break
		}
		if *e.ev > 0 {
			valuePicks = append(valuePicks, e.number)
		}
	}

	var fadeCandidates []enrichedRunner
	for _, e := range withEV {
		if *e.ev < -0.01 {
			fadeCandidates = append(fadeCandidates, e)
		}
	}
	sort.SliceStable(fadeCandidates, func(i, j int) bool {
		if *fadeCandidates[i].ev != *fadeCandidates[j].ev {
			return *fadeCandidates[i].ev < *fadeCandidates[j].ev
		}
		return fadeCandidates[i].number < fadeCandidates[j].number
	})
	var fades []int
	for _, e := range fadeCandidates {
		if len(fades) == 2 {
			break
		}
		fades = append(fades, e.number)
	}

	var strategyParts []string
	if len(topPicks) > 0 {
		strategyParts = append(strategyParts, fmt.Sprintf("Win: %s", joinInts(topPicks)))
	}
	if len(valuePicks) > 0 {
		strategyParts = append(strategyParts, fmt.Sprintf("Value: %s", joinInts(valuePicks)))
	}
	if len(fades) > 0 {
		strategyParts = append(strategyParts, fmt.Sprintf("Fades: %s", joinInts(fades)))
	}
	strategy := "Observe only"
	if len(strategyParts) > 0 {
		strategy = strings.Join(strategyParts, "; ")
	}

	return models.RaceSummary{
		TopPicks:   topPicks,
		ValuePicks: valuePicks,
		Fades:      fades,
		TrapRace:   len(valuePicks) == 0,
		Strategy:   strategy,
	}
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ", ")
}
