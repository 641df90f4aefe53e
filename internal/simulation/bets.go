// Package simulation selects value bets from stake cards, sizes stakes under
// flat/Kelly policies and runs seeded Monte Carlo bankroll simulations.
// Everything here is deterministic for the same inputs and seed.
package simulation

import (
	"github.com/aturoa13699-lab/TURF-ENGINE/internal/metrics"
	"github.com/aturoa13699-lab/TURF-ENGINE/internal/models"
)

// SelectOptions controls bet selection thresholds
type SelectOptions struct {
	// RequirePositiveEV drops bets with ev_1u <= 0. On by default via
	// DefaultSelectOptions.
	RequirePositiveEV bool
	MinEV             *float64
	MinEdge           *float64
}

// DefaultSelectOptions returns the default selection rule: positive EV only
func DefaultSelectOptions() SelectOptions {
	return SelectOptions{RequirePositiveEV: true}
}

// SelectBets walks the stake card's races and runners in input order and
// keeps runners whose forecast carries a non-null EV that passes the
// configured thresholds. Iteration order keeps outputs stable.
func SelectBets(card *models.StakeCard, opts SelectOptions) []models.Bet {
	meetingID := card.Meeting.MeetingID
	if meetingID == "" {
		meetingID = "unknown_meeting"
	}
	dateLocal := card.Meeting.DateLocal
	if dateLocal == "" {
		dateLocal = "0000-00-00"
	}

	var bets []models.Bet
	for _, race := range card.Races {
		for _, runner := range race.Runners {
			forecast := runner.Forecast
			if forecast == nil || forecast.EV1U == nil {
				continue
			}
			ev := *forecast.EV1U
			if opts.RequirePositiveEV && ev <= 0 {
				continue
			}
			if opts.MinEV != nil && ev < *opts.MinEV {
				continue
			}
			edge := forecast.ValueEdge
			if opts.MinEdge != nil && edge < *opts.MinEdge {
				continue
			}

			winProb := forecast.WinProb
			evCopy := ev
			edgeCopy := edge
			bets = append(bets, models.Bet{
				MeetingID:    meetingID,
				DateLocal:    dateLocal,
				RaceNumber:   race.RaceNumber,
				RunnerNumber: runner.RunnerNumber,
				OddsDec:      runner.Price(),
				WinProb:      &winProb,
				EV1U:         &evCopy,
				ValueEdge:    &edgeCopy,
			})
		}
	}

	metrics.BetsSelectedTotal.Add(float64(len(bets)))
	return bets
}
