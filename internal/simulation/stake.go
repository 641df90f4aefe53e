package simulation

import (
	"github.com/shopspring/decimal"

	"github.com/aturoa13699-lab/TURF-ENGINE/internal/models"
)

// StakeParams configures stake sizing for a simulation run
type StakeParams struct {
	Policy        models.StakePolicy
	FlatStake     float64
	KellyFraction float64
	MaxStakeFrac  float64
}

// roundCurrency rounds monetary values deterministically to 2 decimal places
func roundCurrency(value float64) float64 {
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}

// StakeForBet computes the stake for a single bet. Stakes are capped at
// bankroll * max_stake_frac and floored at 0; an unknown policy or
// non-positive bankroll yields a zero stake rather than an error so the
// simulation stays total.
func StakeForBet(params StakeParams, bankroll float64, winProb, oddsDec *float64) float64 {
	if bankroll <= 0 {
		return 0
	}

	maxStake := bankroll * params.MaxStakeFrac
	stake := 0.0

	switch params.Policy {
	case models.StakePolicyFlat:
		stake = params.FlatStake
	case models.StakePolicyKelly, models.StakePolicyFractionalKelly:
		if winProb == nil || oddsDec == nil || *oddsDec <= 1 {
			break
		}
		// Kelly criterion: f = (p*b - q) / b, floored at 0
		b := *oddsDec - 1.0
		kelly := (*winProb*b - (1 - *winProb)) / b
		if kelly < 0 {
			kelly = 0
		}
		stake = bankroll * kelly
		if params.Policy == models.StakePolicyFractionalKelly {
			stake *= params.KellyFraction
		}
	}

	if stake > maxStake {
		stake = maxStake
	}
	if stake < 0 {
		stake = 0
	}
	return roundCurrency(stake)
}
