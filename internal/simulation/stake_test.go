package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aturoa13699-lab/TURF-ENGINE/internal/models"
)

func fp(v float64) *float64 { return &v }

func flatParams() StakeParams {
	return StakeParams{
		Policy:       models.StakePolicyFlat,
		FlatStake:    10.0,
		MaxStakeFrac: 0.05,
	}
}

func TestStakeFlat(t *testing.T) {
	stake := StakeForBet(flatParams(), 1000.0, fp(0.4), fp(3.0))
	assert.InDelta(t, 10.0, stake, 1e-12)
}

func TestStakeFlatCappedByBankrollFraction(t *testing.T) {
	stake := StakeForBet(flatParams(), 100.0, fp(0.4), fp(3.0))
	// cap at 100 * 0.05
	assert.InDelta(t, 5.0, stake, 1e-12)
}

func TestStakeKelly(t *testing.T) {
	params := StakeParams{Policy: models.StakePolicyKelly, MaxStakeFrac: 1.0}

	// p=0.5 at even money has zero edge
	assert.Zero(t, StakeForBet(params, 1000.0, fp(0.5), fp(2.0)))

	// p=0.6, b=1: f = (0.6 - 0.4) / 1 = 0.2
	stake := StakeForBet(params, 1000.0, fp(0.6), fp(2.0))
	assert.InDelta(t, 200.0, stake, 1e-9)

	// negative edge floors at zero
	assert.Zero(t, StakeForBet(params, 1000.0, fp(0.2), fp(2.0)))
}

func TestStakeFractionalKelly(t *testing.T) {
	params := StakeParams{
		Policy:        models.StakePolicyFractionalKelly,
		KellyFraction: 0.25,
		MaxStakeFrac:  1.0,
	}

	assert.Zero(t, StakeForBet(params, 1000.0, fp(0.5), fp(2.0)))

	stake := StakeForBet(params, 1000.0, fp(0.6), fp(2.0))
	assert.InDelta(t, 50.0, stake, 1e-9)
}

func TestStakeKellyMissingInputs(t *testing.T) {
	params := StakeParams{Policy: models.StakePolicyKelly, MaxStakeFrac: 1.0}

	assert.Zero(t, StakeForBet(params, 1000.0, nil, fp(3.0)))
	assert.Zero(t, StakeForBet(params, 1000.0, fp(0.4), nil))
	assert.Zero(t, StakeForBet(params, 1000.0, fp(0.4), fp(1.0)))
}

func TestStakeZeroOnBadState(t *testing.T) {
	assert.Zero(t, StakeForBet(flatParams(), 0, fp(0.4), fp(3.0)))
	assert.Zero(t, StakeForBet(flatParams(), -50, fp(0.4), fp(3.0)))

	unknown := StakeParams{Policy: models.StakePolicy("martingale"), MaxStakeFrac: 0.05}
	assert.Zero(t, StakeForBet(unknown, 1000.0, fp(0.4), fp(3.0)))
}

func TestStakeRoundsToCents(t *testing.T) {
	params := StakeParams{Policy: models.StakePolicyKelly, MaxStakeFrac: 1.0}

	// p=0.41, b=2: f = (0.82 - 0.59) / 2 = 0.115
	stake := StakeForBet(params, 333.33, fp(0.41), fp(3.0))
	assert.InDelta(t, 38.33, stake, 1e-12)
}
