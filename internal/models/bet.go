package models

// StakePolicy selects how stakes are sized during simulation
type StakePolicy string

const (
	StakePolicyFlat            StakePolicy = "flat"
	StakePolicyKelly           StakePolicy = "kelly"
	StakePolicyFractionalKelly StakePolicy = "fractional_kelly"
)

// Bet represents a selected value bet extracted from a stake card
type Bet struct {
	MeetingID    string   `json:"meeting_id"`
	DateLocal    string   `json:"date_local"`
	RaceNumber   int      `json:"race_number"`
	RunnerNumber int      `json:"runner_number"`
	OddsDec      *float64 `json:"odds_dec"`
	WinProb      *float64 `json:"win_prob"`
	EV1U         *float64 `json:"ev_1u"`
	ValueEdge    *float64 `json:"value_edge"`
}

// HasPriceProb reports whether the bet carries both a price and a probability
func (b *Bet) HasPriceProb() bool {
	return b.OddsDec != nil && b.WinProb != nil
}

// SimulationConfigEcho echoes the simulation parameters into the summary
type SimulationConfigEcho struct {
	Seed          int64       `json:"seed"`
	Iters         int         `json:"iters"`
	Policy        StakePolicy `json:"policy"`
	BankrollStart float64     `json:"bankroll_start"`
	FlatStake     float64     `json:"flat_stake"`
	KellyFraction float64     `json:"kelly_fraction"`
	MaxStakeFrac  float64     `json:"max_stake_frac"`
}

// SimulationCounts reports how many bets were considered, simulated and skipped
type SimulationCounts struct {
	BetsConsidered     int `json:"bets_considered"`
	BetsSimulated      int `json:"bets_simulated"`
	BetsSkippedMissing int `json:"bets_skipped_missing"`
}

// SimulationResults summarizes the final-bankroll distribution
type SimulationResults struct {
	MeanFinal   float64 `json:"mean_final"`
	MedianFinal float64 `json:"median_final"`
	P05Final    float64 `json:"p05_final"`
	P95Final    float64 `json:"p95_final"`
	MinFinal    float64 `json:"min_final"`
	MaxFinal    float64 `json:"max_final"`
}

// BankrollSimulationResult is the deterministic summary of a simulation run
type BankrollSimulationResult struct {
	Config  SimulationConfigEcho `json:"config"`
	Counts  SimulationCounts     `json:"counts"`
	Results SimulationResults    `json:"results"`
}
