package models

import "math"

// MapRole represents the inferred running pattern of a runner
type MapRole string

const (
	MapRoleLead    MapRole = "LEAD"
	MapRoleOnPace  MapRole = "ON_PACE"
	MapRoleMid     MapRole = "MID"
	MapRoleBack    MapRole = "BACK"
	MapRoleUnknown MapRole = "UNKNOWN"
)

// LiteTag represents the coarse Lite classification of a runner
type LiteTag string

const (
	LiteTagA    LiteTag = "A_LITE"
	LiteTagB    LiteTag = "B_LITE"
	LiteTagPass LiteTag = "PASS_LITE"
)

// RunnerInput represents the parsed per-runner inputs consumed by the Lite compiler
type RunnerInput struct {
	RunnerNumber    int      `json:"runner_number" validate:"required,gt=0"`
	RunnerName      string   `json:"runner_name" validate:"required"`
	Barrier         *int     `json:"barrier,omitempty"`
	PriceNowDec     *float64 `json:"price_now_dec,omitempty"`
	MapRoleInferred MapRole  `json:"map_role_inferred,omitempty"`
	AvgSpeedMps     *float64 `json:"avg_speed_mps,omitempty"`
	DaysSinceRun    *int     `json:"days_since_run,omitempty"`
}

// HasValidPrice reports whether the runner carries a finite decimal price above 1.0
func (r *RunnerInput) HasValidPrice() bool {
	return ValidPrice(r.PriceNowDec)
}

// HasValidSpeed reports whether the runner carries a finite non-negative speed
func (r *RunnerInput) HasValidSpeed() bool {
	return ValidSpeed(r.AvgSpeedMps)
}

// GetBarrier returns the barrier or 0 if missing
func (r *RunnerInput) GetBarrier() int {
	if r.Barrier == nil {
		return 0
	}
	return *r.Barrier
}

// Role returns the inferred map role, defaulting to UNKNOWN
func (r *RunnerInput) Role() MapRole {
	switch r.MapRoleInferred {
	case MapRoleLead, MapRoleOnPace, MapRoleMid, MapRoleBack:
		return r.MapRoleInferred
	default:
		return MapRoleUnknown
	}
}

// ValidPrice reports whether a decimal price is usable (finite and > 1.0)
func ValidPrice(price *float64) bool {
	return price != nil && !math.IsNaN(*price) && !math.IsInf(*price, 0) && *price > 1.0
}

// ValidSpeed reports whether an average speed is usable (finite and >= 0)
func ValidSpeed(speed *float64) bool {
	return speed != nil && !math.IsNaN(*speed) && !math.IsInf(*speed, 0) && *speed >= 0
}

// LiteComponents holds the named Lite sub-scores for a runner
type LiteComponents struct {
	MarketRankN float64 `json:"MarketRankN"`
	MapAdvN     float64 `json:"MapAdvN"`
	SpeedProxyN float64 `json:"SpeedProxyN"`
}

// RunnerOutput represents a compiled runner produced by the Lite compiler
type RunnerOutput struct {
	RunnerNumber int            `json:"runner_number"`
	RunnerName   string         `json:"runner_name"`
	LiteScore    float64        `json:"lite_score"`
	LiteTag      LiteTag        `json:"lite_tag"`
	Components   LiteComponents `json:"components"`
	PriceNowDec  *float64       `json:"price_now_dec,omitempty"`
	Forecast     *Forecast      `json:"forecast"`
}
