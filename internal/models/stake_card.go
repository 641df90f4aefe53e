package models

// Meeting identifies the meeting a stake card belongs to
type Meeting struct {
	MeetingID         string `json:"meeting_id"`
	TrackName         string `json:"track_name,omitempty"`
	State             string `json:"state,omitempty"`
	DateLocal         string `json:"date_local,omitempty"`
	TrackConditionRaw string `json:"track_condition_raw,omitempty"`
	CapturedAt        string `json:"captured_at,omitempty"`
}

// ForecastParams echoes the overlay parameters used to produce forecasts
type ForecastParams struct {
	Tau             float64  `json:"tau"`
	Alpha           *float64 `json:"alpha"`
	TierPriorPolicy string   `json:"tier_prior_policy,omitempty"`
	MarketProbBasis string   `json:"market_prob_basis"`
	Notes           string   `json:"notes"`
}

// DebugInfo carries provenance fields for downstream consumers
type DebugInfo struct {
	OverlayWriter        *string `json:"overlay_writer"`
	RunnerVectorChecksum *string `json:"runner_vector_checksum,omitempty"`
}

// EngineContext describes how a stake card was produced
type EngineContext struct {
	EngineSpecID   string          `json:"engine_spec_id"`
	EngineVersion  string          `json:"engine_version"`
	LiteVersion    string          `json:"lite_version"`
	DegradeMode    DegradeMode     `json:"degrade_mode"`
	Warnings       []Warning       `json:"warnings"`
	InputsHash     string          `json:"inputs_hash"`
	ForecastParams *ForecastParams `json:"forecast_params"`
	Debug          DebugInfo       `json:"debug"`
}

// OddsMinimal carries the minimal odds block attached to a runner
type OddsMinimal struct {
	PriceNowDec float64 `json:"price_now_dec"`
}

// RunnerCard is a single runner entry on a stake card, in tie-break order
type RunnerCard struct {
	RunnerNumber    int            `json:"runner_number"`
	RunnerName      string         `json:"runner_name"`
	Barrier         *int           `json:"barrier,omitempty"`
	MapRoleInferred MapRole        `json:"map_role_inferred,omitempty"`
	AvgSpeedMps     *float64       `json:"avg_speed_mps,omitempty"`
	DaysSinceRun    *int           `json:"days_since_run,omitempty"`
	LiteScore       float64        `json:"lite_score"`
	LiteTag         LiteTag        `json:"lite_tag"`
	LiteComponents  LiteComponents `json:"lite_components"`
	OddsMinimal     *OddsMinimal   `json:"odds_minimal"`
	Forecast        *Forecast      `json:"forecast"`

	// Derived value fields, populated only when the corresponding
	// feature options are enabled at overlay time.
	EV                 *float64 `json:"ev,omitempty"`
	EVBand             string   `json:"ev_band,omitempty"`
	EVMarker           string   `json:"ev_marker,omitempty"`
	ConfidenceClass    string   `json:"confidence_class,omitempty"`
	RiskProfile        string   `json:"risk_profile,omitempty"`
	ModelVsMarketAlert string   `json:"model_vs_market_alert,omitempty"`
	FitnessFlags       []string `json:"fitness_flags,omitempty"`
	RiskTags           []string `json:"risk_tags,omitempty"`
	Summary            string   `json:"summary,omitempty"`
}

// Price returns the runner's decimal price, or nil if no odds block is attached
func (r *RunnerCard) Price() *float64 {
	if r.OddsMinimal == nil {
		return nil
	}
	price := r.OddsMinimal.PriceNowDec
	return &price
}

// RaceSummary is the race-level pick summary derived from overlay fields
type RaceSummary struct {
	TopPicks   []int  `json:"top_picks"`
	ValuePicks []int  `json:"value_picks"`
	Fades      []int  `json:"fades"`
	TrapRace   bool   `json:"trap_race"`
	Strategy   string `json:"strategy"`
}

// RaceCard is a single race on a stake card
type RaceCard struct {
	RaceNumber  int          `json:"race_number"`
	DistanceM   int          `json:"distance_m"`
	Runners     []RunnerCard `json:"runners"`
	RaceSummary *RaceSummary `json:"race_summary,omitempty"`
	TrapRace    bool         `json:"trap_race,omitempty"`
}

// StakeCard is the canonical compiled output of the Lite compiler
type StakeCard struct {
	EngineContext EngineContext `json:"engine_context"`
	Meeting       Meeting       `json:"meeting"`
	Races         []RaceCard    `json:"races"`
}

// Clone returns a deep copy of the stake card. Overlay application operates
// on the clone so the source card is never mutated.
func (s *StakeCard) Clone() *StakeCard {
	if s == nil {
		return nil
	}
	out := *s
	out.EngineContext = s.EngineContext.clone()
	out.Races = make([]RaceCard, len(s.Races))
	for i := range s.Races {
		out.Races[i] = s.Races[i].clone()
	}
	return &out
}

func (c EngineContext) clone() EngineContext {
	out := c
	out.Warnings = append([]Warning(nil), c.Warnings...)
	if c.ForecastParams != nil {
		fp := *c.ForecastParams
		if c.ForecastParams.Alpha != nil {
			alpha := *c.ForecastParams.Alpha
			fp.Alpha = &alpha
		}
		out.ForecastParams = &fp
	}
	out.Debug = c.Debug.clone()
	return out
}

func (d DebugInfo) clone() DebugInfo {
	out := d
	if d.OverlayWriter != nil {
		w := *d.OverlayWriter
		out.OverlayWriter = &w
	}
	if d.RunnerVectorChecksum != nil {
		c := *d.RunnerVectorChecksum
		out.RunnerVectorChecksum = &c
	}
	return out
}

func (r RaceCard) clone() RaceCard {
	out := r
	out.Runners = make([]RunnerCard, len(r.Runners))
	for i := range r.Runners {
		out.Runners[i] = r.Runners[i].clone()
	}
	if r.RaceSummary != nil {
		summary := *r.RaceSummary
		summary.TopPicks = append([]int(nil), r.RaceSummary.TopPicks...)
		summary.ValuePicks = append([]int(nil), r.RaceSummary.ValuePicks...)
		summary.Fades = append([]int(nil), r.RaceSummary.Fades...)
		out.RaceSummary = &summary
	}
	return out
}

func (r RunnerCard) clone() RunnerCard {
	out := r
	out.Barrier = cloneInt(r.Barrier)
	out.AvgSpeedMps = cloneFloat(r.AvgSpeedMps)
	out.DaysSinceRun = cloneInt(r.DaysSinceRun)
	if r.OddsMinimal != nil {
		odds := *r.OddsMinimal
		out.OddsMinimal = &odds
	}
	out.Forecast = r.Forecast.Clone()
	out.EV = cloneFloat(r.EV)
	out.FitnessFlags = append([]string(nil), r.FitnessFlags...)
	out.RiskTags = append([]string(nil), r.RiskTags...)
	return out
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
