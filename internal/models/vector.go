package models

// One-hot slot counts for categorical features
const (
	MapRoleSlots        = 5
	TrackConditionSlots = 6
)

// TrackCondition indexes into the track condition one-hot array
const (
	TrackFirm = iota
	TrackGood
	TrackSoft
	TrackHeavy
	TrackSynth
	TrackUnknown
)

// FeatureVector is the fixed-schema per-runner feature record consumed by the
// PRO overlay. All continuous fields are normalized to [0,1]; optional
// enrichment fields default to neutral 0.5 when source data is absent.
type FeatureVector struct {
	MarketProb           float64                  `json:"market_prob"`
	LiteScore            float64                  `json:"lite_score"`
	MapRoleOnehot        [MapRoleSlots]int        `json:"map_role_onehot"`
	BarrierPct           float64                  `json:"barrier_pct"`
	SpeedNorm            float64                  `json:"speed_norm"`
	DaysSinceRunNorm     float64                  `json:"days_since_run_norm"`
	FieldSizeNorm        float64                  `json:"field_size_norm"`
	DistanceSuitNorm     float64                  `json:"distance_suit_norm"`
	TrackConditionOnehot [TrackConditionSlots]int `json:"track_condition_onehot"`
	WeightEffNorm        float64                  `json:"weight_eff_norm"`
	ClassDeltaNorm       float64                  `json:"class_delta_norm"`
	Last600EffNorm       float64                  `json:"last600_eff_norm"`
	PosDeltaNorm         float64                  `json:"pos_delta_norm"`
	JockeySRNorm         float64                  `json:"jockey_sr_norm"`
	TrainerSRNorm        float64                  `json:"trainer_sr_norm"`
	GearHealthNorm       float64                  `json:"gear_health_norm"`
}

// RunnerVector pairs a runner number with its feature vector
type RunnerVector struct {
	RunnerNumber int           `json:"runner_number"`
	X            FeatureVector `json:"x"`
}

// VectorDebug carries the provenance checksum of a vector payload
type VectorDebug struct {
	Checksum string `json:"checksum"`
}

// RunnerVectorPayload is the runner_vector.v1 artifact shape
type RunnerVectorPayload struct {
	Runners []RunnerVector `json:"runners"`
	Debug   VectorDebug    `json:"debug"`
}

// DistBucketStats summarizes historical performance at a distance bucket
type DistBucketStats struct {
	Placed int `json:"placed"`
	Starts int `json:"starts"`
}

// VectorInput is the per-runner engine input consumed by the vector builder.
// Every optional field degrades to a documented neutral default when absent.
type VectorInput struct {
	RunnerNumber      int              `json:"runner_number"`
	LiteScore         *float64         `json:"lite_score,omitempty"`
	LiteTag           LiteTag          `json:"lite_tag,omitempty"`
	PriceNowDec       *float64         `json:"price_now_dec,omitempty"`
	Barrier           *int             `json:"barrier,omitempty"`
	MapRoleInferred   MapRole          `json:"map_role_inferred,omitempty"`
	AvgSpeedMps       *float64         `json:"avg_speed_mps,omitempty"`
	DaysSinceRun      *float64         `json:"days_since_run,omitempty"`
	DistBucketStats   *DistBucketStats `json:"dist_bucket_stats,omitempty"`
	Rating            *float64         `json:"rating,omitempty"`
	AllocatedWeightKg *float64         `json:"allocated_weight_kg,omitempty"`
	BmDelta           *float64         `json:"bm_delta,omitempty"`
	FspPct            *float64         `json:"fsp_pct,omitempty"`
	Pos800            *int             `json:"pos800,omitempty"`
	Pos400            *int             `json:"pos400,omitempty"`
	JockeyWinPct12m   *float64         `json:"jockey_win_pct_12m,omitempty"`
	TrainerWinPct12m  *float64         `json:"trainer_win_pct_12m,omitempty"`
	GearHealthTag     string           `json:"gear_health_tag,omitempty"`
}

// GetLiteScore returns the lite score, defaulting to neutral 0.5
func (v *VectorInput) GetLiteScore() float64 {
	if v.LiteScore == nil {
		return 0.5
	}
	return *v.LiteScore
}

// EngineInputs is the race-level input object for the vector builder
type EngineInputs struct {
	DistanceM         int           `json:"distance_m"`
	TrackConditionRaw string        `json:"track_condition_raw"`
	FieldSize         int           `json:"field_size"`
	Runners           []VectorInput `json:"runners"`
}
