// Package pro implements the runner vector builder and the fixed-coefficient
// LOGIT_WIN_PLACE_v0 overlay. The overlay is ordering-isolated: it only
// writes forecast and derived fields onto a deep copy of the stake card and
// never alters Lite scores, tags or runner ordering.
package pro

import "github.com/aturoa13699-lab/TURF-ENGINE/internal/models"

// Coefficients is the linear model applied to each runner's feature vector.
// It is an explicit, injectable value so alternate models can be tested
// without touching global state.
type Coefficients struct {
	B0                   float64                             `json:"b0"`
	MarketProb           float64                             `json:"market_prob"`
	LiteScore            float64                             `json:"lite_score"`
	BarrierPct           float64                             `json:"barrier_pct"`
	SpeedNorm            float64                             `json:"speed_norm"`
	DaysSinceRunNorm     float64                             `json:"days_since_run_norm"`
	FieldSizeNorm        float64                             `json:"field_size_norm"`
	DistanceSuitNorm     float64                             `json:"distance_suit_norm"`
	WeightEffNorm        float64                             `json:"weight_eff_norm"`
	ClassDeltaNorm       float64                             `json:"class_delta_norm"`
	Last600EffNorm       float64                             `json:"last600_eff_norm"`
	PosDeltaNorm         float64                             `json:"pos_delta_norm"`
	JockeySRNorm         float64                             `json:"jockey_sr_norm"`
	TrainerSRNorm        float64                             `json:"trainer_sr_norm"`
	GearHealthNorm       float64                             `json:"gear_health_norm"`
	MapRoleOnehot        [models.MapRoleSlots]float64        `json:"map_role_onehot"`
	TrackConditionOnehot [models.TrackConditionSlots]float64 `json:"track_condition_onehot"`
}

// DefaultCoefficients returns the fixed LOGIT_WIN_PLACE_v0 coefficient table
func DefaultCoefficients() Coefficients {
	return Coefficients{
		B0:                   -0.20,
		MarketProb:           1.40,
		LiteScore:            1.10,
		BarrierPct:           -0.25,
		SpeedNorm:            0.55,
		DaysSinceRunNorm:     -0.15,
		FieldSizeNorm:        -0.10,
		DistanceSuitNorm:     0.35,
		WeightEffNorm:        0.30,
		ClassDeltaNorm:       0.28,
		Last600EffNorm:       0.45,
		PosDeltaNorm:         0.20,
		JockeySRNorm:         0.18,
		TrainerSRNorm:        0.12,
		GearHealthNorm:       0.08,
		MapRoleOnehot:        [models.MapRoleSlots]float64{0.18, 0.10, 0.00, -0.12, 0.00},
		TrackConditionOnehot: [models.TrackConditionSlots]float64{0.05, 0.00, -0.03, -0.06, 0.00, 0.00},
	}
}

// Score computes the linear predictor z for a feature vector
func (c Coefficients) Score(x models.FeatureVector) float64 {
	z := c.B0
	z += c.MarketProb * x.MarketProb
	z += c.LiteScore * x.LiteScore
	z += c.BarrierPct * x.BarrierPct
	z += c.SpeedNorm * x.SpeedNorm
	z += c.DaysSinceRunNorm * x.DaysSinceRunNorm
	z += c.FieldSizeNorm * x.FieldSizeNorm
	z += c.DistanceSuitNorm * x.DistanceSuitNorm
	z += c.WeightEffNorm * x.WeightEffNorm
	z += c.ClassDeltaNorm * x.ClassDeltaNorm
	z += c.Last600EffNorm * x.Last600EffNorm
	z += c.PosDeltaNorm * x.PosDeltaNorm
	z += c.JockeySRNorm * x.JockeySRNorm
	z += c.TrainerSRNorm * x.TrainerSRNorm
	z += c.GearHealthNorm * x.GearHealthNorm
	for i := 0; i < models.MapRoleSlots; i++ {
		z += c.MapRoleOnehot[i] * float64(x.MapRoleOnehot[i])
	}
	for i := 0; i < models.TrackConditionSlots; i++ {
		z += c.TrackConditionOnehot[i] * float64(x.TrackConditionOnehot[i])
	}
	return z
}
