package models

// Certainty tiers derived from degrade mode and warnings
const (
	CertaintyFull    = 1.00
	CertaintyReduced = 0.80
	CertaintyLow     = 0.60
)

// Forecast holds calibrated win/place probabilities and value fields for a runner
type Forecast struct {
	WinProb    float64  `json:"win_prob"`
	PlaceProb  float64  `json:"place_prob"`
	MarketProb float64  `json:"market_prob"`
	ValueEdge  float64  `json:"value_edge"`
	EV1U       *float64 `json:"ev_1u"`
	Certainty  float64  `json:"certainty"`
}

// GetEV returns ev_1u or 0 if the runner had no valid price
func (f *Forecast) GetEV() float64 {
	if f == nil || f.EV1U == nil {
		return 0
	}
	return *f.EV1U
}

// Clone returns a deep copy of the forecast
func (f *Forecast) Clone() *Forecast {
	if f == nil {
		return nil
	}
	out := *f
	if f.EV1U != nil {
		ev := *f.EV1U
		out.EV1U = &ev
	}
	return &out
}
