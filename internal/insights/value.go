// Package insights contains pure, stateless derivations over forecast fields:
// EV bands, markers, confidence classes, risk profiles, race summaries and
// head-to-head matchups. Nothing here mutates forecasts or Lite ordering.
package insights

import "github.com/aturoa13699-lab/TURF-ENGINE/internal/models"

// EV band thresholds
const (
	evBandA = 0.25
	evBandB = 0.10
	evBandD = -0.05
)

// EVBand grades an expected value into bands A..E; empty for missing EV
func EVBand(ev *float64) string {
	if ev == nil {
		return ""
	}
	switch {
	case *ev >= evBandA:
		return "A"
	case *ev >= evBandB:
		return "B"
	case *ev >= 0.0:
		return "C"
	case *ev >= evBandD:
		return "D"
	default:
		return "E"
	}
}

// EVMarker renders a value edge as a traffic-light marker
func EVMarker(valueEdge *float64) string {
	if valueEdge == nil {
		return ""
	}
	switch {
	case *valueEdge >= 0.05:
		return "\U0001F7E2" // green circle
	case *valueEdge <= -0.05:
		return "\U0001F534" // red circle
	default:
		return "⚪️" // white circle
	}
}

// ConfidenceClass maps certainty to HIGH/MEDIUM/LOW
func ConfidenceClass(certainty *float64) string {
	if certainty == nil {
		return ""
	}
	switch {
	case *certainty >= 0.90:
		return "HIGH"
	case *certainty >= 0.75:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// RiskProfile compares model win probability against the market-implied
// probability: VALUE when the model likes it at least 5 points more than the
// market, UNDERLAY when 5 points less, FAIR otherwise.
func RiskProfile(winProb, price *float64) string {
	if winProb == nil || price == nil || *price <= 1.0 {
		return ""
	}
	delta := *winProb - 1.0/(*price)
	switch {
	case delta >= 0.05:
		return "VALUE"
	case delta <= -0.05:
		return "UNDERLAY"
	default:
		return "FAIR"
	}
}

// ModelVsMarketAlert flags large overlay disagreements with the market
func ModelVsMarketAlert(valueEdge *float64) string {
	if valueEdge == nil {
		return ""
	}
	switch {
	case *valueEdge >= 0.08:
		return "overlay_positive"
	case *valueEdge <= -0.08:
		return "overlay_negative"
	default:
		return ""
	}
}

// ApplyValueFields derives the EV/value fields from a runner's forecast and
// price and writes them onto the runner card.
func ApplyValueFields(runner *models.RunnerCard) {
	var winProb, valueEdge, ev, certainty *float64
	if f := runner.Forecast; f != nil {
		winProb = &f.WinProb
		valueEdge = &f.ValueEdge
		ev = f.EV1U
		certainty = &f.Certainty
	}
	price := runner.Price()

	if ev != nil {
		v := *ev
		runner.EV = &v
	}
	runner.EVBand = EVBand(ev)
	runner.EVMarker = EVMarker(valueEdge)
	runner.ConfidenceClass = ConfidenceClass(certainty)
	runner.RiskProfile = RiskProfile(winProb, price)
	runner.ModelVsMarketAlert = ModelVsMarketAlert(valueEdge)
}
