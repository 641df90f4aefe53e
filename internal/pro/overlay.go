package pro

import (
	"github.com/sirupsen/logrus"

	"github.com/aturoa13699-lab/TURF-ENGINE/internal/engine"
	"github.com/aturoa13699-lab/TURF-ENGINE/internal/insights"
	"github.com/aturoa13699-lab/TURF-ENGINE/internal/metrics"
	"github.com/aturoa13699-lab/TURF-ENGINE/internal/models"
)

// OverlayWriterPro identifies the fixed-coefficient logistic overlay writer
const OverlayWriterPro = "PRO_OVERLAY_LOGIT_WIN_PLACE_V0"

// FeatureOptions gates optional derived fields written during overlay
// application. All options default to off to preserve Lite determinism.
type FeatureOptions struct {
	EVBands          bool
	RaceSummary      bool
	RunnerNarratives bool
	RunnerFitness    bool
	RunnerRisk       bool
	TrapRace         bool
}

// Overlay applies the LOGIT_WIN_PLACE_v0 model to runner vectors
type Overlay struct {
	Coeffs Coefficients
	Tau    float64
	logger *logrus.Logger
}

// NewOverlay creates an overlay with the default coefficient table and tau
func NewOverlay(logger *logrus.Logger) *Overlay {
	if logger == nil {
		logger = logrus.New()
	}
	return &Overlay{
		Coeffs: DefaultCoefficients(),
		Tau:    engine.BaseTau,
		logger: logger,
	}
}

// Forecasts computes calibrated win/place probabilities, value edge and EV
// for every runner vector. Win probabilities sum to 1 by construction of the
// temperature softmax.
func (o *Overlay) Forecasts(
	vectors []models.RunnerVector,
	prices map[int]*float64,
	mode models.DegradeMode,
	warnings []models.Warning,
) map[int]*models.Forecast {
	logits := make([]float64, len(vectors))
	for i, rv := range vectors {
		logits[i] = engine.Sigmoid(o.Coeffs.Score(rv.X))
	}
	win := engine.Softmax(logits, o.Tau)
	place := engine.PlaceProbabilities(win)
	certainty := engine.CertaintyFor(mode, warnings)

	forecasts := make(map[int]*models.Forecast, len(vectors))
	for i, rv := range vectors {
		marketProb := rv.X.MarketProb
		forecasts[rv.RunnerNumber] = &models.Forecast{
			WinProb:    win[i],
			PlaceProb:  place[i],
			MarketProb: marketProb,
			ValueEdge:  win[i] - marketProb,
			EV1U:       engine.ExpectedValue(win[i], prices[rv.RunnerNumber]),
			Certainty:  certainty,
		}
	}
	return forecasts
}

// Apply writes forecasts and flag-gated derived fields onto a deep copy of
// the stake card. The input card is never mutated; Lite scores, tags and
// ordering are untouched on the copy as well.
func (o *Overlay) Apply(
	card *models.StakeCard,
	payload *models.RunnerVectorPayload,
	forecasts map[int]*models.Forecast,
	opts FeatureOptions,
) *models.StakeCard {
	out := card.Clone()
	anyInsights := opts.RunnerNarratives || opts.RunnerFitness || opts.RunnerRisk

	for raceIdx := range out.Races {
		race := &out.Races[raceIdx]
		for i := range race.Runners {
			runner := &race.Runners[i]
			if forecast, ok := forecasts[runner.RunnerNumber]; ok {
				runner.Forecast = forecast.Clone()
				if opts.EVBands {
					insights.ApplyValueFields(runner)
				}
			}
			if anyInsights {
				insights.ApplyRunnerInsights(runner, insights.Options{
					Summary: opts.RunnerNarratives,
					Fitness: opts.RunnerFitness,
					Risk:    opts.RunnerRisk,
				})
			}
		}
		if opts.RaceSummary {
			summary := insights.SummarizeRace(*race)
			race.RaceSummary = &summary
		}
		if opts.TrapRace && insights.DeriveTrapRace(*race, out.EngineContext) {
			race.TrapRace = true
		}
	}

	writer := OverlayWriterPro
	out.EngineContext.Debug.OverlayWriter = &writer
	if payload != nil {
		checksum := payload.Debug.Checksum
		out.EngineContext.Debug.RunnerVectorChecksum = &checksum
	}
	out.EngineContext.ForecastParams = &models.ForecastParams{
		Tau:             o.Tau,
		Alpha:           nil,
		TierPriorPolicy: "none",
		MarketProbBasis: engine.MarketProbBasis,
		Notes:           OverlayWriterPro,
	}

	metrics.OverlaysTotal.WithLabelValues(OverlayWriterPro).Inc()
	o.logger.WithFields(logrus.Fields{
		"meeting_id": card.Meeting.MeetingID,
		"runners":    len(forecasts),
	}).Debug("Applied PRO overlay")

	return out
}

// FromStakeCard is the convenience path: rebuild vectors from a compiled
// stake card, run the overlay, and return both artifacts.
func (o *Overlay) FromStakeCard(card *models.StakeCard) (*models.RunnerVectorPayload, map[int]*models.Forecast, error) {
	payload, err := BuildRunnerVector(EngineInputsFromStakeCard(card))
	if err != nil {
		return nil, nil, err
	}

	prices := make(map[int]*float64)
	if len(card.Races) > 0 {
		for _, runner := range card.Races[0].Runners {
			prices[runner.RunnerNumber] = runner.Price()
		}
	}

	forecasts := o.Forecasts(
		payload.Runners,
		prices,
		card.EngineContext.DegradeMode,
		card.EngineContext.Warnings,
	)
	return payload, forecasts, nil
}
