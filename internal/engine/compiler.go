package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/aturoa13699-lab/TURF-ENGINE/internal/metrics"
	"github.com/aturoa13699-lab/TURF-ENGINE/internal/models"
)

// Lite score weights and tag thresholds
const (
	weightMarketRank = 0.45
	weightMapAdv     = 0.35
	weightSpeedProxy = 0.20

	tagThresholdA = 0.68
	tagThresholdB = 0.58

	defaultDistanceM = 1200
)

// Engine identity defaults
const (
	DefaultEngineSpecID  = "TURF_ENGINE_LITE_AU"
	DefaultEngineVersion = "0.2.1p2"
	DefaultLiteVersion   = "0.2.1p2"
)

// CompileRequest carries everything needed to compile one race
type CompileRequest struct {
	Meeting        models.Meeting
	RaceNumber     int
	DistanceM      int
	Runners        []models.RunnerInput
	CapturedAt     string
	IncludeOverlay bool
	// ExtraWarnings lets upstream join steps surface problems (e.g. JOIN_MISS
	// from the odds merge) into the compiled engine context.
	ExtraWarnings []models.Warning
}

// Compiler produces deterministic stake cards from parsed race data
type Compiler struct {
	EngineSpecID  string
	EngineVersion string
	LiteVersion   string
	logger        *logrus.Logger
}

// NewCompiler creates a Lite compiler with default engine identity
func NewCompiler(logger *logrus.Logger) *Compiler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Compiler{
		EngineSpecID:  DefaultEngineSpecID,
		EngineVersion: DefaultEngineVersion,
		LiteVersion:   DefaultLiteVersion,
		logger:        logger,
	}
}

// liteTag classifies a lite score into its tier
func liteTag(score float64) models.LiteTag {
	if score >= tagThresholdA {
		return models.LiteTagA
	}
	if score >= tagThresholdB {
		return models.LiteTagB
	}
	return models.LiteTagPass
}

// classify derives warnings and the degrade mode from price/speed validity counts
func classify(runners []models.RunnerInput, extra []models.Warning) (models.DegradeMode, []models.Warning) {
	validPrices := 0
	validSpeeds := 0
	for _, r := range runners {
		if r.HasValidPrice() {
			validPrices++
		}
		if r.HasValidSpeed() {
			validSpeeds++
		}
	}
	n := len(runners)

	warnings := append([]models.Warning(nil), extra...)
	if validPrices < n {
		if validPrices > 0 {
			warnings = append(warnings, models.WarningSomePricesInvalid)
		} else {
			warnings = append(warnings, models.WarningAllPricesInvalid)
		}
	}
	if validSpeeds < 3 {
		warnings = append(warnings, models.WarningFewValidSpeedsNeutralized)
	}

	var mode models.DegradeMode
	switch {
	case validSpeeds == 0:
		mode = models.DegradeModeMarketOnly
	case validSpeeds < n || validPrices == 0:
		mode = models.DegradeModePartialSidecar
	default:
		mode = models.DegradeModeNormal
	}
	return mode, models.SortWarnings(warnings)
}

// CompileStakeCard normalizes features, scores runners, classifies degradation
// and assembles the stake card in tie-break order. Repeated calls on identical
// input produce byte-identical canonical JSON.
func (c *Compiler) CompileStakeCard(req CompileRequest) (*models.StakeCard, []models.RunnerOutput, error) {
	if len(req.Runners) == 0 {
		return nil, nil, fmt.Errorf("at least one runner is required")
	}
	seen := make(map[int]struct{}, len(req.Runners))
	for _, r := range req.Runners {
		if r.RunnerNumber <= 0 {
			return nil, nil, fmt.Errorf("runner %q has invalid runner number %d", r.RunnerName, r.RunnerNumber)
		}
		if _, dup := seen[r.RunnerNumber]; dup {
			return nil, nil, fmt.Errorf("duplicate runner number %d", r.RunnerNumber)
		}
		seen[r.RunnerNumber] = struct{}{}
	}

	distance := req.DistanceM
	if distance <= 0 {
		distance = defaultDistanceM
	}

	mode, warnings := classify(req.Runners, req.ExtraWarnings)
	marketRank := MarketRank(req.Runners)
	mapAdv := MapRoleAdvantage(req.Runners, distance)
	speedProxy := SpeedProxy(req.Runners)

	liteScores := make(map[int]float64, len(req.Runners))
	prices := make(map[int]*float64, len(req.Runners))
	outputs := make([]models.RunnerOutput, 0, len(req.Runners))
	for _, r := range req.Runners {
		score := Clamp(
			weightMarketRank*marketRank[r.RunnerNumber]+
				weightMapAdv*mapAdv[r.RunnerNumber]+
				weightSpeedProxy*speedProxy[r.RunnerNumber],
			0, 1)
		liteScores[r.RunnerNumber] = score
		prices[r.RunnerNumber] = r.PriceNowDec
		outputs = append(outputs, models.RunnerOutput{
			RunnerNumber: r.RunnerNumber,
			RunnerName:   r.RunnerName,
			LiteScore:    score,
			LiteTag:      liteTag(score),
			Components: models.LiteComponents{
				MarketRankN: marketRank[r.RunnerNumber],
				MapAdvN:     mapAdv[r.RunnerNumber],
				SpeedProxyN: speedProxy[r.RunnerNumber],
			},
			PriceNowDec: r.PriceNowDec,
		})
	}

	var forecasts map[int]*models.Forecast
	if req.IncludeOverlay {
		forecasts = FeaturelessOverlay(liteScores, marketRank, prices, mode, warnings)
		for i := range outputs {
			outputs[i].Forecast = forecasts[outputs[i].RunnerNumber]
		}
	}

	sortOutputs(outputs, prices)

	inputsHash, err := HashCanonical(map[string]any{
		"meeting":     req.Meeting,
		"race_number": req.RaceNumber,
		"distance_m":  distance,
		"runners":     req.Runners,
		"captured_at": req.CapturedAt,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("hash inputs: %w", err)
	}

	card := c.assembleCard(req, distance, mode, warnings, outputs, inputsHash)

	metrics.CompilesTotal.WithLabelValues(string(mode)).Inc()
	c.logger.WithFields(logrus.Fields{
		"meeting_id":   req.Meeting.MeetingID,
		"race_number":  req.RaceNumber,
		"runners":      len(req.Runners),
		"degrade_mode": mode,
		"warnings":     warnings,
	}).Debug("Compiled stake card")

	return card, outputs, nil
}

// sortOutputs applies the total tie-break chain: score desc, map advantage
// desc, market rank desc, speed proxy desc, price asc (missing = +Inf),
// runner number asc. Scores are rounded to 6 decimals before comparison.
func sortOutputs(outputs []models.RunnerOutput, prices map[int]*float64) {
	anchor := func(number int) float64 {
		if models.ValidPrice(prices[number]) {
			return *prices[number]
		}
		return math.Inf(1)
	}
	sort.SliceStable(outputs, func(i, j int) bool {
		a, b := outputs[i], outputs[j]
		if round6(a.LiteScore) != round6(b.LiteScore) {
			return round6(a.LiteScore) > round6(b.LiteScore)
		}
		if round6(a.Components.MapAdvN) != round6(b.Components.MapAdvN) {
			return round6(a.Components.MapAdvN) > round6(b.Components.MapAdvN)
		}
		if round6(a.Components.MarketRankN) != round6(b.Components.MarketRankN) {
			return round6(a.Components.MarketRankN) > round6(b.Components.MarketRankN)
		}
		if round6(a.Components.SpeedProxyN) != round6(b.Components.SpeedProxyN) {
			return round6(a.Components.SpeedProxyN) > round6(b.Components.SpeedProxyN)
		}
		if anchor(a.RunnerNumber) != anchor(b.RunnerNumber) {
			return anchor(a.RunnerNumber) < anchor(b.RunnerNumber)
		}
		return a.RunnerNumber < b.RunnerNumber
	})
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

func (c *Compiler) assembleCard(
	req CompileRequest,
	distance int,
	mode models.DegradeMode,
	warnings []models.Warning,
	outputs []models.RunnerOutput,
	inputsHash string,
) *models.StakeCard {
	inputsByNumber := make(map[int]models.RunnerInput, len(req.Runners))
	for _, r := range req.Runners {
		inputsByNumber[r.RunnerNumber] = r
	}

	runnerCards := make([]models.RunnerCard, 0, len(outputs))
	for _, out := range outputs {
		in := inputsByNumber[out.RunnerNumber]
		var odds *models.OddsMinimal
		if out.PriceNowDec != nil {
			odds = &models.OddsMinimal{PriceNowDec: *out.PriceNowDec}
		}
		runnerCards = append(runnerCards, models.RunnerCard{
			RunnerNumber:    out.RunnerNumber,
			RunnerName:      out.RunnerName,
			Barrier:         in.Barrier,
			MapRoleInferred: in.MapRoleInferred,
			AvgSpeedMps:     in.AvgSpeedMps,
			DaysSinceRun:    in.DaysSinceRun,
			LiteScore:       out.LiteScore,
			LiteTag:         out.LiteTag,
			LiteComponents:  out.Components,
			OddsMinimal:     odds,
			Forecast:        out.Forecast,
		})
	}

	var params *models.ForecastParams
	var writer *string
	if req.IncludeOverlay {
		alpha := overlayAlpha(mode)
		params = &models.ForecastParams{
			Tau:             overlayTau(mode, warnings),
			Alpha:           &alpha,
			MarketProbBasis: MarketProbBasis,
			Notes:           "overlay_only_featureless",
		}
		w := OverlayWriterLite
		writer = &w
	}

	meeting := req.Meeting
	if meeting.CapturedAt == "" {
		meeting.CapturedAt = req.CapturedAt
	}

	return &models.StakeCard{
		EngineContext: models.EngineContext{
			EngineSpecID:   c.EngineSpecID,
			EngineVersion:  c.EngineVersion,
			LiteVersion:    c.LiteVersion,
			DegradeMode:    mode,
			Warnings:       warnings,
			InputsHash:     inputsHash,
			ForecastParams: params,
			Debug:          models.DebugInfo{OverlayWriter: writer},
		},
		Meeting: meeting,
		Races: []models.RaceCard{{
			RaceNumber: req.RaceNumber,
			DistanceM:  distance,
			Runners:    runnerCards,
		}},
	}
}
