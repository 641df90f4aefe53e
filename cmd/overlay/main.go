// Package main provides the entry point for the PRO overlay CLI.
package main

import (
	"errors"
	"flag"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/aturoa13699-lab/TURF-ENGINE/internal/config"
	"github.com/aturoa13699-lab/TURF-ENGINE/internal/logger"
	"github.com/aturoa13699-lab/TURF-ENGINE/internal/models"
	"github.com/aturoa13699-lab/TURF-ENGINE/internal/pro"
	"github.com/aturoa13699-lab/TURF-ENGINE/internal/report"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		cardPath   = flag.String("card", "", "Path to a compiled stake card JSON")
		inputsPath = flag.String("inputs", "", "Optional enriched engine inputs JSON for full feature vectors")
		output     = flag.String("output", "./output/stake_card_pro.json", "Output path for the overlaid stake card")
		vectorOut  = flag.String("vectors", "", "Optional output path for the runner vector payload")
	)
	flag.Parse()

	cfg := loadConfig(*configPath)
	log := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	runID := uuid.New().String()

	if *cardPath == "" {
		log.Fatal("A stake card is required, pass -card")
	}

	var card models.StakeCard
	if err := report.ReadJSON(*cardPath, &card); err != nil {
		log.Fatalf("Failed to load stake card: %v", err)
	}

	overlay := pro.NewOverlay(log)
	overlay.Tau = cfg.Overlay.Tau

	payload, forecasts, err := buildForecasts(overlay, &card, *inputsPath)
	if err != nil {
		log.Fatalf("Overlay failed: %v", err)
	}

	opts := pro.FeatureOptions{
		EVBands:          cfg.Overlay.EnableEVBands,
		RaceSummary:      cfg.Overlay.EnableRaceSummary,
		RunnerNarratives: cfg.Overlay.EnableRunnerNarratives,
		RunnerFitness:    cfg.Overlay.EnableRunnerFitness,
		RunnerRisk:       cfg.Overlay.EnableRunnerRisk,
		TrapRace:         cfg.Overlay.EnableTrapRace,
	}
	out := overlay.Apply(&card, payload, forecasts, opts)

	if err := report.WriteJSON(*output, out); err != nil {
		log.Fatalf("Failed to write overlaid stake card: %v", err)
	}
	if *vectorOut != "" {
		if err := report.WriteJSON(*vectorOut, payload); err != nil {
			log.Fatalf("Failed to write vector payload: %v", err)
		}
	}

	log.WithFields(logrus.Fields{
		"run_id":     runID,
		"meeting_id": out.Meeting.MeetingID,
		"runners":    len(forecasts),
		"checksum":   payload.Debug.Checksum,
		"output":     *output,
	}).Info("PRO overlay written")
}

// buildForecasts rebuilds vectors from the card alone, or from the enriched
// inputs file when one is supplied.
func buildForecasts(
	overlay *pro.Overlay,
	card *models.StakeCard,
	inputsPath string,
) (*models.RunnerVectorPayload, map[int]*models.Forecast, error) {
	if inputsPath == "" {
		return overlay.FromStakeCard(card)
	}

	var inputs models.EngineInputs
	if err := report.ReadJSON(inputsPath, &inputs); err != nil {
		return nil, nil, err
	}
	payload, err := pro.BuildRunnerVector(inputs)
	if err != nil {
		return nil, nil, err
	}

	prices := make(map[int]*float64)
	if len(card.Races) > 0 {
		for _, runner := range card.Races[0].Runners {
			prices[runner.RunnerNumber] = runner.Price()
		}
	}
	forecasts := overlay.Forecasts(
		payload.Runners,
		prices,
		card.EngineContext.DegradeMode,
		card.EngineContext.Warnings,
	)
	return payload, forecasts, nil
}

func loadConfig(path string) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config.Default()
		}
		logrus.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}
