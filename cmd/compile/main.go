// Package main provides the entry point for the Lite stake card compiler CLI.
package main

import (
	"errors"
	"flag"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/aturoa13699-lab/TURF-ENGINE/internal/config"
	"github.com/aturoa13699-lab/TURF-ENGINE/internal/engine"
	"github.com/aturoa13699-lab/TURF-ENGINE/internal/logger"
	"github.com/aturoa13699-lab/TURF-ENGINE/internal/models"
	"github.com/aturoa13699-lab/TURF-ENGINE/internal/report"
)

// raceInput is the on-disk shape of a single captured race plus an optional
// sidecar odds feed to merge by runner name.
type raceInput struct {
	Meeting    models.Meeting       `json:"meeting"`
	RaceNumber int                  `json:"race_number"`
	DistanceM  int                  `json:"distance_m"`
	CapturedAt string               `json:"captured_at,omitempty"`
	Runners    []models.RunnerInput `json:"runners"`
	Odds       []engine.OddsQuote   `json:"odds,omitempty"`
}

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		inputPath  = flag.String("input", "", "Path to race input JSON")
		output     = flag.String("output", "./output/stake_card.json", "Output path for the stake card")
		overlay    = flag.Bool("overlay", false, "Attach the featureless forecast overlay")
	)
	flag.Parse()

	cfg := loadConfig(*configPath)
	log := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	runID := uuid.New().String()

	if *inputPath == "" {
		log.Fatal("An input file is required, pass -input")
	}

	var input raceInput
	if err := report.ReadJSON(*inputPath, &input); err != nil {
		log.Fatalf("Failed to load race input: %v", err)
	}

	runners := input.Runners
	var mergeWarnings []models.Warning
	if len(input.Odds) > 0 {
		runners, mergeWarnings = engine.MergeOdds(runners, input.Odds)
	}

	compiler := engine.NewCompiler(log)
	compiler.EngineSpecID = cfg.Engine.EngineSpecID
	compiler.EngineVersion = cfg.Engine.EngineVersion
	compiler.LiteVersion = cfg.Engine.LiteVersion

	card, _, err := compiler.CompileStakeCard(engine.CompileRequest{
		Meeting:        input.Meeting,
		RaceNumber:     input.RaceNumber,
		DistanceM:      input.DistanceM,
		Runners:        runners,
		CapturedAt:     input.CapturedAt,
		IncludeOverlay: *overlay || cfg.Engine.IncludeOverlay,
		ExtraWarnings:  mergeWarnings,
	})
	if err != nil {
		log.Fatalf("Compile failed: %v", err)
	}

	if err := report.WriteJSON(*output, card); err != nil {
		log.Fatalf("Failed to write stake card: %v", err)
	}

	log.WithFields(logrus.Fields{
		"run_id":       runID,
		"meeting_id":   card.Meeting.MeetingID,
		"degrade_mode": card.EngineContext.DegradeMode,
		"inputs_hash":  card.EngineContext.InputsHash,
		"output":       *output,
	}).Info("Stake card written")
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
