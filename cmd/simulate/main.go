// Package main provides the entry point for the bankroll simulator CLI.
package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/aturoa13699-lab/TURF-ENGINE/internal/config"
	"github.com/aturoa13699-lab/TURF-ENGINE/internal/health"
	"github.com/aturoa13699-lab/TURF-ENGINE/internal/logger"
	"github.com/aturoa13699-lab/TURF-ENGINE/internal/models"
	"github.com/aturoa13699-lab/TURF-ENGINE/internal/report"
	"github.com/aturoa13699-lab/TURF-ENGINE/internal/simulation"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		cardPath   = flag.String("card", "", "Path to an overlaid stake card JSON")
		output     = flag.String("output", "./output/simulation.json", "Output path for simulation results")
		iters      = flag.Int("iters", 0, "Override iteration count")
		seed       = flag.Int64("seed", 0, "Override RNG seed")
		policy     = flag.String("policy", "", "Override stake policy: flat, kelly, fractional_kelly")
	)
	flag.Parse()

	cfg := loadConfig(*configPath)
	log := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	runID := uuid.New().String()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.Metrics.Enabled {
		ops := health.NewServer(health.Config{
			ServiceName: cfg.App.Name,
			Version:     cfg.Engine.EngineVersion,
			Addr:        cfg.Metrics.Address,
			Logger:      log,
		})
		if err := ops.Start(ctx); err != nil {
			log.WithError(err).Warn("Failed to start ops server")
		}
	}

	if *cardPath == "" {
		log.Fatal("A stake card is required, pass -card")
	}

	var card models.StakeCard
	if err := report.ReadJSON(*cardPath, &card); err != nil {
		log.Fatalf("Failed to load stake card: %v", err)
	}

	simCfg := cfg.Simulation
	if *iters > 0 {
		simCfg.Iters = *iters
	}
	if *seed != 0 {
		simCfg.Seed = *seed
	}
	if *policy != "" {
		simCfg.Policy = *policy
	}

	bets := simulation.SelectBets(&card, simulation.SelectOptions{
		RequirePositiveEV: simCfg.RequirePositiveEV,
		MinEV:             simCfg.MinEV,
		MinEdge:           simCfg.MinEdge,
	})
	log.WithFields(logrus.Fields{
		"run_id":     runID,
		"meeting_id": card.Meeting.MeetingID,
		"bets":       len(bets),
	}).Info("Bets selected")

	result, err := simulation.SimulateBankroll(ctx, bets, simulation.Config{
		Iters:         simCfg.Iters,
		Seed:          simCfg.Seed,
		BankrollStart: simCfg.BankrollStart,
		Stake: simulation.StakeParams{
			Policy:        models.StakePolicy(simCfg.Policy),
			FlatStake:     simCfg.FlatStake,
			KellyFraction: simCfg.KellyFraction,
			MaxStakeFrac:  simCfg.MaxStakeFrac,
		},
		Workers: simCfg.Workers,
	}, log)
	if err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}

	if err := report.WriteJSON(*output, result); err != nil {
		log.Fatalf("Failed to write simulation results: %v", err)
	}

	log.WithFields(logrus.Fields{
		"run_id":     runID,
		"mean_final": result.Results.MeanFinal,
		"p05_final":  result.Results.P05Final,
		"p95_final":  result.Results.P95Final,
		"output":     *output,
	}).Info("Simulation written")
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
