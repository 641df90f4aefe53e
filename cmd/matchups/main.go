// Package main provides the entry point for the head-to-head matchup CLI.
package main

import (
	"errors"
	"flag"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/aturoa13699-lab/TURF-ENGINE/internal/config"
	"github.com/aturoa13699-lab/TURF-ENGINE/internal/insights"
	"github.com/aturoa13699-lab/TURF-ENGINE/internal/logger"
	"github.com/aturoa13699-lab/TURF-ENGINE/internal/models"
	"github.com/aturoa13699-lab/TURF-ENGINE/internal/report"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		cardPath   = flag.String("card", "", "Path to an overlaid stake card JSON")
		output     = flag.String("output", "./output/matchups.json", "Output path for matchups")
		raceNumber = flag.Int("race", 0, "Race number to analyze, 0 for all races")
		topN       = flag.Int("top", 5, "Number of top runners per race to pair")
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

	matchups := insights.GenerateMatchups(&card, *raceNumber, *topN)
	if err := report.WriteJSON(*output, matchups); err != nil {
		log.Fatalf("Failed to write matchups: %v", err)
	}

	log.WithFields(logrus.Fields{
		"run_id":     runID,
		"meeting_id": card.Meeting.MeetingID,
		"matchups":   len(matchups),
		"output":     *output,
	}).Info("Matchups written")
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
