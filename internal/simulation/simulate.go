package simulation

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/aturoa13699-lab/TURF-ENGINE/internal/metrics"
	"github.com/aturoa13699-lab/TURF-ENGINE/internal/models"
)

// Config configures a bankroll simulation run
type Config struct {
	Iters         int
	Seed          int64
	BankrollStart float64
	Stake         StakeParams
	// Workers fans iterations out across goroutines. Each iteration owns an
	// independent RNG stream derived from the seed, so the aggregate summary
	// is identical at any parallelism degree. Zero or one means sequential.
	Workers int
}

// subSeed derives an independent per-iteration RNG seed from the base seed
func subSeed(seed int64, iter int) int64 {
	const gamma uint64 = 0x9E3779B97F4A7C15
	return int64(uint64(seed) + uint64(iter+1)*gamma)
}

type iterationResult struct {
	final     float64
	simulated int
	skipped   int
}

func runIteration(bets []models.Bet, cfg Config, iter int) iterationResult {
	rng := rand.New(rand.NewSource(subSeed(cfg.Seed, iter)))
	bankroll := cfg.BankrollStart
	var res iterationResult
	for _, bet := range bets {
		stake := StakeForBet(cfg.Stake, bankroll, bet.WinProb, bet.OddsDec)
		if stake <= 0 || !bet.HasPriceProb() {
			res.skipped++
			continue
		}
		res.simulated++
		bankroll -= stake
		if rng.Float64() < *bet.WinProb {
			bankroll += stake * *bet.OddsDec
		}
	}
	res.final = roundCurrency(bankroll)
	return res
}

// SimulateBankroll runs the seeded Monte Carlo bankroll simulation: for each
// of Iters independent trials it walks the bets in input order, debits the
// stake and credits stake*odds on a uniform draw below win_prob. Bets lacking
// price or probability are skipped. Same seed and inputs produce a
// byte-identical serialized summary.
func SimulateBankroll(ctx context.Context, bets []models.Bet, cfg Config, logger *logrus.Logger) (*models.BankrollSimulationResult, error) {
	if logger == nil {
		logger = logrus.New()
	}
	start := time.Now()

	finals := make([]float64, 0, cfg.Iters)
	simulated := 0
	skipped := 0

	workers := cfg.Workers
	if workers <= 1 {
		for i := 0; i < cfg.Iters; i++ {
			res := runIteration(bets, cfg, i)
			finals = append(finals, res.final)
			simulated += res.simulated
			skipped += res.skipped
		}
	} else {
		results := make([]iterationResult, cfg.Iters)
		g, _ := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i := 0; i < cfg.Iters; i++ {
			i := i
			g.Go(func() error {
				results[i] = runIteration(bets, cfg, i)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		for _, res := range results {
			finals = append(finals, res.final)
			simulated += res.simulated
			skipped += res.skipped
		}
	}

	sort.Float64s(finals)
	summary := &models.BankrollSimulationResult{
		Config: models.SimulationConfigEcho{
			Seed:          cfg.Seed,
			Iters:         cfg.Iters,
			Policy:        cfg.Stake.Policy,
			BankrollStart: cfg.BankrollStart,
			FlatStake:     cfg.Stake.FlatStake,
			KellyFraction: cfg.Stake.KellyFraction,
			MaxStakeFrac:  cfg.Stake.MaxStakeFrac,
		},
		Counts: models.SimulationCounts{
			BetsConsidered:     len(bets),
			BetsSimulated:      simulated,
			BetsSkippedMissing: skipped,
		},
		Results: summarize(finals, cfg.BankrollStart),
	}

	metrics.RecordSimulation(time.Since(start).Seconds(), summary.Results.MeanFinal)
	logger.WithFields(logrus.Fields{
		"iters":          cfg.Iters,
		"seed":           cfg.Seed,
		"policy":         cfg.Stake.Policy,
		"bets":           len(bets),
		"mean_final":     summary.Results.MeanFinal,
		"bets_simulated": simulated,
	}).Debug("Bankroll simulation complete")

	return summary, nil
}

// summarize reports the final-bankroll distribution over the sorted sample.
// An empty sample collapses to the starting bankroll.
func summarize(sortedFinals []float64, bankrollStart float64) models.SimulationResults {
	if len(sortedFinals) == 0 {
		return models.SimulationResults{
			MeanFinal:   bankrollStart,
			MedianFinal: bankrollStart,
			MinFinal:    bankrollStart,
			MaxFinal:    bankrollStart,
		}
	}
	return models.SimulationResults{
		MeanFinal:   mean(sortedFinals),
		MedianFinal: median(sortedFinals),
		P05Final:    percentile(sortedFinals, 0.05),
		P95Final:    percentile(sortedFinals, 0.95),
		MinFinal:    sortedFinals[0],
		MaxFinal:    sortedFinals[len(sortedFinals)-1],
	}
}

func mean(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

// median expects a sorted sample
func median(values []float64) float64 {
	n := len(values)
	if n%2 == 1 {
		return values[n/2]
	}
	return (values[n/2-1] + values[n/2]) / 2
}

// percentile expects a sorted sample and indexes at int(n*pct), clamped
func percentile(values []float64, pct float64) float64 {
	if len(values) == 0 {
		return 0
	}
	idx := int(float64(len(values)) * pct)
	if idx < 0 {
		idx = 0
	}
	if idx >= len(values) {
		idx = len(values) - 1
	}
	return values[idx]
}
