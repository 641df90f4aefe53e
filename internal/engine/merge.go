package engine

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/aturoa13699-lab/TURF-ENGINE/internal/models"
)

// OddsQuote is a single runner price captured from an odds snapshot
type OddsQuote struct {
	RunnerName  string   `json:"runner_name"`
	PriceNowDec *float64 `json:"price_now_dec"`
}

// NormalizeOdds parses a decimal odds string into a price pointer, returning
// nil for anything that is not a positive decimal number.
func NormalizeOdds(oddsStr string) *float64 {
	oddsStr = strings.TrimSpace(oddsStr)
	if oddsStr == "" {
		return nil
	}
	d, err := decimal.NewFromString(oddsStr)
	if err != nil || !d.GreaterThan(decimal.Zero) {
		return nil
	}
	price, _ := d.Float64()
	return &price
}

// nameKey normalizes a runner name for joining odds to runner rows
func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// MergeOdds joins an odds snapshot into runner rows by normalized runner
// name. Runners with no matching quote keep their existing price and are
// reported via a JOIN_MISS warning for the compiler to surface.
func MergeOdds(runners []models.RunnerInput, quotes []OddsQuote) ([]models.RunnerInput, []models.Warning) {
	prices := make(map[string]*float64, len(quotes))
	for _, q := range quotes {
		prices[nameKey(q.RunnerName)] = q.PriceNowDec
	}

	merged := make([]models.RunnerInput, len(runners))
	copy(merged, runners)

	missed := false
	for i := range merged {
		price, ok := prices[nameKey(merged[i].RunnerName)]
		if !ok {
			missed = true
			continue
		}
		if price != nil {
			p := *price
			merged[i].PriceNowDec = &p
		}
	}

	var warnings []models.Warning
	if missed {
		warnings = append(warnings, models.WarningJoinMiss)
	}
	return merged, warnings
}
