package insights

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aturoa13699-lab/TURF-ENGINE/internal/models"
)

// Options selects which runner insight groups to derive
type Options struct {
	Summary bool
	Fitness bool
	Risk    bool
}

// ApplyRunnerInsights derives fitness flags, risk tags and a narrative
// summary for a runner card. Only the insight fields are written; forecast
// and Lite fields are untouched.
func ApplyRunnerInsights(runner *models.RunnerCard, opts Options) {
	price := runner.Price()
	var winProb, certainty *float64
	if f := runner.Forecast; f != nil {
		winProb = &f.WinProb
		certainty = &f.Certainty
	}

	if opts.Fitness {
		runner.FitnessFlags = fitnessFlags(runner)
	}

	profile := ""
	if opts.Risk {
		profile = RiskProfile(winProb, price)
		runner.RiskTags = riskTags(profile, certainty, price)
		if profile != "" {
			runner.RiskProfile = profile
		}
	}

	if opts.Summary {
		runner.Summary = narrative(runner, profile, winProb)
	}
}

func fitnessFlags(runner *models.RunnerCard) []string {
	var flags []string
	if runner.Barrier != nil {
		if *runner.Barrier <= 3 {
			flags = append(flags, "GOOD_BARRIER")
		} else if *runner.Barrier >= 10 {
			flags = append(flags, "WIDE_BARRIER")
		}
	}
	switch runner.MapRoleInferred {
	case models.MapRoleLead:
		flags = append(flags, "LIKELY_LEADER")
	case models.MapRoleOnPace:
		flags = append(flags, "ON_PACE_PATTERN")
	}
	if runner.DaysSinceRun != nil {
		if *runner.DaysSinceRun <= 21 {
			flags = append(flags, "RECENT_RUN")
		} else if *runner.DaysSinceRun >= 60 {
			flags = append(flags, "LONG_BREAK")
		}
	}
	if runner.AvgSpeedMps != nil && *runner.AvgSpeedMps >= 17.5 {
		flags = append(flags, "HIGH_SPEED")
	}
	sort.Strings(flags)
	return flags
}

func riskTags(profile string, certainty, price *float64) []string {
	var tags []string
	if profile != "" {
		tags = append(tags, profile)
	}
	if certainty != nil && *certainty < 0.70 {
		tags = append(tags, "LOW_CERTAINTY")
	}
	if price != nil && *price >= 15.0 {
		tags = append(tags, "LONGSHOT")
	}
	sort.Strings(tags)
	return tags
}

func narrative(runner *models.RunnerCard, profile string, winProb *float64) string {
	var parts []string
	switch runner.MapRoleInferred {
	case models.MapRoleLead:
		parts = append(parts, "Likely leader pattern")
	case models.MapRoleOnPace:
		parts = append(parts, "On-pace pattern")
	case models.MapRoleMid:
		parts = append(parts, "Midfield pattern")
	case models.MapRoleBack:
		parts = append(parts, "Get-back pattern")
	}

	if runner.Barrier != nil {
		switch {
		case *runner.Barrier <= 3:
			parts = append(parts, fmt.Sprintf("inside draw (barrier %d)", *runner.Barrier))
		case *runner.Barrier >= 10:
			parts = append(parts, fmt.Sprintf("wide draw (barrier %d)", *runner.Barrier))
		default:
			parts = append(parts, fmt.Sprintf("barrier %d", *runner.Barrier))
		}
	}

	if profile != "" {
		parts = append(parts, fmt.Sprintf("risk_profile=%s", profile))
	}
	if winProb != nil {
		parts = append(parts, fmt.Sprintf("win_prob=%.2f", *winProb))
	}

	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "; ") + "."
}

// DeriveTrapRace is the conservative race-level trap heuristic: any sign of
// degraded inputs, low-certainty concentration, back-marker clustering,
// barrier bimodality or missing prices marks the race as a trap.
func DeriveTrapRace(race models.RaceCard, ctx models.EngineContext) bool {
	if ctx.DegradeMode != "" && ctx.DegradeMode != models.DegradeModeNormal {
		return true
	}
	if len(ctx.Warnings) > 0 {
		return true
	}
	if len(race.Runners) == 0 {
		return false
	}

	n := len(race.Runners)
	var back, inside, wide, missingPrice, lowCertainty, certaintySeen int
	for _, runner := range race.Runners {
		if f := runner.Forecast; f != nil {
			certaintySeen++
			if f.Certainty < 0.70 {
				lowCertainty++
			}
		}
		if strings.Contains(string(runner.MapRoleInferred), "BACK") {
			back++
		}
		if runner.Barrier != nil {
			if *runner.Barrier <= 2 {
				inside++
			}
			if *runner.Barrier >= 10 {
				wide++
			}
		}
		if runner.OddsMinimal == nil {
			missingPrice++
		}
	}

	third := n / 3
	if third < 3 {
		third = 3
	}
	if certaintySeen > 0 && float64(lowCertainty)/float64(certaintySeen) >= 0.50 {
		return true
	}
	if n >= 10 && back >= third {
		return true
	}
	if n >= 12 && inside >= 2 && wide >= 2 {
		return true
	}
	if missingPrice >= third {
		return true
	}
	return false
}
