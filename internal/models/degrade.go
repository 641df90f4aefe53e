package models

import "sort"

// DegradeMode classifies input data completeness for a compiled race
type DegradeMode string

const (
	DegradeModeNormal         DegradeMode = "NORMAL"
	DegradeModePartialSidecar DegradeMode = "PARTIAL_SIDECAR"
	DegradeModeMarketOnly     DegradeMode = "MARKET_ONLY"
)

// Warning flags emitted alongside the degrade mode
type Warning string

const (
	WarningSomePricesInvalid         Warning = "SOME_PRICES_INVALID"
	WarningAllPricesInvalid          Warning = "ALL_PRICES_INVALID"
	WarningFewValidSpeedsNeutralized Warning = "FEW_VALID_SPEEDS_NEUTRALIZED"
	WarningJoinMiss                  Warning = "JOIN_MISS"
)

// SortWarnings deduplicates and sorts warnings into their canonical order
func SortWarnings(warnings []Warning) []Warning {
	seen := make(map[Warning]struct{}, len(warnings))
	out := make([]Warning, 0, len(warnings))
	for _, w := range warnings {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// HasWarning reports whether the list contains any of the given warnings
func HasWarning(warnings []Warning, targets ...Warning) bool {
	for _, w := range warnings {
		for _, t := range targets {
			if w == t {
				return true
			}
		}
	}
	return false
}
