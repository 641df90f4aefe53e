package pro

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/aturoa13699-lab/TURF-ENGINE/internal/engine"
	"github.com/aturoa13699-lab/TURF-ENGINE/internal/models"
)

const neutral = 0.5

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// marketProbs recomputes market probabilities from valid prices. When no
// price is valid every runner gets a uniform 1/n; runners without a valid
// price in a priced field get 0.
func marketProbs(runners []models.VectorInput) map[int]float64 {
	probs := make(map[int]float64, len(runners))
	total := 0.0
	validCount := 0
	for _, r := range runners {
		if models.ValidPrice(r.PriceNowDec) {
			total += 1.0 / *r.PriceNowDec
			validCount++
		}
	}
	if validCount == 0 {
		n := float64(len(runners))
		if n == 0 {
			n = 1
		}
		for _, r := range runners {
			probs[r.RunnerNumber] = 1.0 / n
		}
		return probs
	}
	for _, r := range runners {
		if models.ValidPrice(r.PriceNowDec) {
			probs[r.RunnerNumber] = (1.0 / *r.PriceNowDec) / total
		} else {
			probs[r.RunnerNumber] = 0
		}
	}
	return probs
}

// barrierPcts ranks valid barriers into percentiles, defaulting to 0.5
func barrierPcts(runners []models.VectorInput) map[int]float64 {
	type entry struct{ number, barrier int }
	present := make([]entry, 0, len(runners))
	pct := make(map[int]float64, len(runners))
	for _, r := range runners {
		pct[r.RunnerNumber] = neutral
		if r.Barrier != nil && *r.Barrier >= 1 {
			present = append(present, entry{number: r.RunnerNumber, barrier: *r.Barrier})
		}
	}
	if len(present) == 0 {
		return pct
	}
	sort.Slice(present, func(i, j int) bool {
		if present[i].barrier != present[j].barrier {
			return present[i].barrier < present[j].barrier
		}
		return present[i].number < present[j].number
	})
	denom := float64(len(present) - 1)
	if denom < 1 {
		denom = 1
	}
	for rank, e := range present {
		pct[e.number] = float64(rank) / denom
	}
	return pct
}

// speedNorms min-max scales valid speeds into [0,1]; fields with fewer than
// three valid speeds are neutralized to 0.5.
func speedNorms(runners []models.VectorInput) map[int]float64 {
	norms := make(map[int]float64, len(runners))
	for _, r := range runners {
		norms[r.RunnerNumber] = neutral
	}
	type entry struct {
		number int
		speed  float64
	}
	valid := make([]entry, 0, len(runners))
	for _, r := range runners {
		if models.ValidSpeed(r.AvgSpeedMps) {
			valid = append(valid, entry{number: r.RunnerNumber, speed: *r.AvgSpeedMps})
		}
	}
	if len(valid) < 3 {
		return norms
	}
	vmin, vmax := valid[0].speed, valid[0].speed
	for _, e := range valid[1:] {
		if e.speed < vmin {
			vmin = e.speed
		}
		if e.speed > vmax {
			vmax = e.speed
		}
	}
	denom := vmax - vmin
	if denom <= 0 {
		denom = 1
	}
	for _, e := range valid {
		norms[e.number] = (e.speed - vmin) / denom
	}
	return norms
}

func mapRoleOnehot(role models.MapRole) [models.MapRoleSlots]int {
	var arr [models.MapRoleSlots]int
	idx := models.MapRoleSlots - 1
	switch models.MapRole(strings.ToUpper(string(role))) {
	case models.MapRoleLead:
		idx = 0
	case models.MapRoleOnPace:
		idx = 1
	case models.MapRoleMid:
		idx = 2
	case models.MapRoleBack:
		idx = 3
	}
	arr[idx] = 1
	return arr
}

// trackConditionOnehot matches the raw condition string against known
// keywords, case-insensitively, falling back to the UNKNOWN slot.
func trackConditionOnehot(raw string) [models.TrackConditionSlots]int {
	var arr [models.TrackConditionSlots]int
	upper := strings.ToUpper(raw)
	idx := models.TrackUnknown
	switch {
	case strings.Contains(upper, "FIRM"):
		idx = models.TrackFirm
	case strings.Contains(upper, "GOOD"):
		idx = models.TrackGood
	case strings.Contains(upper, "SOFT"):
		idx = models.TrackSoft
	case strings.Contains(upper, "HEAVY"):
		idx = models.TrackHeavy
	case strings.Contains(upper, "SYN"), strings.Contains(upper, "POLY"), strings.Contains(upper, "TAPETA"):
		idx = models.TrackSynth
	}
	arr[idx] = 1
	return arr
}

func daysSinceRunNorm(days *float64) float64 {
	if days == nil || *days < 0 || !finite(*days) {
		return neutral
	}
	return engine.Clamp(*days/120.0, 0, 1)
}

func distanceSuitNorm(stats *models.DistBucketStats) float64 {
	if stats == nil {
		return neutral
	}
	starts := stats.Starts
	if starts < 1 {
		starts = 1
	}
	return engine.Clamp(float64(stats.Placed)/float64(starts), 0, 1)
}

func weightEffNorm(rating, weight *float64) float64 {
	if rating == nil || weight == nil || *weight <= 0 || !finite(*rating) {
		return neutral
	}
	eff := *rating / *weight
	return 0.5 + engine.Clamp(eff, -3, 3)/6.0
}

// classDeltaNorm converts a benchmark delta into [0,1]: a big class drop
// (bm_delta <= -6) saturates at 1, a big rise at 0.
func classDeltaNorm(bmDelta *float64) float64 {
	if bmDelta == nil || !finite(*bmDelta) {
		return neutral
	}
	if *bmDelta <= -6 {
		return 1.0
	}
	if *bmDelta >= 6 {
		return 0.0
	}
	return engine.Clamp(0.5-(*bmDelta/12.0), 0, 1)
}

func last600EffNorm(fspPct *float64) float64 {
	if fspPct == nil || !finite(*fspPct) {
		return neutral
	}
	return engine.Clamp(0.50+0.0033*(*fspPct-100.0), 0, 1)
}

func posDeltaNorm(pos800, pos400 *int, fieldSize int) float64 {
	if pos800 == nil || pos400 == nil || fieldSize == 0 {
		return neutral
	}
	denom := fieldSize - 1
	if denom < 1 {
		denom = 1
	}
	delta := float64(*pos800-*pos400) / float64(denom)
	return engine.Clamp(0.5+0.5*delta, 0, 1)
}

func strikeRateNorm(rate *float64) float64 {
	if rate == nil {
		return neutral
	}
	return engine.Clamp(*rate/0.30, 0, 1)
}

func gearHealthNorm(tag string) float64 {
	switch strings.ToLower(tag) {
	case "bad":
		return 0.25
	case "positive":
		return 0.75
	default:
		return neutral
	}
}

// BuildRunnerVector expands engine inputs into the runner_vector.v1 payload:
// one fixed-schema feature vector per runner plus a SHA-256 checksum of the
// canonicalized vector list for provenance.
func BuildRunnerVector(inputs models.EngineInputs) (*models.RunnerVectorPayload, error) {
	fieldSize := inputs.FieldSize
	if fieldSize == 0 {
		fieldSize = len(inputs.Runners)
	}

	market := marketProbs(inputs.Runners)
	barriers := barrierPcts(inputs.Runners)
	speeds := speedNorms(inputs.Runners)
	trackOnehot := trackConditionOnehot(inputs.TrackConditionRaw)

	vectors := make([]models.RunnerVector, 0, len(inputs.Runners))
	for _, r := range inputs.Runners {
		x := models.FeatureVector{
			MarketProb:           market[r.RunnerNumber],
			LiteScore:            engine.Clamp(r.GetLiteScore(), 0, 1),
			MapRoleOnehot:        mapRoleOnehot(r.MapRoleInferred),
			BarrierPct:           barriers[r.RunnerNumber],
			SpeedNorm:            speeds[r.RunnerNumber],
			DaysSinceRunNorm:     daysSinceRunNorm(r.DaysSinceRun),
			FieldSizeNorm:        engine.Clamp(float64(fieldSize-2)/16.0, 0, 1),
			DistanceSuitNorm:     distanceSuitNorm(r.DistBucketStats),
			TrackConditionOnehot: trackOnehot,
			WeightEffNorm:        weightEffNorm(r.Rating, r.AllocatedWeightKg),
			ClassDeltaNorm:       classDeltaNorm(r.BmDelta),
			Last600EffNorm:       last600EffNorm(r.FspPct),
			PosDeltaNorm:         posDeltaNorm(r.Pos800, r.Pos400, fieldSize),
			JockeySRNorm:         strikeRateNorm(r.JockeyWinPct12m),
			TrainerSRNorm:        strikeRateNorm(r.TrainerWinPct12m),
			GearHealthNorm:       gearHealthNorm(r.GearHealthTag),
		}
		vectors = append(vectors, models.RunnerVector{RunnerNumber: r.RunnerNumber, X: x})
	}

	checksum, err := engine.HashCanonical(map[string]any{"runners": vectors})
	if err != nil {
		return nil, fmt.Errorf("vector checksum: %w", err)
	}
	return &models.RunnerVectorPayload{
		Runners: vectors,
		Debug:   models.VectorDebug{Checksum: checksum},
	}, nil
}

// EngineInputsFromStakeCard reconstructs vector-builder inputs from the first
// race of a compiled stake card.
func EngineInputsFromStakeCard(card *models.StakeCard) models.EngineInputs {
	inputs := models.EngineInputs{
		TrackConditionRaw: card.Meeting.TrackConditionRaw,
	}
	if len(card.Races) == 0 {
		return inputs
	}
	race := card.Races[0]
	inputs.DistanceM = race.DistanceM
	inputs.FieldSize = len(race.Runners)
	inputs.Runners = make([]models.VectorInput, 0, len(race.Runners))
	for _, runner := range race.Runners {
		score := runner.LiteScore
		var days *float64
		if runner.DaysSinceRun != nil {
			d := float64(*runner.DaysSinceRun)
			days = &d
		}
		inputs.Runners = append(inputs.Runners, models.VectorInput{
			RunnerNumber:    runner.RunnerNumber,
			LiteScore:       &score,
			LiteTag:         runner.LiteTag,
			PriceNowDec:     runner.Price(),
			Barrier:         runner.Barrier,
			MapRoleInferred: runner.MapRoleInferred,
			AvgSpeedMps:     runner.AvgSpeedMps,
			DaysSinceRun:    days,
		})
	}
	return inputs
}
