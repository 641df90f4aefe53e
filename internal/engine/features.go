package engine

import (
	"math"
	"sort"

	"github.com/aturoa13699-lab/TURF-ENGINE/internal/models"
)

// Neutral is the default value for features that cannot be computed
const Neutral = 0.5

// roleBases map each inferred map role to its base advantage value
var roleBases = map[models.MapRole]float64{
	models.MapRoleLead:    0.62,
	models.MapRoleOnPace:  0.58,
	models.MapRoleMid:     0.50,
	models.MapRoleBack:    0.42,
	models.MapRoleUnknown: 0.50,
}

// Clamp bounds x to [lo, hi]
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// MarketRank converts valid decimal prices into normalized market ranks that
// sum to 1 across runners with a valid price. Invalid-price runners get 0,
// unless every price is invalid, in which case all runners get a uniform 1/n.
func MarketRank(runners []models.RunnerInput) map[int]float64 {
	ranks := make(map[int]float64, len(runners))
	total := 0.0
	validCount := 0
	for _, r := range runners {
		if r.HasValidPrice() {
			total += 1.0 / *r.PriceNowDec
			validCount++
		}
	}
	if validCount == 0 {
		n := float64(len(runners))
		if n == 0 {
			return ranks
		}
		for _, r := range runners {
			ranks[r.RunnerNumber] = 1.0 / n
		}
		return ranks
	}
	for _, r := range runners {
		if r.HasValidPrice() {
			ranks[r.RunnerNumber] = (1.0 / *r.PriceNowDec) / total
		} else {
			ranks[r.RunnerNumber] = 0
		}
	}
	return ranks
}

// BarrierPercentiles ranks runners with a valid barrier by (barrier,
// runner_number) and maps each to (rank-1)/max(1,n-1). Runners without a
// barrier default to 0.5.
func BarrierPercentiles(runners []models.RunnerInput) map[int]float64 {
	type entry struct {
		number  int
		barrier int
	}
	present := make([]entry, 0, len(runners))
	for _, r := range runners {
		if r.Barrier != nil && *r.Barrier >= 1 {
			present = append(present, entry{number: r.RunnerNumber, barrier: *r.Barrier})
		}
	}

	pct := make(map[int]float64, len(runners))
	for _, r := range runners {
		pct[r.RunnerNumber] = Neutral
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

// barrierDelta returns the map-role adjustment for a barrier percentile at a
// given race distance. Sprints reward inside draws more heavily.
func barrierDelta(distanceM int, pct float64) float64 {
	var inside, wide float64
	switch {
	case distanceM <= 1300:
		inside, wide = 0.03, -0.05
	case distanceM <= 1700:
		inside, wide = 0.02, -0.04
	default:
		inside, wide = 0.01, -0.03
	}
	if pct <= 0.25 {
		return inside
	}
	if pct >= 0.75 {
		return wide
	}
	return 0
}

// MapRoleAdvantage combines role base values with distance-bucketed barrier
// adjustments, mean-centers the result across the field around 0.5 and
// clamps to [0,1].
func MapRoleAdvantage(runners []models.RunnerInput, distanceM int) map[int]float64 {
	adjusted := make(map[int]float64, len(runners))
	if len(runners) == 0 {
		return adjusted
	}

	pctMap := BarrierPercentiles(runners)
	raw := make(map[int]float64, len(runners))
	sum := 0.0
	for _, r := range runners {
		base := roleBases[r.Role()]
		value := base + barrierDelta(distanceM, pctMap[r.RunnerNumber])
		raw[r.RunnerNumber] = value
		sum += value
	}
	mean := sum / float64(len(runners))
	for number, value := range raw {
		adjusted[number] = Clamp(0.5+(value-mean), 0, 1)
	}
	return adjusted
}

// SpeedProxy z-scores each valid average speed against the field mean/std,
// clamps to +/-3 sigma and rescales to [0,1] with 0.5 at the mean. If fewer
// than 3 runners have a valid speed the whole field is neutralized to 0.5.
func SpeedProxy(runners []models.RunnerInput) map[int]float64 {
	proxies := make(map[int]float64, len(runners))
	for _, r := range runners {
		proxies[r.RunnerNumber] = Neutral
	}

	type entry struct {
		number int
		speed  float64
	}
	valid := make([]entry, 0, len(runners))
	for _, r := range runners {
		if r.HasValidSpeed() {
			valid = append(valid, entry{number: r.RunnerNumber, speed: *r.AvgSpeedMps})
		}
	}
	if len(valid) < 3 {
		return proxies
	}

	mean := 0.0
	for _, e := range valid {
		mean += e.speed
	}
	mean /= float64(len(valid))

	variance := 0.0
	for _, e := range valid {
		diff := e.speed - mean
		variance += diff * diff
	}
	variance /= float64(len(valid))
	std := math.Sqrt(math.Max(variance, 1e-9))

	for _, e := range valid {
		z := Clamp((e.speed-mean)/std, -3, 3)
		proxies[e.number] = 0.5 + z/6.0
	}
	return proxies
}
