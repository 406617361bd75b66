package analytics

import (
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/ukydev/fleet-insights/internal/models"
)

// Summary holds fleet-wide scalar aggregates. Averages are nil when the
// input is empty: aggregating zero records yields "no value", not a failure.
type Summary struct {
	Count          int      `json:"count"`
	DistinctMakes  int      `json:"distinct_makes"`
	DistinctModels int      `json:"distinct_models"`
	AvgRangeKm     *float64 `json:"avg_range_km"`
	AvgBatteryKWh  *float64 `json:"avg_battery_kwh"`
	AvgConsumption *float64 `json:"avg_consumption_kwh_per_100km"`
}

// Summarize computes fleet-wide counts and averages over the full record set.
func Summarize(records []models.VehicleRecord) Summary {
	s := Summary{Count: len(records)}
	if len(records) == 0 {
		return s
	}

	makes := make(map[string]bool)
	mdls := make(map[string]bool)
	ranges := make([]float64, 0, len(records))
	caps := make([]float64, 0, len(records))
	cons := make([]float64, 0, len(records))
	for _, r := range records {
		makes[r.Make] = true
		mdls[r.Make+"\x00"+r.Model] = true
		ranges = append(ranges, r.RangeKm)
		caps = append(caps, r.BatteryCapacityKWh)
		cons = append(cons, r.ConsumptionKWhPer100Km)
	}

	s.DistinctMakes = len(makes)
	s.DistinctModels = len(mdls)
	s.AvgRangeKm = meanOf(ranges)
	s.AvgBatteryKWh = meanOf(caps)
	s.AvgConsumption = meanOf(cons)
	return s
}

func meanOf(values []float64) *float64 {
	m, err := stats.Mean(values)
	if err != nil {
		return nil
	}
	return &m
}

// GroupStat is the rollup for one group: record count plus min/avg/max/sum of
// the chosen numeric field. The numeric aggregates are nil when no record in
// the group produced a usable value (e.g. every value was guarded to nil).
type GroupStat struct {
	Key   string   `json:"key"`
	Count int      `json:"count"`
	Min   *float64 `json:"min"`
	Avg   *float64 `json:"avg"`
	Max   *float64 `json:"max"`
	Sum   *float64 `json:"sum"`
}

// GroupOrder controls the ordering of GroupBy output.
type GroupOrder int

const (
	ByKey GroupOrder = iota
	ByAvgAsc
	ByAvgDesc
	ByCountDesc
	BySumDesc
)

// GroupBy partitions records by key and computes count/min/avg/max/sum of the
// value selector per group. Every record lands in exactly one group. A nil
// value (guarded metric) still counts toward Count but is excluded from the
// numeric aggregates. Output ordering is controlled by order; ties and the
// ByKey mode sort lexicographically on the key so results are deterministic.
func GroupBy(records []models.VehicleRecord, key func(models.VehicleRecord) string, value func(models.VehicleRecord) *float64, order GroupOrder) []GroupStat {
	grouped := make(map[string][]float64)
	counts := make(map[string]int)
	var keys []string
	for _, r := range records {
		k := key(r)
		if _, seen := counts[k]; !seen {
			keys = append(keys, k)
		}
		counts[k]++
		if v := value(r); v != nil {
			grouped[k] = append(grouped[k], *v)
		}
	}

	out := make([]GroupStat, 0, len(keys))
	for _, k := range keys {
		g := GroupStat{Key: k, Count: counts[k]}
		if vals := grouped[k]; len(vals) > 0 {
			g.Min = minOf(vals)
			g.Avg = meanOf(vals)
			g.Max = maxOf(vals)
			g.Sum = sumOf(vals)
		}
		out = append(out, g)
	}
	sortGroups(out, order)
	return out
}

func minOf(values []float64) *float64 {
	m, err := stats.Min(values)
	if err != nil {
		return nil
	}
	return &m
}

func maxOf(values []float64) *float64 {
	m, err := stats.Max(values)
	if err != nil {
		return nil
	}
	return &m
}

func sumOf(values []float64) *float64 {
	m, err := stats.Sum(values)
	if err != nil {
		return nil
	}
	return &m
}

func sortGroups(groups []GroupStat, order GroupOrder) {
	switch order {
	case ByAvgAsc:
		sort.SliceStable(groups, func(i, j int) bool { return lessPtr(groups[i].Avg, groups[j].Avg) })
	case ByAvgDesc:
		sort.SliceStable(groups, func(i, j int) bool { return lessPtr(groups[j].Avg, groups[i].Avg) })
	case ByCountDesc:
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Count > groups[j].Count })
	case BySumDesc:
		sort.SliceStable(groups, func(i, j int) bool { return lessPtr(groups[j].Sum, groups[i].Sum) })
	default:
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
	}
}

// lessPtr orders nil aggregates after any concrete value.
func lessPtr(a, b *float64) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return *a < *b
}

// TopN returns at most limit records satisfying the predicate, ordered by
// sortKey. The sort is stable; ties keep input order, so results are
// deterministic. desc selects descending order. limit <= 0 means no limit.
func TopN(records []models.VehicleRecord, predicate func(models.VehicleRecord) bool, sortKey func(models.VehicleRecord) float64, desc bool, limit int) []models.VehicleRecord {
	matched := make([]models.VehicleRecord, 0, len(records))
	for _, r := range records {
		if predicate == nil || predicate(r) {
			matched = append(matched, r)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if desc {
			return sortKey(matched[i]) > sortKey(matched[j])
		}
		return sortKey(matched[i]) < sortKey(matched[j])
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}

// DistinctValues returns the distinct values of a categorical selector in
// first-seen order. Used by reports that must group on the values actually
// present rather than a hardcoded enum.
func DistinctValues(records []models.VehicleRecord, key func(models.VehicleRecord) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		k := key(r)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
