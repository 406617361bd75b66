package reports

import (
	"sort"
	"strconv"

	"github.com/ukydev/fleet-insights/internal/analytics"
	"github.com/ukydev/fleet-insights/internal/models"
)

// Row maps a column name to its value. Nullable metrics are *float64 so an
// absent value serializes as JSON null rather than a fake zero.
type Row map[string]any

// Table is an ordered report result ready for an external presentation
// layer. Columns fixes the field order; the engine itself never renders.
type Table struct {
	Name    string   `json:"name"`
	Title   string   `json:"title"`
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Report is one named entry in the catalog. Run is a pure function of the
// dataset: same records in, same table out.
type Report struct {
	Name  string
	Title string
	Run   func([]models.VehicleRecord) Table
}

// Catalog returns all reports in presentation order.
func Catalog() []Report {
	return []Report{
		{"fleet_overview", "Fleet Overview", FleetOverview},
		{"avg_range_by_make", "Average Range by Make", AvgRangeByMake},
		{"top_models_per_region", "Top 5 Models per Region by Range", TopModelsPerRegion},
		{"range_trend_by_year", "Average Range Trend by Model Year", RangeTrendByYear},
		{"cumulative_co2_by_region", "Cumulative CO2 Saved by Region", CumulativeCO2ByRegion},
		{"resale_value_quartiles", "Resale Value Quartiles by Vehicle Type", ResaleValueQuartiles},
		{"type_mix_by_region", "Vehicle Type Mix by Region", TypeMixByRegion},
		{"efficiency_leaders", "Efficiency Leaders", EfficiencyLeaders},
		{"cost_per_km_by_region", "Charging Cost per km by Region", CostPerKmByRegion},
		{"battery_health_by_year", "Battery Health by Model Year", BatteryHealthByYear},
		{"charging_cost_by_region", "Monthly Charging Cost by Region", ChargingCostByRegion},
		{"consumption_by_type", "Energy Consumption by Vehicle Type", ConsumptionByType},
	}
}

// Get looks up a report by name.
func Get(name string) (Report, bool) {
	for _, r := range Catalog() {
		if r.Name == name {
			return r, true
		}
	}
	return Report{}, false
}

// FleetOverview is the single-row summary of the whole dataset.
func FleetOverview(records []models.VehicleRecord) Table {
	s := analytics.Summarize(records)
	return Table{
		Name:    "fleet_overview",
		Title:   "Fleet Overview",
		Columns: []string{"vehicle_count", "distinct_makes", "distinct_models", "avg_range_km", "avg_battery_kwh", "avg_consumption_kwh_per_100km"},
		Rows: []Row{{
			"vehicle_count":                 s.Count,
			"distinct_makes":                s.DistinctMakes,
			"distinct_models":               s.DistinctModels,
			"avg_range_km":                  s.AvgRangeKm,
			"avg_battery_kwh":               s.AvgBatteryKWh,
			"avg_consumption_kwh_per_100km": s.AvgConsumption,
		}},
	}
}

// AvgRangeByMake ranks makes by average range, best first, top 10.
func AvgRangeByMake(records []models.VehicleRecord) Table {
	groups := analytics.GroupBy(records,
		func(r models.VehicleRecord) string { return r.Make },
		func(r models.VehicleRecord) *float64 { v := r.RangeKm; return &v },
		analytics.ByAvgDesc)
	if len(groups) > 10 {
		groups = groups[:10]
	}

	t := Table{
		Name:    "avg_range_by_make",
		Title:   "Average Range by Make",
		Columns: []string{"make", "vehicle_count", "avg_range_km"},
	}
	for _, g := range groups {
		t.Rows = append(t.Rows, Row{"make": g.Key, "vehicle_count": g.Count, "avg_range_km": g.Avg})
	}
	return t
}

type modelRange struct {
	region string
	mk     string
	model  string
	avg    float64
	count  int
}

// TopModelsPerRegion ranks (make, model) pairs by average range within each
// region and keeps rank 1..5. Equal averages share a rank.
func TopModelsPerRegion(records []models.VehicleRecord) Table {
	groups := analytics.GroupBy(records,
		func(r models.VehicleRecord) string { return r.Region + "\x00" + r.Make + "\x00" + r.Model },
		func(r models.VehicleRecord) *float64 { v := r.RangeKm; return &v },
		analytics.ByKey)

	items := make([]modelRange, 0, len(groups))
	for _, g := range groups {
		region, mk, model := splitKey3(g.Key)
		avg := 0.0
		if g.Avg != nil {
			avg = *g.Avg
		}
		items = append(items, modelRange{region: region, mk: mk, model: model, avg: avg, count: g.Count})
	}

	ranked := analytics.Rank(items,
		func(m modelRange) string { return m.region },
		func(m modelRange) float64 { return m.avg },
		true)

	t := Table{
		Name:    "top_models_per_region",
		Title:   "Top 5 Models per Region by Range",
		Columns: []string{"region", "make", "model", "avg_range_km", "vehicle_count", "rank"},
	}
	for _, r := range ranked {
		if r.Rank > 5 {
			continue
		}
		t.Rows = append(t.Rows, Row{
			"region":        r.Item.region,
			"make":          r.Item.mk,
			"model":         r.Item.model,
			"avg_range_km":  r.Item.avg,
			"vehicle_count": r.Item.count,
			"rank":          r.Rank,
		})
	}
	return t
}

type yearStat struct {
	year int
	avg  float64
}

// RangeTrendByYear reports the fleet-wide average range per model year with
// the year-over-year change. The first year has no prior value and reports a
// null delta.
func RangeTrendByYear(records []models.VehicleRecord) Table {
	groups := analytics.GroupBy(records,
		func(r models.VehicleRecord) string { return strconv.Itoa(r.Year) },
		func(r models.VehicleRecord) *float64 { v := r.RangeKm; return &v },
		analytics.ByKey)

	items := make([]yearStat, 0, len(groups))
	for _, g := range groups {
		y, _ := strconv.Atoi(g.Key)
		avg := 0.0
		if g.Avg != nil {
			avg = *g.Avg
		}
		items = append(items, yearStat{year: y, avg: avg})
	}

	deltas := analytics.LagDelta(items,
		func(yearStat) string { return "fleet" },
		func(s yearStat) float64 { return float64(s.year) },
		func(s yearStat) float64 { return s.avg })

	t := Table{
		Name:    "range_trend_by_year",
		Title:   "Average Range Trend by Model Year",
		Columns: []string{"year", "avg_range_km", "yoy_change_km"},
	}
	for _, d := range deltas {
		t.Rows = append(t.Rows, Row{
			"year":          d.Item.year,
			"avg_range_km":  d.Item.avg,
			"yoy_change_km": d.Delta,
		})
	}
	return t
}

type regionYearCO2 struct {
	region string
	year   int
	tons   float64
}

// CumulativeCO2ByRegion reports per-region yearly CO2 savings with a running
// total in year order.
func CumulativeCO2ByRegion(records []models.VehicleRecord) Table {
	groups := analytics.GroupBy(records,
		func(r models.VehicleRecord) string { return r.Region + "\x00" + strconv.Itoa(r.Year) },
		func(r models.VehicleRecord) *float64 { v := r.CO2SavedTons; return &v },
		analytics.ByKey)

	items := make([]regionYearCO2, 0, len(groups))
	for _, g := range groups {
		region, yearStr := splitKey2(g.Key)
		y, _ := strconv.Atoi(yearStr)
		total := 0.0
		if g.Sum != nil {
			total = *g.Sum
		}
		items = append(items, regionYearCO2{region: region, year: y, tons: total})
	}

	running := analytics.CumulativeSum(items,
		func(i regionYearCO2) string { return i.region },
		func(i regionYearCO2) float64 { return float64(i.year) },
		func(i regionYearCO2) float64 { return i.tons })

	t := Table{
		Name:    "cumulative_co2_by_region",
		Title:   "Cumulative CO2 Saved by Region",
		Columns: []string{"region", "year", "co2_saved_tons", "cumulative_tons"},
	}
	for _, r := range running {
		t.Rows = append(t.Rows, Row{
			"region":          r.Item.region,
			"year":            r.Item.year,
			"co2_saved_tons":  r.Item.tons,
			"cumulative_tons": r.Total,
		})
	}
	return t
}

// ResaleValueQuartiles bins vehicles into resale-value quartiles within
// their vehicle type (quartile 1 = highest values) and rolls each bucket up.
func ResaleValueQuartiles(records []models.VehicleRecord) Table {
	binned := analytics.Quartile(records,
		func(r models.VehicleRecord) string { return r.VehicleType },
		func(r models.VehicleRecord) float64 { return r.ResaleValueUSD },
		true)

	type bucketKey struct {
		vtype  string
		bucket int
	}
	counts := make(map[bucketKey]int)
	sums := make(map[bucketKey]float64)
	var order []bucketKey
	for _, b := range binned {
		k := bucketKey{vtype: b.Item.VehicleType, bucket: b.Bucket}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
		sums[k] += b.Item.ResaleValueUSD
	}
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].vtype != order[j].vtype {
			return order[i].vtype < order[j].vtype
		}
		return order[i].bucket < order[j].bucket
	})

	t := Table{
		Name:    "resale_value_quartiles",
		Title:   "Resale Value Quartiles by Vehicle Type",
		Columns: []string{"vehicle_type", "quartile", "vehicle_count", "avg_resale_value_usd"},
	}
	for _, k := range order {
		avg := sums[k] / float64(counts[k])
		t.Rows = append(t.Rows, Row{
			"vehicle_type":         k.vtype,
			"quartile":             k.bucket,
			"vehicle_count":        counts[k],
			"avg_resale_value_usd": avg,
		})
	}
	return t
}

// TypeMixByRegion reports the share of each vehicle type within each region.
// Types are discovered from the data, not hardcoded, so a new category can
// never be silently dropped.
func TypeMixByRegion(records []models.VehicleRecord) Table {
	regions := analytics.DistinctValues(records, func(r models.VehicleRecord) string { return r.Region })
	sort.Strings(regions)

	t := Table{
		Name:    "type_mix_by_region",
		Title:   "Vehicle Type Mix by Region",
		Columns: []string{"region", "vehicle_type", "vehicle_count", "share_pct"},
	}
	for _, region := range regions {
		var inRegion []models.VehicleRecord
		for _, r := range records {
			if r.Region == region {
				inRegion = append(inRegion, r)
			}
		}
		groups := analytics.GroupBy(inRegion,
			func(r models.VehicleRecord) string { return r.VehicleType },
			func(r models.VehicleRecord) *float64 { return nil },
			analytics.ByCountDesc)
		for _, g := range groups {
			t.Rows = append(t.Rows, Row{
				"region":        region,
				"vehicle_type":  g.Key,
				"vehicle_count": g.Count,
				"share_pct":     float64(g.Count) / float64(len(inRegion)) * 100,
			})
		}
	}
	return t
}

// EfficiencyLeaders lists the ten most efficient vehicles. Records whose
// efficiency is undefined (zero battery capacity) are excluded, not errors.
func EfficiencyLeaders(records []models.VehicleRecord) Table {
	usable := analytics.TopN(records,
		func(r models.VehicleRecord) bool { return r.Efficiency() != nil },
		func(r models.VehicleRecord) float64 { return *r.Efficiency() },
		true, 10)

	t := Table{
		Name:    "efficiency_leaders",
		Title:   "Efficiency Leaders",
		Columns: []string{"vehicle_id", "make", "model", "region", "efficiency_km_per_kwh"},
	}
	for _, r := range usable {
		t.Rows = append(t.Rows, Row{
			"vehicle_id":            r.VehicleID,
			"make":                  r.Make,
			"model":                 r.Model,
			"region":                r.Region,
			"efficiency_km_per_kwh": *r.Efficiency(),
		})
	}
	return t
}

// CostPerKmByRegion reports average charging cost per km, cheapest first.
func CostPerKmByRegion(records []models.VehicleRecord) Table {
	groups := analytics.GroupBy(records,
		func(r models.VehicleRecord) string { return r.Region },
		func(r models.VehicleRecord) *float64 { v := r.CostPerKm(); return &v },
		analytics.ByAvgAsc)

	t := Table{
		Name:    "cost_per_km_by_region",
		Title:   "Charging Cost per km by Region",
		Columns: []string{"region", "vehicle_count", "avg_cost_usd_per_km"},
	}
	for _, g := range groups {
		t.Rows = append(t.Rows, Row{"region": g.Key, "vehicle_count": g.Count, "avg_cost_usd_per_km": g.Avg})
	}
	return t
}

// BatteryHealthByYear reports average battery health per model year.
func BatteryHealthByYear(records []models.VehicleRecord) Table {
	groups := analytics.GroupBy(records,
		func(r models.VehicleRecord) string { return strconv.Itoa(r.Year) },
		func(r models.VehicleRecord) *float64 { v := r.BatteryHealthPct; return &v },
		analytics.ByKey)

	t := Table{
		Name:    "battery_health_by_year",
		Title:   "Battery Health by Model Year",
		Columns: []string{"year", "vehicle_count", "avg_battery_health_pct"},
	}
	for _, g := range groups {
		y, _ := strconv.Atoi(g.Key)
		t.Rows = append(t.Rows, Row{"year": y, "vehicle_count": g.Count, "avg_battery_health_pct": g.Avg})
	}
	return t
}

// ChargingCostByRegion averages the optional monthly charging cost per
// region. Vehicles without the field count toward vehicle_count but not the
// average.
func ChargingCostByRegion(records []models.VehicleRecord) Table {
	groups := analytics.GroupBy(records,
		func(r models.VehicleRecord) string { return r.Region },
		func(r models.VehicleRecord) *float64 { return r.MonthlyChargingCostUSD },
		analytics.ByKey)

	t := Table{
		Name:    "charging_cost_by_region",
		Title:   "Monthly Charging Cost by Region",
		Columns: []string{"region", "vehicle_count", "avg_monthly_cost_usd"},
	}
	for _, g := range groups {
		t.Rows = append(t.Rows, Row{"region": g.Key, "vehicle_count": g.Count, "avg_monthly_cost_usd": g.Avg})
	}
	return t
}

// ConsumptionByType reports min/avg/max energy consumption per vehicle type.
func ConsumptionByType(records []models.VehicleRecord) Table {
	groups := analytics.GroupBy(records,
		func(r models.VehicleRecord) string { return r.VehicleType },
		func(r models.VehicleRecord) *float64 { v := r.ConsumptionKWhPer100Km; return &v },
		analytics.ByKey)

	t := Table{
		Name:    "consumption_by_type",
		Title:   "Energy Consumption by Vehicle Type",
		Columns: []string{"vehicle_type", "vehicle_count", "min_kwh_per_100km", "avg_kwh_per_100km", "max_kwh_per_100km"},
	}
	for _, g := range groups {
		t.Rows = append(t.Rows, Row{
			"vehicle_type":      g.Key,
			"vehicle_count":     g.Count,
			"min_kwh_per_100km": g.Min,
			"avg_kwh_per_100km": g.Avg,
			"max_kwh_per_100km": g.Max,
		})
	}
	return t
}

func splitKey2(key string) (a, b string) {
	for pos := 0; pos < len(key); pos++ {
		if key[pos] == '\x00' {
			return key[:pos], key[pos+1:]
		}
	}
	return key, ""
}

func splitKey3(key string) (a, b, c string) {
	parts := [3]string{}
	i := 0
	start := 0
	for pos := 0; pos < len(key) && i < 2; pos++ {
		if key[pos] == '\x00' {
			parts[i] = key[start:pos]
			start = pos + 1
			i++
		}
	}
	parts[i] = key[start:]
	return parts[0], parts[1], parts[2]
}
