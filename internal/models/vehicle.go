package models

// VehicleRecord is one observation of an electric vehicle in the fleet
// dataset. The dataset is loaded once per session and never mutated; every
// report is a read-only transform over a slice of these records.
type VehicleRecord struct {
	VehicleID              string   `bson:"vehicle_id" json:"vehicle_id"`
	Make                   string   `bson:"make" json:"make"`
	Model                  string   `bson:"model" json:"model"`
	VehicleType            string   `bson:"vehicle_type" json:"vehicle_type"` // "SUV", "Sedan", "Hatchback", "Truck", ...
	Region                 string   `bson:"region" json:"region"`
	Year                   int      `bson:"year" json:"year"`
	RangeKm                float64  `bson:"range_km" json:"range_km"`
	BatteryCapacityKWh     float64  `bson:"battery_capacity_kwh" json:"battery_capacity_kwh"`
	ConsumptionKWhPer100Km float64  `bson:"energy_consumption_kwh_per_100km" json:"energy_consumption_kwh_per_100km"`
	BatteryHealthPct       float64  `bson:"battery_health_pct" json:"battery_health_pct"`
	ElectricityCostUSD     float64  `bson:"electricity_cost_usd_per_kwh" json:"electricity_cost_usd_per_kwh"`
	ResaleValueUSD         float64  `bson:"resale_value_usd" json:"resale_value_usd"`
	MonthlyChargingCostUSD *float64 `bson:"monthly_charging_cost_usd,omitempty" json:"monthly_charging_cost_usd,omitempty"`
	CO2SavedTons           float64  `bson:"co2_saved_tons" json:"co2_saved_tons"`
}

// Efficiency returns km per kWh of battery capacity, or nil when the
// capacity is not positive. A zero divisor yields "no value", never an
// error or an infinity that could leak into downstream aggregates.
func (v VehicleRecord) Efficiency() *float64 {
	if v.BatteryCapacityKWh <= 0 {
		return nil
	}
	e := v.RangeKm / v.BatteryCapacityKWh
	return &e
}

// CostPerKm returns the charging cost in USD for one kilometer driven.
func (v VehicleRecord) CostPerKm() float64 {
	return v.ConsumptionKWhPer100Km / 100 * v.ElectricityCostUSD
}
