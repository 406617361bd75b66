package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ukydev/fleet-insights/internal/models"
)

// MissingColumnError reports a required column absent from the CSV header.
// Schema problems surface here, at load time, never mid-aggregation.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("dataset: required column %q not found in header", e.Column)
}

// Column keys after header normalization. Header matching is
// case-insensitive; spaces and dashes map to underscores.
const (
	colVehicleID      = "vehicle_id"
	colMake           = "make"
	colModel          = "model"
	colVehicleType    = "vehicle_type"
	colRegion         = "region"
	colYear           = "year"
	colRangeKm        = "range_km"
	colBatteryKWh     = "battery_capacity_kwh"
	colConsumption    = "energy_consumption_kwh_per_100km"
	colBatteryHealth  = "battery_health_pct"
	colElectricityUSD = "electricity_cost_usd_per_kwh"
	colResaleUSD      = "resale_value_usd"
	colChargingUSD    = "monthly_charging_cost_usd"
	colCO2Saved       = "co2_saved_tons"
)

var requiredColumns = []string{
	colVehicleID, colMake, colModel, colVehicleType, colRegion, colYear,
	colRangeKm, colBatteryKWh, colConsumption, colBatteryHealth,
	colElectricityUSD, colResaleUSD, colCO2Saved,
}

// Load parses a CSV stream into vehicle records. The header row is required;
// column order is free. vehicle_id must be unique across the file. The
// monthly charging cost column is optional entirely, and blank cells in it
// yield nil.
func Load(r io.Reader) ([]models.VehicleRecord, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("dataset: reading CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[normalizeHeader(h)] = i
	}
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, &MissingColumnError{Column: c}
		}
	}

	var records []models.VehicleRecord
	seen := make(map[string]bool)
	row := 1
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, fmt.Errorf("dataset: reading row %d: %w", row, err)
		}

		cell := func(col string) string {
			i, ok := cols[col]
			if !ok || i >= len(fields) {
				return ""
			}
			return strings.TrimSpace(fields[i])
		}

		rec := models.VehicleRecord{
			VehicleID:   cell(colVehicleID),
			Make:        cell(colMake),
			Model:       cell(colModel),
			VehicleType: cell(colVehicleType),
			Region:      cell(colRegion),
		}
		if rec.VehicleID == "" {
			return nil, fmt.Errorf("dataset: empty vehicle_id at row %d", row)
		}
		if seen[rec.VehicleID] {
			return nil, fmt.Errorf("dataset: duplicate vehicle_id %q at row %d", rec.VehicleID, row)
		}
		seen[rec.VehicleID] = true

		if rec.Year, err = strconv.Atoi(cell(colYear)); err != nil {
			return nil, parseError(colYear, row, err)
		}
		if rec.RangeKm, err = parseFloat(cell(colRangeKm)); err != nil {
			return nil, parseError(colRangeKm, row, err)
		}
		if rec.BatteryCapacityKWh, err = parseFloat(cell(colBatteryKWh)); err != nil {
			return nil, parseError(colBatteryKWh, row, err)
		}
		if rec.ConsumptionKWhPer100Km, err = parseFloat(cell(colConsumption)); err != nil {
			return nil, parseError(colConsumption, row, err)
		}
		if rec.BatteryHealthPct, err = parseFloat(cell(colBatteryHealth)); err != nil {
			return nil, parseError(colBatteryHealth, row, err)
		}
		if rec.ElectricityCostUSD, err = parseFloat(cell(colElectricityUSD)); err != nil {
			return nil, parseError(colElectricityUSD, row, err)
		}
		if rec.ResaleValueUSD, err = parseFloat(cell(colResaleUSD)); err != nil {
			return nil, parseError(colResaleUSD, row, err)
		}
		if rec.CO2SavedTons, err = parseFloat(cell(colCO2Saved)); err != nil {
			return nil, parseError(colCO2Saved, row, err)
		}

		if raw := cell(colChargingUSD); raw != "" {
			v, err := parseFloat(raw)
			if err != nil {
				return nil, parseError(colChargingUSD, row, err)
			}
			rec.MonthlyChargingCostUSD = &v
		}

		records = append(records, rec)
	}

	return records, nil
}

// LoadFile reads and parses a CSV dataset from disk.
func LoadFile(path string) ([]models.VehicleRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: opening %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

func parseError(col string, row int, err error) error {
	return fmt.Errorf("dataset: parsing %s at row %d: %w", col, row, err)
}

// normalizeHeader converts "Battery Capacity kWh" to "battery_capacity_kwh".
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "_")
	h = strings.ReplaceAll(h, "-", "_")
	return h
}
