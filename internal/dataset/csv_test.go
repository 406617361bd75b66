package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleHeader = "Vehicle_ID,Make,Model,Vehicle_Type,Region,Year,Range_km,Battery_Capacity_kWh,Energy_Consumption_kWh_per_100km,Battery_Health_pct,Electricity_Cost_USD_per_kWh,Resale_Value_USD,Monthly_Charging_Cost_USD,CO2_Saved_tons"

func TestLoad(t *testing.T) {
	csvData := sampleHeader + "\n" +
		"EV001,Acme,X,SUV,Europe,2021,420,60,17.5,96,0.22,31000,55,4.2\n" +
		"EV002,Bolt,Z,Sedan,Asia,2020,380,55,15.0,91,0.18,24000,,3.1\n"

	records, err := Load(strings.NewReader(csvData))
	assert.NoError(t, err)
	assert.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "EV001", first.VehicleID)
	assert.Equal(t, "Acme", first.Make)
	assert.Equal(t, "SUV", first.VehicleType)
	assert.Equal(t, 2021, first.Year)
	assert.Equal(t, 420.0, first.RangeKm)
	assert.Equal(t, 60.0, first.BatteryCapacityKWh)
	if assert.NotNil(t, first.MonthlyChargingCostUSD) {
		assert.Equal(t, 55.0, *first.MonthlyChargingCostUSD)
	}

	// blank optional cell stays nil
	assert.Nil(t, records[1].MonthlyChargingCostUSD)
}

func TestLoad_HeaderIsCaseInsensitive(t *testing.T) {
	csvData := strings.ToUpper(sampleHeader) + "\n" +
		"EV001,Acme,X,SUV,Europe,2021,420,60,17.5,96,0.22,31000,55,4.2\n"

	records, err := Load(strings.NewReader(csvData))
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, "EV001", records[0].VehicleID)
}

func TestLoad_MissingColumn(t *testing.T) {
	csvData := "vehicle_id,make,model\nEV001,Acme,X\n"

	_, err := Load(strings.NewReader(csvData))
	assert.Error(t, err)

	var missing *MissingColumnError
	assert.ErrorAs(t, err, &missing)
	assert.Equal(t, "vehicle_type", missing.Column)
}

func TestLoad_DuplicateVehicleID(t *testing.T) {
	csvData := sampleHeader + "\n" +
		"EV001,Acme,X,SUV,Europe,2021,420,60,17.5,96,0.22,31000,55,4.2\n" +
		"EV001,Acme,X,SUV,Europe,2021,420,60,17.5,96,0.22,31000,55,4.2\n"

	_, err := Load(strings.NewReader(csvData))
	assert.ErrorContains(t, err, "duplicate vehicle_id")
}

func TestLoad_BadNumericCell(t *testing.T) {
	csvData := sampleHeader + "\n" +
		"EV001,Acme,X,SUV,Europe,2021,not-a-number,60,17.5,96,0.22,31000,55,4.2\n"

	_, err := Load(strings.NewReader(csvData))
	assert.ErrorContains(t, err, "range_km")
	assert.ErrorContains(t, err, "row 2")
}

func TestLoad_EmptyBody(t *testing.T) {
	records, err := Load(strings.NewReader(sampleHeader + "\n"))
	assert.NoError(t, err)
	assert.Empty(t, records)
}
