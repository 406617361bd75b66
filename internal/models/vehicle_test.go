package models

import (
	"testing"
)

func TestVehicleRecord_Efficiency(t *testing.T) {
	tests := []struct {
		name     string
		record   VehicleRecord
		expected *float64
	}{
		{"normal capacity", VehicleRecord{RangeKm: 400, BatteryCapacityKWh: 50}, ptr(8.0)},
		{"zero capacity is guarded", VehicleRecord{RangeKm: 100, BatteryCapacityKWh: 0}, nil},
		{"negative capacity is guarded", VehicleRecord{RangeKm: 100, BatteryCapacityKWh: -1}, nil},
		{"zero range", VehicleRecord{RangeKm: 0, BatteryCapacityKWh: 75}, ptr(0.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.record.Efficiency()
			if (got == nil) != (tt.expected == nil) {
				t.Fatalf("Efficiency() = %v, want %v", got, tt.expected)
			}
			if got != nil && *got != *tt.expected {
				t.Errorf("Efficiency() = %v, want %v", *got, *tt.expected)
			}
		})
	}
}

func TestVehicleRecord_CostPerKm(t *testing.T) {
	r := VehicleRecord{ConsumptionKWhPer100Km: 18, ElectricityCostUSD: 0.25}
	got := r.CostPerKm()
	want := 0.045
	if got != want {
		t.Errorf("CostPerKm() = %v, want %v", got, want)
	}
}

func ptr(f float64) *float64 { return &f }
