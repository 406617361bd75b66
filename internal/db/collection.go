package db

import (
	"context"

	"github.com/ukydev/fleet-insights/internal/models"
)

// VehicleCollection defines the operations the dataset store needs. The
// mongo implementation lives in mongo.go; tests substitute their own.
type VehicleCollection interface {
	ReplaceAll(ctx context.Context, records []models.VehicleRecord) error
	FindAll(ctx context.Context) (VehicleCursor, error)
	Count(ctx context.Context) (int64, error)
}

// VehicleCursor defines the cursor operations used when reading the dataset.
type VehicleCursor interface {
	All(ctx context.Context, out interface{}) error
	Close(ctx context.Context) error
}
