package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ukydev/fleet-insights/internal/models"
)

type fakeCursor struct {
	records []models.VehicleRecord
	closed  bool
}

func (f *fakeCursor) All(_ context.Context, out interface{}) error {
	dst, ok := out.(*[]models.VehicleRecord)
	if !ok {
		return errors.New("unexpected output type")
	}
	*dst = append(*dst, f.records...)
	return nil
}

func (f *fakeCursor) Close(_ context.Context) error {
	f.closed = true
	return nil
}

type fakeCollection struct {
	records []models.VehicleRecord
	cursor  *fakeCursor
	findErr error
}

func (f *fakeCollection) ReplaceAll(_ context.Context, records []models.VehicleRecord) error {
	f.records = records
	return nil
}

func (f *fakeCollection) FindAll(_ context.Context) (VehicleCursor, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	f.cursor = &fakeCursor{records: f.records}
	return f.cursor, nil
}

func (f *fakeCollection) Count(_ context.Context) (int64, error) {
	return int64(len(f.records)), nil
}

func TestLoadRecords(t *testing.T) {
	coll := &fakeCollection{records: []models.VehicleRecord{
		{VehicleID: "EV01", Make: "Acme"},
		{VehicleID: "EV02", Make: "Bolt"},
	}}

	records, err := LoadRecords(context.Background(), coll)
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "EV01", records[0].VehicleID)
	assert.True(t, coll.cursor.closed)
}

func TestLoadRecords_FindError(t *testing.T) {
	coll := &fakeCollection{findErr: errors.New("connection reset")}

	_, err := LoadRecords(context.Background(), coll)
	assert.ErrorContains(t, err, "querying vehicle dataset")
}

func TestMongoCollection_NilGuards(t *testing.T) {
	c := &MongoCollection{}

	assert.Error(t, c.ReplaceAll(context.Background(), nil))

	_, err := c.FindAll(context.Background())
	assert.Error(t, err)

	_, err = c.Count(context.Background())
	assert.Error(t, err)
}
