package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type obs struct {
	id     string
	region string
	year   float64
	value  float64
}

func TestRank_TiesShareRankAndSkip(t *testing.T) {
	items := []obs{
		{id: "a", region: "EU", value: 500},
		{id: "b", region: "EU", value: 500},
		{id: "c", region: "EU", value: 400},
		{id: "d", region: "NA", value: 300},
	}
	ranked := Rank(items,
		func(o obs) string { return o.region },
		func(o obs) float64 { return o.value },
		true)

	assert.Len(t, ranked, 4)
	// EU: 500, 500, 400 → ranks 1, 1, 3
	assert.Equal(t, "a", ranked[0].Item.id)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, "b", ranked[1].Item.id)
	assert.Equal(t, 1, ranked[1].Rank)
	assert.Equal(t, "c", ranked[2].Item.id)
	assert.Equal(t, 3, ranked[2].Rank)
	// NA restarts at 1
	assert.Equal(t, "d", ranked[3].Item.id)
	assert.Equal(t, 1, ranked[3].Rank)
}

func TestRank_RanksWithinPartitionBounds(t *testing.T) {
	items := []obs{
		{id: "a", region: "EU", value: 3},
		{id: "b", region: "EU", value: 2},
		{id: "c", region: "EU", value: 1},
	}
	ranked := Rank(items,
		func(o obs) string { return o.region },
		func(o obs) float64 { return o.value },
		false)

	for i, r := range ranked {
		assert.GreaterOrEqual(t, r.Rank, 1)
		assert.LessOrEqual(t, r.Rank, len(items))
		if i > 0 {
			assert.GreaterOrEqual(t, r.Rank, ranked[i-1].Rank)
		}
	}
}

func TestCumulativeSum(t *testing.T) {
	// Three records in region "EU", co2 saved [10, 20, 5] by year.
	items := []obs{
		{id: "a", region: "EU", year: 2020, value: 10},
		{id: "b", region: "EU", year: 2021, value: 20},
		{id: "c", region: "EU", year: 2022, value: 5},
	}
	out := CumulativeSum(items,
		func(o obs) string { return o.region },
		func(o obs) float64 { return o.year },
		func(o obs) float64 { return o.value })

	totals := []float64{out[0].Total, out[1].Total, out[2].Total}
	assert.Equal(t, []float64{10, 30, 35}, totals)
}

func TestCumulativeSum_LastEqualsPartitionSum(t *testing.T) {
	items := []obs{
		{id: "a", region: "EU", year: 2021, value: 4},
		{id: "b", region: "NA", year: 2020, value: 7},
		{id: "c", region: "EU", year: 2020, value: 6},
		{id: "d", region: "NA", year: 2021, value: 1},
	}
	out := CumulativeSum(items,
		func(o obs) string { return o.region },
		func(o obs) float64 { return o.year },
		func(o obs) float64 { return o.value })

	// Partitions come out in first-seen order: EU then NA.
	assert.Equal(t, 10.0, out[1].Total)
	assert.Equal(t, 8.0, out[3].Total)
	// Non-negative values keep the sequence non-decreasing.
	assert.LessOrEqual(t, out[0].Total, out[1].Total)
	assert.LessOrEqual(t, out[2].Total, out[3].Total)
}

func TestCumulativeSum_EqualOrderKeysAccumulateRowByRow(t *testing.T) {
	items := []obs{
		{id: "a", region: "EU", year: 2020, value: 1},
		{id: "b", region: "EU", year: 2020, value: 2},
	}
	out := CumulativeSum(items,
		func(o obs) string { return o.region },
		func(o obs) float64 { return o.year },
		func(o obs) float64 { return o.value })

	// Ties on the order key accumulate one record at a time in input order.
	assert.Equal(t, 1.0, out[0].Total)
	assert.Equal(t, 3.0, out[1].Total)
}

func TestLagDelta(t *testing.T) {
	items := []obs{
		{id: "a", region: "EU", year: 2020, value: 100},
		{id: "b", region: "EU", year: 2021, value: 130},
		{id: "c", region: "EU", year: 2022, value: 125},
		{id: "d", region: "NA", year: 2020, value: 50},
	}
	out := LagDelta(items,
		func(o obs) string { return o.region },
		func(o obs) float64 { return o.year },
		func(o obs) float64 { return o.value })

	// First record of each partition has no prior value, not a zero delta.
	assert.Nil(t, out[0].Delta)
	if assert.NotNil(t, out[1].Delta) {
		assert.Equal(t, 30.0, *out[1].Delta)
	}
	if assert.NotNil(t, out[2].Delta) {
		assert.Equal(t, -5.0, *out[2].Delta)
	}
	assert.Nil(t, out[3].Delta)
}

func TestQuartile_RemainderGoesToEarlierBuckets(t *testing.T) {
	items := make([]obs, 10)
	for i := range items {
		items[i] = obs{id: string(rune('a' + i)), region: "EU", value: float64(i)}
	}
	out := Quartile(items,
		func(o obs) string { return o.region },
		func(o obs) float64 { return o.value },
		false)

	sizes := make(map[int]int)
	for _, b := range out {
		assert.GreaterOrEqual(t, b.Bucket, 1)
		assert.LessOrEqual(t, b.Bucket, 4)
		sizes[b.Bucket]++
	}
	assert.Equal(t, map[int]int{1: 3, 2: 3, 3: 2, 4: 2}, sizes)
}

func TestQuartile_SmallPartition(t *testing.T) {
	items := []obs{
		{id: "a", region: "EU", value: 2},
		{id: "b", region: "EU", value: 1},
	}
	out := Quartile(items,
		func(o obs) string { return o.region },
		func(o obs) float64 { return o.value },
		false)

	assert.Len(t, out, 2)
	assert.Equal(t, "b", out[0].Item.id)
	assert.Equal(t, 1, out[0].Bucket)
	assert.Equal(t, "a", out[1].Item.id)
	assert.Equal(t, 2, out[1].Bucket)
}

func TestWindow_EmptyInput(t *testing.T) {
	part := func(o obs) string { return o.region }
	order := func(o obs) float64 { return o.year }
	val := func(o obs) float64 { return o.value }

	assert.Empty(t, Rank[obs](nil, part, order, false))
	assert.Empty(t, CumulativeSum[obs](nil, part, order, val))
	assert.Empty(t, LagDelta[obs](nil, part, order, val))
	assert.Empty(t, Quartile[obs](nil, part, order, false))
}
