package analytics

import "sort"

// Window annotations are computed in two phases, mirroring SQL window
// semantics: partition the collection by key, then sort each partition by the
// order key and make a single linear pass. The input is never mutated; each
// function returns a new annotated slice with partitions in first-seen order
// and records within a partition in order-key order (ties stable by input
// order).

// Ranked pairs an item with its 1-based rank inside its partition.
type Ranked[T any] struct {
	Item T
	Rank int
}

// Running pairs an item with the running total of a value inside its
// partition.
type Running[T any] struct {
	Item  T
	Total float64
}

// Delta pairs an item with its change versus the previous item in the
// partition. Delta is nil for the first item of each partition: there is no
// prior value, which is not the same as a change of zero.
type Delta[T any] struct {
	Item  T
	Delta *float64
}

// Binned pairs an item with its quartile bucket (1..4).
type Binned[T any] struct {
	Item   T
	Bucket int
}

type partitionOf[T any] struct {
	key   string
	items []T
}

func partitionAndSort[T any](items []T, partition func(T) string, order func(T) float64, desc bool) []partitionOf[T] {
	index := make(map[string]int)
	var parts []partitionOf[T]
	for _, it := range items {
		k := partition(it)
		i, ok := index[k]
		if !ok {
			i = len(parts)
			index[k] = i
			parts = append(parts, partitionOf[T]{key: k})
		}
		parts[i].items = append(parts[i].items, it)
	}
	for i := range parts {
		p := parts[i].items
		sort.SliceStable(p, func(a, b int) bool {
			if desc {
				return order(p[a]) > order(p[b])
			}
			return order(p[a]) < order(p[b])
		})
	}
	return parts
}

// Rank annotates each item with its rank within its partition, ordered by the
// order key. RANK semantics: equal order keys share a rank and the next
// distinct value skips the intervening ranks (1, 1, 3, ...).
func Rank[T any](items []T, partition func(T) string, order func(T) float64, desc bool) []Ranked[T] {
	out := make([]Ranked[T], 0, len(items))
	for _, part := range partitionAndSort(items, partition, order, desc) {
		rank := 1
		for i, it := range part.items {
			if i > 0 && order(it) != order(part.items[i-1]) {
				rank = i + 1
			}
			out = append(out, Ranked[T]{Item: it, Rank: rank})
		}
	}
	return out
}

// CumulativeSum annotates each item with the running total of value within
// its partition, in order-key order. Row semantics: items with an equal order
// key accumulate one at a time in stable input order, so the last total of a
// partition always equals the partition's full sum.
func CumulativeSum[T any](items []T, partition func(T) string, order func(T) float64, value func(T) float64) []Running[T] {
	out := make([]Running[T], 0, len(items))
	for _, part := range partitionAndSort(items, partition, order, false) {
		var total float64
		for _, it := range part.items {
			total += value(it)
			out = append(out, Running[T]{Item: it, Total: total})
		}
	}
	return out
}

// LagDelta annotates each item with value(item) minus the previous item's
// value within its partition, ordered by the order key.
func LagDelta[T any](items []T, partition func(T) string, order func(T) float64, value func(T) float64) []Delta[T] {
	out := make([]Delta[T], 0, len(items))
	for _, part := range partitionAndSort(items, partition, order, false) {
		var prev *float64
		for _, it := range part.items {
			v := value(it)
			var d *float64
			if prev != nil {
				diff := v - *prev
				d = &diff
			}
			out = append(out, Delta[T]{Item: it, Delta: d})
			p := v
			prev = &p
		}
	}
	return out
}

// Quartile assigns each item an equal-count bucket in 1..4 within its
// partition, ordered by the order key. NTILE semantics: when the partition
// size is not divisible by 4, the earlier buckets absorb the remainder
// (10 items split 3, 3, 2, 2).
func Quartile[T any](items []T, partition func(T) string, order func(T) float64, desc bool) []Binned[T] {
	out := make([]Binned[T], 0, len(items))
	for _, part := range partitionAndSort(items, partition, order, desc) {
		n := len(part.items)
		base := n / 4
		rem := n % 4
		i := 0
		for bucket := 1; bucket <= 4; bucket++ {
			size := base
			if bucket <= rem {
				size++
			}
			for j := 0; j < size && i < n; j++ {
				out = append(out, Binned[T]{Item: part.items[i], Bucket: bucket})
				i++
			}
		}
	}
	return out
}
