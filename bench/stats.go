package bench

import (
	"math"
	"sort"
	"time"
)

// Summary aggregates every trial record of one (algorithm, op, leaf
// count) group. Failed trials count toward Failures and are excluded
// from the timing aggregates.
type Summary struct {
	Algorithm string        `json:"algorithm" msgpack:"algorithm"`
	Op        Op            `json:"op" msgpack:"op"`
	LeafCount int           `json:"leaf_count" msgpack:"leaf_count"`
	Trials    int           `json:"trials" msgpack:"trials"`
	Failures  int           `json:"failures" msgpack:"failures"`
	Mean      time.Duration `json:"mean_ns" msgpack:"mean_ns"`
	StdDev    time.Duration `json:"stddev_ns" msgpack:"stddev_ns"`
	Min       time.Duration `json:"min_ns" msgpack:"min_ns"`
	Max       time.Duration `json:"max_ns" msgpack:"max_ns"`
}

type groupKey struct {
	algorithm string
	op        Op
	leafCount int
}

// Summarize groups records by (algorithm, op, leaf count) and computes
// per-group statistics. The result is ordered by algorithm, then op,
// then leaf count, so output files and tables are stable across runs.
func Summarize(records []Record) []Summary {
	groups := make(map[groupKey][]Record)
	for _, r := range records {
		key := groupKey{r.Algorithm, r.Op, r.LeafCount}
		groups[key] = append(groups[key], r)
	}

	summaries := make([]Summary, 0, len(groups))
	for key, group := range groups {
		s := Summary{
			Algorithm: key.algorithm,
			Op:        key.op,
			LeafCount: key.leafCount,
			Trials:    len(group),
		}
		var elapsed []time.Duration
		for _, r := range group {
			if r.Failed() {
				s.Failures++
				continue
			}
			elapsed = append(elapsed, r.Elapsed)
		}
		if len(elapsed) > 0 {
			s.Mean = mean(elapsed)
			s.StdDev = stddev(elapsed, s.Mean)
			s.Min, s.Max = bounds(elapsed)
		}
		summaries = append(summaries, s)
	}

	sort.Slice(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		if a.Algorithm != b.Algorithm {
			return a.Algorithm < b.Algorithm
		}
		if a.Op != b.Op {
			return a.Op < b.Op
		}
		return a.LeafCount < b.LeafCount
	})
	return summaries
}

func mean(elapsed []time.Duration) time.Duration {
	var total time.Duration
	for _, d := range elapsed {
		total += d
	}
	return total / time.Duration(len(elapsed))
}

// stddev is the sample standard deviation, zero for fewer than two
// observations.
func stddev(elapsed []time.Duration, mean time.Duration) time.Duration {
	if len(elapsed) < 2 {
		return 0
	}
	var sum float64
	for _, d := range elapsed {
		diff := float64(d - mean)
		sum += diff * diff
	}
	return time.Duration(math.Sqrt(sum / float64(len(elapsed)-1)))
}

func bounds(elapsed []time.Duration) (min, max time.Duration) {
	min, max = elapsed[0], elapsed[0]
	for _, d := range elapsed[1:] {
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	return min, max
}
