// Package distribution scales per-entity related-record counts to the
// requested corpus size and splits totals across weighted buckets.
package distribution

import (
	"math"
	"math/rand"
)

// Range is an inclusive min/max envelope for a per-parent record count.
type Range struct {
	Min int
	Max int
}

// Sample draws a count from the range using the provided random source.
func (r Range) Sample(rng *rand.Rand) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Intn(r.Max-r.Min+1)
}

// scaleFactor shrinks nominal ranges for small corpora so per-article
// relationship counts stay plausible. Small totals use 30-50% of the nominal
// range, mid-size totals 50-80%, large totals the range unchanged. The factor
// is continuous and non-decreasing in total.
func scaleFactor(total int) float64 {
	switch {
	case total <= 0:
		return 0.3
	case total <= 5:
		return 0.3 + 0.2*float64(total)/5
	case total <= 20:
		return 0.5 + 0.3*float64(total-5)/15
	default:
		return 1
	}
}

// ScaleRange scales the [min,max] envelope by the corpus size, flooring both
// ends at 1.
func ScaleRange(total, min, max int) Range {
	return ScaleRangeFloor(total, min, max, 1)
}

// ScaleRangeFloor is ScaleRange with a caller-supplied floor, which may be 0
// for relationships that are allowed to be absent.
func ScaleRangeFloor(total, min, max, floor int) Range {
	f := scaleFactor(total)

	scaledMin := int(math.Round(float64(min) * f))
	scaledMax := int(math.Round(float64(max) * f))

	if scaledMin < floor {
		scaledMin = floor
	}
	if scaledMax < scaledMin {
		scaledMax = scaledMin
	}

	return Range{Min: scaledMin, Max: scaledMax}
}

// Bucket is a named share of a weighted split.
type Bucket struct {
	Name   string
	Weight float64
}

// SplitWeighted distributes total across the buckets by weight. Counts always
// sum to total exactly: each bucket gets the floor of its share and the
// remainder goes to the buckets in declaration order. Assignments are then
// shuffled with the injected random source so no positional bias exists.
func SplitWeighted(total int, buckets []Bucket, rng *rand.Rand) []string {
	if total <= 0 || len(buckets) == 0 {
		return nil
	}

	counts := make([]int, len(buckets))
	assigned := 0
	for i, b := range buckets {
		counts[i] = int(math.Floor(float64(total) * b.Weight))
		assigned += counts[i]
	}
	for i := 0; assigned < total; i = (i + 1) % len(buckets) {
		counts[i]++
		assigned++
	}

	out := make([]string, 0, total)
	for i, b := range buckets {
		for n := 0; n < counts[i]; n++ {
			out = append(out, b.Name)
		}
	}

	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})

	return out
}

// CountByName tallies a SplitWeighted result.
func CountByName(assignments []string) map[string]int {
	counts := make(map[string]int, 4)
	for _, name := range assignments {
		counts[name]++
	}
	return counts
}
