package distribution

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitWeighted_SumsExactly(t *testing.T) {
	buckets := []Bucket{
		{Name: "published", Weight: 0.6},
		{Name: "draft", Weight: 0.4},
	}

	for total := 1; total <= 200; total++ {
		rng := rand.New(rand.NewSource(42))
		out := SplitWeighted(total, buckets, rng)
		assert.Len(t, out, total, "total=%d", total)
	}
}

func TestSplitWeighted_StatusRatio(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	out := SplitWeighted(10, []Bucket{
		{Name: "published", Weight: 0.6},
		{Name: "draft", Weight: 0.4},
	}, rng)

	counts := CountByName(out)
	assert.Equal(t, 6, counts["published"])
	assert.Equal(t, 4, counts["draft"])
}

func TestSplitWeighted_ThreeWayLengths(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	out := SplitWeighted(10, []Bucket{
		{Name: "short", Weight: 0.3},
		{Name: "medium", Weight: 0.4},
		{Name: "long", Weight: 0.3},
	}, rng)

	counts := CountByName(out)
	assert.Equal(t, 3, counts["short"])
	assert.Equal(t, 4, counts["medium"])
	assert.Equal(t, 3, counts["long"])
}

func TestSplitWeighted_RemainderAbsorbed(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	out := SplitWeighted(7, []Bucket{
		{Name: "a", Weight: 0.5},
		{Name: "b", Weight: 0.5},
	}, rng)

	counts := CountByName(out)
	require.Equal(t, 7, counts["a"]+counts["b"])
	assert.Equal(t, 4, counts["a"])
	assert.Equal(t, 3, counts["b"])
}

func TestSplitWeighted_DeterministicWithSeed(t *testing.T) {
	a := SplitWeighted(20, []Bucket{{Name: "x", Weight: 0.5}, {Name: "y", Weight: 0.5}}, rand.New(rand.NewSource(99)))
	b := SplitWeighted(20, []Bucket{{Name: "x", Weight: 0.5}, {Name: "y", Weight: 0.5}}, rand.New(rand.NewSource(99)))
	assert.Equal(t, a, b)
}

func TestScaleRange_MonotonicInTotal(t *testing.T) {
	prev := Range{}
	for total := 1; total <= 50; total++ {
		r := ScaleRange(total, 5, 15)
		assert.GreaterOrEqual(t, r.Min, prev.Min, "total=%d", total)
		assert.GreaterOrEqual(t, r.Max, prev.Max, "total=%d", total)
		assert.LessOrEqual(t, r.Min, r.Max, "total=%d", total)
		prev = r
	}
}

func TestScaleRange_Bands(t *testing.T) {
	// total > 20 keeps the nominal range
	assert.Equal(t, Range{Min: 5, Max: 15}, ScaleRange(21, 5, 15))
	assert.Equal(t, Range{Min: 5, Max: 15}, ScaleRange(1000, 5, 15))

	// total = 5 is the top of the small band (50%)
	r := ScaleRange(5, 10, 20)
	assert.Equal(t, Range{Min: 5, Max: 10}, r)

	// total = 20 is the top of the mid band (80%)
	r = ScaleRange(20, 10, 20)
	assert.Equal(t, Range{Min: 8, Max: 16}, r)
}

func TestScaleRange_FlooredAtOne(t *testing.T) {
	r := ScaleRange(1, 1, 2)
	assert.GreaterOrEqual(t, r.Min, 1)
	assert.GreaterOrEqual(t, r.Max, r.Min)
}

func TestScaleRangeFloor_ZeroFloorAllowed(t *testing.T) {
	r := ScaleRangeFloor(1, 0, 2, 0)
	assert.Equal(t, 0, r.Min)
	assert.GreaterOrEqual(t, r.Max, r.Min)
}

func TestRangeSample_WithinBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	r := Range{Min: 2, Max: 6}
	for i := 0; i < 100; i++ {
		n := r.Sample(rng)
		assert.GreaterOrEqual(t, n, 2)
		assert.LessOrEqual(t, n, 6)
	}
}
