package parameter

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldFloat64Idempotent(t *testing.T) {
	xs := []float64{-100, -2.5, -1, -0.999, 0, 0.5, 1, 1.0001, 2.5, 37.125}
	for _, x := range xs {
		once := FoldFloat64(x, -1, 1)
		twice := FoldFloat64(once, -1, 1)
		assert.InDelta(t, once, twice, 1e-12)
	}
}

func TestFoldFloat64InRange(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 10000; i++ {
		x := (r.Float64() - 0.5) * 1e6
		v := FoldFloat64(x, -100, 100)
		assert.GreaterOrEqual(t, v, -100.0)
		assert.LessOrEqual(t, v, 100.0)
	}
}

func TestFoldFloat64IdentityInsideDomain(t *testing.T) {
	for _, x := range []float64{-1, -0.5, 0, 0.3, 1} {
		assert.InDelta(t, x, FoldFloat64(x, -1, 1), 1e-12)
	}
}

func TestFoldFloat64ReflectionExample(t *testing.T) {
	// spec §8 scenario 2: [-1,1], internal 2.5 -> external 0.5.
	assert.InDelta(t, 0.5, FoldFloat64(2.5, -1, 1), 1e-12)
}

func TestFoldFloat64Continuous(t *testing.T) {
	lo, hi := -3.0, 4.0
	prev := FoldFloat64(-50, lo, hi)
	maxJump := 0.0
	for x := -50.0; x <= 50.0; x += 0.001 {
		v := FoldFloat64(x, lo, hi)
		jump := math.Abs(v - prev)
		if jump > maxJump {
			maxJump = jump
		}
		prev = v
	}
	assert.Less(t, maxJump, 0.01)
}

func TestFoldInt64Idempotent(t *testing.T) {
	for _, x := range []int64{-100, -1, 0, 1, 5, 37} {
		once := FoldInt64(x, -5, 5)
		twice := FoldInt64(once, -5, 5)
		assert.Equal(t, once, twice)
	}
}

func TestFoldInt64InRange(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 10000; i++ {
		x := r.Int63n(2000) - 1000
		v := FoldInt64(x, -7, 7)
		assert.GreaterOrEqual(t, v, int64(-7))
		assert.LessOrEqual(t, v, int64(7))
	}
}

// TestFoldInt64Uniformity verifies spec §3/§8: drawing x uniformly over any
// interval whose length is a multiple of 2M yields a uniform marginal over
// [lo, hi].
func TestFoldInt64Uniformity(t *testing.T) {
	lo, hi := int64(-3), int64(4) // M = 8
	m := hi - lo + 1
	period := 2 * m
	counts := make(map[int64]int)
	const start = int64(-1000)
	n := period * 5000
	for i := int64(0); i < n; i++ {
		x := start + i
		counts[FoldInt64(x, lo, hi)]++
	}
	assert.Len(t, counts, int(m))
	expected := float64(n) / float64(m)
	for v, c := range counts {
		assert.InDeltaf(t, expected, float64(c), expected*0.01, "value %d count", v)
	}
}
