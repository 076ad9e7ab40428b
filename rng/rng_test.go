package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeterministic(t *testing.T) {
	a := New(42, 3)
	b := New(42, 3)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.UniformFloat64(0, 1), b.UniformFloat64(0, 1))
	}
}

func TestNewDifferentWorkersDiverge(t *testing.T) {
	a := New(42, 0)
	b := New(42, 1)
	same := true
	for i := 0; i < 20; i++ {
		if a.UniformFloat64(0, 1) != b.UniformFloat64(0, 1) {
			same = false
		}
	}
	assert.False(t, same, "distinct worker indices must not produce identical sequences")
}

func TestUniformIntBounds(t *testing.T) {
	s := New(1, 0)
	for i := 0; i < 1000; i++ {
		v := s.UniformInt(-3, 3)
		assert.GreaterOrEqual(t, v, int64(-3))
		assert.LessOrEqual(t, v, int64(3))
	}
}

func TestBernoulliEdges(t *testing.T) {
	s := New(1, 0)
	for i := 0; i < 10; i++ {
		assert.False(t, s.Bernoulli(0))
		assert.True(t, s.Bernoulli(1))
	}
}

func TestClampNaN(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(nanFloat(), 1, 5))
}

func nanFloat() float64 {
	var z float64
	return z / z
}
