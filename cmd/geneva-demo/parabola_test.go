package main

import (
	"testing"

	"github.com/pa-m/geneva/paramset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSumOfSquaresAtOrigin(t *testing.T) {
	elements := make([]paramset.Element, parabolaDimension)
	for i := range elements {
		fe, err := paramset.NewBoundedFloat(0, -100, 100)
		require.NoError(t, err)
		elements[i] = fe
	}
	v, err := sumOfSquares(paramset.New(elements...))
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestSumOfSquaresIsPositiveAwayFromOrigin(t *testing.T) {
	fe, err := paramset.NewBoundedFloat(3, -100, 100)
	require.NoError(t, err)
	v, err := sumOfSquares(paramset.New(fe))
	require.NoError(t, err)
	assert.Equal(t, 9.0, v)
}
