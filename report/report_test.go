package report

import (
	"bytes"
	"context"
	"testing"

	"github.com/pa-m/geneva/evaluator"
	"github.com/pa-m/geneva/individual"
	"github.com/pa-m/geneva/paramset"
	"github.com/pa-m/geneva/population"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(ps *paramset.ParameterSet) (float64, error) {
	v := ps.At(0).(paramset.FloatElement).Value()
	return v * v, nil
}

func newPop(t *testing.T) *population.Population {
	t.Helper()
	cfg := population.Config{Mu: 2, Lambda: 4, Evaluator: evaluator.Serial{}, RunSeed: 5}
	p, err := population.New(cfg, func(i int) *individual.Individual {
		fe, ferr := paramset.NewBoundedFloat(float64(i), -10, 10)
		require.NoError(t, ferr)
		return individual.New(paramset.New(fe), square)
	})
	require.NoError(t, err)
	require.NoError(t, p.Bootstrap(context.Background()))
	return p
}

func TestTableRendersOnCadence(t *testing.T) {
	var buf bytes.Buffer
	tbl := &Table{Output: &buf, Every: 2}
	p := newPop(t)

	require.NoError(t, p.Iterate(context.Background(), nil, tbl, nil)) // iteration 0, reported
	require.NoError(t, p.Iterate(context.Background(), nil, tbl, nil)) // iteration 1, skipped
	out1 := buf.String()
	assert.Contains(t, out1, "OPTIMIZATION PROGRESS")

	buf.Reset()
	require.NoError(t, p.Iterate(context.Background(), nil, tbl, nil)) // iteration 2, reported
	assert.Contains(t, buf.String(), "ITERATION")
}

func TestTableNeverRendersWhenDisabled(t *testing.T) {
	var buf bytes.Buffer
	tbl := &Table{Output: &buf, Every: 0}
	p := newPop(t)
	require.NoError(t, p.Iterate(context.Background(), nil, tbl, nil))
	assert.Empty(t, buf.String())
}
