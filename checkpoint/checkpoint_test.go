package checkpoint

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pa-m/geneva/adaptor"
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
	cfg := population.Config{Mu: 2, Lambda: 3, Evaluator: evaluator.Serial{}, RunSeed: 11}
	p, err := population.New(cfg, func(i int) *individual.Individual {
		ga, gerr := adaptor.NewGaussAdaptor(1, 0, 1, 0.001, 1e-7, 5)
		require.NoError(t, gerr)
		fe, ferr := paramset.NewBoundedFloat(float64(i), -10, 10, ga)
		require.NoError(t, ferr)
		return individual.New(paramset.New(fe), square)
	})
	require.NoError(t, err)
	require.NoError(t, p.Bootstrap(context.Background()))
	return p
}

func testCodecRoundTrip(t *testing.T, codec Codec) {
	t.Helper()
	p := newPop(t)
	require.NoError(t, p.Iterate(context.Background(), nil, nil, nil))

	dir := t.TempDir()
	store := &Store{Directory: dir, Basename: "geneva.chk", Interval: 1, Codec: codec}
	require.NoError(t, store.Checkpoint(p))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	path := filepath.Join(dir, entries[0].Name())

	fresh := newPop(t)
	require.NoError(t, store.Resume(path, square, fresh))

	assert.Equal(t, p.Iteration(), fresh.Iteration())
	assert.Equal(t, p.StallCounter(), fresh.StallCounter())

	origBest, err := p.Individuals()[0].Fitness(false)
	require.NoError(t, err)
	restoredBest, err := fresh.Individuals()[0].Fitness(false)
	require.NoError(t, err)
	assert.InDelta(t, origBest, restoredBest, 1e-9)
}

func TestJSONCodecRoundTrip(t *testing.T) { testCodecRoundTrip(t, JSONCodec{}) }
func TestXMLCodecRoundTrip(t *testing.T)  { testCodecRoundTrip(t, XMLCodec{}) }
func TestGobCodecRoundTrip(t *testing.T)  { testCodecRoundTrip(t, GobCodec{}) }

func TestShouldCheckpointInterval(t *testing.T) {
	s := &Store{Interval: 5}
	assert.True(t, s.ShouldCheckpoint(0, false))
	assert.True(t, s.ShouldCheckpoint(5, false))
	assert.False(t, s.ShouldCheckpoint(3, false))
}

func TestShouldCheckpointOnImprovement(t *testing.T) {
	s := &Store{Interval: -1}
	assert.True(t, s.ShouldCheckpoint(7, true))
	assert.False(t, s.ShouldCheckpoint(7, false))
}

func TestFileNameEncodesIterationAndFitness(t *testing.T) {
	p := newPop(t)
	dir := t.TempDir()
	store := &Store{Directory: dir, Basename: "run.chk", Interval: 1, Codec: JSONCodec{}}
	require.NoError(t, store.Checkpoint(p))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "0_0_run.chk", entries[0].Name())
}
