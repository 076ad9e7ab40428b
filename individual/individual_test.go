package individual

import (
	"errors"
	"math"
	"testing"

	"github.com/pa-m/geneva/paramset"
	"github.com/pa-m/geneva/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sumSquares(ps *paramset.ParameterSet) (float64, error) {
	sum := 0.0
	for i := 0; i < ps.Len(); i++ {
		v := ps.At(i).(paramset.FloatElement).Value()
		sum += v * v
	}
	return sum, nil
}

func newTestIndividual() *Individual {
	fe, _ := paramset.NewBoundedFloat(3, -10, 10)
	ps := paramset.New(fe)
	return New(ps, sumSquares)
}

func TestFitnessClearsDirty(t *testing.T) {
	ind := newTestIndividual()
	assert.True(t, ind.Dirty())
	v, err := ind.Fitness(false)
	require.NoError(t, err)
	assert.InDelta(t, 9.0, v, 1e-12)
	assert.False(t, ind.Dirty())
}

func TestAdaptMarksDirty(t *testing.T) {
	ind := newTestIndividual()
	_, _ = ind.Fitness(false)
	require.False(t, ind.Dirty())
	ind.Adapt(rng.New(1, 0))
	assert.True(t, ind.Dirty())
}

func TestSortKeyFailsOnUntriggeredDirtyRead(t *testing.T) {
	ind := newTestIndividual()
	_, err := ind.SortKey(false)
	require.Error(t, err)
}

func TestSortKeyMinimizeVsMaximize(t *testing.T) {
	ind := newTestIndividual()
	v, _ := ind.Fitness(false)
	kMin, err := ind.SortKey(false)
	require.NoError(t, err)
	assert.Equal(t, v, kMin)

	ind2 := newTestIndividual()
	v2, _ := ind2.Fitness(true)
	kMax, err := ind2.SortKey(true)
	require.NoError(t, err)
	assert.Equal(t, -v2, kMax)
}

func TestEvaluationErrorSentinel(t *testing.T) {
	fe, _ := paramset.NewBoundedFloat(0, -10, 10)
	ps := paramset.New(fe)
	boom := errors.New("boom")
	ind := New(ps, func(*paramset.ParameterSet) (float64, error) { return 0, boom })

	_, err := ind.Fitness(false)
	require.Error(t, err)
	assert.True(t, ind.Dirty(), "dirty must stay set on evaluation failure")
	assert.True(t, ind.HasEvaluationError())

	// Sentinel must now be readable via SortKey despite remaining dirty.
	k, err := ind.SortKey(false)
	require.NoError(t, err)
	assert.True(t, math.IsInf(k, 1))
}

func TestEvaluationErrorSentinelMaximize(t *testing.T) {
	fe, _ := paramset.NewBoundedFloat(0, -10, 10)
	ps := paramset.New(fe)
	boom := errors.New("boom")
	ind := New(ps, func(*paramset.ParameterSet) (float64, error) { return 0, boom })
	_, _ = ind.Fitness(true)
	k, err := ind.SortKey(true)
	require.NoError(t, err)
	assert.True(t, math.IsInf(k, 1), "maximize sentinel must still sort worst (key=+Inf)")
}

func TestLoadFromDeepCopies(t *testing.T) {
	src := newTestIndividual()
	src.Personality.IsParent = true
	src.Personality.Position = 2
	_, _ = src.Fitness(false)

	dst := newTestIndividual()
	dst.LoadFrom(src)

	assert.Equal(t, src.Personality, dst.Personality)
	assert.False(t, dst.Dirty())

	// Mutate dst's parameter and confirm src is unaffected (deep copy).
	require.NoError(t, dst.Params().At(0).(paramset.FloatElement).P.SetValue(-3))
	assert.NotEqual(t, src.Params().At(0).(paramset.FloatElement).Value(),
		dst.Params().At(0).(paramset.FloatElement).Value())
}

func TestCloneGetsFreshID(t *testing.T) {
	ind := newTestIndividual()
	cp := ind.Clone()
	assert.NotEqual(t, ind.ID, cp.ID)
}
