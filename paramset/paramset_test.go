package paramset

import (
	"testing"

	"github.com/pa-m/geneva/adaptor"
	"github.com/pa-m/geneva/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildMixedSet(t *testing.T) *ParameterSet {
	t.Helper()
	g, err := adaptor.NewGaussAdaptor(1.0, 1, 1.0, 0.1, 1e-7, 5.0)
	require.NoError(t, err)
	fe, err := NewBoundedFloat(0, -10, 10, g)
	require.NoError(t, err)

	ig, err := adaptor.NewIntGaussAdaptor(1.0, 1, 2, 0.1, 1, 10)
	require.NoError(t, err)
	ie, err := NewBoundedInt(0, -5, 5, ig)
	require.NoError(t, err)

	bf, err := adaptor.NewBoolFlipAdaptor(1.0, 0, 1.0)
	require.NoError(t, err)
	be := NewBool(false, bf)

	cf, err := adaptor.NewCharFlipAdaptor(1.0, 0, 1.0, []rune("xyz"))
	require.NoError(t, err)
	ce := NewChar('x', []rune("xyz"), cf)

	return New(fe, ie, be, ce)
}

func TestCountByKind(t *testing.T) {
	s := buildMixedSet(t)
	assert.Equal(t, 1, s.CountByKind(KindBoundedFloat64))
	assert.Equal(t, 1, s.CountByKind(KindBoundedInt64))
	assert.Equal(t, 1, s.CountByKind(KindBool))
	assert.Equal(t, 1, s.CountByKind(KindChar))
}

func TestAdaptAllMutatesAndCloneIsIndependent(t *testing.T) {
	s := buildMixedSet(t)
	cp := s.Clone()
	r := rng.New(1, 0)
	s.AdaptAll(r)
	assert.True(t, s.Equal(s, 1e-12))
	assert.False(t, s.Equal(cp, 1e-12), "adapting s must not also mutate its clone")
}

func TestStateRoundTrip(t *testing.T) {
	s := buildMixedSet(t)
	r := rng.New(2, 0)
	s.AdaptAll(r)

	st := s.State()
	restored, err := Restore(st)
	require.NoError(t, err)
	assert.True(t, s.Equal(restored, 1e-10))
}

func TestOrderPreservedByClone(t *testing.T) {
	s := buildMixedSet(t)
	cp := s.Clone()
	require.Equal(t, s.Len(), cp.Len())
	for i := 0; i < s.Len(); i++ {
		assert.Equal(t, s.At(i).Kind(), cp.At(i).Kind())
	}
}
