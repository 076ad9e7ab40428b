package population

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/pa-m/geneva/adaptor"
	"github.com/pa-m/geneva/evaluator"
	"github.com/pa-m/geneva/individual"
	"github.com/pa-m/geneva/paramset"
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

func newParabolaIndividual(t *testing.T, seed int) *individual.Individual {
	t.Helper()
	ga, err := adaptor.NewGaussAdaptor(1.0, 0, 1.0, 0.001, 1e-7, 5)
	require.NoError(t, err)
	fe, err := paramset.NewBoundedFloat(float64(seed%5)-2, -100, 100, ga)
	require.NoError(t, err)
	ps := paramset.New(fe)
	return individual.New(ps, sumSquares)
}

func newParabolaPopulation(t *testing.T, mu, lambda int, mode SortingMode) *Population {
	t.Helper()
	cfg := Config{
		Mu:          mu,
		Lambda:      lambda,
		Maximize:    false,
		SortingMode: mode,
		Evaluator:   evaluator.Serial{},
		RunSeed:     42,
	}
	p, err := New(cfg, func(i int) *individual.Individual { return newParabolaIndividual(t, i) })
	require.NoError(t, err)
	return p
}

func TestPopulationNewRejectsBadMu(t *testing.T) {
	_, err := New(Config{Mu: 0, Lambda: 5, Evaluator: evaluator.Serial{}}, func(i int) *individual.Individual {
		return newParabolaIndividual(t, i)
	})
	require.Error(t, err)

	_, err = New(Config{Mu: 10, Lambda: -1, Evaluator: evaluator.Serial{}}, func(i int) *individual.Individual {
		return newParabolaIndividual(t, i)
	})
	require.Error(t, err)
}

func TestIteratePlusMonotonicity(t *testing.T) {
	p := newParabolaPopulation(t, 5, 20, SortPlus)
	ctx := context.Background()
	require.NoError(t, p.Bootstrap(ctx))

	prevBest, _ := p.BestPastFitness()
	for i := 0; i < 30; i++ {
		require.NoError(t, p.Iterate(ctx, nil, nil, nil))
		best, err := p.Best().Fitness(false)
		require.NoError(t, err)
		assert.LessOrEqual(t, best, prevBest+1e-9, "best fitness must not regress under plus selection")
		prevBest = best
	}
}

func TestSelectCommaIgnoresParents(t *testing.T) {
	p := newParabolaPopulation(t, 1, 10, SortComma)
	ctx := context.Background()
	require.NoError(t, p.Bootstrap(ctx))

	// Inject an artificially perfect parent fitness; comma selection must
	// still be willing to replace it with a worse child (spec §8 scenario
	// 3: "manually injecting a perfect parent fitness of 0 does not
	// prevent it being replaced").
	ga, err := adaptor.NewGaussAdaptor(1.0, 0, 1.0, 0.001, 1e-7, 5)
	require.NoError(t, err)
	fe, err := paramset.NewBoundedFloat(0, -100, 100, ga)
	require.NoError(t, err)
	p.individuals[0].LoadFrom(individual.New(paramset.New(fe), sumSquares))
	_, err = p.individuals[0].Fitness(false)
	require.NoError(t, err)

	require.NoError(t, p.Iterate(ctx, nil, nil, nil))

	got, err := p.individuals[0].Fitness(false)
	require.NoError(t, err)
	assert.NotEqual(t, 0.0, got, "comma selection must discard the perfect parent unconditionally")
}

func TestEvaluationErrorIsolation(t *testing.T) {
	failing := func(ps *paramset.ParameterSet) (float64, error) {
		v := ps.At(0).(paramset.FloatElement).Value()
		if v == 0 {
			return 0, errors.New("objective undefined at zero")
		}
		return v * v, nil
	}
	cfg := Config{
		Mu:        3,
		Lambda:    10,
		Maximize:  false,
		Evaluator: evaluator.Serial{},
		RunSeed:   7,
	}
	p, err := New(cfg, func(i int) *individual.Individual {
		// Individual 0 sits exactly at the objective's failure point; the
		// rest start elsewhere so selection has real work to isolate it
		// from (spec §8 scenario 5).
		v := float64(i)
		fe, ferr := paramset.NewBoundedFloat(v, -10, 10)
		require.NoError(t, ferr)
		return individual.New(paramset.New(fe), failing)
	})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, p.Bootstrap(ctx))

	// Selection must not have crashed, and the offending individual must
	// sort to the back of the population.
	last := p.individuals[len(p.individuals)-1]
	k, kerr := last.SortKey(false)
	require.NoError(t, kerr)
	assert.True(t, math.IsInf(k, 1))

	best, berr := p.individuals[0].Fitness(false)
	require.NoError(t, berr)
	assert.False(t, math.IsInf(best, 1))
}

func TestGrowthEnlargesPopulation(t *testing.T) {
	cfg := Config{
		Mu:         2,
		Lambda:     3,
		Evaluator:  evaluator.Serial{},
		RunSeed:    1,
		GrowthRate: 2,
		MaxPopSize: 20,
	}
	p, err := New(cfg, func(i int) *individual.Individual { return newParabolaIndividual(t, i) })
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, p.Bootstrap(ctx))
	startSize := len(p.Individuals())

	// Growth is only considered for iteration > 0 (spec §4.5 step 1).
	require.NoError(t, p.Iterate(ctx, nil, nil, nil))
	assert.Equal(t, startSize, len(p.Individuals()))

	require.NoError(t, p.Iterate(ctx, nil, nil, nil))
	assert.Equal(t, startSize+2, len(p.Individuals()))
}

func TestRunHaltsOnPredicate(t *testing.T) {
	p := newParabolaPopulation(t, 3, 5, SortPlus)
	halt := haltAfterN{n: 4}
	best, reason, err := p.Run(context.Background(), &halt, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "iterations", reason)
	assert.NotNil(t, best)
	assert.Equal(t, 4, p.Iteration())
}

type haltAfterN struct{ n int }

func (h *haltAfterN) ShouldHalt(p *Population) (bool, string) {
	if p.Iteration() >= h.n {
		return true, "iterations"
	}
	return false, ""
}
