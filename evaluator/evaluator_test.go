package evaluator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pa-m/geneva/individual"
	"github.com/pa-m/geneva/paramset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPopulation(n int, objective individual.Objective) []*individual.Individual {
	pop := make([]*individual.Individual, n)
	for i := range pop {
		fe, _ := paramset.NewBoundedFloat(float64(i), -10, 10)
		pop[i] = individual.New(paramset.New(fe), objective)
	}
	return pop
}

func square(ps *paramset.ParameterSet) (float64, error) {
	v := ps.At(0).(paramset.FloatElement).Value()
	return v * v, nil
}

func TestSerialEvaluateClearsDirty(t *testing.T) {
	pop := newPopulation(5, square)
	require.NoError(t, Serial{}.Evaluate(context.Background(), pop, false))
	for _, ind := range pop {
		assert.False(t, ind.Dirty())
	}
}

func TestSerialEvaluateRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pop := newPopulation(3, square)
	err := Serial{}.Evaluate(ctx, pop, false)
	require.Error(t, err)
}

func TestThreadPoolEvaluateClearsDirty(t *testing.T) {
	tp := NewThreadPool(4)
	defer tp.Close()
	pop := newPopulation(20, square)
	require.NoError(t, tp.Evaluate(context.Background(), pop, false))
	for _, ind := range pop {
		assert.False(t, ind.Dirty())
		v, err := ind.Fitness(false)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestThreadPoolSurvivesAcrossIterations(t *testing.T) {
	tp := NewThreadPool(2)
	defer tp.Close()
	for iter := 0; iter < 3; iter++ {
		pop := newPopulation(6, square)
		require.NoError(t, tp.Evaluate(context.Background(), pop, false))
		for _, ind := range pop {
			assert.False(t, ind.Dirty())
		}
	}
}

type constDispatcher struct {
	v   float64
	err error
}

func (c constDispatcher) Dispatch(ctx context.Context, ind *individual.Individual, maximize bool) (float64, error) {
	return c.v, c.err
}

func TestExternalEvaluateSuccess(t *testing.T) {
	ext := External{Dispatcher: constDispatcher{v: 7}}
	pop := newPopulation(2, square)
	require.NoError(t, ext.Evaluate(context.Background(), pop, false))
	for _, ind := range pop {
		v, err := ind.Fitness(false)
		require.NoError(t, err)
		assert.Equal(t, 7.0, v)
	}
}

func TestExternalEvaluateDispatcherError(t *testing.T) {
	boom := errors.New("dispatch failed")
	ext := External{Dispatcher: constDispatcher{err: boom}}
	pop := newPopulation(1, square)
	require.NoError(t, ext.Evaluate(context.Background(), pop, false))
	ind := pop[0]
	assert.True(t, ind.Dirty())
	assert.True(t, ind.HasEvaluationError())
}

type slowDispatcher struct{ delay time.Duration }

func (s slowDispatcher) Dispatch(ctx context.Context, ind *individual.Individual, maximize bool) (float64, error) {
	select {
	case <-time.After(s.delay):
		return 1, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func TestExternalEvaluateTimeout(t *testing.T) {
	ext := External{Dispatcher: slowDispatcher{delay: 50 * time.Millisecond}, Timeout: 5 * time.Millisecond}
	pop := newPopulation(1, square)
	require.NoError(t, ext.Evaluate(context.Background(), pop, false))
	assert.True(t, pop[0].HasEvaluationError())
}
