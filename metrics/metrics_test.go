package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/pa-m/geneva/evaluator"
	"github.com/pa-m/geneva/individual"
	"github.com/pa-m/geneva/paramset"
	"github.com/pa-m/geneva/population"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(ps *paramset.ParameterSet) (float64, error) {
	v := ps.At(0).(paramset.FloatElement).Value()
	return v * v, nil
}

func TestRecorderObserveUpdatesGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := New(reg, prometheus.Labels{"run": "test"})

	cfg := population.Config{Mu: 2, Lambda: 3, Evaluator: evaluator.Serial{}, RunSeed: 9}
	p, err := population.New(cfg, func(i int) *individual.Individual {
		fe, ferr := paramset.NewBoundedFloat(float64(i), -10, 10)
		require.NoError(t, ferr)
		return individual.New(paramset.New(fe), square)
	})
	require.NoError(t, err)
	require.NoError(t, p.Bootstrap(context.Background()))
	require.NoError(t, p.Iterate(context.Background(), nil, nil, rec))

	families, err := reg.Gather()
	require.NoError(t, err)
	found := map[string]*dto.MetricFamily{}
	for _, fam := range families {
		found[fam.GetName()] = fam
	}
	require.Contains(t, found, "geneva_iterations_total")
	assert.Equal(t, float64(1), found["geneva_iterations_total"].Metric[0].Counter.GetValue())
	require.Contains(t, found, "geneva_best_fitness")
}

func TestRecorderNilIsNoop(t *testing.T) {
	var rec *Recorder
	assert.NotPanics(t, func() {
		rec.Observe(nil, 10*time.Millisecond)
	})
}
