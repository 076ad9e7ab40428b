package main

import (
	"context"
	"fmt"

	"github.com/pa-m/geneva/adaptor"
	"github.com/pa-m/geneva/checkpoint"
	"github.com/pa-m/geneva/config"
	"github.com/pa-m/geneva/evaluator"
	"github.com/pa-m/geneva/halt"
	"github.com/pa-m/geneva/individual"
	"github.com/pa-m/geneva/metrics"
	"github.com/pa-m/geneva/paramset"
	"github.com/pa-m/geneva/population"
	"github.com/pa-m/geneva/report"
	"github.com/pa-m/geneva/rng"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// parabolaRunSeed is the demo's fixed run seed, so repeated invocations
// with the same flags reproduce the same search (spec §5 RNG discipline).
const parabolaRunSeed uint64 = 1

// parabolaDimension is the parameter count of the demo objective (spec §8
// scenario 1: "10 bounded-real parameters").
const parabolaDimension = 10

// sumOfSquares is the demo objective: sum(x_i^2), minimized at the origin.
func sumOfSquares(ps *paramset.ParameterSet) (float64, error) {
	var sum float64
	for i := 0; i < ps.Len(); i++ {
		v := ps.At(i).(paramset.FloatElement).Value()
		sum += v * v
	}
	return sum, nil
}

func newParabolaCmd(logger *zerolog.Logger) *cobra.Command {
	r := config.Defaults()
	r.NParents = 5
	r.PopulationSize = 100
	r.MaxIterations = 2000
	r.ReportIteration = 50
	r.SigmaMin = 1e-7
	r.SigmaMax = 5

	var yamlPath, envPath string
	cmd := &cobra.Command{
		Use:   "parabola",
		Short: "Minimize sum(x_i^2) over 10 bounded-real parameters (spec §8 scenario 1)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(envPath); err != nil {
				logger.Warn().Err(err).Msg("could not load .env file, continuing with environment variables")
			}
			if err := config.LoadYAML(yamlPath, &r); err != nil {
				return err
			}
			return runParabola(cmd.Context(), logger, &r)
		},
	}
	cmd.Flags().StringVar(&yamlPath, "config", "", "YAML config file overlaying the defaults")
	cmd.Flags().StringVar(&envPath, "env-file", "", ".env file loaded before flags are parsed")
	config.BindFlags(cmd, &r)
	return cmd
}

func runParabola(ctx context.Context, logger *zerolog.Logger, r *config.Run) error {
	if _, err := adaptor.NewGaussAdaptor(1.0, 1, 1, 0.001, r.SigmaMin, r.SigmaMax); err != nil {
		return fmt.Errorf("building adaptor: %w", err)
	}
	init := func(i int) *individual.Individual {
		elements := make([]paramset.Element, parabolaDimension)
		for d := 0; d < parabolaDimension; d++ {
			ga, err := adaptor.NewGaussAdaptor(1.0, 1, 1, 0.001, r.SigmaMin, r.SigmaMax)
			if err != nil {
				panic(err) // same arguments as the check at the top of runParabola, never invalid here
			}
			fe, err := paramset.NewBoundedFloat(0, -100, 100, ga)
			if err != nil {
				panic(err)
			}
			elements[d] = fe
		}
		ps := paramset.New(elements...)
		ps.RandomInitAll(rng.New(parabolaRunSeed, i))
		return individual.New(ps, sumOfSquares)
	}

	cfg := population.Config{
		Mu:                r.NParents,
		Lambda:            r.PopulationSize - r.NParents,
		Maximize:          r.Maximize,
		SortingMode:       r.PopulationSortingMode(),
		RecombinationMode: r.PopulationRecombinationMode(),
		GrowthRate:        r.GrowthRate,
		MaxPopSize:        r.MaxPopulationSize,
		Evaluator:         evaluator.Serial{},
		RunSeed:           parabolaRunSeed,
		Logger:            logger,
	}
	pop, err := population.New(cfg, init)
	if err != nil {
		return fmt.Errorf("building population: %w", err)
	}

	haltCtl := &halt.Controller{
		MaxIterations:      r.MaxIterations,
		MaxStallIterations: r.MaxStallIterations,
		MaxDuration:        r.MaxDuration,
		QualityThreshold:   r.QualityThreshold,
	}
	tbl := &report.Table{Every: r.ReportIteration}
	reg := prometheus.NewRegistry()
	rec := metrics.New(reg, prometheus.Labels{"demo": "parabola"})

	var store population.CheckpointStore
	if r.CheckpointDirectory != "" {
		store = &checkpoint.Store{
			Directory: r.CheckpointDirectory,
			Basename:  r.CheckpointBasename,
			Interval:  r.CheckpointInterval,
			Codec:     checkpoint.JSONCodec{},
		}
	}

	best, reason, err := pop.Run(ctx, haltCtl, store, tbl, rec)
	if err != nil {
		return fmt.Errorf("running optimization: %w", err)
	}
	fitness, _ := best.Fitness(r.Maximize)
	logger.Info().
		Str("halt_reason", reason).
		Float64("best_fitness", fitness).
		Int("iterations", pop.Iteration()).
		Msg("parabola run complete")
	return nil
}
