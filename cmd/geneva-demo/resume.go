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
	"github.com/pa-m/geneva/paramset"
	"github.com/pa-m/geneva/population"
	"github.com/pa-m/geneva/report"
	"github.com/pa-m/geneva/rng"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// newResumeCmd restores an interrupted parabola run from a checkpoint file
// (spec §8 scenario 4). The checkpoint restores the best μ individuals and
// the iteration/stall bookkeeping; the population's random generator is
// re-seeded from parabolaRunSeed rather than restored, so the resumed run
// does not reproduce the draws an uninterrupted run would have made from
// that point on.
func newResumeCmd(logger *zerolog.Logger) *cobra.Command {
	r := config.Defaults()
	r.NParents = 5
	r.PopulationSize = 100
	r.MaxIterations = 2000
	r.ReportIteration = 50

	var checkpointFile string
	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Resume a parabola run from a checkpoint file (spec §8 scenario 4)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if checkpointFile == "" {
				return fmt.Errorf("resume: --checkpoint-file is required")
			}
			return runResume(cmd.Context(), logger, &r, checkpointFile)
		},
	}
	cmd.Flags().StringVar(&checkpointFile, "checkpoint-file", "", "path to a checkpoint written by the parabola subcommand")
	config.BindFlags(cmd, &r)
	return cmd
}

func runResume(ctx context.Context, logger *zerolog.Logger, r *config.Run, checkpointFile string) error {
	placeholder := func(i int) *individual.Individual {
		elements := make([]paramset.Element, parabolaDimension)
		for d := 0; d < parabolaDimension; d++ {
			ga, err := adaptor.NewGaussAdaptor(1.0, 1, 1, 0.001, r.SigmaMin, r.SigmaMax)
			if err != nil {
				panic(err)
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
	pop, err := population.New(cfg, placeholder)
	if err != nil {
		return fmt.Errorf("building population: %w", err)
	}

	store := &checkpoint.Store{
		Directory: r.CheckpointDirectory,
		Basename:  r.CheckpointBasename,
		Interval:  r.CheckpointInterval,
		Codec:     checkpoint.JSONCodec{},
	}
	if err := store.Resume(checkpointFile, sumOfSquares, pop); err != nil {
		return fmt.Errorf("resuming from %s: %w", checkpointFile, err)
	}

	haltCtl := &halt.Controller{
		MaxIterations:      r.MaxIterations,
		MaxStallIterations: r.MaxStallIterations,
		MaxDuration:        r.MaxDuration,
		QualityThreshold:   r.QualityThreshold,
	}
	tbl := &report.Table{Every: r.ReportIteration}

	best, reason, err := pop.Run(ctx, haltCtl, store, tbl, nil)
	if err != nil {
		return fmt.Errorf("running optimization: %w", err)
	}
	fitness, _ := best.Fitness(r.Maximize)
	logger.Info().
		Str("halt_reason", reason).
		Float64("best_fitness", fitness).
		Int("iterations", pop.Iteration()).
		Msg("resumed run complete")
	return nil
}
