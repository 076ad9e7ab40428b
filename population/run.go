package population

import (
	"context"
	"fmt"

	"github.com/pa-m/geneva"
	"github.com/pa-m/geneva/individual"
)

// Bootstrap evaluates every individual that is still dirty (normally the
// whole initial population, fresh out of New) so the first Iterate call
// sees valid parent fitnesses. Spec §4.5 names evaluation only as a
// per-iteration step over children; the very first generation has no prior
// iteration to have evaluated its parents, so Run calls this once before
// entering the loop.
func (p *Population) Bootstrap(ctx context.Context) error {
	var dirty []*individual.Individual
	for _, ind := range p.individuals {
		if ind.Dirty() {
			dirty = append(dirty, ind)
		}
	}
	if len(dirty) == 0 {
		return nil
	}
	if err := p.evaluator.Evaluate(ctx, dirty, p.maximize); err != nil {
		return fmt.Errorf("population: bootstrap: %w", err)
	}
	stableSortByKey(p.individuals, p.keyOf)
	if _, ok := p.BestPastFitness(); !ok {
		if best, err := p.individuals[0].Fitness(p.maximize); err == nil {
			p.bestPastFitness = best
			p.bestPastValid = true
		}
	}
	p.markRoles()
	return nil
}

// LoadIndividuals overwrites positions [0, len(loaded)) with the given
// individuals and fills any remaining slots by cloning the last loaded one
// (spec §4.8, "on resume ... if fewer than the population size are loaded,
// the remainder is filled with clones"). Returns ErrInvalidArgument if
// loaded is empty.
func (p *Population) LoadIndividuals(loaded []*individual.Individual) error {
	if len(loaded) == 0 {
		return fmt.Errorf("population: load checkpoint: no individuals: %w", geneva.ErrInvalidArgument)
	}
	n := len(p.individuals)
	for i := 0; i < n; i++ {
		switch {
		case i < len(loaded):
			p.individuals[i] = loaded[i]
		default:
			p.individuals[i] = loaded[len(loaded)-1].Clone()
		}
	}
	p.markRoles()
	return nil
}

// RestoreProgress sets the run-level bookkeeping a checkpoint captured
// alongside its individuals (iteration, stall counter, best-past-fitness),
// so a resumed run continues the original stall/halt accounting rather
// than restarting it from zero.
func (p *Population) RestoreProgress(iteration, stallCounter int, bestPastFitness float64, bestPastValid bool) {
	p.iteration = iteration
	p.stallCounter = stallCounter
	p.bestPastFitness = bestPastFitness
	p.bestPastValid = bestPastValid
}

// Run drives the optimization loop: Bootstrap, then Iterate repeatedly
// until halt fires or ctx is cancelled (spec §4.5 step 9, §4.7). It returns
// the best individual known, the halt reason ("" on cancellation/error),
// and any fatal error (spec §6 "Exit/return contract").
func (p *Population) Run(ctx context.Context, halt HaltController, checkpoints CheckpointStore, reporter Reporter, metrics MetricsRecorder) (*individual.Individual, string, error) {
	if len(p.individuals) == 0 {
		return nil, "", fmt.Errorf("population: run: empty population: %w", geneva.ErrInvalidArgument)
	}
	if err := p.Bootstrap(ctx); err != nil {
		return p.Best(), "", err
	}
	for {
		if err := ctx.Err(); err != nil {
			return p.Best(), "", fmt.Errorf("population: run: %w: %w", geneva.ErrCancelled, err)
		}
		if err := p.Iterate(ctx, checkpoints, reporter, metrics); err != nil {
			return p.Best(), "", err
		}
		if halt != nil {
			if stop, reason := halt.ShouldHalt(p); stop {
				if p.Logger != nil {
					p.Logger.Info().Str("reason", reason).Int("iteration", p.iteration).Msg("halted")
				}
				return p.Best(), reason, nil
			}
		}
	}
}
