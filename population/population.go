// Package population implements Population / ParentChildAlgorithm (spec
// §4.5): the μ+λ evolutionary loop that owns a fixed (or growing) set of
// Individuals, recombines, adapts, evaluates, selects and reports each
// iteration.
package population

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pa-m/geneva"
	"github.com/pa-m/geneva/evaluator"
	"github.com/pa-m/geneva/individual"
	"github.com/pa-m/geneva/rng"
	"github.com/rs/zerolog"
)

// SortingMode selects how the next generation's parents are chosen (spec
// §4.5, GLOSSARY "Sorting mode").
type SortingMode int

const (
	// SortPlus is μ+λ: whole population competes, quality is monotone
	// non-decreasing.
	SortPlus SortingMode = iota
	// SortComma is μ,λ: only children compete; parents are discarded
	// unconditionally.
	SortComma
	// SortCommaElitist is μ,λ with elitism (the "μ+1 retention" mode).
	SortCommaElitist
)

// RecombinationMode selects how a child picks its source parent (spec
// §4.5).
type RecombinationMode int

const (
	// RecombinationRandom picks uniformly among parents.
	RecombinationRandom RecombinationMode = iota
	// RecombinationValue weights parents by rank, best parent favored.
	RecombinationValue
)

// Reporter receives a callback after every iteration's select/mark step
// (spec §4.11). Population only depends on this narrow interface; the
// report package's table renderer satisfies it without population ever
// importing report.
type Reporter interface {
	Report(p *Population)
}

// MetricsRecorder receives per-iteration observations (spec §4.10).
type MetricsRecorder interface {
	Observe(p *Population, evalDuration time.Duration)
}

// CheckpointStore is consulted after select/mark on the cadence described
// in spec §4.8; Population calls it, but owns no knowledge of the storage
// format.
type CheckpointStore interface {
	// ShouldCheckpoint reports whether the given iteration should be
	// persisted; improved reports whether that iteration bettered the best
	// past fitness.
	ShouldCheckpoint(iteration int, improved bool) bool
	Checkpoint(p *Population) error
}

// HaltController composes termination predicates (spec §4.7). ShouldHalt is
// consulted once per iteration, after select/mark/report/checkpoint.
type HaltController interface {
	ShouldHalt(p *Population) (bool, string)
}

// Population owns μ+λ Individuals and drives the iteration body of spec
// §4.5.
type Population struct {
	individuals []*individual.Individual

	mu  int // parent count
	lam int // child count

	maximize          bool
	sortingMode       SortingMode
	recombinationMode RecombinationMode

	growthRate     int
	maxPopSize     int

	iteration       int
	stallCounter    int
	bestPastFitness float64
	bestPastValid   bool

	evaluator evaluator.Evaluator
	rng       *rng.Source

	// Logger is nil-safe: a nil Logger disables all population logging
	// (spec §4.9, "a nil/zero-value logger must be legal everywhere").
	Logger *zerolog.Logger
}

// Config bundles Population's construction-time parameters.
type Config struct {
	Mu                int
	Lambda            int
	Maximize          bool
	SortingMode       SortingMode
	RecombinationMode RecombinationMode
	GrowthRate        int
	MaxPopSize        int
	Evaluator         evaluator.Evaluator
	RunSeed           uint64
	WorkerIndex       int
	Logger            *zerolog.Logger
}

// New builds a Population of exactly μ+λ individuals, all seeded from init
// (typically a fresh randomly-initialized Individual constructor). Returns
// ErrInvalidArgument if μ < 1, λ < 0, μ > popSize, or init yields fewer than
// μ+λ individuals.
func New(cfg Config, init func(i int) *individual.Individual) (*Population, error) {
	if cfg.Mu < 1 {
		return nil, fmt.Errorf("population: mu must be >= 1: %w", geneva.ErrInvalidArgument)
	}
	if cfg.Lambda < 0 {
		return nil, fmt.Errorf("population: lambda must be >= 0: %w", geneva.ErrInvalidArgument)
	}
	popSize := cfg.Mu + cfg.Lambda
	if cfg.Mu > popSize {
		return nil, fmt.Errorf("population: n_parents > popSize: %w", geneva.ErrInvalidArgument)
	}
	if cfg.Evaluator == nil {
		return nil, fmt.Errorf("population: evaluator must not be nil: %w", geneva.ErrInvalidArgument)
	}
	inds := make([]*individual.Individual, popSize)
	for i := 0; i < popSize; i++ {
		ind := init(i)
		if ind == nil {
			return nil, fmt.Errorf("population: init returned nil individual at %d: %w", i, geneva.ErrInvalidArgument)
		}
		inds[i] = ind
	}
	p := &Population{
		individuals:       inds,
		mu:                cfg.Mu,
		lam:               cfg.Lambda,
		maximize:          cfg.Maximize,
		sortingMode:       cfg.SortingMode,
		recombinationMode: cfg.RecombinationMode,
		growthRate:        cfg.GrowthRate,
		maxPopSize:        cfg.MaxPopSize,
		evaluator:         cfg.Evaluator,
		rng:               rng.New(cfg.RunSeed, cfg.WorkerIndex),
		Logger:            cfg.Logger,
	}
	p.markRoles()
	return p, nil
}

// Individuals returns the current population, in current order. Index 0 is
// the best individual after Iterate returns.
func (p *Population) Individuals() []*individual.Individual { return p.individuals }

// Mu returns the parent count.
func (p *Population) Mu() int { return p.mu }

// Lambda returns the child count.
func (p *Population) Lambda() int { return p.lam }

// Maximize reports the optimization direction.
func (p *Population) Maximize() bool { return p.maximize }

// Iteration returns the 0-based iteration count completed so far.
func (p *Population) Iteration() int { return p.iteration }

// StallCounter returns the number of consecutive iterations without
// improvement of best fitness.
func (p *Population) StallCounter() int { return p.stallCounter }

// BestPastFitness returns the best raw fitness observed in any prior
// iteration (the value stall/halt compare against). Valid once Bootstrap
// has evaluated the population, or once the first Iterate has completed.
func (p *Population) BestPastFitness() (float64, bool) { return p.bestPastFitness, p.bestPastValid }

// Best returns individuals[0], the best individual under the active
// sorting mode once selectBest has run at least once.
func (p *Population) Best() *individual.Individual { return p.individuals[0] }

func (p *Population) markRoles() {
	for i, ind := range p.individuals {
		ind.Personality.IsParent = i < p.mu
		ind.Personality.Position = i
	}
}

// Iterate runs one pass of the algorithm body (spec §4.5 steps 1-8): grow,
// recombine, adapt children, evaluate, select, mark, report, checkpoint.
// Halt is intentionally not checked here; callers (or Run) consult a
// HaltController separately so Iterate stays a pure single-pass primitive.
func (p *Population) Iterate(ctx context.Context, checkpoints CheckpointStore, reporter Reporter, metrics MetricsRecorder) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("population: iterate: %w: %w", geneva.ErrCancelled, err)
	}

	p.grow()
	p.recombine()
	p.adaptChildren()

	evalStart := time.Now()
	if err := p.evaluator.Evaluate(ctx, p.individuals[p.mu:], p.maximize); err != nil {
		return fmt.Errorf("population: evaluate: %w", err)
	}
	evalDuration := time.Since(evalStart)

	p.selectBest()
	improved := p.postEvaluate()
	p.markRoles()

	p.logIteration(improved)
	if reporter != nil {
		reporter.Report(p)
	}
	if metrics != nil {
		metrics.Observe(p, evalDuration)
	}
	if checkpoints != nil && checkpoints.ShouldCheckpoint(p.iteration, improved) {
		if err := checkpoints.Checkpoint(p); err != nil && p.Logger != nil {
			p.Logger.Error().Err(err).Int("iteration", p.iteration).Msg("checkpoint failed")
		}
	}

	p.iteration++
	return nil
}

func (p *Population) logIteration(improved bool) {
	if p.Logger == nil {
		return
	}
	best, err := p.Individuals()[0].Fitness(p.maximize)
	event := p.Logger.Debug()
	if err != nil {
		event = p.Logger.Error()
	}
	event.Int("iteration", p.iteration).
		Float64("best_fitness", best).
		Int("stall", p.stallCounter).
		Bool("improved", improved).
		Msg("iteration complete")
}

// grow enlarges the population by cloning the current best individual,
// when configured (spec §4.5 step 1).
func (p *Population) grow() {
	if p.iteration == 0 || p.growthRate <= 0 {
		return
	}
	popSize := len(p.individuals)
	if popSize+p.growthRate > p.maxPopSize {
		return
	}
	best := p.individuals[0]
	for i := 0; i < p.growthRate; i++ {
		p.individuals = append(p.individuals, best.Clone())
		p.lam++
	}
}

// sortKeyOf is the minimization-normalized fitness accessor used throughout
// selection and recombination (spec §4.5 "Minimization-normalized
// fitness").
func (p *Population) sortKeyOf(ind *individual.Individual) (float64, error) {
	return ind.SortKey(p.maximize)
}

func stableSortByKey(inds []*individual.Individual, keyOf func(*individual.Individual) float64) {
	sort.SliceStable(inds, func(i, j int) bool {
		return keyOf(inds[i]) < keyOf(inds[j])
	})
}
