package checkpoint

import (
	"github.com/pa-m/geneva/individual"
	"github.com/pa-m/geneva/paramset"
)

// IndividualState is the serializable mirror of one Individual: its
// ParameterSet, cached fitness, dirty flag, standing evaluation-error
// message (empty when none), and Personality (spec §4.8 invariants:
// "the dirty flag is preserved"; "per-run identifiers ... are re-derived,
// not serialized" — ID is deliberately absent here).
type IndividualState struct {
	Params      []paramset.ElementState
	Cached      float64
	Dirty       bool
	EvalErr     string
	Personality individual.Personality
}

// PopulationState is the serializable mirror of the checkpointed portion
// of a Population: the best μ individuals plus the run-level bookkeeping a
// resumed run needs to continue stall/halt accounting correctly.
type PopulationState struct {
	Individuals     []IndividualState
	Iteration       int
	StallCounter    int
	BestPastFitness float64
	BestPastValid   bool
	Maximize        bool
}
