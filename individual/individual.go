// Package individual implements Individual (spec §4.4): a candidate
// solution made of one ParameterSet, a cached fitness, a dirty flag, and a
// per-algorithm Personality scratch struct.
package individual

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/pa-m/geneva"
	"github.com/pa-m/geneva/paramset"
	"github.com/pa-m/geneva/rng"
)

// Objective evaluates a ParameterSet and returns its fitness, or an error
// if the user's objective function could not produce one (spec §6).
// Objective must not modify the ParameterSet and is treated as pure with
// respect to core state (stateful objectives are the caller's own
// thread-safety responsibility, spec §5).
type Objective func(ps *paramset.ParameterSet) (float64, error)

// Personality is the per-algorithm scratch data attached to every
// Individual (spec §3, §4.4): parent/child role, lineage, and the
// population-level bookkeeping the algorithm propagates each iteration for
// user hooks.
type Personality struct {
	IsParent         bool
	ParentID         int // index of the recombination source parent, -1 if none
	Position         int // this individual's slot in the population
	Generation       int
	BestPastFitness  float64
	StallCount       int
}

// Individual is a candidate solution: a ParameterSet plus cached fitness,
// dirty flag, and Personality (spec §4.4).
type Individual struct {
	ID          uuid.UUID // run-scoped only; never serialized (spec §3 NEW)
	params      *paramset.ParameterSet
	objective   Objective
	cached      float64
	dirty       bool
	evalErr     error // non-nil only while a sentinel fitness stands in for a failed evaluation
	Personality Personality
}

// New builds a dirty Individual (no fitness has been computed yet) wrapping
// params, evaluated by objective when Fitness is first called.
func New(params *paramset.ParameterSet, objective Objective) *Individual {
	return &Individual{
		ID:        uuid.New(),
		params:    params,
		objective: objective,
		dirty:     true,
	}
}

// Params returns the individual's ParameterSet.
func (ind *Individual) Params() *paramset.ParameterSet { return ind.params }

// Dirty reports whether the cached fitness is stale.
func (ind *Individual) Dirty() bool { return ind.dirty }

// MarkDirty invalidates the cached fitness (spec §3, §4.4). Adapt sets the
// dirty flag itself and LoadFrom copies the source's flag; neither calls
// MarkDirty.
func (ind *Individual) MarkDirty() { ind.dirty = true }

// Adapt calls ParameterSet.AdaptAll and marks the individual dirty (spec
// §4.4). r is the caller's thread-local RNG (spec §5).
func (ind *Individual) Adapt(r *rng.Source) {
	ind.params.AdaptAll(r)
	ind.dirty = true
}

// Fitness returns the individual's fitness, evaluating it first if dirty
// (spec §4.4: "the only implicit evaluation trigger"). maximize selects the
// worst-case sentinel direction used when the objective fails
// (spec §4.6/§7): +Inf under minimization, -Inf under maximization. On
// objective failure, dirty deliberately stays true (the spec's caching
// invariant refers to successful evaluation only) and the sentinel value is
// cached so selection can still rank the individual; the returned error
// wraps ErrEvaluationError.
func (ind *Individual) Fitness(maximize bool) (float64, error) {
	if !ind.dirty {
		return ind.cached, nil
	}
	v, err := ind.objective(ind.params)
	if err != nil {
		ind.evalErr = err
		ind.cached = worstCase(maximize)
		return ind.cached, fmt.Errorf("individual: objective failed: %w: %w", geneva.ErrEvaluationError, err)
	}
	ind.cached = v
	ind.dirty = false
	ind.evalErr = nil
	return v, nil
}

// SetExternalResult folds an out-of-process evaluation outcome into the
// individual using the same caching rules as Fitness (spec §4.6, "External"
// strategy): a nil err clears dirty and caches v; a non-nil err leaves
// dirty set, records the sentinel fitness for maximize, and stores err as
// the standing evaluation error. Callers that dispatch evaluation
// themselves (rather than through an Objective) use this instead of
// Fitness to report the result.
func (ind *Individual) SetExternalResult(v float64, err error, maximize bool) {
	if err != nil {
		ind.evalErr = err
		ind.cached = worstCase(maximize)
		ind.dirty = true
		return
	}
	ind.cached = v
	ind.dirty = false
	ind.evalErr = nil
}

// SortKey returns the minimization-normalized fitness used by every sort
// comparison in population (spec §4.5): key == raw fitness when minimizing,
// key == -raw fitness when maximizing, so "smaller is better" uniformly.
//
// SortKey never triggers evaluation. If the individual is dirty and has no
// standing evaluation-error sentinel, that is the one invariant violation
// spec §4.4 calls out by name ("a non-triggering read ... on a dirty
// individual MUST fail with InvariantViolation") and SortKey returns that
// error. A dirty individual that DOES carry an error sentinel (spec §4.6,
// "participate in selection and thus are deprioritized without aborting
// the run") is allowed through using its cached sentinel value.
func (ind *Individual) SortKey(maximize bool) (float64, error) {
	if ind.dirty && ind.evalErr == nil {
		return 0, fmt.Errorf("individual: SortKey read on dirty individual with no evaluation attempted: %w", geneva.ErrInvariantViolation)
	}
	if maximize {
		return -ind.cached, nil
	}
	return ind.cached, nil
}

// RawFitness returns the cached fitness value without triggering
// evaluation, dirty or not. Used by the checkpoint package, which persists
// whatever the individual currently holds (spec §4.8, "the dirty flag is
// preserved" across a round trip).
func (ind *Individual) RawFitness() float64 { return ind.cached }

// Restore rebuilds an Individual from checkpointed state: params and
// objective as usual, plus the raw cached/dirty/evaluation-error/Personality
// fields a serializer captured. A fresh ID is minted (spec §3 NEW,
// "fresh IDs are re-derived, not serialized"). evalErrMsg is the empty
// string when no evaluation error was standing at checkpoint time.
func Restore(params *paramset.ParameterSet, objective Objective, cached float64, dirty bool, evalErrMsg string, personality Personality) *Individual {
	ind := &Individual{
		ID:          uuid.New(),
		params:      params,
		objective:   objective,
		cached:      cached,
		dirty:       dirty,
		Personality: personality,
	}
	if evalErrMsg != "" {
		ind.evalErr = errors.New(evalErrMsg)
	}
	return ind
}

// HasEvaluationError reports whether the last evaluation attempt failed.
func (ind *Individual) HasEvaluationError() bool { return ind.evalErr != nil }

// EvaluationError returns the last evaluation failure, or nil.
func (ind *Individual) EvaluationError() error { return ind.evalErr }

func worstCase(maximize bool) float64 {
	if maximize {
		return math.Inf(-1)
	}
	return math.Inf(1)
}

// LoadFrom performs a deep copy of other into ind: ParameterSet, cached
// fitness, dirty flag, evaluation-error state and Personality (spec §4.4,
// "used by recombination"). ind's own ID is preserved — identity belongs to
// the slot, not the genetic material occupying it.
func (ind *Individual) LoadFrom(other *Individual) {
	ind.params = other.params.Clone()
	ind.objective = other.objective
	ind.cached = other.cached
	ind.dirty = other.dirty
	ind.evalErr = other.evalErr
	ind.Personality = other.Personality
}

// Clone returns a deep, independent copy with a fresh ID.
func (ind *Individual) Clone() *Individual {
	cp := &Individual{
		ID:          uuid.New(),
		params:      ind.params.Clone(),
		objective:   ind.objective,
		cached:      ind.cached,
		dirty:       ind.dirty,
		evalErr:     ind.evalErr,
		Personality: ind.Personality,
	}
	return cp
}
