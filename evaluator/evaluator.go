// Package evaluator implements the Evaluator abstraction of spec §4.6:
// serial, thread-pool and external/distributed strategies for turning a
// batch of dirty Individuals into non-dirty ones.
package evaluator

import (
	"context"

	"github.com/pa-m/geneva/individual"
)

// Evaluator ensures every individual in the batch ends up non-dirty,
// surfacing per-individual evaluation failures through each Individual's
// own error slot rather than aborting the batch (spec §4.6). maximize
// selects the sentinel direction for failed evaluations. Evaluate returns a
// non-nil error only for a whole-batch condition: ctx cancellation
// (wrapping geneva.ErrCancelled).
type Evaluator interface {
	Evaluate(ctx context.Context, individuals []*individual.Individual, maximize bool) error
}

// forceEvaluate triggers Individual.Fitness, which is the one sanctioned
// evaluation path (spec §4.4); any resulting per-individual error is
// already absorbed into the individual's own sentinel/error state, so it is
// deliberately discarded here rather than bubbled up as a batch failure.
func forceEvaluate(ind *individual.Individual, maximize bool) {
	_, _ = ind.Fitness(maximize)
}
