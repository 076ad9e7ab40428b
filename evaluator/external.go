package evaluator

import (
	"context"
	"fmt"
	"time"

	"github.com/pa-m/geneva"
	"github.com/pa-m/geneva/individual"
)

// Dispatcher is the boundary a caller implements to hand a ParameterSet's
// evaluation off to an external process or remote worker (spec §4.6,
// "External: evaluation happens out of process ... this package only
// defines the boundary, not a transport"). Dispatch must itself respect
// ctx and return promptly after ctx is done.
type Dispatcher interface {
	Dispatch(ctx context.Context, ind *individual.Individual, maximize bool) (float64, error)
}

// External evaluates individuals by delegating each one to a Dispatcher,
// enforcing a per-individual timeout so one stuck remote worker cannot
// stall the whole batch indefinitely (spec §4.6). A Dispatcher failure or
// timeout is recorded as that individual's own evaluation error, same as a
// failing in-process Objective — it never aborts the batch.
type External struct {
	Dispatcher Dispatcher
	Timeout    time.Duration
}

var _ Evaluator = External{}

// Evaluate implements Evaluator.
func (e External) Evaluate(ctx context.Context, individuals []*individual.Individual, maximize bool) error {
	for _, ind := range individuals {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("evaluator: external: %w: %w", geneva.ErrCancelled, err)
		}
		if !ind.Dirty() {
			continue
		}
		e.dispatchOne(ctx, ind, maximize)
	}
	return nil
}

func (e External) dispatchOne(ctx context.Context, ind *individual.Individual, maximize bool) {
	dctx := ctx
	cancel := func() {}
	if e.Timeout > 0 {
		dctx, cancel = context.WithTimeout(ctx, e.Timeout)
	}
	defer cancel()

	type result struct {
		v   float64
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := e.Dispatcher.Dispatch(dctx, ind, maximize)
		ch <- result{v, err}
	}()

	select {
	case r := <-ch:
		applyExternalResult(ind, r.v, r.err, maximize)
	case <-dctx.Done():
		applyExternalResult(ind, 0, fmt.Errorf("evaluator: external: dispatch did not return before deadline: %w", dctx.Err()), maximize)
	}
}

// applyExternalResult folds a Dispatcher outcome into the individual's own
// state using the same sentinel convention as Individual.Fitness.
func applyExternalResult(ind *individual.Individual, v float64, err error, maximize bool) {
	ind.SetExternalResult(v, err, maximize)
}
