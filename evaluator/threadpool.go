package evaluator

import (
	"context"
	"fmt"
	"sync"

	"github.com/pa-m/geneva"
	"github.com/pa-m/geneva/individual"
)

// ThreadPool evaluates individuals across N long-lived worker goroutines
// (spec §5: "Workers are long-lived across iterations"). No individual is
// touched by more than one worker at a time — each job is exactly one
// Individual, so that invariant holds trivially regardless of scheduling.
//
// Grounded on the worker-pool-with-panic-recovery shape in
// other_examples/.../gago's evaluatePopulationInParallel, generalized to a
// persistent pool (that file spins up and tears down a pool per
// generation) and to this package's cancellation-token contract.
type ThreadPool struct {
	jobs chan job
	wg   sync.WaitGroup
}

type job struct {
	ind      *individual.Individual
	maximize bool
	done     chan<- struct{}
}

// NewThreadPool starts n worker goroutines immediately; n <= 0 is treated
// as 1.
func NewThreadPool(n int) *ThreadPool {
	if n <= 0 {
		n = 1
	}
	tp := &ThreadPool{jobs: make(chan job)}
	tp.wg.Add(n)
	for i := 0; i < n; i++ {
		go tp.worker()
	}
	return tp
}

func (tp *ThreadPool) worker() {
	defer tp.wg.Done()
	for j := range tp.jobs {
		func() {
			defer func() {
				// A panicking objective must not wedge the pool for later
				// iterations. Unlike an objective that returns an error, a
				// panic records no sentinel fitness or evaluation error: the
				// individual is simply left dirty, and its next sanctioned
				// Fitness() call retries the evaluation.
				recover()
				close(j.done)
			}()
			forceEvaluate(j.ind, j.maximize)
		}()
	}
}

var _ Evaluator = (*ThreadPool)(nil)

// Evaluate dispatches individuals to the pool and waits for all of them,
// checking ctx both before dispatch and while waiting (spec §5).
func (tp *ThreadPool) Evaluate(ctx context.Context, individuals []*individual.Individual, maximize bool) error {
	dones := make([]chan struct{}, len(individuals))
	for i, ind := range individuals {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("evaluator: threadpool: %w: %w", geneva.ErrCancelled, err)
		}
		done := make(chan struct{})
		dones[i] = done
		select {
		case tp.jobs <- job{ind: ind, maximize: maximize, done: done}:
		case <-ctx.Done():
			return fmt.Errorf("evaluator: threadpool: %w: %w", geneva.ErrCancelled, ctx.Err())
		}
	}
	for _, done := range dones {
		select {
		case <-done:
		case <-ctx.Done():
			return fmt.Errorf("evaluator: threadpool: %w: %w", geneva.ErrCancelled, ctx.Err())
		}
	}
	return nil
}

// Close stops all worker goroutines. Call once the optimization run is
// fully done; Evaluate must not be called again afterward.
func (tp *ThreadPool) Close() {
	close(tp.jobs)
	tp.wg.Wait()
}
