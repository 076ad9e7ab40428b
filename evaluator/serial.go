package evaluator

import (
	"context"
	"fmt"

	"github.com/pa-m/geneva"
	"github.com/pa-m/geneva/individual"
)

// Serial evaluates individuals in order, on the calling goroutine.
type Serial struct{}

var _ Evaluator = Serial{}

// Evaluate implements Evaluator. Cancellation is checked before every
// individual (spec §5, "checked ... inside the Evaluator before ... each
// work item").
func (Serial) Evaluate(ctx context.Context, individuals []*individual.Individual, maximize bool) error {
	for _, ind := range individuals {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("evaluator: serial: %w: %w", geneva.ErrCancelled, err)
		}
		forceEvaluate(ind, maximize)
	}
	return nil
}
