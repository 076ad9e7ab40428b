package checkpoint

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pa-m/geneva"
	"github.com/pa-m/geneva/individual"
	"github.com/pa-m/geneva/paramset"
	"github.com/pa-m/geneva/population"
)

// Store implements population.CheckpointStore (spec §4.8): it persists the
// best μ individuals on the configured cadence and can reload them on
// resume. A non-nil Codec is required; Directory is created on first write
// if missing.
type Store struct {
	Directory string
	Basename  string
	// Interval is checkpoint_interval (spec §6): checkpoint every
	// iteration whose index mod Interval == 0. Interval == -1 means
	// "on every improvement" instead; Interval <= 0 (other than -1)
	// disables checkpointing.
	Interval int
	Codec    Codec
}

var _ population.CheckpointStore = (*Store)(nil)

// ShouldCheckpoint implements population.CheckpointStore.
func (s *Store) ShouldCheckpoint(iteration int, improved bool) bool {
	switch {
	case s.Interval == -1:
		return improved
	case s.Interval > 0:
		return iteration%s.Interval == 0
	default:
		return false
	}
}

// Checkpoint implements population.CheckpointStore. IoError on a write
// failure is non-fatal to the run (spec §7): the caller (population.Iterate)
// logs and continues.
func (s *Store) Checkpoint(p *population.Population) error {
	state := buildState(p)
	data, err := s.Codec.Marshal(state)
	if err != nil {
		return fmt.Errorf("checkpoint: marshal: %w: %w", geneva.ErrIoError, err)
	}
	if err := os.MkdirAll(s.Directory, 0o755); err != nil {
		return fmt.Errorf("checkpoint: mkdir: %w: %w", geneva.ErrIoError, err)
	}
	best := p.Individuals()[0]
	bestFitness := best.RawFitness()
	path := filepath.Join(s.Directory, fmt.Sprintf("%d_%v_%s", p.Iteration(), bestFitness, s.Basename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("checkpoint: write %s: %w: %w", path, geneva.ErrIoError, err)
	}
	return nil
}

func buildState(p *population.Population) *PopulationState {
	mu := p.Mu()
	inds := p.Individuals()[:mu]
	states := make([]IndividualState, mu)
	for i, ind := range inds {
		errMsg := ""
		if ind.HasEvaluationError() {
			errMsg = ind.EvaluationError().Error()
		}
		states[i] = IndividualState{
			Params:      ind.Params().State(),
			Cached:      ind.RawFitness(),
			Dirty:       ind.Dirty(),
			EvalErr:     errMsg,
			Personality: ind.Personality,
		}
	}
	bestPast, valid := p.BestPastFitness()
	return &PopulationState{
		Individuals:     states,
		Iteration:       p.Iteration(),
		StallCounter:    p.StallCounter(),
		BestPastFitness: bestPast,
		BestPastValid:   valid,
		Maximize:        p.Maximize(),
	}
}

// Resume reads the checkpoint at path, rebuilds its individuals against
// objective, and applies them to p via LoadIndividuals/RestoreProgress
// (spec §4.8, "on resume, the population is populated with deserialized
// individuals, overwriting positions 0..k").
func (s *Store) Resume(path string, objective individual.Objective, p *population.Population) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("checkpoint: resume: read %s: %w: %w", path, geneva.ErrIoError, err)
	}
	var state PopulationState
	if err := s.Codec.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("checkpoint: resume: unmarshal %s: %w: %w", path, geneva.ErrIoError, err)
	}
	loaded := make([]*individual.Individual, len(state.Individuals))
	for i, is := range state.Individuals {
		ps, err := paramset.Restore(is.Params)
		if err != nil {
			return fmt.Errorf("checkpoint: resume: restore parameters: %w", err)
		}
		loaded[i] = individual.Restore(ps, objective, is.Cached, is.Dirty, is.EvalErr, is.Personality)
	}
	if err := p.LoadIndividuals(loaded); err != nil {
		return err
	}
	p.RestoreProgress(state.Iteration, state.StallCounter, state.BestPastFitness, state.BestPastValid)
	return nil
}
