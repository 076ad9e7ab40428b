// Package halt implements HaltController (spec §4.7): composing
// termination predicates over iteration count, stall count, wall-clock
// duration, a quality threshold, and an arbitrary user predicate.
package halt

import (
	"time"

	"github.com/pa-m/geneva/population"
)

// Predicate is one termination condition. A Controller halts as soon as
// any registered Predicate returns true; the returned reason is recorded
// for callers (spec §4.7, "the reason MUST be recorded").
type Predicate interface {
	Evaluate(p *population.Population) bool
	Reason() string
}

var _ population.HaltController = (*Controller)(nil)

// Controller composes the predicates named in spec §4.7. A zero value
// disables every built-in predicate; Extra predicates are checked in
// registration order after the built-ins.
type Controller struct {
	MaxIterations     int // 0 disables
	MaxStallIterations int // 0 disables
	MaxDuration       time.Duration // 0 disables
	QualityThreshold  *float64 // nil disables; compared under the population's direction
	Extra             []Predicate

	startedAt time.Time
	started   bool
}

// ShouldHalt implements population.HaltController.
func (c *Controller) ShouldHalt(p *population.Population) (bool, string) {
	if !c.started {
		c.startedAt = timeNow()
		c.started = true
	}
	if c.MaxIterations > 0 && p.Iteration() >= c.MaxIterations {
		return true, "iterations"
	}
	if c.MaxStallIterations > 0 && p.StallCounter() >= c.MaxStallIterations {
		return true, "stall"
	}
	if c.MaxDuration > 0 && timeNow().Sub(c.startedAt) >= c.MaxDuration {
		return true, "duration"
	}
	if c.QualityThreshold != nil {
		if best, ok := p.BestPastFitness(); ok && qualityMet(best, *c.QualityThreshold, p.Maximize()) {
			return true, "quality"
		}
	}
	for _, pred := range c.Extra {
		if pred.Evaluate(p) {
			return true, pred.Reason()
		}
	}
	return false, ""
}

func qualityMet(best, threshold float64, maximize bool) bool {
	if maximize {
		return best >= threshold
	}
	return best <= threshold
}

// timeNow is a package variable, not time.Now directly, so tests can
// substitute a deterministic clock (the same seam pa-m's gago teacher uses
// for StartTime in its GA struct).
var timeNow = time.Now

// UserPredicateFunc adapts a func(*population.Population) bool into a
// Predicate with a fixed reason string.
type UserPredicateFunc struct {
	Fn         func(*population.Population) bool
	ReasonText string
}

// Evaluate implements Predicate.
func (u UserPredicateFunc) Evaluate(p *population.Population) bool { return u.Fn(p) }

// Reason implements Predicate.
func (u UserPredicateFunc) Reason() string {
	if u.ReasonText == "" {
		return "user"
	}
	return u.ReasonText
}
