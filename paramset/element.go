package paramset

import "github.com/pa-m/geneva/rng"

// Element is the single interface every concrete wrapped Parameter[T]
// satisfies, giving ParameterSet one dispatch site per operation instead of
// a type hierarchy (spec §9).
type Element interface {
	Kind() Kind
	Adapt(r *rng.Source)
	RandomInit(r *rng.Source)
	Clone() Element
	// Equal reports structural equality within tol on any floating-point
	// fields; kinds must match.
	Equal(other Element, tol float64) bool
}
