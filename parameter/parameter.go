package parameter

import (
	"fmt"

	"github.com/pa-m/geneva"
	"github.com/pa-m/geneva/adaptor"
	"github.com/pa-m/geneva/rng"
)

// Bounds maps an unbounded internal representative onto a bounded external
// value (spec §3, "Bounded-value mapping"). Lo/Hi expose the fundamental
// domain; Transfer must be idempotent and, for Float64Bounds, continuous.
type Bounds[T any] interface {
	Transfer(internal T) T
	Lo() T
	Hi() T
	// RandomInit draws a value uniformly from [Lo, Hi].
	RandomInit(r *rng.Source) T
}

// Float64Bounds implements Bounds[float64] via FoldFloat64.
type Float64Bounds struct{ lo, hi float64 }

// NewFloat64Bounds requires hi > lo.
func NewFloat64Bounds(lo, hi float64) (Float64Bounds, error) {
	if hi <= lo {
		return Float64Bounds{}, invalidArgument("hi must be > lo")
	}
	return Float64Bounds{lo: lo, hi: hi}, nil
}

func (b Float64Bounds) Transfer(x float64) float64        { return FoldFloat64(x, b.lo, b.hi) }
func (b Float64Bounds) Lo() float64                        { return b.lo }
func (b Float64Bounds) Hi() float64                        { return b.hi }
func (b Float64Bounds) RandomInit(r *rng.Source) float64   { return r.UniformFloat64(b.lo, b.hi) }

// Int64Bounds implements Bounds[int64] via FoldInt64.
type Int64Bounds struct{ lo, hi int64 }

// NewInt64Bounds requires hi > lo.
func NewInt64Bounds(lo, hi int64) (Int64Bounds, error) {
	if hi <= lo {
		return Int64Bounds{}, invalidArgument("hi must be > lo")
	}
	return Int64Bounds{lo: lo, hi: hi}, nil
}

func (b Int64Bounds) Transfer(x int64) int64      { return FoldInt64(x, b.lo, b.hi) }
func (b Int64Bounds) Lo() int64                   { return b.lo }
func (b Int64Bounds) Hi() int64                   { return b.hi }
func (b Int64Bounds) RandomInit(r *rng.Source) int64 { return r.UniformInt(b.lo, b.hi) }

// Parameter is a single typed decision variable: an internal representative
// value, zero or more adaptors applied in order, and optional bounds (spec
// §3, §4.2). The zero value is not usable; construct with New.
type Parameter[T any] struct {
	internal     T
	adaptors     []adaptor.Adaptor[T]
	bounds       Bounds[T] // nil: unbounded
	defaultInit  func(r *rng.Source) T
}

// New builds an unbounded Parameter with initial value v and the given
// adaptors (applied in the order given — "Adapt order is deterministic:
// position 0 first", spec §4.3, applies equally to a single parameter's own
// adaptor chain). defaultInit supplies RandomInit's distribution for
// unbounded parameters; it may be nil if RandomInit is never called.
func New[T any](v T, defaultInit func(r *rng.Source) T, adaptors ...adaptor.Adaptor[T]) *Parameter[T] {
	return &Parameter[T]{internal: v, adaptors: adaptors, defaultInit: defaultInit}
}

// NewBounded builds a Parameter whose externally observed value is mapped
// through bounds. v is the initial internal representative; it need not
// itself lie in [lo, hi] but commonly does.
func NewBounded[T any](v T, bounds Bounds[T], adaptors ...adaptor.Adaptor[T]) *Parameter[T] {
	return &Parameter[T]{internal: v, adaptors: adaptors, bounds: bounds}
}

// Bounded reports whether p has a bounded transfer function.
func (p *Parameter[T]) Bounded() bool { return p.bounds != nil }

// BoundsOf returns the configured Bounds, or nil if unbounded.
func (p *Parameter[T]) BoundsOf() Bounds[T] { return p.bounds }

// Value returns the observed value: for bounded parameters this applies the
// transfer function to the internal representative (spec §4.2, "The
// bounded transfer function MUST be applied every time the external value
// is read").
func (p *Parameter[T]) Value() T {
	if p.bounds != nil {
		return p.bounds.Transfer(p.internal)
	}
	return p.internal
}

// Internal returns the raw internal representative, bypassing the transfer
// function. Used by serialization and by tests exercising the fold
// directly (spec §8 scenario 2).
func (p *Parameter[T]) Internal() T { return p.internal }

// SetInternal overwrites the raw internal representative without bounds
// checking. Used by serialization restore.
func (p *Parameter[T]) SetInternal(v T) { p.internal = v }

// SetValue sets the value. For bounded parameters, v must already lie in
// [lo, hi] or SetValue fails with ErrOutOfRange (spec §4.2); the internal
// representative is then set equal to v (already in the fundamental
// domain, so Transfer(v) == v).
func (p *Parameter[T]) SetValue(v T) error {
	if p.bounds == nil {
		p.internal = v
		return nil
	}
	if !valueInBounds(p.bounds, v) {
		return outOfRange("value outside configured bounds")
	}
	p.internal = v
	return nil
}

// valueInBounds compares v against bounds using the ordered numeric kinds
// this package supports (float64, int64); it is the one dispatch site
// SetValue needs to check range without widening Bounds' interface.
func valueInBounds[T any](b Bounds[T], v T) bool {
	switch bb := any(b).(type) {
	case Float64Bounds:
		vv := any(v).(float64)
		return vv >= bb.lo && vv <= bb.hi
	case Int64Bounds:
		vv := any(v).(int64)
		return vv >= bb.lo && vv <= bb.hi
	default:
		return true
	}
}

// Adapt sequentially applies each adaptor to the internal representative,
// position 0 first (spec §4.2, §4.3). Callers (Individual) are responsible
// for marking dirty afterward.
func (p *Parameter[T]) Adapt(r *rng.Source) {
	for _, a := range p.adaptors {
		a.Adapt(&p.internal, r)
	}
}

// RandomInit draws a new value: uniformly from [lo, hi] for bounded
// parameters, or from the type-specific default distribution otherwise
// (spec §4.2).
func (p *Parameter[T]) RandomInit(r *rng.Source) {
	if p.bounds != nil {
		p.internal = p.bounds.RandomInit(r)
		return
	}
	if p.defaultInit != nil {
		p.internal = p.defaultInit(r)
	}
}

// Adaptors returns the parameter's adaptor chain (read-only use expected;
// callers must not retain a reference past a Clone).
func (p *Parameter[T]) Adaptors() []adaptor.Adaptor[T] { return p.adaptors }

// Clone returns a deep copy: a fresh internal value, a fresh adaptors slice
// with each adaptor independently cloned (spec §3: adaptors are never
// shared between Parameters), and the same Bounds (Bounds values are
// immutable, so sharing them is safe).
func (p *Parameter[T]) Clone() *Parameter[T] {
	cp := &Parameter[T]{internal: p.internal, bounds: p.bounds, defaultInit: p.defaultInit}
	if p.adaptors != nil {
		cp.adaptors = make([]adaptor.Adaptor[T], len(p.adaptors))
		for i, a := range p.adaptors {
			cp.adaptors[i] = a.Clone()
		}
	}
	return cp
}

func invalidArgument(msg string) error {
	return fmt.Errorf("parameter: %s: %w", msg, geneva.ErrInvalidArgument)
}

func outOfRange(msg string) error {
	return fmt.Errorf("parameter: %s: %w", msg, geneva.ErrOutOfRange)
}
