package paramset

import (
	"github.com/pa-m/geneva/adaptor"
	"github.com/pa-m/geneva/parameter"
	"github.com/pa-m/geneva/rng"
)

// IntElement wraps a *parameter.Parameter[int64]. Unlike FloatElement, its
// adaptor chain may mix IntGaussAdaptor and IntFlipAdaptor instances, so
// IntElement is built from a plain []adaptor.Adaptor[int64] rather than a
// single concrete adaptor type.
type IntElement struct {
	P *parameter.Parameter[int64]
}

var _ Element = IntElement{}

// NewInt builds an unbounded int64 element.
func NewInt(v int64, adaptors ...adaptor.Adaptor[int64]) IntElement {
	return IntElement{P: parameter.New(v, func(r *rng.Source) int64 {
		return r.UniformInt(-1000, 1000)
	}, adaptors...)}
}

// NewBoundedInt builds a bounded int64 element over [lo, hi].
func NewBoundedInt(v, lo, hi int64, adaptors ...adaptor.Adaptor[int64]) (IntElement, error) {
	b, err := parameter.NewInt64Bounds(lo, hi)
	if err != nil {
		return IntElement{}, err
	}
	return IntElement{P: parameter.NewBounded(v, b, adaptors...)}, nil
}

func (f IntElement) Kind() Kind {
	if f.P.Bounded() {
		return KindBoundedInt64
	}
	return KindInt64
}

func (f IntElement) Adapt(r *rng.Source)      { f.P.Adapt(r) }
func (f IntElement) RandomInit(r *rng.Source) { f.P.RandomInit(r) }
func (f IntElement) Clone() Element           { return IntElement{P: f.P.Clone()} }

func (f IntElement) Equal(other Element, tol float64) bool {
	o, ok := other.(IntElement)
	if !ok || f.Kind() != o.Kind() {
		return false
	}
	if f.P.Internal() != o.P.Internal() {
		return false
	}
	fa, oa := f.P.Adaptors(), o.P.Adaptors()
	if len(fa) != len(oa) {
		return false
	}
	for i := range fa {
		if !intAdaptorEqual(fa[i], oa[i], tol) {
			return false
		}
	}
	return true
}

func intAdaptorEqual(a, b adaptor.Adaptor[int64], tol float64) bool {
	switch av := a.(type) {
	case *adaptor.IntGaussAdaptor:
		bv, ok := b.(*adaptor.IntGaussAdaptor)
		return ok && av.Equal(bv, tol)
	case *adaptor.IntFlipAdaptor:
		_, ok := b.(*adaptor.IntFlipAdaptor)
		return ok && av.State() == b.(*adaptor.IntFlipAdaptor).State()
	default:
		return false
	}
}

// Value returns the observed (transfer-mapped, if bounded) value.
func (f IntElement) Value() int64 { return f.P.Value() }
