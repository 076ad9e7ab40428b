package paramset

import (
	"math"

	"github.com/pa-m/geneva/adaptor"
	"github.com/pa-m/geneva/parameter"
	"github.com/pa-m/geneva/rng"
)

// FloatElement wraps a *parameter.Parameter[float64]. Its adaptor chain is
// restricted to GaussAdaptor, the only float64 adaptor this module defines.
type FloatElement struct {
	P *parameter.Parameter[float64]
}

var _ Element = FloatElement{}

// NewFloat builds an unbounded float64 element with the given initial
// value and gaussian adaptors.
func NewFloat(v float64, adaptors ...*adaptor.GaussAdaptor) FloatElement {
	return FloatElement{P: parameter.New(v, func(r *rng.Source) float64 {
		return r.UniformFloat64(-1, 1)
	}, toGaussSlice(adaptors)...)}
}

// NewBoundedFloat builds a bounded float64 element over [lo, hi].
func NewBoundedFloat(v, lo, hi float64, adaptors ...*adaptor.GaussAdaptor) (FloatElement, error) {
	b, err := parameter.NewFloat64Bounds(lo, hi)
	if err != nil {
		return FloatElement{}, err
	}
	return FloatElement{P: parameter.NewBounded(v, b, toGaussSlice(adaptors)...)}, nil
}

func toGaussSlice(as []*adaptor.GaussAdaptor) []adaptor.Adaptor[float64] {
	out := make([]adaptor.Adaptor[float64], len(as))
	for i, a := range as {
		out[i] = a
	}
	return out
}

func (f FloatElement) Kind() Kind {
	if f.P.Bounded() {
		return KindBoundedFloat64
	}
	return KindFloat64
}

func (f FloatElement) Adapt(r *rng.Source)      { f.P.Adapt(r) }
func (f FloatElement) RandomInit(r *rng.Source) { f.P.RandomInit(r) }
func (f FloatElement) Clone() Element           { return FloatElement{P: f.P.Clone()} }

func (f FloatElement) Equal(other Element, tol float64) bool {
	o, ok := other.(FloatElement)
	if !ok || f.Kind() != o.Kind() {
		return false
	}
	if math.Abs(f.P.Internal()-o.P.Internal()) > tol {
		return false
	}
	fa, oa := f.P.Adaptors(), o.P.Adaptors()
	if len(fa) != len(oa) {
		return false
	}
	for i := range fa {
		ga1, ok1 := fa[i].(*adaptor.GaussAdaptor)
		ga2, ok2 := oa[i].(*adaptor.GaussAdaptor)
		if !ok1 || !ok2 || !ga1.Equal(ga2, tol) {
			return false
		}
	}
	return true
}

// Value returns the observed (transfer-mapped, if bounded) value.
func (f FloatElement) Value() float64 { return f.P.Value() }
