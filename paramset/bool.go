package paramset

import (
	"github.com/pa-m/geneva/adaptor"
	"github.com/pa-m/geneva/parameter"
	"github.com/pa-m/geneva/rng"
)

// BoolElement wraps a *parameter.Parameter[bool]. Bool parameters are
// never bounded (there is no fundamental-domain concept for a two-valued
// type), so Kind is always KindBool.
type BoolElement struct {
	P *parameter.Parameter[bool]
}

var _ Element = BoolElement{}

// NewBool builds a boolean element with the given flip adaptors.
func NewBool(v bool, adaptors ...*adaptor.BoolFlipAdaptor) BoolElement {
	out := make([]adaptor.Adaptor[bool], len(adaptors))
	for i, a := range adaptors {
		out[i] = a
	}
	return BoolElement{P: parameter.New(v, func(r *rng.Source) bool {
		return r.Bernoulli(0.5)
	}, out...)}
}

func (f BoolElement) Kind() Kind                { return KindBool }
func (f BoolElement) Adapt(r *rng.Source)      { f.P.Adapt(r) }
func (f BoolElement) RandomInit(r *rng.Source) { f.P.RandomInit(r) }
func (f BoolElement) Clone() Element           { return BoolElement{P: f.P.Clone()} }

func (f BoolElement) Equal(other Element, _ float64) bool {
	o, ok := other.(BoolElement)
	if !ok {
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
		a1, ok1 := fa[i].(*adaptor.BoolFlipAdaptor)
		a2, ok2 := oa[i].(*adaptor.BoolFlipAdaptor)
		if !ok1 || !ok2 || a1.State() != a2.State() {
			return false
		}
	}
	return true
}

// Value returns the current boolean value.
func (f BoolElement) Value() bool { return f.P.Value() }
