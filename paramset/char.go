package paramset

import (
	"github.com/pa-m/geneva/adaptor"
	"github.com/pa-m/geneva/parameter"
	"github.com/pa-m/geneva/rng"
)

// CharElement wraps a *parameter.Parameter[rune]. Char parameters are
// never bounded in the real/integer sense; their domain is the adaptor's
// alphabet.
type CharElement struct {
	P *parameter.Parameter[rune]
}

var _ Element = CharElement{}

// NewChar builds a char element over alphabet with the given adaptors.
func NewChar(v rune, alphabet []rune, adaptors ...*adaptor.CharFlipAdaptor) CharElement {
	out := make([]adaptor.Adaptor[rune], len(adaptors))
	for i, a := range adaptors {
		out[i] = a
	}
	return CharElement{P: parameter.New(v, func(r *rng.Source) rune {
		if len(alphabet) == 0 {
			return v
		}
		return alphabet[r.IntN(len(alphabet))]
	}, out...)}
}

func (f CharElement) Kind() Kind                { return KindChar }
func (f CharElement) Adapt(r *rng.Source)      { f.P.Adapt(r) }
func (f CharElement) RandomInit(r *rng.Source) { f.P.RandomInit(r) }
func (f CharElement) Clone() Element           { return CharElement{P: f.P.Clone()} }

func (f CharElement) Equal(other Element, _ float64) bool {
	o, ok := other.(CharElement)
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
		a1, ok1 := fa[i].(*adaptor.CharFlipAdaptor)
		a2, ok2 := oa[i].(*adaptor.CharFlipAdaptor)
		if !ok1 || !ok2 {
			return false
		}
		s1, s2 := a1.State(), a2.State()
		if s1.P != s2.P || s1.Tau != s2.Tau || s1.Count != s2.Count || s1.InnerP != s2.InnerP || string(s1.Alphabet) != string(s2.Alphabet) {
			return false
		}
	}
	return true
}

// Value returns the current rune value.
func (f CharElement) Value() rune { return f.P.Value() }
