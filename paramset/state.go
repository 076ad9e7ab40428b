package paramset

import (
	"fmt"

	"github.com/pa-m/geneva"
	"github.com/pa-m/geneva/adaptor"
	"github.com/pa-m/geneva/parameter"
)

// The State/Restore pair below is the serializable mirror of ParameterSet,
// used by the checkpoint package's three codecs (spec §6: text/xml/binary,
// all round-tripping the same struct tree). Every field is exported so
// encoding/json, encoding/xml and encoding/gob can all reach it without a
// custom Marshaler.

// FloatState is the serializable mirror of FloatElement.
type FloatState struct {
	Bounded  bool
	Lo, Hi   float64
	Internal float64
	Gauss    []adaptor.GaussAdaptorState
}

// IntAdaptorState tags one int64 adaptor slot as either a gauss or a flip
// adaptor, since Parameter[int64]'s adaptor chain may mix both.
type IntAdaptorState struct {
	IsGauss bool
	Gauss   adaptor.IntGaussAdaptorState
	Flip    adaptor.IntFlipAdaptorState
}

// IntState is the serializable mirror of IntElement.
type IntState struct {
	Bounded  bool
	Lo, Hi   int64
	Internal int64
	Adaptors []IntAdaptorState
}

// BoolState is the serializable mirror of BoolElement.
type BoolState struct {
	Internal bool
	Flip     []adaptor.BoolFlipAdaptorState
}

// CharState is the serializable mirror of CharElement.
type CharState struct {
	Internal rune
	Alphabet []rune
	Flip     []adaptor.CharFlipAdaptorState
}

// ElementState is the tagged-union serializable mirror of one Element.
type ElementState struct {
	Kind  Kind
	Float FloatState
	Int   IntState
	Bool  BoolState
	Char  CharState
}

// State returns the serializable mirror of the whole set, in order.
func (s *ParameterSet) State() []ElementState {
	out := make([]ElementState, len(s.elements))
	for i, e := range s.elements {
		out[i] = elementState(e)
	}
	return out
}

func elementState(e Element) ElementState {
	switch v := e.(type) {
	case FloatElement:
		st := FloatState{Internal: v.P.Internal()}
		if v.P.Bounded() {
			st.Bounded = true
			b := v.P.BoundsOf().(parameter.Float64Bounds)
			st.Lo, st.Hi = b.Lo(), b.Hi()
		}
		for _, a := range v.P.Adaptors() {
			if ga, ok := a.(*adaptor.GaussAdaptor); ok {
				st.Gauss = append(st.Gauss, ga.State())
			}
		}
		return ElementState{Kind: v.Kind(), Float: st}
	case IntElement:
		st := IntState{Internal: v.P.Internal()}
		if v.P.Bounded() {
			st.Bounded = true
			b := v.P.BoundsOf().(parameter.Int64Bounds)
			st.Lo, st.Hi = b.Lo(), b.Hi()
		}
		for _, a := range v.P.Adaptors() {
			switch av := a.(type) {
			case *adaptor.IntGaussAdaptor:
				st.Adaptors = append(st.Adaptors, IntAdaptorState{IsGauss: true, Gauss: av.State()})
			case *adaptor.IntFlipAdaptor:
				st.Adaptors = append(st.Adaptors, IntAdaptorState{IsGauss: false, Flip: av.State()})
			}
		}
		return ElementState{Kind: v.Kind(), Int: st}
	case BoolElement:
		st := BoolState{Internal: v.P.Internal()}
		for _, a := range v.P.Adaptors() {
			if fa, ok := a.(*adaptor.BoolFlipAdaptor); ok {
				st.Flip = append(st.Flip, fa.State())
			}
		}
		return ElementState{Kind: KindBool, Bool: st}
	case CharElement:
		st := CharState{Internal: v.P.Internal()}
		for _, a := range v.P.Adaptors() {
			if fa, ok := a.(*adaptor.CharFlipAdaptor); ok {
				cs := fa.State()
				if st.Alphabet == nil {
					st.Alphabet = cs.Alphabet
				}
				st.Flip = append(st.Flip, cs)
			}
		}
		return ElementState{Kind: KindChar, Char: st}
	default:
		panic(fmt.Sprintf("paramset: unknown element type %T", e))
	}
}

// Restore rebuilds a ParameterSet from its serializable mirror.
func Restore(states []ElementState) (*ParameterSet, error) {
	out := make([]Element, len(states))
	for i, st := range states {
		e, err := restoreElement(st)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return &ParameterSet{elements: out}, nil
}

func restoreElement(st ElementState) (Element, error) {
	switch st.Kind {
	case KindFloat64, KindBoundedFloat64:
		adaptors := make([]adaptor.Adaptor[float64], len(st.Float.Gauss))
		for i, gs := range st.Float.Gauss {
			adaptors[i] = adaptor.RestoreGaussAdaptor(gs)
		}
		var p *parameter.Parameter[float64]
		if st.Float.Bounded {
			b, err := parameter.NewFloat64Bounds(st.Float.Lo, st.Float.Hi)
			if err != nil {
				return nil, err
			}
			p = parameter.NewBounded(st.Float.Internal, b, adaptors...)
		} else {
			p = parameter.New(st.Float.Internal, nil, adaptors...)
		}
		return FloatElement{P: p}, nil
	case KindInt64, KindBoundedInt64:
		adaptors := make([]adaptor.Adaptor[int64], len(st.Int.Adaptors))
		for i, as := range st.Int.Adaptors {
			if as.IsGauss {
				adaptors[i] = adaptor.RestoreIntGaussAdaptor(as.Gauss)
			} else {
				adaptors[i] = adaptor.RestoreIntFlipAdaptor(as.Flip)
			}
		}
		var p *parameter.Parameter[int64]
		if st.Int.Bounded {
			b, err := parameter.NewInt64Bounds(st.Int.Lo, st.Int.Hi)
			if err != nil {
				return nil, err
			}
			p = parameter.NewBounded(st.Int.Internal, b, adaptors...)
		} else {
			p = parameter.New(st.Int.Internal, nil, adaptors...)
		}
		return IntElement{P: p}, nil
	case KindBool:
		adaptors := make([]*adaptor.BoolFlipAdaptor, len(st.Bool.Flip))
		for i, fs := range st.Bool.Flip {
			adaptors[i] = adaptor.RestoreBoolFlipAdaptor(fs)
		}
		return NewBool(st.Bool.Internal, adaptors...), nil
	case KindChar:
		adaptors := make([]*adaptor.CharFlipAdaptor, len(st.Char.Flip))
		for i, fs := range st.Char.Flip {
			adaptors[i] = adaptor.RestoreCharFlipAdaptor(fs)
		}
		return NewChar(st.Char.Internal, st.Char.Alphabet, adaptors...), nil
	default:
		return nil, fmt.Errorf("paramset: unknown kind %v: %w", st.Kind, geneva.ErrInvalidArgument)
	}
}
