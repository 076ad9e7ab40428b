package adaptor

import "github.com/pa-m/geneva/rng"

// flipCore is the shared state behind every Flip* adaptor variant: the
// counter/threshold machinery plus an "inner probability" gating the actual
// flip once the outer adaption probability has fired (spec §4.1: "with
// inner probability (default 1)").
type flipCore struct {
	counter
	innerP float64
}

func newFlipCore(p float64, tau int, innerP float64) (flipCore, error) {
	if innerP <= 0 || innerP > 1 {
		return flipCore{}, invalidArgument("inner probability must be in (0,1]")
	}
	fc := flipCore{counter: newCounter(0, tau), innerP: innerP}
	if err := fc.setAdaptionProbability(p); err != nil {
		return flipCore{}, err
	}
	return fc, nil
}

// BoolFlipAdaptor flips a boolean value. It has no shape parameters to
// self-adapt; tau is accepted for interface symmetry but has no observable
// effect beyond resetting its internal counter.
type BoolFlipAdaptor struct {
	flipCore
}

var _ Adaptor[bool] = (*BoolFlipAdaptor)(nil)

// NewBoolFlipAdaptor builds a BoolFlipAdaptor with adaption probability p
// and inner flip probability innerP (use 1.0 for "always flip when fired").
func NewBoolFlipAdaptor(p float64, tau int, innerP float64) (*BoolFlipAdaptor, error) {
	fc, err := newFlipCore(p, tau, innerP)
	if err != nil {
		return nil, err
	}
	return &BoolFlipAdaptor{flipCore: fc}, nil
}

func (a *BoolFlipAdaptor) SetAdaptionProbability(p float64) error { return a.setAdaptionProbability(p) }
func (a *BoolFlipAdaptor) SetAdaptionThreshold(tau int)           { a.setAdaptionThreshold(tau) }

func (a *BoolFlipAdaptor) Adapt(value *bool, r *rng.Source) {
	a.tick() // no shape parameters; still advances/resets the counter
	if r.Bernoulli(a.p) && r.Bernoulli(a.innerP) {
		*value = !*value
	}
}

func (a *BoolFlipAdaptor) Clone() Adaptor[bool] {
	cp := *a
	return &cp
}

// BoolFlipAdaptorState is the serializable mirror of BoolFlipAdaptor.
type BoolFlipAdaptorState struct {
	P      float64
	Tau    int
	Count  int
	InnerP float64
}

func (a *BoolFlipAdaptor) State() BoolFlipAdaptorState {
	return BoolFlipAdaptorState{P: a.p, Tau: a.tau, Count: a.count, InnerP: a.innerP}
}

func RestoreBoolFlipAdaptor(s BoolFlipAdaptorState) *BoolFlipAdaptor {
	return &BoolFlipAdaptor{flipCore{counter: counter{p: s.P, tau: s.Tau, count: s.Count}, innerP: s.InnerP}}
}

// CharFlipAdaptor replaces a rune with a uniformly chosen alternative from
// Alphabet (excluding the current value when len(Alphabet) > 1).
type CharFlipAdaptor struct {
	flipCore
	Alphabet []rune
}

var _ Adaptor[rune] = (*CharFlipAdaptor)(nil)

// NewCharFlipAdaptor builds a CharFlipAdaptor drawing replacements from
// alphabet. alphabet must have at least one rune.
func NewCharFlipAdaptor(p float64, tau int, innerP float64, alphabet []rune) (*CharFlipAdaptor, error) {
	if len(alphabet) == 0 {
		return nil, invalidArgument("alphabet must not be empty")
	}
	fc, err := newFlipCore(p, tau, innerP)
	if err != nil {
		return nil, err
	}
	ab := make([]rune, len(alphabet))
	copy(ab, alphabet)
	return &CharFlipAdaptor{flipCore: fc, Alphabet: ab}, nil
}

func (a *CharFlipAdaptor) SetAdaptionProbability(p float64) error { return a.setAdaptionProbability(p) }
func (a *CharFlipAdaptor) SetAdaptionThreshold(tau int)           { a.setAdaptionThreshold(tau) }

func (a *CharFlipAdaptor) Adapt(value *rune, r *rng.Source) {
	a.tick()
	if !r.Bernoulli(a.p) || !r.Bernoulli(a.innerP) {
		return
	}
	if len(a.Alphabet) == 1 {
		*value = a.Alphabet[0]
		return
	}
	for {
		cand := a.Alphabet[r.IntN(len(a.Alphabet))]
		if cand != *value {
			*value = cand
			return
		}
	}
}

func (a *CharFlipAdaptor) Clone() Adaptor[rune] {
	ab := make([]rune, len(a.Alphabet))
	copy(ab, a.Alphabet)
	return &CharFlipAdaptor{flipCore: a.flipCore, Alphabet: ab}
}

// CharFlipAdaptorState is the serializable mirror of CharFlipAdaptor.
type CharFlipAdaptorState struct {
	P        float64
	Tau      int
	Count    int
	InnerP   float64
	Alphabet []rune
}

func (a *CharFlipAdaptor) State() CharFlipAdaptorState {
	ab := make([]rune, len(a.Alphabet))
	copy(ab, a.Alphabet)
	return CharFlipAdaptorState{P: a.p, Tau: a.tau, Count: a.count, InnerP: a.innerP, Alphabet: ab}
}

func RestoreCharFlipAdaptor(s CharFlipAdaptorState) *CharFlipAdaptor {
	ab := make([]rune, len(s.Alphabet))
	copy(ab, s.Alphabet)
	return &CharFlipAdaptor{
		flipCore: flipCore{counter: counter{p: s.P, tau: s.Tau, count: s.Count}, innerP: s.InnerP},
		Alphabet: ab,
	}
}

// IntFlipAdaptor perturbs an int64 by +1 or -1 with equal probability. At
// the int64 limits the step is reversed (max steps to max-1, min to min+1),
// so the value never wraps around the representable range. As with IntGaussAdaptor,
// a Parameter's own [lo, hi] bounds (if bounded-integer) are enforced by the
// Parameter's transfer function, not here.
type IntFlipAdaptor struct {
	flipCore
}

var _ Adaptor[int64] = (*IntFlipAdaptor)(nil)

func NewIntFlipAdaptor(p float64, tau int, innerP float64) (*IntFlipAdaptor, error) {
	fc, err := newFlipCore(p, tau, innerP)
	if err != nil {
		return nil, err
	}
	return &IntFlipAdaptor{flipCore: fc}, nil
}

func (a *IntFlipAdaptor) SetAdaptionProbability(p float64) error { return a.setAdaptionProbability(p) }
func (a *IntFlipAdaptor) SetAdaptionThreshold(tau int)           { a.setAdaptionThreshold(tau) }

func (a *IntFlipAdaptor) Adapt(value *int64, r *rng.Source) {
	a.tick()
	if !r.Bernoulli(a.p) || !r.Bernoulli(a.innerP) {
		return
	}
	step := int64(r.UniformSign())
	v := *value
	const maxInt64 = 1<<63 - 1
	const minInt64 = -1 << 63
	if step > 0 && v == maxInt64 {
		step = -1
	} else if step < 0 && v == minInt64 {
		step = 1
	}
	*value = v + step
}

func (a *IntFlipAdaptor) Clone() Adaptor[int64] {
	cp := *a
	return &cp
}

// IntFlipAdaptorState is the serializable mirror of IntFlipAdaptor.
type IntFlipAdaptorState struct {
	P      float64
	Tau    int
	Count  int
	InnerP float64
}

func (a *IntFlipAdaptor) State() IntFlipAdaptorState {
	return IntFlipAdaptorState{P: a.p, Tau: a.tau, Count: a.count, InnerP: a.innerP}
}

func RestoreIntFlipAdaptor(s IntFlipAdaptorState) *IntFlipAdaptor {
	return &IntFlipAdaptor{flipCore{counter: counter{p: s.P, tau: s.Tau, count: s.Count}, innerP: s.InnerP}}
}
