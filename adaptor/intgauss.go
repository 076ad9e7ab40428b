package adaptor

import (
	"math"

	"github.com/pa-m/geneva/rng"
)

// IntGaussAdaptor perturbs an int64 by a rounded gaussian increment and
// self-adapts sigma exactly as GaussAdaptor does (spec §4.1). If the
// rounded increment would overflow the representable int64 range, the sign
// of the increment is flipped rather than saturating, to preserve the
// perturbation's zero-mean behavior over many applications.
//
// Range enforcement against a Parameter's [lo, hi] bounds is NOT this
// adaptor's job — that is delegated to the Parameter's bounded-integer
// transfer function (parameter package). This adaptor only guards against
// the underlying int64 type itself overflowing.
type IntGaussAdaptor struct {
	counter
	sigma      float64
	sigmaSigma float64
	sigmaMin   float64
	sigmaMax   float64
}

var _ Adaptor[int64] = (*IntGaussAdaptor)(nil)

// NewIntGaussAdaptor mirrors NewGaussAdaptor's validation.
func NewIntGaussAdaptor(p float64, tau int, sigma, sigmaSigma, sigmaMin, sigmaMax float64) (*IntGaussAdaptor, error) {
	a := &IntGaussAdaptor{counter: newCounter(0, tau)}
	if err := a.SetAdaptionProbability(p); err != nil {
		return nil, err
	}
	if err := a.SetSigmaRange(sigmaMin, sigmaMax); err != nil {
		return nil, err
	}
	if err := a.SetSigmaSigma(sigmaSigma); err != nil {
		return nil, err
	}
	if sigma < sigmaMin || sigma > sigmaMax {
		return nil, invalidArgument("initial sigma outside [sigmaMin, sigmaMax]")
	}
	a.sigma = sigma
	return a, nil
}

func (a *IntGaussAdaptor) SetAdaptionProbability(p float64) error {
	return a.setAdaptionProbability(p)
}

func (a *IntGaussAdaptor) SetAdaptionThreshold(tau int) { a.setAdaptionThreshold(tau) }

func (a *IntGaussAdaptor) SetSigmaSigma(sigmaSigma float64) error {
	if sigmaSigma <= 0 {
		return invalidArgument("sigmaSigma must be > 0")
	}
	a.sigmaSigma = sigmaSigma
	return nil
}

func (a *IntGaussAdaptor) SetSigmaRange(sigmaMin, sigmaMax float64) error {
	if sigmaMin <= 0 {
		return invalidArgument("sigmaMin must be > 0")
	}
	if sigmaMin > sigmaMax {
		return invalidArgument("sigmaMin must be <= sigmaMax")
	}
	a.sigmaMin, a.sigmaMax = sigmaMin, sigmaMax
	if a.sigma != 0 {
		a.sigma = rng.Clamp(a.sigma, sigmaMin, sigmaMax)
	}
	return nil
}

// Sigma returns the current sigma.
func (a *IntGaussAdaptor) Sigma() float64 { return a.sigma }

// Adapt implements Adaptor.
func (a *IntGaussAdaptor) Adapt(value *int64, r *rng.Source) {
	if a.tick() {
		a.sigma = rng.Clamp(a.sigma*math.Exp(r.Gaussian(0, a.sigmaSigma)), a.sigmaMin, a.sigmaMax)
	}
	if !r.Bernoulli(a.p) {
		return
	}
	inc := math.Round(r.Gaussian(0, a.sigma))
	if inc == 0 {
		return
	}
	v := *value
	if inc > 0 && v > math.MaxInt64-int64(inc) {
		inc = -inc
	} else if inc < 0 && v < math.MinInt64-int64(inc) {
		inc = -inc
	}
	*value = v + int64(inc)
}

// Clone implements Adaptor.
func (a *IntGaussAdaptor) Clone() Adaptor[int64] {
	cp := *a
	return &cp
}

// Equal reports structural equality within tol on the floating point
// fields.
func (a *IntGaussAdaptor) Equal(other *IntGaussAdaptor, tol float64) bool {
	if other == nil {
		return false
	}
	return closeEnough(a.p, other.p, tol) &&
		a.tau == other.tau &&
		a.count == other.count &&
		closeEnough(a.sigma, other.sigma, tol) &&
		closeEnough(a.sigmaSigma, other.sigmaSigma, tol) &&
		closeEnough(a.sigmaMin, other.sigmaMin, tol) &&
		closeEnough(a.sigmaMax, other.sigmaMax, tol)
}

// IntGaussAdaptorState is the serializable mirror of IntGaussAdaptor.
type IntGaussAdaptorState struct {
	P          float64
	Tau        int
	Count      int
	Sigma      float64
	SigmaSigma float64
	SigmaMin   float64
	SigmaMax   float64
}

// State returns the serializable state.
func (a *IntGaussAdaptor) State() IntGaussAdaptorState {
	return IntGaussAdaptorState{
		P: a.p, Tau: a.tau, Count: a.count,
		Sigma: a.sigma, SigmaSigma: a.sigmaSigma,
		SigmaMin: a.sigmaMin, SigmaMax: a.sigmaMax,
	}
}

// RestoreIntGaussAdaptor rebuilds an IntGaussAdaptor from a State value.
func RestoreIntGaussAdaptor(s IntGaussAdaptorState) *IntGaussAdaptor {
	return &IntGaussAdaptor{
		counter:    counter{p: s.P, tau: s.Tau, count: s.Count},
		sigma:      s.Sigma,
		sigmaSigma: s.SigmaSigma,
		sigmaMin:   s.SigmaMin,
		sigmaMax:   s.SigmaMax,
	}
}
