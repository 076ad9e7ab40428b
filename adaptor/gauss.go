package adaptor

import (
	"math"

	"github.com/pa-m/geneva/rng"
)

// GaussAdaptor perturbs a float64 by an additive gaussian draw and
// self-adapts its own sigma with a log-normal multiplicative update (spec
// §4.1): value += N(0, sigma); sigma <- clamp(sigma*exp(N(0, sigmaSigma)),
// sigmaMin, sigmaMax).
//
// The log-normal update's expectation exceeds 1 for any sigmaSigma > 0, so
// the clamp to [sigmaMin, sigmaMax] is load-bearing, not defensive
// boilerplate: without it sigma drifts upward without bound.
type GaussAdaptor struct {
	counter
	sigma      float64
	sigmaSigma float64
	sigmaMin   float64
	sigmaMax   float64
}

var _ Adaptor[float64] = (*GaussAdaptor)(nil)

// NewGaussAdaptor builds a GaussAdaptor with adaption probability p,
// self-adaption threshold tau, initial sigma, sigma step size sigmaSigma,
// and sigma bounds [sigmaMin, sigmaMax]. Returns ErrInvalidArgument if any
// of the §3 adaptor invariants (sigmaMin <= sigma <= sigmaMax, sigmaMin >
// 0, sigmaSigma > 0, p in (0,1]) are violated.
func NewGaussAdaptor(p float64, tau int, sigma, sigmaSigma, sigmaMin, sigmaMax float64) (*GaussAdaptor, error) {
	a := &GaussAdaptor{counter: newCounter(0, tau)}
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

// SetAdaptionProbability implements Adaptor.
func (a *GaussAdaptor) SetAdaptionProbability(p float64) error {
	return a.setAdaptionProbability(p)
}

// SetAdaptionThreshold implements Adaptor.
func (a *GaussAdaptor) SetAdaptionThreshold(tau int) { a.setAdaptionThreshold(tau) }

// SetSigmaSigma sets the sigma self-adaptation step size; requires > 0.
func (a *GaussAdaptor) SetSigmaSigma(sigmaSigma float64) error {
	if sigmaSigma <= 0 {
		return invalidArgument("sigmaSigma must be > 0")
	}
	a.sigmaSigma = sigmaSigma
	return nil
}

// SetSigmaRange sets [sigmaMin, sigmaMax]; requires sigmaMin > 0 and
// sigmaMin <= sigmaMax.
func (a *GaussAdaptor) SetSigmaRange(sigmaMin, sigmaMax float64) error {
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
func (a *GaussAdaptor) Sigma() float64 { return a.sigma }

// Adapt implements Adaptor.
func (a *GaussAdaptor) Adapt(value *float64, r *rng.Source) {
	if a.tick() {
		a.sigma = rng.Clamp(a.sigma*math.Exp(r.Gaussian(0, a.sigmaSigma)), a.sigmaMin, a.sigmaMax)
	}
	if r.Bernoulli(a.p) {
		*value += r.Gaussian(0, a.sigma)
	}
}

// Clone implements Adaptor.
func (a *GaussAdaptor) Clone() Adaptor[float64] {
	cp := *a
	return &cp
}

// Equal reports structural equality within tol on the floating point
// fields, used by checkpoint round-trip tests (spec §8).
func (a *GaussAdaptor) Equal(other *GaussAdaptor, tol float64) bool {
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

func closeEnough(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}

// GaussAdaptorState is the serializable mirror of GaussAdaptor; checkpoint
// codecs marshal/unmarshal through this exported type since GaussAdaptor's
// fields are unexported (spec §6, round-trip identity).
type GaussAdaptorState struct {
	P          float64
	Tau        int
	Count      int
	Sigma      float64
	SigmaSigma float64
	SigmaMin   float64
	SigmaMax   float64
}

// State returns the serializable state.
func (a *GaussAdaptor) State() GaussAdaptorState {
	return GaussAdaptorState{
		P: a.p, Tau: a.tau, Count: a.count,
		Sigma: a.sigma, SigmaSigma: a.sigmaSigma,
		SigmaMin: a.sigmaMin, SigmaMax: a.sigmaMax,
	}
}

// RestoreGaussAdaptor rebuilds a GaussAdaptor from a State value.
func RestoreGaussAdaptor(s GaussAdaptorState) *GaussAdaptor {
	return &GaussAdaptor{
		counter:    counter{p: s.P, tau: s.Tau, count: s.Count},
		sigma:      s.Sigma,
		sigmaSigma: s.SigmaSigma,
		sigmaMin:   s.SigmaMin,
		sigmaMax:   s.SigmaMax,
	}
}
