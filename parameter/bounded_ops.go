package parameter

// SetBoundariesFloat64 changes p's bounds to [lo, hi] (spec §4.2). If the
// currently observed value would fall outside the new range, it fails with
// ErrOutOfRange and leaves p unmodified. Use ResetBoundariesFloat64 to
// additionally reposition the internal representative inside the new
// fundamental domain instead of failing.
func SetBoundariesFloat64(p *Parameter[float64], lo, hi float64) error {
	nb, err := NewFloat64Bounds(lo, hi)
	if err != nil {
		return err
	}
	cur := p.Value()
	if cur < lo || cur > hi {
		return outOfRange("current value falls outside new boundaries")
	}
	p.bounds = nb
	return nil
}

// ResetBoundariesFloat64 changes p's bounds to [lo, hi] and repositions the
// internal representative to the observed value folded into the new
// fundamental domain, so the call never fails on an out-of-range current
// value (spec §4.2, "a dedicated reset API ... repositions the internal
// representative inside the fundamental domain").
func ResetBoundariesFloat64(p *Parameter[float64], lo, hi float64) error {
	nb, err := NewFloat64Bounds(lo, hi)
	if err != nil {
		return err
	}
	cur := p.Value()
	p.bounds = nb
	p.internal = nb.Transfer(cur)
	return nil
}

// SetBoundariesInt64 is the int64 analogue of SetBoundariesFloat64.
func SetBoundariesInt64(p *Parameter[int64], lo, hi int64) error {
	nb, err := NewInt64Bounds(lo, hi)
	if err != nil {
		return err
	}
	cur := p.Value()
	if cur < lo || cur > hi {
		return outOfRange("current value falls outside new boundaries")
	}
	p.bounds = nb
	return nil
}

// ResetBoundariesInt64 is the int64 analogue of ResetBoundariesFloat64.
func ResetBoundariesInt64(p *Parameter[int64], lo, hi int64) error {
	nb, err := NewInt64Bounds(lo, hi)
	if err != nil {
		return err
	}
	cur := p.Value()
	p.bounds = nb
	p.internal = nb.Transfer(cur)
	return nil
}
