// Package parameter implements Parameter<T> (spec §3, §4.2): a typed value
// plus zero or more adaptors, with optional bounded-value mapping.
package parameter

import "math"

// FoldFloat64 is the bounded-real transfer function (spec §3): a
// continuous, idempotent, boundary-reflecting triangle wave of the
// unbounded internal representative x onto [lo, hi].
//
//	u  := (x - lo) / w                      w = hi - lo
//	u' := u - 2*floor((u+1)/2)               reduce to [-1, 1]
//	ext := lo + w*|u'|
//
// Properties (spec §4.2, tested in transfer_test.go): continuous; identity
// inside [lo, hi]; reflects at each boundary; idempotent once folded.
func FoldFloat64(x, lo, hi float64) float64 {
	if hi <= lo {
		panic("parameter: FoldFloat64: hi <= lo")
	}
	w := hi - lo
	u := (x - lo) / w
	uPrime := u - 2*math.Floor((u+1)/2)
	return lo + w*math.Abs(uPrime)
}

// FoldInt64 is the bounded-integer transfer function (spec §3): the integer
// analogue of FoldFloat64 over M = hi-lo+1 integer values, yielding a
// triangular histogram with uniform marginal over [lo, hi] when x-lo is
// drawn uniformly from any interval whose length is a multiple of 2M.
//
// The fold works on int64 values only and has no rounding step, so no
// half-integer convention is involved (spec §9, open question).
func FoldInt64(x, lo, hi int64) int64 {
	if hi <= lo {
		panic("parameter: FoldInt64: hi <= lo")
	}
	m := hi - lo + 1
	period := 2 * m
	d := (x - lo) % period
	if d < 0 {
		d += period
	}
	// d is in [0, 2m). Reflect the top half back down: values in [m, 2m)
	// map to (2m-1)-d, mirroring the continuous fold's |.| reflection at
	// the upper boundary while landing on integers only.
	if d >= m {
		d = period - 1 - d
	}
	return lo + d
}
