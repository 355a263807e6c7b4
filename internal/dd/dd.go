// Package dd implements double-double arithmetic: a real number carried as
// an unevaluated sum of two float64 values, giving roughly 106 significand
// bits. It covers the precision gap between native float64 and the
// big.Float reference arithmetic, at a small constant factor over plain
// float64 operations.
package dd

import (
	"math"
	"math/big"
)

// DD is a double-double real. Invariant: Hi is the float64 nearest the
// represented value and |Lo| <= ulp(Hi)/2.
type DD struct {
	Hi, Lo float64
}

// FromFloat64 lifts a native float exactly.
func FromFloat64(x float64) DD { return DD{Hi: x} }

// FromBig rounds f to the nearest double-double.
func FromBig(f *big.Float) DD {
	hi, _ := f.Float64()
	rest := new(big.Float).SetPrec(f.Prec()).Sub(f, new(big.Float).SetFloat64(hi))
	lo, _ := rest.Float64()
	return DD{Hi: hi, Lo: lo}
}

// twoSum returns s, e with s = fl(a+b) and a+b = s+e exactly.
func twoSum(a, b float64) (s, e float64) {
	s = a + b
	bv := s - a
	e = (a - (s - bv)) + (b - bv)
	return s, e
}

// quickTwoSum is twoSum under the precondition |a| >= |b| or a == 0.
func quickTwoSum(a, b float64) (s, e float64) {
	s = a + b
	e = b - (s - a)
	return s, e
}

// twoProd returns p, e with p = fl(a*b) and a*b = p+e exactly.
func twoProd(a, b float64) (p, e float64) {
	p = a * b
	e = math.FMA(a, b, -p)
	return p, e
}

func (x DD) Neg() DD { return DD{Hi: -x.Hi, Lo: -x.Lo} }

func (x DD) Add(y DD) DD {
	s, e := twoSum(x.Hi, y.Hi)
	e += x.Lo + y.Lo
	s, e = quickTwoSum(s, e)
	return DD{Hi: s, Lo: e}
}

func (x DD) Sub(y DD) DD { return x.Add(y.Neg()) }

func (x DD) Mul(y DD) DD {
	p, e := twoProd(x.Hi, y.Hi)
	e += x.Hi*y.Lo + x.Lo*y.Hi
	p, e = quickTwoSum(p, e)
	return DD{Hi: p, Lo: e}
}

// MulFloat multiplies by a native float without widening it first.
func (x DD) MulFloat(y float64) DD {
	p, e := twoProd(x.Hi, y)
	e += x.Lo * y
	p, e = quickTwoSum(p, e)
	return DD{Hi: p, Lo: e}
}

// Float64 rounds to the nearest native float.
func (x DD) Float64() float64 { return x.Hi + x.Lo }
