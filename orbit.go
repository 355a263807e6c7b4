package mandel

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// referenceOrbit is the full-precision orbit of the viewport center: the
// single shared basis every pixel's delta iteration is anchored to. It is
// computed once, single-threaded, and read-only afterwards.
//
// re/im hold the exact terms; shadowRe/shadowIm hold a float64 shadow of
// each term for the hot delta loop. escape is the index of the first term
// with |Z|^2 > 4, or maxIter if the center never escapes; delta iteration
// never reads past it.
type referenceOrbit struct {
	re, im             []*big.Float
	shadowRe, shadowIm []float64
	escape             int
}

func (o *referenceOrbit) len() int { return len(o.shadowRe) }

// orbitPrec picks the reference mantissa size: enough bits to resolve one
// pixel step of the viewport with headroom, never below 128.
func orbitPrec(span decimal.Decimal, width int) uint {
	// mag ~= floor(log10(span)) + 1
	mag := int(span.NumDigits()) + int(span.Exponent())
	digits := 1 - mag // decimal digits below 1.0 needed for the span itself
	for w := width; w > 0; w /= 10 {
		digits++
	}
	if digits < 0 {
		digits = 0
	}
	bits := uint(digits*10/3 + 64)
	if bits < 128 {
		bits = 128
	}
	return bits
}

// computeReferenceOrbit iterates z <- z^2 + c from zero at the precision of
// cr/ci, recording every term until escape or maxIter.
func computeReferenceOrbit(cr, ci *big.Float, maxIter int) *referenceOrbit {
	prec := cr.Prec()
	o := &referenceOrbit{
		re:       make([]*big.Float, 0, maxIter+1),
		im:       make([]*big.Float, 0, maxIter+1),
		shadowRe: make([]float64, 0, maxIter+1),
		shadowIm: make([]float64, 0, maxIter+1),
		escape:   maxIter,
	}

	zr := new(big.Float).SetPrec(prec)
	zi := new(big.Float).SetPrec(prec)
	zr2 := new(big.Float).SetPrec(prec)
	zi2 := new(big.Float).SetPrec(prec)
	mag := new(big.Float).SetPrec(prec)
	cross := new(big.Float).SetPrec(prec)
	four := big.NewFloat(4)

	for n := 0; n <= maxIter; n++ {
		o.re = append(o.re, new(big.Float).Copy(zr))
		o.im = append(o.im, new(big.Float).Copy(zi))
		sr, _ := zr.Float64()
		si, _ := zi.Float64()
		o.shadowRe = append(o.shadowRe, sr)
		o.shadowIm = append(o.shadowIm, si)

		zr2.Mul(zr, zr)
		zi2.Mul(zi, zi)
		mag.Add(zr2, zi2)
		if mag.Cmp(four) > 0 {
			o.escape = n
			break
		}
		if n == maxIter {
			break
		}

		cross.Mul(zr, zi)
		zr.Sub(zr2, zi2)
		zr.Add(zr, cr)
		zi.Add(cross, cross)
		zi.Add(zi, ci)
	}
	return o
}
