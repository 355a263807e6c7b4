package mandel

import (
	"math"

	"github.com/deepzoom/mandel/internal/dd"
)

const ln2 = 0.6931471805599453

// escapeSmooth turns an escape at step i with squared modulus m into the
// continuous iteration count.
func escapeSmooth(i int, m float64) float64 {
	return float64(i) + 1 - math.Log(math.Log(m)/ln2)/ln2
}

// insideCardioid reports whether c lies strictly inside the main cardioid.
// Points there provably never escape.
func insideCardioid(cr, ci float64) bool {
	q := (cr-0.25)*(cr-0.25) + ci*ci
	return q*(q+(cr-0.25)) < 0.25*ci*ci
}

// insidePeriod2Bulb reports whether c lies strictly inside the period-2
// bulb, the disk of radius 1/4 around -1.
func insidePeriod2Bulb(cr, ci float64) bool {
	return (cr+1)*(cr+1)+ci*ci < 0.0625
}

// directPoint iterates z <- z^2 + c at native precision until |z|^2 > 4 or
// maxIter. The body is unrolled in blocks of four; every unrolled step keeps
// its own escape check, so the check fires on the exact iteration it would
// in the plain loop.
func directPoint(cr, ci float64, maxIter int) float64 {
	if insideCardioid(cr, ci) || insidePeriod2Bulb(cr, ci) {
		return float64(-maxIter)
	}

	var zr, zi, zr2, zi2 float64
	i := 0
	for ; i+4 <= maxIter; i += 4 {
		if m := zr2 + zi2; m > 4 {
			return escapeSmooth(i, m)
		}
		zi = 2*zr*zi + ci
		zr = zr2 - zi2 + cr
		zr2, zi2 = zr*zr, zi*zi

		if m := zr2 + zi2; m > 4 {
			return escapeSmooth(i+1, m)
		}
		zi = 2*zr*zi + ci
		zr = zr2 - zi2 + cr
		zr2, zi2 = zr*zr, zi*zi

		if m := zr2 + zi2; m > 4 {
			return escapeSmooth(i+2, m)
		}
		zi = 2*zr*zi + ci
		zr = zr2 - zi2 + cr
		zr2, zi2 = zr*zr, zi*zi

		if m := zr2 + zi2; m > 4 {
			return escapeSmooth(i+3, m)
		}
		zi = 2*zr*zi + ci
		zr = zr2 - zi2 + cr
		zr2, zi2 = zr*zr, zi*zi
	}
	for ; i < maxIter; i++ {
		if m := zr2 + zi2; m > 4 {
			return escapeSmooth(i, m)
		}
		zi = 2*zr*zi + ci
		zr = zr2 - zi2 + cr
		zr2, zi2 = zr*zr, zi*zi
	}
	return float64(-maxIter)
}

// directPointDD is the extended-tier variant of directPoint in double-double
// arithmetic. The closed-form interior tests stay in float64: both regions
// are enormous compared to any extended-tier viewport.
func directPointDD(cr, ci dd.DD, maxIter int) float64 {
	if crf, cif := cr.Float64(), ci.Float64(); insideCardioid(crf, cif) || insidePeriod2Bulb(crf, cif) {
		return float64(-maxIter)
	}

	var zr, zi dd.DD
	for i := 0; i < maxIter; i++ {
		zr2 := zr.Mul(zr)
		zi2 := zi.Mul(zi)
		if m := zr2.Add(zi2).Float64(); m > 4 {
			return escapeSmooth(i, m)
		}
		zi = zr.Mul(zi).MulFloat(2).Add(ci)
		zr = zr2.Sub(zi2).Add(cr)
	}
	return float64(-maxIter)
}

// renderStandard fills out with the native-precision direct iterator.
func renderStandard(v Viewport, maxIter, workers int, out []float64) {
	g := newGridF64(v)
	forEachRow(v.Height, workers, func(py int) {
		row := out[py*v.Width : (py+1)*v.Width]
		for px := range row {
			cr, ci := g.at(px, py)
			row[px] = directPoint(cr, ci, maxIter)
		}
	})
}

// renderExtended fills out with the double-double direct iterator.
func renderExtended(v Viewport, maxIter, workers int, out []float64) {
	g := newGridDD(v)
	forEachRow(v.Height, workers, func(py int) {
		row := out[py*v.Width : (py+1)*v.Width]
		for px := range row {
			cr, ci := g.at(px, py)
			row[px] = directPointDD(cr, ci, maxIter)
		}
	})
}
