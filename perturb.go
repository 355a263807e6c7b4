package mandel

import (
	"math"

	"github.com/deepzoom/mandel/internal/wide"
)

// renderPerturbation computes the shared reference orbit and series skip
// once, then fans per-pixel delta iteration out across rows. Workers only
// read the orbit and only write their own rows, so nothing is locked.
func renderPerturbation(v Viewport, maxIter int, cfg config, out []float64) {
	prec := cfg.orbitPrec
	if prec == 0 {
		prec = orbitPrec(v.span(), v.Width)
	}
	cr, ci := v.centerBig(prec)
	orbit := computeReferenceOrbit(cr, ci, maxIter)

	dx, dy := v.stepF64()
	maxDC := math.Hypot(dx*float64(v.Width)/2, dy*float64(v.Height)/2)
	skip, bRe, bIm := seriesSkip(orbit, maxDC)
	Logger().Debug("perturbation basis ready",
		"prec_bits", prec, "orbit_len", orbit.len(), "ref_escape", orbit.escape, "skip", skip)

	forEachRow(v.Height, cfg.workers, func(py int) {
		perturbRow(orbit, skip, bRe, bIm, dx, dy, py, v.Width, v.Height, maxIter,
			out[py*v.Width:(py+1)*v.Width])
	})
}

// perturbRow fills one scanline: full batches of wide.Lanes pixels through
// the vector path, the remainder through the scalar path. Both paths apply
// the identical operation order, so the remainder pixels are
// indistinguishable from batched ones.
func perturbRow(o *referenceOrbit, skip int, bRe, bIm, dx, dy float64, py, width, height, maxIter int, row []float64) {
	dci := (float64(py) + 0.5 - float64(height)/2) * dy
	dcrAt := func(px int) float64 {
		return (float64(px) + 0.5 - float64(width)/2) * dx
	}

	px := 0
	for ; px+wide.Lanes <= width; px += wide.Lanes {
		var dcr wide.F64x4
		for k := range dcr {
			dcr[k] = dcrAt(px + k)
		}
		perturbBatch(o, skip, bRe, bIm, dcr, dci, maxIter, row[px:px+wide.Lanes])
	}
	for ; px < width; px++ {
		row[px] = perturbPixel(o, skip, bRe, bIm, dcrAt(px), dci, maxIter)
	}
}

// perturbPixel is the scalar reference implementation of the delta
// iteration: dz_{n+1} = 2*Z_n*dz_n + dz_n^2 + dc against the shadow orbit,
// escape when |Z_n + dz_n|^2 > 4.
//
// If the reference orbit ends before the pixel escapes, the pixel reports
// the sentinel even though its true orbit might diverge later. Accepted
// trade-off: iterating past the reference would need per-pixel full
// precision, which is exactly what perturbation exists to avoid.
func perturbPixel(o *referenceOrbit, skip int, bRe, bIm, dcr, dci float64, maxIter int) float64 {
	var dzr, dzi float64
	if skip > 0 {
		dzr = bRe*dcr - bIm*dci
		dzi = bRe*dci + bIm*dcr
	}
	for n := skip; n < o.escape; n++ {
		zr, zi := o.shadowRe[n], o.shadowIm[n]
		fr := zr + dzr
		fi := zi + dzi
		if m := fr*fr + fi*fi; m > 4 {
			return escapeSmooth(n, m)
		}
		sqr := dzr*dzr - dzi*dzi + dcr
		sqi := 2*dzr*dzi + dci
		dzr, dzi = 2*(zr*dzr-zi*dzi)+sqr, 2*(zr*dzi+zi*dzr)+sqi
	}
	return float64(-maxIter)
}

// perturbBatch advances wide.Lanes pixels of one row in lockstep. Each lane
// carries its own escape state; a lane that escapes is masked out (held at
// zero) while the others continue, and the loop ends early once every lane
// has escaped. Operation order matches perturbPixel step for step.
func perturbBatch(o *referenceOrbit, skip int, bRe, bIm float64, dcr wide.F64x4, dci float64, maxIter int, row []float64) {
	vdci := wide.Splat(dci)
	var dzr, dzi wide.F64x4
	if skip > 0 {
		vbr, vbi := wide.Splat(bRe), wide.Splat(bIm)
		dzr = vbr.Mul(dcr).Sub(vbi.Mul(vdci))
		dzi = vbr.Mul(vdci).Add(vbi.Mul(dcr))
	}

	mask := wide.FullMask()
	var iters [wide.Lanes]int
	var mods wide.F64x4
	two := wide.Splat(2)

	for n := skip; n < o.escape; n++ {
		vzr := wide.Splat(o.shadowRe[n])
		vzi := wide.Splat(o.shadowIm[n])

		fr := vzr.Add(dzr)
		fi := vzi.Add(dzi)
		m := fr.Mul(fr).Add(fi.Mul(fi))
		for k := 0; k < wide.Lanes; k++ {
			if mask[k] && m[k] > 4 {
				mask.Clear(k)
				iters[k] = n
				mods[k] = m[k]
			}
		}
		if !mask.Any() {
			break
		}

		sqr := dzr.Mul(dzr).Sub(dzi.Mul(dzi)).Add(dcr)
		sqi := two.Mul(dzr).Mul(dzi).Add(vdci)
		ndzr := two.Mul(vzr.Mul(dzr).Sub(vzi.Mul(dzi))).Add(sqr)
		ndzi := two.Mul(vzr.Mul(dzi).Add(vzi.Mul(dzr))).Add(sqi)
		dzr = ndzr.Masked(mask)
		dzi = ndzi.Masked(mask)
	}

	for k := range row {
		if mask[k] {
			row[k] = float64(-maxIter)
		} else {
			row[k] = escapeSmooth(iters[k], mods[k])
		}
	}
}
