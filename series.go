package mandel

import "math"

// seriesThreshold bounds |B_n| * max_dc. Past it the quadratic term of the
// delta recurrence is no longer negligible against the linear estimate, so
// the approximation stops being trusted. Conservative on purpose: skipping
// too far smears detail at depth, skipping too little only costs time.
const seriesThreshold = 1e-12

// seriesSkip scans the linear recurrence B_0 = 0, B_{n+1} = 2*Z_n*B_n + 1
// over the shadow orbit and returns the largest index where the worst-case
// pixel delta |B_n|*maxDC still passes the validity bound, together with B
// at exactly that index. Every pixel may then start its delta iteration at
// skip with dz seeded as B_skip * dc instead of iterating from zero.
//
// 0 <= skip <= orbit.len()-1 always holds; float64 is enough here because B
// only bounds validity, it never enters the final per-pixel values beyond
// the seed.
func seriesSkip(o *referenceOrbit, maxDC float64) (skip int, bRe, bIm float64) {
	var br, bi float64
	for n := 0; n < o.escape; n++ {
		if math.Hypot(br, bi)*maxDC > seriesThreshold {
			break
		}
		skip, bRe, bIm = n, br, bi
		zr, zi := o.shadowRe[n], o.shadowIm[n]
		br, bi = 2*(zr*br-zi*bi)+1, 2*(zr*bi+zi*br)
	}
	return skip, bRe, bIm
}
