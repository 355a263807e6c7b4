package mandel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeriesSkipBounds(t *testing.T) {
	centers := [][2]string{
		{"-0.75", "0.1"},
		{"-2", "0"},
		{"0", "0"},
		{"-0.7436438870371587", "0.1318259042053119"},
	}
	maxDCs := []float64{0, 1e-30, 1e-18, 1e-9, 1}

	for _, c := range centers {
		cr, ci := bigPair(c[0], c[1], 256)
		o := computeReferenceOrbit(cr, ci, 500)
		for _, maxDC := range maxDCs {
			skip, bRe, bIm := seriesSkip(o, maxDC)
			require.GreaterOrEqual(t, skip, 0, "center %v maxDC %v", c, maxDC)
			require.LessOrEqual(t, skip, o.len()-1, "center %v maxDC %v", c, maxDC)
			require.False(t, math.IsNaN(bRe) || math.IsInf(bRe, 0))
			require.False(t, math.IsNaN(bIm) || math.IsInf(bIm, 0))
		}
	}
}

// A huge worst-case delta invalidates the approximation immediately.
func TestSeriesSkipHugeDeltaSkipsNothing(t *testing.T) {
	cr, ci := bigPair("-0.75", "0.1", 128)
	o := computeReferenceOrbit(cr, ci, 200)

	skip, bRe, bIm := seriesSkip(o, 1e6)
	require.Equal(t, 0, skip)
	require.Zero(t, bRe)
	require.Zero(t, bIm)
}

// A zero delta never trips the bound: the scan walks the whole orbit.
func TestSeriesSkipZeroDeltaWalksOrbit(t *testing.T) {
	cr, ci := bigPair("-0.75", "0.1", 128)
	o := computeReferenceOrbit(cr, ci, 200)

	skip, _, _ := seriesSkip(o, 0)
	require.Equal(t, o.escape-1, skip)
}

// First coefficients by hand for the antenna orbit 0, -2, 2, 2, ...:
// B1 = 1, B2 = 2*(-2)*1+1 = -3, B3 = 2*2*(-3)+1 = -11.
func TestSeriesRecurrence(t *testing.T) {
	cr, ci := bigPair("-2", "0", 128)
	o := computeReferenceOrbit(cr, ci, 50)

	// maxDC chosen so the bound trips once |B| > 1e-12/1e-15 = 1000.
	skip, bRe, bIm := seriesSkip(o, 1e-15)
	require.Equal(t, 0.0, bIm)
	require.Less(t, math.Abs(bRe), 1001.0)
	require.Greater(t, skip, 2)

	// Recompute B at skip independently.
	br, bi := 0.0, 0.0
	for n := 0; n < skip; n++ {
		zr, zi := o.shadowRe[n], o.shadowIm[n]
		br, bi = 2*(zr*br-zi*bi)+1, 2*(zr*bi+zi*br)
	}
	require.Equal(t, br, bRe)
	require.Equal(t, bi, bIm)
}
