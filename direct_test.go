package mandel

import (
	"testing"

	"github.com/deepzoom/mandel/internal/dd"
	"github.com/stretchr/testify/require"
)

func TestClosedFormInteriors(t *testing.T) {
	cardioid := [][2]float64{{0, 0}, {-0.1, 0}, {0.2, 0.1}, {-0.5, 0.3}, {0.1, -0.4}}
	for _, c := range cardioid {
		require.True(t, insideCardioid(c[0], c[1]), "c=%v", c)
	}
	bulb := [][2]float64{{-1, 0}, {-1.1, 0.05}, {-0.9, -0.1}}
	for _, c := range bulb {
		require.True(t, insidePeriod2Bulb(c[0], c[1]), "c=%v", c)
	}
	outside := [][2]float64{{1, 1}, {-2, 0}, {0.3, 0}, {-0.75, 0.3}, {0.26, 0}}
	for _, c := range outside {
		require.False(t, insideCardioid(c[0], c[1]), "c=%v", c)
		require.False(t, insidePeriod2Bulb(c[0], c[1]), "c=%v", c)
	}
}

// Points inside the closed-form regions never iterate and report the
// sentinel for every iteration cap.
func TestInteriorShortCircuit(t *testing.T) {
	points := [][2]float64{{0, 0}, {-0.2, 0.2}, {-1, 0}, {-1.05, -0.1}}
	for _, maxIter := range []int{1, 10, 256, 5000} {
		for _, c := range points {
			require.Equal(t, float64(-maxIter), directPoint(c[0], c[1], maxIter))
		}
	}
}

func TestDirectPointEscapes(t *testing.T) {
	v := directPoint(-0.75, 0.1025, 256)
	require.Greater(t, v, 0.0)
	require.Less(t, v, 256.0)

	// Far outside: escapes immediately with a small smoothed count.
	v = directPoint(-2.5, -1.5, 256)
	require.Greater(t, v, 0.0)
	require.Less(t, v, 3.0)
}

// naiveDirect is the plain non-unrolled loop; the unrolled production loop
// must escape on exactly the same iteration with exactly the same value.
func naiveDirect(cr, ci float64, maxIter int) float64 {
	if insideCardioid(cr, ci) || insidePeriod2Bulb(cr, ci) {
		return float64(-maxIter)
	}
	var zr, zi, zr2, zi2 float64
	for i := 0; i < maxIter; i++ {
		if m := zr2 + zi2; m > 4 {
			return escapeSmooth(i, m)
		}
		zi = 2*zr*zi + ci
		zr = zr2 - zi2 + cr
		zr2, zi2 = zr*zr, zi*zi
	}
	return float64(-maxIter)
}

func TestUnrollMatchesPlainLoop(t *testing.T) {
	for _, maxIter := range []int{1, 2, 5, 97, 256} {
		for py := 0; py < 40; py++ {
			for px := 0; px < 50; px++ {
				cr := -2.5 + 3.5*float64(px)/50
				ci := -1.5 + 3.0*float64(py)/40
				require.Equal(t, naiveDirect(cr, ci, maxIter), directPoint(cr, ci, maxIter),
					"c=(%v,%v) maxIter=%d", cr, ci, maxIter)
			}
		}
	}
}

// The double-double iterator agrees with the native one on points that
// escape cleanly.
func TestDirectPointDDMatchesFloat64(t *testing.T) {
	points := [][2]float64{{1, 1}, {-2.1, 0}, {-0.75, 0.1025}, {0.3, 0.5}}
	for _, c := range points {
		want := directPoint(c[0], c[1], 300)
		got := directPointDD(dd.FromFloat64(c[0]), dd.FromFloat64(c[1]), 300)
		require.InDelta(t, want, got, 1e-6, "c=%v", c)
	}
}

func TestDirectPointDDInterior(t *testing.T) {
	require.Equal(t, float64(-100), directPointDD(dd.FromFloat64(-1), dd.FromFloat64(0), 100))
}
