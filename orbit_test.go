package mandel

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func bigPair(re, im string, prec uint) (*big.Float, *big.Float) {
	r, _, _ := big.ParseFloat(re, 10, prec, big.ToNearestEven)
	i, _, _ := big.ParseFloat(im, 10, prec, big.ToNearestEven)
	return r, i
}

func TestReferenceOrbitNonEscaping(t *testing.T) {
	// c = 0 stays at the origin forever.
	cr, ci := bigPair("0", "0", 128)
	o := computeReferenceOrbit(cr, ci, 50)

	require.Equal(t, 50, o.escape)
	require.Equal(t, 51, o.len())
	require.Zero(t, o.shadowRe[0])
	require.Zero(t, o.shadowIm[0])
	for n := 0; n < o.len(); n++ {
		require.Zero(t, o.shadowRe[n])
		require.Zero(t, o.shadowIm[n])
	}
}

func TestReferenceOrbitEscapes(t *testing.T) {
	// c = 2: orbit 0, 2, 6 — |6|^2 > 4 at index 2.
	cr, ci := bigPair("2", "0", 128)
	o := computeReferenceOrbit(cr, ci, 100)

	require.Equal(t, 2, o.escape)
	require.Equal(t, 3, o.len())
	require.Equal(t, []float64{0, 2, 6}, o.shadowRe)
	require.Equal(t, []float64{0, 0, 0}, o.shadowIm)
}

// The antenna tip c = -2 cycles 0, -2, 2, 2, ... with |z|^2 exactly 4:
// never past the bound, so the orbit runs the full cap.
func TestReferenceOrbitAntennaTip(t *testing.T) {
	cr, ci := bigPair("-2", "0", 128)
	o := computeReferenceOrbit(cr, ci, 200)

	require.Equal(t, 200, o.escape)
	require.Equal(t, 201, o.len())
	require.Equal(t, -2.0, o.shadowRe[1])
	require.Equal(t, 2.0, o.shadowRe[2])
	require.Equal(t, 2.0, o.shadowRe[200])
}

func TestReferenceOrbitShadowTracksFullPrecision(t *testing.T) {
	cr, ci := bigPair("-0.75", "0.1", 256)
	o := computeReferenceOrbit(cr, ci, 100)

	require.LessOrEqual(t, o.len(), 101)
	require.GreaterOrEqual(t, o.escape, 1)
	for n := 0; n < o.len(); n++ {
		fr, _ := o.re[n].Float64()
		fi, _ := o.im[n].Float64()
		require.Equal(t, fr, o.shadowRe[n])
		require.Equal(t, fi, o.shadowIm[n])
	}
}

func TestOrbitPrec(t *testing.T) {
	require.Equal(t, uint(128), orbitPrec(decimal.RequireFromString("3.5"), 800))
	deep := orbitPrec(decimal.RequireFromString("1e-20"), 800)
	require.Greater(t, deep, uint(128))
	deeper := orbitPrec(decimal.RequireFromString("1e-100"), 800)
	require.Greater(t, deeper, deep)
}
