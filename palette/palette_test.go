package palette

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestColorSentinelIsBlack(t *testing.T) {
	require.Equal(t, color.RGBA{A: 255}, Color(-256))
	require.Equal(t, color.RGBA{A: 255}, Color(-1))
}

func TestColorEscapedIsOpaque(t *testing.T) {
	for _, v := range []float64{0.1, 1, 12.5, 35.3, 999.9} {
		c := Color(v)
		require.EqualValues(t, 255, c.A)
		require.NotEqual(t, color.RGBA{A: 255}, c, "value %v must not be black", v)
	}
}

func TestColorSmoothGradient(t *testing.T) {
	// Nearby counts map to nearby hues.
	a, b := Color(10.0), Color(10.05)
	diff := func(x, y uint8) int {
		d := int(x) - int(y)
		if d < 0 {
			d = -d
		}
		return d
	}
	require.Less(t, diff(a.R, b.R)+diff(a.G, b.G)+diff(a.B, b.B), 30)
}

func TestImage(t *testing.T) {
	values := []float64{5, -10, 20, -10, 5, 20}
	img := Image(values, 3, 2)
	require.Equal(t, 3, img.Bounds().Dx())
	require.Equal(t, 2, img.Bounds().Dy())
	require.Equal(t, color.RGBA{A: 255}, img.RGBAAt(1, 0))
	require.Equal(t, color.RGBA{A: 255}, img.RGBAAt(0, 1))
	require.Equal(t, Color(5), img.RGBAAt(0, 0))
	require.Equal(t, Color(20), img.RGBAAt(2, 1))
}
