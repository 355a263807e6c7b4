// Package palette turns engine output values into colors. It consumes only
// the value buffer; the engine never depends on it.
package palette

import (
	"image"
	"image/color"
	"math"
)

// Color maps one smoothed escape count to a color. Non-escaping pixels
// (negative sentinel values) are black; escaping pixels cycle through a
// smooth hue gradient so neighboring counts blend without banding.
func Color(v float64) color.RGBA {
	if v < 0 {
		return color.RGBA{A: 255}
	}
	hue := math.Mod(v*0.02, 1.0)
	return hsv(hue, 1, 1)
}

// Image renders a whole row-major value buffer into an RGBA image.
func Image(values []float64, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for py := 0; py < height; py++ {
		for px := 0; px < width; px++ {
			img.SetRGBA(px, py, Color(values[py*width+px]))
		}
	}
	return img
}

// Simple HSV → RGB
func hsv(h, s, v float64) color.RGBA {
	h = math.Mod(h, 1)
	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	case 5:
		r, g, b = v, p, q
	}
	return color.RGBA{uint8(r * 255), uint8(g * 255), uint8(b * 255), 255}
}
