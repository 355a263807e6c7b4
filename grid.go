package mandel

import (
	"math/big"

	"github.com/deepzoom/mandel/internal/dd"
)

// Pixel grids anchor coordinates on the viewport center and address pixel
// centers, so a view with ymin = -ymax maps row py and row height-1-py to
// exactly conjugate points.

// gridF64 maps pixels at native precision (standard tier).
type gridF64 struct {
	cx, cy float64
	dx, dy float64
	w, h   int
}

func newGridF64(v Viewport) gridF64 {
	cx, cy := v.center()
	dx, dy := v.stepF64()
	return gridF64{
		cx: cx.InexactFloat64(),
		cy: cy.InexactFloat64(),
		dx: dx, dy: dy,
		w: v.Width, h: v.Height,
	}
}

func (g gridF64) at(px, py int) (cr, ci float64) {
	cr = g.cx + (float64(px)+0.5-float64(g.w)/2)*g.dx
	ci = g.cy + (float64(py)+0.5-float64(g.h)/2)*g.dy
	return cr, ci
}

// gridDD maps pixels in double-double (extended tier). Anchors are built
// from the exact decimal bounds; the per-pixel offset itself is an exact
// small integer-and-a-half times the spacing.
type gridDD struct {
	cx, cy dd.DD
	dx, dy dd.DD
	w, h   int
}

// ddAnchorPrec is plenty for a 106-bit target.
const ddAnchorPrec = 160

func newGridDD(v Viewport) gridDD {
	cr, ci := v.centerBig(ddAnchorPrec)
	dx := bigFromDecimal(v.span(), ddAnchorPrec)
	dy := bigFromDecimal(v.spanY(), ddAnchorPrec)
	dx.Quo(dx, new(big.Float).SetPrec(ddAnchorPrec).SetInt64(int64(v.Width)))
	dy.Quo(dy, new(big.Float).SetPrec(ddAnchorPrec).SetInt64(int64(v.Height)))
	return gridDD{
		cx: dd.FromBig(cr),
		cy: dd.FromBig(ci),
		dx: dd.FromBig(dx),
		dy: dd.FromBig(dy),
		w:  v.Width,
		h:  v.Height,
	}
}

func (g gridDD) at(px, py int) (cr, ci dd.DD) {
	cr = g.cx.Add(g.dx.MulFloat(float64(px) + 0.5 - float64(g.w)/2))
	ci = g.cy.Add(g.dy.MulFloat(float64(py) + 0.5 - float64(g.h)/2))
	return cr, ci
}
