package mandel

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// Errors reported before any computation starts.
var (
	ErrInvalidViewport = errors.New("mandel: invalid viewport")
	ErrInvalidMaxIter  = errors.New("mandel: invalid max iterations")
)

// maxDimension bounds the output resolution so a bad request is rejected
// before the output buffer is allocated.
const maxDimension = 1 << 16

// Region describes rectangular bounds in the complex plane with native
// floats. It is convenient for shallow views; anything deeper than float64
// can resolve must go through NewViewport with decimal strings instead.
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// Classic regions / landmarks in the Mandelbrot set
var (
	// Home – the full set with some margin
	Home = Region{
		Xmin: -2.5,
		Xmax: 1.0,
		Ymin: -1.5,
		Ymax: 1.5,
	}

	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	SeahorseValley = Region{
		Xmin: -0.8,
		Xmax: -0.7,
		Ymin: 0.05,
		Ymax: 0.15,
	}

	// Elephant Valley – large bulb with trunk-like tendrils
	ElephantValley = Region{
		Xmin: -1.85,
		Xmax: -1.75,
		Ymin: -0.10,
		Ymax: -0.02,
	}

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = Region{
		Xmin: -0.7435,
		Xmax: -0.7420,
		Ymin: 0.1310,
		Ymax: 0.1325,
	}

	// Triple Spiral – threefold symmetric spiral structure
	TripleSpiral = Region{
		Xmin: -0.7480,
		Xmax: -0.7450,
		Ymin: 0.0950,
		Ymax: 0.0980,
	}

	// Valley of the Dragon – deep, highly detailed spiral filaments
	ValleyOfTheDragon = Region{
		Xmin: -0.7400,
		Xmax: -0.7350,
		Ymin: 0.1800,
		Ymax: 0.1850,
	}

	// Minibrot in a Mini-Spiral – self-similar Mandelbrot copy inside a spiral arm
	MinibrotInMiniSpiral = Region{
		Xmin: -1.7390,
		Xmax: -1.7375,
		Ymin: -0.0235,
		Ymax: -0.0220,
	}
)

// DeepSpiral is a perturbation-depth landmark centered on
// -0.7436438870371587+0.1318259042053119i. Its bounds are far below what
// float64 resolves, so it is expressed as a ready viewport.
func DeepSpiral(width, height int) (Viewport, error) {
	return NewViewport(
		"-0.74364388703715870000005",
		"-0.74364388703715869999995",
		"0.13182590420531189999995",
		"0.13182590420531190000005",
		width, height,
	)
}

// Viewport is one computation's immutable view: exact decimal bounds in the
// complex plane plus the output resolution in pixels.
type Viewport struct {
	Xmin, Xmax decimal.Decimal
	Ymin, Ymax decimal.Decimal
	Width      int
	Height     int
}

// NewViewport parses the decimal bound strings and validates the geometry.
// Bounds keep every digit the caller supplies; deep zooms therefore must
// pass high-precision decimal strings, not formatted floats.
func NewViewport(xmin, xmax, ymin, ymax string, width, height int) (Viewport, error) {
	var v Viewport
	var err error
	if v.Xmin, err = decimal.NewFromString(xmin); err != nil {
		return Viewport{}, fmt.Errorf("%w: xmin: %v", ErrInvalidViewport, err)
	}
	if v.Xmax, err = decimal.NewFromString(xmax); err != nil {
		return Viewport{}, fmt.Errorf("%w: xmax: %v", ErrInvalidViewport, err)
	}
	if v.Ymin, err = decimal.NewFromString(ymin); err != nil {
		return Viewport{}, fmt.Errorf("%w: ymin: %v", ErrInvalidViewport, err)
	}
	if v.Ymax, err = decimal.NewFromString(ymax); err != nil {
		return Viewport{}, fmt.Errorf("%w: ymax: %v", ErrInvalidViewport, err)
	}
	v.Width, v.Height = width, height
	if err := v.validate(); err != nil {
		return Viewport{}, err
	}
	return v, nil
}

// ViewportFromRegion lifts native float bounds into a viewport. Only valid
// for views wide enough that float64 still resolves the bounds themselves.
func ViewportFromRegion(r Region, width, height int) (Viewport, error) {
	v := Viewport{
		Xmin:   decimal.NewFromFloat(r.Xmin),
		Xmax:   decimal.NewFromFloat(r.Xmax),
		Ymin:   decimal.NewFromFloat(r.Ymin),
		Ymax:   decimal.NewFromFloat(r.Ymax),
		Width:  width,
		Height: height,
	}
	if err := v.validate(); err != nil {
		return Viewport{}, err
	}
	return v, nil
}

func (v Viewport) validate() error {
	if v.Width <= 0 || v.Height <= 0 || v.Width > maxDimension || v.Height > maxDimension {
		return fmt.Errorf("%w: resolution %dx%d", ErrInvalidViewport, v.Width, v.Height)
	}
	if v.Xmax.Cmp(v.Xmin) <= 0 {
		return fmt.Errorf("%w: xmax %s <= xmin %s", ErrInvalidViewport, v.Xmax, v.Xmin)
	}
	if v.Ymax.Cmp(v.Ymin) <= 0 {
		return fmt.Errorf("%w: ymax %s <= ymin %s", ErrInvalidViewport, v.Ymax, v.Ymin)
	}
	return nil
}

var half = decimal.New(5, -1)

// Zoomed returns a view of the same center with both spans multiplied by
// factor, so "0.1" zooms in tenfold. All arithmetic is exact in decimal; the
// result can be fed straight back into Compute no matter how deep it gets.
func (v Viewport) Zoomed(factor string) (Viewport, error) {
	f, err := decimal.NewFromString(factor)
	if err != nil || !f.IsPositive() {
		return Viewport{}, fmt.Errorf("%w: zoom factor %q", ErrInvalidViewport, factor)
	}
	cx := v.Xmin.Add(v.Xmax).Mul(half)
	cy := v.Ymin.Add(v.Ymax).Mul(half)
	hx := v.span().Mul(half).Mul(f)
	hy := v.spanY().Mul(half).Mul(f)
	z := Viewport{
		Xmin:   cx.Sub(hx),
		Xmax:   cx.Add(hx),
		Ymin:   cy.Sub(hy),
		Ymax:   cy.Add(hy),
		Width:  v.Width,
		Height: v.Height,
	}
	if err := z.validate(); err != nil {
		return Viewport{}, err
	}
	return z, nil
}

func (v Viewport) span() decimal.Decimal  { return v.Xmax.Sub(v.Xmin) }
func (v Viewport) spanY() decimal.Decimal { return v.Ymax.Sub(v.Ymin) }

// center is exact: the sum halves without division.
func (v Viewport) center() (cx, cy decimal.Decimal) {
	return v.Xmin.Add(v.Xmax).Mul(half), v.Ymin.Add(v.Ymax).Mul(half)
}

// centerBig converts the exact center into big floats of the given mantissa size.
func (v Viewport) centerBig(prec uint) (cr, ci *big.Float) {
	cx, cy := v.center()
	return bigFromDecimal(cx, prec), bigFromDecimal(cy, prec)
}

// stepF64 is the pixel spacing in native precision. Usable down to the
// deepest supported zooms: the spacing only anchors per-pixel offsets, not
// absolute coordinates.
func (v Viewport) stepF64() (dx, dy float64) {
	return v.span().InexactFloat64() / float64(v.Width),
		v.spanY().InexactFloat64() / float64(v.Height)
}

func bigFromDecimal(d decimal.Decimal, prec uint) *big.Float {
	f, _, _ := big.ParseFloat(d.String(), 10, prec, big.ToNearestEven)
	return f
}
