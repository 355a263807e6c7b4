package mandel

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// MaxIter values above this are rejected up front: the reference orbit keeps
// every term at full precision, so the cap is what keeps one computation's
// scratch memory bounded.
const MaxIterLimit = 1 << 24

type config struct {
	workers   int
	orbitPrec uint
}

// Option adjusts one computation.
type Option func(*config)

// WithWorkers fixes the worker count. Zero or negative selects GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *config) { c.workers = n }
}

// WithOrbitPrecision overrides the mantissa bit count of the reference
// orbit. Zero derives it from the viewport, which is almost always right.
func WithOrbitPrecision(bits uint) Option {
	return func(c *config) { c.orbitPrec = bits }
}

// Compute runs the escape-time engine over the viewport and returns one
// value per pixel in row-major order: a smoothed escape count for points
// that diverge within maxIter steps, or -maxIter for points that do not.
// The precision tier is chosen internally from the viewport width.
//
// Identical inputs always produce an identical buffer. In the deepest tier
// a pixel whose true orbit outlives the reference orbit also reports
// -maxIter; see the note on the delta iteration.
func Compute(v Viewport, maxIter int, opts ...Option) ([]float64, error) {
	if err := v.validate(); err != nil {
		return nil, err
	}
	if maxIter <= 0 || maxIter > MaxIterLimit {
		return nil, fmt.Errorf("%w: %d (allowed 1..%d)", ErrInvalidMaxIter, maxIter, MaxIterLimit)
	}

	cfg := config{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.workers < 1 {
		cfg.workers = runtime.GOMAXPROCS(0)
	}

	tier := SelectTier(v)
	Logger().Debug("computation start",
		"tier", tier.String(), "width", v.span().String(),
		"resolution", fmt.Sprintf("%dx%d", v.Width, v.Height),
		"max_iter", maxIter, "workers", cfg.workers)

	out := make([]float64, v.Width*v.Height)
	switch tier {
	case TierStandard:
		renderStandard(v, maxIter, cfg.workers, out)
	case TierExtended:
		renderExtended(v, maxIter, cfg.workers, out)
	default:
		renderPerturbation(v, maxIter, cfg, out)
	}
	return out, nil
}

// forEachRow distributes scanlines over a fixed set of workers. Rows are
// independent, so a shared atomic cursor is all the coordination needed;
// each row is claimed and written exactly once.
func forEachRow(height, workers int, fn func(py int)) {
	if workers > height {
		workers = height
	}
	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				py := int(next.Add(1)) - 1
				if py >= height {
					return
				}
				fn(py)
			}
		}()
	}
	wg.Wait()
}
