// Package mandel computes smoothed escape-time values for rectangular
// viewports of the Mandelbrot set.
//
// The entry point is [Compute]: it takes a [Viewport] with exact decimal
// bounds, picks a numeric precision tier from the viewport width and returns
// one float64 per pixel — a continuous escape count for points that diverge,
// or -maxIter for points that stay bounded. Shallow views iterate every
// pixel directly; views narrower than float64 can resolve switch to
// double-double arithmetic and finally to perturbation against a single
// full-precision reference orbit, with a series approximation skipping the
// shared initial iterations.
//
// Coloring, image encoding and serving live in the palette package and the
// cmd front-ends; the engine itself only ever produces the value buffer.
package mandel
