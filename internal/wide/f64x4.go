// Package wide provides fixed-width lane types for batch pixel processing.
// A lane type advances several independent per-pixel computations in
// lockstep; the element-wise methods are written over fixed-size arrays so
// the compiler can auto-vectorize them. Escaped lanes are suppressed by
// masking rather than branching.
package wide

// Lanes is the batch width of the vectorized pixel loop.
const Lanes = 4

// F64x4 holds one float64 per lane.
type F64x4 [Lanes]float64

// Splat creates an F64x4 with every lane set to n.
func Splat(n float64) F64x4 {
	var v F64x4
	for i := range v {
		v[i] = n
	}
	return v
}

// Add performs element-wise addition.
func (v F64x4) Add(o F64x4) F64x4 {
	var r F64x4
	for i := range v {
		r[i] = v[i] + o[i]
	}
	return r
}

// Sub performs element-wise subtraction.
func (v F64x4) Sub(o F64x4) F64x4 {
	var r F64x4
	for i := range v {
		r[i] = v[i] - o[i]
	}
	return r
}

// Mul performs element-wise multiplication.
func (v F64x4) Mul(o F64x4) F64x4 {
	var r F64x4
	for i := range v {
		r[i] = v[i] * o[i]
	}
	return r
}

// Masked zeroes every lane whose mask bit is off, leaving active lanes
// untouched. Holding dead lanes at zero keeps their arithmetic finite while
// the rest of the batch continues.
func (v F64x4) Masked(m Mask) F64x4 {
	var r F64x4
	for i := range v {
		if m[i] {
			r[i] = v[i]
		}
	}
	return r
}

// Mask tracks which lanes are still active.
type Mask [Lanes]bool

// FullMask returns a mask with every lane active.
func FullMask() Mask {
	var m Mask
	for i := range m {
		m[i] = true
	}
	return m
}

// Clear deactivates lane i.
func (m *Mask) Clear(i int) { m[i] = false }

// Any reports whether at least one lane is still active.
func (m Mask) Any() bool {
	for _, b := range m {
		if b {
			return true
		}
	}
	return false
}
