package wide

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplat(t *testing.T) {
	require.Equal(t, F64x4{2.5, 2.5, 2.5, 2.5}, Splat(2.5))
}

func TestElementwiseOps(t *testing.T) {
	a := F64x4{1, 2, 3, 4}
	b := F64x4{10, 20, 30, 40}

	require.Equal(t, F64x4{11, 22, 33, 44}, a.Add(b))
	require.Equal(t, F64x4{9, 18, 27, 36}, b.Sub(a))
	require.Equal(t, F64x4{10, 40, 90, 160}, a.Mul(b))
}

func TestMasked(t *testing.T) {
	v := F64x4{1, 2, 3, 4}
	m := FullMask()
	m.Clear(1)
	m.Clear(3)
	require.Equal(t, F64x4{1, 0, 3, 0}, v.Masked(m))
	require.Equal(t, v, v.Masked(FullMask()))
}

func TestMask(t *testing.T) {
	m := FullMask()
	require.True(t, m.Any())
	for i := 0; i < Lanes; i++ {
		m.Clear(i)
	}
	require.False(t, m.Any())

	var none Mask
	require.False(t, none.Any())
}
