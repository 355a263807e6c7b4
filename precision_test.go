package mandel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func viewportWithWidth(t *testing.T, width string) Viewport {
	t.Helper()
	v, err := NewViewport("0", width, "0", "1", 16, 16)
	require.NoError(t, err)
	return v
}

func TestSelectTier(t *testing.T) {
	cases := []struct {
		width string
		want  Tier
	}{
		{"3.5", TierStandard},
		{"1e-12", TierStandard},
		{"1.0000000000001e-13", TierStandard},
		{"1e-13", TierExtended}, // boundary belongs to the lower tier
		{"9.99e-14", TierExtended},
		{"1e-15", TierExtended},
		{"1.000000000000001e-17", TierExtended},
		{"1e-17", TierPerturbation}, // boundary belongs to perturbation
		{"9.99e-18", TierPerturbation},
		{"1e-20", TierPerturbation},
		{"1e-100", TierPerturbation},
	}
	for _, c := range cases {
		v := viewportWithWidth(t, c.width)
		require.Equal(t, c.want, SelectTier(v), "width %s", c.width)
	}
}

// The two boundaries partition all positive widths: walking down through
// them the tier never skips and never goes back up.
func TestTierOrderIsMonotone(t *testing.T) {
	widths := []string{
		"1000", "1", "1e-5", "1e-13", "5e-14", "1e-16", "1e-17", "1e-18", "1e-50",
	}
	prev := TierStandard
	for _, w := range widths {
		tier := SelectTier(viewportWithWidth(t, w))
		require.GreaterOrEqual(t, tier, prev, "width %s", w)
		require.LessOrEqual(t, tier-prev, Tier(1), "width %s must not skip a tier", w)
		prev = tier
	}
	require.Equal(t, TierPerturbation, prev)
}

func TestTierString(t *testing.T) {
	require.Equal(t, "standard", TierStandard.String())
	require.Equal(t, "extended", TierExtended.String())
	require.Equal(t, "perturbation", TierPerturbation.String())
}
