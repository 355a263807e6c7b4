package mandel

import "github.com/shopspring/decimal"

// Tier is the numeric regime used for one whole computation. It is derived
// once from the viewport width and never changes mid-computation.
type Tier int

const (
	// TierStandard iterates every pixel in native float64.
	TierStandard Tier = iota
	// TierExtended iterates every pixel in double-double (~106 bit) reals.
	TierExtended
	// TierPerturbation iterates one full-precision reference orbit and
	// reconstructs every pixel from a float64 delta against it.
	TierPerturbation
)

func (t Tier) String() string {
	switch t {
	case TierStandard:
		return "standard"
	case TierExtended:
		return "extended"
	case TierPerturbation:
		return "perturbation"
	}
	return "unknown"
}

// Tier boundaries on viewport width. Above standardLimit neighboring pixel
// coordinates are still distinct in float64; between the limits
// double-double still resolves them; at or below extendedLimit only a delta
// against a shared reference orbit does.
var (
	standardLimit = decimal.RequireFromString("1e-13")
	extendedLimit = decimal.RequireFromString("1e-17")
)

// SelectTier maps the viewport width to its tier. Pure: every positive
// width belongs to exactly one tier, with no gap between the boundaries.
func SelectTier(v Viewport) Tier {
	w := v.span()
	switch {
	case w.Cmp(standardLimit) > 0:
		return TierStandard
	case w.Cmp(extendedLimit) > 0:
		return TierExtended
	default:
		return TierPerturbation
	}
}
