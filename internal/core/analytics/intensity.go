package analytics

import (
	"math"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
)

// Classify maps a completion rate in percent to its intensity bucket.
// Bounds are inclusive below, exclusive above; 60 up to 100 is a single
// "high" bucket and only exactly 100 is "full". Values outside [0, 100] are
// clamped and NaN counts as zero, so every float maps to a bucket.
func Classify(rate float64) domain.Intensity {
	switch {
	case math.IsNaN(rate) || rate <= 0:
		return domain.IntensityNone
	case rate < 20:
		return domain.IntensityVeryLow
	case rate < 40:
		return domain.IntensityLow
	case rate < 60:
		return domain.IntensityMedium
	case rate < 100:
		return domain.IntensityHigh
	default:
		return domain.IntensityFull
	}
}
