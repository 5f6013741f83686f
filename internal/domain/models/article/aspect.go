package article

import "math"

// AspectRatio is the display ratio class of an image
type AspectRatio string

const (
	AspectRatio16x9     AspectRatio = "16:9"
	AspectRatio4x3      AspectRatio = "4:3"
	AspectRatio3x2      AspectRatio = "3:2"
	AspectRatio1x1      AspectRatio = "1:1"
	AspectRatio2x3      AspectRatio = "2:3"
	AspectRatio9x16     AspectRatio = "9:16"
	AspectRatioOriginal AspectRatio = "original"
)

// aspectRatioTolerance is the maximum distance between a measured ratio and
// a standard one for the standard one to be chosen.
const aspectRatioTolerance = 0.1

var standardAspectRatios = []struct {
	ratio AspectRatio
	value float64
}{
	{AspectRatio16x9, 16.0 / 9.0},
	{AspectRatio4x3, 4.0 / 3.0},
	{AspectRatio3x2, 3.0 / 2.0},
	{AspectRatio1x1, 1.0},
	{AspectRatio2x3, 2.0 / 3.0},
	{AspectRatio9x16, 9.0 / 16.0},
}

// IsValid reports whether r is a known aspect ratio (including original)
func (r AspectRatio) IsValid() bool {
	if r == AspectRatioOriginal {
		return true
	}
	for _, s := range standardAspectRatios {
		if s.ratio == r {
			return true
		}
	}
	return false
}

// DeriveAspectRatio returns the standard ratio nearest to width/height, or
// AspectRatioOriginal when none is within tolerance or the dimensions are
// not positive.
func DeriveAspectRatio(width, height int) AspectRatio {
	if width <= 0 || height <= 0 {
		return AspectRatioOriginal
	}
	measured := float64(width) / float64(height)

	best := AspectRatioOriginal
	bestDiff := math.Inf(1)
	for _, s := range standardAspectRatios {
		diff := math.Abs(measured - s.value)
		if diff <= aspectRatioTolerance && diff < bestDiff {
			best = s.ratio
			bestDiff = diff
		}
	}
	return best
}
