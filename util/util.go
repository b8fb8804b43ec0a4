package util

import (
	"github.com/fogleman/ease"
)

// CrossfadeLut builds an eased ramp from 0 to 1 with the given number
// of steps, used to pace timeline crossfades.
func CrossfadeLut(length int) []float64 {
	lut := make([]float64, length)
	for i := 0; i < length; i++ {
		lut[i] = ease.InOutQuad(float64(i) / float64(length-1))
	}
	return lut
}

// Clamp01 clamps v into [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
