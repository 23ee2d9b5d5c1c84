package curve

import (
	"math"

	"github.com/RMahshie/soundmax/pkg/models"
)

// Resample maps samples onto grid by linear interpolation in log10
// frequency, clamping every gain to the equalizer range.
//
// samples must be sorted by ascending frequency, as GraphicEQ documents
// are. Unsorted input does not panic but yields meaningless gains.
// Targets outside the sampled range take the gain of the nearest end.
func Resample(samples []models.CurveSample, grid models.Grid) models.BandProfile {
	var profile models.BandProfile
	if len(samples) == 0 {
		return profile
	}

	for i, target := range grid {
		profile[i] = clampGain(gainAt(samples, target))
	}
	return profile
}

// gainAt interpolates the curve at a single target frequency
func gainAt(samples []models.CurveSample, target float64) float64 {
	lowerIdx, upperIdx := bracket(samples, target)
	lower := samples[lowerIdx]
	upper := samples[upperIdx]

	logLower := math.Log10(lower.FrequencyHz)
	logUpper := math.Log10(upper.FrequencyHz)
	// Distinct frequencies can still share a log10 value
	if logLower == logUpper {
		return lower.GainDB
	}

	t := (math.Log10(target) - logLower) / (logUpper - logLower)
	return lower.GainDB + t*(upper.GainDB-lower.GainDB)
}

// bracket returns the last sample at or below target and the first sample
// at or above it. Below the curve both are 0; above it both are the last
// index.
func bracket(samples []models.CurveSample, target float64) (lower, upper int) {
	upper = len(samples) - 1
	for i, s := range samples {
		if s.FrequencyHz <= target {
			lower = i
		}
		if s.FrequencyHz >= target {
			upper = i
			break
		}
	}
	return lower, upper
}

func clampGain(gain float64) float64 {
	if math.IsNaN(gain) {
		return 0
	}
	return math.Max(models.MinGainDB, math.Min(models.MaxGainDB, gain))
}
