package models

// BandCount is the number of bands in the downstream equalizer
const BandCount = 10

// Gain limits of the downstream equalizer in dB
const (
	MinGainDB = -12.0
	MaxGainDB = 12.0
)

// CurveSample represents a single point of a correction curve
type CurveSample struct {
	FrequencyHz float64 `json:"frequency" doc:"Frequency in Hz"`
	GainDB      float64 `json:"gain" doc:"Gain in dB"`
}

// Grid is an ordered set of band center frequencies in Hz
type Grid [BandCount]float64

// BandProfile holds one gain per band, index-aligned with a Grid
type BandProfile [BandCount]float64

// Locator is the address of a correction-curve document
type Locator string

func (l Locator) String() string {
	return string(l)
}

var targetGrid = Grid{32, 64, 125, 250, 500, 1000, 2000, 4000, 8000, 16000}

// TargetGrid returns the fixed 10-band grid used by the equalizer
func TargetGrid() Grid {
	return targetGrid
}

// Bands pairs each gain with its grid frequency
func (p BandProfile) Bands(grid Grid) []BandGain {
	bands := make([]BandGain, BandCount)
	for i := range p {
		bands[i] = BandGain{FrequencyHz: grid[i], GainDB: p[i]}
	}
	return bands
}

// BandGain is one equalizer band of a profile
type BandGain struct {
	FrequencyHz float64 `json:"frequency" yaml:"frequency" doc:"Band center frequency in Hz"`
	GainDB      float64 `json:"gain" yaml:"gain" doc:"Band gain in dB"`
}
