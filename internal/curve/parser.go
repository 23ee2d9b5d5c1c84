package curve

import (
	"math"
	"strconv"
	"strings"

	"github.com/RMahshie/soundmax/pkg/models"
)

// HeaderToken prefixes the data line of a GraphicEQ document
const HeaderToken = "GraphicEQ:"

// Parse extracts the frequency/gain samples of a GraphicEQ document.
//
// Format: GraphicEQ: 20 -3.5; 22 -3.5; 23 -3.4; ...
//
// Only the first line starting with HeaderToken is read. Pairs that are not
// exactly two numbers, or whose frequency is not a positive finite value,
// are skipped. Samples are returned in document order.
func Parse(doc string) ([]models.CurveSample, error) {
	line, ok := headerLine(doc)
	if !ok {
		return nil, ErrMissingHeader
	}

	data := strings.TrimSpace(strings.TrimPrefix(line, HeaderToken))

	var samples []models.CurveSample
	for _, pair := range strings.Split(data, ";") {
		sample, ok := parsePair(pair)
		if !ok {
			continue
		}
		samples = append(samples, sample)
	}

	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	return samples, nil
}

func headerLine(doc string) (string, bool) {
	for _, line := range strings.Split(doc, "\n") {
		if strings.HasPrefix(line, HeaderToken) {
			return line, true
		}
	}
	return "", false
}

func parsePair(pair string) (models.CurveSample, bool) {
	fields := strings.Fields(pair)
	if len(fields) != 2 {
		return models.CurveSample{}, false
	}

	freq, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return models.CurveSample{}, false
	}
	gain, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return models.CurveSample{}, false
	}

	// log10 needs a positive frequency
	if freq <= 0 || math.IsInf(freq, 0) || math.IsNaN(freq) {
		return models.CurveSample{}, false
	}
	if math.IsInf(gain, 0) || math.IsNaN(gain) {
		return models.CurveSample{}, false
	}

	return models.CurveSample{FrequencyHz: freq, GainDB: gain}, true
}
