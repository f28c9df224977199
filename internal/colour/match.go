package colour

import (
	"fmt"
	"math"
	"slices"
)

// Metric selects the colour distance used for nearest-colour matching.
type Metric string

const (
	// MetricRGB is the Euclidean distance in RGB space.
	MetricRGB Metric = "rgb"

	// MetricLab is the Euclidean distance in CIE L*a*b* space.
	MetricLab Metric = "lab"
)

// ValidMetrics returns a list of valid metric names.
func ValidMetrics() []Metric {
	return []Metric{MetricRGB, MetricLab}
}

// ParseMetric converts a metric name into a Metric.
func ParseMetric(name string) (Metric, error) {
	m := Metric(name)
	if !slices.Contains(ValidMetrics(), m) {
		return "", fmt.Errorf("%w: %s (valid metrics: %v)", ErrUnknownMetric, name, ValidMetrics())
	}
	return m, nil
}

// Distance calculates the Euclidean distance between two colours in RGB space.
func Distance(a, b RGB) float64 {
	return rgbDistance(a.Mean(), b.Mean())
}

func rgbDistance(a, b Mean) float64 {
	dr := a.R - b.R
	dg := a.G - b.G
	db := a.B - b.B
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

func labDistance(a, b Mean) float64 {
	return a.toColorful().DistanceLab(b.toColorful())
}

// distanceFunc returns the distance implementation for a metric.
func distanceFunc(m Metric) (func(a, b Mean) float64, error) {
	switch m {
	case MetricRGB, "":
		return rgbDistance, nil
	case MetricLab:
		return labDistance, nil
	default:
		return nil, fmt.Errorf("%w: %s (valid metrics: %v)", ErrUnknownMetric, m, ValidMetrics())
	}
}

// Match returns the palette colour closest to c in RGB space.
// The first entry achieving the minimum distance wins.
func Match(c RGB, palette *Palette) (RGB, error) {
	return MatchWith(c, palette, MetricRGB)
}

// MatchWith returns the palette colour closest to c under the given metric.
func MatchWith(c RGB, palette *Palette, m Metric) (RGB, error) {
	if err := palette.Validate(); err != nil {
		return RGB{}, err
	}
	distance, err := distanceFunc(m)
	if err != nil {
		return RGB{}, err
	}

	return palette.Colours[nearest(c.Mean(), palette.Colours, distance)], nil
}

// nearest finds the index of the nearest colour, keeping the first on ties.
func nearest(c Mean, colours []RGB, distance func(a, b Mean) float64) int {
	minDist := math.MaxFloat64
	closest := 0

	for i, candidate := range colours {
		if d := distance(c, candidate.Mean()); d < minDist {
			minDist = d
			closest = i
		}
	}

	return closest
}
