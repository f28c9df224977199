package colour

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Mean is an unrounded average colour, as produced by tile sampling.
type Mean struct {
	R, G, B float64
}

// Floor rounds every channel down to a whole RGB value.
func (m Mean) Floor() RGB {
	return RGB{R: int(math.Floor(m.R)), G: int(math.Floor(m.G)), B: int(math.Floor(m.B))}
}

// Mean returns rgb as an exact Mean.
func (rgb RGB) Mean() Mean {
	return Mean{R: float64(rgb.R), G: float64(rgb.G), B: float64(rgb.B)}
}

func (m Mean) toColorful() colorful.Color {
	norm := func(v float64) float64 {
		return max(0, min(255, v)) / 255.0
	}
	return colorful.Color{R: norm(m.R), G: norm(m.G), B: norm(m.B)}
}

// MeanReducer is implemented by reducers that measure the unrounded mean
// rather than its floored RGB value.
type MeanReducer interface {
	ReduceMean(m Mean) RGB
}

// ReduceMean reduces a sampled mean with r. Reducers that do not implement
// MeanReducer receive the floored mean.
func ReduceMean(r Reducer, m Mean) RGB {
	if mr, ok := r.(MeanReducer); ok {
		return mr.ReduceMean(m)
	}
	return r.Reduce(m.Floor())
}
