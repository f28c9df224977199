// Package sampler estimates a tile's colour from five representative pixels.
package sampler

import (
	"image"
	"image/color"

	"github.com/jmylchreest/pixelize/internal/colour"
	"github.com/jmylchreest/pixelize/internal/grid"
)

const (
	// CentralFactor is the RGB weight of the centre sample. Corner samples weigh 1.
	CentralFactor = 3

	// TransparencyThreshold is the averaged alpha below which a tile is transparent.
	TransparencyThreshold = 100

	// alphaSeed is added to the alpha sum before averaging.
	alphaSeed = 1

	divisor = 4 + CentralFactor
)

// PixelReader reads single pixels from a surface.
// *image.NRGBA satisfies it.
type PixelReader interface {
	Bounds() image.Rectangle
	NRGBAAt(x, y int) color.NRGBA
}

// Result is the averaged colour of a tile.
type Result struct {
	// Mean is the weighted sums divided by 7, unrounded.
	Mean colour.Mean

	// Colour is Mean floored to whole channel values.
	Colour colour.RGB

	// Alpha is (1 + sum of the five alpha samples) / 7.
	Alpha int

	// Transparent is true when Alpha is below TransparencyThreshold.
	Transparent bool
}

// Point is a sample location with its RGB weight.
type Point struct {
	image.Point
	Weight int
}

// Points returns the five sample points of a tile: the four inner corners at
// the quarter marks followed by the centre. Coordinates are truncated and then
// clamped into bounds so boundary tiles read their last pixel.
func Points(r grid.Rect, bounds image.Rectangle) [5]Point {
	at := func(fx, fy float64, weight int) Point {
		x := int(r.X + fx*r.W)
		y := int(r.Y + fy*r.H)
		return Point{
			Point:  image.Pt(clamp(x, bounds.Min.X, bounds.Max.X-1), clamp(y, bounds.Min.Y, bounds.Max.Y-1)),
			Weight: weight,
		}
	}

	return [5]Point{
		at(0.25, 0.25, 1),
		at(0.75, 0.25, 1),
		at(0.25, 0.75, 1),
		at(0.75, 0.75, 1),
		at(0.5, 0.5, CentralFactor),
	}
}

// Sample averages the five sample points of r.
// The centre pixel counts CentralFactor times for red, green and blue but only
// once for alpha.
func Sample(src PixelReader, r grid.Rect) Result {
	var red, green, blue int
	alpha := alphaSeed

	for _, p := range Points(r, src.Bounds()) {
		px := src.NRGBAAt(p.X, p.Y)
		red += p.Weight * int(px.R)
		green += p.Weight * int(px.G)
		blue += p.Weight * int(px.B)
		alpha += int(px.A)
	}

	avgAlpha := alpha / divisor
	return Result{
		Mean: colour.Mean{
			R: float64(red) / divisor,
			G: float64(green) / divisor,
			B: float64(blue) / divisor,
		},
		Colour: colour.RGB{
			R: red / divisor,
			G: green / divisor,
			B: blue / divisor,
		},
		Alpha:       avgAlpha,
		Transparent: avgAlpha < TransparencyThreshold,
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(hi, v))
}
