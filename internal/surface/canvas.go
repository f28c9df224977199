// Package surface provides the in-memory drawing surface the pipeline paints on.
package surface

import (
	"image"
	"image/color"

	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"

	"github.com/jmylchreest/pixelize/internal/colour"
	"github.com/jmylchreest/pixelize/internal/grid"
)

// miterLimit is the stroker join limit in pixels.
const miterLimit = 4

// Canvas is a resizable NRGBA drawing surface.
type Canvas struct {
	img *image.NRGBA
}

// New creates a transparent canvas of the given size.
func New(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize replaces the surface with a transparent width x height one.
// Negative sizes are treated as zero.
func (c *Canvas) Resize(width, height int) {
	c.img = image.NewNRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
}

// Bounds returns the surface bounds.
func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Bounds()
}

// Width returns the surface width in pixels.
func (c *Canvas) Width() int {
	return c.img.Bounds().Dx()
}

// Height returns the surface height in pixels.
func (c *Canvas) Height() int {
	return c.img.Bounds().Dy()
}

// NRGBAAt returns the pixel at (x, y).
func (c *Canvas) NRGBAAt(x, y int) color.NRGBA {
	return c.img.NRGBAAt(x, y)
}

// Image returns the underlying image. Callers must not retain it across Resize.
func (c *Canvas) Image() *image.NRGBA {
	return c.img
}

// FitRect returns the largest rectangle with src's aspect ratio that fits in
// the surface, centred.
func (c *Canvas) FitRect(src image.Rectangle) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	w, h := c.Width(), c.Height()
	if sw <= 0 || sh <= 0 || w <= 0 || h <= 0 {
		return image.Rectangle{}
	}

	scale := min(float64(w)/float64(sw), float64(h)/float64(sh))
	dw := max(1, int(float64(sw)*scale))
	dh := max(1, int(float64(sh)*scale))
	x := (w - dw) / 2
	y := (h - dh) / 2
	return image.Rect(x, y, x+dw, y+dh)
}

// DrawFit scales src into the surface preserving its aspect ratio and centres
// it. Uncovered areas stay transparent. It returns the destination rectangle.
func (c *Canvas) DrawFit(src image.Image) image.Rectangle {
	dst := c.FitRect(src.Bounds())
	if dst.Empty() {
		return dst
	}

	if dst.Size() == src.Bounds().Size() {
		xdraw.Copy(c.img, dst.Min, src, src.Bounds(), xdraw.Src, nil)
		return dst
	}

	xdraw.CatmullRom.Scale(c.img, dst, src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// FillRect paints r with an opaque colour. Out-of-range channels saturate.
func (c *Canvas) FillRect(r image.Rectangle, rgb colour.RGB) {
	xdraw.Draw(c.img, r, image.NewUniform(rgb.NRGBA()), image.Point{}, xdraw.Src)
}

// StrokeLines draws line segments in the given colour and style.
func (c *Canvas) StrokeLines(lines []grid.Line, col color.Color, style LineStyle) {
	if len(lines) == 0 || c.img.Bounds().Empty() {
		return
	}

	w, h := c.Width(), c.Height()
	scanner := rasterx.NewScannerGV(w, h, c.img, c.img.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	dasher.SetColor(col)
	dasher.SetStroke(
		fixed.Int26_6(LineWidth*64),
		fixed.Int26_6(miterLimit*64),
		rasterx.ButtCap, rasterx.ButtCap,
		rasterx.FlatGap, rasterx.Miter,
		style.Dashes(), 0,
	)

	for _, l := range lines {
		dasher.Start(rasterx.ToFixedP(l.X0, l.Y0))
		dasher.Line(rasterx.ToFixedP(l.X1, l.Y1))
		dasher.Stop(false)
	}
	dasher.Draw()
	dasher.Clear()
}
