// Package testpattern renders synthetic color-bar frames for exercising
// the encoder and the consumer loop without a capture device.
package testpattern

import (
	"image"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/user/sinkdump/pkg/clock"
	"github.com/user/sinkdump/pkg/frame"
)

// Reference canvas the pattern is drawn on before scaling to the
// requested geometry.
const (
	refWidth  = 640
	refHeight = 360
)

// bars are classic color-bar RGB values, left to right.
var bars = [][3]int{
	{235, 235, 235}, // white
	{235, 235, 16},  // yellow
	{16, 235, 235},  // cyan
	{16, 235, 16},   // green
	{235, 16, 235},  // magenta
	{235, 16, 16},   // red
	{16, 16, 235},   // blue
}

// Generator produces packed RGB24 frames with a moving marker so
// consecutive frames differ.
type Generator struct {
	width  int
	height int
	count  int
}

// New creates a generator for the given output geometry.
func New(width, height int) *Generator {
	return &Generator{width: width, height: height}
}

// Count returns the number of frames generated so far.
func (g *Generator) Count() int {
	return g.count
}

// Next renders the next frame into dst as packed RGB24 with
// stride = 3*width, stamping the grab timestamp.
func (g *Generator) Next(dst *frame.Frame) {
	rendered := g.render()

	scaled := image.NewRGBA(image.Rect(0, 0, g.width, g.height))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), rendered, rendered.Bounds(), draw.Src, nil)

	stride := g.width * 3
	need := stride * g.height
	if cap(dst.Data) < need {
		dst.Data = make([]byte, need)
	} else {
		dst.Data = dst.Data[:need]
	}
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			src := scaled.PixOffset(x, y)
			off := y*stride + x*3
			dst.Data[off] = scaled.Pix[src]
			dst.Data[off+1] = scaled.Pix[src+1]
			dst.Data[off+2] = scaled.Pix[src+2]
		}
	}

	dst.Width = g.width
	dst.Height = g.height
	dst.Format = frame.FormatRGB24
	dst.Stride = stride
	dst.Online = true
	dst.GrabTS = clock.Now()
	dst.EncodeBeginTS = 0
	dst.EncodeEndTS = 0

	g.count++
}

// render draws the color bars and the moving marker on the reference
// canvas.
func (g *Generator) render() image.Image {
	dc := gg.NewContext(refWidth, refHeight)

	barWidth := float64(refWidth) / float64(len(bars))
	for i, bar := range bars {
		dc.SetRGB255(bar[0], bar[1], bar[2])
		dc.DrawRectangle(float64(i)*barWidth, 0, barWidth, refHeight)
		dc.Fill()
	}

	// Moving marker along the bottom edge.
	markerSize := float64(refHeight) / 10
	markerX := float64((g.count * 8) % (refWidth - int(markerSize)))
	dc.SetRGB255(16, 16, 16)
	dc.DrawRectangle(markerX, refHeight-markerSize, markerSize, markerSize)
	dc.Fill()

	return dc.Image()
}
