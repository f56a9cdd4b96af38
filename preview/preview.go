//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Package preview renders a top-down image of the multipliers applied to
// a rewritten G-code stream.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/paulmach/orb"
	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/ezrec/gradex"
)

const (
	DefaultSize      = 800
	DefaultMaxPoints = 10000

	margin     = 8
	dotRadius  = 1.5
	lineWidth  = 2.0
	rampLevels = 32
	circleN    = 64

	// Multiplier legend, to the right of the plot
	legendWidth     = 64
	legendBar       = 12
	legendGap       = 4
	legendMinHeight = 48
)

// Options control the rendering
type Options struct {
	Size      int     // Longest image side, in pixels
	MaxZ      float64 // Only samples at or below this height are drawn
	MaxPoints int     // Samples are strided down to at most this many
}

func NewOptions() Options {
	return Options{
		Size:      DefaultSize,
		MaxZ:      math.Inf(1),
		MaxPoints: DefaultMaxPoints,
	}
}

// Downsample keeps every n'th sample, so that at most max remain. The
// stride is rounded up, so fewer than max samples may be kept (ie 10
// samples with a max of 4 keep 3).
func Downsample(samples []gradex.Sample, max int) (kept []gradex.Sample) {
	if max <= 0 || len(samples) <= max {
		kept = samples
		return
	}

	rate := len(samples) / max
	if len(samples)%max != 0 {
		rate++
	}

	for n := 0; n < len(samples); n += rate {
		kept = append(kept, samples[n])
	}

	return
}

// viridis control points
var ramp = []color.RGBA{
	{0x44, 0x01, 0x54, 0xff},
	{0x3b, 0x52, 0x8b, 0xff},
	{0x21, 0x91, 0x8c, 0xff},
	{0x5e, 0xc9, 0x62, 0xff},
	{0xfd, 0xe7, 0x25, 0xff},
}

// Color on the ramp for t in [0, 1]
func Color(t float64) color.RGBA {
	t = math.Min(math.Max(t, 0.0), 1.0)
	pos := t * float64(len(ramp)-1)
	n := int(pos)
	if n >= len(ramp)-1 {
		return ramp[len(ramp)-1]
	}
	frac := pos - float64(n)

	lerp := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*frac))
	}

	a, b := ramp[n], ramp[n+1]
	return color.RGBA{lerp(a.R, b.R), lerp(a.G, b.G), lerp(a.B, b.B), 0xff}
}

// transform maps millimeters to image pixels, Y up
type transform struct {
	minX, minY float64
	scale      float64
	height     int
}

func (tf *transform) pt(x, y float64) (px, py float32) {
	px = float32((x-tf.minX)*tf.scale + margin)
	py = float32(float64(tf.height) - ((y-tf.minY)*tf.scale + margin))
	return
}

// Render draws the samples, coloured by multiplier, with the outlines of
// the modifiers at the lowest sample height.
func Render(samples []gradex.Sample, set *gradex.ModifierSet, opt Options) (img *image.RGBA) {
	if opt.Size <= 2*margin {
		opt.Size = DefaultSize
	}

	var drawn []gradex.Sample
	for _, s := range Downsample(samples, opt.MaxPoints) {
		if s.Z <= opt.MaxZ {
			drawn = append(drawn, s)
		}
	}

	log := &gradex.SampleLog{Samples: drawn}
	xr, yr, zr, mr := log.Ranges()
	if xr.Empty() {
		img = image.NewRGBA(image.Rect(0, 0, opt.Size, opt.Size))
		draw.Draw(img, img.Bounds(), image.NewUniform(colornames.White), image.Point{}, draw.Src)
		return
	}

	span := math.Max(xr.Max-xr.Min, yr.Max-yr.Min)
	scale := 1.0
	if span > 0 {
		scale = float64(opt.Size-2*margin) / span
	}

	plotWidth := int(math.Ceil((xr.Max-xr.Min)*scale)) + 2*margin
	width := plotWidth + legendWidth
	height := int(math.Ceil((yr.Max-yr.Min)*scale)) + 2*margin
	if height < legendMinHeight {
		height = legendMinHeight
	}

	tf := &transform{minX: xr.Min, minY: yr.Min, scale: scale, height: height}

	img = image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(colornames.White), image.Point{}, draw.Src)

	// One rasterizer pass per colour level
	levels := make([][]gradex.Sample, rampLevels)
	for _, s := range drawn {
		t := 0.0
		if mr.Max > mr.Min {
			t = (s.Multiplier - mr.Min) / (mr.Max - mr.Min)
		}
		n := int(t * float64(rampLevels-1))
		levels[n] = append(levels[n], s)
	}

	raster := vector.NewRasterizer(width, height)
	for n, level := range levels {
		if len(level) == 0 {
			continue
		}

		raster.Reset(width, height)
		for _, s := range level {
			px, py := tf.pt(s.X, s.Y)
			raster.MoveTo(px-dotRadius, py-dotRadius)
			raster.LineTo(px+dotRadius, py-dotRadius)
			raster.LineTo(px+dotRadius, py+dotRadius)
			raster.LineTo(px-dotRadius, py+dotRadius)
			raster.ClosePath()
		}
		c := Color(float64(n) / float64(rampLevels-1))
		raster.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{})
	}

	if set != nil {
		zRef := zr.Min
		drawOutlines(img, raster, tf, planarOutlines(set), colornames.Red)
		drawOutlines(img, raster, tf, volumetricOutlines(set, zRef), colornames.Blue)
	}

	drawLegend(img, plotWidth, mr)

	return
}

// drawLegend draws the colour ramp as a vertical bar at x, labelled with
// the multiplier range.
func drawLegend(img *image.RGBA, x int, mr gradex.Range) {
	height := img.Bounds().Dy()
	top, bottom := margin, height-margin
	x0 := x + legendGap

	for y := top; y < bottom; y++ {
		t := 1.0
		if bottom-1 > top {
			t = float64(bottom-1-y) / float64(bottom-1-top)
		}
		row := image.Rect(x0, y, x0+legendBar, y+1)
		draw.Draw(img, row, image.NewUniform(Color(t)), image.Point{}, draw.Src)
	}

	face := basicfont.Face7x13
	label := func(y int, value float64) {
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(colornames.Black),
			Face: face,
			Dot:  fixed.P(x0+legendBar+legendGap, y),
		}
		d.DrawString(fmt.Sprintf("%.3f", value))
	}

	label(top+face.Ascent, mr.Max)
	label(bottom-face.Descent, mr.Min)
}

func planarOutlines(set *gradex.ModifierSet) (rings []orb.Ring) {
	for _, mod := range set.Modifiers {
		if region, ok := mod.Region.(*gradex.Planar); ok {
			rings = append(rings, region.Ring)
		}
	}

	return
}

// volumetricOutlines are the cross sections of the bounding spheres at z
func volumetricOutlines(set *gradex.ModifierSet, z float64) (rings []orb.Ring) {
	for _, mod := range set.Modifiers {
		region, ok := mod.Region.(*gradex.Volumetric)
		if !ok {
			continue
		}

		dz := z - region.Centroid.Z()
		if math.Abs(dz) > region.MaxRadius {
			continue
		}
		r := math.Sqrt(math.Max(0, region.MaxRadius*region.MaxRadius-dz*dz))

		ring := make(orb.Ring, 0, circleN+1)
		for n := 0; n <= circleN; n++ {
			theta := 2 * math.Pi * float64(n) / circleN
			ring = append(ring, orb.Point{
				region.Centroid.X() + r*math.Cos(theta),
				region.Centroid.Y() + r*math.Sin(theta),
			})
		}
		rings = append(rings, ring)
	}

	return
}

// drawOutlines strokes each ring edge as a thin quad
func drawOutlines(img *image.RGBA, raster *vector.Rasterizer, tf *transform, rings []orb.Ring, c color.Color) {
	if len(rings) == 0 {
		return
	}

	size := img.Bounds().Size()
	raster.Reset(size.X, size.Y)

	for _, ring := range rings {
		for n := 0; n+1 < len(ring); n++ {
			x0, y0 := tf.pt(ring[n][0], ring[n][1])
			x1, y1 := tf.pt(ring[n+1][0], ring[n+1][1])

			dx, dy := x1-x0, y1-y0
			length := float32(math.Hypot(float64(dx), float64(dy)))
			if length == 0 {
				continue
			}
			nx, ny := -dy/length*lineWidth/2, dx/length*lineWidth/2

			raster.MoveTo(x0+nx, y0+ny)
			raster.LineTo(x1+nx, y1+ny)
			raster.LineTo(x1-nx, y1-ny)
			raster.LineTo(x0-nx, y0-ny)
			raster.ClosePath()
		}
	}

	raster.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{})
}

// Encode writes the image as a PNG
func Encode(writer io.Writer, img image.Image) (err error) {
	err = png.Encode(writer, img)
	return
}
