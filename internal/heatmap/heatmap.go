// Package heatmap renders square correlation matrices, as annotated terminal
// grids and as PNG images, using one diverging blue-red palette fixed to [-1, 1].
package heatmap

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

// Title is drawn above every heatmap.
const Title = "Correlation Heatmap"

// Grid is a labelled square matrix of values in [-1, 1]; NaN marks undefined cells.
type Grid interface {
	Size() int
	At(i, j int) float64
	Label(i int) string
}

var nanColor = color.RGBA{R: 0xbb, G: 0xbb, B: 0xbb, A: 0xff}

func colorMap() palette.ColorMap {
	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)
	return cm
}

// cellColor maps v onto the palette, clamping to the palette range.
func cellColor(cm palette.ColorMap, v float64) color.Color {
	if math.IsNaN(v) {
		return nanColor
	}
	v = math.Max(cm.Min(), math.Min(cm.Max(), v))
	c, err := cm.At(v)
	if err != nil {
		return nanColor
	}
	return c
}

func hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

func annotate(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return fmt.Sprintf("%.2f", v)
}
