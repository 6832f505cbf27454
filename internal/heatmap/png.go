package heatmap

import (
	"bytes"
	"fmt"
	"math"

	"github.com/KaramelBytes/databrief-cli/internal/utils"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

// PlotOptions controls the rendered image size.
type PlotOptions struct {
	Width  vg.Length
	Height vg.Length
}

// DefaultPlotOptions returns a 10x8 inch figure.
func DefaultPlotOptions() PlotOptions {
	return PlotOptions{Width: 10 * vg.Inch, Height: 8 * vg.Inch}
}

// gridXYZ adapts a Grid to plotter.GridXYZ with the first row drawn at the top.
type gridXYZ struct{ g Grid }

func (x gridXYZ) Dims() (c, r int) {
	n := x.g.Size()
	return n, n
}

func (x gridXYZ) Z(c, r int) float64 { return x.g.At(x.row(r), c) }
func (x gridXYZ) X(c int) float64 { return float64(c) }
func (x gridXYZ) Y(r int) float64 { return float64(r) }
func (x gridXYZ) row(r int) int { return x.g.Size() - 1 - r }
func (x gridXYZ) label(r int) string { return x.g.Label(x.row(r)) }

// SavePNG renders g as an annotated heatmap and writes it atomically to path.
func SavePNG(path string, g Grid, opt PlotOptions) error {
	if opt.Width <= 0 || opt.Height <= 0 {
		opt = DefaultPlotOptions()
	}
	p, err := newPlot(g)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(opt.Width, opt.Height, "png")
	if err != nil {
		return fmt.Errorf("render heatmap: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return fmt.Errorf("encode heatmap: %w", err)
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}

func newPlot(g Grid) (*plot.Plot, error) {
	grid := gridXYZ{g: g}
	n := g.Size()

	p := plot.New()
	p.Title.Text = Title

	hm := plotter.NewHeatMap(grid, colorMap().Palette(255))
	hm.Min, hm.Max = -1, 1
	hm.NaN = nanColor
	p.Add(hm)

	var (
		xys    plotter.XYs
		labels []string
		xticks []plot.Tick
		yticks []plot.Tick
	)
	for c := 0; c < n; c++ {
		xticks = append(xticks, plot.Tick{Value: grid.X(c), Label: g.Label(c)})
		yticks = append(yticks, plot.Tick{Value: grid.Y(c), Label: grid.label(c)})
		for r := 0; r < n; r++ {
			xys = append(xys, plotter.XY{X: grid.X(c), Y: grid.Y(r)})
			labels = append(labels, annotate(grid.Z(c, r)))
		}
	}
	ann, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return nil, fmt.Errorf("annotate heatmap: %w", err)
	}
	for i := range ann.TextStyle {
		ann.TextStyle[i].XAlign = text.XCenter
		ann.TextStyle[i].YAlign = text.YCenter
	}
	p.Add(ann)

	p.X.Tick.Marker = plot.ConstantTicks(xticks)
	p.Y.Tick.Marker = plot.ConstantTicks(yticks)
	if n > 6 {
		p.X.Tick.Label.Rotation = math.Pi / 4
		p.X.Tick.Label.XAlign = text.XRight
		p.X.Tick.Label.YAlign = text.YCenter
	}
	p.X.Min, p.X.Max = -0.5, float64(n)-0.5
	p.Y.Min, p.Y.Max = -0.5, float64(n)-0.5
	return p, nil
}
