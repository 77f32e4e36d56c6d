// Package chart renders a capture dataset as two side-by-side line charts:
// raw ADC reading vs time on the left, LED duty cycle vs time on the right.
package chart

import (
	"fmt"
	"image/color"
	"os"

	"golang.org/x/image/colornames"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/luhtfiimanal/photosweep/capture"
)

// Options configures the rendered image. Zero Width/Height fall back to
// the defaults below.
type Options struct {
	Path   string  // output PNG path, overwritten if it exists
	Width  float64 // canvas width in points
	Height float64 // canvas height in points
}

const (
	defaultWidth  = 960
	defaultHeight = 360
)

// Render draws ds into a single PNG with the two charts tiled horizontally.
// An empty dataset still renders (two blank axes), matching the exporter's
// header-only behavior.
func Render(ds capture.Dataset, opts Options) error {
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultHeight
	}

	left, err := linePlot("ADC Reading [Raw]", "ADC Reading",
		series(ds.Times(), ds.ADCValues()), nil)
	if err != nil {
		return fmt.Errorf("adc plot: %w", err)
	}
	right, err := linePlot("LED Intensity", "Intensity (Duty Cycle %)",
		series(ds.Times(), ds.Intensities()), colornames.Red)
	if err != nil {
		return fmt.Errorf("intensity plot: %w", err)
	}

	img := vgimg.New(vg.Points(opts.Width), vg.Points(opts.Height))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: 1,
		Cols: 2,
		PadX: vg.Points(10),
	}
	canvases := plot.Align([][]*plot.Plot{{left, right}}, tiles, dc)
	left.Draw(canvases[0][0])
	right.Draw(canvases[0][1])

	f, err := os.Create(opts.Path)
	if err != nil {
		return fmt.Errorf("create %s: %w", opts.Path, err)
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write png: %w", err)
	}
	return f.Close()
}

func linePlot(title, yLabel string, xys plotter.XYs, c color.Color) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = yLabel

	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	if c != nil {
		line.Color = c
	}
	p.Add(line)
	return p, nil
}

func series(times []float64, values []int) plotter.XYs {
	xys := make(plotter.XYs, len(times))
	for i := range times {
		xys[i].X = times[i]
		xys[i].Y = float64(values[i])
	}
	return xys
}
