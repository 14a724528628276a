// Package chart renders the training observations together with the fitted
// regression line.
package chart

import (
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/carprice/core/model"
	"github.com/YuminosukeSato/carprice/dataset"
	"github.com/YuminosukeSato/carprice/linear"
	"github.com/YuminosukeSato/carprice/pkg/errors"
)

const (
	// DefaultFile is where Save writes when no path is given.
	DefaultFile = "regression_plot.png"
	// DefaultStep is the mileage spacing between sampled points of the line.
	DefaultStep = 1000.0
)

var (
	dataColor = color.RGBA{B: 255, A: 255}
	lineColor = color.RGBA{R: 255, A: 255}
)

// Options controls the rendered figure.
type Options struct {
	Step   float64
	Width  vg.Length
	Height vg.Length
}

// DefaultOptions returns a 6x4 inch figure sampled every 1000 km.
func DefaultOptions() Options {
	return Options{
		Step:   DefaultStep,
		Width:  6 * vg.Inch,
		Height: 4 * vg.Inch,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if !(o.Step > 0) {
		o.Step = def.Step
	}
	if o.Width <= 0 {
		o.Width = def.Width
	}
	if o.Height <= 0 {
		o.Height = def.Height
	}
	return o
}

// Curve samples the regression line at 0, step, 2*step, ... up to the
// truncated training maximum.
func Curve(params model.Params, step float64) plotter.XYs {
	if !(step > 0) {
		step = DefaultStep
	}
	limit := math.Trunc(params.MaxMileage)
	if !(limit >= 0) || math.IsInf(limit, 0) {
		return nil
	}

	n := int(limit/step) + 1
	xys := make(plotter.XYs, n)
	for i := range xys {
		x := float64(i) * step
		xys[i].X = x
		xys[i].Y = linear.PredictPrice(params, x)
	}
	return xys
}

// Observations converts a data set into scatter points.
func Observations(data *dataset.Set) plotter.XYs {
	xys := make(plotter.XYs, data.Len())
	for i, o := range data.Observations {
		xys[i].X = o.Mileage
		xys[i].Y = o.Price
	}
	return xys
}

// Render builds the figure without writing it anywhere.
func Render(params model.Params, data *dataset.Set, opts Options) (*plot.Plot, error) {
	if data == nil || data.Len() == 0 {
		return nil, errors.NewModelError("chart.Render", "no observations to plot", errors.ErrEmptyData)
	}
	opts = opts.withDefaults()

	p := plot.New()
	p.Title.Text = "Linear Regression Result"
	p.X.Label.Text = "Mileage (km)"
	p.Y.Label.Text = "Price (€)"
	p.Add(plotter.NewGrid())

	scatter, err := plotter.NewScatter(Observations(data))
	if err != nil {
		return nil, errors.Wrap(err, "carprice: build scatter")
	}
	scatter.GlyphStyle.Color = dataColor
	scatter.GlyphStyle.Radius = vg.Points(2.5)

	curve := Curve(params, opts.Step)
	line, err := plotter.NewLine(curve)
	if err != nil {
		return nil, errors.Wrapf(err, "carprice: build regression line for %s", params)
	}
	line.LineStyle.Color = lineColor
	line.LineStyle.Width = vg.Points(1.5)

	p.Add(scatter, line)
	p.Legend.Add("Actual data", scatter)
	p.Legend.Add("Regression line", line)
	p.Legend.Top = true

	return p, nil
}

// Save renders the figure and writes it to path. The format follows the file
// extension understood by gonum/plot (png, svg, pdf, ...).
func Save(params model.Params, data *dataset.Set, path string, opts Options) error {
	if path == "" {
		path = DefaultFile
	}
	opts = opts.withDefaults()

	p, err := Render(params, data, opts)
	if err != nil {
		return err
	}
	if err := p.Save(opts.Width, opts.Height, path); err != nil {
		return errors.Wrapf(err, "carprice: save plot %q", path)
	}
	return nil
}

// WritePNG renders the figure as PNG into w.
func WritePNG(w io.Writer, params model.Params, data *dataset.Set, opts Options) error {
	opts = opts.withDefaults()

	p, err := Render(params, data, opts)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(opts.Width, opts.Height, "png")
	if err != nil {
		return errors.Wrap(err, "carprice: encode plot")
	}
	if _, err := wt.WriteTo(w); err != nil {
		return errors.Wrap(err, "carprice: write plot")
	}
	return nil
}
