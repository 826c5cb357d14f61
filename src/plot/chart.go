// Package plot renders convergence charts with go-chart.
package plot

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/667r/INF295-Inteligencia-Artificial/src/results"
)

// Output formats.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// Chart text, kept in the language of the solver report.
const (
	TitlePrefix = "Convergencia: "
	XAxisLabel  = "Iteraciones"
	YAxisLabel  = "Profit"
	SeriesName  = "Mejor Profit"
)

// SeriesColor is the single line color used for every chart.
var SeriesColor = drawing.ColorFromHex("1f77b4")

// Options controls the raster size and encoding of a chart.
type Options struct {
	Format   string
	Width    int
	Height   int
	DPI      float64
	Annotate bool
}

// DefaultOptions is a 6x4 inch figure at 300 DPI.
func DefaultOptions() Options {
	return Options{Format: FormatPNG, Width: 1800, Height: 1200, DPI: 300}
}

// RenderConvergence draws the profit-vs-iteration line of tbl and writes the encoded image to w.
// Nothing is written to w unless rendering succeeds.
func RenderConvergence(w io.Writer, instance string, tbl *results.Table, opts Options) error {
	if tbl == nil || tbl.Len() == 0 {
		return errors.New("nothing to plot: table has no rows")
	}
	if len(tbl.Iterations) != len(tbl.Profits) {
		return fmt.Errorf("series length mismatch: %d iterations vs %d profits", len(tbl.Iterations), len(tbl.Profits))
	}
	if opts.Width <= 0 || opts.Height <= 0 || opts.DPI <= 0 {
		return fmt.Errorf("invalid chart size %dx%d @ %g dpi", opts.Width, opts.Height, opts.DPI)
	}
	var provider chart.RendererProvider
	switch opts.Format {
	case "", FormatPNG:
		provider = chart.PNG
	case FormatSVG:
		provider = chart.SVG
	default:
		return fmt.Errorf("unsupported format %q", opts.Format)
	}

	ch, err := buildChart(instance, tbl, opts)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := ch.Render(provider, &buf); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	if opts.Annotate && opts.Format != FormatSVG {
		img, err := png.Decode(&buf)
		if err != nil {
			return fmt.Errorf("decode rendered chart: %w", err)
		}
		s := tbl.Summarize()
		stamped := stampText(img, fmt.Sprintf("best=%s @ it %s", formatValue(s.BestProfit), formatValue(s.LastImprovement)), int(math.Max(1, math.Round(opts.DPI/100))))
		buf.Reset()
		if err := png.Encode(&buf, stamped); err != nil {
			return fmt.Errorf("encode annotated chart: %w", err)
		}
	}
	_, err = buf.WriteTo(w)
	return err
}

func buildChart(instance string, tbl *results.Table, opts Options) (chart.Chart, error) {
	xMin, xMax, err := bounds(tbl.Iterations)
	if err != nil {
		return chart.Chart{}, fmt.Errorf("iterations: %w", err)
	}
	yMin, yMax, err := bounds(tbl.Profits)
	if err != nil {
		return chart.Chart{}, fmt.Errorf("profits: %w", err)
	}
	// go-chart refuses zero-width ranges; widen single-point and flat series.
	if xMax == xMin {
		xMin, xMax = xMin-1, xMax+1
	}
	if yMax == yMin {
		pad := math.Max(1, math.Abs(yMin)*0.05)
		yMin, yMax = yMin-pad, yMax+pad
	}
	xTicks := niceTicks(xMin, xMax, 6)
	yTicks := niceTicks(yMin, yMax, 6)

	// one inch = dpi pixels; line widths are given in points
	inch := opts.DPI
	grid := chart.Style{StrokeColor: drawing.ColorBlack.WithAlpha(77), StrokeWidth: 0.8 * inch / 72}
	text := chart.Style{FontSize: 10}
	xs := append([]float64(nil), tbl.Iterations...)
	ys := append([]float64(nil), tbl.Profits...)
	return chart.Chart{
		Title:      TitlePrefix + instance,
		TitleStyle: chart.Style{FontSize: 12},
		Width:      opts.Width,
		Height:     opts.Height,
		DPI:        opts.DPI,
		Background: chart.Style{Padding: chart.Box{
			Top:    int(0.4 * inch),
			Left:   int(0.1 * inch),
			Right:  int(0.1 * inch),
			Bottom: int(0.1 * inch),
		}},
		XAxis: chart.XAxis{
			Name:           XAxisLabel,
			NameStyle:      text,
			Style:          text,
			Range:          tickRange(xTicks),
			Ticks:          xTicks,
			GridMajorStyle: grid,
			GridMinorStyle: grid,
		},
		YAxis: chart.YAxis{
			Name:           YAxisLabel,
			NameStyle:      text,
			Style:          text,
			Range:          tickRange(yTicks),
			Ticks:          yTicks,
			GridMajorStyle: grid,
			GridMinorStyle: grid,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    SeriesName,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: SeriesColor,
					StrokeWidth: 1.5 * inch / 72,
				},
			},
		},
	}, nil
}

func bounds(vs []float64) (float64, float64, error) {
	min, max := math.Inf(1), math.Inf(-1)
	for i, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, 0, fmt.Errorf("row %d: non-finite value %v", i+1, v)
		}
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	return min, max, nil
}

func formatValue(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
