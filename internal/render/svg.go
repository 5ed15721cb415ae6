package render

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/leapstack-labs/hrdash/pkg/core"
)

// NoData is drawn in place of a chart with nothing to show.
const NoData = "No data for the current filters"

// ChartOptions sizes SVG output.
type ChartOptions struct {
	Width  int
	Height int
}

// ChartOption configures SVG output.
type ChartOption func(*ChartOptions)

// WithSize overrides the default 640x400 canvas.
func WithSize(width, height int) ChartOption {
	return func(o *ChartOptions) {
		o.Width, o.Height = width, height
	}
}

func applyChartOptions(opts []ChartOption) ChartOptions {
	o := ChartOptions{Width: 640, Height: 400}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

var mutedText = drawing.ColorFromHex("8a8f98")

// SVG writes tbl as an SVG chart. Pies for pie kinds, bars for bar, funnel
// and choropleth kinds (states as bars), one line per second-dimension value
// for two-dimensional aggregates. An empty table draws a placeholder.
func SVG(w io.Writer, tbl core.AggregateTable, opts ...ChartOption) error {
	o := applyChartOptions(opts)
	if tbl.Empty() {
		return placeholder(w, tbl.Title, o)
	}

	switch {
	case len(tbl.Dimensions) == 2:
		return lineChart(w, tbl, o)
	case tbl.Kind == core.ChartPie:
		if tbl.Total() <= 0 {
			return placeholder(w, tbl.Title, o)
		}
		return pieChart(w, tbl, o)
	default:
		return barChart(w, tbl, o)
	}
}

func pieChart(w io.Writer, tbl core.AggregateTable, o ChartOptions) error {
	total := tbl.Total()
	values := make([]chart.Value, 0, len(tbl.Rows))
	for i, r := range tbl.Rows {
		if r.Value <= 0 {
			continue
		}
		label := fmt.Sprintf("%s %s", keyLabel(r.Keys[0]), r.Display)
		if tbl.Measure == core.MeasureCount {
			label = fmt.Sprintf("%s (%.1f%%)", label, r.Value/total*100)
		}
		values = append(values, chart.Value{
			Label: label,
			Value: r.Value,
			Style: chart.Style{FillColor: chart.GetDefaultColor(i), FontSize: 9},
		})
	}

	pie := chart.PieChart{
		Title:  tbl.Title,
		Width:  o.Width,
		Height: o.Height,
		Values: values,
	}
	return pie.Render(chart.SVG, w)
}

func barChart(w io.Writer, tbl core.AggregateTable, o ChartOptions) error {
	bars := make([]chart.Value, len(tbl.Rows))
	maxValue := 0.0
	for i, r := range tbl.Rows {
		bars[i] = chart.Value{
			Label: keyLabel(r.Keys[0]),
			Value: r.Value,
			Style: chart.Style{FillColor: chart.GetDefaultColor(0), StrokeColor: chart.GetDefaultColor(0)},
		}
		maxValue = math.Max(maxValue, r.Value)
	}

	barWidth := (o.Width - 80) / (2 * len(bars))
	barWidth = max(4, min(barWidth, 60))

	bc := chart.BarChart{
		Title:    tbl.Title,
		Width:    o.Width,
		Height:   o.Height,
		BarWidth: barWidth,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.Style{FontSize: 8},
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: 0, Max: niceMax(maxValue)},
			ValueFormatter: measureFormatter(tbl.Measure),
		},
		Bars: bars,
	}
	return bc.Render(chart.SVG, w)
}

func lineChart(w io.Writer, tbl core.AggregateTable, o ChartOptions) error {
	type point struct{ x, y float64 }
	lines := make(map[string][]point)
	var names []string
	ticks := make(map[float64]string)
	minX, maxX, maxY := math.Inf(1), math.Inf(-1), 0.0

	for _, r := range tbl.Rows {
		if r.Missing {
			continue
		}
		x, err := strconv.ParseFloat(r.Keys[0], 64)
		if err != nil {
			return fmt.Errorf("chart %s: non-numeric x value %q", tbl.Name, r.Keys[0])
		}
		series := keyLabel(r.Keys[1])
		if _, ok := lines[series]; !ok {
			names = append(names, series)
		}
		lines[series] = append(lines[series], point{x: x, y: r.Value})
		ticks[x] = r.Keys[0]
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		maxY = math.Max(maxY, r.Value)
	}
	if len(names) == 0 {
		return placeholder(w, tbl.Title, o)
	}
	sort.Strings(names)

	series := make([]chart.Series, 0, len(names))
	for i, name := range names {
		pts := lines[name]
		xs := make([]float64, len(pts))
		ys := make([]float64, len(pts))
		for j, p := range pts {
			xs[j], ys[j] = p.x, p.y
		}
		color := chart.GetDefaultColor(i)
		series = append(series, chart.ContinuousSeries{
			Name:    name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 2,
				DotColor:    color,
				DotWidth:    3,
			},
		})
	}

	xTicks := make([]chart.Tick, 0, len(ticks))
	for x, label := range ticks {
		xTicks = append(xTicks, chart.Tick{Value: x, Label: label})
	}
	sort.Slice(xTicks, func(i, j int) bool { return xTicks[i].Value < xTicks[j].Value })

	// go-chart derives the x range from the ticks and rejects a zero-width
	// range, so a single x value gets blank ticks on both sides.
	if maxX <= minX {
		minX, maxX = minX-1, maxX+1
		xTicks = append([]chart.Tick{{Value: minX}}, append(xTicks, chart.Tick{Value: maxX})...)
	}

	ch := chart.Chart{
		Title:  tbl.Title,
		Width:  o.Width,
		Height: o.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{
			Name:  tbl.Dimensions[0].Label(),
			Range: &chart.ContinuousRange{Min: minX, Max: maxX},
			Ticks: xTicks,
		},
		YAxis: chart.YAxis{
			Name:           tbl.Measure.Label(),
			Range:          &chart.ContinuousRange{Min: 0, Max: niceMax(maxY)},
			ValueFormatter: measureFormatter(tbl.Measure),
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.LegendLeft(&ch)}
	return ch.Render(chart.SVG, w)
}

// placeholder draws the title and a centered NoData message.
func placeholder(w io.Writer, title string, o ChartOptions) error {
	r, err := chart.SVG(o.Width, o.Height)
	if err != nil {
		return err
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return err
	}
	r.SetFont(font)
	r.SetFontColor(chart.ColorBlack)
	r.SetFontSize(12)
	r.Text(title, 16, 24)

	r.SetFontColor(mutedText)
	r.SetFontSize(14)
	box := r.MeasureText(NoData)
	r.Text(NoData, (o.Width-box.Width())/2, o.Height/2)
	return r.Save(w)
}

// niceMax rounds v up to 1, 2, 2.5 or 5 times a power of ten, and is never
// zero so the y range always has height.
func niceMax(v float64) float64 {
	if v <= 0 {
		return 1
	}
	exp := math.Pow(10, math.Floor(math.Log10(v)))
	for _, m := range []float64{1, 2, 2.5, 5, 10} {
		if v <= m*exp {
			return m * exp
		}
	}
	return 10 * exp
}

func measureFormatter(m core.Measure) chart.ValueFormatter {
	return func(v interface{}) string {
		f, ok := v.(float64)
		if !ok {
			return fmt.Sprint(v)
		}
		switch m {
		case core.MeasureSalarySum:
			return strconv.FormatFloat(f/1e6, 'f', -1, 64) + "M"
		case core.MeasureSalaryMean:
			return strconv.FormatFloat(f/1e3, 'f', -1, 64) + "K"
		default:
			return strconv.FormatFloat(f, 'f', 0, 64)
		}
	}
}

// keyLabel names blank group keys.
func keyLabel(k string) string {
	if k == "" {
		return "(blank)"
	}
	return k
}
