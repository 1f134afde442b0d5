// Package charts renders dashboard aggregations as PNG images.
package charts

import (
	"fmt"
	"io"
	"strings"

	"loadboard/domain/core"
	"loadboard/internal/analytics"
	"loadboard/internal/errors"

	"github.com/mattn/go-runewidth"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Name identifies a chart endpoint.
type Name string

const (
	Instructors     Name = "instructors"
	Halls           Name = "halls"
	Courses         Name = "courses"
	FrequentCourses Name = "frequent-courses"
	Faculties       Name = "faculties"
)

// Names lists every chart in display order.
var Names = []Name{Instructors, Halls, Courses, FrequentCourses, Faculties}

const (
	width      = 900
	height     = 360
	labelWidth = 14
	barSpacing = 12
)

var palette = []drawing.Color{
	drawing.ColorFromHex("4cc9f0"),
	drawing.ColorFromHex("7209b7"),
	drawing.ColorFromHex("4895ef"),
	drawing.ColorFromHex("560bad"),
	drawing.ColorFromHex("b5179e"),
	drawing.ColorFromHex("f72585"),
	drawing.ColorFromHex("3f37c9"),
}

// ParseName accepts a chart name from a URL.
func ParseName(s string) (Name, error) {
	s = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), ".png")
	for _, n := range Names {
		if string(n) == s {
			return n, nil
		}
	}
	return "", errors.WithCode(errors.CodeNotFound, fmt.Errorf("%w: %s", core.ErrChartNotFound, s))
}

// Title is the heading shown above the chart.
func (n Name) Title() string {
	switch n {
	case Instructors:
		return "Top Instructors - Load (minutes)"
	case Halls:
		return "Hall Usage - Top Rooms (minutes)"
	case Courses:
		return "Courses by Total Minutes"
	case FrequentCourses:
		return "Top Frequent Courses (sessions)"
	case Faculties:
		return "Faculty Distribution - Minutes"
	}
	return string(n)
}

// Render draws the named chart from a summary. A chart with nothing to plot
// returns core.ErrEmptySeries.
func Render(w io.Writer, name Name, s analytics.Summary) error {
	switch name {
	case Instructors:
		return BarPNG(w, name.Title(), s.Instructors, analytics.ShortName)
	case Halls:
		return BarPNG(w, name.Title(), s.Halls, nil)
	case Courses:
		return BarPNG(w, name.Title(), s.Courses, nil)
	case FrequentCourses:
		return BarPNG(w, name.Title(), s.FrequentCourses, nil)
	case Faculties:
		return PiePNG(w, name.Title(), s.Faculties)
	}
	return errors.WithCode(errors.CodeNotFound, fmt.Errorf("%w: %s", core.ErrChartNotFound, name))
}

// BarPNG draws one bar per ranked group. label shortens keys for the axis; nil
// keeps the key truncated to a fixed display width.
func BarPNG(w io.Writer, title string, ranked []analytics.Ranked, label func(string) string) error {
	maxValue := 0
	bars := make([]chart.Value, 0, len(ranked))
	for i, r := range ranked {
		name := r.Key
		if label != nil {
			name = label(name)
		}
		bars = append(bars, chart.Value{
			Label: runewidth.Truncate(name, labelWidth, "…"),
			Value: float64(r.Value),
			Style: chart.Style{FillColor: palette[i%len(palette)], StrokeColor: palette[i%len(palette)]},
		})
		maxValue = max(maxValue, r.Value)
	}
	if maxValue == 0 {
		return core.ErrEmptySeries
	}

	graph := chart.BarChart{
		Title:      title,
		Width:      width,
		Height:     height,
		BarWidth:   max(20, (width-120)/max(len(bars), 1)-barSpacing),
		BarSpacing: barSpacing,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxValue) * 1.1},
		},
		Bars: bars,
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return errors.Wrapf(err, "failed to render %q", title)
	}
	return nil
}

// PiePNG draws each positive ranked value as a slice.
func PiePNG(w io.Writer, title string, ranked []analytics.Ranked) error {
	values := make([]chart.Value, 0, len(ranked))
	for i, r := range ranked {
		if r.Value <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: runewidth.Truncate(r.Key, 2*labelWidth, "…"),
			Value: float64(r.Value),
			Style: chart.Style{FillColor: palette[i%len(palette)]},
		})
	}
	if len(values) == 0 {
		return core.ErrEmptySeries
	}

	graph := chart.PieChart{
		Title:  title,
		Width:  width,
		Height: height + 120,
		Values: values,
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return errors.Wrapf(err, "failed to render %q", title)
	}
	return nil
}
