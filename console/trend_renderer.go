package main

import (
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"github.com/itohio/goplant/pkg/history"
)

var (
	gridColor      = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	labelColor     = color.RGBA{R: 150, G: 150, B: 150, A: 255}
	moistureColor  = color.RGBA{R: 255, G: 165, B: 0, A: 255}   // Orange
	lightColor     = color.RGBA{R: 255, G: 230, B: 100, A: 255} // Yellow
	reservoirColor = color.RGBA{R: 100, G: 200, B: 255, A: 255} // Light blue
	pumpColor      = color.RGBA{R: 0, G: 100, B: 200, A: 90}    // Translucent dark blue
	thresholdColor = color.RGBA{R: 200, G: 60, B: 60, A: 255}
)

// trendRenderer renders the trend widget.
type trendRenderer struct {
	trend      *TrendWidget
	background *canvas.Rectangle
	objects    []fyne.CanvasObject
	lastSize   fyne.Size
}

// plot maps series values onto the drawing area.
type plot struct {
	x, y, w, h float32
	xMin, xMax time.Duration
}

func (p plot) pos(at time.Duration, pct float32) fyne.Position {
	span := p.xMax - p.xMin
	fx := float32(0)
	if span > 0 {
		fx = float32(at-p.xMin) / float32(span)
	}
	return fyne.NewPos(p.x+fx*p.w, p.y+p.h-pct/100*p.h)
}

func (r *trendRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 200)
}

func (r *trendRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	if r.lastSize != size {
		r.lastSize = size
		r.trend.BaseWidget.Refresh()
	}
}

func (r *trendRenderer) Refresh() {
	r.trend.mu.RLock()
	points := r.trend.display
	spans := r.trend.spans
	threshold := r.trend.threshold
	xMin, xMax := r.trend.xMin, r.trend.xMax
	r.trend.mu.RUnlock()

	size := r.trend.Size()
	if size.Width == 0 || size.Height == 0 {
		return
	}

	r.objects = []fyne.CanvasObject{r.background}

	const (
		marginLeft   = 50
		marginRight  = 20
		marginTop    = 30
		marginBottom = 30
	)
	p := plot{
		x:    marginLeft,
		y:    marginTop,
		w:    size.Width - marginLeft - marginRight,
		h:    size.Height - marginTop - marginBottom,
		xMin: xMin,
		xMax: xMax,
	}

	r.drawGrid(p)
	r.drawSpans(p, spans)
	r.drawThreshold(p, threshold)
	r.drawSeries(p, points, moistureColor, func(pt history.Point) float32 { return pt.Moisture })
	r.drawSeries(p, points, lightColor, func(pt history.Point) float32 { return pt.Light })
	r.drawSeries(p, points, reservoirColor, func(pt history.Point) float32 { return pt.Reservoir })
	r.drawLegend(p)
}

// drawGrid draws percent lines across and time lines down.
func (r *trendRenderer) drawGrid(p plot) {
	const numHLines = 4
	for i := range numHLines + 1 {
		pct := float32(100 - i*100/numHLines)
		y := p.pos(p.xMin, pct).Y
		r.line(fyne.NewPos(p.x, y), fyne.NewPos(p.x+p.w, y), gridColor, 1)
		r.text(fmt.Sprintf("%.0f%%", pct), labelColor, fyne.NewPos(p.x-5, y-6), fyne.TextAlignTrailing)
	}

	const numVLines = 6
	for i := range numVLines + 1 {
		at := p.xMin + time.Duration(i)*(p.xMax-p.xMin)/numVLines
		x := p.pos(at, 0).X
		r.line(fyne.NewPos(x, p.y), fyne.NewPos(x, p.y+p.h), gridColor, 1)
		r.text(formatElapsed(at), labelColor, fyne.NewPos(x-20, p.y+p.h+5), fyne.TextAlignCenter)
	}
}

// drawSpans shades the intervals the pump ran.
func (r *trendRenderer) drawSpans(p plot, spans []history.Span) {
	for _, s := range spans {
		if s.End < p.xMin {
			continue
		}
		x0 := p.pos(max(s.Start, p.xMin), 0).X
		x1 := p.pos(s.End, 0).X
		rect := canvas.NewRectangle(pumpColor)
		rect.Move(fyne.NewPos(x0, p.y))
		rect.Resize(fyne.NewSize(max(x1-x0, 1), p.h))
		r.objects = append(r.objects, rect)
	}
}

func (r *trendRenderer) drawThreshold(p plot, threshold float32) {
	if threshold <= 0 || threshold > 100 {
		return
	}
	y := p.pos(p.xMin, threshold).Y
	r.line(fyne.NewPos(p.x, y), fyne.NewPos(p.x+p.w, y), thresholdColor, 1)
}

func (r *trendRenderer) drawSeries(p plot, points []history.Point, c color.Color, value func(history.Point) float32) {
	for i := 1; i < len(points); i++ {
		a := p.pos(points[i-1].Elapsed, clampPercent(value(points[i-1])))
		b := p.pos(points[i].Elapsed, clampPercent(value(points[i])))
		r.line(a, b, c, 1.5)
	}
}

func (r *trendRenderer) drawLegend(p plot) {
	x := p.x
	for _, item := range []struct {
		name string
		c    color.Color
	}{
		{"Soil", moistureColor},
		{"Light", lightColor},
		{"Reservoir", reservoirColor},
		{"Level", thresholdColor},
	} {
		r.text(item.name, item.c, fyne.NewPos(x, 6), fyne.TextAlignLeading)
		x += 80
	}
}

func (r *trendRenderer) line(a, b fyne.Position, c color.Color, width float32) {
	l := canvas.NewLine(c)
	l.Position1 = a
	l.Position2 = b
	l.StrokeWidth = width
	r.objects = append(r.objects, l)
}

func (r *trendRenderer) text(s string, c color.Color, at fyne.Position, align fyne.TextAlign) {
	t := canvas.NewText(s, c)
	t.TextSize = 10
	t.Alignment = align
	t.Move(at)
	r.objects = append(r.objects, t)
}

func (r *trendRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *trendRenderer) Destroy() {}

func clampPercent(v float32) float32 {
	return min(max(v, 0), 100)
}

func formatElapsed(d time.Duration) string {
	d = d.Round(time.Minute)
	return fmt.Sprintf("%d:%02d", int(d.Hours()), int(d.Minutes())%60)
}
