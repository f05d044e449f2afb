package main

import (
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/goplant/pkg/history"
)

// minTrendWindow is the shortest time span shown on the X axis.
const minTrendWindow = 10 * time.Minute

// TrendWidget plots soil moisture, sunlight and reservoir level against simulated time,
// with pump runs shaded and the moisture threshold drawn across.
type TrendWidget struct {
	widget.BaseWidget

	// Data (protected by mu)
	mu        sync.RWMutex
	display   []history.Point
	spans     []history.Span
	threshold float32
	xMin      time.Duration
	xMax      time.Duration

	maxDisplayPoints int
}

// NewTrend creates a new TrendWidget instance.
func NewTrend() *TrendWidget {
	t := &TrendWidget{
		display:          make([]history.Point, 0, 600),
		maxDisplayPoints: 600,
		xMax:             minTrendWindow,
	}
	t.ExtendBaseWidget(t)
	return t
}

// UpdateData replaces the plotted series. Call it on the main thread.
func (t *TrendWidget) UpdateData(points []history.Point, threshold float32) {
	t.mu.Lock()
	t.display = history.Downsample(t.display, points, t.maxDisplayPoints)
	t.spans = history.PumpSpans(points)
	t.threshold = threshold

	t.xMin, t.xMax = 0, minTrendWindow
	if len(t.display) > 0 {
		t.xMin = t.display[0].Elapsed
		t.xMax = t.display[len(t.display)-1].Elapsed
		if t.xMax-t.xMin < minTrendWindow {
			t.xMax = t.xMin + minTrendWindow
		}
	}
	t.mu.Unlock()

	t.Refresh()
}

// CreateRenderer creates the widget renderer.
func (t *TrendWidget) CreateRenderer() fyne.WidgetRenderer {
	background := canvas.NewRectangle(color.RGBA{R: 20, G: 20, B: 20, A: 255})
	return &trendRenderer{
		trend:      t,
		background: background,
		objects:    []fyne.CanvasObject{background},
	}
}
