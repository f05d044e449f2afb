// Package history keeps a bounded time series of plant readings for display.
package history

import (
	"sync"
	"time"
)

// DefaultSize is the number of points kept by New(0).
const DefaultSize = 4096

// Point is one snapshot of the plant.
type Point struct {
	Elapsed   time.Duration // Time since the session started
	Moisture  float32       // % saturation
	Light     float32       // % sunlight
	Reservoir float32       // % of the initial volume
	Pump      bool
}

// Span is an interval during which the pump ran.
type Span struct {
	Start, End time.Duration
}

// History is a bounded, thread-safe series of points ordered by Elapsed.
type History struct {
	mu     sync.RWMutex
	points []Point
	size   int
}

// New creates a history holding at most size points.
func New(size int) *History {
	if size <= 0 {
		size = DefaultSize
	}
	return &History{
		points: make([]Point, 0, size),
		size:   size,
	}
}

// Add appends p, dropping the oldest point when full.
// A point earlier than the last one starts a new series.
func (h *History) Add(p Point) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if n := len(h.points); n > 0 && p.Elapsed < h.points[n-1].Elapsed {
		h.points = h.points[:0]
	}
	if len(h.points) == h.size {
		copy(h.points, h.points[1:])
		h.points = h.points[:h.size-1]
	}
	h.points = append(h.points, p)
}

// Len returns the number of points held.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.points)
}

// Points copies the series into dst, reusing its capacity.
func (h *History) Points(dst []Point) []Point {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append(dst[:0], h.points...)
}

// Reset drops all points.
func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.points = h.points[:0]
}

// Downsample decimates points to at most maxPoints.
// Destination-based: reuses dst if it has sufficient capacity, otherwise allocates new.
func Downsample(dst []Point, points []Point, maxPoints int) []Point {
	if len(points) <= maxPoints || maxPoints <= 0 {
		return append(dst[:0], points...)
	}

	if cap(dst) >= maxPoints {
		dst = dst[:0]
	} else {
		dst = make([]Point, 0, maxPoints)
	}

	step := float64(len(points)) / float64(maxPoints)
	for i := range maxPoints {
		dst = append(dst, points[int(float64(i)*step)])
	}
	// Keep the newest point so the plot reaches the right edge.
	dst[len(dst)-1] = points[len(points)-1]
	return dst
}

// PumpSpans returns the intervals during which the pump was on.
// A span still open at the last point ends there.
func PumpSpans(points []Point) []Span {
	var spans []Span
	on := false
	var start time.Duration
	for _, p := range points {
		switch {
		case p.Pump && !on:
			on, start = true, p.Elapsed
		case !p.Pump && on:
			on = false
			spans = append(spans, Span{Start: start, End: p.Elapsed})
		}
	}
	if on {
		spans = append(spans, Span{Start: start, End: points[len(points)-1].Elapsed})
	}
	return spans
}
