package history

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(s int) Point {
	return Point{Elapsed: time.Duration(s) * time.Second, Moisture: float32(s)}
}

func TestHistory_Add(t *testing.T) {
	h := New(3)
	for i := range 5 {
		h.Add(at(i))
	}

	pts := h.Points(nil)
	require.Len(t, pts, 3)
	assert.Equal(t, []Point{at(2), at(3), at(4)}, pts)
}

func TestHistory_RestartClears(t *testing.T) {
	h := New(10)
	h.Add(at(5))
	h.Add(at(6))
	h.Add(at(1))

	assert.Equal(t, []Point{at(1)}, h.Points(nil))
}

func TestHistory_PointsReusesDst(t *testing.T) {
	h := New(10)
	h.Add(at(1))
	h.Add(at(2))

	dst := make([]Point, 0, 8)
	pts := h.Points(dst)
	assert.Len(t, pts, 2)
	assert.Equal(t, 8, cap(pts))

	pts[0].Moisture = 99
	assert.Equal(t, float32(1), h.Points(nil)[0].Moisture, "copy is detached")
}

func TestHistory_Reset(t *testing.T) {
	h := New(0)
	assert.Equal(t, DefaultSize, h.size)

	h.Add(at(1))
	h.Reset()
	assert.Zero(t, h.Len())
}

func TestHistory_Concurrent(t *testing.T) {
	h := New(100)
	var wg sync.WaitGroup
	for w := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var buf []Point
			for i := range 200 {
				h.Add(at(w*1000 + i))
				buf = h.Points(buf)
			}
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, h.Len(), 100)
}

func TestDownsample(t *testing.T) {
	pts := make([]Point, 100)
	for i := range pts {
		pts[i] = at(i)
	}

	t.Run("no reduction", func(t *testing.T) {
		got := Downsample(nil, pts[:10], 20)
		assert.Equal(t, pts[:10], got)
	})

	t.Run("decimate", func(t *testing.T) {
		got := Downsample(nil, pts, 10)
		require.Len(t, got, 10)
		assert.Equal(t, at(0), got[0])
		assert.Equal(t, at(10), got[1])
		assert.Equal(t, at(99), got[9], "newest point kept")
	})

	t.Run("reuse dst", func(t *testing.T) {
		dst := make([]Point, 0, 10)
		got := Downsample(dst, pts, 10)
		assert.Equal(t, 10, cap(got))
		assert.Same(t, &dst[:1][0], &got[0])
	})
}

func TestPumpSpans(t *testing.T) {
	pts := []Point{
		{Elapsed: 0},
		{Elapsed: 1 * time.Second, Pump: true},
		{Elapsed: 2 * time.Second, Pump: true},
		{Elapsed: 3 * time.Second},
		{Elapsed: 4 * time.Second, Pump: true},
		{Elapsed: 5 * time.Second, Pump: true},
	}

	assert.Equal(t, []Span{
		{Start: time.Second, End: 3 * time.Second},
		{Start: 4 * time.Second, End: 5 * time.Second},
	}, PumpSpans(pts))

	assert.Empty(t, PumpSpans(nil))
}
