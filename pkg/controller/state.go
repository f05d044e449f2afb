package controller

import (
	"fmt"

	"github.com/itohio/goplant/pkg/config"
)

// Thresholds is the operator-set configuration of the autonomous policy.
type Thresholds struct {
	WindowStart uint32  // Seconds since midnight
	WindowEnd   uint32  // Seconds since midnight
	Moisture    float32 // Pump while soil saturation is below this (%)
	Light       uint32  // Alerts sound only while light is below this (%)
}

// NewThresholds returns the startup thresholds.
func NewThresholds(cfg config.ThresholdConfig) Thresholds {
	return Thresholds{
		WindowStart: cfg.WindowStart,
		WindowEnd:   cfg.WindowEnd,
		Moisture:    cfg.Moisture,
		Light:       cfg.Light,
	}
}

// InWindow reports whether s lies strictly between the window bounds.
// A window whose start is after its end never matches.
func (t Thresholds) InWindow(s uint32) bool {
	return s > t.WindowStart && s < t.WindowEnd
}

// String formats the thresholds for logs.
func (t Thresholds) String() string {
	return fmt.Sprintf("window %s-%s moisture %.0f%% light %d%%",
		FormatClock(t.WindowStart), FormatClock(t.WindowEnd), t.Moisture, t.Light)
}

// ClockSeconds converts hours and minutes into seconds. The arguments are not range checked.
func ClockSeconds(hours, minutes uint32) uint32 {
	return hours*60*60 + minutes*60
}

// FormatClock formats seconds since midnight as HH:MM:SS.
func FormatClock(s uint32) string {
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, s/60%60, s%60)
}
