// Package sensor converts raw echo times and ADC counts into calibrated readings.
package sensor

import (
	"github.com/chewxy/math32"
	"github.com/itohio/goplant/pkg/board"
	"github.com/itohio/goplant/pkg/config"
)

var _ board.Sensors = (*Calibrated)(nil)

// Calibrated implements board.Sensors on top of raw readings.
// Nothing is cached: every call samples the hardware again.
type Calibrated struct {
	raw board.Raw
	cal config.CalibrationConfig
}

// New creates calibrated sensors.
func New(raw board.Raw, cal config.CalibrationConfig) *Calibrated {
	if cal.AverageSamples <= 0 {
		cal.AverageSamples = 1
	}
	return &Calibrated{raw: raw, cal: cal}
}

// Volume returns the reservoir volume in mL.
// Echo times shorter than the empty-reservoir offset give negative volumes; they are not clamped.
func (c *Calibrated) Volume() int {
	return echoToVolume(c.raw.EchoTicks(), c.cal.VolumeOffset, c.cal.VolumeScale)
}

// LightPercent returns ambient light in percent.
func (c *Calibrated) LightPercent() float32 {
	return c.average(c.raw.LightADC) / c.cal.LightDivisor
}

// MoisturePercent returns soil saturation in percent.
func (c *Calibrated) MoisturePercent() float32 {
	return c.average(c.raw.MoistureADC) / c.cal.MoistureDivisor
}

// BatteryVolts returns the battery voltage.
func (c *Calibrated) BatteryVolts() float32 {
	return c.average(c.raw.BatteryADC) * c.cal.BatteryScale
}

// average reads an ADC channel AverageSamples times and returns the rounded mean, as the
// hardware sample sequencer does.
func (c *Calibrated) average(read func() uint16) float32 {
	var sum uint32
	for range c.cal.AverageSamples {
		sum += uint32(read())
	}
	n := float32(c.cal.AverageSamples)
	return math32.Floor(float32(sum)/n + 0.5)
}

// echoToVolume converts echo timer ticks into millilitres.
func echoToVolume(ticks uint32, offset, scale float32) int {
	if scale == 0 {
		return 0
	}
	return int((float32(ticks) - offset) / scale)
}
