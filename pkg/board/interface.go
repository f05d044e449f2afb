// Package board declares the peripherals the controller drives and provides
// host-side implementations of them: serial and stream consoles, a wall-clock
// RTC, and a simulated plant.
package board

import "errors"

// ErrClosed is returned by consoles after Close.
var ErrClosed = errors.New("console closed")

// Console is the operator serial line.
type Console interface {
	// ReadByte blocks until a byte is available.
	ReadByte() (byte, error)
	// Buffered reports whether ReadByte would return without blocking.
	Buffered() bool
	Write(p []byte) (int, error)
}

// Sensors returns calibrated readings. Every call samples the hardware again.
type Sensors interface {
	Volume() int
	LightPercent() float32
	MoisturePercent() float32
	BatteryVolts() float32
}

// Clock is the real-time clock counting seconds since midnight.
type Clock interface {
	Seconds() uint32
	SetSeconds(s uint32)
}

// Pump switches the water pump.
type Pump interface {
	SetPump(on bool)
}

// Delay blocks the caller.
type Delay interface {
	WaitMicroseconds(us uint32)
}

// Speaker drives the alert buzzer.
type Speaker interface {
	Tone(hz uint32)
	Silence()
}

// Raw exposes uncalibrated readings: reservoir echo time in timer ticks and ADC counts.
type Raw interface {
	EchoTicks() uint32
	LightADC() uint16
	MoistureADC() uint16
	BatteryADC() uint16
}

// SecondsPerDay is the RTC rollover.
const SecondsPerDay = 24 * 60 * 60

var (
	_ Console = (*Stream)(nil)
	_ Clock   = (*RTC)(nil)
	_ Delay   = SleepDelay{}
	_ Raw     = (*Mock)(nil)
	_ Clock   = (*Mock)(nil)
	_ Pump    = (*Mock)(nil)
	_ Delay   = (*Mock)(nil)
	_ Speaker = (*Mock)(nil)
)
