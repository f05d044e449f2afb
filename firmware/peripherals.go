//go:build tinygo

package main

import (
	"machine"
	"time"

	"github.com/itohio/goplant/pkg/board"
)

var (
	_ board.Console = (*uartConsole)(nil)
	_ board.Raw     = (*frontEnd)(nil)
	_ board.Pump    = pumpPin(0)
	_ board.Delay   = (*buzzer)(nil)
	_ board.Speaker = (*buzzer)(nil)
)

// uartConsole adapts a UART to the blocking console the line reader expects.
type uartConsole struct {
	uart *machine.UART
}

func (c *uartConsole) Buffered() bool {
	return c.uart.Buffered() > 0
}

func (c *uartConsole) ReadByte() (byte, error) {
	for c.uart.Buffered() == 0 {
		time.Sleep(100 * time.Microsecond)
	}
	return c.uart.ReadByte()
}

func (c *uartConsole) Write(p []byte) (int, error) {
	return c.uart.Write(p)
}

// frontEnd samples the reservoir gauge and the analog sensors.
type frontEnd struct {
	light    machine.ADC
	moisture machine.ADC
	battery  machine.ADC
}

func newFrontEnd() *frontEnd {
	PIN_ECHO_TRIGGER.Configure(machine.PinConfig{Mode: machine.PinOutput})
	PIN_ECHO_TRIGGER.Low()
	PIN_ECHO.Configure(machine.PinConfig{Mode: machine.PinInput})

	f := &frontEnd{
		light:    machine.ADC{Pin: PIN_LIGHT_ADC},
		moisture: machine.ADC{Pin: PIN_MOISTURE_ADC},
		battery:  machine.ADC{Pin: PIN_BATTERY_ADC},
	}

	adcConfig := machine.ADCConfig{
		Reference:  ADC_REFERENCE_MV,
		Resolution: ADC_RESOLUTION,
	}
	for _, a := range []*machine.ADC{&f.light, &f.moisture, &f.battery} {
		a.Pin.Configure(machine.PinConfig{Mode: machine.PinInput})
		a.Configure(adcConfig)
	}
	return f
}

// EchoTicks triggers the gauge and times the echo pulse.
func (f *frontEnd) EchoTicks() uint32 {
	PIN_ECHO_TRIGGER.High()
	time.Sleep(ECHO_TRIGGER_US * time.Microsecond)
	PIN_ECHO_TRIGGER.Low()

	deadline := time.Now().Add(ECHO_TIMEOUT)
	for !PIN_ECHO.Get() {
		if time.Now().After(deadline) {
			return 0
		}
	}
	start := time.Now()
	for PIN_ECHO.Get() {
		if time.Now().After(deadline) {
			return 0
		}
	}
	return uint32(time.Since(start).Nanoseconds() / ECHO_TICK_NS)
}

func (f *frontEnd) LightADC() uint16    { return counts(f.light) }
func (f *frontEnd) MoistureADC() uint16 { return counts(f.moisture) }
func (f *frontEnd) BatteryADC() uint16  { return counts(f.battery) }

// counts scales a reading, which TinyGo reports as 16 bits, down to ADC_RESOLUTION bits.
func counts(a machine.ADC) uint16 {
	return a.Get() >> (16 - ADC_RESOLUTION)
}

// pumpPin drives the pump relay.
type pumpPin machine.Pin

func (p pumpPin) SetPump(on bool) {
	machine.Pin(p).Set(on)
}

// buzzer bit-bangs a square wave while the controller waits.
type buzzer struct {
	pin machine.Pin
	hz  uint32
}

func (b *buzzer) Tone(hz uint32) {
	b.hz = hz
}

func (b *buzzer) Silence() {
	b.hz = 0
	b.pin.Low()
}

func (b *buzzer) WaitMicroseconds(us uint32) {
	if b.hz == 0 {
		time.Sleep(time.Duration(us) * time.Microsecond)
		return
	}

	half := time.Second / time.Duration(2*b.hz)
	end := time.Now().Add(time.Duration(us) * time.Microsecond)
	level := false
	for time.Now().Before(end) {
		level = !level
		b.pin.Set(level)
		time.Sleep(half)
	}
	b.pin.Low()
}
