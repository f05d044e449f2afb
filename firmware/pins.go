//go:build tinygo

package main

import (
	"machine"
	"time"
)

const (
	// ADC configuration
	ADC_REFERENCE_MV = 3300 // Reference voltage in millivolts (3.3V)
	ADC_RESOLUTION   = 12   // Calibration expects 12-bit counts (0-4095)

	// Sensor pins
	PIN_LIGHT_ADC    = machine.A1
	PIN_MOISTURE_ADC = machine.A2
	PIN_BATTERY_ADC  = machine.A3

	// Ultrasonic reservoir gauge
	PIN_ECHO_TRIGGER = machine.D4
	PIN_ECHO         = machine.D5
	ECHO_TRIGGER_US  = 10                    // Trigger pulse width
	ECHO_TIMEOUT     = 30 * time.Millisecond // No echo within this reads as 0 ticks
	ECHO_TICK_NS     = 1000                  // Echo ticks are microseconds

	// Actuators
	PIN_PUMP    = machine.D7
	PIN_SPEAKER = machine.D8

	// Control loop
	IDLE_PAUSE = time.Millisecond

	// Operator line, 8N1
	UART_BAUD_RATE = 115200
)
