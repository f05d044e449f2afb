//go:build tinygo

//go:generate tinygo flash -target=xiao

package main

import (
	"context"
	"machine"
	"time"

	"github.com/itohio/goplant/pkg/board"
	"github.com/itohio/goplant/pkg/config"
	"github.com/itohio/goplant/pkg/controller"
	"github.com/itohio/goplant/pkg/sensor"
)

var uart = machine.UART0

func main() {
	PIN_PUMP.Configure(machine.PinConfig{Mode: machine.PinOutput})
	PIN_PUMP.Low()
	PIN_SPEAKER.Configure(machine.PinConfig{Mode: machine.PinOutput})
	PIN_SPEAKER.Low()

	uart.Configure(machine.UARTConfig{
		BaudRate: UART_BAUD_RATE,
	})

	cfg := config.Default()
	cfg.Policy.IdlePause = IDLE_PAUSE

	speaker := &buzzer{pin: PIN_SPEAKER}
	ctrl := controller.New(controller.Hardware{
		Console: &uartConsole{uart: uart},
		Sensors: sensor.New(newFrontEnd(), cfg.Calibration),
		Clock:   board.NewRTC(0),
		Pump:    pumpPin(PIN_PUMP),
		Delay:   speaker,
		Speaker: speaker,
	}, cfg)

	for {
		if err := ctrl.Run(context.Background()); err != nil {
			println("controller stopped:", err.Error())
		}
		time.Sleep(time.Second)
	}
}
