package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/itohio/goplant/pkg/board"
	"github.com/itohio/goplant/pkg/config"
	"github.com/itohio/goplant/pkg/controller"
	"github.com/itohio/goplant/pkg/sensor"
)

// console is what the simulator needs from an operator channel.
type console interface {
	board.Console
	io.Closer
}

func main() {
	var (
		portFlag        = flag.String("p", "", "Serve the operator over this serial port instead of stdin/stdout")
		configFlag      = flag.String("config", "config.yaml", "Configuration file path")
		timeScaleFlag   = flag.Float64("time-scale", -1, "Simulated seconds per wall second (0 = as fast as possible, overrides config)")
		writeConfigFlag = flag.Bool("write-config", false, "Write the effective configuration back to -config and exit")
	)
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *portFlag != "" {
		cfg.Serial.Port = *portFlag
	}
	if *timeScaleFlag >= 0 {
		cfg.Mock.TimeScale = *timeScaleFlag
	}

	if *writeConfigFlag {
		if err := cfg.Save(*configFlag); err != nil {
			log.Fatalf("Failed to save configuration: %v", err)
		}
		log.Printf("Configuration written to %s", *configFlag)
		return
	}

	if cfg.Policy.IdlePause <= 0 {
		cfg.Policy.IdlePause = 10 * time.Millisecond
	}

	con, err := openConsole(cfg, *portFlag != "")
	if err != nil {
		log.Fatalf("Failed to open console: %v", err)
	}

	mock := board.NewMock(&cfg.Mock, &cfg.Calibration)
	ctrl := controller.New(controller.Hardware{
		Console: con,
		Sensors: sensor.New(mock, cfg.Calibration),
		Clock:   mock,
		Pump:    mock,
		Delay:   mock,
		Speaker: mock,
	}, cfg)

	ctrl.OnEvent(func(e controller.Event) {
		if e.Kind == controller.EventCommand {
			return
		}
		st := mock.State()
		log.Printf("[%s] %s (reservoir %.0f mL, soil %.1f %%)",
			controller.FormatClock(st.Seconds), e, st.Reservoir, st.Moisture)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		con.Close()
	}()

	err = ctrl.Run(ctx)
	switch {
	case err == nil, errors.Is(err, context.Canceled), errors.Is(err, board.ErrClosed):
	case errors.Is(err, io.EOF):
		log.Println("Console closed")
	default:
		log.Fatalf("Controller stopped: %v", err)
	}
}

func openConsole(cfg *config.Config, useSerial bool) (console, error) {
	if !useSerial {
		return board.NewStream(os.Stdin, os.Stdout, true), nil
	}

	s := board.NewSerial(cfg.Serial.Port, cfg.Serial.BaudRate)
	if err := s.Connect(); err != nil {
		return nil, err
	}
	log.Printf("Serving operator on %s", s.Name())
	return s, nil
}
