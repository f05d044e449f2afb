// Package controller runs the plant-watering control loop: it serves operator
// commands from the console and, while the console is idle, waters the plant and
// sounds alerts according to the operator thresholds.
package controller

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/itohio/goplant/pkg/board"
	"github.com/itohio/goplant/pkg/command"
	"github.com/itohio/goplant/pkg/config"
	"github.com/itohio/goplant/pkg/field"
	"github.com/itohio/goplant/pkg/line"
	"github.com/itohio/goplant/pkg/melody"
)

// Banner is printed once at startup.
const Banner = "Please set time of day (H M) and watering window first.\n\r" +
	"Then set the saturation percentage threshold for water pumping.\n\r" +
	"Finally set the level of light needed for alerts.\n\r"

const eol = "\n\r"

// Hardware bundles the peripherals the controller drives.
type Hardware struct {
	Console board.Console
	Sensors board.Sensors
	Clock   board.Clock
	Pump    board.Pump
	Delay   board.Delay
	Speaker board.Speaker
}

// Controller owns the thresholds and is the only writer to them.
type Controller struct {
	hw     Hardware
	policy config.PolicyConfig

	reader     *line.Reader
	dispatcher *command.Dispatcher
	player     *melody.Player
	waterLow   melody.Melody
	batteryLow melody.Melody

	mu         sync.RWMutex
	thresholds Thresholds

	callbacks []func(Event)
	cbMu      sync.RWMutex

	werr error
}

// New creates a controller. Thresholds start from cfg.Thresholds.
func New(hw Hardware, cfg *config.Config) *Controller {
	c := &Controller{
		hw:         hw,
		policy:     cfg.Policy,
		reader:     line.NewReader(hw.Console, line.MaxChars),
		player:     melody.NewPlayer(hw.Speaker, hw.Delay),
		waterLow:   melody.WaterLow(),
		batteryLow: melody.BatteryLow(),
		thresholds: NewThresholds(cfg.Thresholds),
	}
	c.dispatcher = command.NewDispatcher(c.commands()...)
	return c
}

// Thresholds returns a snapshot of the operator thresholds.
func (c *Controller) Thresholds() Thresholds {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.thresholds
}

// OnEvent registers a callback invoked synchronously from the control loop.
func (c *Controller) OnEvent(fn func(Event)) {
	c.cbMu.Lock()
	defer c.cbMu.Unlock()
	c.callbacks = append(c.callbacks, fn)
}

// Run prints the banner and steps the loop until ctx is done or the console fails.
// The context is only checked between iterations; a pump cycle or an alert that has
// started always finishes. Closing the console unblocks a pending line read.
func (c *Controller) Run(ctx context.Context) error {
	c.print(Banner)
	if err := c.flush(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := c.Step(); err != nil {
			return err
		}
	}
}

// Step runs one iteration: serve a line if input is pending, otherwise evaluate the
// autonomous policy.
func (c *Controller) Step() error {
	if c.hw.Console.Buffered() {
		text, err := c.reader.ReadLine()
		if err != nil {
			return err
		}
		c.interact(text)
		return c.flush()
	}

	c.evaluate()
	if c.policy.IdlePause > 0 {
		c.wait(c.policy.IdlePause)
	}
	return nil
}

// interact echoes a line and its fields and dispatches it.
func (c *Controller) interact(text string) {
	c.print(text + eol)

	t := field.Tokenize(text)
	for i := range t.Count() {
		c.print(fmt.Sprintf("%c\t%s%s", t.Type(i), t.String(i), eol))
	}

	if c.dispatcher.Dispatch(&t) == 0 {
		c.print("Invalid Command" + eol)
		c.emit(Event{Kind: EventInvalid, Line: text})
		return
	}
	c.emit(Event{Kind: EventCommand, Line: text})
}

// evaluate applies the watering and alert policy. Pump cycles and alerts block until
// they finish; no input is served meanwhile.
func (c *Controller) evaluate() {
	th := c.Thresholds()
	s := c.hw.Sensors

	moisture := s.MoisturePercent()
	now := c.hw.Clock.Seconds()
	if !th.InWindow(now) {
		return
	}

	volume := s.Volume()
	for moisture < th.Moisture && volume > c.policy.PumpMinVolume {
		c.pumpCycle()
		moisture = s.MoisturePercent()
		volume = s.Volume()
	}

	volume = s.Volume()
	light := s.LightPercent()
	if volume < c.policy.LowVolume && float32(th.Light) > light {
		c.alert(AlertWaterLow, c.waterLow)
	}

	battery := s.BatteryVolts()
	if battery < c.policy.LowBattery && float32(th.Light) > light {
		c.alert(AlertBatteryLow, c.batteryLow)
	}
}

func (c *Controller) pumpCycle() {
	c.setPump(true)
	c.wait(c.policy.PumpOn)
	c.setPump(false)
	c.wait(c.policy.PumpOff)
}

func (c *Controller) setPump(on bool) {
	c.hw.Pump.SetPump(on)
	c.emit(Event{Kind: EventPump, Pump: on})
}

func (c *Controller) alert(name string, m melody.Melody) {
	c.emit(Event{Kind: EventAlert, Alert: name})
	c.player.Play(m)
}

// wait blocks for d, split into chunks the delay primitive can express.
func (c *Controller) wait(d time.Duration) {
	const maxChunk = time.Duration(^uint32(0)) * time.Microsecond
	for d > 0 {
		chunk := min(d, maxChunk)
		c.hw.Delay.WaitMicroseconds(uint32(chunk / time.Microsecond))
		d -= chunk
	}
}

func (c *Controller) update(fn func(t *Thresholds)) {
	c.mu.Lock()
	fn(&c.thresholds)
	th := c.thresholds
	c.mu.Unlock()

	c.emit(Event{Kind: EventThresholds, Thresholds: th})
}

func (c *Controller) emit(e Event) {
	c.cbMu.RLock()
	defer c.cbMu.RUnlock()
	for _, fn := range c.callbacks {
		fn(e)
	}
}

// print writes to the console, keeping the first error for flush.
func (c *Controller) print(s string) {
	if c.werr != nil {
		return
	}
	if _, err := io.WriteString(c.hw.Console, s); err != nil {
		c.werr = fmt.Errorf("failed to write console: %w", err)
	}
}

func (c *Controller) flush() error {
	err := c.werr
	c.werr = nil
	return err
}
