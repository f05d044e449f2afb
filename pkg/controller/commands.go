package controller

import (
	"fmt"

	"github.com/itohio/goplant/pkg/command"
	"github.com/itohio/goplant/pkg/field"
)

// commands returns the operator vocabulary in evaluation order.
func (c *Controller) commands() []command.Command {
	return []command.Command{
		{Name: "status", MinArgs: 0, Handle: c.status},
		{Name: "alert", MinArgs: 1, Handle: c.setLight},
		{Name: "pump", MinArgs: 1, Handle: c.pump},
		{Name: "time", MinArgs: 2, Handle: c.setTime},
		{Name: "water", MinArgs: 4, Handle: c.setWindow},
		{Name: "level", MinArgs: 1, Handle: c.setMoisture},
	}
}

// numeric reports whether fields 1..n are all numbers.
// Handlers silently ignore commands whose arguments are not.
func numeric(t *field.Table, n int) bool {
	for i := 1; i <= n; i++ {
		if t.Type(i) != field.Numeric {
			return false
		}
	}
	return true
}

func (c *Controller) status(*field.Table) {
	s := c.hw.Sensors
	volume := s.Volume()
	light := s.LightPercent()
	moisture := s.MoisturePercent()
	battery := s.BatteryVolts()

	c.print(fmt.Sprintf("%d mL%s", volume, eol))
	c.print(fmt.Sprintf("%.2f %% Sunlight Exposure%s", light, eol))
	c.print(fmt.Sprintf("%.2f %% Saturated Soil%s", moisture, eol))
	c.print(fmt.Sprintf("%.2f Volts%s", battery, eol))
}

func (c *Controller) setLight(t *field.Table) {
	if !numeric(t, 1) {
		return
	}
	light := t.Uint(1)
	c.update(func(th *Thresholds) { th.Light = light })
}

func (c *Controller) pump(t *field.Table) {
	switch t.String(1) {
	case "on":
		c.setPump(true)
	case "off":
		c.setPump(false)
	}
}

func (c *Controller) setTime(t *field.Table) {
	if !numeric(t, 2) {
		return
	}
	s := ClockSeconds(t.Uint(1), t.Uint(2))
	c.hw.Clock.SetSeconds(s)
	c.emit(Event{Kind: EventClock, Seconds: s})
}

func (c *Controller) setWindow(t *field.Table) {
	if !numeric(t, 4) {
		return
	}
	start := ClockSeconds(t.Uint(1), t.Uint(2))
	end := ClockSeconds(t.Uint(3), t.Uint(4))
	c.update(func(th *Thresholds) {
		th.WindowStart = start
		th.WindowEnd = end
	})
}

func (c *Controller) setMoisture(t *field.Table) {
	if !numeric(t, 1) {
		return
	}
	level := float32(t.Uint(1))
	c.update(func(th *Thresholds) { th.Moisture = level })
}
