package controller

import "fmt"

// EventKind identifies what happened in the controller.
type EventKind int

const (
	// EventCommand is a line that matched at least one command.
	EventCommand EventKind = iota
	// EventInvalid is a line that matched no command.
	EventInvalid
	// EventPump is a pump switch, by command or by the watering cycle.
	EventPump
	// EventAlert is the start of an alert melody.
	EventAlert
	// EventThresholds is a change of the operator thresholds.
	EventThresholds
	// EventClock is a load of the real-time clock.
	EventClock
)

// Alert names.
const (
	AlertWaterLow   = "water low"
	AlertBatteryLow = "battery low"
)

// Event describes a controller action.
type Event struct {
	Kind       EventKind
	Line       string
	Pump       bool
	Alert      string
	Thresholds Thresholds
	Seconds    uint32
}

func (e Event) String() string {
	switch e.Kind {
	case EventCommand:
		return fmt.Sprintf("command %q", e.Line)
	case EventInvalid:
		return fmt.Sprintf("invalid command %q", e.Line)
	case EventPump:
		if e.Pump {
			return "pump on"
		}
		return "pump off"
	case EventAlert:
		return "alert: " + e.Alert
	case EventThresholds:
		return "thresholds: " + e.Thresholds.String()
	case EventClock:
		return "clock set to " + FormatClock(e.Seconds)
	default:
		return fmt.Sprintf("event %d", e.Kind)
	}
}
