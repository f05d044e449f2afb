// Package command matches tokenized operator lines against a fixed vocabulary.
package command

import (
	"github.com/itohio/goplant/pkg/field"
)

// Handler runs a matched command. Arguments start at field 1.
// A handler that rejects its arguments simply does nothing.
type Handler func(t *field.Table)

// Command is one entry of the vocabulary.
type Command struct {
	Name    string
	MinArgs int
	Handle  Handler
}

// Matches reports whether field 0 equals name and at least minArgs arguments follow it.
func Matches(t *field.Table, name string, minArgs int) bool {
	if t.Count() == 0 {
		return false
	}
	return t.String(0) == name && t.Count()-1 >= minArgs
}

// Dispatcher evaluates every registered command against each line.
type Dispatcher struct {
	commands []Command
}

// NewDispatcher creates a dispatcher for the given commands, evaluated in order.
func NewDispatcher(commands ...Command) *Dispatcher {
	d := &Dispatcher{}
	for _, c := range commands {
		d.Register(c)
	}
	return d
}

// Register appends a command to the end of the evaluation order.
func (d *Dispatcher) Register(c Command) {
	d.commands = append(d.commands, c)
}

// Names returns the registered command names in evaluation order.
func (d *Dispatcher) Names() []string {
	names := make([]string, len(d.commands))
	for i, c := range d.commands {
		names[i] = c.Name
	}
	return names
}

// Dispatch runs every command matching t and returns how many matched.
// All commands are evaluated; a match does not stop the scan.
func (d *Dispatcher) Dispatch(t *field.Table) int {
	matched := 0
	for _, c := range d.commands {
		if !Matches(t, c.Name, c.MinArgs) {
			continue
		}
		matched++
		if c.Handle != nil {
			c.Handle(t)
		}
	}
	return matched
}
