package command

import (
	"testing"

	"github.com/itohio/goplant/pkg/field"
	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		command string
		minArgs int
		want    bool
	}{
		{"status no args", "status", "status", 0, true},
		{"status with extra args", "status 1 2", "status", 0, true},
		{"wrong name", "stat", "status", 0, false},
		{"case sensitive", "Status", "status", 0, false},
		{"empty line", "", "status", 0, false},
		{"delimiters only", " ;; ", "status", 0, false},
		{"enough args", "time 23 59", "time", 2, true},
		{"too few args", "time 23", "time", 2, false},
		{"water full", "water 6 30 7 0", "water", 4, true},
		{"water short", "water 6 30 7", "water", 4, false},
		{"numeric first field", "12 status", "status", 0, false},
		{"alpha args count", "pump on", "pump", 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := field.Tokenize(tt.line)
			assert.Equal(t, tt.want, Matches(&table, tt.command, tt.minArgs))
		})
	}
}

func TestDispatcher_EvaluatesAll(t *testing.T) {
	var calls []string
	record := func(name string) Handler {
		return func(*field.Table) { calls = append(calls, name) }
	}

	d := NewDispatcher(
		Command{Name: "level", MinArgs: 1, Handle: record("first")},
		Command{Name: "status", MinArgs: 0, Handle: record("status")},
		Command{Name: "level", MinArgs: 0, Handle: record("second")},
	)

	table := field.Tokenize("level 40")
	matched := d.Dispatch(&table)

	assert.Equal(t, 2, matched)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestDispatcher_NoMatch(t *testing.T) {
	called := false
	d := NewDispatcher(Command{Name: "pump", MinArgs: 1, Handle: func(*field.Table) { called = true }})

	table := field.Tokenize("pump")
	assert.Equal(t, 0, d.Dispatch(&table))
	assert.False(t, called)
}

func TestDispatcher_HandlerSeesArguments(t *testing.T) {
	var hours, minutes uint32
	d := NewDispatcher(Command{Name: "time", MinArgs: 2, Handle: func(t *field.Table) {
		hours = t.Uint(1)
		minutes = t.Uint(2)
	}})

	table := field.Tokenize("time 23 59")
	d.Dispatch(&table)

	assert.Equal(t, uint32(23), hours)
	assert.Equal(t, uint32(59), minutes)
}

func TestDispatcher_Names(t *testing.T) {
	d := NewDispatcher(Command{Name: "status"}, Command{Name: "alert", MinArgs: 1})
	d.Register(Command{Name: "pump", MinArgs: 1})

	assert.Equal(t, []string{"status", "alert", "pump"}, d.Names())
}

func TestDispatcher_NilHandler(t *testing.T) {
	d := NewDispatcher(Command{Name: "status"})

	table := field.Tokenize("status")
	assert.Equal(t, 1, d.Dispatch(&table))
}
