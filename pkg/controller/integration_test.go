package controller

import (
	"testing"

	"github.com/itohio/goplant/pkg/board"
	"github.com/itohio/goplant/pkg/config"
	"github.com/itohio/goplant/pkg/melody"
	"github.com/itohio/goplant/pkg/sensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimulated(t *testing.T, mod func(cfg *config.Config)) (*Controller, *board.Mock, *fakeConsole) {
	t.Helper()
	cfg := config.Default()
	cfg.Mock.Noise = 0
	cfg.Mock.TimeScale = 0
	if mod != nil {
		mod(cfg)
	}

	mock := board.NewMock(&cfg.Mock, &cfg.Calibration)
	console := &fakeConsole{}
	ctrl := New(Hardware{
		Console: console,
		Sensors: sensor.New(mock, cfg.Calibration),
		Clock:   mock,
		Pump:    mock,
		Delay:   mock,
		Speaker: mock,
	}, cfg)
	return ctrl, mock, console
}

func feed(t *testing.T, ctrl *Controller, console *fakeConsole, lines ...string) {
	t.Helper()
	for _, l := range lines {
		console.in = append(console.in, []byte(l+"\r")...)
		require.NoError(t, ctrl.Step())
	}
}

func TestSimulated_WatersUntilMoist(t *testing.T) {
	ctrl, mock, console := newSimulated(t, nil)
	var pumps int
	ctrl.OnEvent(func(e Event) {
		if e.Kind == EventPump && e.Pump {
			pumps++
		}
	})

	feed(t, ctrl, console, "time 12 0", "water 11 0 13 0", "level 45")
	require.Equal(t, uint32(12*3600), mock.Seconds())

	require.NoError(t, ctrl.Step())

	st := mock.State()
	assert.False(t, st.PumpOn)
	assert.GreaterOrEqual(t, st.Moisture, float32(45))
	assert.Equal(t, 3, pumps)
	assert.InDelta(t, 300, st.PumpedML, 0.1)
	assert.Equal(t, uint64(3*35_000_000), st.Elapsed)
	assert.Zero(t, st.Tones)

	// Next idle iteration finds the soil moist enough.
	require.NoError(t, ctrl.Step())
	assert.Equal(t, 3, pumps)
}

func TestSimulated_WaterLowAlertAtNight(t *testing.T) {
	ctrl, mock, console := newSimulated(t, func(cfg *config.Config) {
		cfg.Mock.ReservoirML = 0
	})

	feed(t, ctrl, console, "time 22 0", "water 21 0 23 0")
	require.NoError(t, ctrl.Step())

	st := mock.State()
	assert.Equal(t, melody.Length*melody.Rounds, st.Tones)
	assert.Equal(t, uint32(0), st.Tone)
	assert.Zero(t, st.PumpedML)
}

func TestSimulated_StatusReport(t *testing.T) {
	ctrl, _, console := newSimulated(t, func(cfg *config.Config) {
		cfg.Mock.StartTime = 12 * 3600
	})

	feed(t, ctrl, console, "status")

	out := console.out.String()
	assert.Contains(t, out, "24998 mL\n\r")
	assert.Contains(t, out, "100.00 % Sunlight Exposure\n\r")
	assert.Contains(t, out, "35.00 % Saturated Soil\n\r")
	assert.Contains(t, out, "4.80 Volts\n\r")
}

func TestSimulated_ManualPump(t *testing.T) {
	ctrl, mock, console := newSimulated(t, nil)

	feed(t, ctrl, console, "pump on")
	assert.True(t, mock.State().PumpOn)

	feed(t, ctrl, console, "pump off")
	assert.False(t, mock.State().PumpOn)
}
