package board

import (
	"testing"
	"time"

	"github.com/itohio/goplant/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietMock(t *testing.T, mod func(cfg *config.MockConfig)) *Mock {
	t.Helper()
	def := config.Default()
	cfg := def.Mock
	cfg.Noise = 0
	cfg.TimeScale = 0
	if mod != nil {
		mod(&cfg)
	}
	return NewMock(&cfg, &def.Calibration)
}

func TestNewMock_NilConfig(t *testing.T) {
	m := NewMock(nil, nil)

	assert.NotNil(t, m.cfg)
	assert.NotNil(t, m.cal)
	assert.Equal(t, float32(25000), m.State().Reservoir)
	assert.Equal(t, float32(35), m.State().Moisture)
}

func TestMock_Clock(t *testing.T) {
	m := quietMock(t, nil)

	m.SetSeconds(86340)
	assert.Equal(t, uint32(86340), m.Seconds())

	m.WaitMicroseconds(59_000_000)
	assert.Equal(t, uint32(86399), m.Seconds())

	m.WaitMicroseconds(2_000_000)
	assert.Equal(t, uint32(1), m.Seconds(), "clock wraps at midnight")

	m.SetSeconds(90000)
	assert.Equal(t, uint32(3600), m.Seconds())
}

func TestMock_PumpDrainsReservoir(t *testing.T) {
	m := quietMock(t, func(cfg *config.MockConfig) {
		cfg.DryRate = 0
	})

	m.SetPump(true)
	m.WaitMicroseconds(5_000_000)
	m.SetPump(false)
	m.WaitMicroseconds(30_000_000)

	st := m.State()
	assert.InDelta(t, 24900, st.Reservoir, 0.01)
	assert.InDelta(t, 100, st.PumpedML, 0.01)
	assert.InDelta(t, 40, st.Moisture, 0.01)
	assert.False(t, st.PumpOn)
	assert.Equal(t, uint64(35_000_000), st.Elapsed)
}

func TestMock_PumpStopsWhenEmpty(t *testing.T) {
	m := quietMock(t, func(cfg *config.MockConfig) {
		cfg.ReservoirML = 30
	})

	m.SetPump(true)
	m.WaitMicroseconds(5_000_000)

	st := m.State()
	assert.Equal(t, float32(0), st.Reservoir)
	assert.InDelta(t, 30, st.PumpedML, 0.01)
}

func TestMock_SoilDries(t *testing.T) {
	m := quietMock(t, func(cfg *config.MockConfig) {
		cfg.Moisture = 10
		cfg.DryRate = 2
	})

	for range 4 {
		m.WaitMicroseconds(1800 * 1_000_000)
	}
	assert.InDelta(t, 6, m.State().Moisture, 0.01)

	for range 10 {
		m.WaitMicroseconds(3600 * 1_000_000)
	}
	assert.Equal(t, float32(0), m.State().Moisture)
}

func TestMock_Sunlight(t *testing.T) {
	m := quietMock(t, nil)

	m.SetSeconds(3 * 3600)
	assert.Equal(t, float32(0), m.State().Light)
	assert.Equal(t, uint16(0), m.LightADC())

	m.SetSeconds(12 * 3600)
	assert.InDelta(t, 100, m.State().Light, 0.01)
	assert.Equal(t, uint16(1300), m.LightADC())

	m.SetSeconds(9 * 3600)
	assert.InDelta(t, 70.71, m.State().Light, 0.01)

	m.SetSeconds(20 * 3600)
	assert.Equal(t, float32(0), m.State().Light)
}

func TestMock_RawReadings(t *testing.T) {
	m := quietMock(t, nil)

	assert.Equal(t, uint32(8943), m.EchoTicks())
	assert.Equal(t, uint16(1073), m.MoistureADC())
	assert.Equal(t, uint16(1905), m.BatteryADC())

	m.Refill(0)
	assert.Equal(t, uint32(423), m.EchoTicks())

	m.SetMoisture(150)
	assert.Equal(t, float32(100), m.State().Moisture)
	assert.Equal(t, uint16(3066), m.MoistureADC())

	m.SetBattery(20)
	assert.Equal(t, uint16(4095), m.BatteryADC(), "ADC saturates")
}

func TestMock_Speaker(t *testing.T) {
	m := quietMock(t, nil)

	m.Tone(880)
	assert.Equal(t, uint32(880), m.State().Tone)
	m.Silence()
	m.Tone(440)
	m.Silence()

	st := m.State()
	assert.Equal(t, uint32(0), st.Tone)
	assert.Equal(t, 2, st.Tones)
}

func TestMock_TimeScale(t *testing.T) {
	def := config.Default()
	cfg := def.Mock
	cfg.TimeScale = 1000
	m := NewMock(&cfg, &def.Calibration)

	var slept []time.Duration
	m.sleep = func(d time.Duration) { slept = append(slept, d) }

	m.WaitMicroseconds(5_000_000)

	require.Len(t, slept, 1)
	assert.Equal(t, 5*time.Millisecond, slept[0])
}

func TestMock_NoiseStaysBounded(t *testing.T) {
	m := quietMock(t, func(cfg *config.MockConfig) {
		cfg.Noise = 3
	})

	for range 50 {
		m.WaitMicroseconds(12345)
		adc := int(m.MoistureADC())
		assert.InDelta(t, 1073, adc, 4)
	}
}
