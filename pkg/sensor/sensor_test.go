package sensor

import (
	"testing"

	"github.com/itohio/goplant/pkg/board"
	"github.com/itohio/goplant/pkg/config"
	"github.com/stretchr/testify/assert"
)

type fakeRaw struct {
	echo     uint32
	light    []uint16
	moisture []uint16
	battery  []uint16
	reads    int
}

func next(vals []uint16, i int) uint16 {
	return vals[i%len(vals)]
}

func (f *fakeRaw) EchoTicks() uint32 { return f.echo }
func (f *fakeRaw) LightADC() uint16 {
	f.reads++
	return next(f.light, f.reads-1)
}
func (f *fakeRaw) MoistureADC() uint16 {
	f.reads++
	return next(f.moisture, f.reads-1)
}
func (f *fakeRaw) BatteryADC() uint16 {
	f.reads++
	return next(f.battery, f.reads-1)
}

func TestCalibrated_Conversions(t *testing.T) {
	cal := config.Default().Calibration
	cal.AverageSamples = 1
	raw := &fakeRaw{
		echo:     7239, // (7239 - 423.64) / 0.3408 = 19998.1
		light:    []uint16{650},
		moisture: []uint16{1533},
		battery:  []uint16{1905},
	}
	s := New(raw, cal)

	assert.Equal(t, 19998, s.Volume())
	assert.InDelta(t, 50.0, s.LightPercent(), 0.001)
	assert.InDelta(t, 50.003, s.MoisturePercent(), 0.01)
	assert.InDelta(t, 4.8002, s.BatteryVolts(), 0.001)
}

func TestCalibrated_NegativeVolume(t *testing.T) {
	s := New(&fakeRaw{echo: 0}, config.Default().Calibration)

	assert.Equal(t, -1243, s.Volume())
}

func TestCalibrated_Averaging(t *testing.T) {
	cal := config.Default().Calibration
	cal.AverageSamples = 4
	cal.LightDivisor = 1
	raw := &fakeRaw{light: []uint16{100, 101, 102, 104}}
	s := New(raw, cal)

	// (100+101+102+104)/4 = 101.75, rounded to nearest.
	assert.Equal(t, float32(102), s.LightPercent())
	assert.Equal(t, 4, raw.reads)
}

func TestCalibrated_NoCaching(t *testing.T) {
	cal := config.Default().Calibration
	cal.AverageSamples = 1
	cal.MoistureDivisor = 1
	raw := &fakeRaw{moisture: []uint16{10, 20}}
	s := New(raw, cal)

	assert.Equal(t, float32(10), s.MoisturePercent())
	assert.Equal(t, float32(20), s.MoisturePercent())
}

func TestNew_ZeroAverage(t *testing.T) {
	cal := config.Default().Calibration
	cal.AverageSamples = 0
	s := New(&fakeRaw{}, cal)

	assert.Equal(t, 1, s.cal.AverageSamples)
}

func TestCalibrated_MockRoundTrip(t *testing.T) {
	def := config.Default()
	mockCfg := def.Mock
	mockCfg.Noise = 0
	mockCfg.StartTime = 12 * 3600 // Noon, full sun
	mock := board.NewMock(&mockCfg, &def.Calibration)
	s := New(mock, def.Calibration)

	assert.InDelta(t, float64(mockCfg.ReservoirML), float64(s.Volume()), 3)
	assert.InDelta(t, float64(mockCfg.Moisture), float64(s.MoisturePercent()), 0.1)
	assert.InDelta(t, 100, float64(s.LightPercent()), 0.1)
	assert.InDelta(t, float64(mockCfg.Battery), float64(s.BatteryVolts()), 0.01)
}

func TestEchoToVolume_ZeroScale(t *testing.T) {
	assert.Equal(t, 0, echoToVolume(1000, 423.64, 0))
}
