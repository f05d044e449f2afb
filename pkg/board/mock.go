package board

import (
	"sync"
	"time"

	"github.com/chewxy/math32"
	"github.com/itohio/goplant/pkg/config"
)

const (
	adcMax   = 4095
	sunrise  = 6 * 3600
	daylight = 12 * 3600
)

// MockState is a snapshot of the simulated plant.
type MockState struct {
	Seconds   uint32  // Time of day
	Elapsed   uint64  // Simulated microseconds since power-up
	Reservoir float32 // mL
	Moisture  float32 // % saturation
	Light     float32 // % sunlight
	Battery   float32 // V
	PumpOn    bool
	PumpedML  float32 // Total volume dispensed
	Tone      uint32  // Current speaker frequency, 0 when silent
	Tones     int     // Number of tones played
}

// Mock simulates the plant, the reservoir and the board peripherals.
// Time is virtual: it advances only through WaitMicroseconds.
type Mock struct {
	cfg *config.MockConfig
	cal *config.CalibrationConfig

	mu    sync.RWMutex
	state MockState
	rtc   uint64 // RTC value in microseconds; wraps at a day
	sleep func(time.Duration)
}

// NewMock creates a simulated board. Nil configs select the defaults.
func NewMock(cfg *config.MockConfig, cal *config.CalibrationConfig) *Mock {
	def := config.Default()
	if cfg == nil {
		cfg = &def.Mock
	}
	if cal == nil {
		cal = &def.Calibration
	}

	m := &Mock{
		cfg:   cfg,
		cal:   cal,
		sleep: time.Sleep,
	}
	m.state = MockState{
		Reservoir: cfg.ReservoirML,
		Moisture:  cfg.Moisture,
		Battery:   cfg.Battery,
	}
	m.rtc = uint64(cfg.StartTime%SecondsPerDay) * uint64(time.Second/time.Microsecond)
	m.state.Seconds = m.seconds()
	m.state.Light = m.sunlight()
	return m
}

// State returns a snapshot of the simulation.
func (m *Mock) State() MockState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Refill sets the reservoir volume.
func (m *Mock) Refill(ml float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Reservoir = ml
}

// SetMoisture sets the soil saturation.
func (m *Mock) SetMoisture(pct float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Moisture = clamp(pct, 0, 100)
}

// SetBattery sets the battery voltage.
func (m *Mock) SetBattery(v float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Battery = v
}

// Seconds returns the simulated time of day.
func (m *Mock) Seconds() uint32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.seconds()
}

// SetSeconds loads the simulated RTC.
func (m *Mock) SetSeconds(s uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rtc = uint64(s%SecondsPerDay) * uint64(time.Second/time.Microsecond)
	m.state.Seconds = m.seconds()
	m.state.Light = m.sunlight()
}

// SetPump switches the simulated pump.
func (m *Mock) SetPump(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.PumpOn = on
}

// Tone starts the simulated buzzer.
func (m *Mock) Tone(hz uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Tone = hz
	m.state.Tones++
}

// Silence stops the simulated buzzer.
func (m *Mock) Silence() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Tone = 0
}

// WaitMicroseconds advances the simulation by us and sleeps us/TimeScale of wall time.
// A TimeScale of 0 runs the simulation without sleeping.
func (m *Mock) WaitMicroseconds(us uint32) {
	m.mu.Lock()
	m.advance(us)
	m.mu.Unlock()

	if m.cfg.TimeScale <= 0 {
		return
	}
	if wall := time.Duration(float64(us) / m.cfg.TimeScale * float64(time.Microsecond)); wall > 0 {
		m.sleep(wall)
	}
}

// EchoTicks returns the reservoir echo time in timer ticks.
func (m *Mock) EchoTicks() uint32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ticks := m.state.Reservoir*m.cal.VolumeScale + m.cal.VolumeOffset
	if ticks < 0 {
		return 0
	}
	return uint32(ticks)
}

// LightADC returns the light sensor ADC count.
func (m *Mock) LightADC() uint16 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.adc(m.state.Light*m.cal.LightDivisor, 0)
}

// MoistureADC returns the soil probe ADC count.
func (m *Mock) MoistureADC() uint16 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.adc(m.state.Moisture*m.cal.MoistureDivisor, 1)
}

// BatteryADC returns the battery divider ADC count.
func (m *Mock) BatteryADC() uint16 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.adc(m.state.Battery/m.cal.BatteryScale, 2)
}

func (m *Mock) seconds() uint32 {
	return uint32(m.rtc / uint64(time.Second/time.Microsecond))
}

// advance integrates the plant model over us microseconds. Callers hold mu.
func (m *Mock) advance(us uint32) {
	dt := float32(us) / 1e6

	m.state.Elapsed += uint64(us)
	m.rtc = (m.rtc + uint64(us)) % (SecondsPerDay * uint64(time.Second/time.Microsecond))
	m.state.Seconds = m.seconds()

	if m.state.PumpOn {
		pumped := math32.Min(m.cfg.FlowMLPerSec*dt, m.state.Reservoir)
		m.state.Reservoir -= pumped
		m.state.PumpedML += pumped
		m.state.Moisture += pumped * m.cfg.MoistureGain
	}
	m.state.Moisture = clamp(m.state.Moisture-m.cfg.DryRate*dt/3600, 0, 100)
	m.state.Battery = math32.Max(m.state.Battery-m.cfg.BatteryDrain*dt/3600, 0)
	m.state.Light = m.sunlight()
}

// sunlight follows a half sine between sunrise and sunset.
func (m *Mock) sunlight() float32 {
	t := float32(int64(m.seconds()) - sunrise)
	if t <= 0 || t >= daylight {
		return 0
	}
	return 100 * math32.Sin(math32.Pi*t/daylight)
}

// adc converts counts to a clamped 12-bit reading with a little deterministic noise.
func (m *Mock) adc(counts float32, channel int) uint16 {
	phase := float32(m.state.Elapsed%1000003)/1000003*2*math32.Pi + float32(channel)
	counts += m.cfg.Noise * math32.Sin(phase*7)
	return uint16(clamp(math32.Round(counts), 0, adcMax))
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(v, hi))
}
