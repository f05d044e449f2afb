package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
// Thresholds only seed the controller at startup; run-state is never written back.
type Config struct {
	Serial      SerialConfig      `yaml:"serial"`
	Calibration CalibrationConfig `yaml:"calibration"`
	Policy      PolicyConfig      `yaml:"policy"`
	Thresholds  ThresholdConfig   `yaml:"thresholds"`
	Mock        MockConfig        `yaml:"mock"`
}

// SerialConfig contains serial port configuration.
type SerialConfig struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`
}

// CalibrationConfig converts raw echo ticks and ADC counts into physical units.
type CalibrationConfig struct {
	VolumeOffset    float32 `yaml:"volume_offset"`    // Echo ticks at an empty reservoir
	VolumeScale     float32 `yaml:"volume_scale"`     // Echo ticks per mL
	LightDivisor    float32 `yaml:"light_divisor"`    // ADC counts per % light
	MoistureDivisor float32 `yaml:"moisture_divisor"` // ADC counts per % saturation
	BatteryScale    float32 `yaml:"battery_scale"`    // Volts per ADC count
	AverageSamples  int     `yaml:"average_samples"`  // ADC samples averaged per reading
}

// PolicyConfig contains the autonomous watering policy constants.
type PolicyConfig struct {
	PumpOn        time.Duration `yaml:"pump_on"`
	PumpOff       time.Duration `yaml:"pump_off"`
	PumpMinVolume int           `yaml:"pump_min_volume"` // mL; pumping stops at or below this
	LowVolume     int           `yaml:"low_volume"`      // mL; water-low alert below this
	LowBattery    float32       `yaml:"low_battery"`     // V; battery-low alert below this
	IdlePause     time.Duration `yaml:"idle_pause"`      // Wait after each idle evaluation; 0 spins
}

// ThresholdConfig contains the startup values of the operator thresholds.
type ThresholdConfig struct {
	WindowStart uint32  `yaml:"window_start"` // Seconds since midnight
	WindowEnd   uint32  `yaml:"window_end"`   // Seconds since midnight
	Moisture    float32 `yaml:"moisture"`     // %
	Light       uint32  `yaml:"light"`        // %
}

// MockConfig contains simulated plant configuration.
type MockConfig struct {
	ReservoirML  float32 `yaml:"reservoir_ml"`   // Initial reservoir volume (mL)
	FlowMLPerSec float32 `yaml:"flow_ml_per_s"`  // Pump flow rate
	Moisture     float32 `yaml:"moisture"`       // Initial soil saturation (%)
	MoistureGain float32 `yaml:"moisture_gain"`  // % saturation per mL pumped
	DryRate      float32 `yaml:"dry_rate"`       // % saturation lost per hour
	Battery      float32 `yaml:"battery"`        // Initial battery voltage (V)
	BatteryDrain float32 `yaml:"battery_drain"`  // V lost per hour
	TimeScale    float64 `yaml:"time_scale"`     // Simulated seconds per wall second
	StartTime    uint32  `yaml:"start_time"`     // RTC value at power-up (seconds)
	Noise        float32 `yaml:"noise"`          // ADC noise in counts
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Port:     "/dev/ttyACM0",
			BaudRate: 115200,
		},
		Calibration: CalibrationConfig{
			VolumeOffset:    423.64,
			VolumeScale:     0.3408,
			LightDivisor:    13,
			MoistureDivisor: 30.658,
			BatteryScale:    485.1 / 192512,
			AverageSamples:  4,
		},
		Policy: PolicyConfig{
			PumpOn:        5 * time.Second,
			PumpOff:       30 * time.Second,
			PumpMinVolume: 20050,
			LowVolume:     50,
			LowBattery:    4.0,
		},
		Thresholds: ThresholdConfig{
			WindowStart: 86280,
			WindowEnd:   86340,
			Moisture:    0,
			Light:       1000,
		},
		Mock: MockConfig{
			ReservoirML:  25000,
			FlowMLPerSec: 20,
			Moisture:     35,
			MoistureGain: 0.05,
			DryRate:      1.5,
			Battery:      4.8,
			BatteryDrain: 0.01,
			TimeScale:    1,
			StartTime:    0,
			Noise:        2,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ensureDefaults ensures that all required fields have default values if missing.
// Thresholds are left alone: zero is a valid moisture level and window bound.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}
	if c.Serial.BaudRate == 0 {
		c.Serial.BaudRate = def.Serial.BaudRate
	}

	if c.Calibration.VolumeScale == 0 {
		c.Calibration.VolumeScale = def.Calibration.VolumeScale
	}
	if c.Calibration.LightDivisor == 0 {
		c.Calibration.LightDivisor = def.Calibration.LightDivisor
	}
	if c.Calibration.MoistureDivisor == 0 {
		c.Calibration.MoistureDivisor = def.Calibration.MoistureDivisor
	}
	if c.Calibration.BatteryScale == 0 {
		c.Calibration.BatteryScale = def.Calibration.BatteryScale
	}
	if c.Calibration.AverageSamples <= 0 {
		c.Calibration.AverageSamples = 1
	}

	if c.Policy.PumpOn == 0 {
		c.Policy.PumpOn = def.Policy.PumpOn
	}
	if c.Policy.PumpOff == 0 {
		c.Policy.PumpOff = def.Policy.PumpOff
	}

	if c.Mock.TimeScale <= 0 {
		c.Mock.TimeScale = def.Mock.TimeScale
	}
	if c.Mock.FlowMLPerSec == 0 {
		c.Mock.FlowMLPerSec = def.Mock.FlowMLPerSec
	}
}
