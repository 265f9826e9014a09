package sigconfig

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Ndubireagan/Traffic-light-control/internal/sigconsts"
)

// Config carries every externally tunable constant of the controller.
// Values not present in the config file keep their defaults. Intervals are
// plain milliseconds, yaml.v3 does not parse duration strings.
type Config struct {
	NumLanes      int    `yaml:"num_lanes"`
	TransportPath string `yaml:"transport_path"`
	BaudRate      int    `yaml:"baud_rate"`

	LongGreen  int `yaml:"long_green"`
	MidGreen   int `yaml:"mid_green"`
	ShortGreen int `yaml:"short_green"`
	MinGreen   int `yaml:"min_green"`

	YellowClearanceMs int `yaml:"yellow_clearance_ms"`
	ReconnectSettleMs int `yaml:"reconnect_settle_ms"`
	WarnWindowMs      int `yaml:"warn_window_ms"`
	TickIntervalMs    int `yaml:"tick_interval_ms"`

	StatusPort     uint16 `yaml:"status_port"`
	StatusPeriodMs int    `yaml:"status_period_ms"`

	// The observed source re-ran the full transition on every frame; the
	// intended behaviour is to hold green for its computed duration. False
	// restores the literal per-frame contract.
	HonorGreenDuration bool `yaml:"honor_green_duration"`

	// SimulateLink skips reconnect attempts entirely so the link stays
	// down and every command is logged as "would send". For runs with no
	// serial device attached.
	SimulateLink bool `yaml:"simulate_link"`
}

func Default() Config {
	return Config{
		NumLanes:      sigconsts.N_LANES,
		TransportPath: "/dev/ttyUSB0",
		BaudRate:      9600,

		LongGreen:  sigconsts.GREEN_LONG,
		MidGreen:   sigconsts.GREEN_MID,
		ShortGreen: sigconsts.GREEN_SHORT,
		MinGreen:   sigconsts.GREEN_FLOOR,

		YellowClearanceMs: 2000,
		ReconnectSettleMs: 2000,
		WarnWindowMs:      5000,
		TickIntervalMs:    1000,

		StatusPort:     9999,
		StatusPeriodMs: 1000,

		HonorGreenDuration: true,
	}
}

func (c *Config) YellowClearance() time.Duration {
	return time.Duration(c.YellowClearanceMs) * time.Millisecond
}

func (c *Config) ReconnectSettle() time.Duration {
	return time.Duration(c.ReconnectSettleMs) * time.Millisecond
}

func (c *Config) WarnWindow() time.Duration {
	return time.Duration(c.WarnWindowMs) * time.Millisecond
}

func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

func (c *Config) StatusPeriod() time.Duration {
	return time.Duration(c.StatusPeriodMs) * time.Millisecond
}

// Load reads a YAML file over the defaults.
func Load(path string) (Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("reading config %v: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parsing config %v: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("validating config %v: %w", path, err)
	}
	return config, nil
}

func (c *Config) Validate() error {
	if c.NumLanes < 1 {
		return fmt.Errorf("num_lanes must be at least 1, got %d", c.NumLanes)
	}
	if c.TransportPath == "" {
		return fmt.Errorf("transport_path must not be empty")
	}
	if c.BaudRate < 1 {
		return fmt.Errorf("baud_rate must be positive, got %d", c.BaudRate)
	}
	if c.MinGreen < 1 {
		return fmt.Errorf("min_green must be positive, got %d", c.MinGreen)
	}
	if c.LongGreen < c.MinGreen || c.MidGreen < c.MinGreen || c.ShortGreen < c.MinGreen {
		return fmt.Errorf("green durations must not be below min_green %d", c.MinGreen)
	}
	if c.YellowClearanceMs < 1 {
		return fmt.Errorf("yellow_clearance_ms must be positive, got %d", c.YellowClearanceMs)
	}
	if c.TickIntervalMs < 1 {
		return fmt.Errorf("tick_interval_ms must be positive, got %d", c.TickIntervalMs)
	}
	if c.StatusPort < 1 {
		return fmt.Errorf("status_port must be set")
	}
	return nil
}
