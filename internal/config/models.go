package config

import (
	"time"

	"github.com/muurk/cdubridge/internal/buttons"
)

// Config represents the entire bridge configuration file.
type Config struct {
	Version     int               `yaml:"version"`
	Display     DisplayConfig     `yaml:"display"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
	Flightplans FlightplansConfig `yaml:"flightplans"`
	Timing      TimingConfig      `yaml:"timing"`
	Input       InputConfig       `yaml:"input"`
	Buttons     *buttons.Map      `yaml:"buttons"`
	Behavior    BehaviorConfig    `yaml:"behavior"`
}

// DisplayConfig describes where frames are sent.
type DisplayConfig struct {
	URL          string `yaml:"url"`                   // WebSocket endpoint of the display
	Target       string `yaml:"target"`                // Destination tag of every message
	DefaultColor string `yaml:"default_color"`         // Color code for unmarked text
	Discover     bool   `yaml:"discover"`              // Resolve the URL over mDNS instead
	Service      string `yaml:"service"`               // mDNS service type when discovering
	CaptureDir   string `yaml:"capture_dir,omitempty"` // Append sent frames here (empty = disabled)
}

// TelemetryConfig describes the simulator variable gateway.
type TelemetryConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"` // Per-request timeout
}

// FlightplansConfig describes the flight plan library.
type FlightplansConfig struct {
	Dir       string `yaml:"dir"`
	Extension string `yaml:"extension"`
	Watch     bool   `yaml:"watch"` // Refresh the list when the directory changes
}

// TimingConfig holds session intervals.
type TimingConfig struct {
	RenderInterval time.Duration `yaml:"render_interval"`
	DialTimeout    time.Duration `yaml:"dial_timeout"` // Total retry budget for the display connection
}

// InputConfig selects the hardware button source.
type InputConfig struct {
	Device string `yaml:"device"` // Linux joystick device
}

// BehaviorConfig holds behavior switches.
type BehaviorConfig struct {
	ClearErrorUnloadsFlightplan bool `yaml:"clear_error_unloads_flightplan"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Version: 1,
		Display: DisplayConfig{
			URL:          "ws://localhost:8320/winwing/cdu-captain",
			Target:       "Display",
			DefaultColor: "w",
			Service:      "_winwing._tcp",
		},
		Telemetry: TelemetryConfig{
			URL:     "http://localhost:8321",
			Timeout: 80 * time.Millisecond,
		},
		Flightplans: FlightplansConfig{
			Dir:       "flightplans",
			Extension: ".html",
			Watch:     true,
		},
		Timing: TimingConfig{
			RenderInterval: 100 * time.Millisecond,
			DialTimeout:    30 * time.Second,
		},
		Input: InputConfig{
			Device: "/dev/input/js0",
		},
		Buttons: buttons.DefaultMap(),
		Behavior: BehaviorConfig{
			ClearErrorUnloadsFlightplan: true,
		},
	}
}
