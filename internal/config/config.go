package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/muurk/cdubridge/internal/display"
)

const (
	appName    = "cdubridge"
	configFile = "config.yaml"
)

// Mutex for thread-safe file operations
var fileMutex sync.Mutex

// GetConfigDir returns the OS-appropriate configuration directory for the application.
// This follows platform conventions:
//   - Linux: $XDG_CONFIG_HOME/cdubridge or $HOME/.config/cdubridge
//   - macOS: $HOME/.config/cdubridge (following XDG convention on macOS)
//   - Windows: %LOCALAPPDATA%\cdubridge
func GetConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			// Fallback to USERPROFILE\AppData\Local if LOCALAPPDATA not set
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			baseDir = filepath.Join(userProfile, "AppData", "Local", appName)
		} else {
			baseDir = filepath.Join(localAppData, appName)
		}

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, ".config", appName)

	default:
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome != "" {
			baseDir = filepath.Join(xdgConfigHome, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".config", appName)
		}
	}

	return baseDir, nil
}

// GetConfigPath returns the full path to the configuration file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// Load reads the configuration at path, or at GetConfigPath when path is
// empty. Values missing from the file keep their defaults; a missing file
// yields Default. The result is validated.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		if cfg.Version != 1 {
			return nil, fmt.Errorf("unsupported config version: %d (expected 1)", cfg.Version)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration and compiles the button map.
func (c *Config) Validate() error {
	if c.Buttons == nil {
		c.Buttons = Default().Buttons
	}
	if err := c.Buttons.Compile(); err != nil {
		return err
	}

	if !c.Display.Discover {
		if err := checkURL(c.Display.URL, "ws", "wss"); err != nil {
			return fmt.Errorf("display.url: %w", err)
		}
	}
	if c.Display.Discover && c.Display.Service == "" {
		return errors.New("display.service: required when discover is set")
	}
	if c.Display.Target == "" {
		return errors.New("display.target: must not be empty")
	}
	if len([]rune(c.Display.DefaultColor)) != 1 {
		return fmt.Errorf("display.default_color: want a single color code, got %q", c.Display.DefaultColor)
	}
	if !display.Color([]rune(c.Display.DefaultColor)[0]).Known() {
		return fmt.Errorf("display.default_color: unknown color code %q", c.Display.DefaultColor)
	}

	if err := checkURL(c.Telemetry.URL, "http", "https"); err != nil {
		return fmt.Errorf("telemetry.url: %w", err)
	}
	if c.Telemetry.Timeout <= 0 {
		return errors.New("telemetry.timeout: must be positive")
	}

	if c.Flightplans.Dir == "" {
		return errors.New("flightplans.dir: must not be empty")
	}
	if c.Timing.RenderInterval <= 0 {
		return errors.New("timing.render_interval: must be positive")
	}
	if c.Timing.DialTimeout < 0 {
		return errors.New("timing.dial_timeout: must not be negative")
	}
	return nil
}

func checkURL(raw string, schemes ...string) error {
	if raw == "" {
		return errors.New("must not be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	for _, s := range schemes {
		if u.Scheme == s {
			if u.Host == "" {
				return fmt.Errorf("missing host in %q", raw)
			}
			return nil
		}
	}
	return fmt.Errorf("unsupported scheme %q in %q", u.Scheme, raw)
}

// Save writes the configuration to path, or to GetConfigPath when path is
// empty. Performs an atomic write to prevent corruption on crash.
func (c *Config) Save(path string) error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}

	header := []byte(`# cdu-bridge configuration file
#
# Durations use Go syntax (100ms, 30s). Button ids are the numbers the
# CDU reports through the joystick interface.
#
# Location: ` + path + `

`)
	data = append(header, data...)

	// Write to temporary file first (atomic write)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save config file: %w", err)
	}
	return nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// DisplayColor returns the configured default color.
func (c *Config) DisplayColor() display.Color {
	r := []rune(c.Display.DefaultColor)
	if len(r) != 1 {
		return display.DefaultColor
	}
	return display.Color(r[0])
}
