// Cdu-bridge drives the screen of a WinWing-style CDU from a flight
// simulator.
//
// It reads simulator variables over an HTTP gateway, renders the CDU pages
// and streams them to the display over WebSocket, while button presses
// arrive from the CDU's joystick interface.
//
// Usage:
//
//	cdu-bridge [command] [flags]
//
// See 'cdu-bridge --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/cdubridge/internal/config"
	"github.com/muurk/cdubridge/internal/logging"
	"github.com/muurk/cdubridge/internal/version"
)

// Global flags
var (
	configPath string
	logLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cdu-bridge",
	Short: "Flight simulator bridge for a CDU display",
	Long: `Drives the 14x24 screen of a CDU from simulator data.

Shows radio frequencies, transponder code, ground speed and track, and lets
the pilot browse and load flight plans with the line-select keys.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default is the OS config dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default: $"+logging.LogLevelEnvVar+" or silent)")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Banner("cdu-bridge"))
	},
}

// setup loads the configuration and starts logging to stderr.
func setup() (*config.Config, error) {
	if err := logging.Initialize(logLevel); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	return config.Load(configPath)
}
