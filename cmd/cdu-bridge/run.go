package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/muurk/cdubridge/internal/cdu"
	"github.com/muurk/cdubridge/internal/config"
	"github.com/muurk/cdubridge/internal/discovery"
	"github.com/muurk/cdubridge/internal/flightplan"
	"github.com/muurk/cdubridge/internal/input"
	"github.com/muurk/cdubridge/internal/logging"
	"github.com/muurk/cdubridge/internal/telemetry"
	"github.com/muurk/cdubridge/internal/transport"
)

// Run command flags
var (
	runDisplayURL   string
	runTelemetryURL string
	runPlansDir     string
	runDevice       string
	runDiscover     bool
	runCaptureDir   string
	runKeepPlan     bool
)

func init() {
	runCmd.Flags().StringVar(&runDisplayURL, "url", "", "Display WebSocket URL")
	runCmd.Flags().StringVar(&runTelemetryURL, "telemetry", "", "Simulator variable gateway URL")
	runCmd.Flags().StringVar(&runPlansDir, "plans", "", "Flight plan directory")
	runCmd.Flags().StringVar(&runDevice, "device", "", "Joystick device of the CDU buttons (\"none\" disables input)")
	runCmd.Flags().BoolVar(&runDiscover, "discover", false, "Find the display over mDNS")
	runCmd.Flags().StringVar(&runCaptureDir, "capture", "", "Write every sent frame to a JSONL file in this directory")
	runCmd.Flags().BoolVar(&runKeepPlan, "keep-plan", false, "Keep the loaded flight plan when an error is cleared")

	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Connect to the display and simulator and run the CDU",
	Example: `  # Use the config file
  cdu-bridge run

  # Display on another machine, plans from a shared folder
  cdu-bridge run --url ws://192.168.1.20:8320/winwing/cdu-captain --plans ~/plans

  # Locate the display with mDNS and record the frames
  cdu-bridge run --discover --capture ./captures`,
	RunE: runRun,
}

// applyRunFlags overrides file values with the flags that were set.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.Display.URL = runDisplayURL
		cfg.Display.Discover = false
	}
	if flags.Changed("discover") {
		cfg.Display.Discover = runDiscover
	}
	if flags.Changed("telemetry") {
		cfg.Telemetry.URL = runTelemetryURL
	}
	if flags.Changed("plans") {
		cfg.Flightplans.Dir = runPlansDir
	}
	if flags.Changed("device") {
		cfg.Input.Device = runDevice
	}
	if flags.Changed("capture") {
		cfg.Display.CaptureDir = runCaptureDir
	}
	if flags.Changed("keep-plan") {
		cfg.Behavior.ClearErrorUnloadsFlightplan = !runKeepPlan
	}
	return cfg.Validate()
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	defer logging.Sync()

	if err := applyRunFlags(cmd, cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	url, err := displayURL(ctx, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Connecting to display at %s...\n", url)
	conn, err := transport.Dial(ctx, url, transport.Options{
		Target:      cfg.Display.Target,
		DialTimeout: cfg.Timing.DialTimeout,
		CaptureDir:  cfg.Display.CaptureDir,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to connect to display: %w", err)
	}
	defer conn.Close()

	lib := flightplan.NewLibrary(cfg.Flightplans.Dir, cfg.Flightplans.Extension)
	events := make(chan int, 16)

	g, gctx := errgroup.WithContext(ctx)

	opts := cdu.Options{
		Buttons:               cfg.Buttons,
		Telemetry:             telemetry.NewGateway(cfg.Telemetry.URL, telemetry.Fields, cfg.Telemetry.Timeout),
		Plans:                 lib,
		Transport:             conn,
		Events:                events,
		Files:                 lib.List(),
		RenderInterval:        cfg.Timing.RenderInterval,
		DefaultColor:          cfg.DisplayColor(),
		KeepFlightplanOnClear: !cfg.Behavior.ClearErrorUnloadsFlightplan,
	}

	if cfg.Flightplans.Watch {
		w := flightplan.NewWatcher(lib)
		opts.Listings = w.Listings()
		g.Go(func() error {
			if err := w.Run(gctx); err != nil {
				// the list from startup stays in use
				logging.Warn("Flight plan watcher stopped", zap.Error(err))
			}
			return nil
		})
	}

	if cfg.Input.Device != "" && cfg.Input.Device != "none" {
		js, err := input.OpenJoystick(cfg.Input.Device)
		if err != nil {
			return err
		}
		g.Go(func() error {
			return js.Run(gctx, events)
		})
	} else {
		logging.Info("Button input disabled")
	}

	session := cdu.NewSession(opts)
	g.Go(func() error {
		if err := session.Run(gctx); err != nil {
			return err
		}
		return context.Canceled
	})

	fmt.Printf("Running (session %s). Press Ctrl+C to stop.\n", session.ID)

	err = g.Wait()
	if errors.Is(err, context.Canceled) || ctx.Err() != nil {
		fmt.Println("Stopped.")
		return nil
	}
	return err
}

// displayURL returns the configured URL, or the URL of the first host that
// answers mDNS discovery.
func displayURL(ctx context.Context, cfg *config.Config) (string, error) {
	if !cfg.Display.Discover {
		return cfg.Display.URL, nil
	}

	fmt.Printf("Looking for a display (%s)...\n", cfg.Display.Service)
	host, err := discovery.NewScanner(cfg.Display.Service).First(ctx)
	if err != nil {
		return "", fmt.Errorf("display discovery failed: %w", err)
	}
	logging.Info("Display discovered", zap.String("host", host.String()))
	return host.URL(), nil
}
