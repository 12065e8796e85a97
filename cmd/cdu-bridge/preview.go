package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/muurk/cdubridge/internal/cdu"
	"github.com/muurk/cdubridge/internal/config"
	"github.com/muurk/cdubridge/internal/flightplan"
	"github.com/muurk/cdubridge/internal/logging"
	"github.com/muurk/cdubridge/internal/preview"
	"github.com/muurk/cdubridge/internal/telemetry"
)

// Preview command flags
var (
	previewLive     bool
	previewPlansDir string
	previewLogFile  string
)

func init() {
	previewCmd.Flags().BoolVar(&previewLive, "live", false, "Read the simulator gateway instead of demo values")
	previewCmd.Flags().StringVar(&previewPlansDir, "plans", "", "Flight plan directory")
	previewCmd.Flags().StringVar(&previewLogFile, "log-file", filepath.Join(os.TempDir(), "cdu-bridge-preview.log"), "Log destination while the preview owns the terminal")

	rootCmd.AddCommand(previewCmd)
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Run the CDU in the terminal without hardware",
	Long: `Runs a full CDU session drawn in the terminal.

Keys: digits, letters and '.' type into the scratchpad, F1-F6 and F7-F12
are the left and right line-select keys, arrows change page and scroll,
Backspace erases and Delete is CLR. Telemetry comes from fixed demo values
unless --live is given.`,
	RunE: runPreview,
}

func runPreview(cmd *cobra.Command, args []string) error {
	if err := preview.CheckTerminal(); err != nil {
		return err
	}

	// zap output would tear the screen, so it goes to a file
	if err := logging.InitializeTo(logLevel, previewLogFile); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logging.Sync()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("plans") {
		cfg.Flightplans.Dir = previewPlansDir
	}

	var source telemetry.Source = telemetry.NewStatic(telemetry.DemoValues())
	if previewLive {
		source = telemetry.NewGateway(cfg.Telemetry.URL, telemetry.Fields, cfg.Telemetry.Timeout)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	events := make(chan int, 16)
	program := tea.NewProgram(preview.New(cfg.Buttons, events), tea.WithAltScreen(), tea.WithContext(ctx))
	lib := flightplan.NewLibrary(cfg.Flightplans.Dir, cfg.Flightplans.Extension)

	opts := cdu.Options{
		Buttons:               cfg.Buttons,
		Telemetry:             source,
		Plans:                 lib,
		Transport:             preview.NewTransport(program),
		Events:                events,
		Files:                 lib.List(),
		RenderInterval:        cfg.Timing.RenderInterval,
		DefaultColor:          cfg.DisplayColor(),
		KeepFlightplanOnClear: !cfg.Behavior.ClearErrorUnloadsFlightplan,
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Flightplans.Watch {
		w := flightplan.NewWatcher(lib)
		opts.Listings = w.Listings()
		g.Go(func() error {
			_ = w.Run(gctx)
			return nil
		})
	}

	session := cdu.NewSession(opts)
	g.Go(func() error {
		return session.Run(gctx)
	})
	g.Go(func() error {
		_, err := program.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			err = nil
		}
		// quitting the emulator ends the session
		if err == nil {
			err = context.Canceled
		}
		return err
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
