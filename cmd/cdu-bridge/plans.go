package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/muurk/cdubridge/internal/flightplan"
)

var plansDir string

func init() {
	plansCmd.PersistentFlags().StringVar(&plansDir, "plans", "", "Flight plan directory")
	plansCmd.AddCommand(plansShowCmd)

	rootCmd.AddCommand(plansCmd)
}

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "List the flight plans the CDU would offer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openLibrary(cmd)
		if err != nil {
			return err
		}

		names := lib.List()
		if len(names) == 0 {
			fmt.Printf("No flight plans (*%s) in %s\n", lib.Extension, lib.Dir)
			return nil
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var plansShowCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Parse a flight plan and print its waypoints",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openLibrary(cmd)
		if err != nil {
			return err
		}

		fp, err := lib.Load(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s: %s -> %s, %d waypoints\n\n", fp.File, fp.Dep, fp.Arr, len(fp.Points))
		fmt.Printf("%-8s  %6s  %6s  %s\n", "IDENT", "CRS", "TIME", "WIND")
		for _, p := range fp.Points {
			fmt.Printf("%-8s  %6s  %6s  %s\n", p.Ident, p.Course, p.LegTime, p.Wind)
		}
		return nil
	},
}

func openLibrary(cmd *cobra.Command) (*flightplan.Library, error) {
	cfg, err := setup()
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("plans") {
		cfg.Flightplans.Dir = plansDir
	}
	return flightplan.NewLibrary(cfg.Flightplans.Dir, cfg.Flightplans.Extension), nil
}
