package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/cdubridge/internal/discovery"
)

// Scan command flags
var (
	scanTimeout int
	scanService string
)

func init() {
	scanCmd.Flags().IntVar(&scanTimeout, "timeout", 5, "Scan timeout in seconds")
	scanCmd.Flags().StringVar(&scanService, "service", "", "mDNS service type (default from config)")

	rootCmd.AddCommand(scanCmd)
}

// scanCmd discovers display hosts on the network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for display hosts on the network",
	Long: `Scan for display hosts using mDNS/DNS-SD discovery.

Every host advertising the service type is listed with the WebSocket URL
the bridge would connect to.`,
	Example: `  # Scan for 5 seconds (default)
  cdu-bridge scan

  # Longer scan for a different service type
  cdu-bridge scan --timeout 15 --service _cdu._tcp`,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	service := cfg.Display.Service
	if scanService != "" {
		service = scanService
	}

	scanner := discovery.NewScanner(service)
	scanner.Timeout = time.Duration(scanTimeout) * time.Second

	fmt.Printf("Scanning for %s (timeout: %ds)...\n\n", service, scanTimeout)
	hosts, err := scanner.Scan(context.Background())
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(hosts) == 0 {
		fmt.Println("No display hosts found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Check that the display software is running")
		fmt.Println("  - Allow UDP port 5353 through the firewall")
		fmt.Println("  - Try increasing --timeout for slower networks")
		fmt.Println("  - Set display.url in the config file if discovery is not available")
		return nil
	}

	fmt.Printf("Found %d host(s):\n\n", len(hosts))
	for i, h := range hosts {
		fmt.Printf("%d. %s\n", i+1, h.Instance)
		fmt.Printf("   Host: %s\n", h.Hostname)
		fmt.Printf("   URL:  %s\n", h.URL())
		if len(h.Metadata) > 0 {
			fmt.Printf("   Metadata: %v\n", h.Metadata)
		}
		fmt.Println()
	}
	fmt.Println("Use 'cdu-bridge run --url <url>' or set display.discover in the config")
	return nil
}
